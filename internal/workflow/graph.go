package workflow

import "github.com/capitrack/engine/internal/models"

// transitions is the legal status graph. A project status only ever changes
// along one of these edges.
var transitions = map[models.ProjectStatus][]models.ProjectStatus{
	models.StatusPendingReview:  {models.StatusPrioritized, models.StatusRejected, models.StatusCancelled},
	models.StatusPrioritized:    {models.StatusFunded, models.StatusRejected, models.StatusCancelled},
	models.StatusFunded:         {models.StatusOpenForBidding},
	models.StatusOpenForBidding: {models.StatusInProgress},
	models.StatusInProgress:     {models.StatusCompleted},
}

// CanTransition reports whether from -> to is an edge of the status graph.
func CanTransition(from, to models.ProjectStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses reachable in one step from the given
// status. Terminal statuses have none.
func NextStatuses(from models.ProjectStatus) []models.ProjectStatus {
	out := make([]models.ProjectStatus, len(transitions[from]))
	copy(out, transitions[from])
	return out
}
