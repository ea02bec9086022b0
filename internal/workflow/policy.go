package workflow

import (
	"fmt"

	"github.com/capitrack/engine/internal/models"
)

// CompletionPolicy decides whether a project may be marked Completed. The
// exact rule is a deployment choice, so it is injected rather than fixed.
type CompletionPolicy interface {
	CanComplete(project *models.Project, milestones []models.Milestone) error
}

// MilestoneCompletionPolicy requires every milestone to be at 100%.
type MilestoneCompletionPolicy struct{}

func (MilestoneCompletionPolicy) CanComplete(_ *models.Project, milestones []models.Milestone) error {
	for _, m := range milestones {
		if m.PercentageComplete < 100 {
			return fmt.Errorf("milestone %q at %d%%", m.Title, m.PercentageComplete)
		}
	}
	return nil
}

// InspectorDiscretionPolicy leaves completion entirely to the inspector.
type InspectorDiscretionPolicy struct{}

func (InspectorDiscretionPolicy) CanComplete(*models.Project, []models.Milestone) error {
	return nil
}

// CompletionPolicyFor selects the configured policy.
func CompletionPolicyFor(requireMilestones bool) CompletionPolicy {
	if requireMilestones {
		return MilestoneCompletionPolicy{}
	}
	return InspectorDiscretionPolicy{}
}
