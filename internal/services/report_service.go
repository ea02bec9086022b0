package services

import (
	"context"

	"github.com/capitrack/engine/internal/models"
	"github.com/capitrack/engine/internal/repository"
)

// DashboardStats is a numeric projection over a snapshot of project rows.
// Freshness is "as of last read"; nothing here is cached or maintained
// incrementally.
type DashboardStats struct {
	TotalProjects   int                              `json:"total_projects"`
	CountsByStatus  map[models.ProjectStatus]int     `json:"counts_by_status"`
	CostByStatus    map[models.ProjectStatus]float64 `json:"estimated_cost_by_status"`
	CostByBarangay  map[string]float64               `json:"estimated_cost_by_barangay"`
	TotalFunded     float64                          `json:"total_funded"`
	TotalDisbursed  float64                          `json:"total_disbursed"`
	RemainingBudget float64                          `json:"remaining_budget"`
	ApprovalRate    float64                          `json:"approval_rate"`
	UtilizationRate float64                          `json:"utilization_rate"`
}

type ReportService interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
}

type reportService struct {
	projects repository.ProjectRepository
}

func NewReportService(projects repository.ProjectRepository) ReportService {
	return &reportService{projects: projects}
}

func (s *reportService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	rows, err := s.projects.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return BuildDashboard(rows), nil
}

// BuildDashboard reduces a project snapshot to dashboard numbers. Approval
// rate counts every project that ever passed prioritization (anything at
// Prioritized or beyond) against rejected ones; rates with a zero
// denominator are reported as 0.
func BuildDashboard(rows []models.Project) *DashboardStats {
	stats := &DashboardStats{
		TotalProjects:  len(rows),
		CountsByStatus: map[models.ProjectStatus]int{},
		CostByStatus:   map[models.ProjectStatus]float64{},
		CostByBarangay: map[string]float64{},
	}

	var prioritized, rejected int
	for _, p := range rows {
		stats.CountsByStatus[p.Status]++
		stats.CostByStatus[p.Status] += p.EstimatedCost
		stats.CostByBarangay[p.Barangay] += p.EstimatedCost

		if p.ApprovedBudgetAmount != nil {
			stats.TotalFunded += *p.ApprovedBudgetAmount
		}
		stats.TotalDisbursed += p.AmountDisbursed

		switch p.Status {
		case models.StatusPrioritized, models.StatusFunded, models.StatusOpenForBidding,
			models.StatusInProgress, models.StatusCompleted:
			prioritized++
		case models.StatusRejected:
			rejected++
		}
	}

	stats.RemainingBudget = stats.TotalFunded - stats.TotalDisbursed
	if prioritized+rejected > 0 {
		stats.ApprovalRate = float64(prioritized) / float64(prioritized+rejected)
	}
	if stats.TotalFunded > 0 {
		stats.UtilizationRate = stats.TotalDisbursed / stats.TotalFunded
	}
	return stats
}
