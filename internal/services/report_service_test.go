package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/capitrack/engine/internal/models"
	appErr "github.com/capitrack/engine/pkg/errors"
)

func fundedProject(barangay string, estimated, budget, disbursed float64, status models.ProjectStatus) models.Project {
	p := models.Project{
		Barangay:        barangay,
		EstimatedCost:   estimated,
		AmountDisbursed: disbursed,
		Status:          status,
	}
	if budget > 0 {
		p.ApprovedBudgetAmount = &budget
	}
	return p
}

func TestBuildDashboard(t *testing.T) {
	rows := []models.Project{
		fundedProject("San Isidro", 1_000_000, 900_000, 400_000, models.StatusInProgress),
		fundedProject("San Isidro", 500_000, 0, 0, models.StatusPendingReview),
		fundedProject("Poblacion", 750_000, 700_000, 700_000, models.StatusCompleted),
		fundedProject("Poblacion", 300_000, 0, 0, models.StatusRejected),
	}

	stats := BuildDashboard(rows)

	require.Equal(t, 4, stats.TotalProjects)
	require.Equal(t, 1, stats.CountsByStatus[models.StatusInProgress])
	require.Equal(t, 1, stats.CountsByStatus[models.StatusRejected])
	require.Equal(t, 1_500_000.0, stats.CostByBarangay["San Isidro"])
	require.Equal(t, 1_050_000.0, stats.CostByBarangay["Poblacion"])
	require.Equal(t, 1_600_000.0, stats.TotalFunded)
	require.Equal(t, 1_100_000.0, stats.TotalDisbursed)
	require.Equal(t, 500_000.0, stats.RemainingBudget)

	// 2 ever prioritized (In_Progress, Completed) vs 1 rejected
	require.InDelta(t, 2.0/3.0, stats.ApprovalRate, 1e-9)
	require.InDelta(t, 1_100_000.0/1_600_000.0, stats.UtilizationRate, 1e-9)
}

func TestBuildDashboard_Empty(t *testing.T) {
	stats := BuildDashboard(nil)
	require.Equal(t, 0, stats.TotalProjects)
	require.Zero(t, stats.ApprovalRate)
	require.Zero(t, stats.UtilizationRate)
	require.Zero(t, stats.RemainingBudget)
}

func TestBuildDashboard_NoFunding(t *testing.T) {
	rows := []models.Project{
		fundedProject("San Isidro", 1_000_000, 0, 0, models.StatusPendingReview),
	}
	stats := BuildDashboard(rows)
	require.Zero(t, stats.UtilizationRate)
	require.Zero(t, stats.ApprovalRate)
}

func TestDashboard_RepositoryError(t *testing.T) {
	projects := &mockProjectRepo{}
	projects.On("ListAll", mock.Anything).
		Return(nil, appErr.New(appErr.CodeInternal, "list projects failed")).Once()

	svc := NewReportService(projects)
	_, err := svc.Dashboard(context.Background())
	require.True(t, appErr.IsCode(err, appErr.CodeInternal))
	projects.AssertExpectations(t)
}
