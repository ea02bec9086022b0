package repository

import (
	"context"
	"time"

	"github.com/capitrack/engine/internal/models"
	appErr "github.com/capitrack/engine/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MilestoneRepository interface {
	BaseRepository[models.Milestone]
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Milestone, error)
	NextSequence(ctx context.Context, projectID uuid.UUID) (int, error)
	MarkOverdueDelayed(ctx context.Context, asOf time.Time) (int64, error)
}

type milestoneRepository struct {
	BaseRepository[models.Milestone]
	db *gorm.DB
}

func NewMilestoneRepository(db *gorm.DB) MilestoneRepository {
	return &milestoneRepository{BaseRepository: NewBaseRepository[models.Milestone](db), db: db}
}

func (r *milestoneRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Milestone, error) {
	var out []models.Milestone
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("order_sequence ASC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list milestones failed")
	}
	return out, nil
}

func (r *milestoneRepository) NextSequence(ctx context.Context, projectID uuid.UUID) (int, error) {
	var last int
	err := r.db.WithContext(ctx).Model(&models.Milestone{}).
		Where("project_id = ?", projectID).
		Select("COALESCE(MAX(order_sequence),0)").Scan(&last).Error
	if err != nil {
		return 0, appErr.Wrap(err, appErr.CodeInternal, "compute milestone sequence failed")
	}
	return last + 1, nil
}

// MarkOverdueDelayed flags milestones past their scheduled end date that are
// neither complete nor already flagged. Returns the number of rows changed.
func (r *milestoneRepository) MarkOverdueDelayed(ctx context.Context, asOf time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Milestone{}).
		Where("scheduled_end_date IS NOT NULL AND scheduled_end_date < ?", asOf).
		Where("status IN ?", []models.MilestoneStatus{models.MilestoneNotStarted, models.MilestoneInProgress}).
		Update("status", models.MilestoneDelayed)
	if res.Error != nil {
		return 0, appErr.Wrap(res.Error, appErr.CodeInternal, "mark delayed milestones failed")
	}
	return res.RowsAffected, nil
}
