package repository

import (
	"context"

	"github.com/capitrack/engine/internal/models"
	appErr "github.com/capitrack/engine/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UpdateRepository interface {
	BaseRepository[models.ProjectUpdate]
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.ProjectUpdate, error)
	ListPending(ctx context.Context) ([]models.ProjectUpdate, error)
}

type updateRepository struct {
	BaseRepository[models.ProjectUpdate]
	db *gorm.DB
}

func NewUpdateRepository(db *gorm.DB) UpdateRepository {
	return &updateRepository{BaseRepository: NewBaseRepository[models.ProjectUpdate](db), db: db}
}

func (r *updateRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.ProjectUpdate, error) {
	var out []models.ProjectUpdate
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("submitted_at DESC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list project updates failed")
	}
	return out, nil
}

func (r *updateRepository) ListPending(ctx context.Context) ([]models.ProjectUpdate, error) {
	var out []models.ProjectUpdate
	if err := r.db.WithContext(ctx).Where("is_pending_approval = true").Order("submitted_at ASC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list pending updates failed")
	}
	return out, nil
}
