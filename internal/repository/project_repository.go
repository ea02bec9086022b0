package repository

import (
	"context"

	"github.com/capitrack/engine/internal/models"
	appErr "github.com/capitrack/engine/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository interface {
	BaseRepository[models.Project]
	ListByStatus(ctx context.Context, statuses ...models.ProjectStatus) ([]models.Project, error)
	ListByCreator(ctx context.Context, userID uuid.UUID) ([]models.Project, error)
	ListAll(ctx context.Context) ([]models.Project, error)
}

type projectRepository struct {
	BaseRepository[models.Project]
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{BaseRepository: NewBaseRepository[models.Project](db), db: db}
}

func (r *projectRepository) ListByStatus(ctx context.Context, statuses ...models.ProjectStatus) ([]models.Project, error) {
	var out []models.Project
	if err := r.db.WithContext(ctx).Where("status IN ?", statuses).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list projects by status failed")
	}
	return out, nil
}

func (r *projectRepository) ListByCreator(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	var out []models.Project
	if err := r.db.WithContext(ctx).Where("created_by = ?", userID).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list projects by creator failed")
	}
	return out, nil
}

func (r *projectRepository) ListAll(ctx context.Context) ([]models.Project, error) {
	var out []models.Project
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list projects failed")
	}
	return out, nil
}
