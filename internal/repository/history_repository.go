package repository

import (
	"context"

	"github.com/capitrack/engine/internal/models"
	appErr "github.com/capitrack/engine/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HistoryRepository is append-only: entries are never updated or deleted.
type HistoryRepository interface {
	Append(ctx context.Context, entry *models.ProjectHistory) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.ProjectHistory, error)
}

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

// Append inserts one audit entry. The entry id is assigned by the caller and
// the insert ignores conflicts on it, so a retried append is a no-op.
func (r *historyRepository) Append(ctx context.Context, entry *models.ProjectHistory) error {
	if entry.ID == uuid.Nil {
		return appErr.New(appErr.CodeInvalid, "history entry requires a caller-assigned id")
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(entry).Error
	if err != nil {
		return appErr.Wrap(err, appErr.CodeUnavailable, "append history entry failed")
	}
	return nil
}

func (r *historyRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.ProjectHistory, error) {
	var out []models.ProjectHistory
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list project history failed")
	}
	return out, nil
}
