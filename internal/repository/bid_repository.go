package repository

import (
	"context"

	"github.com/capitrack/engine/internal/models"
	appErr "github.com/capitrack/engine/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BidRepository interface {
	BaseRepository[models.Bid]
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Bid, error)
	MarkWinning(ctx context.Context, bidID uuid.UUID) error
}

type bidRepository struct {
	BaseRepository[models.Bid]
	db *gorm.DB
}

func NewBidRepository(db *gorm.DB) BidRepository {
	return &bidRepository{BaseRepository: NewBaseRepository[models.Bid](db), db: db}
}

func (r *bidRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Bid, error) {
	var out []models.Bid
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("bid_amount ASC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list bids failed")
	}
	return out, nil
}

// MarkWinning flags one bid as winning and clears the flag on every other
// bid of the same project, keeping at most one winner per project.
func (r *bidRepository) MarkWinning(ctx context.Context, bidID uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Bid
		if err := tx.Select("project_id").First(&b, "id = ?", bidID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return appErr.New(appErr.CodeNotFound, "bid not found")
			}
			return err
		}
		if err := tx.Model(&models.Bid{}).
			Where("project_id = ? AND id <> ?", b.ProjectID, bidID).
			Update("is_winning_bid", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.Bid{}).Where("id = ?", bidID).Update("is_winning_bid", true).Error
	})
	if err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return err
		}
		return appErr.Wrap(err, appErr.CodeInternal, "mark winning bid failed")
	}
	return nil
}

type InvitationRepository interface {
	BaseRepository[models.BidInvitation]
	GetByProject(ctx context.Context, projectID uuid.UUID, dest *models.BidInvitation) error
}

type invitationRepository struct {
	BaseRepository[models.BidInvitation]
	db *gorm.DB
}

func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &invitationRepository{BaseRepository: NewBaseRepository[models.BidInvitation](db), db: db}
}

func (r *invitationRepository) GetByProject(ctx context.Context, projectID uuid.UUID, dest *models.BidInvitation) error {
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).First(dest).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return appErr.New(appErr.CodeNotFound, "bid invitation not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get bid invitation failed")
	}
	return nil
}

type ContractorRepository interface {
	BaseRepository[models.Contractor]
	List(ctx context.Context) ([]models.Contractor, error)
}

type contractorRepository struct {
	BaseRepository[models.Contractor]
	db *gorm.DB
}

func NewContractorRepository(db *gorm.DB) ContractorRepository {
	return &contractorRepository{BaseRepository: NewBaseRepository[models.Contractor](db), db: db}
}

func (r *contractorRepository) List(ctx context.Context) ([]models.Contractor, error) {
	var out []models.Contractor
	if err := r.db.WithContext(ctx).Order("company_name ASC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list contractors failed")
	}
	return out, nil
}
