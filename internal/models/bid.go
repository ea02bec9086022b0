package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contractor is a registered bidder.
type Contractor struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CompanyName   string         `gorm:"not null" json:"company_name" validate:"required"`
	ContactPerson string         `json:"contact_person"`
	Email         string         `gorm:"index" json:"email" validate:"omitempty,email"`
	Phone         string         `json:"phone"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// BidInvitation is the public procurement notice that opens a project for
// bidding. One invitation per project.
type BidInvitation struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProjectID            uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null" json:"project_id"`
	Title                string         `gorm:"not null" json:"title"`
	Description          string         `gorm:"type:text" json:"description"`
	Requirements         string         `gorm:"type:text" json:"requirements"`
	BidOpeningDate       time.Time      `gorm:"not null" json:"bid_opening_date"`
	BidClosingDate       time.Time      `gorm:"not null" json:"bid_closing_date"`
	PreBidConferenceDate *time.Time     `json:"pre_bid_conference_date"`
	CreatedBy            uuid.UUID      `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
}

// Bid is a contractor's submission against an open invitation. At most one
// bid per project carries IsWinningBid, set when the contract is awarded.
type Bid struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProjectID    uuid.UUID      `gorm:"type:uuid;index;not null" json:"project_id"`
	ContractorID uuid.UUID      `gorm:"type:uuid;index;not null" json:"contractor_id"`
	BidAmount    float64        `gorm:"type:numeric(14,2);not null" json:"bid_amount" validate:"gt=0"`
	BidDate      time.Time      `gorm:"not null" json:"bid_date"`
	IsWinningBid bool           `gorm:"not null;default:false" json:"is_winning_bid"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
