package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectStatus is a stage in the capital-project lifecycle. Statuses only
// ever change through the workflow engine, never by direct writes.
type ProjectStatus string

const (
	StatusPendingReview  ProjectStatus = "Pending_Review"
	StatusPrioritized    ProjectStatus = "Prioritized"
	StatusFunded         ProjectStatus = "Funded"
	StatusOpenForBidding ProjectStatus = "Open_For_Bidding"
	StatusInProgress     ProjectStatus = "In_Progress"
	StatusCompleted      ProjectStatus = "Completed"
	StatusRejected       ProjectStatus = "Rejected"
	StatusCancelled      ProjectStatus = "Cancelled"
)

// Terminal reports whether a project in this status can no longer move.
func (s ProjectStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// ProjectCategory classifies a capital project for planning purposes.
type ProjectCategory string

const (
	CategoryFloodControl       ProjectCategory = "Flood_Control"
	CategoryRoadInfrastructure ProjectCategory = "Road_Infrastructure"
	CategoryWaterSupply        ProjectCategory = "Water_Supply"
	CategoryHealthFacility     ProjectCategory = "Health_Facility"
	CategoryEducationFacility  ProjectCategory = "Education_Facility"
	CategoryCommunityCenter    ProjectCategory = "Community_Center"
	CategoryMarket             ProjectCategory = "Market"
	CategoryOther              ProjectCategory = "Other"
)

// Project is a capital project tracked from proposal to completion.
// Budget fields are nullable until the corresponding stage sets them:
// ApprovedBudgetAmount and FundSourceCode are written together by budget
// allocation, ContractAmount and ContractorID by contract award.
type Project struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title              string          `gorm:"not null" json:"title" validate:"required"`
	Description        string          `gorm:"type:text" json:"description"`
	Barangay           string          `gorm:"type:varchar(128);index;not null" json:"barangay" validate:"required"`
	Category           ProjectCategory `gorm:"type:varchar(32);index" json:"project_category"`
	ProblemDescription string          `gorm:"type:text" json:"problem_description"`
	ProposedSolution   string          `gorm:"type:text" json:"proposed_solution"`

	EstimatedCost        float64  `gorm:"type:numeric(14,2);not null" json:"estimated_cost" validate:"gt=0"`
	ApprovedBudgetAmount *float64 `gorm:"type:numeric(14,2)" json:"approved_budget_amount"`
	FundSourceCode       *string  `gorm:"type:varchar(64)" json:"fund_source_code"`
	ContractAmount       *float64 `gorm:"type:numeric(14,2)" json:"contract_amount"`
	AmountDisbursed      float64  `gorm:"type:numeric(14,2);not null;default:0" json:"amount_disbursed"`

	Status       ProjectStatus `gorm:"type:varchar(32);index;not null" json:"status"`
	CreatedBy    uuid.UUID     `gorm:"type:uuid;index;not null" json:"created_by"`
	ContractorID *uuid.UUID    `gorm:"type:uuid;index" json:"contractor_id"`
	StartDate    *time.Time    `json:"start_date"`
	EndDate      *time.Time    `json:"end_date"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// RemainingBudget returns the undisbursed portion of the approved budget.
// Zero when no budget has been allocated yet.
func (p *Project) RemainingBudget() float64 {
	if p.ApprovedBudgetAmount == nil {
		return 0
	}
	return *p.ApprovedBudgetAmount - p.AmountDisbursed
}
