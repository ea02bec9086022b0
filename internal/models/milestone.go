package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MilestoneStatus tracks a milestone independently of the project workflow.
type MilestoneStatus string

const (
	MilestoneNotStarted MilestoneStatus = "Not_Started"
	MilestoneInProgress MilestoneStatus = "In_Progress"
	MilestoneCompleted  MilestoneStatus = "Completed"
	MilestoneDelayed    MilestoneStatus = "Delayed"
)

// Milestone is an ordered sub-deliverable of a project. OrderSequence is
// unique per project and defines presentation order.
type Milestone struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProjectID          uuid.UUID       `gorm:"type:uuid;index:idx_milestones_project_seq,unique;not null" json:"project_id"`
	Title              string          `gorm:"not null" json:"title" validate:"required"`
	Description        string          `gorm:"type:text" json:"description"`
	PercentageComplete int             `gorm:"not null;default:0" json:"percentage_complete" validate:"gte=0,lte=100"`
	Status             MilestoneStatus `gorm:"type:varchar(32);index;not null" json:"status"`
	OrderSequence      int             `gorm:"index:idx_milestones_project_seq,unique;not null" json:"order_sequence"`
	ScheduledStartDate *time.Time      `json:"scheduled_start_date"`
	ScheduledEndDate   *time.Time      `json:"scheduled_end_date"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	DeletedAt          gorm.DeletedAt  `gorm:"index" json:"-"`
}
