package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ActionType names a workflow action in the audit trail.
type ActionType string

const (
	ActionProposalSubmitted    ActionType = "Proposal_Submitted"
	ActionPrioritized          ActionType = "Prioritized"
	ActionRejected             ActionType = "Rejected"
	ActionCancelled            ActionType = "Cancelled"
	ActionBudgetAllocated      ActionType = "Budget_Allocated"
	ActionBidInvitationCreated ActionType = "Bid_Invitation_Created"
	ActionContractAwarded      ActionType = "Contract_Awarded"
	ActionDisbursementRecorded ActionType = "Disbursement_Recorded"
	ActionUpdateApproved       ActionType = "Update_Approved"
	ActionProjectCompleted     ActionType = "Project_Completed"
)

// ProjectHistory is one append-only audit entry. Rows are never updated or
// deleted; the id is generated by the caller so a failed append can be
// retried without producing duplicates.
type ProjectHistory struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID     uuid.UUID      `gorm:"type:uuid;index;not null" json:"project_id"`
	ChangedBy     uuid.UUID      `gorm:"type:uuid;not null" json:"changed_by"`
	ActionType    ActionType     `gorm:"type:varchar(32);index;not null" json:"action_type"`
	OldStatus     ProjectStatus  `gorm:"type:varchar(32)" json:"old_status"`
	NewStatus     ProjectStatus  `gorm:"type:varchar(32);not null" json:"new_status"`
	ChangeDetails datatypes.JSON `gorm:"type:jsonb" json:"change_details"`
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`
}

// TableName keeps the audit table name explicit.
func (ProjectHistory) TableName() string { return "project_history" }
