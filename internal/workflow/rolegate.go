package workflow

import "github.com/capitrack/engine/internal/models"

// Operation names a workflow action an actor can initiate.
type Operation string

const (
	OpSubmitProposal     Operation = "SubmitProposal"
	OpPrioritize         Operation = "Prioritize"
	OpReject             Operation = "Reject"
	OpCancel             Operation = "Cancel"
	OpAllocateBudget     Operation = "AllocateBudget"
	OpPublishInvitation  Operation = "PublishInvitation"
	OpSubmitBid          Operation = "SubmitBid"
	OpAwardContract      Operation = "AwardContract"
	OpRecordDisbursement Operation = "RecordDisbursement"
	OpSubmitUpdate       Operation = "SubmitUpdate"
	OpApproveUpdate      Operation = "ApproveUpdate"
	OpCreateMilestone    Operation = "CreateMilestone"
	OpUpdateMilestone    Operation = "UpdateMilestone"
	OpCompleteProject    Operation = "CompleteProject"
)

// permissions is the static role gate: which roles may initiate which
// operations. System_Administrator is handled in CanPerform and does not
// appear here.
var permissions = map[Operation][]models.Role{
	OpSubmitProposal:     {models.RolePlanner},
	OpPrioritize:         {models.RoleDevelopmentCouncil},
	OpReject:             {models.RoleDevelopmentCouncil},
	OpCancel:             {models.RolePlanner, models.RoleDevelopmentCouncil},
	OpAllocateBudget:     {models.RoleBudgetOfficer},
	OpPublishInvitation:  {models.RoleBACSecretariat},
	OpSubmitBid:          {models.RoleBACSecretariat},
	OpAwardContract:      {models.RoleBACSecretariat},
	OpRecordDisbursement: {models.RoleBudgetOfficer},
	OpSubmitUpdate:       {models.RoleTechnicalInspector},
	OpApproveUpdate:      {models.RoleTechnicalInspector},
	OpCreateMilestone:    {models.RoleTechnicalInspector},
	OpUpdateMilestone:    {models.RoleTechnicalInspector},
	OpCompleteProject:    {models.RoleTechnicalInspector},
}

// CanPerform reports whether role may initiate op. System_Administrator is
// authorized for every operation.
func CanPerform(role models.Role, op Operation) bool {
	if role == models.RoleSystemAdministrator {
		return true
	}
	for _, r := range permissions[op] {
		if r == role {
			return true
		}
	}
	return false
}

// Operations returns every operation in the gate, for diagnostics and tests.
func Operations() []Operation {
	ops := make([]Operation, 0, len(permissions))
	for op := range permissions {
		ops = append(ops, op)
	}
	return ops
}
