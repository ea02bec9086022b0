package workflow

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/capitrack/engine/internal/models"
)

func TestCanPerform(t *testing.T) {
	cases := []struct {
		name string
		role models.Role
		op   Operation
		want bool
	}{
		{"planner submits proposal", models.RolePlanner, OpSubmitProposal, true},
		{"planner cannot prioritize", models.RolePlanner, OpPrioritize, false},
		{"planner may cancel", models.RolePlanner, OpCancel, true},
		{"council prioritizes", models.RoleDevelopmentCouncil, OpPrioritize, true},
		{"council rejects", models.RoleDevelopmentCouncil, OpReject, true},
		{"council cannot allocate budget", models.RoleDevelopmentCouncil, OpAllocateBudget, false},
		{"budget officer allocates", models.RoleBudgetOfficer, OpAllocateBudget, true},
		{"budget officer records disbursement", models.RoleBudgetOfficer, OpRecordDisbursement, true},
		{"budget officer cannot award", models.RoleBudgetOfficer, OpAwardContract, false},
		{"bac publishes invitation", models.RoleBACSecretariat, OpPublishInvitation, true},
		{"bac awards contract", models.RoleBACSecretariat, OpAwardContract, true},
		{"bac cannot complete project", models.RoleBACSecretariat, OpCompleteProject, false},
		{"inspector completes project", models.RoleTechnicalInspector, OpCompleteProject, true},
		{"inspector approves update", models.RoleTechnicalInspector, OpApproveUpdate, true},
		{"inspector cannot submit proposal", models.RoleTechnicalInspector, OpSubmitProposal, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, CanPerform(tc.role, tc.op))
		})
	}
}

func TestCanPerform_SystemAdministrator(t *testing.T) {
	for _, op := range Operations() {
		require.True(t, CanPerform(models.RoleSystemAdministrator, op), "admin should be allowed %s", op)
	}
}

func TestCanPerform_UnknownRole(t *testing.T) {
	for _, op := range Operations() {
		require.False(t, CanPerform(models.Role("Intern"), op), "unknown role should be denied %s", op)
	}
}
