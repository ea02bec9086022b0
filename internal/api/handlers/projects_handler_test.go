package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/capitrack/engine/internal/api/middleware"
	"github.com/capitrack/engine/internal/api/types"
	"github.com/capitrack/engine/internal/models"
	"github.com/capitrack/engine/internal/services"
	appErr "github.com/capitrack/engine/pkg/errors"
	"github.com/capitrack/engine/pkg/logger"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("info", "json"); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

type mockWorkflow struct {
	mock.Mock
}

func (m *mockWorkflow) SubmitProposal(ctx context.Context, actor services.Actor, input *services.SubmitProposalInput) (*models.Project, error) {
	args := m.Called(ctx, actor, input)
	if v := args.Get(0); v != nil {
		return v.(*models.Project), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockWorkflow) Prioritize(ctx context.Context, projectID uuid.UUID, actor services.Actor, comments string) (*models.Project, error) {
	args := m.Called(ctx, projectID, actor, comments)
	if v := args.Get(0); v != nil {
		return v.(*models.Project), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockWorkflow) Reject(ctx context.Context, projectID uuid.UUID, actor services.Actor, comments string) (*models.Project, error) {
	args := m.Called(ctx, projectID, actor, comments)
	if v := args.Get(0); v != nil {
		return v.(*models.Project), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockWorkflow) Cancel(ctx context.Context, projectID uuid.UUID, actor services.Actor, reason string) (*models.Project, error) {
	args := m.Called(ctx, projectID, actor, reason)
	if v := args.Get(0); v != nil {
		return v.(*models.Project), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockWorkflow) AllocateBudget(ctx context.Context, projectID uuid.UUID, actor services.Actor, input *services.AllocateBudgetInput) (*models.Project, error) {
	args := m.Called(ctx, projectID, actor, input)
	if v := args.Get(0); v != nil {
		return v.(*models.Project), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockWorkflow) PublishInvitation(ctx context.Context, projectID uuid.UUID, actor services.Actor, input *services.PublishInvitationInput) (*models.Project, error) {
	args := m.Called(ctx, projectID, actor, input)
	if v := args.Get(0); v != nil {
		return v.(*models.Project), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockWorkflow) SubmitBid(ctx context.Context, projectID uuid.UUID, actor services.Actor, input *services.SubmitBidInput) (*models.Bid, error) {
	args := m.Called(ctx, projectID, actor, input)
	if v := args.Get(0); v != nil {
		return v.(*models.Bid), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockWorkflow) AwardContract(ctx context.Context, projectID uuid.UUID, actor services.Actor, bidID uuid.UUID) (*models.Project, error) {
	args := m.Called(ctx, projectID, actor, bidID)
	if v := args.Get(0); v != nil {
		return v.(*models.Project), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockWorkflow) RecordDisbursement(ctx context.Context, projectID uuid.UUID, actor services.Actor, amount float64) (*models.Project, error) {
	args := m.Called(ctx, projectID, actor, amount)
	if v := args.Get(0); v != nil {
		return v.(*models.Project), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockWorkflow) SubmitUpdate(ctx context.Context, projectID uuid.UUID, actor services.Actor, input *services.SubmitUpdateInput) (*models.ProjectUpdate, error) {
	args := m.Called(ctx, projectID, actor, input)
	if v := args.Get(0); v != nil {
		return v.(*models.ProjectUpdate), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockWorkflow) ApproveUpdate(ctx context.Context, updateID uuid.UUID, actor services.Actor) (*models.ProjectUpdate, error) {
	args := m.Called(ctx, updateID, actor)
	if v := args.Get(0); v != nil {
		return v.(*models.ProjectUpdate), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockWorkflow) CreateMilestone(ctx context.Context, projectID uuid.UUID, actor services.Actor, input *services.CreateMilestoneInput) (*models.Milestone, error) {
	args := m.Called(ctx, projectID, actor, input)
	if v := args.Get(0); v != nil {
		return v.(*models.Milestone), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockWorkflow) UpdateMilestoneProgress(ctx context.Context, milestoneID uuid.UUID, actor services.Actor, percent int) (*models.Milestone, error) {
	args := m.Called(ctx, milestoneID, actor, percent)
	if v := args.Get(0); v != nil {
		return v.(*models.Milestone), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockWorkflow) CompleteProject(ctx context.Context, projectID uuid.UUID, actor services.Actor) (*models.Project, error) {
	args := m.Called(ctx, projectID, actor)
	if v := args.Get(0); v != nil {
		return v.(*models.Project), args.Error(1)
	}
	return nil, args.Error(1)
}

// authedRequest builds a request carrying the auth context and the chi id param.
func authedRequest(method, target string, body []byte, projectID uuid.UUID, act services.Actor) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, act.ID.String())
	ctx = context.WithValue(ctx, middleware.UserRoleKey, string(act.Role))

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", projectID.String())
	ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	return req.WithContext(ctx)
}

func TestProjectsHandler_Prioritize(t *testing.T) {
	flow := &mockWorkflow{}
	h := NewProjectsHandler(nil, nil, flow)
	act := services.Actor{ID: uuid.New(), Role: models.RoleDevelopmentCouncil}
	projectID := uuid.New()

	flow.On("Prioritize", mock.Anything, projectID, act, "looks viable").
		Return(&models.Project{ID: projectID, Status: models.StatusPrioritized}, nil).Once()

	body, _ := json.Marshal(types.ReviewRequest{Comments: "looks viable"})
	req := authedRequest(http.MethodPost, "/api/v1/projects/"+projectID.String()+"/prioritize", body, projectID, act)
	rr := httptest.NewRecorder()
	h.Prioritize(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp types.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	flow.AssertExpectations(t)
}

func TestProjectsHandler_Prioritize_EmptyBody(t *testing.T) {
	flow := &mockWorkflow{}
	h := NewProjectsHandler(nil, nil, flow)
	act := services.Actor{ID: uuid.New(), Role: models.RoleDevelopmentCouncil}
	projectID := uuid.New()

	flow.On("Prioritize", mock.Anything, projectID, act, "").
		Return(&models.Project{ID: projectID, Status: models.StatusPrioritized}, nil).Once()

	req := authedRequest(http.MethodPost, "/x", nil, projectID, act)
	rr := httptest.NewRecorder()
	h.Prioritize(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	flow.AssertExpectations(t)
}

func TestProjectsHandler_Prioritize_Forbidden(t *testing.T) {
	flow := &mockWorkflow{}
	h := NewProjectsHandler(nil, nil, flow)
	act := services.Actor{ID: uuid.New(), Role: models.RolePlanner}
	projectID := uuid.New()

	flow.On("Prioritize", mock.Anything, projectID, act, "").
		Return(nil, appErr.New(appErr.CodeForbidden, "role Planner may not perform Prioritize")).Once()

	req := authedRequest(http.MethodPost, "/x", nil, projectID, act)
	rr := httptest.NewRecorder()
	h.Prioritize(rr, req)

	require.Equal(t, http.StatusForbidden, rr.Code)
	var resp types.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.Equal(t, "forbidden", resp.Error.Code)
	flow.AssertExpectations(t)
}

func TestProjectsHandler_AllocateBudget_PreconditionMapsTo422(t *testing.T) {
	flow := &mockWorkflow{}
	h := NewProjectsHandler(nil, nil, flow)
	act := services.Actor{ID: uuid.New(), Role: models.RoleBudgetOfficer}
	projectID := uuid.New()

	flow.On("AllocateBudget", mock.Anything, projectID, act, mock.Anything).
		Return(nil, appErr.New(appErr.CodeFailedPrecondition, "project is Funded, expected Prioritized")).Once()

	body, _ := json.Marshal(types.AllocateBudgetRequest{BudgetAmount: 900_000, FundSourceCode: "2024-01"})
	req := authedRequest(http.MethodPost, "/x", body, projectID, act)
	rr := httptest.NewRecorder()
	h.AllocateBudget(rr, req)

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	flow.AssertExpectations(t)
}

func TestProjectsHandler_AllocateBudget_RejectsInvalidPayload(t *testing.T) {
	flow := &mockWorkflow{}
	h := NewProjectsHandler(nil, nil, flow)
	act := services.Actor{ID: uuid.New(), Role: models.RoleBudgetOfficer}
	projectID := uuid.New()

	body, _ := json.Marshal(map[string]any{"approved_budget_amount": -5})
	req := authedRequest(http.MethodPost, "/x", body, projectID, act)
	rr := httptest.NewRecorder()
	h.AllocateBudget(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	flow.AssertNotCalled(t, "AllocateBudget", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProjectsHandler_BadProjectID(t *testing.T) {
	flow := &mockWorkflow{}
	h := NewProjectsHandler(nil, nil, flow)

	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "not-a-uuid")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	h.Complete(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	flow.AssertNotCalled(t, "CompleteProject", mock.Anything, mock.Anything, mock.Anything)
}
