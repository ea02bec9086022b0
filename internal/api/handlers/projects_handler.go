package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/capitrack/engine/internal/api/types"
	"github.com/capitrack/engine/internal/models"
	"github.com/capitrack/engine/internal/repository"
	"github.com/capitrack/engine/internal/services"
)

// ProjectsHandler serves project reads and every workflow transition.
type ProjectsHandler struct {
	projects repository.ProjectRepository
	history  repository.HistoryRepository
	flow     services.WorkflowService
}

func NewProjectsHandler(projects repository.ProjectRepository, history repository.HistoryRepository, flow services.WorkflowService) *ProjectsHandler {
	return &ProjectsHandler{projects: projects, history: history, flow: flow}
}

func projectID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}

func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		items []models.Project
		err   error
	)
	if r.URL.Query().Get("mine") == "true" {
		act, ok := actor(r)
		if !ok {
			writeErrorStr(w, http.StatusUnauthorized, "missing actor identity")
			return
		}
		items, err = h.projects.ListByCreator(r.Context(), act.ID)
	} else if raw := r.URL.Query().Get("status"); raw != "" {
		statuses := []models.ProjectStatus{}
		for _, s := range strings.Split(raw, ",") {
			statuses = append(statuses, models.ProjectStatus(strings.TrimSpace(s)))
		}
		items, err = h.projects.ListByStatus(r.Context(), statuses...)
	} else {
		items, err = h.projects.ListAll(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	start := (page - 1) * size
	end := start + size
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data:    items[start:end],
		Meta:    &types.Meta{Page: page, PageSize: size, Total: int64(len(items))},
	})
}

func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(r)
	if !ok {
		writeErrorStr(w, http.StatusBadRequest, "invalid project id")
		return
	}
	var p models.Project
	if err := h.projects.GetByID(r.Context(), id, &p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: p})
}

func (h *ProjectsHandler) History(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(r)
	if !ok {
		writeErrorStr(w, http.StatusBadRequest, "invalid project id")
		return
	}
	entries, err := h.history.ListByProject(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: entries})
}

func (h *ProjectsHandler) SubmitProposal(w http.ResponseWriter, r *http.Request) {
	var req types.SubmitProposalRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	act, ok := actor(r)
	if !ok {
		writeErrorStr(w, http.StatusUnauthorized, "missing actor identity")
		return
	}
	p, err := h.flow.SubmitProposal(r.Context(), act, &services.SubmitProposalInput{
		Title:              req.Title,
		Description:        req.Description,
		Barangay:           req.Barangay,
		Category:           models.ProjectCategory(req.Category),
		ProblemDescription: req.ProblemDescription,
		ProposedSolution:   req.ProposedSolution,
		EstimatedCost:      req.EstimatedCost,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, types.APIResponse{Success: true, Data: p})
}

type reviewFunc func(ctx context.Context, projectID uuid.UUID, act services.Actor, comments string) (*models.Project, error)

// review handles the comment-only transitions (prioritize, reject, cancel).
// The body is optional; an empty one means no comments.
func (h *ProjectsHandler) review(w http.ResponseWriter, r *http.Request, op reviewFunc) {
	id, ok := projectID(r)
	if !ok {
		writeErrorStr(w, http.StatusBadRequest, "invalid project id")
		return
	}
	var req types.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	act, ok := actor(r)
	if !ok {
		writeErrorStr(w, http.StatusUnauthorized, "missing actor identity")
		return
	}
	p, err := op(r.Context(), id, act, req.Comments)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: p})
}

func (h *ProjectsHandler) Prioritize(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.flow.Prioritize)
}

func (h *ProjectsHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.flow.Reject)
}

func (h *ProjectsHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.flow.Cancel)
}

func (h *ProjectsHandler) AllocateBudget(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(r)
	if !ok {
		writeErrorStr(w, http.StatusBadRequest, "invalid project id")
		return
	}
	var req types.AllocateBudgetRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	act, ok := actor(r)
	if !ok {
		writeErrorStr(w, http.StatusUnauthorized, "missing actor identity")
		return
	}
	p, err := h.flow.AllocateBudget(r.Context(), id, act, &services.AllocateBudgetInput{
		BudgetAmount:   req.BudgetAmount,
		FundSourceCode: req.FundSourceCode,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: p})
}

func (h *ProjectsHandler) PublishInvitation(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(r)
	if !ok {
		writeErrorStr(w, http.StatusBadRequest, "invalid project id")
		return
	}
	var req types.PublishInvitationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	act, ok := actor(r)
	if !ok {
		writeErrorStr(w, http.StatusUnauthorized, "missing actor identity")
		return
	}
	p, err := h.flow.PublishInvitation(r.Context(), id, act, &services.PublishInvitationInput{
		Title:                req.Title,
		Description:          req.Description,
		Requirements:         req.Requirements,
		BidOpeningDate:       req.BidOpeningDate,
		BidClosingDate:       req.BidClosingDate,
		PreBidConferenceDate: req.PreBidConferenceDate,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: p})
}

func (h *ProjectsHandler) AwardContract(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(r)
	if !ok {
		writeErrorStr(w, http.StatusBadRequest, "invalid project id")
		return
	}
	var req types.AwardContractRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	bidID, err := uuid.Parse(req.BidID)
	if err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid bid id")
		return
	}
	act, ok := actor(r)
	if !ok {
		writeErrorStr(w, http.StatusUnauthorized, "missing actor identity")
		return
	}
	p, err := h.flow.AwardContract(r.Context(), id, act, bidID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: p})
}

func (h *ProjectsHandler) RecordDisbursement(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(r)
	if !ok {
		writeErrorStr(w, http.StatusBadRequest, "invalid project id")
		return
	}
	var req types.RecordDisbursementRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	act, ok := actor(r)
	if !ok {
		writeErrorStr(w, http.StatusUnauthorized, "missing actor identity")
		return
	}
	p, err := h.flow.RecordDisbursement(r.Context(), id, act, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: p})
}

func (h *ProjectsHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(r)
	if !ok {
		writeErrorStr(w, http.StatusBadRequest, "invalid project id")
		return
	}
	act, ok := actor(r)
	if !ok {
		writeErrorStr(w, http.StatusUnauthorized, "missing actor identity")
		return
	}
	p, err := h.flow.CompleteProject(r.Context(), id, act)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: p})
}
