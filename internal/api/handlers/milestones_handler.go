package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/capitrack/engine/internal/api/types"
	"github.com/capitrack/engine/internal/repository"
	"github.com/capitrack/engine/internal/services"
)

type MilestonesHandler struct {
	milestones repository.MilestoneRepository
	flow       services.WorkflowService
}

func NewMilestonesHandler(milestones repository.MilestoneRepository, flow services.WorkflowService) *MilestonesHandler {
	return &MilestonesHandler{milestones: milestones, flow: flow}
}

func (h *MilestonesHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(r)
	if !ok {
		writeErrorStr(w, http.StatusBadRequest, "invalid project id")
		return
	}
	items, err := h.milestones.ListByProject(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: items})
}

func (h *MilestonesHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(r)
	if !ok {
		writeErrorStr(w, http.StatusBadRequest, "invalid project id")
		return
	}
	var req types.CreateMilestoneRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	act, ok := actor(r)
	if !ok {
		writeErrorStr(w, http.StatusUnauthorized, "missing actor identity")
		return
	}
	m, err := h.flow.CreateMilestone(r.Context(), id, act, &services.CreateMilestoneInput{
		Title:              req.Title,
		Description:        req.Description,
		PercentageComplete: req.PercentageComplete,
		ScheduledStartDate: req.ScheduledStartDate,
		ScheduledEndDate:   req.ScheduledEndDate,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, types.APIResponse{Success: true, Data: m})
}

func (h *MilestonesHandler) Progress(w http.ResponseWriter, r *http.Request) {
	milestoneID, err := uuid.Parse(chi.URLParam(r, "milestoneID"))
	if err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid milestone id")
		return
	}
	var req types.MilestoneProgressRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	act, ok := actor(r)
	if !ok {
		writeErrorStr(w, http.StatusUnauthorized, "missing actor identity")
		return
	}
	m, err := h.flow.UpdateMilestoneProgress(r.Context(), milestoneID, act, req.PercentageComplete)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: m})
}
