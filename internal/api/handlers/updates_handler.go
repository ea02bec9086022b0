package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/capitrack/engine/internal/api/types"
	"github.com/capitrack/engine/internal/repository"
	"github.com/capitrack/engine/internal/services"
)

type UpdatesHandler struct {
	updates repository.UpdateRepository
	flow    services.WorkflowService
}

func NewUpdatesHandler(updates repository.UpdateRepository, flow services.WorkflowService) *UpdatesHandler {
	return &UpdatesHandler{updates: updates, flow: flow}
}

func (h *UpdatesHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(r)
	if !ok {
		writeErrorStr(w, http.StatusBadRequest, "invalid project id")
		return
	}
	items, err := h.updates.ListByProject(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: items})
}

func (h *UpdatesHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	items, err := h.updates.ListPending(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: items})
}

func (h *UpdatesHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(r)
	if !ok {
		writeErrorStr(w, http.StatusBadRequest, "invalid project id")
		return
	}
	var req types.SubmitUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	act, ok := actor(r)
	if !ok {
		writeErrorStr(w, http.StatusUnauthorized, "missing actor identity")
		return
	}
	upd, err := h.flow.SubmitUpdate(r.Context(), id, act, &services.SubmitUpdateInput{
		PercentageComplete: req.PercentageComplete,
		ReportText:         req.ReportText,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, types.APIResponse{Success: true, Data: upd})
}

func (h *UpdatesHandler) Approve(w http.ResponseWriter, r *http.Request) {
	updateID, err := uuid.Parse(chi.URLParam(r, "updateID"))
	if err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid update id")
		return
	}
	act, ok := actor(r)
	if !ok {
		writeErrorStr(w, http.StatusUnauthorized, "missing actor identity")
		return
	}
	upd, err := h.flow.ApproveUpdate(r.Context(), updateID, act)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: upd})
}
