package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/capitrack/engine/internal/api/types"
	"github.com/capitrack/engine/internal/models"
	"github.com/capitrack/engine/internal/repository"
	"github.com/capitrack/engine/internal/services"
)

// BidsHandler covers the procurement surface: invitations, bids and the
// contractor registry.
type BidsHandler struct {
	bids        repository.BidRepository
	invitations repository.InvitationRepository
	contractors repository.ContractorRepository
	flow        services.WorkflowService
}

func NewBidsHandler(
	bids repository.BidRepository,
	invitations repository.InvitationRepository,
	contractors repository.ContractorRepository,
	flow services.WorkflowService,
) *BidsHandler {
	return &BidsHandler{bids: bids, invitations: invitations, contractors: contractors, flow: flow}
}

func (h *BidsHandler) Invitation(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(r)
	if !ok {
		writeErrorStr(w, http.StatusBadRequest, "invalid project id")
		return
	}
	var inv models.BidInvitation
	if err := h.invitations.GetByProject(r.Context(), id, &inv); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: inv})
}

func (h *BidsHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(r)
	if !ok {
		writeErrorStr(w, http.StatusBadRequest, "invalid project id")
		return
	}
	bids, err := h.bids.ListByProject(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: bids})
}

func (h *BidsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(r)
	if !ok {
		writeErrorStr(w, http.StatusBadRequest, "invalid project id")
		return
	}
	var req types.SubmitBidRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	contractorID, err := uuid.Parse(req.ContractorID)
	if err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid contractor id")
		return
	}
	act, ok := actor(r)
	if !ok {
		writeErrorStr(w, http.StatusUnauthorized, "missing actor identity")
		return
	}
	bid, err := h.flow.SubmitBid(r.Context(), id, act, &services.SubmitBidInput{
		ContractorID: contractorID,
		BidAmount:    req.BidAmount,
		BidDate:      req.BidDate,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, types.APIResponse{Success: true, Data: bid})
}

func (h *BidsHandler) Contractors(w http.ResponseWriter, r *http.Request) {
	list, err := h.contractors.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: list})
}
