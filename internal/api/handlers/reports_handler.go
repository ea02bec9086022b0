package handlers

import (
	"net/http"

	"github.com/capitrack/engine/internal/api/types"
	"github.com/capitrack/engine/internal/services"
)

type ReportsHandler struct {
	reports services.ReportService
}

func NewReportsHandler(reports services.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reports}
}

func (h *ReportsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reports.Dashboard(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: stats})
}
