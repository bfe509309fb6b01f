package handlers

import (
	"context"
	"net/http"

	"github.com/xavierca1/agency-admin/internal/usecase"
)

type DashboardService interface {
	Get(ctx context.Context) (*usecase.DashboardStats, error)
}

type DashboardHandler struct {
	Dashboard DashboardService
}

func NewDashboardHandler(dashboard DashboardService) *DashboardHandler {
	return &DashboardHandler{Dashboard: dashboard}
}

// Handle (GET /api/dashboard)
func (h *DashboardHandler) Handle(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Dashboard.Get(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
