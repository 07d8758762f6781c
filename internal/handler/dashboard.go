package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/taskflow/internal/auth"
	"github.com/dukerupert/taskflow/internal/service"
)

type DashboardHandler struct {
	dashboard *service.DashboardService
	logger    *slog.Logger
}

func NewDashboardHandler(ds *service.DashboardService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: ds, logger: logger}
}

// Get handles GET /api/dashboard for the authenticated user.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	data, err := h.dashboard.UserDashboard(auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("build dashboard", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build dashboard")
		return
	}
	writeJSON(w, http.StatusOK, data)
}
