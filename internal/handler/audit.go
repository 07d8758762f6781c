package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/taskflow/internal/model"
	"github.com/dukerupert/taskflow/internal/service"
)

type AuditHandler struct {
	audit  *service.AuditService
	logger *slog.Logger
}

func NewAuditHandler(audit *service.AuditService, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{audit: audit, logger: logger}
}

// List handles GET /api/audit-logs. Admin only, enforced by the router.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	logs, err := h.audit.List()
	if err != nil {
		h.logger.Error("list audit logs", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list audit logs")
		return
	}
	if logs == nil {
		logs = []model.AuditLog{}
	}
	writeJSON(w, http.StatusOK, logs)
}
