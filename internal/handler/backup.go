package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/taskflow/internal/backup"
)

type BackupHandler struct {
	manager *backup.Manager
	logger  *slog.Logger
}

func NewBackupHandler(m *backup.Manager, logger *slog.Logger) *BackupHandler {
	return &BackupHandler{manager: m, logger: logger}
}

// Status handles GET /api/backup/status. Admin only, enforced by the router.
func (h *BackupHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.manager.Status())
}

// RunNow handles POST /api/backup/run. Admin only.
func (h *BackupHandler) RunNow(w http.ResponseWriter, r *http.Request) {
	if !h.manager.Enabled() {
		writeError(w, http.StatusConflict, "backup is not configured")
		return
	}

	key, err := h.manager.RunNow(r.Context())
	if err != nil {
		h.logger.Error("run backup", "error", err)
		writeError(w, http.StatusInternalServerError, "backup failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"key": key})
}
