package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/taskflow/internal/auth"
	"github.com/dukerupert/taskflow/internal/model"
	"github.com/dukerupert/taskflow/internal/service"
)

type NotificationHandler struct {
	notifications *service.NotificationService
	logger        *slog.Logger
}

func NewNotificationHandler(ns *service.NotificationService, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{notifications: ns, logger: logger}
}

// List handles GET /api/notifications, scoped to the authenticated user.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	ns, err := h.notifications.ListForUser(auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("list notifications", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list notifications")
		return
	}
	if ns == nil {
		ns = []model.Notification{}
	}
	writeJSON(w, http.StatusOK, ns)
}

// UnreadCount handles GET /api/notifications/unread-count.
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.notifications.UnreadCount(auth.UserID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to count notifications")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

// MarkRead handles POST /api/notifications/{id}/read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	found, err := h.notifications.MarkRead(idParam(r))
	if err != nil {
		h.logger.Error("mark notification read", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to mark notification")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "notification not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

// MarkAllRead handles POST /api/notifications/read-all.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notifications.MarkAllRead(auth.UserID(r.Context())); err != nil {
		h.logger.Error("mark all notifications read", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to mark notifications")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}
