package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/taskflow/internal/model"
	"github.com/dukerupert/taskflow/internal/push"
	"github.com/dukerupert/taskflow/internal/store"
	"github.com/dukerupert/taskflow/internal/websocket"
)

// NotificationService creates and queries per-user in-app notifications, and
// mirrors them to web push when the user has registered a subscription.
type NotificationService struct {
	notifications *store.NotificationStore
	users         *store.UserStore
	pushStore     *store.PushStore
	pushSvc       *push.Service // nil when VAPID keys are not configured
	hub           *websocket.Hub
	logger        *slog.Logger
	now           func() time.Time
}

func NewNotificationService(
	ns *store.NotificationStore,
	us *store.UserStore,
	ps *store.PushStore,
	pushSvc *push.Service,
	hub *websocket.Hub,
	logger *slog.Logger,
) *NotificationService {
	return &NotificationService{
		notifications: ns,
		users:         us,
		pushStore:     ps,
		pushSvc:       pushSvc,
		hub:           hub,
		logger:        logger,
		now:           time.Now,
	}
}

// Create stores an unread notification for the user. The in-app record is
// always written; web push delivery additionally honors the user's muted
// preference.
func (s *NotificationService) Create(userID, title, message string) (*model.Notification, error) {
	n := model.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Read:      false,
		CreatedAt: s.now().UTC(),
	}
	if err := s.notifications.Append(n); err != nil {
		return nil, fmt.Errorf("append notification: %w", err)
	}

	if s.hub != nil {
		s.hub.Broadcast(websocket.NewMessage("notification", "created", n.ID, map[string]any{
			"user_id": userID,
		}))
	}

	s.sendPush(userID, title, message)

	return &n, nil
}

func (s *NotificationService) sendPush(userID, title, message string) {
	if s.pushSvc == nil {
		return
	}

	user, err := s.users.GetByID(userID)
	if err != nil || user == nil {
		return
	}
	if user.NotificationPreferences.Muted {
		return
	}

	subs, err := s.pushStore.ListForUser(userID)
	if err != nil {
		s.logger.Error("list push subscriptions", "user_id", userID, "error", err)
		return
	}

	payload := push.Payload{Title: title, Body: message, URL: "/notifications"}
	for i := range subs {
		if err := s.pushSvc.Send(&subs[i], payload); err != nil {
			if errors.Is(err, push.ErrExpired) {
				if derr := s.pushStore.DeleteByEndpoint(subs[i].Endpoint); derr != nil {
					s.logger.Error("delete expired subscription", "error", derr)
				}
				continue
			}
			s.logger.Error("send push", "user_id", userID, "error", err)
		}
	}
}

func (s *NotificationService) ListForUser(userID string) ([]model.Notification, error) {
	return s.notifications.ListForUser(userID)
}

// UnreadCount returns how many of the user's notifications are unread.
func (s *NotificationService) UnreadCount(userID string) (int, error) {
	ns, err := s.notifications.ListForUser(userID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range ns {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

// MarkRead reports false when the id is unknown.
func (s *NotificationService) MarkRead(id string) (bool, error) {
	return s.notifications.MarkRead(id)
}

func (s *NotificationService) MarkAllRead(userID string) error {
	return s.notifications.MarkAllRead(userID)
}
