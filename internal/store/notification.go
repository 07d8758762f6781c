package store

import (
	"github.com/dukerupert/taskflow/internal/model"
)

type NotificationStore struct {
	store *Store
}

func NewNotificationStore(s *Store) *NotificationStore {
	return &NotificationStore{store: s}
}

func (s *NotificationStore) ListForUser(userID string) ([]model.Notification, error) {
	all, err := readRecords[model.Notification](s.store, CollectionNotifications)
	if err != nil {
		return nil, err
	}
	var out []model.Notification
	for _, n := range all {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *NotificationStore) Append(n model.Notification) error {
	_, err := mutateRecords(s.store, CollectionNotifications, func(ns []model.Notification) ([]model.Notification, bool, error) {
		return append(ns, n), true, nil
	})
	return err
}

// MarkRead reports false when the id is unknown.
func (s *NotificationStore) MarkRead(id string) (bool, error) {
	return mutateRecords(s.store, CollectionNotifications, func(ns []model.Notification) ([]model.Notification, bool, error) {
		for i := range ns {
			if ns[i].ID == id {
				ns[i].Read = true
				return ns, true, nil
			}
		}
		return ns, false, nil
	})
}

// MarkAllRead flips every unread notification belonging to the user.
func (s *NotificationStore) MarkAllRead(userID string) error {
	_, err := mutateRecords(s.store, CollectionNotifications, func(ns []model.Notification) ([]model.Notification, bool, error) {
		changed := false
		for i := range ns {
			if ns[i].UserID == userID && !ns[i].Read {
				ns[i].Read = true
				changed = true
			}
		}
		return ns, changed, nil
	})
	return err
}
