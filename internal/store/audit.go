package store

import (
	"github.com/dukerupert/taskflow/internal/model"
)

// AuditStore only lists and appends; audit entries are immutable.
type AuditStore struct {
	store *Store
}

func NewAuditStore(s *Store) *AuditStore {
	return &AuditStore{store: s}
}

func (s *AuditStore) List() ([]model.AuditLog, error) {
	return readRecords[model.AuditLog](s.store, CollectionAuditLogs)
}

func (s *AuditStore) Append(entry model.AuditLog) error {
	_, err := mutateRecords(s.store, CollectionAuditLogs, func(logs []model.AuditLog) ([]model.AuditLog, bool, error) {
		return append(logs, entry), true, nil
	})
	return err
}
