package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/taskflow/internal/model"
	"github.com/dukerupert/taskflow/internal/store"
)

// AuditService appends immutable audit entries for every task and user
// mutation. Entries are never updated or deleted through the application.
type AuditService struct {
	audit  *store.AuditStore
	logger *slog.Logger
	now    func() time.Time
}

func NewAuditService(as *store.AuditStore, logger *slog.Logger) *AuditService {
	return &AuditService{audit: as, logger: logger, now: time.Now}
}

// Record appends one entry. Failures are logged and swallowed: an audit
// write error must not undo or block the mutation it describes.
func (s *AuditService) Record(userID string, action model.AuditAction, entityType model.EntityType, entityID, details string) {
	entry := model.AuditLog{
		ID:         uuid.New().String(),
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		Timestamp:  s.now().UTC(),
	}
	if err := s.audit.Append(entry); err != nil {
		s.logger.Error("append audit entry", "action", action, "entity", entityType, "error", err)
	}
}

// List returns all entries, newest last.
func (s *AuditService) List() ([]model.AuditLog, error) {
	logs, err := s.audit.List()
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return logs, nil
}
