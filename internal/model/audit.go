package model

import "time"

type AuditAction string

const (
	ActionCreate AuditAction = "create"
	ActionUpdate AuditAction = "update"
	ActionDelete AuditAction = "delete"
	ActionAssign AuditAction = "assign"
)

type EntityType string

const (
	EntityTask EntityType = "task"
	EntityUser EntityType = "user"
)

// AuditLog is append-only; nothing in the application mutates or deletes one.
type AuditLog struct {
	ID         string      `json:"id"`
	UserID     string      `json:"userId"`
	Action     AuditAction `json:"action"`
	EntityType EntityType  `json:"entityType"`
	EntityID   string      `json:"entityId"`
	Details    string      `json:"details"`
	Timestamp  time.Time   `json:"timestamp"`
}
