package model

import "time"

// TaskStatus values are persisted verbatim and must match the stored format.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "inProgress"
	StatusReview     TaskStatus = "review"
	StatusDone       TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type RecurrenceType string

const (
	RecurDaily   RecurrenceType = "daily"
	RecurWeekly  RecurrenceType = "weekly"
	RecurMonthly RecurrenceType = "monthly"
)

func (r RecurrenceType) Valid() bool {
	switch r {
	case RecurDaily, RecurWeekly, RecurMonthly:
		return true
	}
	return false
}

// Recurrence marks a task as a recurrence template. NextOccurrence is the
// next calendar date the template is due; after creation it is written only
// by the recurrence engine.
type Recurrence struct {
	Type           RecurrenceType `json:"type"`
	NextOccurrence time.Time      `json:"nextOccurrence"`
}

type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueDate     *time.Time   `json:"dueDate"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	AssigneeID  *string      `json:"assigneeId"`
	CreatorID   string       `json:"creatorId"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Recurring   *Recurrence  `json:"recurring,omitempty"`
}
