package service

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/taskflow/internal/model"
	"github.com/dukerupert/taskflow/internal/store"
	"github.com/dukerupert/taskflow/internal/websocket"
)

// TaskService owns task mutations and their side effects: every create,
// update, delete and assignment leaves an audit entry, and assignments
// notify the assignee. The recurrence engine spawns instances through the
// same Create path so spawned tasks behave exactly like manual ones.
type TaskService struct {
	tasks         *store.TaskStore
	audit         *AuditService
	notifications *NotificationService
	hub           *websocket.Hub
	logger        *slog.Logger
	now           func() time.Time
}

func NewTaskService(
	ts *store.TaskStore,
	audit *AuditService,
	notifications *NotificationService,
	hub *websocket.Hub,
	logger *slog.Logger,
) *TaskService {
	return &TaskService{
		tasks:         ts,
		audit:         audit,
		notifications: notifications,
		hub:           hub,
		logger:        logger,
		now:           time.Now,
	}
}

// TaskInput is the data required to create a task.
type TaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    model.TaskPriority
	Status      model.TaskStatus
	AssigneeID  *string
	CreatorID   string
	Recurring   *model.Recurrence
}

// TaskPatch carries a partial update; nil fields are left unchanged. An
// AssigneeID pointing at the empty string clears the assignment.
type TaskPatch struct {
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	DueDate     *time.Time          `json:"dueDate"`
	Priority    *model.TaskPriority `json:"priority"`
	Status      *model.TaskStatus   `json:"status"`
	AssigneeID  *string             `json:"assigneeId"`
	Recurring   *model.Recurrence   `json:"recurring"`
}

// Create appends a new task, records an audit "create" entry, and notifies
// the assignee when one is set.
func (s *TaskService) Create(in TaskInput) (*model.Task, error) {
	now := s.now().UTC()
	t := model.Task{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Priority:    in.Priority,
		Status:      in.Status,
		AssigneeID:  in.AssigneeID,
		CreatorID:   in.CreatorID,
		CreatedAt:   now,
		UpdatedAt:   now,
		Recurring:   in.Recurring,
	}
	if t.Status == "" {
		t.Status = model.StatusTodo
	}
	if t.Priority == "" {
		t.Priority = model.PriorityMedium
	}

	if err := s.tasks.Append(t); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.audit.Record(in.CreatorID, model.ActionCreate, model.EntityTask, t.ID,
		fmt.Sprintf("Task %q created", t.Title))

	if t.AssigneeID != nil && *t.AssigneeID != "" {
		if _, err := s.notifications.Create(*t.AssigneeID, "New Task Assigned",
			fmt.Sprintf("You've been assigned to %q", t.Title)); err != nil {
			s.logger.Error("notify assignee", "task_id", t.ID, "error", err)
		}
	}

	if s.hub != nil {
		s.hub.Broadcast(websocket.NewMessage("task", "created", t.ID, nil))
	}

	return &t, nil
}

// Update merges the patch into the stored task and returns the result, or
// nil when the id is unknown. A change of assignee additionally records an
// audit "assign" entry and notifies the new assignee.
func (s *TaskService) Update(actorID, id string, patch TaskPatch) (*model.Task, error) {
	existing, err := s.tasks.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if existing == nil {
		return nil, nil
	}

	t := *existing
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.DueDate != nil {
		t.DueDate = patch.DueDate
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	assigneeChanged := false
	if patch.AssigneeID != nil {
		if *patch.AssigneeID == "" {
			t.AssigneeID = nil
		} else {
			if existing.AssigneeID == nil || *existing.AssigneeID != *patch.AssigneeID {
				assigneeChanged = true
			}
			t.AssigneeID = patch.AssigneeID
		}
	}
	if patch.Recurring != nil {
		t.Recurring = patch.Recurring
	}
	t.UpdatedAt = s.now().UTC()

	found, err := s.tasks.Replace(t)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	if !found {
		return nil, nil
	}

	s.audit.Record(actorID, model.ActionUpdate, model.EntityTask, t.ID,
		fmt.Sprintf("Task %q updated", t.Title))

	if assigneeChanged {
		if _, err := s.notifications.Create(*t.AssigneeID, "Task Assigned",
			fmt.Sprintf("You've been assigned to %q", t.Title)); err != nil {
			s.logger.Error("notify assignee", "task_id", t.ID, "error", err)
		}
		s.audit.Record(actorID, model.ActionAssign, model.EntityTask, t.ID,
			fmt.Sprintf("Task %q assigned to user ID: %s", t.Title, *t.AssigneeID))
	}

	if s.hub != nil {
		s.hub.Broadcast(websocket.NewMessage("task", "updated", t.ID, nil))
	}

	return &t, nil
}

// Delete removes the task and records an audit entry. It reports false when
// the id is unknown. References from other records are left dangling.
func (s *TaskService) Delete(actorID, id string) (bool, error) {
	existing, err := s.tasks.GetByID(id)
	if err != nil {
		return false, fmt.Errorf("get task: %w", err)
	}
	if existing == nil {
		return false, nil
	}

	found, err := s.tasks.Delete(id)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	if !found {
		return false, nil
	}

	s.audit.Record(actorID, model.ActionDelete, model.EntityTask, id,
		fmt.Sprintf("Task %q deleted", existing.Title))

	if s.hub != nil {
		s.hub.Broadcast(websocket.NewMessage("task", "deleted", id, nil))
	}

	return true, nil
}

func (s *TaskService) Get(id string) (*model.Task, error) {
	return s.tasks.GetByID(id)
}

// TaskFilter selects tasks; zero-valued fields do not filter.
type TaskFilter struct {
	Search     string
	Status     model.TaskStatus
	Priority   model.TaskPriority
	DueBefore  *time.Time
	AssigneeID string
	CreatorID  string
}

// Filter returns tasks matching every set filter field. DueBefore keeps
// tasks due on or before the given date; tasks without a due date never
// match it.
func (s *TaskService) Filter(f TaskFilter) ([]model.Task, error) {
	tasks, err := s.tasks.List()
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	var out []model.Task
	search := strings.ToLower(f.Search)
	for _, t := range tasks {
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.Priority != "" && t.Priority != f.Priority {
			continue
		}
		if f.DueBefore != nil {
			if t.DueDate == nil || t.DueDate.After(*f.DueBefore) {
				continue
			}
		}
		if f.AssigneeID != "" && (t.AssigneeID == nil || *t.AssigneeID != f.AssigneeID) {
			continue
		}
		if f.CreatorID != "" && t.CreatorID != f.CreatorID {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}
