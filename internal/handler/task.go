package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dukerupert/taskflow/internal/auth"
	"github.com/dukerupert/taskflow/internal/model"
	"github.com/dukerupert/taskflow/internal/service"
)

type TaskHandler struct {
	tasks  *service.TaskService
	logger *slog.Logger
}

func NewTaskHandler(tasks *service.TaskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, logger: logger}
}

type taskRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	DueDate     *time.Time         `json:"dueDate"`
	Priority    model.TaskPriority `json:"priority"`
	Status      model.TaskStatus   `json:"status"`
	AssigneeID  *string            `json:"assigneeId"`
	Recurring   *model.Recurrence  `json:"recurring"`
}

func validateTaskEnums(status model.TaskStatus, priority model.TaskPriority, recurring *model.Recurrence) string {
	if status != "" && !status.Valid() {
		return "invalid status"
	}
	if priority != "" && !priority.Valid() {
		return "invalid priority"
	}
	if recurring != nil && !recurring.Type.Valid() {
		return "invalid recurrence type"
	}
	return ""
}

// Create handles POST /api/tasks. The authenticated user becomes the
// creator.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if msg := validateTaskEnums(req.Status, req.Priority, req.Recurring); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	task, err := h.tasks.Create(service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Status:      req.Status,
		AssigneeID:  req.AssigneeID,
		CreatorID:   auth.UserID(r.Context()),
		Recurring:   req.Recurring,
	})
	if err != nil {
		h.logger.Error("create task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create task")
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

// List handles GET /api/tasks with optional search, status, priority,
// dueBefore, assigneeId, and creatorId query parameters.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := service.TaskFilter{
		Search:     q.Get("search"),
		Status:     model.TaskStatus(q.Get("status")),
		Priority:   model.TaskPriority(q.Get("priority")),
		AssigneeID: q.Get("assigneeId"),
		CreatorID:  q.Get("creatorId"),
	}

	if msg := validateTaskEnums(filter.Status, filter.Priority, nil); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if due := q.Get("dueBefore"); due != "" {
		t, err := parseDate(due)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid dueBefore date")
			return
		}
		filter.DueBefore = &t
	}

	tasks, err := h.tasks.Filter(filter)
	if err != nil {
		h.logger.Error("list tasks", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

// Get handles GET /api/tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	task, err := h.tasks.Get(idParam(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get task")
		return
	}
	if task == nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Update handles PUT /api/tasks/{id}. Absent fields are left unchanged; an
// empty assigneeId clears the assignment.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch service.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		writeError(w, http.StatusBadRequest, "title cannot be empty")
		return
	}
	var status model.TaskStatus
	if patch.Status != nil {
		status = *patch.Status
	}
	var priority model.TaskPriority
	if patch.Priority != nil {
		priority = *patch.Priority
	}
	if msg := validateTaskEnums(status, priority, patch.Recurring); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	task, err := h.tasks.Update(auth.UserID(r.Context()), idParam(r), patch)
	if err != nil {
		h.logger.Error("update task", "task_id", idParam(r), "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update task")
		return
	}
	if task == nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Delete handles DELETE /api/tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	found, err := h.tasks.Delete(auth.UserID(r.Context()), idParam(r))
	if err != nil {
		h.logger.Error("delete task", "task_id", idParam(r), "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete task")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// parseDate accepts either a full RFC 3339 timestamp or a bare date.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
