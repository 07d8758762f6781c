package service

import (
	"fmt"
	"time"

	"github.com/dukerupert/taskflow/internal/model"
	"github.com/dukerupert/taskflow/internal/store"
)

// DashboardService is the read-side aggregation behind the dashboard page.
type DashboardService struct {
	tasks *store.TaskStore
	now   func() time.Time
}

func NewDashboardService(ts *store.TaskStore) *DashboardService {
	return &DashboardService{tasks: ts, now: time.Now}
}

type StatusCounts struct {
	Todo       int `json:"todo"`
	InProgress int `json:"inProgress"`
	Review     int `json:"review"`
	Done       int `json:"done"`
}

type PriorityCounts struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

type DashboardData struct {
	AssignedTasks   []model.Task   `json:"assignedTasks"`
	CreatedTasks    []model.Task   `json:"createdTasks"`
	OverdueTasks    []model.Task   `json:"overdueTasks"`
	TasksByStatus   StatusCounts   `json:"tasksByStatus"`
	TasksByPriority PriorityCounts `json:"tasksByPriority"`
	CompletionRate  float64        `json:"completionRate"`
}

// UserDashboard aggregates the user's assigned tasks. A task is overdue when
// its due date has passed and it is not done. The completion rate is 0 for a
// user with no assigned tasks.
func (s *DashboardService) UserDashboard(userID string) (*DashboardData, error) {
	tasks, err := s.tasks.List()
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	now := s.now()
	data := &DashboardData{
		AssignedTasks: []model.Task{},
		CreatedTasks:  []model.Task{},
		OverdueTasks:  []model.Task{},
	}

	doneCount := 0
	for _, t := range tasks {
		if t.CreatorID == userID {
			data.CreatedTasks = append(data.CreatedTasks, t)
		}
		if t.AssigneeID == nil || *t.AssigneeID != userID {
			continue
		}
		data.AssignedTasks = append(data.AssignedTasks, t)

		if t.DueDate != nil && t.Status != model.StatusDone && t.DueDate.Before(now) {
			data.OverdueTasks = append(data.OverdueTasks, t)
		}

		switch t.Status {
		case model.StatusTodo:
			data.TasksByStatus.Todo++
		case model.StatusInProgress:
			data.TasksByStatus.InProgress++
		case model.StatusReview:
			data.TasksByStatus.Review++
		case model.StatusDone:
			data.TasksByStatus.Done++
			doneCount++
		}

		switch t.Priority {
		case model.PriorityLow:
			data.TasksByPriority.Low++
		case model.PriorityMedium:
			data.TasksByPriority.Medium++
		case model.PriorityHigh:
			data.TasksByPriority.High++
		}
	}

	if n := len(data.AssignedTasks); n > 0 {
		data.CompletionRate = float64(doneCount) / float64(n)
	}

	return data, nil
}
