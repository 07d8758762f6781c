// Package recur advances recurring task templates and spawns their next
// instances.
package recur

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dukerupert/taskflow/internal/model"
	"github.com/dukerupert/taskflow/internal/service"
	"github.com/dukerupert/taskflow/internal/store"
)

// Recorder receives engine observations. Implemented by the metrics
// collector; a nil Recorder disables recording.
type Recorder interface {
	RecordEnginePass()
	RecordTasksSpawned(count int)
	RecordEngineTaskFailure()
}

// Engine scans the task collection for recurrence templates that are due and
// processes each one exactly once per due cycle: the template's schedule is
// advanced by one period and a fresh non-recurring instance is created
// through the normal task creation path, so the spawn carries the same audit
// entry and assignee notification a manual creation would.
type Engine struct {
	tasks   *store.TaskStore
	service *service.TaskService
	metrics Recorder
	logger  *slog.Logger
	now     func() time.Time
}

func NewEngine(ts *store.TaskStore, svc *service.TaskService, rec Recorder, logger *slog.Logger) *Engine {
	return &Engine{
		tasks:   ts,
		service: svc,
		metrics: rec,
		logger:  logger,
		now:     time.Now,
	}
}

// dateOnly truncates a timestamp to its calendar date. Due-ness ignores
// time of day entirely.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// nextAfter advances a schedule by exactly one period from its current
// value, never from today. A template idle for several periods catches up
// one period per pass. Monthly advancement uses calendar arithmetic with
// Go's normalization, so Jan 31 advances to Mar 2 or Mar 3.
func nextAfter(typ model.RecurrenceType, current time.Time) (time.Time, bool) {
	switch typ {
	case model.RecurDaily:
		return current.AddDate(0, 0, 1), true
	case model.RecurWeekly:
		return current.AddDate(0, 0, 7), true
	case model.RecurMonthly:
		return current.AddDate(0, 1, 0), true
	}
	return time.Time{}, false
}

// Process runs one engine pass. A failure while spawning one template's
// instance is logged and isolated: the template's schedule is not advanced
// (the next pass retries it) and the remaining templates still process. All
// advanced templates are persisted in a single batch write at the end of
// the pass.
func (e *Engine) Process() error {
	tasks, err := e.tasks.List()
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}

	today := dateOnly(e.now())
	advanced := make(map[string]model.Task)
	spawned := 0
	failures := 0

	for _, t := range tasks {
		if t.Recurring == nil {
			continue
		}
		if dateOnly(t.Recurring.NextOccurrence).After(today) {
			continue
		}

		next, ok := nextAfter(t.Recurring.Type, t.Recurring.NextOccurrence)
		if !ok {
			// Unrecognized recurrence type: skip entirely, no spawn, no advance.
			continue
		}

		if _, err := e.service.Create(service.TaskInput{
			Title:       t.Title,
			Description: t.Description,
			DueDate:     t.DueDate,
			Priority:    t.Priority,
			Status:      model.StatusTodo,
			AssigneeID:  t.AssigneeID,
			CreatorID:   t.CreatorID,
		}); err != nil {
			failures++
			if e.metrics != nil {
				e.metrics.RecordEngineTaskFailure()
			}
			e.logger.Error("spawn recurring task", "template_id", t.ID, "error", err)
			continue
		}
		spawned++

		updated := t
		updated.Recurring = &model.Recurrence{
			Type:           t.Recurring.Type,
			NextOccurrence: next,
		}
		advanced[updated.ID] = updated
	}

	if len(advanced) > 0 {
		if err := e.tasks.ReplaceMany(advanced); err != nil {
			return fmt.Errorf("persist advanced templates: %w", err)
		}
	}

	if e.metrics != nil {
		e.metrics.RecordEnginePass()
		e.metrics.RecordTasksSpawned(spawned)
	}
	if spawned > 0 {
		e.logger.Info("recurring tasks processed", "spawned", spawned, "failures", failures)
	}

	return nil
}
