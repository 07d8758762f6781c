package store

import (
	"github.com/dukerupert/taskflow/internal/model"
)

type TaskStore struct {
	store *Store
}

func NewTaskStore(s *Store) *TaskStore {
	return &TaskStore{store: s}
}

func (s *TaskStore) List() ([]model.Task, error) {
	return readRecords[model.Task](s.store, CollectionTasks)
}

// GetByID returns nil when no task has the given id.
func (s *TaskStore) GetByID(id string) (*model.Task, error) {
	tasks, err := s.List()
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i], nil
		}
	}
	return nil, nil
}

func (s *TaskStore) Append(t model.Task) error {
	_, err := mutateRecords(s.store, CollectionTasks, func(tasks []model.Task) ([]model.Task, bool, error) {
		return append(tasks, t), true, nil
	})
	return err
}

// Replace swaps the stored record with the same id. It reports false when the
// id is unknown.
func (s *TaskStore) Replace(t model.Task) (bool, error) {
	return mutateRecords(s.store, CollectionTasks, func(tasks []model.Task) ([]model.Task, bool, error) {
		for i := range tasks {
			if tasks[i].ID == t.ID {
				tasks[i] = t
				return tasks, true, nil
			}
		}
		return tasks, false, nil
	})
}

// ReplaceMany swaps every stored record whose id appears in updated, in one
// write. Records created between the caller's read and this write are kept.
func (s *TaskStore) ReplaceMany(updated map[string]model.Task) error {
	if len(updated) == 0 {
		return nil
	}
	_, err := mutateRecords(s.store, CollectionTasks, func(tasks []model.Task) ([]model.Task, bool, error) {
		for i := range tasks {
			if t, ok := updated[tasks[i].ID]; ok {
				tasks[i] = t
			}
		}
		return tasks, true, nil
	})
	return err
}

// Delete reports false when the id is unknown.
func (s *TaskStore) Delete(id string) (bool, error) {
	return mutateRecords(s.store, CollectionTasks, func(tasks []model.Task) ([]model.Task, bool, error) {
		for i := range tasks {
			if tasks[i].ID == id {
				return append(tasks[:i], tasks[i+1:]...), true, nil
			}
		}
		return tasks, false, nil
	})
}
