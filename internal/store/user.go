package store

import (
	"strings"

	"github.com/dukerupert/taskflow/internal/model"
)

type UserStore struct {
	store *Store
}

func NewUserStore(s *Store) *UserStore {
	return &UserStore{store: s}
}

func (s *UserStore) List() ([]model.User, error) {
	return readRecords[model.User](s.store, CollectionUsers)
}

func (s *UserStore) GetByID(id string) (*model.User, error) {
	users, err := s.List()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, nil
}

// GetByEmail matches case-insensitively; emails are unique within the store.
func (s *UserStore) GetByEmail(email string) (*model.User, error) {
	users, err := s.List()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (s *UserStore) Append(u model.User) error {
	_, err := mutateRecords(s.store, CollectionUsers, func(users []model.User) ([]model.User, bool, error) {
		return append(users, u), true, nil
	})
	return err
}

func (s *UserStore) Replace(u model.User) (bool, error) {
	return mutateRecords(s.store, CollectionUsers, func(users []model.User) ([]model.User, bool, error) {
		for i := range users {
			if users[i].ID == u.ID {
				users[i] = u
				return users, true, nil
			}
		}
		return users, false, nil
	})
}

func (s *UserStore) Delete(id string) (bool, error) {
	return mutateRecords(s.store, CollectionUsers, func(users []model.User) ([]model.User, bool, error) {
		for i := range users {
			if users[i].ID == id {
				return append(users[:i], users[i+1:]...), true, nil
			}
		}
		return users, false, nil
	})
}
