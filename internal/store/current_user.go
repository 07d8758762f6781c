package store

import (
	"encoding/json"
	"fmt"

	"github.com/dukerupert/taskflow/internal/model"
)

// CurrentUserStore holds the single optional record under the currentUser
// key, maintained on login and logout. The key stores one JSON object or
// null, never an array.
type CurrentUserStore struct {
	store *Store
}

func NewCurrentUserStore(s *Store) *CurrentUserStore {
	return &CurrentUserStore{store: s}
}

// Get returns nil when no user is recorded.
func (s *CurrentUserStore) Get() (*model.User, error) {
	data, err := s.store.ReadAll(CollectionCurrentUser)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	var u model.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("decode current user: %w", err)
	}
	return &u, nil
}

// Set records the user, or clears the record when u is nil.
func (s *CurrentUserStore) Set(u *model.User) error {
	if u == nil {
		return s.store.WriteAll(CollectionCurrentUser, []byte("null"))
	}
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode current user: %w", err)
	}
	return s.store.WriteAll(CollectionCurrentUser, data)
}
