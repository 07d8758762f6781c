package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
)

// Collection names. These are the persistence contract of the application and
// must not change: existing databases and exported backups use them verbatim.
const (
	CollectionUsers         = "users"
	CollectionTasks         = "tasks"
	CollectionAuditLogs     = "auditLogs"
	CollectionNotifications = "notifications"
	CollectionCurrentUser   = "currentUser"
)

// Collections lists every collection name, in backup export order.
var Collections = []string{
	CollectionUsers,
	CollectionTasks,
	CollectionAuditLogs,
	CollectionNotifications,
	CollectionCurrentUser,
}

// Store is the persistent record store: a mapping from collection name to a
// JSON-encoded record sequence, backed by one SQLite table. Mutations are
// read-modify-write cycles serialized by a store-wide mutex and a single
// transaction; across processes the semantics remain last write wins.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// ReadAll returns the raw JSON for a collection, or nil if the collection row
// does not exist.
func (s *Store) ReadAll(name string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM collections WHERE name = ?`, name).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read collection %s: %w", name, err)
	}
	return data, nil
}

// WriteAll replaces a collection's JSON wholesale.
func (s *Store) WriteAll(name string, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO collections (name, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		name, data,
	)
	if err != nil {
		return fmt.Errorf("write collection %s: %w", name, err)
	}
	return nil
}

// Mutate runs a read-modify-write cycle on one collection inside a
// transaction. fn receives the current JSON (nil if absent) and returns the
// replacement; returning the input unchanged still writes it back.
func (s *Store) Mutate(name string, fn func(data []byte) ([]byte, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var data []byte
	err = tx.QueryRow(`SELECT data FROM collections WHERE name = ?`, name).Scan(&data)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("read collection %s: %w", name, err)
	}

	out, err := fn(data)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(
		`INSERT INTO collections (name, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		name, out,
	); err != nil {
		return fmt.Errorf("write collection %s: %w", name, err)
	}

	return tx.Commit()
}

// readRecords decodes a collection into a typed slice. A missing or empty
// collection decodes to an empty slice.
func readRecords[T any](s *Store, name string) ([]T, error) {
	data, err := s.ReadAll(name)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	var recs []T
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", name, err)
	}
	return recs, nil
}

// mutateRecords runs a typed read-modify-write cycle. fn returns the new
// record sequence and whether anything changed; when changed is false the
// collection is left untouched. The returned bool reports whether a write
// happened, which lets callers distinguish "id not found" from success.
func mutateRecords[T any](s *Store, name string, fn func(recs []T) ([]T, bool, error)) (bool, error) {
	changed := false
	err := s.Mutate(name, func(data []byte) ([]byte, error) {
		var recs []T
		if len(data) > 0 && string(data) != "null" {
			if err := json.Unmarshal(data, &recs); err != nil {
				return nil, fmt.Errorf("decode collection %s: %w", name, err)
			}
		}
		out, ch, err := fn(recs)
		if err != nil {
			return nil, err
		}
		changed = ch
		if !ch {
			if data == nil {
				return []byte("[]"), nil
			}
			return data, nil
		}
		if out == nil {
			out = []T{}
		}
		enc, err := json.Marshal(out)
		if err != nil {
			return nil, fmt.Errorf("encode collection %s: %w", name, err)
		}
		return enc, nil
	})
	return changed, err
}
