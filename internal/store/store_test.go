package store

import (
	"testing"

	"github.com/dukerupert/taskflow/internal/database"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db)
}

func TestMigrationsSeedCollections(t *testing.T) {
	st := openTestStore(t)

	for _, name := range Collections {
		data, err := st.ReadAll(name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		want := "[]"
		if name == CollectionCurrentUser {
			want = "null"
		}
		if string(data) != want {
			t.Errorf("collection %s seeded as %q, want %q", name, data, want)
		}
	}
}

func TestReadAllUnknownCollection(t *testing.T) {
	st := openTestStore(t)

	data, err := st.ReadAll("nope")
	if err != nil {
		t.Fatalf("read unknown collection: %v", err)
	}
	if data != nil {
		t.Errorf("expected nil for unknown collection, got %q", data)
	}
}

func TestWriteAllRoundTrip(t *testing.T) {
	st := openTestStore(t)

	doc := []byte(`[{"id":"a"}]`)
	if err := st.WriteAll(CollectionTasks, doc); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := st.ReadAll(CollectionTasks)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != string(doc) {
		t.Errorf("round trip = %q, want %q", got, doc)
	}
}

func TestMutateReplacesWholesale(t *testing.T) {
	st := openTestStore(t)

	err := st.Mutate(CollectionTasks, func(data []byte) ([]byte, error) {
		if string(data) != "[]" {
			t.Errorf("mutate saw %q, want seeded empty array", data)
		}
		return []byte(`["x"]`), nil
	})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}

	got, _ := st.ReadAll(CollectionTasks)
	if string(got) != `["x"]` {
		t.Errorf("after mutate = %q", got)
	}
}
