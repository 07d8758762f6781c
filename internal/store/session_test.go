package store

import (
	"testing"
	"time"

	"github.com/dukerupert/taskflow/internal/database"
)

func openTestDB(t *testing.T) *SessionStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSessionStore(db)
}

func TestSessionCreateAndGet(t *testing.T) {
	ss := openTestDB(t)

	sess, err := ss.Create("u1", time.Hour)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(sess.Token) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(sess.Token))
	}
	if sess.UserID != "u1" {
		t.Errorf("user id = %q", sess.UserID)
	}

	got, err := ss.GetByToken(sess.Token)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.ID != sess.ID {
		t.Errorf("got %+v, want session %d", got, sess.ID)
	}
}

func TestSessionUnknownToken(t *testing.T) {
	ss := openTestDB(t)

	got, err := ss.GetByToken("deadbeef")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for unknown token, got %+v", got)
	}
}

func TestSessionExpiry(t *testing.T) {
	ss := openTestDB(t)

	sess, err := ss.Create("u1", -time.Minute)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := ss.GetByToken(sess.Token)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Error("expired session should not resolve")
	}

	n, err := ss.DeleteExpired()
	if err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted %d sessions, want 1", n)
	}
}

func TestSessionDelete(t *testing.T) {
	ss := openTestDB(t)

	sess, _ := ss.Create("u1", time.Hour)
	if err := ss.Delete(sess.Token); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ := ss.GetByToken(sess.Token); got != nil {
		t.Error("session still resolves after delete")
	}
}

func TestSessionDeleteForUser(t *testing.T) {
	ss := openTestDB(t)

	s1, _ := ss.Create("u1", time.Hour)
	s2, _ := ss.Create("u1", time.Hour)
	other, _ := ss.Create("u2", time.Hour)

	if err := ss.DeleteForUser("u1"); err != nil {
		t.Fatalf("delete for user: %v", err)
	}

	if got, _ := ss.GetByToken(s1.Token); got != nil {
		t.Error("first session still resolves")
	}
	if got, _ := ss.GetByToken(s2.Token); got != nil {
		t.Error("second session still resolves")
	}
	if got, _ := ss.GetByToken(other.Token); got == nil {
		t.Error("other user's session was deleted")
	}
}
