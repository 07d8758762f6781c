package service

import (
	"errors"
	"testing"

	"github.com/dukerupert/taskflow/internal/model"
)

func TestUserCreateDefaults(t *testing.T) {
	e := newEnv(t)

	u, err := e.users.Create(UserInput{Name: "Alice", Email: "alice@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.Role != model.RoleUser {
		t.Errorf("role = %s, want user", u.Role)
	}
	prefs := u.NotificationPreferences
	if !prefs.Email || !prefs.InApp || prefs.Muted {
		t.Errorf("preferences = %+v, want email+inApp on, muted off", prefs)
	}

	logs, _ := e.audit.List()
	if len(logs) != 1 || logs[0].Details != "User Alice created" {
		t.Errorf("audit = %+v", logs)
	}
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	e := newEnv(t)
	e.users.Create(UserInput{Name: "Alice", Email: "alice@example.com", Password: "hunter22"})

	_, err := e.users.Create(UserInput{Name: "Other", Email: "ALICE@example.com", Password: "hunter22"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestUserLoginAndLogout(t *testing.T) {
	e := newEnv(t)
	e.users.Create(UserInput{Name: "Alice", Email: "alice@example.com", Password: "hunter22"})

	user, sess, err := e.users.Login("alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.Token == "" {
		t.Error("expected session token")
	}

	// The currentUser record tracks the last login.
	current, _ := e.currentStore.Get()
	if current == nil || current.ID != user.ID {
		t.Errorf("current user = %+v, want %s", current, user.ID)
	}

	resolved, _ := e.sessionStore.GetByToken(sess.Token)
	if resolved == nil {
		t.Fatal("session not resolvable after login")
	}

	if err := e.users.Logout(sess.Token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if resolved, _ := e.sessionStore.GetByToken(sess.Token); resolved != nil {
		t.Error("session still resolvable after logout")
	}
	if current, _ := e.currentStore.Get(); current != nil {
		t.Error("current user record not cleared")
	}
}

func TestUserLoginWrongPassword(t *testing.T) {
	e := newEnv(t)
	e.users.Create(UserInput{Name: "Alice", Email: "alice@example.com", Password: "hunter22"})

	if _, _, err := e.users.Login("alice@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := e.users.Login("nobody@example.com", "hunter22"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
}

func TestUserUpdateEmailConflict(t *testing.T) {
	e := newEnv(t)
	alice, _ := e.users.Create(UserInput{Name: "Alice", Email: "alice@example.com", Password: "hunter22"})
	e.users.Create(UserInput{Name: "Bob", Email: "bob@example.com", Password: "hunter22"})

	_, err := e.users.Update(alice.ID, UserPatch{Email: ptr("bob@example.com")})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}

	// Re-submitting your own email is not a conflict.
	if _, err := e.users.Update(alice.ID, UserPatch{Email: ptr("alice@example.com")}); err != nil {
		t.Fatalf("same email update: %v", err)
	}
}

func TestUserDeleteRemovesSessions(t *testing.T) {
	e := newEnv(t)
	alice, _ := e.users.Create(UserInput{Name: "Alice", Email: "alice@example.com", Password: "hunter22"})
	_, sess, _ := e.users.Login("alice@example.com", "hunter22")

	found, err := e.users.Delete(alice.ID)
	if err != nil || !found {
		t.Fatalf("delete: found=%v err=%v", found, err)
	}
	if resolved, _ := e.sessionStore.GetByToken(sess.Token); resolved != nil {
		t.Error("session survived account deletion")
	}

	logs, _ := e.audit.List()
	last := logs[len(logs)-1]
	if last.Action != model.ActionDelete || last.Details != "User Alice deleted" {
		t.Errorf("audit entry = %+v", last)
	}
}

func TestUserDeleteKeepsTaskReferences(t *testing.T) {
	e := newEnv(t)
	alice, _ := e.users.Create(UserInput{Name: "Alice", Email: "alice@example.com", Password: "hunter22"})
	task, _ := e.tasks.Create(TaskInput{Title: "Orphaned", AssigneeID: ptr(alice.ID), CreatorID: alice.ID})

	e.users.Delete(alice.ID)

	got, _ := e.tasks.Get(task.ID)
	if got == nil {
		t.Fatal("task deleted along with user")
	}
	if got.AssigneeID == nil || *got.AssigneeID != alice.ID {
		t.Error("assignee reference was rewritten")
	}
}

func TestEnsureDefaultAdmin(t *testing.T) {
	e := newEnv(t)

	if err := e.users.EnsureDefaultAdmin(); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	admin, _ := e.userStore.GetByEmail("admin@taskflow.com")
	if admin == nil {
		t.Fatal("default admin not seeded")
	}
	if admin.Role != model.RoleAdmin || admin.Name != "Admin User" || admin.Password != "password123" {
		t.Errorf("admin = %+v", admin)
	}

	// Second call on a populated store is a no-op.
	if err := e.users.EnsureDefaultAdmin(); err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	users, _ := e.users.List()
	if len(users) != 1 {
		t.Errorf("users = %d, want 1", len(users))
	}
}

func TestEnsureDefaultAdminSkipsNonEmptyStore(t *testing.T) {
	e := newEnv(t)
	e.users.Create(UserInput{Name: "Alice", Email: "alice@example.com", Password: "hunter22"})

	if err := e.users.EnsureDefaultAdmin(); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if admin, _ := e.userStore.GetByEmail("admin@taskflow.com"); admin != nil {
		t.Error("admin seeded into a non-empty store")
	}
}
