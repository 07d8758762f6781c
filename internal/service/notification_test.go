package service

import "testing"

func TestNotificationCreateAndUnreadCount(t *testing.T) {
	e := newEnv(t)

	if _, err := e.notifications.Create("u1", "Task Assigned", "You've been assigned to \"Dishes\""); err != nil {
		t.Fatalf("create: %v", err)
	}
	e.notifications.Create("u1", "Task Assigned", "You've been assigned to \"Laundry\"")
	e.notifications.Create("u2", "Task Assigned", "You've been assigned to \"Bins\"")

	count, err := e.notifications.UnreadCount("u1")
	if err != nil {
		t.Fatalf("unread count: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestNotificationMarkRead(t *testing.T) {
	e := newEnv(t)
	n, _ := e.notifications.Create("u1", "Title", "Message")

	found, err := e.notifications.MarkRead(n.ID)
	if err != nil || !found {
		t.Fatalf("mark read: found=%v err=%v", found, err)
	}

	count, _ := e.notifications.UnreadCount("u1")
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}

	if found, _ := e.notifications.MarkRead("nope"); found {
		t.Error("unknown id reported found")
	}
}

func TestNotificationMarkAllRead(t *testing.T) {
	e := newEnv(t)
	e.notifications.Create("u1", "A", "a")
	e.notifications.Create("u1", "B", "b")
	e.notifications.Create("u2", "C", "c")

	if err := e.notifications.MarkAllRead("u1"); err != nil {
		t.Fatalf("mark all: %v", err)
	}

	if count, _ := e.notifications.UnreadCount("u1"); count != 0 {
		t.Errorf("u1 count = %d, want 0", count)
	}
	if count, _ := e.notifications.UnreadCount("u2"); count != 1 {
		t.Errorf("u2 count = %d, want 1", count)
	}
}

func TestNotificationCreatedForMutedUser(t *testing.T) {
	// The muted preference suppresses push delivery only; the in-app record
	// is always written.
	e := newEnv(t)
	u, _ := e.users.Create(UserInput{Name: "Quiet", Email: "quiet@example.com", Password: "hunter22"})
	muted := u.NotificationPreferences
	muted.Muted = true
	e.users.Update(u.ID, UserPatch{NotificationPreferences: &muted})

	if _, err := e.notifications.Create(u.ID, "Title", "Message"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if count, _ := e.notifications.UnreadCount(u.ID); count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}
