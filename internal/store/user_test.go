package store

import (
	"testing"
	"time"

	"github.com/dukerupert/taskflow/internal/model"
)

func sampleUser(id, email string) model.User {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return model.User{
		ID:        id,
		Name:      "Someone",
		Email:     email,
		Password:  "password123",
		Role:      model.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
		NotificationPreferences: model.NotificationPreferences{
			Email: true,
			InApp: true,
		},
	}
}

func TestUserGetByEmailCaseInsensitive(t *testing.T) {
	us := NewUserStore(openTestStore(t))
	us.Append(sampleUser("u1", "alice@example.com"))

	got, err := us.GetByEmail("ALICE@Example.COM")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got == nil || got.ID != "u1" {
		t.Errorf("got %+v, want user u1", got)
	}

	missing, _ := us.GetByEmail("bob@example.com")
	if missing != nil {
		t.Errorf("expected nil for unknown email, got %+v", missing)
	}
}

func TestUserReplaceAndDelete(t *testing.T) {
	us := NewUserStore(openTestStore(t))
	us.Append(sampleUser("u1", "alice@example.com"))

	u := sampleUser("u1", "alice@example.com")
	u.Name = "Alice"
	found, err := us.Replace(u)
	if err != nil || !found {
		t.Fatalf("replace: found=%v err=%v", found, err)
	}

	got, _ := us.GetByID("u1")
	if got.Name != "Alice" {
		t.Errorf("name = %q", got.Name)
	}

	found, err = us.Delete("u1")
	if err != nil || !found {
		t.Fatalf("delete: found=%v err=%v", found, err)
	}
	if got, _ := us.GetByID("u1"); got != nil {
		t.Error("user still present after delete")
	}

	if found, _ := us.Delete("u1"); found {
		t.Error("second delete reported found")
	}
}

func TestUserPasswordRoundTrip(t *testing.T) {
	// The stored format keeps the password verbatim.
	us := NewUserStore(openTestStore(t))
	us.Append(sampleUser("u1", "alice@example.com"))

	got, _ := us.GetByID("u1")
	if got.Password != "password123" {
		t.Errorf("password = %q, want stored verbatim", got.Password)
	}
}
