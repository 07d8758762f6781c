package model

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}

type NotificationPreferences struct {
	Email bool `json:"email"`
	InApp bool `json:"inApp"`
	Muted bool `json:"muted"`
}

// User is a stored account record. The password is kept in plaintext to match
// the persisted format of the system this replaces; see the project notes.
type User struct {
	ID                      string                  `json:"id"`
	Name                    string                  `json:"name"`
	Email                   string                  `json:"email"`
	Password                string                  `json:"password"`
	Role                    Role                    `json:"role"`
	CreatedAt               time.Time               `json:"createdAt"`
	UpdatedAt               time.Time               `json:"updatedAt"`
	NotificationPreferences NotificationPreferences `json:"notificationPreferences"`
}
