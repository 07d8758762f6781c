package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/taskflow/internal/model"
	"github.com/dukerupert/taskflow/internal/store"
	"github.com/dukerupert/taskflow/internal/websocket"
)

var (
	// ErrEmailTaken is returned when registering with an email that already
	// belongs to an account.
	ErrEmailTaken = errors.New("email already in use")

	// ErrInvalidCredentials is returned for a failed login. Callers must not
	// reveal whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const defaultAdminEmail = "admin@taskflow.com"

// UserService owns account lifecycle and authentication. Passwords are
// stored and compared in plaintext: this preserves the persisted format of
// the system this service replaces and is an accepted, documented non-goal.
type UserService struct {
	users      *store.UserStore
	current    *store.CurrentUserStore
	sessions   *store.SessionStore
	audit      *AuditService
	hub        *websocket.Hub
	logger     *slog.Logger
	sessionTTL time.Duration
	now        func() time.Time
}

func NewUserService(
	us *store.UserStore,
	cs *store.CurrentUserStore,
	ss *store.SessionStore,
	audit *AuditService,
	hub *websocket.Hub,
	sessionTTL time.Duration,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		users:      us,
		current:    cs,
		sessions:   ss,
		audit:      audit,
		hub:        hub,
		logger:     logger,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

// UserInput is the data required to create an account.
type UserInput struct {
	Name     string
	Email    string
	Password string
	Role     model.Role
}

// Create registers a new account. The role defaults to user and
// notification preferences default to everything on, muted off.
func (s *UserService) Create(in UserInput) (*model.User, error) {
	existing, err := s.users.GetByEmail(in.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	role := in.Role
	if role == "" {
		role = model.RoleUser
	}

	now := s.now().UTC()
	u := model.User{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		Password:  in.Password,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
		NotificationPreferences: model.NotificationPreferences{
			Email: true,
			InApp: true,
			Muted: false,
		},
	}

	if err := s.users.Append(u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.audit.Record(u.ID, model.ActionCreate, model.EntityUser, u.ID,
		fmt.Sprintf("User %s created", u.Name))

	if s.hub != nil {
		s.hub.Broadcast(websocket.NewMessage("user", "created", u.ID, nil))
	}

	return &u, nil
}

// Login checks the password against the store and, on success, issues a
// session and records the user under the currentUser collection key.
func (s *UserService) Login(email, password string) (*model.User, *model.Session, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil || user.Password != password {
		return nil, nil, ErrInvalidCredentials
	}

	sess, err := s.sessions.Create(user.ID, s.sessionTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}

	if err := s.current.Set(user); err != nil {
		s.logger.Error("record current user", "user_id", user.ID, "error", err)
	}

	return user, sess, nil
}

// Logout deletes the session and clears the currentUser record.
func (s *UserService) Logout(token string) error {
	if err := s.sessions.Delete(token); err != nil {
		return err
	}
	if err := s.current.Set(nil); err != nil {
		s.logger.Error("clear current user", "error", err)
	}
	return nil
}

// UserPatch carries a partial account update; nil fields are unchanged.
type UserPatch struct {
	Name                    *string                        `json:"name"`
	Email                   *string                        `json:"email"`
	Password                *string                        `json:"password"`
	Role                    *model.Role                    `json:"role"`
	NotificationPreferences *model.NotificationPreferences `json:"notificationPreferences"`
}

// Update merges the patch and returns the result, or nil when the id is
// unknown.
func (s *UserService) Update(id string, patch UserPatch) (*model.User, error) {
	existing, err := s.users.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if existing == nil {
		return nil, nil
	}

	u := *existing
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil && *patch.Email != u.Email {
		other, err := s.users.GetByEmail(*patch.Email)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if other != nil && other.ID != id {
			return nil, ErrEmailTaken
		}
		u.Email = *patch.Email
	}
	if patch.Password != nil {
		u.Password = *patch.Password
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.NotificationPreferences != nil {
		u.NotificationPreferences = *patch.NotificationPreferences
	}
	u.UpdatedAt = s.now().UTC()

	found, err := s.users.Replace(u)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if !found {
		return nil, nil
	}

	s.audit.Record(u.ID, model.ActionUpdate, model.EntityUser, u.ID,
		fmt.Sprintf("User %s updated", u.Name))

	if s.hub != nil {
		s.hub.Broadcast(websocket.NewMessage("user", "updated", u.ID, nil))
	}

	return &u, nil
}

// Delete removes the account and its sessions. Tasks referencing the user
// keep their now-dangling assignee and creator ids.
func (s *UserService) Delete(id string) (bool, error) {
	existing, err := s.users.GetByID(id)
	if err != nil {
		return false, fmt.Errorf("get user: %w", err)
	}
	if existing == nil {
		return false, nil
	}

	found, err := s.users.Delete(id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	if !found {
		return false, nil
	}

	if err := s.sessions.DeleteForUser(id); err != nil {
		s.logger.Error("delete sessions", "user_id", id, "error", err)
	}

	s.audit.Record(id, model.ActionDelete, model.EntityUser, id,
		fmt.Sprintf("User %s deleted", existing.Name))

	if s.hub != nil {
		s.hub.Broadcast(websocket.NewMessage("user", "deleted", id, nil))
	}

	return true, nil
}

func (s *UserService) List() ([]model.User, error) {
	return s.users.List()
}

func (s *UserService) Get(id string) (*model.User, error) {
	return s.users.GetByID(id)
}

// EnsureDefaultAdmin seeds the default admin account into an empty user
// collection, matching the stock dataset of a fresh install.
func (s *UserService) EnsureDefaultAdmin() error {
	users, err := s.users.List()
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	if len(users) > 0 {
		return nil
	}

	now := s.now().UTC()
	admin := model.User{
		ID:        uuid.New().String(),
		Name:      "Admin User",
		Email:     defaultAdminEmail,
		Password:  "password123",
		Role:      model.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
		NotificationPreferences: model.NotificationPreferences{
			Email: true,
			InApp: true,
			Muted: false,
		},
	}
	if err := s.users.Append(admin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	s.logger.Info("seeded default admin account", "email", defaultAdminEmail)
	return nil
}
