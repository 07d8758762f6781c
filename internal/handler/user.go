package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/taskflow/internal/auth"
	"github.com/dukerupert/taskflow/internal/model"
	"github.com/dukerupert/taskflow/internal/service"
)

type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// List handles GET /api/users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List()
	if err != nil {
		h.logger.Error("list users", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	if users == nil {
		users = []model.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// Get handles GET /api/users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(idParam(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get user")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type createUserRequest struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
}

// Create handles POST /api/users, the admin path for creating accounts with
// an explicit role.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "name, email, and password are required")
		return
	}
	if req.Role != "" && !req.Role.Valid() {
		writeError(w, http.StatusBadRequest, "invalid role")
		return
	}

	user, err := h.users.Create(service.UserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "email already in use")
			return
		}
		h.logger.Error("create user", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Update handles PUT /api/users/{id}. A non-admin may only update their own
// account and may not change roles.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if !auth.IsAdmin(r.Context()) {
		if auth.UserID(r.Context()) != id {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
	}

	var patch service.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if patch.Role != nil {
		if !auth.IsAdmin(r.Context()) {
			writeError(w, http.StatusForbidden, "only admins can change roles")
			return
		}
		if !patch.Role.Valid() {
			writeError(w, http.StatusBadRequest, "invalid role")
			return
		}
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		writeError(w, http.StatusBadRequest, "name cannot be empty")
		return
	}
	if patch.Email != nil && !strings.Contains(*patch.Email, "@") {
		writeError(w, http.StatusBadRequest, "invalid email address")
		return
	}

	user, err := h.users.Update(id, patch)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "email already in use")
			return
		}
		h.logger.Error("update user", "user_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update user")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Delete handles DELETE /api/users/{id}. Admin only; an admin cannot delete
// their own account.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if auth.UserID(r.Context()) == id {
		writeError(w, http.StatusBadRequest, "cannot delete your own account")
		return
	}

	found, err := h.users.Delete(id)
	if err != nil {
		h.logger.Error("delete user", "user_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
