package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"ortografia/internal/models"
)

// UserAPI registers and looks up players
type UserAPI interface {
	CreateUser(name, guardianEmail string) (*models.User, error)
	GetUser(name string) (*models.User, error)
	ListUsers() ([]models.User, error)
}

// UserHandler handles player requests
type UserHandler struct {
	users UserAPI
}

// NewUserHandler creates a new user handler
func NewUserHandler(users UserAPI) *UserHandler {
	return &UserHandler{users: users}
}

type createUserRequest struct {
	Name          string `json:"name"`
	GuardianEmail string `json:"guardianEmail"`
}

// CreateUser handles POST /api/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.users.CreateUser(req.Name, req.GuardianEmail)
	if err != nil {
		respondWithServiceError(w, err, "failed to create user")
		return
	}
	respondWithJSON(w, http.StatusCreated, user)
}

// GetUser handles GET /api/users/{name}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetUser(chi.URLParam(r, "name"))
	if err != nil {
		respondWithServiceError(w, err, "failed to get user")
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers()
	if err != nil {
		respondWithServiceError(w, err, "failed to list users")
		return
	}
	if users == nil {
		users = []models.User{}
	}
	respondWithJSON(w, http.StatusOK, users)
}
