package service

import (
	"strings"

	"github.com/rs/zerolog/log"

	"ortografia/internal/models"
	"ortografia/internal/validation"
)

// UserStore persists players
type UserStore interface {
	CreateUser(name, guardianEmail string) (*models.User, error)
	GetUserByName(name string) (*models.User, error)
	ListUsers() ([]models.User, error)
}

// UserService registers and looks up players
type UserService struct {
	users UserStore
}

// NewUserService creates a new user service
func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// CreateUser registers a new player. Names are unique.
func (s *UserService) CreateUser(name, guardianEmail string) (*models.User, error) {
	name = strings.TrimSpace(name)
	guardianEmail = strings.TrimSpace(guardianEmail)

	if err := validation.ValidateUserName(name); err != nil {
		return nil, invalidInput(err)
	}
	if err := validation.ValidateOptionalEmail(guardianEmail); err != nil {
		return nil, invalidInput(err)
	}

	existing, err := s.users.GetUserByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &GameError{Kind: ErrValidation, Message: "user already exists"}
	}

	user, err := s.users.CreateUser(name, guardianEmail)
	if err != nil {
		return nil, err
	}

	log.Info().Int64("user_id", user.ID).Str("user", user.Name).Msg("user created")
	return user, nil
}

// GetUser retrieves a player by name
func (s *UserService) GetUser(name string) (*models.User, error) {
	user, err := s.users.GetUserByName(name)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("user %q not found", name)
	}
	return user, nil
}

// ListUsers returns every player ordered by name
func (s *UserService) ListUsers() ([]models.User, error) {
	return s.users.ListUsers()
}
