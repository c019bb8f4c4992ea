package service

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lfms6164/digital-folder-api/internal/apperr"
	"github.com/lfms6164/digital-folder-api/internal/auth"
	"github.com/lfms6164/digital-folder-api/internal/models"
	"github.com/lfms6164/digital-folder-api/internal/store"
)

// UserService performs login and user lookups. It also serves as the query
// parser's role-to-ids lookup collaborator.
type UserService struct {
	store *store.Store
	auth  *auth.Authenticator
	env   string
}

// NewUserService creates a UserService.
func NewUserService(s *store.Store, a *auth.Authenticator, env string) *UserService {
	return &UserService{store: s, auth: a, env: env}
}

// Login verifies credentials and mints a bearer token.
func (s *UserService) Login(req LoginRequest) (*LoginResponse, error) {
	user, err := store.GetByField[models.User](s.store, req.Username, "username")
	if err != nil {
		return nil, err
	}

	if !auth.VerifyPassword(user.Password, req.Password) {
		slog.Warn("Login attempt with incorrect password", "username", req.Username)
		return nil, &apperr.AuthenticationError{Message: "invalid username or password"}
	}

	token, err := s.auth.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	slog.Info("User logged in", "user_id", user.ID, "username", user.Username)
	return &LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        s.userOut(user),
	}, nil
}

// Get returns a single user by id.
func (s *UserService) Get(id uuid.UUID) (*UserOut, error) {
	user, err := store.GetByID[models.User](s.store, id)
	if err != nil {
		return nil, err
	}
	out := s.userOut(user)
	return &out, nil
}

// IDsByRole returns the ids of every user holding the role. Implements the
// query parser's UserLookup.
func (s *UserService) IDsByRole(role models.UserRole) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.store.DB().Model(&models.User{}).Where("role = ?", role).Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("look up %s users: %w", role, err)
	}
	if len(ids) == 0 {
		return nil, &apperr.NotFoundError{Message: fmt.Sprintf("no user with role %s", role)}
	}
	return ids, nil
}

func (s *UserService) userOut(user *models.User) UserOut {
	return UserOut{
		ID:       user.ID,
		Username: user.Username,
		Env:      s.env,
		Role:     user.Role,
	}
}
