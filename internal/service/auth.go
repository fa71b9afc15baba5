// Package service implements the application logic between the HTTP
// handlers and the store.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nabdhapp/nabdh-server/internal/auth"
	"github.com/nabdhapp/nabdh-server/internal/domain"
	domainerrors "github.com/nabdhapp/nabdh-server/internal/errors"
	"github.com/nabdhapp/nabdh-server/internal/id"
	"github.com/nabdhapp/nabdh-server/internal/store"
	"github.com/nabdhapp/nabdh-server/internal/validation"
)

// AuthService handles signup, login, and session verification.
type AuthService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(store store.Store, validator *validation.Validator, logger *slog.Logger) *AuthService {
	return &AuthService{store: store, validator: validator, logger: logger}
}

// SignupRequest contains new account credentials.
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Password string `json:"password" validate:"required,min=8,max=1024"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// LoginRequest contains account credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the authenticated user and their new session.
type AuthResponse struct {
	User    domain.PublicUser `json:"user"`
	Session *domain.Session   `json:"-"`
}

// Signup creates a new account and an initial session.
// Username uniqueness is case-insensitive; a taken name returns a conflict.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           id.MustGenerate("user"),
		Username:     req.Username,
		PasswordHash: passwordHash,
		Email:        req.Email,
		CreatedAt:    time.Now(),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("username already taken")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("user signed up", "user_id", user.ID, "username", user.Username)
	}

	return &AuthResponse{User: user.Public(), Session: session}, nil
}

// Login verifies credentials and creates a session. Unknown usernames
// and wrong passwords produce the same error so the response does not
// reveal which accounts exist.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.InvalidCredentials("invalid username or password")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, domainerrors.InvalidCredentials("invalid username or password")
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("user logged in", "user_id", user.ID)
	}

	return &AuthResponse{User: user.Public(), Session: session}, nil
}

func (s *AuthService) createSession(ctx context.Context, userID string) (*domain.Session, error) {
	session := domain.NewSession(id.MustGenerate("sess"), userID)
	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

// VerifySession resolves a session ID to its user. Expired sessions are
// deleted on sight and treated as unauthorized.
func (s *AuthService) VerifySession(ctx context.Context, sessionID string) (*domain.User, error) {
	if sessionID == "" {
		return nil, domainerrors.Unauthorized("not logged in")
	}

	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.Unauthorized("not logged in")
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	now := time.Now()
	if session.IsExpired(now) {
		if err := s.store.DeleteSession(ctx, session.ID); err != nil && s.logger != nil {
			s.logger.Warn("delete expired session", "session_id", session.ID, "error", err)
		}
		return nil, domainerrors.Unauthorized("session expired")
	}

	if err := s.store.TouchSession(ctx, session.ID, now); err != nil && s.logger != nil {
		s.logger.Warn("touch session", "session_id", session.ID, "error", err)
	}

	user, err := s.store.GetUser(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.Unauthorized("not logged in")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// Logout deletes the session. Logging out with an unknown session is
// not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.store.DeleteSession(ctx, sessionID)
}

// CleanupExpiredSessions removes sessions past their expiry and returns
// the number removed.
func (s *AuthService) CleanupExpiredSessions(ctx context.Context) (int, error) {
	return s.store.DeleteExpiredSessions(ctx, time.Now())
}
