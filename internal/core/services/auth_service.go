package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"bookshelf/internal/adapters/persistence/models"
	"bookshelf/internal/adapters/persistence/repositories"
	"bookshelf/internal/config"
	"bookshelf/internal/core/domain"
	"bookshelf/internal/pkg/jwt"
	"bookshelf/internal/pkg/password"

	"github.com/google/uuid"
)

// Session errors
var (
	ErrSessionExpired = fmt.Errorf("%w: session expired", domain.ErrUnauthorized)
	ErrSessionInvalid = fmt.Errorf("%w: invalid session", domain.ErrUnauthorized)
)

// AuthService handles login sessions
type AuthService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	cfg         *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		cfg:         cfg,
	}
}

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResult carries the signed session token and the logged in user
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// Login verifies credentials and opens a new session
//
//	ERROR: ErrUnknownUsername, ErrInvalidPassword (both ErrInvalidCredentials)
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnknownUsername
		}
		return nil, err
	}

	if !password.Verify(input.Password, user.Password) {
		return nil, domain.ErrInvalidPassword
	}

	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: jwt.GetExpiryTime(s.cfg.Session.Hours).UTC(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	token, err := jwt.GenerateSessionToken(session.ID, user.ID, user.Role, s.cfg.Session.Secret, session.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}

	log.Printf("✅ User logged in: %s", user.Username)

	return &LoginResult{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User:      user.ToDomain(),
	}, nil
}

// Resolve turns a session token into the acting identity
func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.Actor, error) {
	claims, err := jwt.ValidateSessionToken(token, s.cfg.Session.Secret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrSessionExpired
		}
		return nil, ErrSessionInvalid
	}

	session, err := s.sessionRepo.GetByID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrSessionInvalid
		}
		return nil, err
	}
	if !session.ToDomain().IsValid(time.Now()) {
		return nil, ErrSessionExpired
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrSessionInvalid
		}
		return nil, err
	}

	return &domain.Actor{
		UserID:   user.ID,
		Username: user.Username,
		Role:     domain.Role(user.Role),
	}, nil
}

// Logout revokes the session behind token. Unknown or expired tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	claims, err := jwt.ValidateSessionToken(token, s.cfg.Session.Secret)
	if err != nil {
		return nil
	}

	if err := s.sessionRepo.Revoke(ctx, claims.SessionID); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}

	log.Printf("✅ User logged out: session %s", claims.SessionID)
	return nil
}

// PurgeExpiredSessions removes expired and revoked sessions (cleanup job)
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return s.sessionRepo.DeleteExpired(ctx, time.Now())
}
