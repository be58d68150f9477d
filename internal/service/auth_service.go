package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/vehicle-marketplace/internal/auth"
	"github.com/spec-kit/vehicle-marketplace/internal/config"
	"github.com/spec-kit/vehicle-marketplace/internal/domain"
	"github.com/spec-kit/vehicle-marketplace/internal/events"
	"github.com/spec-kit/vehicle-marketplace/internal/repository"
)

// ErrInvalidCredentials hides whether the account exists or the password
// was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService coordinates registration and login flows. It is the one
// place that verifies credentials and mints session tokens; everything
// downstream only ever sees the signed token.
type AuthService struct {
	users      repository.UserRepository
	codec      *auth.TokenCodec
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository, codec *auth.TokenCodec, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		codec:      codec,
		dispatcher: dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new account with the given role and issues its first
// session token.
func (s *AuthService) Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, string, time.Time, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, errors.New("email already registered")
	} else if err != nil && err != pgx.ErrNoRows {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.codec.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	s.publish(ctx, events.EventLoginSucceeded, user.ID, user.Role, "registered")
	return user, token, exp, nil
}

// Login verifies credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			s.publish(ctx, events.EventLoginFailed, "", "", "unknown_account")
			return nil, "", time.Time{}, ErrInvalidCredentials
		}
		return nil, "", time.Time{}, err
	}
	if user.Status != domain.UserStatusActive {
		s.publish(ctx, events.EventLoginFailed, user.ID, user.Role, "suspended")
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		s.publish(ctx, events.EventLoginFailed, user.ID, user.Role, "bad_password")
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, exp, err := s.codec.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	s.publish(ctx, events.EventLoginSucceeded, user.ID, user.Role, "")
	return user, token, exp, nil
}

// Logout is a no-op server side; tokens are stateless and expire on their
// own. Cookie clearing happens at the HTTP layer.
func (s *AuthService) Logout(_ context.Context, _ string) error {
	return nil
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, subjectID string, role domain.Role, reason string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:       eventType,
		SubjectID:  subjectID,
		Role:       string(role),
		Reason:     reason,
		OccurredAt: time.Now(),
	})
}
