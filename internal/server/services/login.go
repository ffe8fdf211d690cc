package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/accounts/internal/common"
	"github.com/dmitrijs2005/accounts/internal/server/auth"
	"github.com/dmitrijs2005/accounts/internal/server/config"
	"github.com/dmitrijs2005/accounts/internal/server/models"
	"github.com/dmitrijs2005/accounts/internal/server/notify"
	"github.com/dmitrijs2005/accounts/internal/server/repositories/users"
)

// LoginService authenticates credentials and validates bearer tokens. It
// keeps no state between calls; the signing secret comes from configuration
// and its absence is a configuration error, not a client error.
type LoginService struct {
	repo     users.Repository
	notifier notify.Notifier
	cfg      *config.Config
}

// NewLoginService constructs a LoginService using the users repository and
// server config.
func NewLoginService(repo users.Repository, notifier notify.Notifier, cfg *config.Config) *LoginService {
	return &LoginService{
		repo:     repo,
		notifier: notifier,
		cfg:      cfg,
	}
}

// Authenticate verifies the credentials and returns a signed token. An
// unknown login and a wrong password both yield ErrInvalidCredentials so
// that accounts cannot be enumerated.
func (s *LoginService) Authenticate(ctx context.Context, creds models.Credentials) (string, error) {
	user, err := s.repo.GetByLogin(ctx, creds.Login)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.notify(ctx, "Invalid login or password.")
			return "", common.ErrInvalidCredentials
		}
		return "", fmt.Errorf("error getting user: %w", err)
	}

	if !auth.VerifyPassword(creds.Password, user.PasswordHash) {
		s.notify(ctx, "Invalid login or password.")
		return "", common.ErrInvalidCredentials
	}

	if s.cfg.SecretKey == "" {
		s.notify(ctx, "Secret key missing.")
		return "", common.ErrMissingSecret
	}

	token, err := auth.GenerateToken(user.ID, user.Login, []byte(s.cfg.SecretKey), s.cfg.TokenValidityDuration)
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}

	return token, nil
}

// ValidateToken verifies the token signature and claims, then refetches the
// account and checks that its current login still matches the claim. A token
// issued before a login change is therefore rejected as invalid.
func (s *LoginService) ValidateToken(ctx context.Context, token string) (*models.UserView, error) {
	if token == "" {
		s.notify(ctx, "Token is missing.")
		return nil, common.ErrMissingToken
	}

	if s.cfg.SecretKey == "" {
		s.notify(ctx, "Secret key missing.")
		return nil, common.ErrMissingSecret
	}

	claims, err := auth.ParseToken(token, []byte(s.cfg.SecretKey))
	if err != nil {
		s.notify(ctx, "Invalid token.")
		return nil, common.ErrInvalidToken
	}

	user, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		// A token for a vanished account is just an invalid token; the cause
		// is deliberately not distinguishable by the caller.
		s.notify(ctx, "Invalid token.")
		return nil, common.ErrInvalidToken
	}

	if user.Login != claims.Login {
		s.notify(ctx, "The informed login doesn't correspond with the user id.")
		return nil, common.ErrInvalidToken
	}

	return user.View(), nil
}

func (s *LoginService) notify(ctx context.Context, msg string) {
	if s.notifier != nil {
		s.notifier.Handle(ctx, notify.Notification{Message: msg})
	}
}
