// Package services contains server-side business logic. This file implements
// UserService, which enforces the account uniqueness and password-change
// invariants on top of the users repository.
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
	"github.com/google/uuid"
)

// UpdateParams carries the full payload of an account update. The new
// password must be confirmed; the old password must verify against the
// stored hash.
type UpdateParams struct {
	ID                 string
	Name               string
	OldPassword        string
	NewPassword        string
	NewPasswordConfirm string
}

// UserService provides account CRUD with invariant enforcement:
// - Create: login and display name must both be unique
// - Update: existence, confirmation match, then old-password check, in that order
// - Delete: existence check before removal
//
// Failures are returned as typed errors and additionally reported to the
// injected notifier sink.
type UserService struct {
	repo       users.Repository
	notifier   notify.Notifier
	bcryptCost int
}

// NewUserService constructs a UserService using the users repository and
// server config.
func NewUserService(repo users.Repository, notifier notify.Notifier, cfg *config.Config) *UserService {
	return &UserService{
		repo:       repo,
		notifier:   notifier,
		bcryptCost: cfg.BcryptCost,
	}
}

// GetByID returns the account view for the given id.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.UserView, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.notify(ctx, "User not found.")
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	return user.View(), nil
}

// GetAll returns views for every account, in the order the store yields them.
func (s *UserService) GetAll(ctx context.Context) ([]*models.UserView, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	views := make([]*models.UserView, 0, len(all))
	for _, u := range all {
		views = append(views, u.View())
	}
	return views, nil
}

// Create registers a new account. It fails with ErrConflict when any existing
// account already uses the same display name or the same login.
//
// The existence check and the insert are two store calls; the unique
// constraints on the users table close the remaining race.
func (s *UserService) Create(ctx context.Context, name, login, password string) (*models.UserView, error) {
	existing, err := s.repo.Search(ctx, users.Query{Name: name, Login: login})
	if err != nil {
		return nil, fmt.Errorf("error searching users: %w", err)
	}
	if len(existing) > 0 {
		s.notify(ctx, "There already exists an user with this name or login.")
		return nil, common.ErrConflict
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Login:        login,
		PasswordHash: hash,
	}

	if err := s.repo.Add(ctx, user); err != nil {
		if errors.Is(err, common.ErrConflict) {
			s.notify(ctx, "There already exists an user with this name or login.")
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user.View(), nil
}

// Update replaces the display name and password of an existing account.
// Checks run in a fixed order: existence, new-password confirmation, old
// password. The new password is always re-hashed and written, even when it
// equals the old one.
func (s *UserService) Update(ctx context.Context, p UpdateParams) (*models.UserView, error) {
	user, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.notify(ctx, "No user found with this id.")
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	if p.NewPassword != p.NewPasswordConfirm {
		s.notify(ctx, "The new password confirmation is different than the new password.")
		return nil, fmt.Errorf("%w: password confirmation mismatch", common.ErrValidation)
	}

	if !auth.VerifyPassword(p.OldPassword, user.PasswordHash) {
		s.notify(ctx, "The old password is wrong.")
		return nil, fmt.Errorf("%w: wrong old password", common.ErrValidation)
	}

	hash, err := auth.HashPassword(p.NewPassword, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user.Name = p.Name
	user.PasswordHash = hash

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, common.ErrConflict) {
			s.notify(ctx, "There already exists an user with this name or login.")
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	return user.View(), nil
}

// Delete removes an account. It fails with ErrNotFound when no account
// matches the id; the store delete is never invoked in that case.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.notify(ctx, "User not found.")
			return common.ErrNotFound
		}
		return fmt.Errorf("error getting user: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}

	return nil
}

func (s *UserService) notify(ctx context.Context, msg string) {
	if s.notifier != nil {
		s.notifier.Handle(ctx, notify.Notification{Message: msg})
	}
}
