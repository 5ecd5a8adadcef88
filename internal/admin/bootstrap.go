// Package admin provisions administrator accounts from the command line.
package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vaughan-dsouza/jemaat/internal/apperr"
	"github.com/vaughan-dsouza/jemaat/internal/auth"
	"github.com/vaughan-dsouza/jemaat/internal/models"
	"github.com/vaughan-dsouza/jemaat/internal/store"
)

type UserStore interface {
	CreateWithAccount(ctx context.Context, u *models.User, a *models.Account) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	SetPasswordHash(ctx context.Context, id, hash string) error
	UpdateRole(ctx context.Context, id string, role models.Role) error
}

// Result reports what EnsureAdmin did.
type Result struct {
	UserID          string
	Created         bool
	PasswordChanged bool
}

// EnsureAdmin creates an admin with the given credentials, or promotes the
// existing user with that email. An empty password keeps an existing
// user's password but is rejected for new users.
func EnsureAdmin(ctx context.Context, users UserStore, email, name, password string) (*Result, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperr.Validation("email is required")
	}

	var hash string
	if password != "" {
		h, err := auth.HashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		hash = h
	}

	u, err := users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if err := users.UpdateRole(ctx, u.ID, models.RoleAdmin); err != nil {
			return nil, err
		}
		res := &Result{UserID: u.ID}
		if hash != "" {
			if err := users.SetPasswordHash(ctx, u.ID, hash); err != nil {
				return nil, err
			}
			res.PasswordChanged = true
		}
		return res, nil

	case !errors.Is(err, store.ErrNotFound):
		return nil, err
	}

	if hash == "" {
		return nil, apperr.Validation("password is required for a new admin")
	}

	now := time.Now().UTC()
	u = &models.User{
		ID:           uuid.NewString(),
		Name:         sql.NullString{String: strings.TrimSpace(name), Valid: strings.TrimSpace(name) != ""},
		Email:        email,
		PasswordHash: sql.NullString{String: hash, Valid: true},
		Role:         models.RoleAdmin,
		CreatedAt:    now,
	}
	err = users.CreateWithAccount(ctx, u, &models.Account{
		ID:                uuid.NewString(),
		UserID:            u.ID,
		Provider:          models.ProviderCredentials,
		Type:              models.ProviderCredentials,
		ProviderAccountID: u.ID,
		PasswordHash:      sql.NullString{String: hash, Valid: true},
		CreatedAt:         now,
	})
	if err != nil {
		return nil, err
	}

	return &Result{UserID: u.ID, Created: true, PasswordChanged: true}, nil
}
