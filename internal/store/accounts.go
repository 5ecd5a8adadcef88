package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vaughan-dsouza/jemaat/internal/models"
)

type Accounts struct {
	db *sqlx.DB
}

func NewAccounts(db *sqlx.DB) *Accounts {
	return &Accounts{db: db}
}

// Link stores a provider account. A (provider, providerAccountId) pair that is
// already linked yields ErrDuplicate.
func (r *Accounts) Link(ctx context.Context, a *models.Account) error {
	return insertAccount(ctx, r.db, a)
}

func insertAccount(ctx context.Context, db sqlx.ExtContext, a *models.Account) error {
	query := db.Rebind(`
		INSERT INTO auth_accounts (id, user_id, provider, account_type, provider_account_id, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := db.ExecContext(ctx, query,
		a.ID, a.UserID, a.Provider, a.Type, a.ProviderAccountID, a.PasswordHash, a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *Accounts) Unlink(ctx context.Context, provider, providerAccountID string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		r.db.Rebind(`DELETE FROM auth_accounts WHERE provider = ? AND provider_account_id = ?`),
		provider, providerAccountID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return res.RowsAffected()
}

func (r *Accounts) ListByUser(ctx context.Context, userID string) ([]models.Account, error) {
	accounts := []models.Account{}
	err := r.db.SelectContext(ctx, &accounts, r.db.Rebind(`
		SELECT id, user_id, provider, account_type, provider_account_id, password_hash, created_at
		FROM auth_accounts WHERE user_id = ? ORDER BY created_at, id
	`), userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return accounts, nil
}

// UserByAccount resolves the user owning a provider account.
func (r *Accounts) UserByAccount(ctx context.Context, provider, providerAccountID string) (*models.User, error) {
	var u models.User
	err := r.db.GetContext(ctx, &u, r.db.Rebind(`
		SELECT u.id, u.name, u.email, u.password_hash, u.role, u.api_token, u.created_at
		FROM users u JOIN auth_accounts a ON u.id = a.user_id
		WHERE a.provider = ? AND a.provider_account_id = ?
	`), provider, providerAccountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &u, nil
}
