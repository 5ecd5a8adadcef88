package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vaughan-dsouza/jemaat/internal/models"
)

type VerificationTokens struct {
	db *sqlx.DB
}

func NewVerificationTokens(db *sqlx.DB) *VerificationTokens {
	return &VerificationTokens{db: db}
}

func (r *VerificationTokens) Create(ctx context.Context, vt *models.VerificationToken) error {
	_, err := r.db.ExecContext(ctx,
		r.db.Rebind(`INSERT INTO auth_verification_tokens (identifier, token, expires) VALUES (?, ?, ?)`),
		vt.Identifier, vt.Token, vt.Expires)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Use consumes the token: it is returned and deleted in one transaction. If a
// concurrent caller deleted it first, ErrNotFound is returned.
func (r *VerificationTokens) Use(ctx context.Context, identifier, token string) (*models.VerificationToken, error) {
	var vt models.VerificationToken

	err := WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &vt, tx.Rebind(`
			SELECT identifier, token, expires FROM auth_verification_tokens
			WHERE identifier = ? AND token = ?
		`), identifier, token)
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx,
			tx.Rebind(`DELETE FROM auth_verification_tokens WHERE identifier = ? AND token = ?`),
			identifier, token)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return sql.ErrNoRows
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &vt, nil
}
