package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vaughan-dsouza/jemaat/internal/models"
)

const userColumns = `id, name, email, password_hash, role, api_token, created_at`

type Users struct {
	db *sqlx.DB
}

func NewUsers(db *sqlx.DB) *Users {
	return &Users{db: db}
}

func (r *Users) Create(ctx context.Context, u *models.User) error {
	return insertUser(ctx, r.db, u)
}

// CreateWithAccount inserts u and its first linked account atomically, so a
// failed link never leaves an orphaned user behind.
func (r *Users) CreateWithAccount(ctx context.Context, u *models.User, a *models.Account) error {
	return WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := insertUser(ctx, tx, u); err != nil {
			return err
		}
		return insertAccount(ctx, tx, a)
	})
}

func insertUser(ctx context.Context, db sqlx.ExtContext, u *models.User) error {
	query := db.Rebind(`
		INSERT INTO users (id, name, email, password_hash, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)

	_, err := db.ExecContext(ctx, query,
		u.ID, u.Name, u.Email, u.PasswordHash, string(u.Role), u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *Users) get(ctx context.Context, where string, arg any) (*models.User, error) {
	var u models.User
	err := r.db.GetContext(ctx, &u, r.db.Rebind(`SELECT `+userColumns+` FROM users WHERE `+where), arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &u, nil
}

func (r *Users) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.get(ctx, `id = ?`, id)
}

func (r *Users) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.get(ctx, `email = ?`, email)
}

func (r *Users) GetByToken(ctx context.Context, token string) (*models.User, error) {
	return r.get(ctx, `api_token = ?`, token)
}

// SetToken replaces the user's single active token. An invalid NullString
// clears it.
func (r *Users) SetToken(ctx context.Context, id string, token sql.NullString) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE users SET api_token = ? WHERE id = ?`), token, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *Users) SetPasswordHash(ctx context.Context, id, hash string) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE users SET password_hash = ? WHERE id = ?`), hash, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *Users) UpdateRole(ctx context.Context, id string, role models.Role) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE users SET role = ? WHERE id = ?`), string(role), id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *Users) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	err := r.db.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return users, nil
}

// Search matches keyword as a case-insensitive substring of name or email.
func (r *Users) Search(ctx context.Context, keyword string) ([]models.User, error) {
	p := likePattern(keyword)
	users := []models.User{}
	err := r.db.SelectContext(ctx, &users, r.db.Rebind(`
		SELECT `+userColumns+` FROM users
		WHERE `+likeClause("name")+` OR `+likeClause("email")+`
		ORDER BY created_at DESC, id DESC
	`), p, p)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return users, nil
}

// Delete removes the users and their linked accounts in one transaction.
// Unknown ids are ignored; the number of deleted users is returned.
func (r *Users) Delete(ctx context.Context, ids ...string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var deleted int64
	err := WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		q, args, err := sqlx.In(`DELETE FROM auth_accounts WHERE user_id IN (?)`, ids)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(q), args...); err != nil {
			return err
		}

		q, args, err = sqlx.In(`DELETE FROM users WHERE id IN (?)`, ids)
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, tx.Rebind(q), args...)
		if err != nil {
			return err
		}
		deleted, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return deleted, nil
}
