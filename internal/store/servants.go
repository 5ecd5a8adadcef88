package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vaughan-dsouza/jemaat/internal/models"
	"github.com/vaughan-dsouza/jemaat/internal/query"
)

const servantColumns = `id, nomor, gelar, jabatan, sektor_layan, no_hp, created_at`

type Servants struct {
	db *sqlx.DB
}

func NewServants(db *sqlx.DB) *Servants {
	return &Servants{db: db}
}

// List returns servants ordered by gelar. A non-empty search matches gelar or
// jabatan as a case-insensitive substring.
func (r *Servants) List(ctx context.Context, search string) ([]models.Servant, error) {
	b := query.New()
	if search != "" {
		p := likePattern(search)
		b.Where("("+likeClause("gelar")+" OR "+likeClause("jabatan")+")", p, p)
	}

	q, args := b.Select(servantColumns, "servants", []query.Order{{Column: "gelar"}, {Column: "id"}}, nil)

	servants := []models.Servant{}
	if err := r.db.SelectContext(ctx, &servants, r.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return servants, nil
}

func (r *Servants) Get(ctx context.Context, id string) (*models.Servant, error) {
	var s models.Servant
	err := r.db.GetContext(ctx, &s, r.db.Rebind(`SELECT `+servantColumns+` FROM servants WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &s, nil
}

func (r *Servants) Create(ctx context.Context, s *models.Servant) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO servants (id, nomor, gelar, jabatan, sektor_layan, no_hp, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`), s.ID, s.No, s.Gelar, s.Jabatan, s.SektorLayan, s.NoHP, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Update overwrites every mutable column. created_at is left untouched.
func (r *Servants) Update(ctx context.Context, s *models.Servant) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE servants SET nomor = ?, gelar = ?, jabatan = ?, sektor_layan = ?, no_hp = ?
		WHERE id = ?
	`), s.No, s.Gelar, s.Jabatan, s.SektorLayan, s.NoHP, s.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Delete removes the given ids with one statement; unknown ids are ignored.
func (r *Servants) Delete(ctx context.Context, ids ...string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	q, args, err := sqlx.In(`DELETE FROM servants WHERE id IN (?)`, ids)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	res, err := r.db.ExecContext(ctx, r.db.Rebind(q), args...)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return res.RowsAffected()
}
