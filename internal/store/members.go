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

const memberColumns = `id, nama, sektor, kategori, birth_day, birth_month, birth_year,
	confirmed, not_confirmed, in_area, outside_area, address, created_at`

// MemberFilter holds the optional listing criteria. Zero values mean
// "no constraint".
type MemberFilter struct {
	Search       string
	Sector       int
	Category     models.Category
	Confirmation models.Confirmation
	Domicile     models.Domicile
}

// SortKey names a sortable column; see sortColumns.
type SortKey string

const (
	SortCreatedAt SortKey = "createdAt"
	SortNama      SortKey = "nama"
	SortSektor    SortKey = "sektor"
	SortKategori  SortKey = "kategori"
)

var sortColumns = map[SortKey]string{
	SortCreatedAt: "created_at",
	SortNama:      "nama",
	SortSektor:    "sektor",
	SortKategori:  "kategori",
}

// ValidSortKey reports whether k can be used for ordering.
func ValidSortKey(k SortKey) bool {
	_, ok := sortColumns[k]
	return ok
}

type MemberSort struct {
	Key  SortKey
	Desc bool
}

// DefaultMemberSort is newest first.
var DefaultMemberSort = MemberSort{Key: SortCreatedAt, Desc: true}

type Members struct {
	db *sqlx.DB
}

func NewMembers(db *sqlx.DB) *Members {
	return &Members{db: db}
}

// predicate is the single place where MemberFilter turns into SQL. Count,
// List and export all go through it.
func predicate(f MemberFilter) *query.Builder {
	b := query.New()

	b.WhereIf(f.Search != "", likeClause("nama"), likePattern(f.Search))
	b.WhereIf(f.Sector != 0, "sektor = ?", f.Sector)
	b.WhereIf(f.Category != "", "kategori = ?", string(f.Category))

	switch f.Confirmation {
	case models.ConfirmationConfirmed:
		b.Where("confirmed = ?", true)
	case models.ConfirmationUnconfirmed:
		b.Where("not_confirmed = ?", true)
	}

	switch f.Domicile {
	case models.DomicileInArea:
		b.Where("in_area = ?", true)
	case models.DomicileOutside:
		b.Where("outside_area = ?", true)
	}

	return b
}

func orderBy(s MemberSort) []query.Order {
	col, ok := sortColumns[s.Key]
	if !ok {
		s = DefaultMemberSort
		col = sortColumns[s.Key]
	}
	return []query.Order{
		{Column: col, Desc: s.Desc},
		{Column: "id", Desc: s.Desc},
	}
}

func (r *Members) Count(ctx context.Context, f MemberFilter) (int, error) {
	q, args := predicate(f).Count("members")

	var total int
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(q), args...); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return total, nil
}

// List returns matching members in the given order. A nil page returns all.
func (r *Members) List(ctx context.Context, f MemberFilter, s MemberSort, page *query.Page) ([]models.Member, error) {
	return r.selectWith(ctx, predicate(f), orderBy(s), page)
}

func (r *Members) Get(ctx context.Context, id string) (*models.Member, error) {
	var m models.Member
	err := r.db.GetContext(ctx, &m, r.db.Rebind(`SELECT `+memberColumns+` FROM members WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &m, nil
}

func (r *Members) Create(ctx context.Context, m *models.Member) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO members (id, nama, sektor, kategori, birth_day, birth_month, birth_year,
			confirmed, not_confirmed, in_area, outside_area, address, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`),
		m.ID, m.Nama, m.Sektor, string(m.Kategori), m.Day, m.Month, m.Year,
		m.Confirmed, m.NotConfirmed, m.InArea, m.OutsideArea, m.Address, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Update overwrites every mutable column. created_at is left untouched.
func (r *Members) Update(ctx context.Context, m *models.Member) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE members SET nama = ?, sektor = ?, kategori = ?,
			birth_day = ?, birth_month = ?, birth_year = ?,
			confirmed = ?, not_confirmed = ?, in_area = ?, outside_area = ?, address = ?
		WHERE id = ?
	`),
		m.Nama, m.Sektor, string(m.Kategori), m.Day, m.Month, m.Year,
		m.Confirmed, m.NotConfirmed, m.InArea, m.OutsideArea, m.Address, m.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Delete removes all given ids with one statement; unknown ids are ignored.
func (r *Members) Delete(ctx context.Context, ids ...string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	q, args, err := sqlx.In(`DELETE FROM members WHERE id IN (?)`, ids)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	res, err := r.db.ExecContext(ctx, r.db.Rebind(q), args...)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return res.RowsAffected()
}
