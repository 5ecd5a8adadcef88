package store

import (
	"context"
	"fmt"

	"github.com/vaughan-dsouza/jemaat/internal/models"
	"github.com/vaughan-dsouza/jemaat/internal/query"
)

// Totals are the headline dashboard counters.
type Totals struct {
	Members     int `db:"members" json:"members"`
	InArea      int `db:"in_area" json:"inArea"`
	OutsideArea int `db:"outside_area" json:"outsideArea"`
	Confirmed   int `db:"confirmed" json:"confirmed"`
}

// SectorSummary is one sector's counts. Categories always carries every
// category, zero included.
type SectorSummary struct {
	Sector      int                     `json:"sector"`
	Total       int                     `json:"total"`
	InArea      int                     `json:"inArea"`
	OutsideArea int                     `json:"outsideArea"`
	Categories  map[models.Category]int `json:"categories"`
}

func sumFlag(col string) string {
	return "COALESCE(SUM(CASE WHEN " + col + " THEN 1 ELSE 0 END), 0)"
}

func (r *Members) Totals(ctx context.Context) (Totals, error) {
	var t Totals
	q := `SELECT COUNT(*) AS members, ` +
		sumFlag("in_area") + ` AS in_area, ` +
		sumFlag("outside_area") + ` AS outside_area, ` +
		sumFlag("confirmed") + ` AS confirmed FROM members`
	if err := r.db.GetContext(ctx, &t, q); err != nil {
		return Totals{}, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

// SectorSummary counts one sector. Sectors are queried one by one and not in
// a shared transaction, so concurrent writes may skew totals slightly.
func (r *Members) SectorSummary(ctx context.Context, sector int) (SectorSummary, error) {
	var counts struct {
		Total       int `db:"total"`
		InArea      int `db:"in_area"`
		OutsideArea int `db:"outside_area"`
	}

	q := r.db.Rebind(`SELECT COUNT(*) AS total, ` +
		sumFlag("in_area") + ` AS in_area, ` +
		sumFlag("outside_area") + ` AS outside_area FROM members WHERE sektor = ?`)
	if err := r.db.GetContext(ctx, &counts, q, sector); err != nil {
		return SectorSummary{}, fmt.Errorf("db error: %w", err)
	}

	s := SectorSummary{
		Sector:      sector,
		Total:       counts.Total,
		InArea:      counts.InArea,
		OutsideArea: counts.OutsideArea,
	}

	var rows []struct {
		Kategori models.Category `db:"kategori"`
		Total    int             `db:"total"`
	}
	q = r.db.Rebind(`SELECT kategori, COUNT(*) AS total FROM members WHERE sektor = ? GROUP BY kategori`)
	if err := r.db.SelectContext(ctx, &rows, q, sector); err != nil {
		return SectorSummary{}, fmt.Errorf("db error: %w", err)
	}

	s.Categories = make(map[models.Category]int, len(models.Categories))
	for _, c := range models.Categories {
		s.Categories[c] = 0
	}
	for _, row := range rows {
		s.Categories[row.Kategori] = row.Total
	}
	return s, nil
}

// BirthdaysOn lists members born on the given month and day, by name.
func (r *Members) BirthdaysOn(ctx context.Context, month, day int) ([]models.Member, error) {
	b := query.New().
		Where("birth_month = ?", month).
		Where("birth_day = ?", day)
	return r.selectWith(ctx, b, []query.Order{{Column: "nama"}, {Column: "id"}}, nil)
}

// BirthdaysInMonth lists members born in month, ordered by day.
func (r *Members) BirthdaysInMonth(ctx context.Context, month int) ([]models.Member, error) {
	b := query.New().Where("birth_month = ?", month)
	return r.selectWith(ctx, b, []query.Order{{Column: "birth_day"}, {Column: "nama"}, {Column: "id"}}, nil)
}

// IncompleteBirthdates returns up to limit members missing any birthdate part,
// newest first.
func (r *Members) IncompleteBirthdates(ctx context.Context, limit int) ([]models.Member, error) {
	b := query.New().Where("(birth_day IS NULL OR birth_month IS NULL OR birth_year IS NULL)")
	return r.selectWith(ctx, b, orderBy(DefaultMemberSort), &query.Page{Number: 1, Limit: limit})
}

func (r *Members) selectWith(ctx context.Context, b *query.Builder, order []query.Order, page *query.Page) ([]models.Member, error) {
	q, args := b.Select(memberColumns, "members", order, page)

	members := []models.Member{}
	if err := r.db.SelectContext(ctx, &members, r.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return members, nil
}
