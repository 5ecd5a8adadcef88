// Package members implements member listing, lookup and maintenance on top of
// the member store.
package members

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/vaughan-dsouza/jemaat/internal/apperr"
	"github.com/vaughan-dsouza/jemaat/internal/logging"
	"github.com/vaughan-dsouza/jemaat/internal/models"
	"github.com/vaughan-dsouza/jemaat/internal/query"
	"github.com/vaughan-dsouza/jemaat/internal/store"
)

type Store interface {
	Count(ctx context.Context, f store.MemberFilter) (int, error)
	List(ctx context.Context, f store.MemberFilter, s store.MemberSort, page *query.Page) ([]models.Member, error)
	Get(ctx context.Context, id string) (*models.Member, error)
	Create(ctx context.Context, m *models.Member) error
	Update(ctx context.Context, m *models.Member) error
	Delete(ctx context.Context, ids ...string) (int64, error)
	BirthdaysInMonth(ctx context.Context, month int) ([]models.Member, error)
}

type Service struct {
	store Store
	log   logging.Logger
	now   func() time.Time
}

func NewService(s Store, log logging.Logger) *Service {
	return &Service{store: s, log: log, now: time.Now}
}

type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

type Page struct {
	Data       []models.Member `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

// List counts and fetches one page using the same filter. A page past the end
// is empty but still reports the full total.
func (s *Service) List(ctx context.Context, q ListQuery) (*Page, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		return nil, apperr.Validation("limit must be a positive integer")
	}
	page := query.Page{Number: q.Page, Limit: q.Limit}
	if !page.InRange() {
		return nil, apperr.Validation("page is out of range")
	}

	total, err := s.store.Count(ctx, q.Filter)
	if err != nil {
		return nil, apperr.Storage("count members", err)
	}

	data := []models.Member{}
	if page.Offset() < total {
		data, err = s.store.List(ctx, q.Filter, q.Sort, &page)
		if err != nil {
			return nil, apperr.Storage("list members", err)
		}
	}

	return &Page{
		Data: data,
		Pagination: Pagination{
			Total:      total,
			Page:       q.Page,
			Limit:      q.Limit,
			TotalPages: query.TotalPages(total, q.Limit),
		},
	}, nil
}

// All returns every member matching the filter, for export.
func (s *Service) All(ctx context.Context, f store.MemberFilter, sort store.MemberSort) ([]models.Member, error) {
	members, err := s.store.List(ctx, f, sort, nil)
	if err != nil {
		return nil, apperr.Storage("list members", err)
	}
	return members, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Member, error) {
	m, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("member not found")
		}
		return nil, apperr.Storage("get member", err)
	}
	return m, nil
}

func (s *Service) Create(ctx context.Context, in Input) (*models.Member, error) {
	m := &models.Member{}
	if err := in.apply(m); err != nil {
		return nil, err
	}
	m.ID = uuid.NewString()
	m.CreatedAt = s.now().UTC().Truncate(time.Second)

	if err := s.store.Create(ctx, m); err != nil {
		return nil, apperr.Storage("create member", err)
	}

	s.log.Info(ctx, "member created", "id", m.ID, "sektor", m.Sektor)
	return m, nil
}

// Update replaces every field of the stored member except its id and
// created_at. Concurrent updates are last-write-wins.
func (s *Service) Update(ctx context.Context, id string, in Input) (*models.Member, error) {
	stored, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	m := &models.Member{ID: stored.ID, CreatedAt: stored.CreatedAt}
	if err := in.apply(m); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, m); err != nil {
		return nil, apperr.Storage("update member", err)
	}

	s.log.Info(ctx, "member updated", "id", m.ID)
	return m, nil
}

// Delete removes the given members. Unknown ids are ignored and an empty
// list is a no-op.
func (s *Service) Delete(ctx context.Context, ids ...string) (int64, error) {
	for _, id := range ids {
		if id == "" {
			return 0, apperr.Validation("ids must not contain empty values")
		}
	}

	n, err := s.store.Delete(ctx, ids...)
	if err != nil {
		return 0, apperr.Storage("delete members", err)
	}

	if n > 0 {
		s.log.Info(ctx, "members deleted", "requested", len(ids), "deleted", n)
	}
	return n, nil
}

// Birthdays lists members born in month, ordered by day. Zero means the
// current month.
func (s *Service) Birthdays(ctx context.Context, month int) ([]models.Member, error) {
	if month == 0 {
		month = int(s.now().Month())
	}
	if month < 1 || month > 12 {
		return nil, apperr.Validation("month must be between 1 and 12")
	}

	members, err := s.store.BirthdaysInMonth(ctx, month)
	if err != nil {
		return nil, apperr.Storage("list birthdays", err)
	}
	return members, nil
}
