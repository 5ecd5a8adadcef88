// Package dashboard assembles the read-only statistics view.
package dashboard

import (
	"context"
	"time"

	"github.com/vaughan-dsouza/jemaat/internal/apperr"
	"github.com/vaughan-dsouza/jemaat/internal/models"
	"github.com/vaughan-dsouza/jemaat/internal/store"
)

// incompleteLimit caps the "missing birthdate" list.
const incompleteLimit = 10

type Store interface {
	Totals(ctx context.Context) (store.Totals, error)
	SectorSummary(ctx context.Context, sector int) (store.SectorSummary, error)
	BirthdaysOn(ctx context.Context, month, day int) ([]models.Member, error)
	IncompleteBirthdates(ctx context.Context, limit int) ([]models.Member, error)
}

type Birthday struct {
	models.Member
	// Age is the age reached on the birthday, nil when the year is unknown.
	Age *int `json:"age"`
}

type Stats struct {
	Totals               store.Totals          `json:"totals"`
	Sectors              []store.SectorSummary `json:"sectors"`
	BirthdaysToday       []Birthday            `json:"birthdaysToday"`
	BirthdaysTomorrow    []Birthday            `json:"birthdaysTomorrow"`
	IncompleteBirthdates []models.Member       `json:"incompleteBirthdates"`
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(s Store) *Service {
	return &Service{store: s, now: time.Now}
}

// Stats runs one query per section and per sector. The queries do not share a
// transaction.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	var (
		out Stats
		err error
	)

	out.Totals, err = s.store.Totals(ctx)
	if err != nil {
		return nil, apperr.Storage("member totals", err)
	}

	out.Sectors = make([]store.SectorSummary, 0, models.MaxSector-models.MinSector+1)
	for sector := models.MinSector; sector <= models.MaxSector; sector++ {
		sum, err := s.store.SectorSummary(ctx, sector)
		if err != nil {
			return nil, apperr.Storage("sector summary", err)
		}
		out.Sectors = append(out.Sectors, sum)
	}

	today := s.now()
	tomorrow := today.AddDate(0, 0, 1)

	if out.BirthdaysToday, err = s.birthdays(ctx, today); err != nil {
		return nil, err
	}
	if out.BirthdaysTomorrow, err = s.birthdays(ctx, tomorrow); err != nil {
		return nil, err
	}

	out.IncompleteBirthdates, err = s.store.IncompleteBirthdates(ctx, incompleteLimit)
	if err != nil {
		return nil, apperr.Storage("incomplete birthdates", err)
	}

	return &out, nil
}

func (s *Service) birthdays(ctx context.Context, day time.Time) ([]Birthday, error) {
	members, err := s.store.BirthdaysOn(ctx, int(day.Month()), day.Day())
	if err != nil {
		return nil, apperr.Storage("birthdays", err)
	}

	out := make([]Birthday, len(members))
	for i, m := range members {
		out[i] = Birthday{Member: m}
		if m.Year != nil {
			age := day.Year() - *m.Year
			out[i].Age = &age
		}
	}
	return out, nil
}
