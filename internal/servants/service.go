// Package servants maintains the directory of church servants (pelayan).
package servants

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vaughan-dsouza/jemaat/internal/apperr"
	"github.com/vaughan-dsouza/jemaat/internal/logging"
	"github.com/vaughan-dsouza/jemaat/internal/models"
	"github.com/vaughan-dsouza/jemaat/internal/store"
)

type Store interface {
	List(ctx context.Context, search string) ([]models.Servant, error)
	Get(ctx context.Context, id string) (*models.Servant, error)
	Create(ctx context.Context, s *models.Servant) error
	Update(ctx context.Context, s *models.Servant) error
	Delete(ctx context.Context, ids ...string) (int64, error)
}

// Input is the create and update body. Both replace the whole entry.
type Input struct {
	No          *int   `json:"no"`
	Gelar       string `json:"gelar"`
	Jabatan     string `json:"jabatan"`
	SektorLayan string `json:"sektorLayan"`
	NoHP        string `json:"noHp"`
}

func (in Input) apply(s *models.Servant) error {
	s.No = in.No
	s.Gelar = strings.TrimSpace(in.Gelar)
	s.Jabatan = strings.TrimSpace(in.Jabatan)
	s.SektorLayan = strings.TrimSpace(in.SektorLayan)
	s.NoHP = strings.TrimSpace(in.NoHP)

	if s.Gelar == "" {
		return apperr.Validation("gelar is required")
	}
	if s.Jabatan == "" {
		return apperr.Validation("jabatan is required")
	}
	if s.No != nil && *s.No < 1 {
		return apperr.Validation("no must be a positive integer")
	}
	if s.SektorLayan == "" {
		s.SektorLayan = models.NoSector
	}
	return nil
}

type Service struct {
	store Store
	log   logging.Logger
	now   func() time.Time
}

func NewService(s Store, log logging.Logger) *Service {
	return &Service{store: s, log: log, now: time.Now}
}

func (s *Service) List(ctx context.Context, search string) ([]models.Servant, error) {
	list, err := s.store.List(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, apperr.Storage("list servants", err)
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Servant, error) {
	sv, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("servant not found")
		}
		return nil, apperr.Storage("get servant", err)
	}
	return sv, nil
}

func (s *Service) Create(ctx context.Context, in Input) (*models.Servant, error) {
	sv := &models.Servant{}
	if err := in.apply(sv); err != nil {
		return nil, err
	}
	sv.ID = uuid.NewString()
	sv.CreatedAt = s.now().UTC().Truncate(time.Second)

	if err := s.store.Create(ctx, sv); err != nil {
		return nil, apperr.Storage("create servant", err)
	}

	s.log.Info(ctx, "servant created", "id", sv.ID)
	return sv, nil
}

func (s *Service) Update(ctx context.Context, id string, in Input) (*models.Servant, error) {
	stored, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	sv := &models.Servant{ID: stored.ID, CreatedAt: stored.CreatedAt}
	if err := in.apply(sv); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, sv); err != nil {
		return nil, apperr.Storage("update servant", err)
	}

	s.log.Info(ctx, "servant updated", "id", sv.ID)
	return sv, nil
}

// Delete is idempotent: an unknown id deletes nothing and succeeds.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperr.Validation("id is required")
	}
	n, err := s.store.Delete(ctx, id)
	if err != nil {
		return apperr.Storage("delete servant", err)
	}
	if n > 0 {
		s.log.Info(ctx, "servant deleted", "id", id)
	}
	return nil
}
