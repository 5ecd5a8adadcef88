// Package users implements admin user management. Every method expects the
// caller to be an authenticated admin; self-protection is enforced here.
package users

import (
	"context"
	"errors"
	"strings"

	"github.com/vaughan-dsouza/jemaat/internal/apperr"
	"github.com/vaughan-dsouza/jemaat/internal/auth"
	"github.com/vaughan-dsouza/jemaat/internal/logging"
	"github.com/vaughan-dsouza/jemaat/internal/models"
	"github.com/vaughan-dsouza/jemaat/internal/store"
)

type Store interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Search(ctx context.Context, keyword string) ([]models.User, error)
	UpdateRole(ctx context.Context, id string, role models.Role) error
	Delete(ctx context.Context, ids ...string) (int64, error)
}

type Service struct {
	store Store
	log   logging.Logger
}

func NewService(s Store, log logging.Logger) *Service {
	return &Service{store: s, log: log}
}

func public(list []models.User) []models.PublicUser {
	out := make([]models.PublicUser, len(list))
	for i := range list {
		out[i] = list[i].Public()
	}
	return out
}

func (s *Service) List(ctx context.Context, actor *models.User) ([]models.PublicUser, error) {
	if err := auth.Authorize(actor, auth.OpListUsers); err != nil {
		return nil, err
	}

	list, err := s.store.List(ctx)
	if err != nil {
		return nil, apperr.Storage("list users", err)
	}
	return public(list), nil
}

// Search matches keyword against name and email. An empty keyword returns
// every user; a non-empty keyword without matches is NotFound.
func (s *Service) Search(ctx context.Context, actor *models.User, keyword string) ([]models.PublicUser, error) {
	if err := auth.Authorize(actor, auth.OpSearchUsers); err != nil {
		return nil, err
	}

	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return s.List(ctx, actor)
	}

	list, err := s.store.Search(ctx, keyword)
	if err != nil {
		return nil, apperr.Storage("search users", err)
	}
	if len(list) == 0 {
		return nil, apperr.NotFound("no users match the keyword")
	}
	return public(list), nil
}

// ChangeRole sets a user's role. Admins cannot change their own role.
func (s *Service) ChangeRole(ctx context.Context, actor *models.User, userID string, role models.Role) error {
	if err := auth.Authorize(actor, auth.OpChangeRole); err != nil {
		return err
	}
	if userID == "" {
		return apperr.Validation("user id is required")
	}
	if !role.Valid() {
		return apperr.Validation("role must be admin or user")
	}
	if err := auth.ForbidSelf(actor, userID); err != nil {
		return err
	}

	if _, err := s.store.GetByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("user not found")
		}
		return apperr.Storage("get user", err)
	}

	if err := s.store.UpdateRole(ctx, userID, role); err != nil {
		return apperr.Storage("update role", err)
	}

	s.log.Info(ctx, "role changed", "actor", actor.ID, "user_id", userID, "role", role)
	return nil
}

// Delete removes one user and their linked accounts.
func (s *Service) Delete(ctx context.Context, actor *models.User, userID string) error {
	if err := auth.Authorize(actor, auth.OpDeleteUser); err != nil {
		return err
	}
	if userID == "" {
		return apperr.Validation("user id is required")
	}
	if err := auth.ForbidSelf(actor, userID); err != nil {
		return err
	}

	n, err := s.store.Delete(ctx, userID)
	if err != nil {
		return apperr.Storage("delete user", err)
	}

	s.log.Info(ctx, "user deleted", "actor", actor.ID, "user_id", userID, "deleted", n)
	return nil
}

// DeleteMany removes several users in one statement. The whole request is
// rejected when it includes the actor.
func (s *Service) DeleteMany(ctx context.Context, actor *models.User, ids []string) (int64, error) {
	if err := auth.Authorize(actor, auth.OpDeleteUser); err != nil {
		return 0, err
	}
	for _, id := range ids {
		if id == "" {
			return 0, apperr.Validation("ids must not contain empty values")
		}
	}
	if err := auth.ForbidSelf(actor, ids...); err != nil {
		return 0, err
	}

	n, err := s.store.Delete(ctx, ids...)
	if err != nil {
		return 0, apperr.Storage("delete users", err)
	}

	s.log.Info(ctx, "users deleted", "actor", actor.ID, "requested", len(ids), "deleted", n)
	return n, nil
}
