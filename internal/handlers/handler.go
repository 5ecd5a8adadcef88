package handlers

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/vaughan-dsouza/jemaat/internal/auth"
	"github.com/vaughan-dsouza/jemaat/internal/dashboard"
	"github.com/vaughan-dsouza/jemaat/internal/logging"
	"github.com/vaughan-dsouza/jemaat/internal/members"
	"github.com/vaughan-dsouza/jemaat/internal/servants"
	"github.com/vaughan-dsouza/jemaat/internal/store"
	"github.com/vaughan-dsouza/jemaat/internal/users"
)

// Options carries the settings handlers need from the configuration.
type Options struct {
	SecretKey     string
	TokenTTL      time.Duration
	Limits        members.Limits
	PublicListing bool
}

type Handler struct {
	Auth      *AuthHandler
	Members   *MemberHandler
	Users     *UserHandler
	Export    *ExportHandler
	Dashboard *DashboardHandler
	Servants  *ServantHandler
	Health    *HealthHandler

	authSvc *auth.Service
	log     logging.Logger
	opts    Options
}

// NewHandler wires the stores and services over db.
func NewHandler(db *sqlx.DB, log logging.Logger, opts Options) *Handler {
	userStore := store.NewUsers(db)
	memberStore := store.NewMembers(db)

	authSvc := auth.NewService(
		userStore,
		store.NewAccounts(db),
		store.NewVerificationTokens(db),
		auth.NewTokens(opts.SecretKey, opts.TokenTTL),
		log,
	)
	memberSvc := members.NewService(memberStore, log)

	return &Handler{
		Auth:      NewAuthHandler(authSvc, log),
		Members:   NewMemberHandler(memberSvc, opts.Limits, log),
		Users:     NewUserHandler(users.NewService(userStore, log), log),
		Export:    NewExportHandler(memberSvc, log),
		Dashboard: NewDashboardHandler(dashboard.NewService(memberStore), log),
		Servants:  NewServantHandler(servants.NewService(store.NewServants(db), log), log),
		Health:    NewHealthHandler(db, log),
		authSvc:   authSvc,
		log:       log,
		opts:      opts,
	}
}
