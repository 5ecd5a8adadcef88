// Command admin creates an administrator or promotes an existing user.
//
//	admin -email root@example.com [-name Root] [-d DSN -driver pgx]
//
// The password is read from the terminal. Leaving it empty keeps the
// current password of an existing user.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/vaughan-dsouza/jemaat/internal/admin"
	"github.com/vaughan-dsouza/jemaat/internal/config"
	"github.com/vaughan-dsouza/jemaat/internal/db"
	"github.com/vaughan-dsouza/jemaat/internal/flagx"
	"github.com/vaughan-dsouza/jemaat/internal/logging"
	"github.com/vaughan-dsouza/jemaat/internal/store"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var email, name string
	fs := flag.NewFlagSet("admin", flag.ExitOnError)
	fs.StringVar(&email, "email", "", "admin email")
	fs.StringVar(&name, "name", "", "display name for a new admin")
	_ = flagx.ParseKnown(fs, os.Args[1:])

	logger := logging.NewJSON(os.Stderr, cfg.LogLevel)
	ctx := context.Background()

	password, err := admin.PromptPassword(os.Stderr, int(os.Stdin.Fd()))
	if err != nil {
		logger.Error(ctx, "read password", "err", err)
		os.Exit(1)
	}

	conn, err := db.Connect(cfg.DatabaseDriver, cfg.DatabaseDSN, db.Options{MaxOpen: 1})
	if err != nil {
		logger.Error(ctx, "db connect", "err", err)
		os.Exit(1)
	}
	defer conn.Close()

	if err := db.Migrate(ctx, conn, logger); err != nil {
		logger.Error(ctx, "db migrate", "err", err)
		os.Exit(1)
	}

	res, err := admin.EnsureAdmin(ctx, store.NewUsers(conn), email, name, password)
	if err != nil {
		logger.Error(ctx, "ensure admin", "email", email, "err", err)
		os.Exit(1)
	}

	logger.Info(ctx, "admin ready",
		"user_id", res.UserID,
		"created", res.Created,
		"password_changed", res.PasswordChanged,
	)
}
