package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	"github.com/vaughan-dsouza/jemaat/internal/db/migrations"
	"github.com/vaughan-dsouza/jemaat/internal/logging"
)

// gooseUpContext is a seam for tests.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Dialect maps a driver name to the goose dialect.
func Dialect(driver string) (string, error) {
	switch driver {
	case DriverPostgres:
		return "postgres", nil
	case DriverMySQL:
		return "mysql", nil
	case DriverSQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("db: no migration dialect for %q", driver)
	}
}

// gooseLogger routes goose output through the service logger.
type gooseLogger struct {
	ctx context.Context
	log logging.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.log.Info(g.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "goose")
}

// Fatalf keeps goose's contract of not returning.
func (g gooseLogger) Fatalf(format string, v ...any) {
	g.log.Error(g.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "goose")
	os.Exit(1)
}

// Migrate applies the embedded migrations, logging progress to log.
func Migrate(ctx context.Context, db *sqlx.DB, log logging.Logger) error {
	dialect, err := Dialect(db.DriverName())
	if err != nil {
		return err
	}

	if log == nil {
		log = logging.Discard()
	}
	goose.SetLogger(gooseLogger{ctx: ctx, log: log})
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("db: goose dialect: %w", err)
	}

	if err := gooseUpContext(ctx, db.DB, "."); err != nil {
		return fmt.Errorf("db: migrate: %w", err)
	}
	return nil
}
