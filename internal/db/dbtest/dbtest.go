// Package dbtest provides migrated in-memory SQLite databases for tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vaughan-dsouza/jemaat/internal/db"
	"github.com/vaughan-dsouza/jemaat/internal/logging"
)

// NewSQLite returns a fresh, migrated in-memory database closed at test end.
func NewSQLite(t testing.TB) *sqlx.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"

	conn, err := db.Connect(db.DriverSQLite, dsn, db.Options{})
	if err != nil {
		t.Fatalf("dbtest: connect: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.Migrate(context.Background(), conn, logging.Discard()); err != nil {
		t.Fatalf("dbtest: migrate: %v", err)
	}

	return conn
}
