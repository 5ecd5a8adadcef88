// Package store holds the sqlx-backed repositories. Every query is written
// with "?" placeholders and rebound for the connected driver, so the same code
// runs on PostgreSQL, MySQL and SQLite.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate key")
)

// WithTx runs fn inside a transaction, committing on success and rolling back
// on error or panic. Panics are rethrown.
func WithTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	return fn(tx)
}

// isUniqueViolation recognises duplicate-key errors from each supported driver.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}

	// modernc.org/sqlite: SQLITE_CONSTRAINT_UNIQUE / SQLITE_CONSTRAINT_PRIMARYKEY
	var coded interface{ Code() int }
	if errors.As(err, &coded) {
		switch coded.Code() {
		case 2067, 1555:
			return true
		case 19:
			return strings.Contains(err.Error(), "UNIQUE")
		}
	}

	return false
}

// likeEscape is the LIKE escape character. A backslash would need different
// quoting on MySQL than on PostgreSQL and SQLite.
const likeEscape = "!"

var likeEscaper = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

// likeClause is a case-insensitive substring match on col, to be bound with
// likePattern.
func likeClause(col string) string {
	return "LOWER(" + col + ") LIKE ? ESCAPE '" + likeEscape + "'"
}

// likePattern returns a lower-cased substring pattern with the LIKE
// wildcards in s matched literally.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(s))) + "%"
}
