package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "pgx"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Options configures the connection pool.
type Options struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
}

// Connect opens a pooled connection for driver and verifies it is reachable.
func Connect(driver, dsn string, opts Options) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)

	switch driver {
	case DriverPostgres:
		db, err = openPostgres(dsn)
	case DriverMySQL:
		db, err = openMySQL(dsn)
	case DriverSQLite:
		db, err = openSQLite(dsn)
	default:
		return nil, fmt.Errorf("db: unsupported driver %q", driver)
	}
	if err != nil {
		return nil, err
	}

	if driver != DriverSQLite {
		db.SetMaxOpenConns(opts.MaxOpen)
		db.SetMaxIdleConns(opts.MaxIdle)
		db.SetConnMaxLifetime(opts.MaxLifetime)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("db: failed to connect: %w", err)
	}

	var tmp int
	if err := db.QueryRow("SELECT 1").Scan(&tmp); err != nil {
		db.Close()
		return nil, fmt.Errorf("db: health check failed: %w", err)
	}

	return db, nil
}

func openPostgres(dsn string) (*sqlx.DB, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("db: failed to parse DSN: %w", err)
	}

	// Fail fast on startup if PG is unreachable
	cfg.ConnectTimeout = 5 * time.Second

	return sqlx.NewDb(stdlib.OpenDB(*cfg), DriverPostgres), nil
}

func openMySQL(dsn string) (*sqlx.DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("db: failed to parse DSN: %w", err)
	}

	cfg.ParseTime = true
	cfg.Loc = time.UTC
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("db: mysql connector: %w", err)
	}

	return sqlx.NewDb(sql.OpenDB(connector), DriverMySQL), nil
}

func openSQLite(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(DriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("db: open sqlite: %w", err)
	}

	// one writer; also keeps ":memory:" databases on a single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	return db, nil
}
