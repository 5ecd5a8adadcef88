package config

import (
	"flag"
	"fmt"

	"github.com/vaughan-dsouza/jemaat/internal/flagx"
)

// parseFlags overlays command-line flags:
//
//	-a string       listen address (":4000")
//	-driver string  database driver: pgx, mysql, sqlite
//	-d string       database DSN
//	-s string       token signing secret
//	-t duration     token lifetime, 0 = no expiry ("12h", or minutes)
//	-l string       log level
//	-public         allow member listing without a token
//	-migrate        apply migrations on start
//
// Flags this set does not define are skipped so tools embedding this config
// can define their own.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "address and port to listen on")
	fs.StringVar(&cfg.DatabaseDriver, "driver", cfg.DatabaseDriver, "database driver (pgx, mysql, sqlite)")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "token signing secret")
	ttl := fs.String("t", cfg.TokenTTL.String(), "token lifetime (0 disables expiry)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.BoolVar(&cfg.PublicListing, "public", cfg.PublicListing, "allow member listing without a token")
	fs.BoolVar(&cfg.MigrateOnStart, "migrate", cfg.MigrateOnStart, "apply migrations on start")

	if err := flagx.ParseKnown(fs, args); err != nil {
		return fmt.Errorf("config: flags: %w", err)
	}

	d, err := ParseDuration(*ttl)
	if err != nil {
		return fmt.Errorf("config: -t: %w", err)
	}
	cfg.TokenTTL = d

	return nil
}
