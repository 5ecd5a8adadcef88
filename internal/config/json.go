package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/vaughan-dsouza/jemaat/internal/flagx"
)

// jsonConfig mirrors Config for file input. Pointer fields distinguish
// "absent" from zero so a partial file only overrides what it names.
type jsonConfig struct {
	Addr            *string   `json:"address"`
	DatabaseDriver  *string   `json:"database_driver"`
	DatabaseDSN     *string   `json:"database_dsn"`
	DBMaxOpen       *int      `json:"db_max_open"`
	DBMaxIdle       *int      `json:"db_max_idle"`
	DBMaxLifetime   *Duration `json:"db_max_lifetime"`
	SecretKey       *string   `json:"secret_key"`
	TokenTTL        *Duration `json:"token_ttl"`
	PublicListing   *bool     `json:"public_listing"`
	DefaultPageSize *int      `json:"page_size"`
	MaxPageSize     *int      `json:"max_page_size"`
	RequestTimeout  *Duration `json:"request_timeout"`
	LogLevel        *string   `json:"log_level"`
	MigrateOnStart  *bool     `json:"migrate"`
}

// parseJSON overlays values from the file named by -c/-config, if any.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.JSONConfigPath(args)
	if path == "" {
		return nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var c jsonConfig
	if err := json.Unmarshal(b, &c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	setString(&cfg.Addr, c.Addr)
	setString(&cfg.DatabaseDriver, c.DatabaseDriver)
	setString(&cfg.DatabaseDSN, c.DatabaseDSN)
	setString(&cfg.SecretKey, c.SecretKey)
	setString(&cfg.LogLevel, c.LogLevel)

	if c.DBMaxOpen != nil {
		cfg.DBMaxOpen = *c.DBMaxOpen
	}
	if c.DBMaxIdle != nil {
		cfg.DBMaxIdle = *c.DBMaxIdle
	}
	if c.DefaultPageSize != nil {
		cfg.DefaultPageSize = *c.DefaultPageSize
	}
	if c.MaxPageSize != nil {
		cfg.MaxPageSize = *c.MaxPageSize
	}
	if c.DBMaxLifetime != nil {
		cfg.DBMaxLifetime = c.DBMaxLifetime.Duration
	}
	if c.TokenTTL != nil {
		cfg.TokenTTL = c.TokenTTL.Duration
	}
	if c.RequestTimeout != nil {
		cfg.RequestTimeout = c.RequestTimeout.Duration
	}
	if c.PublicListing != nil {
		cfg.PublicListing = *c.PublicListing
	}
	if c.MigrateOnStart != nil {
		cfg.MigrateOnStart = *c.MigrateOnStart
	}

	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
