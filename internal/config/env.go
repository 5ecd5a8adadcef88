package config

import (
	"fmt"
	"strconv"
	"time"
)

// parseEnv overlays environment variables. PORT is kept for compatibility
// with container platforms and yields ":<port>" unless ADDRESS is set.
func parseEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv("PORT"); v != "" {
		cfg.Addr = ":" + v
	}
	if v := getenv("ADDRESS"); v != "" {
		cfg.Addr = v
	}
	if v := getenv("DATABASE_DRIVER"); v != "" {
		cfg.DatabaseDriver = v
	}
	if v := getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := getenv("ACCESS_SECRET"); v != "" {
		cfg.SecretKey = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"DB_MAX_OPEN", &cfg.DBMaxOpen},
		{"DB_MAX_IDLE", &cfg.DBMaxIdle},
		{"PAGE_SIZE", &cfg.DefaultPageSize},
		{"MAX_PAGE_SIZE", &cfg.MaxPageSize},
	}
	for _, it := range ints {
		v := getenv(it.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", it.key, err)
		}
		*it.dst = n
	}

	// seconds, as DB_MAX_LIFETIME has always been
	if v := getenv("DB_MAX_LIFETIME"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: DB_MAX_LIFETIME: %w", err)
		}
		cfg.DBMaxLifetime = time.Duration(n) * time.Second
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"TOKEN_TTL", &cfg.TokenTTL},
		{"REQUEST_TIMEOUT", &cfg.RequestTimeout},
	}
	for _, it := range durations {
		v := getenv(it.key)
		if v == "" {
			continue
		}
		d, err := ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", it.key, err)
		}
		*it.dst = d
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"PUBLIC_LISTING", &cfg.PublicListing},
		{"MIGRATE", &cfg.MigrateOnStart},
	}
	for _, it := range bools {
		v := getenv(it.key)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", it.key, err)
		}
		*it.dst = b
	}

	return nil
}
