package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":4000", c.Addr)
	assert.Equal(t, "pgx", c.DatabaseDriver)
	assert.Equal(t, 15, c.DefaultPageSize)
	assert.Equal(t, 100, c.MaxPageSize)
	assert.Equal(t, time.Duration(0), c.TokenTTL)
	assert.False(t, c.PublicListing)
	assert.NoError(t, c.Validate())
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	cfg, err := load(nil, envFrom(map[string]string{
		"PORT":            "8080",
		"DATABASE_DRIVER": "sqlite",
		"DATABASE_URL":    "file:jemaat.db",
		"ACCESS_SECRET":   "s3cret",
		"DB_MAX_OPEN":     "5",
		"DB_MAX_LIFETIME": "60",
		"TOKEN_TTL":       "12h",
		"PUBLIC_LISTING":  "true",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "file:jemaat.db", cfg.DatabaseDSN)
	assert.Equal(t, "s3cret", cfg.SecretKey)
	assert.Equal(t, 5, cfg.DBMaxOpen)
	assert.Equal(t, time.Minute, cfg.DBMaxLifetime)
	assert.Equal(t, 12*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.PublicListing)
}

func TestLoad_BadEnvValue(t *testing.T) {
	_, err := load(nil, envFrom(map[string]string{"DB_MAX_OPEN": "many"}))
	assert.ErrorContains(t, err, "DB_MAX_OPEN")
}

func TestLoad_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"address":      ":9000",
		"database_dsn": "from-json",
		"token_ttl":    "30m",
		"page_size":    20,
	})

	cfg, err := load(
		[]string{"-c", path, "-a", ":9100", "-t", "5"},
		envFrom(map[string]string{"DATABASE_URL": "from-env", "PORT": "7000"}),
	)
	require.NoError(t, err)

	want := &Config{}
	want.LoadDefaults()
	want.Addr = ":9100"
	want.DatabaseDSN = "from-json"
	want.TokenTTL = 5 * time.Minute
	want.DefaultPageSize = 20

	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestLoad_InvalidJSON(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{ not json`), 0o600))

	_, err := load([]string{"-config", bad}, envFrom(nil))
	assert.Error(t, err)
}

func TestLoad_UnknownFlagsIgnored(t *testing.T) {
	cfg, err := load([]string{"-email", "a@b.c", "-driver", "mysql", "-d", "u:p@/db"}, envFrom(nil))
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.DatabaseDriver)
	assert.Equal(t, "u:p@/db", cfg.DatabaseDSN)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"driver", func(c *Config) { c.DatabaseDriver = "oracle" }},
		{"dsn", func(c *Config) { c.DatabaseDSN = "" }},
		{"secret", func(c *Config) { c.SecretKey = "" }},
		{"page size", func(c *Config) { c.DefaultPageSize = 0 }},
		{"default above max", func(c *Config) { c.DefaultPageSize = 500 }},
		{"negative ttl", func(c *Config) { c.TokenTTL = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", 0},
		{"0", 0},
		{"15", 15 * time.Minute},
		{"90s", 90 * time.Second},
		{"2h", 2 * time.Hour},
	}
	for _, tt := range tests {
		got, err := ParseDuration(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseDuration("soon")
	assert.Error(t, err)
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	var v struct {
		A Duration `json:"a"`
		B Duration `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"1m30s","b":2}`), &v))
	assert.Equal(t, 90*time.Second, v.A.Duration)
	assert.Equal(t, 2*time.Minute, v.B.Duration)

	assert.Error(t, json.Unmarshal([]byte(`{"a":true}`), &v))
}
