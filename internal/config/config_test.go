package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_AppliesFileOverDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[booking_api]
url = "http://backend:8000"
timeout = 3

[schedule]
timezone = "Europe/Moscow"
open_time = "10:00"
close_time = "21:00"
slot_step_minutes = 30
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "http://backend:8000", cfg.BookingAPI.URL)
	assert.Equal(t, "10:00", cfg.Schedule.OpenTime.String())
	assert.Equal(t, "21:00", cfg.Schedule.CloseTime.String())
	assert.Equal(t, 30, cfg.Schedule.SlotStepMinutes)
	// Не указанные в файле значения берутся из Default
	assert.Equal(t, StorageMemory, cfg.Session.Storage)
	assert.Equal(t, 7*24*time.Hour, cfg.Session.SessionTTL())
	assert.Equal(t, 2*time.Minute, cfg.Ledger.PendingTTLDuration())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[booking_api]
url = "http://backend:8000"
`)
	t.Setenv("BOOKING_API_URL", "http://override:9000")
	t.Setenv("HTTP_PORT", "7070")
	t.Setenv("DATABASE_DSN", "postgres://u:p@db/barber")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://override:9000", cfg.BookingAPI.URL)
	assert.Equal(t, 7070, cfg.Server.HTTPPort)
	assert.Equal(t, "postgres://u:p@db/barber", cfg.Ledger.DSN())
}

func TestLoad_InvalidPortEnv(t *testing.T) {
	path := writeConfig(t, "")
	t.Setenv("HTTP_PORT", "eighty")

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"bad port", func(c *Config) { c.Server.HTTPPort = 0 }},
		{"empty api url", func(c *Config) { c.BookingAPI.URL = "" }},
		{"unknown timezone", func(c *Config) { c.Schedule.Timezone = "Mars/Olympus" }},
		{"close before open", func(c *Config) { c.Schedule.CloseTime, c.Schedule.OpenTime = c.Schedule.OpenTime, c.Schedule.CloseTime }},
		{"step not dividing hour", func(c *Config) { c.Schedule.SlotStepMinutes = 25 }},
		{"redis without addr", func(c *Config) { c.Session.Storage = StorageRedis }},
		{"unknown ledger", func(c *Config) { c.Ledger.Storage = "mongo" }},
		{"zero pending ttl", func(c *Config) { c.Ledger.PendingTTL = 0 }},
	}

	require.NoError(t, Default().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestLedgerConfig_DSN(t *testing.T) {
	c := LedgerConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "barber", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=barber sslmode=disable", c.DSN())
}
