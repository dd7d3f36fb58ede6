package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db"
dbname = "slots"

[expiry]
schedule = "@every 30s"
`)
	t.Setenv("DB_PASSWORD", "secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "@every 30s", cfg.Expiry.Schedule)
	assert.Equal(t, 500, cfg.Expiry.BatchSize)
	assert.Contains(t, cfg.Database.DSN(), "password=secret")
}

func TestLoad_EnvHostOverride(t *testing.T) {
	path := writeConfig(t, "[database]\nhost = \"db\"\n")
	t.Setenv("DB_HOST", "postgres.internal")
	t.Setenv("DB_PORT", "6432")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres.internal", cfg.Database.Host)
	assert.Equal(t, 6432, cfg.Database.Port)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)

	path := writeConfig(t, "[server]\nhttp_port = 0\n")
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	path = writeConfig(t, "[scheduling]\ntimezone = \"Mars/Olympus\"\n")
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
