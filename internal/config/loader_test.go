package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, Default().Server, cfg.Server)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "barmenu", cfg.Database.DBName)
	assert.Empty(t, cfg.File)
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
server:
  addr: ":9090"
  read_timeout: 5s
storage:
  driver: memory
log:
  level: debug
  format: console
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))
	t.Setenv("BARMENU_SERVER_ADDR", ":7070")
	t.Setenv("BARMENU_DATABASE_PORT", "6543")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.File)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("BARMENU_STORAGE_DRIVER", "mongo")

	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid storage config")
}

func TestValidateSkipsDatabaseForMemoryDriver(t *testing.T) {
	cfg := Default()
	cfg.Storage.Driver = DriverMemory
	cfg.Database.Host = ""

	assert.NoError(t, Validate(cfg))

	cfg.Storage.Driver = DriverPostgres
	assert.Error(t, Validate(cfg))
}
