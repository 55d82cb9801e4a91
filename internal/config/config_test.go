package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", cfg.Ledger.URL)
	assert.Equal(t, 10*time.Second, cfg.Ledger.Timeout)
	assert.Equal(t, "money.db", cfg.Cache.Path)
	assert.Equal(t, time.Minute, cfg.Cache.RefreshInterval)
	assert.Equal(t, "bolt", cfg.Server.Store)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoad_Environment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LEDGER_URL", "http://ledger.test/api")
	t.Setenv("REFRESH_INTERVAL_SECONDS", "0")
	t.Setenv("TELEGRAM_ADMIN_ID", "12345")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://ledger.test/api", cfg.Ledger.URL)
	assert.Equal(t, time.Duration(0), cfg.Cache.RefreshInterval)
	assert.Equal(t, int64(12345), cfg.Telegram.AdminID)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LEDGERD_PORT=9090\n"), 0600))
	t.Cleanup(func() { _ = os.Unsetenv("LEDGERD_PORT") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
}

func TestLoad_InvalidNumber(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LEDGER_TIMEOUT_SECONDS", "soon")

	_, err := Load()
	assert.Error(t, err)
}
