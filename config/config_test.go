package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.Server.Port)
	require.Equal(t, time.Second, cfg.Clock.TickInterval)
	require.Equal(t, 3*time.Minute, cfg.Clock.ExtensionWindow)
	require.Equal(t, 3*time.Minute, cfg.Clock.ExtensionDuration)
	require.Equal(t, 2*time.Second, cfg.Ledger.LockWait)
	require.Equal(t, "USD", cfg.Currency.Reference)
	require.Equal(t, 1.0, cfg.Currency.Rates["USD"])
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("RAC_SERVER_PORT", ":9090")
	t.Setenv("RAC_CLOCK_TICK_INTERVAL", "250ms")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.Server.Port)
	require.Equal(t, 250*time.Millisecond, cfg.Clock.TickInterval)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
server:
  port: ":7070"
clock:
  extension_window: 2m
  extension_duration: 90s
currency:
  reference: EUR
  rates:
    USD: 1.1
    CNY: 7.9
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, ":7070", cfg.Server.Port)
	require.Equal(t, 2*time.Minute, cfg.Clock.ExtensionWindow)
	require.Equal(t, 90*time.Second, cfg.Clock.ExtensionDuration)
	require.Equal(t, "EUR", cfg.Currency.Reference)
	require.Equal(t, 1.1, cfg.Currency.Rates["USD"])
	// Unset keys keep their defaults.
	require.Equal(t, time.Second, cfg.Clock.TickInterval)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
