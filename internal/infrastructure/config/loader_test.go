package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	dir := t.TempDir()
	m, err := NewManagerAt(dir)
	require.NoError(t, err)
	return m, dir
}

func TestSetDefaults(t *testing.T) {
	mgr := &Manager{viper: viper.New()}
	mgr.setDefaults()

	assert.Equal(t, "127.0.0.1:8765", mgr.viper.GetString("server.listen"))
	assert.Equal(t, 128, mgr.viper.GetInt("device.inbox_size"))
	assert.True(t, mgr.viper.GetBool("device.connected"))
}

func TestLoad_CreatesDefaultConfig(t *testing.T) {
	m, dir := newTestManager(t)

	require.NoError(t, m.Load())

	assert.FileExists(t, filepath.Join(dir, "config.toml"))
	assert.FileExists(t, filepath.Join(dir, "config.schema.json"))

	cfg := m.Get()
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 64, cfg.Host.EventQueueSize)
	assert.Equal(t, 5*time.Second, cfg.Host.DeliveryTimeout())
	assert.Equal(t, "formal.db", filepath.Base(cfg.Database.Path))
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	m, dir := newTestManager(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[server]
listen = "0.0.0.0:9000"

[device]
connected = false
inbox_size = 64

[appearance]
accent = "#abcdef"
`), 0o600))
	t.Setenv("FORMAL_LOG_LEVEL", "DEBUG")
	t.Setenv("FORMAL_HOST_OPEN_BROWSER", "true")

	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Listen)
	assert.False(t, cfg.Device.Connected)
	assert.Equal(t, 64, cfg.Device.InboxSize)
	assert.Equal(t, "#ABCDEF", cfg.Appearance.Accent)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Host.OpenBrowser)
}

func TestLoad_InvalidConfigFails(t *testing.T) {
	m, dir := newTestManager(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[device]
inbox_size = 0
`), 0o600))

	err := m.Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "device.inbox_size")
}

func TestReload_NotifiesCallbacks(t *testing.T) {
	m, dir := newTestManager(t)
	require.NoError(t, m.Load())

	var got *Config
	m.OnConfigChange(func(c *Config) { got = c })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[server]
listen = "127.0.0.1:9999"
`), 0o600))
	require.NoError(t, m.Reload())

	require.NotNil(t, got)
	assert.Equal(t, "127.0.0.1:9999", got.Server.Listen)
	assert.Equal(t, "127.0.0.1:9999", m.Get().Server.Listen)
}

func TestReload_InvalidKeepsPrevious(t *testing.T) {
	m, dir := newTestManager(t)
	require.NoError(t, m.Load())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[server]
listen = "nonsense"
`), 0o600))

	require.Error(t, m.Reload())
	assert.Equal(t, "127.0.0.1:8765", m.Get().Server.Listen)
}

func TestGet_ReturnsCopy(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.Load())

	cfg := m.Get()
	cfg.Server.Listen = "changed:1"

	assert.Equal(t, "127.0.0.1:8765", m.Get().Server.Listen)
}

func TestNormalizeConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = " WARN "
	cfg.Logging.Format = ""
	cfg.Metrics.Path = "stats"

	normalizeConfig(cfg)

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "/stats", cfg.Metrics.Path)
}
