package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config     *Config
	viper      *viper.Viper
	configDir  string
	defaultDir bool
	mu         sync.RWMutex
	callbacks  []func(*Config)
	watching   bool
}

// NewManager creates a manager for $XDG_CONFIG_HOME/formal/config.toml.
func NewManager() (*Manager, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	m, err := NewManagerAt(configDir)
	if err != nil {
		return nil, err
	}
	m.defaultDir = true
	return m, nil
}

// NewManagerAt creates a manager reading config.toml from dir.
func NewManagerAt(dir string) (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)

	// FORMAL_SERVER_LISTEN, FORMAL_DEVICE_CONNECTED, ...
	v.SetEnvPrefix("FORMAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Short names shared with logging.NewFromEnv.
	if err := v.BindEnv("logging.level", "FORMAL_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind FORMAL_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "FORMAL_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind FORMAL_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		configDir: dir,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables. A
// missing file is created with the defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.defaultDir {
		if err := EnsureDirectories(); err != nil {
			return fmt.Errorf("failed to ensure directories: %w", err)
		}
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.buildConfig()
	if err != nil {
		return err
	}
	m.config = config
	return nil
}

// buildConfig unmarshals, normalizes and validates the current viper state.
func (m *Manager) buildConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	if err := ensureDatabasePath(config); err != nil {
		return nil, err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", m.configFile(), err)
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		return fmt.Errorf(
			"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
			m.configDir,
			createErr,
		)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
	}
	return nil
}

func (m *Manager) configFile() string {
	if used := m.viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(m.configDir, "config.toml")
}

func ensureDatabasePath(config *Config) error {
	if config.Database.Path != "" {
		return nil
	}
	dbPath, err := GetDatabaseFile()
	if err != nil {
		return fmt.Errorf("failed to get database path: %w", err)
	}
	config.Database.Path = dbPath
	return nil
}

func normalizeConfig(config *Config) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	if config.Logging.Format == "" {
		config.Logging.Format = "text"
	}
	if config.Logging.LogDir == "" {
		config.Logging.LogDir = getDefaultLogDir()
	}

	if config.Metrics.Path == "" {
		config.Metrics.Path = defaultMetricsPath
	} else if !strings.HasPrefix(config.Metrics.Path, "/") {
		config.Metrics.Path = "/" + config.Metrics.Path
	}

	config.Appearance.Accent = strings.ToUpper(config.Appearance.Accent)
	config.Appearance.Muted = strings.ToUpper(config.Appearance.Muted)
	config.Appearance.Success = strings.ToUpper(config.Appearance.Success)
	config.Appearance.Warning = strings.ToUpper(config.Appearance.Warning)
	config.Appearance.Error = strings.ToUpper(config.Appearance.Error)
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.configFile()
}

// createDefaultConfig writes the defaults and their JSON schema to the
// config directory.
func (m *Manager) createDefaultConfig() error {
	if err := os.MkdirAll(m.configDir, dirPerm); err != nil {
		return err
	}

	configFile := filepath.Join(m.configDir, "config.toml")
	m.viper.SetConfigType("toml")
	if err := m.viper.SafeWriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Created default configuration file: %s\n", configFile)

	if err := GenerateSchemaFile(m.configDir); err != nil {
		return err
	}
	return nil
}

func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)
	m.viper.SetDefault("logging.log_dir", defaults.Logging.LogDir)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	m.viper.SetDefault("logging.max_age_days", defaults.Logging.MaxAgeDays)
	m.viper.SetDefault("logging.compress", defaults.Logging.Compress)

	m.viper.SetDefault("database.path", defaults.Database.Path)

	m.viper.SetDefault("server.listen", defaults.Server.Listen)

	m.viper.SetDefault("host.event_queue_size", defaults.Host.EventQueueSize)
	m.viper.SetDefault("host.outbound_queue_size", defaults.Host.OutboundQueueSize)
	m.viper.SetDefault("host.delivery_timeout_ms", defaults.Host.DeliveryTimeoutMs)
	m.viper.SetDefault("host.open_browser", defaults.Host.OpenBrowser)

	m.viper.SetDefault("device.connected", defaults.Device.Connected)
	m.viper.SetDefault("device.inbox_size", defaults.Device.InboxSize)

	m.viper.SetDefault("metrics.enabled", defaults.Metrics.Enabled)
	m.viper.SetDefault("metrics.path", defaults.Metrics.Path)

	m.viper.SetDefault("appearance.accent", defaults.Appearance.Accent)
	m.viper.SetDefault("appearance.muted", defaults.Appearance.Muted)
	m.viper.SetDefault("appearance.success", defaults.Appearance.Success)
	m.viper.SetDefault("appearance.warning", defaults.Appearance.Warning)
	m.viper.SetDefault("appearance.error", defaults.Appearance.Error)
}
