package config

import "time"

// Config represents the complete configuration for formal.
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging" toml:"logging" json:"logging"`
	Database   DatabaseConfig   `mapstructure:"database" toml:"database" json:"database"`
	Server     ServerConfig     `mapstructure:"server" toml:"server" json:"server"`
	Host       HostConfig       `mapstructure:"host" toml:"host" json:"host"`
	Device     DeviceConfig     `mapstructure:"device" toml:"device" json:"device"`
	Metrics    MetricsConfig    `mapstructure:"metrics" toml:"metrics" json:"metrics"`
	Appearance AppearanceConfig `mapstructure:"appearance" toml:"appearance" json:"appearance"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,enum=disabled"`
	Format string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=text,enum=json,enum=console"`
	// EnableFileLog also writes logs to a rotating file under LogDir.
	EnableFileLog bool   `mapstructure:"enable_file_log" toml:"enable_file_log" json:"enable_file_log"`
	LogDir        string `mapstructure:"log_dir" toml:"log_dir" json:"log_dir"`
	MaxSizeMB     int    `mapstructure:"max_size_mb" toml:"max_size_mb" json:"max_size_mb" jsonschema:"minimum=0"`
	MaxBackups    int    `mapstructure:"max_backups" toml:"max_backups" json:"max_backups" jsonschema:"minimum=0"`
	MaxAgeDays    int    `mapstructure:"max_age_days" toml:"max_age_days" json:"max_age_days" jsonschema:"minimum=0"`
	Compress      bool   `mapstructure:"compress" toml:"compress" json:"compress"`
}

// DatabaseConfig locates the emulated watch storage.
type DatabaseConfig struct {
	// Path defaults to formal.db in the XDG data directory.
	Path string `mapstructure:"path" toml:"path" json:"path"`
}

// ServerConfig controls the HTTP host emulator.
type ServerConfig struct {
	Listen string `mapstructure:"listen" toml:"listen" json:"listen"`
}

// HostConfig sizes the host event bus.
type HostConfig struct {
	EventQueueSize    int `mapstructure:"event_queue_size" toml:"event_queue_size" json:"event_queue_size" jsonschema:"minimum=1"`
	OutboundQueueSize int `mapstructure:"outbound_queue_size" toml:"outbound_queue_size" json:"outbound_queue_size" jsonschema:"minimum=1"`
	DeliveryTimeoutMs int `mapstructure:"delivery_timeout_ms" toml:"delivery_timeout_ms" json:"delivery_timeout_ms" jsonschema:"minimum=1"`
	// OpenBrowser opens the configuration page in the desktop browser instead
	// of only logging its URL.
	OpenBrowser bool `mapstructure:"open_browser" toml:"open_browser" json:"open_browser"`
}

// DeliveryTimeout returns DeliveryTimeoutMs as a duration.
func (h HostConfig) DeliveryTimeout() time.Duration {
	return time.Duration(h.DeliveryTimeoutMs) * time.Millisecond
}

// DeviceConfig controls the emulated watch.
type DeviceConfig struct {
	Connected bool `mapstructure:"connected" toml:"connected" json:"connected"`
	InboxSize int  `mapstructure:"inbox_size" toml:"inbox_size" json:"inbox_size" jsonschema:"minimum=1,maximum=8200"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled" json:"enabled"`
	Path    string `mapstructure:"path" toml:"path" json:"path"`
}

// AppearanceConfig holds the CLI palette, as #RRGGBB colors.
type AppearanceConfig struct {
	Accent  string `mapstructure:"accent" toml:"accent" json:"accent" jsonschema:"pattern=^#[0-9a-fA-F]{6}$"`
	Muted   string `mapstructure:"muted" toml:"muted" json:"muted" jsonschema:"pattern=^#[0-9a-fA-F]{6}$"`
	Success string `mapstructure:"success" toml:"success" json:"success" jsonschema:"pattern=^#[0-9a-fA-F]{6}$"`
	Warning string `mapstructure:"warning" toml:"warning" json:"warning" jsonschema:"pattern=^#[0-9a-fA-F]{6}$"`
	Error   string `mapstructure:"error" toml:"error" json:"error" jsonschema:"pattern=^#[0-9a-fA-F]{6}$"`
}
