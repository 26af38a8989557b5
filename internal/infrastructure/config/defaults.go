package config

import "path/filepath"

const (
	dirPerm  = 0o755
	filePerm = 0o644

	defaultListen            = "127.0.0.1:8765"
	defaultEventQueueSize    = 64
	defaultOutboundQueueSize = 16
	defaultDeliveryTimeoutMs = 5000
	defaultInboxSize         = 128
	defaultMaxLogSizeMB      = 10
	defaultMaxLogBackups     = 3
	defaultMaxLogAgeDays     = 7
	defaultMetricsPath       = "/metrics"
)

// DefaultConfig returns the default configuration values for formal.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:         "info",
			Format:        "text",
			EnableFileLog: false,
			LogDir:        getDefaultLogDir(),
			MaxSizeMB:     defaultMaxLogSizeMB,
			MaxBackups:    defaultMaxLogBackups,
			MaxAgeDays:    defaultMaxLogAgeDays,
			Compress:      true,
		},
		Database: DatabaseConfig{
			// Path is set dynamically in Load()
		},
		Server: ServerConfig{
			Listen: defaultListen,
		},
		Host: HostConfig{
			EventQueueSize:    defaultEventQueueSize,
			OutboundQueueSize: defaultOutboundQueueSize,
			DeliveryTimeoutMs: defaultDeliveryTimeoutMs,
			OpenBrowser:       false,
		},
		Device: DeviceConfig{
			Connected: true,
			InboxSize: defaultInboxSize,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    defaultMetricsPath,
		},
		Appearance: AppearanceConfig{
			Accent:  "#1E90FF",
			Muted:   "#AAAAAA",
			Success: "#00FF00",
			Warning: "#FFAA00",
			Error:   "#FF0000",
		},
	}
}

func getDefaultLogDir() string {
	dir, err := GetLogDir()
	if err != nil {
		return filepath.Join(".", "logs")
	}
	return dir
}
