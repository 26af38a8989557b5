package config

import (
	"strconv"

	"github.com/briwestervelt/formal/internal/domain/entity"
)

// Section names for grouping config keys.
const (
	SectionLogging    = "Logging"
	SectionDatabase   = "Database"
	SectionServer     = "Server"
	SectionHost       = "Host"
	SectionDevice     = "Device"
	SectionMetrics    = "Metrics"
	SectionAppearance = "Appearance"
)

// SchemaProvider implements port.ConfigSchemaProvider.
type SchemaProvider struct{}

// NewSchemaProvider creates a new SchemaProvider.
func NewSchemaProvider() *SchemaProvider {
	return &SchemaProvider{}
}

// GetSchema returns all configuration keys with their metadata.
func (p *SchemaProvider) GetSchema() []entity.ConfigKeyInfo {
	d := DefaultConfig()

	keys := make([]entity.ConfigKeyInfo, 0, 32)
	keys = append(keys, p.loggingKeys(d)...)
	keys = append(keys, p.storageKeys(d)...)
	keys = append(keys, p.hostKeys(d)...)
	keys = append(keys, p.deviceKeys(d)...)
	keys = append(keys, p.appearanceKeys(d)...)
	return keys
}

func (*SchemaProvider) loggingKeys(d *Config) []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{
			Key: "logging.level", Type: "string", Default: d.Logging.Level,
			Description: "Log verbosity level",
			Values:      []string{"trace", "debug", "info", "warn", "error", "fatal"},
			Section:     SectionLogging,
		},
		{
			Key: "logging.format", Type: "string", Default: d.Logging.Format,
			Description: "Log output format",
			Values:      []string{"text", "console", "json"},
			Section:     SectionLogging,
		},
		{
			Key: "logging.enable_file_log", Type: "bool", Default: strconv.FormatBool(d.Logging.EnableFileLog),
			Description: "Also write logs to a rotating file",
			Section:     SectionLogging,
		},
		{
			Key: "logging.log_dir", Type: "string", Default: "$XDG_STATE_HOME/formal/logs",
			Description: "Directory for log files",
			Section:     SectionLogging,
		},
		{
			Key: "logging.max_size_mb", Type: "int", Default: strconv.Itoa(d.Logging.MaxSizeMB),
			Description: "Rotate a log file after this many megabytes",
			Range:       ">= 0", Section: SectionLogging,
		},
		{
			Key: "logging.max_backups", Type: "int", Default: strconv.Itoa(d.Logging.MaxBackups),
			Description: "Rotated log files to keep",
			Range:       ">= 0", Section: SectionLogging,
		},
		{
			Key: "logging.max_age_days", Type: "int", Default: strconv.Itoa(d.Logging.MaxAgeDays),
			Description: "Days to keep rotated log files",
			Range:       ">= 0", Section: SectionLogging,
		},
		{
			Key: "logging.compress", Type: "bool", Default: strconv.FormatBool(d.Logging.Compress),
			Description: "Gzip rotated log files",
			Section:     SectionLogging,
		},
	}
}

func (*SchemaProvider) storageKeys(d *Config) []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{
			Key: "database.path", Type: "string", Default: "$XDG_DATA_HOME/formal/formal.db",
			Description: "SQLite file holding watch settings and the delivery log",
			Section:     SectionDatabase,
		},
		{
			Key: "server.listen", Type: "string", Default: d.Server.Listen,
			Description: "Address of the host emulator HTTP API",
			Section:     SectionServer,
		},
		{
			Key: "metrics.enabled", Type: "bool", Default: strconv.FormatBool(d.Metrics.Enabled),
			Description: "Expose Prometheus metrics on the HTTP API",
			Section:     SectionMetrics,
		},
		{
			Key: "metrics.path", Type: "string", Default: d.Metrics.Path,
			Description: "HTTP path for metrics",
			Section:     SectionMetrics,
		},
	}
}

func (*SchemaProvider) hostKeys(d *Config) []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{
			Key: "host.event_queue_size", Type: "int", Default: strconv.Itoa(d.Host.EventQueueSize),
			Description: "Pending events and callbacks before Emit blocks",
			Range:       ">= 1", Section: SectionHost,
		},
		{
			Key: "host.outbound_queue_size", Type: "int", Default: strconv.Itoa(d.Host.OutboundQueueSize),
			Description: "Queued deliveries before sends fail with outbox full",
			Range:       ">= 1", Section: SectionHost,
		},
		{
			Key: "host.delivery_timeout_ms", Type: "int", Default: strconv.Itoa(d.Host.DeliveryTimeoutMs),
			Description: "Time the watch has to acknowledge a message",
			Range:       ">= 1", Section: SectionHost,
		},
		{
			Key: "host.open_browser", Type: "bool", Default: strconv.FormatBool(d.Host.OpenBrowser),
			Description: "Open the configuration page in the system browser instead of logging it",
			Section:     SectionHost,
		},
	}
}

func (*SchemaProvider) deviceKeys(d *Config) []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{
			Key: "device.connected", Type: "bool", Default: strconv.FormatBool(d.Device.Connected),
			Description: "Whether the emulated watch accepts messages",
			Section:     SectionDevice,
		},
		{
			Key: "device.inbox_size", Type: "int", Default: strconv.Itoa(d.Device.InboxSize),
			Description: "Inbox buffer size of the emulated watch in bytes",
			Range:       "1-" + strconv.Itoa(maxInboxSize), Section: SectionDevice,
		},
	}
}

func (*SchemaProvider) appearanceKeys(d *Config) []entity.ConfigKeyInfo {
	color := func(name, value, desc string) entity.ConfigKeyInfo {
		return entity.ConfigKeyInfo{
			Key: "appearance." + name, Type: "string", Default: value,
			Description: desc, Range: "hex color", Section: SectionAppearance,
		}
	}
	return []entity.ConfigKeyInfo{
		color("accent", d.Appearance.Accent, "Titles and highlights in the CLI"),
		color("muted", d.Appearance.Muted, "Secondary text in the CLI"),
		color("success", d.Appearance.Success, "Acked deliveries"),
		color("warning", d.Appearance.Warning, "Warnings"),
		color("error", d.Appearance.Error, "Nacked deliveries and errors"),
	}
}
