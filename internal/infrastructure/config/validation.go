package config

import (
	"fmt"
	"net"
	"strings"

	domainvalidation "github.com/briwestervelt/formal/internal/domain/validation"
)

const maxInboxSize = 8200

var (
	validLogLevels  = []string{"trace", "debug", "info", "warn", "error", "disabled"}
	validLogFormats = []string{"text", "json", "console"}
)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateServer(config)...)
	validationErrors = append(validationErrors, validateHost(config)...)
	validationErrors = append(validationErrors, validateDevice(config)...)
	validationErrors = append(validationErrors, validateMetrics(config)...)
	validationErrors = append(validationErrors, validateAppearance(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	if !contains(validLogLevels, config.Logging.Level) {
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.level must be one of: %s", strings.Join(validLogLevels, ", ")))
	}
	if !contains(validLogFormats, config.Logging.Format) {
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.format must be one of: %s", strings.Join(validLogFormats, ", ")))
	}
	if config.Logging.MaxSizeMB < 0 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be non-negative")
	}
	if config.Logging.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}
	if config.Logging.MaxAgeDays < 0 {
		validationErrors = append(validationErrors, "logging.max_age_days must be non-negative")
	}
	return validationErrors
}

func validateServer(config *Config) []string {
	if _, _, err := net.SplitHostPort(config.Server.Listen); err != nil {
		return []string{fmt.Sprintf("server.listen must be host:port (%v)", err)}
	}
	return nil
}

func validateHost(config *Config) []string {
	var validationErrors []string
	if config.Host.EventQueueSize < 1 {
		validationErrors = append(validationErrors, "host.event_queue_size must be at least 1")
	}
	if config.Host.OutboundQueueSize < 1 {
		validationErrors = append(validationErrors, "host.outbound_queue_size must be at least 1")
	}
	if config.Host.DeliveryTimeoutMs < 1 {
		validationErrors = append(validationErrors, "host.delivery_timeout_ms must be positive")
	}
	return validationErrors
}

func validateDevice(config *Config) []string {
	if config.Device.InboxSize < 1 || config.Device.InboxSize > maxInboxSize {
		return []string{fmt.Sprintf("device.inbox_size must be between 1 and %d", maxInboxSize)}
	}
	return nil
}

func validateMetrics(config *Config) []string {
	if config.Metrics.Path == "/" || strings.ContainsAny(config.Metrics.Path, " ?#") {
		return []string{"metrics.path must be a plain path like /metrics"}
	}
	return nil
}

func validateAppearance(config *Config) []string {
	return domainvalidation.ValidateHexFields("appearance", map[string]string{
		"accent":  config.Appearance.Accent,
		"muted":   config.Appearance.Muted,
		"success": config.Appearance.Success,
		"warning": config.Appearance.Warning,
		"error":   config.Appearance.Error,
	})
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
