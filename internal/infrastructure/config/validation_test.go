package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
		{name: "bad format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "logging.format"},
		{name: "negative backups", mutate: func(c *Config) { c.Logging.MaxBackups = -1 }, wantErr: "logging.max_backups"},
		{name: "listen without port", mutate: func(c *Config) { c.Server.Listen = "localhost" }, wantErr: "server.listen"},
		{name: "zero event queue", mutate: func(c *Config) { c.Host.EventQueueSize = 0 }, wantErr: "host.event_queue_size"},
		{name: "zero outbound queue", mutate: func(c *Config) { c.Host.OutboundQueueSize = 0 }, wantErr: "host.outbound_queue_size"},
		{name: "zero timeout", mutate: func(c *Config) { c.Host.DeliveryTimeoutMs = 0 }, wantErr: "host.delivery_timeout_ms"},
		{name: "huge inbox", mutate: func(c *Config) { c.Device.InboxSize = 9000 }, wantErr: "device.inbox_size"},
		{name: "root metrics path", mutate: func(c *Config) { c.Metrics.Path = "/" }, wantErr: "metrics.path"},
		{name: "bad accent", mutate: func(c *Config) { c.Appearance.Accent = "blue" }, wantErr: "appearance.accent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
