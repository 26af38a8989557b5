package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaProvider_GetSchema(t *testing.T) {
	keys := NewSchemaProvider().GetSchema()
	require.NotEmpty(t, keys)

	byKey := make(map[string]string, len(keys))
	for _, k := range keys {
		assert.NotEmpty(t, k.Section, k.Key)
		assert.NotEmpty(t, k.Description, k.Key)
		_, dup := byKey[k.Key]
		assert.False(t, dup, "duplicate key %s", k.Key)
		byKey[k.Key] = k.Default
	}

	assert.Equal(t, "info", byKey["logging.level"])
	assert.Equal(t, "127.0.0.1:8765", byKey["server.listen"])
	assert.Equal(t, "128", byKey["device.inbox_size"])
	assert.Equal(t, "5000", byKey["host.delivery_timeout_ms"])
	assert.Equal(t, "#1E90FF", byKey["appearance.accent"])
}

func TestSchemaProvider_KeysMatchViperDefaults(t *testing.T) {
	mgr, err := NewManagerAt(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	for _, k := range NewSchemaProvider().GetSchema() {
		assert.True(t, mgr.viper.IsSet(k.Key), "unknown config key %s", k.Key)
	}
}
