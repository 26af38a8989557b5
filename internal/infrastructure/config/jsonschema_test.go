package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchema_Config(t *testing.T) {
	data, err := GenerateSchema(SchemaConfig)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "formal configuration", doc["title"])
	assert.Contains(t, string(data), `"inbox_size"`)
	assert.Contains(t, string(data), `"delivery_timeout_ms"`)
}

func TestGenerateSchema_Payload(t *testing.T) {
	data, err := GenerateSchema(SchemaPayload)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"backgroundColor"`)
	assert.Contains(t, string(data), `"bluetoothVibes"`)
}

func TestGenerateSchema_Unknown(t *testing.T) {
	_, err := GenerateSchema("watch")
	assert.Error(t, err)
}
