package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
)

// Schema kinds accepted by GenerateSchema.
const (
	SchemaConfig  = "config"
	SchemaPayload = "payload"
)

// PagePayload documents the object the configuration page returns in the
// webviewclosed response. It exists for schema generation only.
type PagePayload struct {
	BackgroundColor string `json:"backgroundColor,omitempty" jsonschema:"pattern=^(#|0x)?[0-9A-Fa-f]+$,description=Sending only happens when this is set"`
	TickColor       string `json:"tickColor,omitempty" jsonschema:"pattern=^(#|0x)?[0-9A-Fa-f]+$"`
	HourColor       string `json:"hourColor,omitempty" jsonschema:"pattern=^(#|0x)?[0-9A-Fa-f]+$"`
	MinuteColor     string `json:"minuteColor,omitempty" jsonschema:"pattern=^(#|0x)?[0-9A-Fa-f]+$"`
	DotColor        string `json:"dotColor,omitempty" jsonschema:"pattern=^(#|0x)?[0-9A-Fa-f]+$"`
	DateColor       string `json:"dateColor,omitempty" jsonschema:"pattern=^(#|0x)?[0-9A-Fa-f]+$"`
	BluetoothVibes  *bool  `json:"bluetoothVibes,omitempty" jsonschema:"description=Vibrate when the phone disconnects"`
}

// GenerateSchema returns the pretty-printed JSON schema for kind.
func GenerateSchema(kind string) ([]byte, error) {
	r := new(jsonschema.Reflector)

	var schema *jsonschema.Schema
	switch kind {
	case SchemaConfig, "":
		schema = r.Reflect(&Config{})
		schema.ID = "https://github.com/briwestervelt/formal/config.schema.json"
		schema.Title = "formal configuration"
		schema.Description = "Configuration for the formal watchface host emulator"
	case SchemaPayload:
		r.AllowAdditionalProperties = true
		schema = r.Reflect(&PagePayload{})
		schema.ID = "https://github.com/briwestervelt/formal/payload.schema.json"
		schema.Title = "formal configuration page result"
		schema.Description = "JSON object returned by the configuration page before percent-encoding"
	default:
		return nil, fmt.Errorf("unknown schema %q (want %s or %s)", kind, SchemaConfig, SchemaPayload)
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

// GenerateSchemaFile writes config.schema.json into dir.
func GenerateSchemaFile(dir string) error {
	data, err := GenerateSchema(SchemaConfig)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "config.schema.json"), data, filePerm); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}
	return nil
}
