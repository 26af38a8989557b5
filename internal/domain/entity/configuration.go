package entity

import (
	"net/url"
	"strings"
)

// ConfigurationURL is the page opened on showConfiguration.
const ConfigurationURL = "http://briwestervelt.github.io/formal_config"

// ConfigurationPayload is the decoded response of the configuration page.
// It only lives for the duration of one webviewclosed handler.
type ConfigurationPayload struct {
	// Raw is the decoded JSON text, kept for diagnostics.
	Raw string

	// BackgroundSet reports whether backgroundColor was present and truthy.
	BackgroundSet bool

	// Colors holds the string values found for each slot. Slots whose value
	// is absent or not a string are missing.
	Colors map[ColorSlot]string

	// BluetoothVibes is nil unless the payload carried a JSON boolean.
	BluetoothVibes *bool
}

// ColorValue returns the raw string for slot s, if the payload had one.
func (p *ConfigurationPayload) ColorValue(s ColorSlot) (string, bool) {
	v, ok := p.Colors[s]
	return v, ok
}

// EncodeResponse percent-encodes JSON text the way a configuration page
// does before handing it back to the host (encodeURIComponent semantics).
func EncodeResponse(jsonText string) string {
	// QueryEscape encodes spaces as '+' and escapes a few characters that
	// encodeURIComponent leaves alone.
	escaped := url.QueryEscape(jsonText)
	replacer := strings.NewReplacer(
		"+", "%20",
		"%21", "!",
		"%27", "'",
		"%28", "(",
		"%29", ")",
		"%2A", "*",
	)
	return replacer.Replace(escaped)
}
