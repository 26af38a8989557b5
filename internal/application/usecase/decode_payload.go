package usecase

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"github.com/briwestervelt/formal/internal/domain/entity"
)

// cancelledResponse is what the host reports when the page is dismissed
// without saving.
const cancelledResponse = "CANCELLED"

// IsCancelledResponse reports whether a webviewclosed response carries no
// configuration at all.
func IsCancelledResponse(response string) bool {
	r := strings.TrimSpace(response)
	return r == "" || r == cancelledResponse
}

// DecodeConfigurationPayload percent-decodes and parses the response of the
// configuration page. Failures wrap entity.ErrMalformedPayload, including a
// blank or CANCELLED response, which carries no JSON at all.
func DecodeConfigurationPayload(response string) (*entity.ConfigurationPayload, error) {
	if IsCancelledResponse(response) {
		return nil, fmt.Errorf("%w: page closed without a result", entity.ErrMalformedPayload)
	}

	// decodeURIComponent semantics: '+' stays a literal plus.
	decoded, err := url.PathUnescape(response)
	if err != nil {
		return nil, fmt.Errorf("%w: percent-decoding: %v", entity.ErrMalformedPayload, err)
	}
	if !utf8.ValidString(decoded) {
		return nil, fmt.Errorf("%w: decoded response is not valid UTF-8", entity.ErrMalformedPayload)
	}
	if !gjson.Valid(decoded) {
		return nil, fmt.Errorf("%w: response is not valid JSON", entity.ErrMalformedPayload)
	}

	root := gjson.Parse(decoded)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: expected a JSON object, got %s", entity.ErrMalformedPayload, root.Type)
	}

	fields := lastValues(root)
	payload := &entity.ConfigurationPayload{
		Raw:    decoded,
		Colors: make(map[entity.ColorSlot]string, len(entity.ColorSlots())),
	}

	for _, slot := range entity.ColorSlots() {
		if v, ok := fields[slot.Field()]; ok && v.Type == gjson.String {
			payload.Colors[slot] = v.Str
		}
	}
	payload.BackgroundSet = truthy(fields[entity.SlotBackground.Field()])

	if v, ok := fields[entity.BluetoothVibesField]; ok && v.IsBool() {
		b := v.Bool()
		payload.BluetoothVibes = &b
	}

	return payload, nil
}

// lastValues indexes the members of obj by name. A repeated name keeps its
// last value, as JSON.parse does.
func lastValues(obj gjson.Result) map[string]gjson.Result {
	fields := make(map[string]gjson.Result)
	obj.ForEach(func(key, value gjson.Result) bool {
		fields[key.String()] = value
		return true
	})
	return fields
}

// truthy follows JavaScript truthiness for a JSON value.
func truthy(v gjson.Result) bool {
	switch v.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.True, gjson.JSON:
		return true
	case gjson.Number:
		return v.Num != 0
	case gjson.String:
		return v.Str != ""
	default:
		return false
	}
}
