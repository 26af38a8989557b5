package entity

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a 24-bit RGB value as sent to the watch (0xRRGGBB).
type Color int32

// Default watchface colors.
const (
	ColorBlack     Color = 0x000000
	ColorLightGray Color = 0xAAAAAA
	ColorWhite     Color = 0xFFFFFF
)

// ParseHexColor converts a base-16 string into a Color.
// An optional "0x" or "#" prefix is accepted; anything else that is not a
// hex digit is rejected with ErrInvalidColor.
func ParseHexColor(s string) (Color, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimPrefix(raw, "#")
	if len(raw) > 1 && (raw[:2] == "0x" || raw[:2] == "0X") {
		raw = raw[2:]
	}
	if raw == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	v, err := strconv.ParseInt(raw, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return Color(v), nil
}

// Hex returns the color as six uppercase hex digits.
func (c Color) Hex() string {
	return fmt.Sprintf("%06X", int32(c))
}

// RGB splits the color into its 8-bit channels.
func (c Color) RGB() (r, g, b uint8) {
	v := uint32(c) & 0xFFFFFF
	return uint8(v >> 16), uint8(v >> 8), uint8(v)
}
