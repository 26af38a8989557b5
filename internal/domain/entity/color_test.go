package entity

import (
	"errors"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Color
		wantErr bool
	}{
		{"dodger blue", "1E90FF", 2003199, false},
		{"black", "000000", 0, false},
		{"red", "FF0000", 16711680, false},
		{"green", "00FF00", 65280, false},
		{"blue", "0000FF", 255, false},
		{"white", "FFFFFF", 16777215, false},
		{"lowercase", "ffffff", 16777215, false},
		{"hash prefix", "#00FF00", 65280, false},
		{"0x prefix", "0x0000ff", 255, false},
		{"short", "F", 15, false},
		{"empty", "", 0, true},
		{"prefix only", "0x", 0, true},
		{"not hex", "zz", 0, true},
		{"trailing garbage", "1Ezz", 0, true},
		{"too large", "FFFFFFFFFF", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidColor) {
					t.Fatalf("ParseHexColor(%q) error = %v, want ErrInvalidColor", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHexColor(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseHexColor(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorHexAndRGB(t *testing.T) {
	c := Color(2003199)
	if got := c.Hex(); got != "1E90FF" {
		t.Errorf("Hex() = %q, want 1E90FF", got)
	}
	r, g, b := c.RGB()
	if r != 0x1E || g != 0x90 || b != 0xFF {
		t.Errorf("RGB() = %d,%d,%d", r, g, b)
	}
}
