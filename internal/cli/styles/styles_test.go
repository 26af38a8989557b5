package styles

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/briwestervelt/formal/internal/domain/entity"
	"github.com/briwestervelt/formal/internal/infrastructure/config"
)

func TestNewTheme_UsesAppearancePalette(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Appearance.Accent = "#123456"

	theme := NewTheme(cfg)

	assert.Equal(t, "#123456", string(theme.Accent))
	assert.Equal(t, cfg.Appearance.Error, string(theme.Error))
}

func TestNewTheme_NilConfigFallsBack(t *testing.T) {
	theme := NewTheme(nil)

	assert.Equal(t, config.DefaultConfig().Appearance.Accent, string(theme.Accent))
}

func TestSwatch_ShowsHex(t *testing.T) {
	theme := NewTheme(nil)

	assert.Contains(t, theme.Swatch(entity.ColorLightGray), "#AAAAAA")
}

func TestRelativeTime(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Time{}, "never"},
		{time.Now().Add(-10 * time.Second), "just now"},
		{time.Now().Add(-5 * time.Minute), "5m ago"},
		{time.Now().Add(-3 * time.Hour), "3h ago"},
		{time.Now().Add(-48 * time.Hour), "2d ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RelativeTime(tt.in))
	}
}
