package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsHexColor(t *testing.T) {
	assert.True(t, IsHexColor("#1E90FF"))
	assert.True(t, IsHexColor("#aaaaaa"))
	assert.False(t, IsHexColor("1E90FF"))
	assert.False(t, IsHexColor("#1E90F"))
	assert.False(t, IsHexColor("#GGGGGG"))
}

func TestValidateHexFields_SortedMessages(t *testing.T) {
	errs := ValidateHexFields("appearance", map[string]string{
		"warning": "orange",
		"accent":  "#000000",
		"error":   "",
	})

	assert.Equal(t, []string{
		"appearance.error must be a hex color like #RRGGBB",
		"appearance.warning must be a hex color like #RRGGBB",
	}, errs)
}
