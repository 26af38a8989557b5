package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/briwestervelt/formal/internal/domain/entity"
)

// Swatch renders a small block painted with c followed by its hex value.
func (t *Theme) Swatch(c entity.Color) string {
	block := lipgloss.NewStyle().
		Background(lipgloss.Color("#" + c.Hex())).
		Render("    ")
	return block + " " + t.Normal.Render("#"+c.Hex())
}

// Toggle renders a boolean setting.
func (t *Theme) Toggle(on bool) string {
	if on {
		return t.SuccessStyle.Render("on")
	}
	return t.Subtle.Render("off")
}
