package styles

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// NewStyledTable creates a themed table model.
func NewStyledTable(theme *Theme, columns []table.Column, rows []table.Row, width, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
		table.WithWidth(width),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Foreground(theme.Accent).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(theme.Text).
		Background(theme.Surface).
		Bold(true)
	s.Cell = s.Cell.
		Foreground(theme.Text)

	t.SetStyles(s)
	return t
}

// DeliveryTableColumns returns columns for the delivery log table.
func DeliveryTableColumns() []table.Column {
	return []table.Column{
		{Title: "When", Width: 10},
		{Title: "Status", Width: 8},
		{Title: "Bytes", Width: 6},
		{Title: "Fields", Width: 7},
		{Title: "Transaction", Width: 36},
		{Title: "Reason", Width: 30},
	}
}
