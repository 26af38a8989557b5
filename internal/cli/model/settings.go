// Package model holds the Bubble Tea models behind the interactive CLI views.
package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/briwestervelt/formal/internal/cli/styles"
	"github.com/briwestervelt/formal/internal/domain/entity"
)

// SettingsReader loads the settings stored on the emulated watch.
type SettingsReader interface {
	Current(ctx context.Context) (*entity.WatchfaceSettings, error)
}

// SettingsModel shows the watchface settings with color swatches.
type SettingsModel struct {
	ctx      context.Context
	reader   SettingsReader
	theme    *styles.Theme
	keys     styles.ViewerKeyMap
	help     help.Model
	spinner  spinner.Model
	settings *entity.WatchfaceSettings
	loading  bool
	err      error
}

// NewSettingsModel creates a new settings view.
func NewSettingsModel(ctx context.Context, theme *styles.Theme, reader SettingsReader) SettingsModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.Accent)

	return SettingsModel{
		ctx:     ctx,
		reader:  reader,
		theme:   theme,
		keys:    styles.DefaultViewerKeyMap(),
		help:    styles.NewStyledHelp(theme),
		spinner: s,
		loading: true,
	}
}

// settingsLoadedMsg is sent when settings are loaded.
type settingsLoadedMsg struct {
	settings *entity.WatchfaceSettings
	err      error
}

// Init implements tea.Model.
func (m SettingsModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load)
}

func (m SettingsModel) load() tea.Msg {
	settings, err := m.reader.Current(m.ctx)
	return settingsLoadedMsg{settings: settings, err: err}
}

// Update implements tea.Model.
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, m.load
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}

	case settingsLoadedMsg:
		m.loading = false
		m.settings = msg.settings
		m.err = msg.err

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m SettingsModel) View() string {
	t := m.theme

	var body string
	switch {
	case m.loading:
		body = m.spinner.View() + " Loading watch settings..."
	case m.err != nil:
		body = t.ErrorStyle.Render("Error: " + m.err.Error())
	default:
		body = RenderSettings(t, m.settings)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		t.Box.Render(body),
		m.help.View(m.keys),
	)
}

// RenderSettings draws settings as a labelled list of swatches.
func RenderSettings(t *styles.Theme, s *entity.WatchfaceSettings) string {
	if s == nil {
		return t.Subtle.Render("No settings stored")
	}

	lines := []string{t.BoxHeader.Render("Formal watchface")}
	for _, slot := range entity.ColorSlots() {
		lines = append(lines, fmt.Sprintf("%-16s %s", slot.Field(), t.Swatch(s.Color(slot))))
	}
	lines = append(lines,
		fmt.Sprintf("%-16s %s", entity.BluetoothVibesField, t.Toggle(s.BluetoothVibes)),
		"",
		t.Subtle.Render("updated "+styles.RelativeTime(s.UpdatedAt)),
	)
	return strings.Join(lines, "\n")
}

var _ tea.Model = SettingsModel{}
