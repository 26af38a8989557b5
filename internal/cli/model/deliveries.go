package model

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/briwestervelt/formal/internal/cli/styles"
	"github.com/briwestervelt/formal/internal/domain/entity"
)

// DeliveryLister returns recent deliveries, newest first.
type DeliveryLister interface {
	Execute(ctx context.Context, limit int) ([]*entity.Delivery, error)
}

// DeliveriesModel shows the delivery log as a table.
type DeliveriesModel struct {
	ctx        context.Context
	lister     DeliveryLister
	limit      int
	theme      *styles.Theme
	keys       styles.ViewerKeyMap
	help       help.Model
	table      table.Model
	deliveries []*entity.Delivery
	loading    bool
	err        error
	width      int
	height     int
}

// NewDeliveriesModel creates a new delivery log view.
func NewDeliveriesModel(ctx context.Context, theme *styles.Theme, lister DeliveryLister, limit int) DeliveriesModel {
	return DeliveriesModel{
		ctx:     ctx,
		lister:  lister,
		limit:   limit,
		theme:   theme,
		keys:    styles.DefaultViewerKeyMap(),
		help:    styles.NewStyledHelp(theme),
		loading: true,
		width:   100,
		height:  24,
	}
}

// deliveriesLoadedMsg is sent when the log is loaded.
type deliveriesLoadedMsg struct {
	deliveries []*entity.Delivery
	err        error
}

// Init implements tea.Model.
func (m DeliveriesModel) Init() tea.Cmd {
	return m.load
}

func (m DeliveriesModel) load() tea.Msg {
	deliveries, err := m.lister.Execute(m.ctx, m.limit)
	return deliveriesLoadedMsg{deliveries: deliveries, err: err}
}

// Update implements tea.Model.
func (m DeliveriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateTable()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, m.load
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		default:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case deliveriesLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.deliveries = msg.deliveries
		m.updateTable()
	}
	return m, nil
}

// updateTable rebuilds the table for the current size and data.
func (m *DeliveriesModel) updateTable() {
	m.table = styles.NewStyledTable(m.theme, styles.DeliveryTableColumns(), DeliveryRows(m.deliveries), m.width-4, tableHeight(len(m.deliveries), m.height))
}

func tableHeight(rows, screen int) int {
	h := rows
	if h > screen-8 {
		h = screen - 8
	}
	if h < 3 {
		h = 3
	}
	return h
}

// DeliveryRows converts deliveries to table rows.
func DeliveryRows(deliveries []*entity.Delivery) []table.Row {
	rows := make([]table.Row, 0, len(deliveries))
	for _, d := range deliveries {
		rows = append(rows, table.Row{
			styles.RelativeTime(d.CreatedAt),
			string(d.Status),
			strconv.Itoa(d.Size),
			strconv.Itoa(d.Message.Len()),
			d.TransactionID,
			d.Reason,
		})
	}
	return rows
}

// View implements tea.Model.
func (m DeliveriesModel) View() string {
	t := m.theme

	switch {
	case m.loading:
		return t.Box.Render(t.Subtle.Render("Loading deliveries..."))
	case m.err != nil:
		return t.Box.Render(t.ErrorStyle.Render("Error: " + m.err.Error()))
	case len(m.deliveries) == 0:
		return t.Box.Render(t.Subtle.Render("No deliveries yet"))
	}

	acked := 0
	for _, d := range m.deliveries {
		if d.Succeeded() {
			acked++
		}
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		t.Title.Render("Deliveries"),
		" ",
		t.Badge.Render(strconv.Itoa(len(m.deliveries))+" shown"),
		" ",
		t.BadgeMuted.Render(strconv.Itoa(acked)+" acked"),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		m.table.View(),
		"",
		m.help.View(m.keys),
	)
}

var _ tea.Model = DeliveriesModel{}
