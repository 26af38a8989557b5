package model

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briwestervelt/formal/internal/cli/styles"
	"github.com/briwestervelt/formal/internal/domain/entity"
	"github.com/briwestervelt/formal/internal/infrastructure/config"
)

type stubSettings struct {
	settings *entity.WatchfaceSettings
	err      error
}

func (s stubSettings) Current(context.Context) (*entity.WatchfaceSettings, error) {
	return s.settings, s.err
}

type stubDeliveries struct {
	deliveries []*entity.Delivery
}

func (s stubDeliveries) Execute(context.Context, int) ([]*entity.Delivery, error) {
	return s.deliveries, nil
}

func testTheme() *styles.Theme {
	return styles.NewTheme(config.DefaultConfig())
}

func TestSettingsModel_RendersLoadedSettings(t *testing.T) {
	settings := entity.DefaultWatchfaceSettings()
	settings.Colors[entity.SlotBackground] = 0x1E90FF
	m := NewSettingsModel(context.Background(), testTheme(), stubSettings{settings: settings})

	updated, _ := m.Update(m.load())
	view := updated.View()

	assert.Contains(t, view, "backgroundColor")
	assert.Contains(t, view, "#1E90FF")
	assert.Contains(t, view, "#AAAAAA")
	assert.Contains(t, view, "bluetoothVibes")
}

func TestSettingsModel_ShowsLoadError(t *testing.T) {
	m := NewSettingsModel(context.Background(), testTheme(), stubSettings{err: errors.New("locked")})

	updated, _ := m.Update(m.load())

	assert.Contains(t, updated.View(), "Error: locked")
}

func TestSettingsModel_QuitKey(t *testing.T) {
	m := NewSettingsModel(context.Background(), testTheme(), stubSettings{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestDeliveriesModel_RendersTable(t *testing.T) {
	msg := entity.NewAppMessage()
	msg.SetColor(entity.SlotBackground, 0)
	deliveries := []*entity.Delivery{
		{TransactionID: "tx-acked", Message: msg, Size: 12, Status: entity.DeliveryAcked, CreatedAt: time.Now()},
		{TransactionID: "tx-nacked", Message: msg, Size: 12, Status: entity.DeliveryNacked, Reason: "device disconnected", CreatedAt: time.Now()},
	}
	m := NewDeliveriesModel(context.Background(), testTheme(), stubDeliveries{deliveries: deliveries}, 10)

	updated, _ := m.Update(m.load())
	view := updated.View()

	assert.Contains(t, view, "2 shown")
	assert.Contains(t, view, "1 acked")
	assert.Contains(t, view, "Status")
}

func TestDeliveriesModel_Empty(t *testing.T) {
	m := NewDeliveriesModel(context.Background(), testTheme(), stubDeliveries{}, 10)

	updated, _ := m.Update(m.load())

	assert.Contains(t, updated.View(), "No deliveries yet")
}

func TestDeliveryRows(t *testing.T) {
	rows := DeliveryRows([]*entity.Delivery{{TransactionID: "tx", Size: 75, Status: entity.DeliveryAcked, Message: entity.NewAppMessage()}})

	require.Len(t, rows, 1)
	assert.Equal(t, "acked", rows[0][1])
	assert.Equal(t, "75", rows[0][2])
	assert.Equal(t, "0", rows[0][3])
}
