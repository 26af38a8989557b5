package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultWatchfaceSettings(t *testing.T) {
	s := DefaultWatchfaceSettings()

	assert.Equal(t, ColorBlack, s.Color(SlotBackground))
	assert.Equal(t, ColorLightGray, s.Color(SlotTick))
	assert.Equal(t, ColorWhite, s.Color(SlotDate))
	assert.True(t, s.BluetoothVibes)
}

func TestWatchfaceSettings_ApplyOnlyTouchesPresentKeys(t *testing.T) {
	s := DefaultWatchfaceSettings()

	changed := s.Apply(SettingsUpdate{
		KeyBackgroundColor: 0x1E90FF,
		KeyHourColor:       int32(ColorWhite),
		KeyBluetoothVibes:  0,
	})

	assert.ElementsMatch(t, []MessageKey{KeyBackgroundColor, KeyBluetoothVibes}, changed)
	assert.Equal(t, Color(0x1E90FF), s.Color(SlotBackground))
	assert.Equal(t, ColorLightGray, s.Color(SlotTick))
	assert.False(t, s.BluetoothVibes)
	assert.False(t, s.UpdatedAt.IsZero())
}

func TestWatchfaceSettings_Values(t *testing.T) {
	s := DefaultWatchfaceSettings()
	values := s.Values()

	assert.Len(t, values, 7)
	assert.Equal(t, int32(ColorLightGray), values[KeyTickColor])
	assert.Equal(t, int32(1), values[KeyBluetoothVibes])
}
