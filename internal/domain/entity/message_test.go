package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppMessage_MarshalJSONUsesWireOrder(t *testing.T) {
	vibes := true
	msg := NewAppMessage()
	msg.SetColor(SlotDate, 16777215)
	msg.SetColor(SlotBackground, 2003199)
	msg.SetColor(SlotTick, 0)
	msg.BluetoothVibes = &vibes

	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.Equal(t, `{"backgroundColor":2003199,"tickColor":0,"dateColor":16777215,"bluetoothVibes":true}`, string(data))
}

func TestAppMessage_UnmarshalJSON(t *testing.T) {
	var msg AppMessage
	err := json.Unmarshal([]byte(`{"backgroundColor":255,"bluetoothVibes":false}`), &msg)
	require.NoError(t, err)

	c, ok := msg.Color(SlotBackground)
	assert.True(t, ok)
	assert.Equal(t, Color(255), c)
	_, ok = msg.Color(SlotTick)
	assert.False(t, ok)
	require.NotNil(t, msg.BluetoothVibes)
	assert.False(t, *msg.BluetoothVibes)
	assert.Equal(t, 2, msg.Len())
}

func TestColorSlot_FieldAndKey(t *testing.T) {
	assert.Equal(t, "backgroundColor", SlotBackground.Field())
	assert.Equal(t, "dateColor", SlotDate.Field())
	assert.Equal(t, KeyMinuteColor, SlotMinute.Key())

	slot, ok := SlotForKey(KeyDotColor)
	assert.True(t, ok)
	assert.Equal(t, SlotDot, slot)

	_, ok = SlotForKey(KeyBluetoothVibes)
	assert.False(t, ok)
}

func TestEncodeResponse_MatchesEncodeURIComponent(t *testing.T) {
	got := EncodeResponse(`{"a":"b c","d":"(x)!"}`)
	assert.Equal(t, `%7B%22a%22%3A%22b%20c%22%2C%22d%22%3A%22(x)!%22%7D`, got)
}
