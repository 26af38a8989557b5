package appmessage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briwestervelt/formal/internal/domain/entity"
)

func fullMessage() entity.AppMessage {
	vibes := true
	msg := entity.NewAppMessage()
	msg.SetColor(entity.SlotBackground, 2003199)
	msg.SetColor(entity.SlotTick, 0)
	msg.SetColor(entity.SlotHour, 16711680)
	msg.SetColor(entity.SlotMinute, 65280)
	msg.SetColor(entity.SlotDot, 255)
	msg.SetColor(entity.SlotDate, 16777215)
	msg.BluetoothVibes = &vibes
	return msg
}

func TestEncodeMessage_LayoutAndSize(t *testing.T) {
	data, err := EncodeMessage(fullMessage())
	require.NoError(t, err)

	// 1 header byte, six 11-byte int32 tuples, one 8-byte int8 tuple
	assert.Len(t, data, 75)
	assert.Equal(t, byte(7), data[0])
	// first tuple: key 0, type int, length 4, value 0x1E90FF little endian
	assert.Equal(t, []byte{0, 0, 0, 0, 3, 4, 0, 0xFF, 0x90, 0x1E, 0x00}, data[1:12])
}

func TestDecode_ToSettingsUpdate(t *testing.T) {
	data, err := EncodeMessage(fullMessage())
	require.NoError(t, err)

	tuples, err := Decode(data)
	require.NoError(t, err)
	update, err := ToSettingsUpdate(tuples)
	require.NoError(t, err)

	assert.Equal(t, entity.SettingsUpdate{
		entity.KeyBackgroundColor: 2003199,
		entity.KeyTickColor:       0,
		entity.KeyHourColor:       16711680,
		entity.KeyMinuteColor:     65280,
		entity.KeyDotColor:        255,
		entity.KeyDateColor:       16777215,
		entity.KeyBluetoothVibes:  1,
	}, update)
	assert.Equal(t, []entity.MessageKey{0, 1, 2, 3, 4, 5, 6}, SortedKeys(update))
}

func TestDecode_OmittedFieldsStayOmitted(t *testing.T) {
	msg := entity.NewAppMessage()
	msg.SetColor(entity.SlotDot, 255)

	data, err := EncodeMessage(msg)
	require.NoError(t, err)
	tuples, err := Decode(data)
	require.NoError(t, err)

	require.Len(t, tuples, 1)
	assert.Equal(t, entity.KeyDotColor, tuples[0].Key)
}

func TestDecode_RejectsTruncatedInput(t *testing.T) {
	data, err := EncodeMessage(fullMessage())
	require.NoError(t, err)

	for _, cut := range []int{0, 5, 12, len(data) - 1} {
		_, err := Decode(data[:cut])
		assert.ErrorIs(t, err, entity.ErrMalformedDictionary, "cut at %d", cut)
	}

	_, err = Decode(append(data, 0))
	assert.ErrorIs(t, err, entity.ErrMalformedDictionary)
}

func TestTupleInt_SignExtension(t *testing.T) {
	v, err := Int8Tuple(entity.KeyBluetoothVibes, -1).Int()
	require.NoError(t, err)
	assert.Equal(t, int32(-1), v)

	_, err = Tuple{Key: 1, Type: TupleCString, Value: []byte("x\x00")}.Int()
	assert.ErrorIs(t, err, entity.ErrMalformedDictionary)
}
