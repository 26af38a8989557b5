package entity

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// MessageKey is the numeric AppMessage key shared with the watchface.
type MessageKey uint32

const (
	KeyBackgroundColor MessageKey = 0
	KeyTickColor       MessageKey = 1
	KeyHourColor       MessageKey = 2
	KeyMinuteColor     MessageKey = 3
	KeyDotColor        MessageKey = 4
	KeyDateColor       MessageKey = 5
	KeyBluetoothVibes  MessageKey = 6
)

// ColorSlot names one of the six configurable watchface colors.
type ColorSlot int

const (
	SlotBackground ColorSlot = iota
	SlotTick
	SlotHour
	SlotMinute
	SlotDot
	SlotDate
)

// ColorSlots returns the slots in wire order.
func ColorSlots() []ColorSlot {
	return []ColorSlot{SlotBackground, SlotTick, SlotHour, SlotMinute, SlotDot, SlotDate}
}

var slotFields = [...]string{
	SlotBackground: "backgroundColor",
	SlotTick:       "tickColor",
	SlotHour:       "hourColor",
	SlotMinute:     "minuteColor",
	SlotDot:        "dotColor",
	SlotDate:       "dateColor",
}

// BluetoothVibesField is the payload and message field for the disconnect
// vibration toggle.
const BluetoothVibesField = "bluetoothVibes"

// Field returns the JSON field name used by the configuration page and the
// outbound message.
func (s ColorSlot) Field() string {
	if s < 0 || int(s) >= len(slotFields) {
		return "color" + strconv.Itoa(int(s))
	}
	return slotFields[s]
}

// Key returns the AppMessage key for the slot.
func (s ColorSlot) Key() MessageKey {
	return MessageKey(s)
}

// SlotForKey maps an AppMessage key back to a color slot.
func SlotForKey(k MessageKey) (ColorSlot, bool) {
	if k > KeyDateColor {
		return 0, false
	}
	return ColorSlot(k), true
}

// AppMessage is the outbound message sent to the watchface.
// Slots missing from Colors, and a nil BluetoothVibes, are not sent.
type AppMessage struct {
	Colors         map[ColorSlot]Color
	BluetoothVibes *bool
}

// NewAppMessage returns an empty message ready to be filled.
func NewAppMessage() AppMessage {
	return AppMessage{Colors: make(map[ColorSlot]Color, len(slotFields))}
}

// SetColor stores c for slot s.
func (m *AppMessage) SetColor(s ColorSlot, c Color) {
	if m.Colors == nil {
		m.Colors = make(map[ColorSlot]Color, len(slotFields))
	}
	m.Colors[s] = c
}

// Color returns the color for slot s, if present.
func (m AppMessage) Color(s ColorSlot) (Color, bool) {
	c, ok := m.Colors[s]
	return c, ok
}

// Len returns the number of fields the message carries.
func (m AppMessage) Len() int {
	n := len(m.Colors)
	if m.BluetoothVibes != nil {
		n++
	}
	return n
}

// MarshalJSON writes the message in wire order using the page field names.
func (m AppMessage) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	field := func(name string, value []byte) {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.WriteString(strconv.Quote(name))
		buf.WriteByte(':')
		buf.Write(value)
	}

	for _, s := range ColorSlots() {
		c, ok := m.Colors[s]
		if !ok {
			continue
		}
		field(s.Field(), strconv.AppendInt(nil, int64(c), 10))
	}
	if m.BluetoothVibes != nil {
		field(BluetoothVibesField, strconv.AppendBool(nil, *m.BluetoothVibes))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a message produced by MarshalJSON.
func (m *AppMessage) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	out := NewAppMessage()
	for _, s := range ColorSlots() {
		raw, ok := fields[s.Field()]
		if !ok {
			continue
		}
		var v int32
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		out.Colors[s] = Color(v)
	}
	if raw, ok := fields[BluetoothVibesField]; ok {
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return err
		}
		out.BluetoothVibes = &b
	}
	*m = out
	return nil
}
