package entity

import "time"

// WatchfaceSettings is the configuration stored on the watch.
type WatchfaceSettings struct {
	Colors         map[ColorSlot]Color
	BluetoothVibes bool
	UpdatedAt      time.Time
}

// DefaultWatchfaceSettings returns the values used before any configuration
// has been received.
func DefaultWatchfaceSettings() *WatchfaceSettings {
	return &WatchfaceSettings{
		Colors: map[ColorSlot]Color{
			SlotBackground: ColorBlack,
			SlotTick:       ColorLightGray,
			SlotHour:       ColorWhite,
			SlotMinute:     ColorWhite,
			SlotDot:        ColorWhite,
			SlotDate:       ColorWhite,
		},
		BluetoothVibes: true,
	}
}

// Color returns the stored color for s, falling back to the default.
func (w *WatchfaceSettings) Color(s ColorSlot) Color {
	if c, ok := w.Colors[s]; ok {
		return c
	}
	return DefaultWatchfaceSettings().Colors[s]
}

// SettingsUpdate is a set of persisted integer values keyed by message key,
// as received in one inbox message.
type SettingsUpdate map[MessageKey]int32

// Apply overwrites only the keys present in u and reports which keys changed.
func (w *WatchfaceSettings) Apply(u SettingsUpdate) []MessageKey {
	if w.Colors == nil {
		w.Colors = make(map[ColorSlot]Color, len(slotFields))
	}
	var changed []MessageKey
	for k, v := range u {
		if slot, ok := SlotForKey(k); ok {
			if w.Colors[slot] != Color(v) {
				changed = append(changed, k)
			}
			w.Colors[slot] = Color(v)
			continue
		}
		if k == KeyBluetoothVibes {
			b := v != 0
			if w.BluetoothVibes != b {
				changed = append(changed, k)
			}
			w.BluetoothVibes = b
		}
	}
	w.UpdatedAt = time.Now()
	return changed
}

// Values flattens the settings into persisted integers.
func (w *WatchfaceSettings) Values() SettingsUpdate {
	out := make(SettingsUpdate, len(slotFields)+1)
	for _, s := range ColorSlots() {
		out[s.Key()] = int32(w.Color(s))
	}
	if w.BluetoothVibes {
		out[KeyBluetoothVibes] = 1
	} else {
		out[KeyBluetoothVibes] = 0
	}
	return out
}
