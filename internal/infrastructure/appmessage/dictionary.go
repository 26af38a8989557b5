// Package appmessage implements the dictionary encoding used for
// phone-to-watch AppMessages.
//
// Layout (little endian):
//
//	uint8  tuple count
//	per tuple:
//	  uint32 key
//	  uint8  type
//	  uint16 value length
//	  value bytes
package appmessage

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/briwestervelt/formal/internal/domain/entity"
)

// TupleType is the value type tag of one tuple.
type TupleType uint8

const (
	TupleByteArray TupleType = 0
	TupleCString   TupleType = 1
	TupleUint      TupleType = 2
	TupleInt       TupleType = 3
)

const (
	dictHeaderSize  = 1
	tupleHeaderSize = 7
	maxTuples       = 255
)

// Tuple is one key/value pair of a dictionary.
type Tuple struct {
	Key   entity.MessageKey
	Type  TupleType
	Value []byte
}

// Int returns the value of an integer tuple, sign-extended for TupleInt.
func (t Tuple) Int() (int32, error) {
	switch t.Type {
	case TupleInt:
		switch len(t.Value) {
		case 1:
			return int32(int8(t.Value[0])), nil
		case 2:
			return int32(int16(binary.LittleEndian.Uint16(t.Value))), nil
		case 4:
			return int32(binary.LittleEndian.Uint32(t.Value)), nil
		}
	case TupleUint:
		switch len(t.Value) {
		case 1:
			return int32(t.Value[0]), nil
		case 2:
			return int32(binary.LittleEndian.Uint16(t.Value)), nil
		case 4:
			return int32(binary.LittleEndian.Uint32(t.Value)), nil
		}
	default:
		return 0, fmt.Errorf("%w: key %d is not an integer tuple", entity.ErrMalformedDictionary, t.Key)
	}
	return 0, fmt.Errorf("%w: key %d has integer width %d", entity.ErrMalformedDictionary, t.Key, len(t.Value))
}

// Int32Tuple builds a 4-byte signed tuple.
func Int32Tuple(key entity.MessageKey, v int32) Tuple {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(v))
	return Tuple{Key: key, Type: TupleInt, Value: b}
}

// Int8Tuple builds a 1-byte signed tuple.
func Int8Tuple(key entity.MessageKey, v int8) Tuple {
	return Tuple{Key: key, Type: TupleInt, Value: []byte{byte(v)}}
}

// Size returns the encoded size of tuples.
func Size(tuples []Tuple) int {
	n := dictHeaderSize
	for _, t := range tuples {
		n += tupleHeaderSize + len(t.Value)
	}
	return n
}

// Encode serializes tuples.
func Encode(tuples []Tuple) ([]byte, error) {
	if len(tuples) > maxTuples {
		return nil, fmt.Errorf("too many tuples: %d", len(tuples))
	}

	buf := make([]byte, 0, Size(tuples))
	buf = append(buf, byte(len(tuples)))
	for _, t := range tuples {
		if len(t.Value) > 0xFFFF {
			return nil, fmt.Errorf("tuple %d too large: %d bytes", t.Key, len(t.Value))
		}
		buf = binary.LittleEndian.AppendUint32(buf, uint32(t.Key))
		buf = append(buf, byte(t.Type))
		buf = binary.LittleEndian.AppendUint16(buf, uint16(len(t.Value)))
		buf = append(buf, t.Value...)
	}
	return buf, nil
}

// Decode parses an encoded dictionary.
func Decode(data []byte) ([]Tuple, error) {
	if len(data) < dictHeaderSize {
		return nil, fmt.Errorf("%w: empty buffer", entity.ErrMalformedDictionary)
	}

	count := int(data[0])
	tuples := make([]Tuple, 0, count)
	off := dictHeaderSize
	for i := 0; i < count; i++ {
		if len(data)-off < tupleHeaderSize {
			return nil, fmt.Errorf("%w: truncated header of tuple %d", entity.ErrMalformedDictionary, i)
		}
		key := binary.LittleEndian.Uint32(data[off:])
		typ := TupleType(data[off+4])
		length := int(binary.LittleEndian.Uint16(data[off+5:]))
		off += tupleHeaderSize

		if len(data)-off < length {
			return nil, fmt.Errorf("%w: truncated value of tuple %d", entity.ErrMalformedDictionary, i)
		}
		value := make([]byte, length)
		copy(value, data[off:off+length])
		off += length

		tuples = append(tuples, Tuple{Key: entity.MessageKey(key), Type: typ, Value: value})
	}
	if off != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", entity.ErrMalformedDictionary, len(data)-off)
	}
	return tuples, nil
}

// FromMessage converts an outbound message into tuples ordered by key.
// Colors are sent as int32, bluetoothVibes as an int8 of 1 or 0.
func FromMessage(msg entity.AppMessage) []Tuple {
	tuples := make([]Tuple, 0, msg.Len())
	for _, slot := range entity.ColorSlots() {
		if c, ok := msg.Color(slot); ok {
			tuples = append(tuples, Int32Tuple(slot.Key(), int32(c)))
		}
	}
	if msg.BluetoothVibes != nil {
		var v int8
		if *msg.BluetoothVibes {
			v = 1
		}
		tuples = append(tuples, Int8Tuple(entity.KeyBluetoothVibes, v))
	}
	return tuples
}

// ToSettingsUpdate reads integer tuples into a settings update. Unknown keys
// are ignored, as the watch does.
func ToSettingsUpdate(tuples []Tuple) (entity.SettingsUpdate, error) {
	update := make(entity.SettingsUpdate, len(tuples))
	for _, t := range tuples {
		if t.Key > entity.KeyBluetoothVibes {
			continue
		}
		v, err := t.Int()
		if err != nil {
			return nil, err
		}
		update[t.Key] = v
	}
	return update, nil
}

// EncodeMessage is FromMessage followed by Encode.
func EncodeMessage(msg entity.AppMessage) ([]byte, error) {
	return Encode(FromMessage(msg))
}

// SortedKeys returns the keys of u in ascending order.
func SortedKeys(u entity.SettingsUpdate) []entity.MessageKey {
	keys := make([]entity.MessageKey, 0, len(u))
	for k := range u {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
