package record

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrUnknownField is returned when a column does not exist.
var ErrUnknownField = errors.New("record: field does not exist")

// InvalidValueTypeError describes an error when trying to set a value
// of an invalid type to a field.
type InvalidValueTypeError struct {
	FieldName string
	FieldKind string
	ValueKind string
}

func (ivte *InvalidValueTypeError) Error() string {
	return fmt.Sprintf("tried to set field %s (%s) to a %s value", ivte.FieldName, ivte.FieldKind, ivte.ValueKind)
}

// JSONAccessor gives typed access to the fields of a record through its JSON rendering.
type JSONAccessor struct {
	json   string
	record *Record
	header *Header
}

// Set sets the value identified by key and writes it back to the record.
func (ja *JSONAccessor) Set(key string, value interface{}) error {
	index := ja.header.Index(key)
	if index < 0 {
		return ErrUnknownField
	}

	path := escapeKey(key)
	result := gjson.Get(ja.json, path)
	if result.Exists() {
		var ok bool
		switch value.(type) {
		case string:
			ok = result.Type == gjson.String
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
			ok = result.Type == gjson.Number
		case bool:
			ok = result.Type == gjson.True || result.Type == gjson.False
		default:
			ok = false
		}
		if !ok {
			return &InvalidValueTypeError{
				FieldName: key,
				FieldKind: result.Type.String(),
				ValueKind: reflect.ValueOf(value).Kind().String(),
			}
		}
	}

	newJSON, err := sjson.Set(ja.json, path, value)
	if err != nil {
		return err
	}
	ja.json = newJSON
	ja.record.Set(index, formatValue(value))
	return nil
}

// GetString returns the string found by the given key and whether it could be successfully extracted.
func (ja *JSONAccessor) GetString(key string) (value string, ok bool) {
	result := gjson.Get(ja.json, escapeKey(key))
	if !result.Exists() || result.Type != gjson.String {
		return "", false
	}
	return result.String(), true
}

// GetInt returns the int found by the given key and whether it could be successfully extracted.
func (ja *JSONAccessor) GetInt(key string) (value int64, ok bool) {
	result := gjson.Get(ja.json, escapeKey(key))
	if !result.Exists() || result.Type != gjson.Number {
		return 0, false
	}
	return result.Int(), true
}

// GetFloat returns the float found by the given key and whether it could be successfully extracted.
func (ja *JSONAccessor) GetFloat(key string) (value float64, ok bool) {
	result := gjson.Get(ja.json, escapeKey(key))
	if !result.Exists() || result.Type != gjson.Number {
		return 0, false
	}
	return result.Float(), true
}

// GetBool returns the bool found by the given key and whether it could be successfully extracted.
func (ja *JSONAccessor) GetBool(key string) (value bool, ok bool) {
	result := gjson.Get(ja.json, escapeKey(key))
	switch {
	case !result.Exists():
		return false, false
	case result.Type == gjson.True:
		return true, true
	case result.Type == gjson.False:
		return false, true
	default:
		return false, false
	}
}

// Exists returns the whether the given key exists.
func (ja *JSONAccessor) Exists(key string) bool {
	return gjson.Get(ja.json, escapeKey(key)).Exists()
}

// JSON returns the current JSON rendering.
func (ja *JSONAccessor) JSON() string {
	return ja.json
}

func formatValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
