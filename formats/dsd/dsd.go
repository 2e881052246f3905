package dsd

// dynamic structured data
// check here for some benchmarks: https://github.com/alecthomas/go_serialization_benchmarks

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/ghodss/yaml"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/safing/tabletext/formats/varint"
)

// Load loads an dsd structured data blob into the given interface.
func Load(data []byte, t interface{}) (format SerializationFormat, err error) {
	format, read, err := loadFormat(data)
	if err != nil {
		return 0, err
	}

	return format, LoadAsFormat(data[read:], format, t)
}

// LoadAsFormat loads a data blob into the interface using the specified format.
func LoadAsFormat(data []byte, format SerializationFormat, t interface{}) (err error) {
	switch format {
	case RAW:
		return ErrIsRaw
	case JSON:
		err = json.Unmarshal(data, t)
		if err != nil {
			return fmt.Errorf("dsd: failed to unpack json: %w, data: %s", err, truncate(data))
		}
		return nil
	case YAML:
		err = yaml.Unmarshal(data, t)
		if err != nil {
			return fmt.Errorf("dsd: failed to unpack yaml: %w", err)
		}
		return nil
	case CBOR:
		err = cbor.Unmarshal(data, t)
		if err != nil {
			return fmt.Errorf("dsd: failed to unpack cbor: %w", err)
		}
		return nil
	case MsgPack:
		err = msgpack.Unmarshal(data, t)
		if err != nil {
			return fmt.Errorf("dsd: failed to unpack msgpack: %w", err)
		}
		return nil
	default:
		return ErrIncompatibleFormat
	}
}

func loadFormat(data []byte) (format SerializationFormat, read int, err error) {
	format8, read, err := varint.Unpack8(data)
	if err != nil {
		return 0, 0, err
	}
	format = SerializationFormat(format8)

	if len(data) <= read {
		return 0, 0, ErrNoMoreSpace
	}

	return format, read, nil
}

// Dump stores the interface as a dsd formatted data structure.
func Dump(t interface{}, format SerializationFormat) ([]byte, error) {
	return dumpWithIdentifier(t, format, true)
}

// DumpWithoutIdentifier stores the interface as a data structure, without format identifier.
func DumpWithoutIdentifier(t interface{}, format SerializationFormat) ([]byte, error) {
	return dumpWithIdentifier(t, format, false)
}

func dumpWithIdentifier(t interface{}, format SerializationFormat, writeIdentifier bool) ([]byte, error) {
	format, ok := format.ValidateSerializationFormat()
	if !ok {
		return nil, ErrIncompatibleFormat
	}

	var data []byte
	var err error
	switch format {
	case RAW:
		var ok bool
		data, ok = t.([]byte)
		if !ok {
			return nil, ErrIncompatibleFormat
		}
	case JSON:
		data, err = json.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("dsd: failed to pack json: %w", err)
		}
	case YAML:
		data, err = yaml.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("dsd: failed to pack yaml: %w", err)
		}
	case CBOR:
		data, err = cbor.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("dsd: failed to pack cbor: %w", err)
		}
	case MsgPack:
		data, err = msgpack.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("dsd: failed to pack msgpack: %w", err)
		}
	default:
		return nil, ErrIncompatibleFormat
	}

	if writeIdentifier {
		data = append(varint.Pack8(uint8(format)), data...)
	}
	return data, nil
}

func truncate(data []byte) []byte {
	if len(data) > 32 {
		return data[:32]
	}
	return data
}
