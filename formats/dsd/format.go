package dsd

import "errors"

// Errors.
var (
	ErrIncompatibleFormat = errors.New("dsd: format is incompatible with operation")
	ErrIsRaw              = errors.New("dsd: given data is in raw format")
	ErrNoMoreSpace        = errors.New("dsd: no more space left after reading dsd type")
	ErrUnknownFormat      = errors.New("dsd: format is unknown")
)

// SerializationFormat is the identifier of a serialization format.
type SerializationFormat uint8

// Serialization formats.
const (
	AUTO    SerializationFormat = 0
	RAW     SerializationFormat = 1
	CBOR    SerializationFormat = 67 // C
	JSON    SerializationFormat = 74 // J
	MsgPack SerializationFormat = 77 // M
	YAML    SerializationFormat = 89 // Y
)

// CompressionFormat is the identifier of a compression format.
type CompressionFormat uint8

// Compression formats.
const (
	AutoCompress CompressionFormat = 0
	GZIP         CompressionFormat = 90 // Z
)

// Defaults used for the AUTO formats.
var (
	DefaultSerializationFormat = JSON
	DefaultCompressionFormat   = GZIP
)

// ValidateSerializationFormat validates if the format is for serialization,
// and returns the validated format as well as the result of the validation.
// If called on the AUTO format, it returns the default serialization format.
func (format SerializationFormat) ValidateSerializationFormat() (validated SerializationFormat, ok bool) {
	switch format {
	case AUTO:
		return DefaultSerializationFormat, true
	case RAW, CBOR, JSON, MsgPack, YAML:
		return format, true
	default:
		return 0, false
	}
}

// ValidateCompressionFormat validates if the format is for compression,
// and returns the validated format as well as the result of the validation.
// If called on the AUTO format, it returns the default compression format.
func (format CompressionFormat) ValidateCompressionFormat() (validated CompressionFormat, ok bool) {
	switch format {
	case AutoCompress:
		return DefaultCompressionFormat, true
	case GZIP:
		return format, true
	default:
		return 0, false
	}
}

// IsText returns whether the format produces human readable text.
func (format SerializationFormat) IsText() bool {
	switch format {
	case JSON, YAML:
		return true
	default:
		return false
	}
}

// String returns the lower case name of the format.
func (format SerializationFormat) String() string {
	switch format {
	case AUTO:
		return "auto"
	case RAW:
		return "raw"
	case CBOR:
		return "cbor"
	case JSON:
		return "json"
	case MsgPack:
		return "msgpack"
	case YAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// ParseSerializationFormat returns the format with the given name, as returned by String.
func ParseSerializationFormat(name string) (SerializationFormat, error) {
	for _, format := range []SerializationFormat{AUTO, RAW, CBOR, JSON, MsgPack, YAML} {
		if format.String() == name {
			return format, nil
		}
	}
	return 0, ErrUnknownFormat
}
