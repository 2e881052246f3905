package dsd

import (
	"bytes"
	"compress/gzip"
	"io"

	"github.com/safing/tabletext/formats/varint"
)

// DumpAndCompress dumps t in the given format and compresses the result.
// The output starts with the compression identifier.
func DumpAndCompress(t interface{}, format SerializationFormat, compression CompressionFormat) ([]byte, error) {
	compression, ok := compression.ValidateCompressionFormat()
	if !ok || compression != GZIP {
		return nil, ErrIncompatibleFormat
	}

	data, err := Dump(t, format)
	if err != nil {
		return nil, err
	}

	buf := bytes.NewBuffer(varint.Pack8(uint8(compression)))
	zw, err := gzip.NewWriterLevel(buf, gzip.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	// Close writes the gzip footer.
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecompressAndLoad decompresses data, which must not carry the compression
// identifier, and loads the result into t.
func DecompressAndLoad(data []byte, compression CompressionFormat, t interface{}) (format SerializationFormat, err error) {
	if compression != GZIP {
		return 0, ErrIncompatibleFormat
	}

	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	plain, err := io.ReadAll(zr)
	if err != nil {
		return 0, err
	}
	if err := zr.Close(); err != nil {
		return 0, err
	}

	return Load(plain, t)
}

// LoadCompressed loads data as written by DumpAndCompress or Dump.
func LoadCompressed(data []byte, t interface{}) (format SerializationFormat, err error) {
	compression, read, err := varint.Unpack8(data)
	if err != nil {
		return 0, err
	}
	if CompressionFormat(compression) == GZIP {
		return DecompressAndLoad(data[read:], GZIP, t)
	}
	return Load(data, t)
}
