// Package textenc resolves text encodings by name and wraps byte streams
// with transcoding readers and writers.
package textenc

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

// DefaultName is the name of the encoding used when none is set.
const DefaultName = "UTF-8"

// ErrUnknownEncoding is returned for encoding names that cannot be resolved.
var ErrUnknownEncoding = errors.New("textenc: unknown encoding")

// Settings describe how text is encoded on a byte stream.
type Settings struct {
	Name      string
	BigEndian bool
	BOM       bool
}

// Default returns the settings for plain UTF-8 without a byte order mark.
func Default() Settings {
	return Settings{Name: DefaultName}
}

// Lookup resolves the encoding for the given name. The bigEndian flag
// applies to UTF-16 and UTF-32 names that do not carry an explicit byte order.
func Lookup(name string, bigEndian, bom bool) (encoding.Encoding, error) {
	switch normalize(name) {
	case "", "UTF-8", "UTF8":
		if bom {
			return unicode.UTF8BOM, nil
		}
		return unicode.UTF8, nil
	case "UTF-16", "UTF16", "UCS-2":
		return unicode.UTF16(utf16Endianness(bigEndian), utf16BOMPolicy(bom)), nil
	case "UTF-16LE":
		return unicode.UTF16(unicode.LittleEndian, utf16BOMPolicy(bom)), nil
	case "UTF-16BE":
		return unicode.UTF16(unicode.BigEndian, utf16BOMPolicy(bom)), nil
	case "UTF-32", "UTF32", "UCS-4":
		return utf32.UTF32(utf32Endianness(bigEndian), utf32BOMPolicy(bom)), nil
	case "UTF-32LE":
		return utf32.UTF32(utf32.LittleEndian, utf32BOMPolicy(bom)), nil
	case "UTF-32BE":
		return utf32.UTF32(utf32.BigEndian, utf32BOMPolicy(bom)), nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, name)
	}
	if enc == nil {
		// Registered with IANA, but not implemented.
		return nil, fmt.Errorf("%w: %s is not supported", ErrUnknownEncoding, name)
	}
	return enc, nil
}

// Encoding resolves the encoding described by the settings.
func (s Settings) Encoding() (encoding.Encoding, error) {
	return Lookup(s.Name, s.BigEndian, s.BOM)
}

// NewWriter returns a writer that encodes UTF-8 text written to it into the
// configured encoding. The returned writer must be closed to flush pending
// bytes. Closing it does not close w.
func NewWriter(w io.Writer, s Settings) (io.WriteCloser, error) {
	enc, err := s.Encoding()
	if err != nil {
		return nil, err
	}
	return transform.NewWriter(w, enc.NewEncoder()), nil
}

// NewReader returns a reader that decodes r from the configured encoding to
// UTF-8. A leading byte order mark always takes precedence and is removed.
func NewReader(r io.Reader, s Settings) (io.Reader, error) {
	if isUTF32(s.Name) {
		// BOMOverride mistakes a UTF-32LE mark for UTF-16LE.
		enc, err := Lookup(s.Name, s.BigEndian, true)
		if err != nil {
			return nil, err
		}
		return transform.NewReader(r, enc.NewDecoder()), nil
	}

	enc, err := s.Encoding()
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder())), nil
}

func isUTF32(name string) bool {
	key := normalize(name)
	return strings.HasPrefix(key, "UTF-32") || key == "UTF32" || key == "UCS-4"
}

func utf16Endianness(bigEndian bool) unicode.Endianness {
	if bigEndian {
		return unicode.BigEndian
	}
	return unicode.LittleEndian
}

func utf16BOMPolicy(bom bool) unicode.BOMPolicy {
	if bom {
		return unicode.UseBOM
	}
	return unicode.IgnoreBOM
}

func utf32Endianness(bigEndian bool) utf32.Endianness {
	if bigEndian {
		return utf32.BigEndian
	}
	return utf32.LittleEndian
}

func utf32BOMPolicy(bom bool) utf32.BOMPolicy {
	if bom {
		return utf32.UseBOM
	}
	return utf32.IgnoreBOM
}

func normalize(name string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), "_", "-"))
}
