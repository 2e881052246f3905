package textenc

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, s Settings, text string) []byte {
	t.Helper()

	buf := &bytes.Buffer{}
	w, err := NewWriter(buf, s)
	require.NoError(t, err)
	_, err = io.WriteString(w, text)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func decode(t *testing.T, s Settings, data []byte) string {
	t.Helper()

	r, err := NewReader(bytes.NewReader(data), s)
	require.NoError(t, err)
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestUTF8(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []byte("a;b"), encode(t, Default(), "a;b"))
	assert.Equal(t, []byte("\xEF\xBB\xBFa"), encode(t, Settings{Name: "utf-8", BOM: true}, "a"))

	// A BOM is stripped even if not requested.
	assert.Equal(t, "a", decode(t, Default(), []byte("\xEF\xBB\xBFa")))
}

func TestUTF16(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []byte{'a', 0x00}, encode(t, Settings{Name: "UTF-16"}, "a"))
	assert.Equal(t, []byte{0x00, 'a'}, encode(t, Settings{Name: "UTF-16", BigEndian: true}, "a"))
	assert.Equal(t, []byte{0xFE, 0xFF, 0x00, 'a'}, encode(t, Settings{Name: "UTF-16", BigEndian: true, BOM: true}, "a"))
	assert.Equal(t, []byte{0x00, 'a'}, encode(t, Settings{Name: "utf_16be"}, "a"))

	// The BOM overrides the configured byte order.
	assert.Equal(t, "a", decode(t, Settings{Name: "UTF-16"}, []byte{0xFE, 0xFF, 0x00, 'a'}))
	assert.Equal(t, "ab", decode(t, Settings{Name: "UTF-16LE"}, []byte{'a', 0x00, 'b', 0x00}))
}

func TestUTF32(t *testing.T) {
	t.Parallel()

	data := encode(t, Settings{Name: "UTF-32", BigEndian: true}, "a")
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 'a'}, data)
	assert.Equal(t, "a", decode(t, Settings{Name: "UTF-32BE"}, data))
}

func TestLegacyCharsets(t *testing.T) {
	t.Parallel()

	data := encode(t, Settings{Name: "ISO-8859-1"}, "café")
	assert.Equal(t, []byte{'c', 'a', 'f', 0xE9}, data)
	assert.Equal(t, "café", decode(t, Settings{Name: "ISO-8859-1"}, data))

	data = encode(t, Settings{Name: "windows-1252"}, "€")
	assert.Equal(t, []byte{0x80}, data)
}

func TestUnknownEncoding(t *testing.T) {
	t.Parallel()

	_, err := Lookup("no-such-charset", false, false)
	assert.ErrorIs(t, err, ErrUnknownEncoding)

	_, err = NewReader(strings.NewReader(""), Settings{Name: "klingon"})
	assert.ErrorIs(t, err, ErrUnknownEncoding)
}

func TestUTF32LittleEndianBOM(t *testing.T) {
	t.Parallel()

	data := encode(t, Settings{Name: "UTF-32LE", BOM: true}, "a")
	assert.Equal(t, []byte{0xFF, 0xFE, 0x00, 0x00, 'a', 0x00, 0x00, 0x00}, data)
	assert.Equal(t, "a", decode(t, Settings{Name: "UTF-32"}, data))
}
