package fixedlength

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safing/tabletext/config"
	"github.com/safing/tabletext/record"
	"github.com/safing/tabletext/serializer"
	"github.com/safing/tabletext/table"
	"github.com/safing/tabletext/typeinfo"
)

var items = &typeinfo.TableType{
	Name: "items",
	Members: []typeinfo.Member{
		{Name: "code", Kind: typeinfo.KindString, Width: 4},
		{Name: "label", Kind: typeinfo.KindString, Width: 6},
		{Name: "qty", Kind: typeinfo.KindInteger, Width: 3},
	},
}

func newTable(t *testing.T, tt *typeinfo.TableType, opts Options) *table.Table {
	t.Helper()

	tbl, err := table.New(tt, New(opts))
	require.NoError(t, err)
	return tbl
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	tbl := newTable(t, items, Options{Header: true})
	tbl.Add(record.New("A1", "bolt", "12"))
	tbl.Add(record.New("B22", "nüt", "7"))

	var buf bytes.Buffer
	require.NoError(t, tbl.SaveWriter(&buf))
	assert.Equal(t, "codelabel qty\nA1  bolt   12\nB22 nüt     7\n", buf.String())

	parsed := newTable(t, items, Options{Header: true})
	require.NoError(t, parsed.ParseReader(&buf))
	require.Equal(t, 2, parsed.Size())
	second, err := parsed.GetAt(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"B22", "nüt", "7"}, second.Values())
}

func TestPaddingAndCRLF(t *testing.T) {
	t.Parallel()

	tbl := newTable(t, items, Options{Padding: '_', CRLF: true})
	tbl.Add(record.New("X", "y", "1"))

	var buf bytes.Buffer
	require.NoError(t, tbl.SaveWriter(&buf))
	assert.Equal(t, "X___y_______1\r\n", buf.String())

	parsed := newTable(t, items, Options{Padding: '_'})
	require.NoError(t, parsed.ParseReader(strings.NewReader(buf.String()+"\r\n")))
	require.Equal(t, 1, parsed.Size())
	r, err := parsed.GetAt(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "y", "1"}, r.Values())
}

func TestMappingFailures(t *testing.T) {
	t.Parallel()

	tbl := newTable(t, items, Options{})
	tbl.Add(record.New("TOOLONG", "x", "1"))
	err := tbl.SaveWriter(&bytes.Buffer{})
	assert.ErrorIs(t, err, table.ErrMappingFailure)
	assert.Contains(t, err.Error(), "value of code exceeds width 4")

	tbl = newTable(t, items, Options{})
	err = tbl.ParseReader(strings.NewReader("A1  bolt   12\n\nshort\n"))
	var mappingErr *serializer.MappingError
	require.True(t, errors.As(err, &mappingErr))
	assert.Equal(t, 3, mappingErr.Line)
	// nothing is added from a failed input
	assert.Equal(t, 0, tbl.Size())
	assert.Equal(t, []string{"code", "label", "qty"}, tbl.Header().Names())

	tbl = newTable(t, items, Options{})
	err = tbl.ParseReader(strings.NewReader("A1  bolt   12extra\n"))
	assert.ErrorIs(t, err, table.ErrMappingFailure)

	noWidth := newTable(t, typeinfo.New("plain", "a"), Options{})
	assert.ErrorIs(t, noWidth.SaveWriter(&bytes.Buffer{}), table.ErrMappingFailure)
	assert.ErrorIs(t, noWidth.ParseReader(strings.NewReader("x\n")), table.ErrMappingFailure)

	noType := newTable(t, nil, Options{})
	assert.ErrorIs(t, noType.SaveWriter(&bytes.Buffer{}), table.ErrMappingFailure)
}

func TestOverlongLine(t *testing.T) {
	t.Parallel()

	tbl := newTable(t, items, Options{})
	input := "A1  bolt   12\n" + strings.Repeat("x", maxLineLength+1) + "\n"
	err := tbl.ParseReader(strings.NewReader(input))
	assert.ErrorIs(t, err, table.ErrMappingFailure)

	var mappingErr *serializer.MappingError
	require.True(t, errors.As(err, &mappingErr))
	assert.Equal(t, 2, mappingErr.Line)
	assert.Equal(t, 0, tbl.Size())
}

func TestEncodedStream(t *testing.T) {
	t.Parallel()

	tbl := newTable(t, items, Options{})
	tbl.Add(record.New("Ä", "b", "1"))
	tbl.SetEncoding("windows-1252", false, false)

	var buf bytes.Buffer
	require.NoError(t, tbl.SaveStream(&buf))
	assert.Equal(t, []byte{0xC4, ' ', ' ', ' ', 'b', ' ', ' ', ' ', ' ', ' ', ' ', ' ', '1', '\n'}, buf.Bytes())

	parsed := newTable(t, items, Options{})
	parsed.SetEncoding("windows-1252", false, false)
	require.NoError(t, parsed.ParseStream(&buf))
	r, err := parsed.GetAt(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ä", "b", "1"}, r.Values())
}

func TestDefaultOptions(t *testing.T) { //nolint:paralleltest // changes global config
	require.NoError(t, config.SetConfigOption(CfgPaddingKey, "."))
	defer func() {
		_ = config.SetConfigOption(CfgPaddingKey, nil)
	}()

	assert.Equal(t, '.', DefaultOptions().Padding)
}
