package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safing/tabletext/typeinfo"
)

func TestHeader(t *testing.T) {
	t.Parallel()

	h := NewHeader("a", "b")
	h.Add("c")
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 2, h.Index("c"))
	assert.Equal(t, -1, h.Index("d"))

	name, ok := h.Name(1)
	assert.True(t, ok)
	assert.Equal(t, "b", name)
	_, ok = h.Name(3)
	assert.False(t, ok)

	names := h.Names()
	names[0] = "changed"
	assert.Equal(t, []string{"a", "b", "c"}, h.Names(), "Names must return a copy")

	fromType := NewHeaderFromType(typeinfo.New("t", "x", "y"))
	assert.Equal(t, []string{"x", "y"}, fromType.Names())
	assert.Equal(t, 0, NewHeaderFromType(nil).Len())
}

func TestRecord(t *testing.T) {
	t.Parallel()

	fields := []string{"1", "2"}
	r := New(fields...)
	fields[0] = "changed"
	v, ok := r.Get(0)
	assert.True(t, ok)
	assert.Equal(t, "1", v, "New must copy its input")

	r.Set(4, "5")
	assert.Equal(t, []string{"1", "2", "", "", "5"}, r.Values())
	r.Set(-1, "ignored")
	assert.Equal(t, 5, r.Len())

	_, ok = r.Get(5)
	assert.False(t, ok)
}

func TestJSON(t *testing.T) {
	t.Parallel()

	tt := &typeinfo.TableType{
		Name: "people",
		Members: []typeinfo.Member{
			{Name: "name", Kind: typeinfo.KindString},
			{Name: "age", Kind: typeinfo.KindInteger},
			{Name: "score.avg", Kind: typeinfo.KindDecimal},
			{Name: "active", Kind: typeinfo.KindBoolean},
		},
	}
	h := NewHeaderFromType(tt)

	json, err := New("Ada", "36", "1.5", "true").JSON(h, tt)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ada","age":36,"score.avg":1.5,"active":true}`, json)

	// Without type info everything is a string, unparsable values stay strings.
	json, err = New("Ada", "n/a").JSON(h, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ada","age":"n/a"}`, json)
}

func TestAccessor(t *testing.T) {
	t.Parallel()

	tt := &typeinfo.TableType{
		Name: "people",
		Members: []typeinfo.Member{
			{Name: "name"},
			{Name: "age", Kind: typeinfo.KindInteger},
			{Name: "ratio", Kind: typeinfo.KindDecimal},
			{Name: "active", Kind: typeinfo.KindBoolean},
		},
	}
	h := NewHeaderFromType(tt)
	r := New("Ada", "36", "0.25", "false")

	acc, err := r.Accessor(h, tt)
	require.NoError(t, err)

	name, ok := acc.GetString("name")
	assert.True(t, ok)
	assert.Equal(t, "Ada", name)

	age, ok := acc.GetInt("age")
	assert.True(t, ok)
	assert.Equal(t, int64(36), age)

	ratio, ok := acc.GetFloat("ratio")
	assert.True(t, ok)
	assert.Equal(t, 0.25, ratio)

	active, ok := acc.GetBool("active")
	assert.True(t, ok)
	assert.False(t, active)

	_, ok = acc.GetInt("name")
	assert.False(t, ok)
	assert.False(t, acc.Exists("missing"))

	require.NoError(t, acc.Set("age", 37))
	require.NoError(t, acc.Set("active", true))
	require.NoError(t, acc.Set("ratio", 0.5))
	assert.Equal(t, []string{"Ada", "37", "0.5", "true"}, r.Values())

	var typeErr *InvalidValueTypeError
	assert.ErrorAs(t, acc.Set("age", "old"), &typeErr)
	assert.ErrorIs(t, acc.Set("missing", 1), ErrUnknownField)
}
