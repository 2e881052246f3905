package typeinfo

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindCheck(t *testing.T) {
	t.Parallel()

	assert.NoError(t, KindInteger.Check("42"))
	assert.NoError(t, KindInteger.Check(" -7 "))
	assert.Error(t, KindInteger.Check("4.2"))
	assert.NoError(t, KindDecimal.Check("4.2"))
	assert.Error(t, KindDecimal.Check("four"))
	assert.NoError(t, KindBoolean.Check("true"))
	assert.Error(t, KindBoolean.Check("yes please"))
	assert.NoError(t, KindString.Check("anything"))
	assert.NoError(t, KindInteger.Check(""))
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	k, err := ParseKind("Decimal")
	require.NoError(t, err)
	assert.Equal(t, KindDecimal, k)

	_, err = ParseKind("date")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tt := New("people", "name", "age")
	require.NoError(t, tt.Validate())
	assert.Equal(t, []string{"name", "age"}, tt.Names())

	m, ok := tt.Member("age")
	assert.True(t, ok)
	assert.Equal(t, KindString, m.Kind)

	broken := &TableType{
		Name: "broken",
		Members: []Member{
			{Name: ""},
			{Name: "a"},
			{Name: "a"},
			{Name: "b", Kind: Kind(9)},
		},
	}
	err := broken.Validate()
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 3)
}
