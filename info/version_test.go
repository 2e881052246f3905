package info

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) { //nolint:paralleltest // sets package state
	assert.ErrorIs(t, Check(), ErrNotSet)

	Set("tabletext", "", "MIT")
	assert.NoError(t, Check())
	assert.Nil(t, SemVersion())
	assert.False(t, Newer("9.9.9"))

	Set("tabletext", "1.2.3", "MIT")
	assert.NoError(t, Check())
	require.NotNil(t, SemVersion())
	assert.Equal(t, "1.2.3", SemVersion().String())
	assert.Equal(t, "1.2.3", Release())

	assert.True(t, Newer("1.10.0"))
	assert.True(t, Newer("v2.0.0"))
	assert.False(t, Newer("1.2.3"))
	assert.False(t, Newer("1.2.0"))
	assert.False(t, Newer("not a version"))
	assert.False(t, Newer(""))

	assert.True(t, strings.HasPrefix(Version(), "1.2.3"))
	full := FullVersion()
	assert.True(t, strings.HasPrefix(full, "tabletext 1.2.3"))
	assert.Contains(t, full, "Licensed under the MIT license.")

	Set("tabletext", "one.two", "MIT")
	assert.ErrorIs(t, Check(), ErrInvalidVersion)
	Set("tabletext", "1.2.3", "MIT")
}
