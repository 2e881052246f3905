package badger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safing/tabletext/database/storage"
)

func TestBadger(t *testing.T) {
	t.Parallel()

	db, err := NewBadger("test", t.TempDir())
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, db.Shutdown())
	}()

	require.NoError(t, db.Put("tables/a", []byte("banana")))
	require.NoError(t, db.Put("tables/b", []byte("cherry")))
	require.NoError(t, db.Put("zzz", []byte("x")))

	got, err := db.Get("tables/a")
	require.NoError(t, err)
	assert.Equal(t, []byte("banana"), got)

	ok, err := db.Exists("tables/b")
	require.NoError(t, err)
	assert.True(t, ok)

	keys, err := db.Keys("tables/")
	require.NoError(t, err)
	assert.Equal(t, []string{"tables/a", "tables/b"}, keys)

	require.NoError(t, db.Delete("tables/a"))
	_, err = db.Get("tables/a")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	ok, err = db.Exists("tables/a")
	require.NoError(t, err)
	assert.False(t, ok)

	maintainer, isMaintainer := db.(storage.Maintainer)
	require.True(t, isMaintainer)
	assert.NoError(t, maintainer.Maintain())
}
