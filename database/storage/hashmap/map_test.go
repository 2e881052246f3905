package hashmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safing/tabletext/database/storage"
)

func TestHashMap(t *testing.T) {
	t.Parallel()

	db, err := storage.StartDatabase("test", "hashmap", "")
	require.NoError(t, err)

	data := []byte("banana")
	require.NoError(t, db.Put("tables/a", data))
	require.NoError(t, db.Put("tables/b", []byte("cherry")))
	require.NoError(t, db.Put("other", []byte("x")))
	assert.ErrorIs(t, db.Put("", data), storage.ErrInvalidKey)

	// stored values are copies
	data[0] = 'B'
	got, err := db.Get("tables/a")
	require.NoError(t, err)
	assert.Equal(t, []byte("banana"), got)
	got[0] = 'X'
	got, err = db.Get("tables/a")
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
	require.NoError(t, db.Delete("tables/a"))

	require.NoError(t, db.Shutdown())
}
