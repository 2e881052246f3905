package bbolt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safing/tabletext/database/storage"
)

func TestBBolt(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	db, err := storage.StartDatabase("test", "bbolt", dir)
	require.NoError(t, err)

	require.NoError(t, db.Put("tables/a", []byte("banana")))
	require.NoError(t, db.Put("tables/b", []byte("cherry")))
	require.NoError(t, db.Put("other", []byte("x")))
	assert.ErrorIs(t, db.Put("", []byte("x")), storage.ErrInvalidKey)

	keys, err := db.Keys("tables/")
	require.NoError(t, err)
	assert.Equal(t, []string{"tables/a", "tables/b"}, keys)

	require.NoError(t, db.Delete("tables/b"))
	ok, err := db.Exists("tables/b")
	require.NoError(t, err)
	assert.False(t, ok)
	_, err = db.Get("tables/b")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// reopen
	require.NoError(t, db.Shutdown())
	db, err = NewBBolt("test", dir)
	require.NoError(t, err)
	got, err := db.Get("tables/a")
	require.NoError(t, err)
	assert.Equal(t, []byte("banana"), got)
	require.NoError(t, db.Shutdown())
}
