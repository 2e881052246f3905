package hashmap

import (
	"sync"

	"github.com/armon/go-radix"

	"github.com/safing/tabletext/database/storage"
)

// HashMap storage.
type HashMap struct {
	name   string
	db     *radix.Tree
	dbLock sync.RWMutex
}

func init() {
	_ = storage.Register("hashmap", NewHashMap)
}

// NewHashMap creates a hashmap database.
func NewHashMap(name, location string) (storage.Interface, error) {
	return &HashMap{
		name: name,
		db:   radix.New(),
	}, nil
}

// Get returns the value stored under key.
func (hm *HashMap) Get(key string) ([]byte, error) {
	hm.dbLock.RLock()
	defer hm.dbLock.RUnlock()

	v, ok := hm.db.Get(key)
	if !ok {
		return nil, storage.ErrNotFound
	}
	return duplicate(v.([]byte)), nil
}

// Exists returns whether an entry with the given key exists.
func (hm *HashMap) Exists(key string) (bool, error) {
	hm.dbLock.RLock()
	defer hm.dbLock.RUnlock()

	_, ok := hm.db.Get(key)
	return ok, nil
}

// Keys returns all keys with the given prefix in order.
func (hm *HashMap) Keys(prefix string) ([]string, error) {
	hm.dbLock.RLock()
	defer hm.dbLock.RUnlock()

	var keys []string
	hm.db.WalkPrefix(prefix, func(key string, _ interface{}) bool {
		keys = append(keys, key)
		return false
	})
	return keys, nil
}

// Put stores a value in the database.
func (hm *HashMap) Put(key string, data []byte) error {
	if err := storage.ValidKey(key); err != nil {
		return err
	}

	hm.dbLock.Lock()
	defer hm.dbLock.Unlock()

	hm.db.Insert(key, duplicate(data))
	return nil
}

// Delete deletes a value from the database.
func (hm *HashMap) Delete(key string) error {
	hm.dbLock.Lock()
	defer hm.dbLock.Unlock()

	hm.db.Delete(key)
	return nil
}

// Shutdown shuts down the database.
func (hm *HashMap) Shutdown() error {
	return nil
}

func duplicate(data []byte) []byte {
	return append(make([]byte, 0, len(data)), data...)
}
