package badger

import (
	"errors"

	"github.com/dgraph-io/badger"

	"github.com/safing/tabletext/database/storage"
)

// Badger database made pluggable for tabletext.
type Badger struct {
	name string
	db   *badger.DB
}

func init() {
	_ = storage.Register("badger", NewBadger)
}

// NewBadger opens/creates a badger database.
func NewBadger(name, location string) (storage.Interface, error) {
	opts := badger.DefaultOptions(location).WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Badger{
		name: name,
		db:   db,
	}, nil
}

// Get returns the value stored under key.
func (b *Badger) Get(key string) ([]byte, error) {
	var data []byte

	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		if item.IsDeletedOrExpired() {
			return storage.ErrNotFound
		}

		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Exists returns whether an entry with the given key exists.
func (b *Badger) Exists(key string) (bool, error) {
	_, err := b.Get(key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, storage.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Keys returns all keys with the given prefix in order.
func (b *Badger) Keys(prefix string) ([]string, error) {
	var keys []string

	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			item := it.Item()
			if item.IsDeletedOrExpired() {
				continue
			}
			keys = append(keys, string(item.KeyCopy(nil)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// Put stores a value in the database.
func (b *Badger) Put(key string, data []byte) error {
	if err := storage.ValidKey(key); err != nil {
		return err
	}

	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// Delete deletes a value from the database.
func (b *Badger) Delete(key string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(key))
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return nil
	})
}

// Maintain runs a light maintenance operation on the database.
func (b *Badger) Maintain() error {
	err := b.db.RunValueLogGC(0.7)
	if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
		return err
	}
	return nil
}

// Shutdown shuts down the database.
func (b *Badger) Shutdown() error {
	return b.db.Close()
}
