package bbolt

import (
	"bytes"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/safing/tabletext/database/storage"
)

var bucketName = []byte{0}

// BBolt database made pluggable for tabletext.
type BBolt struct {
	name string
	db   *bbolt.DB
}

func init() {
	_ = storage.Register("bbolt", NewBBolt)
}

// NewBBolt opens/creates a bbolt database.
func NewBBolt(name, location string) (storage.Interface, error) {
	db, err := bbolt.Open(filepath.Join(location, "db.bbolt"), 0o600, nil)
	if err != nil {
		return nil, err
	}

	// Create bucket
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &BBolt{
		name: name,
		db:   db,
	}, nil
}

// Get returns the value stored under key.
func (b *BBolt) Get(key string) ([]byte, error) {
	var data []byte

	err := b.db.View(func(tx *bbolt.Tx) error {
		// get value from db
		value := tx.Bucket(bucketName).Get([]byte(key))
		if value == nil {
			return storage.ErrNotFound
		}

		// copy data, value is only valid during the transaction
		data = make([]byte, len(value))
		copy(data, value)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Exists returns whether an entry with the given key exists.
func (b *BBolt) Exists(key string) (bool, error) {
	var exists bool
	err := b.db.View(func(tx *bbolt.Tx) error {
		exists = tx.Bucket(bucketName).Get([]byte(key)) != nil
		return nil
	})
	return exists, err
}

// Keys returns all keys with the given prefix in order.
func (b *BBolt) Keys(prefix string) ([]string, error) {
	var keys []string

	err := b.db.View(func(tx *bbolt.Tx) error {
		p := []byte(prefix)
		c := tx.Bucket(bucketName).Cursor()
		for k, _ := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, _ = c.Next() {
			keys = append(keys, string(k))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// Put stores a value in the database.
func (b *BBolt) Put(key string, data []byte) error {
	if err := storage.ValidKey(key); err != nil {
		return err
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), data)
	})
}

// Delete deletes a value from the database.
func (b *BBolt) Delete(key string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(key))
	})
}

// Shutdown shuts down the database.
func (b *BBolt) Shutdown() error {
	return b.db.Close()
}
