package sinkhole

import (
	"github.com/safing/tabletext/database/storage"
)

// Sinkhole is a dummy storage that discards all writes.
type Sinkhole struct {
	name string
}

func init() {
	_ = storage.Register("sinkhole", NewSinkhole)
}

// NewSinkhole creates a dummy database.
func NewSinkhole(name, location string) (storage.Interface, error) {
	return &Sinkhole{
		name: name,
	}, nil
}

// Get returns ErrNotFound.
func (s *Sinkhole) Get(key string) ([]byte, error) {
	return nil, storage.ErrNotFound
}

// Exists returns whether an entry with the given key exists.
func (s *Sinkhole) Exists(key string) (bool, error) {
	return false, nil
}

// Keys returns no keys.
func (s *Sinkhole) Keys(prefix string) ([]string, error) {
	return nil, nil
}

// Put discards the value.
func (s *Sinkhole) Put(key string, data []byte) error {
	return storage.ValidKey(key)
}

// Delete does nothing.
func (s *Sinkhole) Delete(key string) error {
	return nil
}

// Shutdown shuts down the database.
func (s *Sinkhole) Shutdown() error {
	return nil
}
