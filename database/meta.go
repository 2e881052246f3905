package database

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/safing/tabletext/info"
)

// Meta describes a stored table.
type Meta struct {
	ID       string `msgpack:"id" json:"id"`
	Type     string `msgpack:"type,omitempty" json:"type,omitempty"`
	Created  int64  `msgpack:"created" json:"created"`
	Modified int64  `msgpack:"modified" json:"modified"`
	Format   string `msgpack:"format" json:"format"`
	Records  int    `msgpack:"records" json:"records"`
	Checksum string `msgpack:"checksum,omitempty" json:"checksum,omitempty"`
	Writer   string `msgpack:"writer,omitempty" json:"writer,omitempty"`
}

// newMeta returns the meta data for a table stored for the first time.
func newMeta() (*Meta, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	return &Meta{
		ID:       id.String(),
		Created:  now,
		Modified: now,
		Writer:   info.Release(),
	}, nil
}

// update returns a copy with a fresh modification time.
func (m *Meta) update() *Meta {
	updated := *m
	updated.Modified = time.Now().Unix()
	updated.Writer = info.Release()
	if updated.Modified < updated.Created {
		updated.Modified = updated.Created
	}
	return &updated
}

func (m *Meta) marshal() ([]byte, error) {
	return msgpack.Marshal(m)
}

func unmarshalMeta(data []byte) (*Meta, error) {
	m := &Meta{}
	if err := msgpack.Unmarshal(data, m); err != nil {
		return nil, err
	}
	return m, nil
}
