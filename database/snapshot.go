package database

import (
	"fmt"

	"github.com/safing/tabletext/container"
	"github.com/safing/tabletext/crypto/hash"
)

const (
	snapshotVersion   = 1
	checksumAlgorithm = hash.BLAKE2B_256
)

// snapshot is a stored table as held in the cache.
type snapshot struct {
	meta     *Meta
	document []byte
}

func (s *snapshot) marshal() ([]byte, error) {
	metaData, err := s.meta.marshal()
	if err != nil {
		return nil, fmt.Errorf("failed to pack meta: %w", err)
	}

	c := container.New()
	c.AppendNumber(snapshotVersion)
	c.AppendAsBlock(metaData)
	c.Append(s.document)
	return c.CompileData(), nil
}

func unmarshalSnapshot(data []byte) (*snapshot, error) {
	c := container.New(data)

	version, err := c.GetNextN8()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedSnapshot, err)
	}
	if version != snapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSnapshot, version)
	}

	metaData, err := c.GetNextBlock()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedSnapshot, err)
	}
	meta, err := unmarshalMeta(metaData)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to unpack meta: %s", ErrMalformedSnapshot, err)
	}

	document := c.CompileData()
	if len(document) == 0 {
		return nil, fmt.Errorf("%w: missing document", ErrMalformedSnapshot)
	}

	// Snapshots without a checksum are accepted as is.
	if meta.Checksum != "" {
		sum, err := hash.FromSafe64(meta.Checksum)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid checksum: %s", ErrMalformedSnapshot, err)
		}
		if !sum.Matches(document) {
			return nil, fmt.Errorf("%w: checksum mismatch", ErrMalformedSnapshot)
		}
	}

	return &snapshot{
		meta:     meta,
		document: document,
	}, nil
}
