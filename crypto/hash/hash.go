// Package hash provides self-describing hash sums.
package hash

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/safing/tabletext/formats/varint"
)

// Errors.
var (
	ErrUnknownAlgorithm = errors.New("hash: unknown algorithm")
	ErrInvalidLength    = errors.New("hash: sum has invalid length")
)

// Hash is a hash sum together with the algorithm that produced it.
type Hash struct {
	Algorithm Algorithm
	Sum       []byte
}

// Sum returns the hash of data with the given algorithm.
func Sum(alg Algorithm, data []byte) (*Hash, error) {
	h := alg.New()
	if h == nil {
		return nil, ErrUnknownAlgorithm
	}
	_, _ = h.Write(data)
	return &Hash{
		Algorithm: alg,
		Sum:       h.Sum(nil),
	}, nil
}

// FromBytes parses a hash as returned by Bytes.
func FromBytes(data []byte) (*Hash, error) {
	alg, read, err := varint.Unpack8(data)
	if err != nil {
		return nil, fmt.Errorf("hash: failed to parse: %w", err)
	}

	h := &Hash{
		Algorithm: Algorithm(alg),
		Sum:       data[read:],
	}
	if !h.Algorithm.Valid() {
		return nil, ErrUnknownAlgorithm
	}
	if len(h.Sum) != h.Algorithm.Size() {
		return nil, ErrInvalidLength
	}
	return h, nil
}

// Bytes returns the algorithm identifier followed by the sum.
func (h *Hash) Bytes() []byte {
	return append(varint.Pack8(uint8(h.Algorithm)), h.Sum...)
}

// FromSafe64 parses a hash as returned by Safe64.
func FromSafe64(s string) (*Hash, error) {
	data, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("hash: failed to parse: %w", err)
	}
	return FromBytes(data)
}

// Safe64 returns the hash in url safe base64.
func (h *Hash) Safe64() string {
	return base64.RawURLEncoding.EncodeToString(h.Bytes())
}

// FromHex parses a hash as returned by Hex.
func FromHex(s string) (*Hash, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("hash: failed to parse: %w", err)
	}
	return FromBytes(data)
}

// Hex returns the hash in hex.
func (h *Hash) Hex() string {
	return hex.EncodeToString(h.Bytes())
}

// Equal returns whether both hashes use the same algorithm and sum.
func (h *Hash) Equal(other *Hash) bool {
	return other != nil && h.Algorithm == other.Algorithm && bytes.Equal(h.Sum, other.Sum)
}

// Matches returns whether data hashes to h.
func (h *Hash) Matches(data []byte) bool {
	sum, err := Sum(h.Algorithm, data)
	if err != nil {
		return false
	}
	return h.Equal(sum)
}
