package hash

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"
)

// Algorithm identifies a hash algorithm.
type Algorithm uint8

// Algorithms.
const (
	SHA2_256 Algorithm = 1 + iota //nolint:revive,stylecheck
	SHA2_512
	SHA3_256
	SHA3_512
	BLAKE2S_256
	BLAKE2B_256
	BLAKE2B_512
)

var (
	names = map[Algorithm]string{
		SHA2_256:    "SHA2-256",
		SHA2_512:    "SHA2-512",
		SHA3_256:    "SHA3-256",
		SHA3_512:    "SHA3-512",
		BLAKE2S_256: "BLAKE2s-256",
		BLAKE2B_256: "BLAKE2b-256",
		BLAKE2B_512: "BLAKE2b-512",
	}

	functions = map[Algorithm]func() hash.Hash{
		SHA2_256:    sha256.New,
		SHA2_512:    sha512.New,
		SHA3_256:    sha3.New256,
		SHA3_512:    sha3.New512,
		BLAKE2S_256: newBlake2s256,
		BLAKE2B_256: newBlake2b256,
		BLAKE2B_512: newBlake2b512,
	}
)

// String returns the name of the algorithm.
func (a Algorithm) String() string {
	if name, ok := names[a]; ok {
		return name
	}
	return "unknown"
}

// Valid returns whether the algorithm is known.
func (a Algorithm) Valid() bool {
	_, ok := functions[a]
	return ok
}

// New returns a new hash.Hash of the algorithm, or nil if it is unknown.
func (a Algorithm) New() hash.Hash {
	fn, ok := functions[a]
	if !ok {
		return nil
	}
	return fn()
}

// Size returns the output size of the algorithm in bytes.
func (a Algorithm) Size() int {
	h := a.New()
	if h == nil {
		return 0
	}
	return h.Size()
}

// The keyless constructors never fail.

func newBlake2s256() hash.Hash {
	h, _ := blake2s.New256(nil)
	return h
}

func newBlake2b256() hash.Hash {
	h, _ := blake2b.New256(nil)
	return h
}

func newBlake2b512() hash.Hash {
	h, _ := blake2b.New512(nil)
	return h
}
