package varint

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Pack8 packs a uint8 into a VarInt.
func Pack8(n uint8) []byte {
	if n < 128 {
		return []byte{n}
	}
	return []byte{n | 0x80, 0x01}
}

// Pack64 packs a uint64 into a VarInt.
func Pack64(n uint64) []byte {
	buf := make([]byte, binary.MaxVarintLen64)
	size := binary.PutUvarint(buf, n)
	return buf[:size]
}

// Unpack8 unpacks a VarInt into a uint8. It returns the extracted int, how many bytes were used and an error.
func Unpack8(blob []byte) (uint8, int, error) {
	if len(blob) < 1 {
		return 0, 0, ErrEmpty
	}
	if blob[0] < 128 {
		return blob[0], 1, nil
	}
	n, read, err := unpack(blob, 2)
	if err != nil {
		return 0, 0, err
	}
	if n > math.MaxUint8 {
		return 0, 0, fmt.Errorf("%w: exceeds uint8", ErrOverflow)
	}
	return uint8(n), read, nil
}

// Unpack64 unpacks a VarInt into a uint64. It returns the extracted int, how many bytes were used and an error.
func Unpack64(blob []byte) (uint64, int, error) {
	return unpack(blob, binary.MaxVarintLen64)
}

func unpack(blob []byte, maxLen int) (uint64, int, error) {
	if len(blob) < 1 {
		return 0, 0, ErrEmpty
	}
	if len(blob) > maxLen {
		blob = blob[:maxLen]
	}
	n, read := binary.Uvarint(blob)
	switch {
	case read == 0:
		return 0, 0, ErrTruncated
	case read < 0:
		return 0, 0, fmt.Errorf("%w: exceeds uint64", ErrOverflow)
	}
	return n, read, nil
}
