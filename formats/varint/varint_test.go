package varint

import (
	"bytes"
	"testing"
)

func TestConversion(t *testing.T) {
	t.Parallel()

	subjects := []struct {
		intType uint8
		bytes   []byte
		integer uint64
	}{
		{8, []byte{0x00}, 0},
		{8, []byte{0x01}, 1},
		{8, []byte{0x7F}, 127},
		{8, []byte{0x80, 0x01}, 128},
		{8, []byte{0xFF, 0x01}, 255},

		{64, []byte{0x00}, 0},
		{64, []byte{0x80, 0x02}, 256},
		{64, []byte{0xFF, 0xFF, 0x03}, 65535},
		{64, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}, 18446744073709551615},
	}

	for _, subject := range subjects {
		actualInteger, _, err := Unpack64(subject.bytes)
		if err != nil || actualInteger != subject.integer {
			t.Errorf("Unpack64 %d: expected %d, actual %d", subject.bytes, subject.integer, actualInteger)
		}
		actualBytes := Pack64(subject.integer)
		if !bytes.Equal(actualBytes, subject.bytes) {
			t.Errorf("Pack64 %d: expected %d, actual %d", subject.integer, subject.bytes, actualBytes)
		}

		if subject.intType != 8 {
			continue
		}
		actual8, read, err := Unpack8(subject.bytes)
		if err != nil || uint64(actual8) != subject.integer || read != len(subject.bytes) {
			t.Errorf("Unpack8 %d: expected %d, actual %d (%d bytes, err=%v)", subject.bytes, subject.integer, actual8, read, err)
		}
		if !bytes.Equal(Pack8(uint8(subject.integer)), subject.bytes) {
			t.Errorf("Pack8 %d: expected %d", subject.integer, subject.bytes)
		}
	}
}

func TestFails(t *testing.T) {
	t.Parallel()

	if _, _, err := Unpack8(nil); err == nil {
		t.Error("Unpack8 on empty buffer should fail")
	}
	if _, _, err := Unpack8([]byte{0x80, 0x02}); err == nil {
		t.Error("Unpack8 should fail on values over 255")
	}
	if _, _, err := Unpack64([]byte{0xFF}); err == nil {
		t.Error("Unpack64 should fail on truncated data")
	}
}

func TestBlocks(t *testing.T) {
	t.Parallel()

	data := PrependLength([]byte("hello"))
	data = append(data, []byte("rest")...)

	block, n, err := GetNextBlock(data)
	if err != nil {
		t.Fatal(err)
	}
	if string(block) != "hello" || n != 6 {
		t.Errorf("unexpected block %q (%d)", block, n)
	}

	if _, _, err := GetNextBlock([]byte{0x09, 0x01}); err == nil {
		t.Error("GetNextBlock should fail when the block exceeds the data")
	}
}
