package varint

// PrependLength returns data prefixed with its varint encoded length.
func PrependLength(data []byte) []byte {
	return append(Pack64(uint64(len(data))), data...)
}

// GetNextBlock reads a length prefixed block from the start of data. It
// returns the block and the number of bytes consumed including the prefix.
func GetNextBlock(data []byte) (block []byte, consumed int, err error) {
	l, n, err := Unpack64(data)
	if err != nil {
		return nil, 0, err
	}
	if l > uint64(len(data)-n) {
		return nil, 0, ErrTruncated
	}
	consumed = n + int(l)
	return data[n:consumed], consumed, nil
}
