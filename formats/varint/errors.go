package varint

import "errors"

// Errors.
var (
	ErrEmpty     = errors.New("varint: buffer empty")
	ErrTruncated = errors.New("varint: buffer too small")
	ErrOverflow  = errors.New("varint: encoded integer too large")
)
