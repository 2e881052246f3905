// Package container assembles and takes apart byte frames of varint
// numbers, length prefixed blocks and raw data.
package container

import (
	"errors"

	"github.com/safing/tabletext/formats/varint"
)

// ErrNotEnoughData is returned when a read needs more bytes than are left.
var ErrNotEnoughData = errors.New("container: not enough data")

// Container collects appended slices and reads from their concatenation.
// Appended data is not copied.
type Container struct {
	parts [][]byte
}

// New returns a container holding the given slices.
func New(data ...[]byte) *Container {
	return &Container{parts: data}
}

// Append appends data.
func (c *Container) Append(data []byte) {
	c.parts = append(c.parts, data)
}

// AppendNumber appends n as varint.
func (c *Container) AppendNumber(n uint64) {
	c.Append(varint.Pack64(n))
}

// AppendAsBlock appends data prefixed with its length.
func (c *Container) AppendAsBlock(data []byte) {
	c.AppendNumber(uint64(len(data)))
	c.Append(data)
}

// Length returns the number of unread bytes.
func (c *Container) Length() int {
	var length int
	for _, part := range c.parts {
		length += len(part)
	}
	return length
}

// CompileData returns all unread bytes as one slice without consuming them.
func (c *Container) CompileData() []byte {
	switch len(c.parts) {
	case 0:
		return nil
	case 1:
		return c.parts[0]
	}

	data := make([]byte, 0, c.Length())
	for _, part := range c.parts {
		data = append(data, part...)
	}
	c.parts = [][]byte{data}
	return data
}

// Get consumes and returns the next n bytes.
func (c *Container) Get(n int) ([]byte, error) {
	data := c.CompileData()
	if n < 0 || len(data) < n {
		return nil, ErrNotEnoughData
	}
	c.consume(n)
	return data[:n], nil
}

// GetNextBlock consumes and returns the next length prefixed block.
func (c *Container) GetNextBlock() ([]byte, error) {
	block, n, err := varint.GetNextBlock(c.CompileData())
	if err != nil {
		return nil, err
	}
	c.consume(n)
	return block, nil
}

// GetNextN8 consumes and returns the next varint as uint8.
func (c *Container) GetNextN8() (uint8, error) {
	num, n, err := varint.Unpack8(c.CompileData())
	if err != nil {
		return 0, err
	}
	c.consume(n)
	return num, nil
}

// GetNextN64 consumes and returns the next varint as uint64.
func (c *Container) GetNextN64() (uint64, error) {
	num, n, err := varint.Unpack64(c.CompileData())
	if err != nil {
		return 0, err
	}
	c.consume(n)
	return num, nil
}

// consume drops n bytes. The data must be compiled.
func (c *Container) consume(n int) {
	if len(c.parts) == 1 {
		c.parts[0] = c.parts[0][n:]
	}
}
