package serializer

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMappingError(t *testing.T) {
	t.Parallel()

	err := NewMappingError(OpDeserialize, 3, "bad field count", io.ErrUnexpectedEOF)
	assert.Equal(t, "failed to deserialize line 3: bad field count: unexpected EOF", err.Error())
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))

	assert.Equal(t, "failed to serialize: value too wide", NewMappingError(OpSerialize, 0, "value too wide", nil).Error())
}
