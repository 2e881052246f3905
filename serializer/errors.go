package serializer

import "fmt"

// Operations reported in a MappingError.
const (
	OpSerialize   = "serialize"
	OpDeserialize = "deserialize"
)

// MappingError describes a failure to map between records and their text representation.
type MappingError struct {
	Op   string
	Line int
	Msg  string
	Err  error
}

// NewMappingError returns a new mapping error. Line is 1-based; 0 means unknown.
func NewMappingError(op string, line int, msg string, err error) *MappingError {
	return &MappingError{
		Op:   op,
		Line: line,
		Msg:  msg,
		Err:  err,
	}
}

func (me *MappingError) Error() string {
	msg := "failed to " + me.Op
	if me.Line > 0 {
		msg += fmt.Sprintf(" line %d", me.Line)
	}
	if me.Msg != "" {
		msg += ": " + me.Msg
	}
	if me.Err != nil {
		msg += ": " + me.Err.Error()
	}
	return msg
}

func (me *MappingError) Unwrap() error {
	return me.Err
}
