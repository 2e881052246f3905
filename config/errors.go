package config

import (
	"errors"
	"fmt"
)

// Common error definitions.
var (
	ErrUnknownOption     = errors.New("config: unknown option")
	ErrInvalidOptionType = errors.New("config: invalid option value type")
	ErrIncompleteCall    = errors.New("config: could not register option: name, key and type are mandatory")
)

// InvalidOptionError describes an error encountered while
// registering a new option.
type InvalidOptionError struct {
	Msg string
	Err error
}

func (ioe *InvalidOptionError) Error() string {
	if ioe.Err != nil {
		return fmt.Sprintf("config: failed to register option: %s: %s", ioe.Msg, ioe.Err)
	}
	return fmt.Sprintf("config: failed to register option: %s", ioe.Msg)
}

func (ioe *InvalidOptionError) Unwrap() error {
	return ioe.Err
}

// InvalidValueError describes a validation error for the options
// value.
type InvalidValueError struct {
	Option string
	Value  interface{}
	Msg    string
}

func (ive *InvalidValueError) Error() string {
	msg := fmt.Sprintf("config: %s: invalid value %+v", ive.Option, ive.Value)
	if ive.Msg != "" {
		msg += ": " + ive.Msg
	}
	return msg
}

func (ive *InvalidValueError) Unwrap() error {
	return ErrInvalidOptionType
}

func newInvalidValueError(option string, value interface{}, msg string) *InvalidValueError {
	return &InvalidValueError{
		Option: option,
		Value:  value,
		Msg:    msg,
	}
}
