package config

import (
	"regexp"
	"sync"
)

// OptionType defines the value type of an option.
type OptionType uint8

// Option types.
const (
	optTypeAny    OptionType = 0
	OptTypeString OptionType = 1
	OptTypeInt    OptionType = 3
	OptTypeBool   OptionType = 4
)

func getTypeName(t OptionType) string {
	switch t {
	case optTypeAny:
		return "any"
	case OptTypeString:
		return "string"
	case OptTypeInt:
		return "int"
	case OptTypeBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Option describes a configuration option.
type Option struct {
	sync.Mutex

	// Name holds the name of the option.
	Name string
	// Key holds the database path for the option, in the form of
	// category/sub/key.
	Key string
	// Description holds a description of the option.
	Description string
	// OptType defines the type of the option.
	OptType OptionType
	// DefaultValue holds the default value of the option. It must
	// match OptType.
	DefaultValue interface{}
	// ValidationRegex may contain a regular expression used to
	// validate string values.
	ValidationRegex string

	compiledRegex *regexp.Regexp
	activeValue   *valueCache
	defaultValue  *valueCache
}
