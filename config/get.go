package config

import "sync"

type (
	// StringOption returns the current value of a string option.
	StringOption func() string
	// IntOption returns the current value of an int option.
	IntOption func() int64
	// BoolOption returns the current value of a bool option.
	BoolOption func() bool
)

// cached returns a getter that keeps the value found by find until the
// configuration changes.
func cached[T any](find func() T) func() T {
	var lock sync.Mutex
	valid := getValidityFlag()
	value := find()

	return func() T {
		lock.Lock()
		defer lock.Unlock()

		if !valid.IsSet() {
			valid = getValidityFlag()
			value = find()
		}
		return value
	}
}

// GetAsString returns a getter for a string option. The fallback is used
// when the option is not registered or has another type.
func GetAsString(name string, fallback string) StringOption {
	return cached(func() string {
		if vc := findValue(name, OptTypeString); vc != nil {
			return vc.stringVal
		}
		return fallback
	})
}

// GetAsInt returns a getter for an int option.
func GetAsInt(name string, fallback int64) IntOption {
	return cached(func() int64 {
		if vc := findValue(name, OptTypeInt); vc != nil {
			return vc.intVal
		}
		return fallback
	})
}

// GetAsBool returns a getter for a bool option.
func GetAsBool(name string, fallback bool) BoolOption {
	return cached(func() bool {
		if vc := findValue(name, OptTypeBool); vc != nil {
			return vc.boolVal
		}
		return fallback
	})
}

// findValue returns the user value of the option, or its default.
func findValue(key string, optType OptionType) *valueCache {
	option, err := GetOption(key)
	if err != nil || option.OptType != optType {
		return nil
	}

	option.Lock()
	defer option.Unlock()

	if option.activeValue != nil {
		return option.activeValue
	}
	return option.defaultValue
}
