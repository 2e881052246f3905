package config

import (
	"fmt"
	"regexp"
	"sort"
	"sync"
)

var (
	optionsLock sync.RWMutex
	options     = make(map[string]*Option)
)

// Register registers a new configuration option.
func Register(option *Option) error {
	if option.Name == "" || option.Key == "" || option.OptType == optTypeAny {
		return ErrIncompleteCall
	}

	if option.ValidationRegex != "" {
		var err error
		option.compiledRegex, err = regexp.Compile(option.ValidationRegex)
		if err != nil {
			return &InvalidOptionError{Msg: "could not compile validation regex", Err: err}
		}
	}

	var err error
	option.defaultValue, err = validateValue(option, option.DefaultValue)
	if err != nil {
		return &InvalidOptionError{Msg: "default value does not pass validation", Err: err}
	}

	optionsLock.Lock()
	defer optionsLock.Unlock()

	if _, ok := options[option.Key]; ok {
		return &InvalidOptionError{Msg: fmt.Sprintf("option %s is already registered", option.Key)}
	}
	options[option.Key] = option

	signalChanges()
	return nil
}

// MustRegister registers the option and panics on failure. It is meant for
// package init functions.
func MustRegister(option *Option) {
	if err := Register(option); err != nil {
		panic(err)
	}
}

// GetOption returns the option with the given key.
func GetOption(key string) (*Option, error) {
	optionsLock.RLock()
	defer optionsLock.RUnlock()

	option, ok := options[key]
	if !ok {
		return nil, ErrUnknownOption
	}
	return option, nil
}

// Keys returns the keys of all registered options, sorted.
func Keys() []string {
	optionsLock.RLock()
	defer optionsLock.RUnlock()

	keys := make([]string, 0, len(options))
	for key := range options {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
