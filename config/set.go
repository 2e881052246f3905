package config

import (
	"sync"

	"github.com/tevino/abool"
)

// Getters compare against the current validity flag. A change replaces the
// flag after marking the old one invalid.
var (
	validityFlag     = abool.NewBool(true)
	validityFlagLock sync.RWMutex
)

func getValidityFlag() *abool.AtomicBool {
	validityFlagLock.RLock()
	defer validityFlagLock.RUnlock()
	return validityFlag
}

func signalChanges() {
	validityFlagLock.Lock()
	defer validityFlagLock.Unlock()

	validityFlag.UnSet()
	validityFlag = abool.NewBool(true)
}

// SetConfigOption sets the user value of an option. A nil value removes the
// user value, so that the default applies again.
func SetConfigOption(key string, value interface{}) error {
	option, err := GetOption(key)
	if err != nil {
		return err
	}

	var vc *valueCache
	if value != nil {
		if vc, err = validateValue(option, value); err != nil {
			return err
		}
	}

	option.Lock()
	option.activeValue = vc
	option.Unlock()

	signalChanges()
	return nil
}

// ResetValues removes all user values.
func ResetValues() {
	optionsLock.RLock()
	for _, option := range options {
		option.Lock()
		option.activeValue = nil
		option.Unlock()
	}
	optionsLock.RUnlock()

	signalChanges()
}
