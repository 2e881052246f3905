package fixedlength

import "github.com/safing/tabletext/config"

// CfgPaddingKey is the configuration key of the padding character.
const CfgPaddingKey = "text/fixedlength/padding"

var cfgPadding config.StringOption

func init() {
	config.MustRegister(&config.Option{
		Name:            "Padding Character",
		Key:             CfgPaddingKey,
		Description:     "Character used to fill fixed-length fields.",
		OptType:         config.OptTypeString,
		DefaultValue:    " ",
		ValidationRegex: "^.$",
	})

	cfgPadding = config.GetAsString(CfgPaddingKey, " ")
}

// DefaultOptions returns the options from the configuration.
func DefaultOptions() Options {
	opts := Options{Padding: ' '}
	if padding := []rune(cfgPadding()); len(padding) == 1 {
		opts.Padding = padding[0]
	}
	return opts
}
