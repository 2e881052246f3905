package delimited

import "github.com/safing/tabletext/config"

// Configuration keys.
const (
	CfgSeparatorKey = "text/delimited/separator"
	CfgHeaderKey    = "text/delimited/header"
)

var (
	cfgSeparator config.StringOption
	cfgHeader    config.BoolOption
)

func init() {
	config.MustRegister(&config.Option{
		Name:            "Field Separator",
		Key:             CfgSeparatorKey,
		Description:     "Character separating the fields of delimited text.",
		OptType:         config.OptTypeString,
		DefaultValue:    ",",
		ValidationRegex: "^.$",
	})
	config.MustRegister(&config.Option{
		Name:         "Header Row",
		Key:          CfgHeaderKey,
		Description:  "Whether delimited text starts with a row of column names.",
		OptType:      config.OptTypeBool,
		DefaultValue: true,
	})

	cfgSeparator = config.GetAsString(CfgSeparatorKey, ",")
	cfgHeader = config.GetAsBool(CfgHeaderKey, true)
}

// DefaultOptions returns the options from the configuration.
func DefaultOptions() Options {
	sep := []rune(cfgSeparator())
	opts := Options{
		Separator: ',',
		Header:    cfgHeader(),
	}
	if len(sep) == 1 {
		opts.Separator = sep[0]
	}
	return opts
}
