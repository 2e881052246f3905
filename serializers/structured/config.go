package structured

import (
	"github.com/safing/tabletext/config"
	"github.com/safing/tabletext/formats/dsd"
)

// Configuration keys.
const (
	CfgFormatKey   = "text/structured/format"
	CfgCompressKey = "text/structured/compress"
)

var (
	cfgFormat   config.StringOption
	cfgCompress config.BoolOption
)

func init() {
	config.MustRegister(&config.Option{
		Name:            "Structured Format",
		Key:             CfgFormatKey,
		Description:     "Serialization format of structured tables.",
		OptType:         config.OptTypeString,
		DefaultValue:    "json",
		ValidationRegex: "^(json|yaml|cbor|msgpack)$",
	})
	config.MustRegister(&config.Option{
		Name:         "Compress Structured Tables",
		Key:          CfgCompressKey,
		Description:  "Compress structured tables written to byte streams with gzip.",
		OptType:      config.OptTypeBool,
		DefaultValue: false,
	})

	cfgFormat = config.GetAsString(CfgFormatKey, "json")
	cfgCompress = config.GetAsBool(CfgCompressKey, false)
}

// DefaultOptions returns the options from the configuration.
func DefaultOptions() Options {
	format, err := dsd.ParseSerializationFormat(cfgFormat())
	if err != nil {
		format = dsd.JSON
	}
	return Options{
		Format:   format,
		Compress: cfgCompress(),
	}
}
