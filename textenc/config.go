package textenc

import "github.com/safing/tabletext/config"

// Configuration keys.
const (
	CfgNameKey = "text/encoding/name"
	CfgBOMKey  = "text/encoding/bom"
)

var (
	cfgName config.StringOption
	cfgBOM  config.BoolOption
)

func init() {
	config.MustRegister(&config.Option{
		Name:         "Text Encoding",
		Key:          CfgNameKey,
		Description:  "Encoding used for byte streams of text tables, by IANA name.",
		OptType:      config.OptTypeString,
		DefaultValue: DefaultName,
	})
	config.MustRegister(&config.Option{
		Name:         "Byte Order Mark",
		Key:          CfgBOMKey,
		Description:  "Write a byte order mark at the start of encoded text.",
		OptType:      config.OptTypeBool,
		DefaultValue: false,
	})

	cfgName = config.GetAsString(CfgNameKey, DefaultName)
	cfgBOM = config.GetAsBool(CfgBOMKey, false)
}

// Configured returns the encoding settings from the configuration.
func Configured() Settings {
	return Settings{
		Name: cfgName(),
		BOM:  cfgBOM(),
	}
}
