package api

import (
	"github.com/safing/tabletext/config"
)

// Config Keys.
const (
	CfgListenAddressKey = "api/listenAddress"
)

const defaultListenAddress = "127.0.0.1:8817"

var listenAddressConfig config.StringOption

func init() {
	config.MustRegister(&config.Option{
		Name:            "API Address",
		Key:             CfgListenAddressKey,
		Description:     "Defines the IP address and port for the table API.",
		OptType:         config.OptTypeString,
		DefaultValue:    defaultListenAddress,
		ValidationRegex: "^([0-9]{1,3}.[0-9]{1,3}.[0-9]{1,3}.[0-9]{1,3}:[0-9]{1,5}|\\[[:0-9A-Fa-f]+\\]:[0-9]{1,5})$",
	})
	listenAddressConfig = config.GetAsString(CfgListenAddressKey, defaultListenAddress)
}

// ListenAddress returns the configured listen address.
func ListenAddress() string {
	return listenAddressConfig()
}
