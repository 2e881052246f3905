package main

import (
	"github.com/safing/tabletext/config"
	"github.com/safing/tabletext/log"
)

// CfgLogLevelKey is the configuration key of the log level.
const CfgLogLevelKey = "core/log/level"

var cfgLogLevel config.StringOption

func init() {
	config.MustRegister(&config.Option{
		Name:            "Log Level",
		Key:             CfgLogLevelKey,
		Description:     "Minimum severity of log messages to print.",
		OptType:         config.OptTypeString,
		DefaultValue:    "info",
		ValidationRegex: "^(trace|debug|info|warn|warning|error|critical)$",
	})
	cfgLogLevel = config.GetAsString(CfgLogLevelKey, "info")
}

// applyLogLevel sets the log level from the flag, or the configuration if the flag is empty.
func applyLogLevel(flagLevel string) {
	level := flagLevel
	if level == "" {
		level = cfgLogLevel()
	}
	if severity := log.ParseLevel(level); severity != 0 {
		log.SetLogLevel(severity)
	} else {
		log.Warningf("main: unknown log level %q", level)
	}
}
