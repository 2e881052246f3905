// Package info holds the version and build metadata of the program.
package info

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"

	semver "github.com/hashicorp/go-version"
)

const devVersion = "dev build"

var (
	name    = "[NAME]"
	version = devVersion
	license = "[license unknown]"

	// Set by the linker.
	buildSource = "[source unknown]"
	buildTime   = "[build time unknown]"

	info     *Info
	loadInfo sync.Once
)

// Errors returned by Check.
var (
	ErrNotSet         = errors.New("info: program metadata was not set")
	ErrInvalidVersion = errors.New("info: version is not a semantic version")
)

// Info holds the programs meta information.
type Info struct {
	Name    string
	Version string
	License string

	Source    string
	BuildTime string

	Commit     string
	CommitTime string
	Dirty      bool
	GoVersion  string
}

// Set sets meta information via the main routine. This should be the first thing your program calls.
func Set(setName string, setVersion string, setLicenseName string) {
	name = setName
	license = setLicenseName

	if setVersion != "" {
		version = setVersion
	}
}

// GetInfo returns all the meta information about the program.
func GetInfo() *Info {
	loadInfo.Do(func() {
		settings := make(map[string]string)
		goVersion := runtime.Version()
		if buildInfo, ok := debug.ReadBuildInfo(); ok {
			for _, setting := range buildInfo.Settings {
				settings[setting.Key] = setting.Value
			}
			goVersion = buildInfo.GoVersion
		}

		info = &Info{
			Name:       name,
			Version:    version,
			License:    license,
			Source:     buildSource,
			BuildTime:  buildTime,
			Commit:     settings["vcs.revision"],
			CommitTime: settings["vcs.time"],
			Dirty:      settings["vcs.modified"] == "true",
			GoVersion:  goVersion,
		}

		if info.Commit == "" {
			info.Commit = "[commit unknown]"
		}
		if info.CommitTime == "" {
			info.CommitTime = "[commit time unknown]"
		}
	})

	return info
}

// Version returns the short version string.
func Version() string {
	if GetInfo().Dirty {
		return version + "*"
	}
	return version
}

// FullVersion returns the full and detailed version string.
func FullVersion() string {
	info := GetInfo()
	builder := new(strings.Builder)

	fmt.Fprintf(builder, "%s %s\n", info.Name, Version())
	fmt.Fprintf(builder, "\nbuilt with %s (%s) %s/%s\n", info.GoVersion, runtime.Compiler, runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(builder, "  at %s\n", info.BuildTime)
	fmt.Fprintf(builder, "\ncommit %s\n", info.Commit)
	fmt.Fprintf(builder, "  at %s\n", info.CommitTime)
	fmt.Fprintf(builder, "  from %s\n", info.Source)
	fmt.Fprintf(builder, "\nLicensed under the %s license.", info.License)

	return builder.String()
}

// Release returns the version without the marker of modified builds.
func Release() string {
	return version
}

// SemVersion returns the parsed version, or nil for development builds.
func SemVersion() *semver.Version {
	v, err := semver.NewSemver(version)
	if err != nil {
		return nil
	}
	return v
}

// Newer returns whether other is a later version than the program's.
// Development builds and unparsable versions are never newer.
func Newer(other string) bool {
	own := SemVersion()
	if own == nil || other == "" {
		return false
	}
	v, err := semver.NewSemver(other)
	if err != nil {
		return false
	}
	return v.GreaterThan(own)
}

// Check returns ErrNotSet if the program did not call Set, and
// ErrInvalidVersion if the set version cannot be parsed.
func Check() error {
	if name == "[NAME]" || license == "[license unknown]" {
		return ErrNotSet
	}
	if version != devVersion && SemVersion() == nil {
		return fmt.Errorf("%w: %s", ErrInvalidVersion, version)
	}
	return nil
}
