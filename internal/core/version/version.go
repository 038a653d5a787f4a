// Package version reports which build of the shop is running
package version

import (
	"runtime/debug"
	"sync"
)

// Service is the name the api reports for itself
const Service = "eshop-api"

// set with -ldflags "-X eshoppers/internal/core/version.version=v1.2.0 ..."
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// BuildInfo is served on /meta/version
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Dirty   bool   `json:"dirty,omitempty"`
}

var (
	infoOnce sync.Once
	info     BuildInfo
)

// Info is the ldflags values, falling back to the vcs stamp go build records
func Info() BuildInfo {
	infoOnce.Do(func() {
		info = BuildInfo{Service: Service, Version: version, Commit: commit, Date: date}
		if bi, ok := debug.ReadBuildInfo(); ok {
			fillFromVCS(&info, bi.Settings)
		}
		if info.Commit == "" {
			info.Commit = "none"
		}
		if info.Date == "" {
			info.Date = "unknown"
		}
	})
	return info
}

func fillFromVCS(b *BuildInfo, settings []debug.BuildSetting) {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if b.Commit == "" {
				b.Commit = s.Value
			}
		case "vcs.time":
			if b.Date == "" {
				b.Date = s.Value
			}
		case "vcs.modified":
			b.Dirty = s.Value == "true"
		}
	}
}
