package version

import (
	"fmt"
	"runtime/debug"
)

// Version is set at build time:
//
//	go build -ldflags "-X github.com/kbukum/lambdachain/version.Version=1.2.0"
var Version = "dev"

// Info describes the running build of lambdachain.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	GoVersion string `json:"go_version,omitempty"`
	IsDirty   bool   `json:"is_dirty"`
}

// Get returns version information, filling the commit and Go version from
// the embedded build info when available.
func Get() Info {
	info := Info{Version: Version}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	// a dependency build reports the module version instead of "dev"
	for _, dep := range bi.Deps {
		if dep.Path == "github.com/kbukum/lambdachain" && Version == "dev" && dep.Version != "" {
			info.Version = dep.Version
		}
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.GitCommit = s.Value
			if len(info.GitCommit) > 7 {
				info.GitCommit = info.GitCommit[:7]
			}
		case "vcs.modified":
			info.IsDirty = s.Value == "true"
		}
	}
	return info
}

// String returns the version with the short commit and a dirty marker.
func (i Info) String() string {
	if i.GitCommit == "" {
		return i.Version
	}
	if i.IsDirty {
		return fmt.Sprintf("%s-%s-dirty", i.Version, i.GitCommit)
	}
	return fmt.Sprintf("%s-%s", i.Version, i.GitCommit)
}
