// Package version reports the build identity of zeroapi.
//
// Version and Commit are normally stamped by the release build:
//
//	go build -ldflags="-X github.com/zeroapi/zeroapi/internal/version.Version=v1.2.3 \
//	                   -X github.com/zeroapi/zeroapi/internal/version.Commit=abc123" ./cmd/zeroapi
//
// Local builds fall back to the VCS stamp embedded by the Go toolchain.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

var (
	// Version is the release version, e.g. v0.0.1
	Version = ""
	// Commit is the short git hash the binary was built from
	Commit = ""
)

// Info is the build identity reported by `zeroapi version` and /healthz.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuiltAt   string `json:"built_at,omitempty"`
	GoVersion string `json:"go_version"`
}

var builtAt string

func init() {
	vcs := readVCS()
	builtAt = vcs.time

	if Commit == "" {
		Commit = vcs.shortRevision()
	}
	if Version == "" {
		Version = devVersion(vcs.time)
	}
}

// Get returns the build identity.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuiltAt:   builtAt,
		GoVersion: runtime.Version(),
	}
}

// String renders the identity on one line.
func (i Info) String() string {
	return fmt.Sprintf("%s (commit: %s, %s)", i.Version, i.Commit, i.GoVersion)
}

type vcsStamp struct {
	revision string
	modified bool
	time     string
}

func readVCS() vcsStamp {
	var v vcsStamp
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return v
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			v.revision = s.Value
		case "vcs.modified":
			v.modified = s.Value == "true"
		case "vcs.time":
			v.time = s.Value
		}
	}
	return v
}

func (v vcsStamp) shortRevision() string {
	if v.revision == "" {
		return "unknown"
	}
	rev := v.revision
	if len(rev) > 7 {
		rev = rev[:7]
	}
	if v.modified {
		rev += "-dirty"
	}
	return rev
}

// devVersion names unreleased builds after their commit date, or the
// current time when the binary carries no VCS stamp.
func devVersion(stamp string) string {
	if t, err := time.Parse(time.RFC3339, stamp); err == nil {
		return "dev-" + t.Format("20060102")
	}
	return "dev-" + time.Now().Format("20060102-150405")
}
