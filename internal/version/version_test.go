package version

import (
	"strings"
	"testing"
)

func TestGetIsPopulated(t *testing.T) {
	info := Get()
	if info.Version == "" {
		t.Error("Version should never be empty after init")
	}
	if info.Commit == "" {
		t.Error("Commit should never be empty after init")
	}
	if !strings.HasPrefix(info.GoVersion, "go") {
		t.Errorf("GoVersion = %q, want go prefix", info.GoVersion)
	}
}

func TestShortRevision(t *testing.T) {
	tests := []struct {
		name  string
		stamp vcsStamp
		want  string
	}{
		{"missing", vcsStamp{}, "unknown"},
		{"short", vcsStamp{revision: "abc"}, "abc"},
		{"long", vcsStamp{revision: "0123456789abcdef"}, "0123456"},
		{"dirty", vcsStamp{revision: "0123456789", modified: true}, "0123456-dirty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stamp.shortRevision(); got != tt.want {
				t.Errorf("shortRevision() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDevVersion(t *testing.T) {
	if got := devVersion("2026-03-01T10:00:00Z"); got != "dev-20260301" {
		t.Errorf("devVersion() = %q, want dev-20260301", got)
	}
	if got := devVersion(""); !strings.HasPrefix(got, "dev-") {
		t.Errorf("devVersion(\"\") = %q, want dev- prefix", got)
	}
}
