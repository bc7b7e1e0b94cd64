package version

import (
	"strings"
	"testing"

	promversion "github.com/prometheus/common/version"
)

func TestInfoString(t *testing.T) {
	info := Info{Version: "1.2.0", BuildTime: "unknown", GoVersion: "go1.25", VCSRevision: "0123456789abcdef", VCSModified: true}
	s := info.String()
	for _, want := range []string{"Version: 1.2.0", "Go: go1.25", "Commit: 01234567 (modified)"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
	if strings.Contains(s, "Built:") {
		t.Errorf("unknown build time should be omitted: %q", s)
	}
}

func TestCheck(t *testing.T) {
	if msg := (Info{Version: "dev"}).Check(); !strings.Contains(msg, "development build") {
		t.Errorf("Check() = %q", msg)
	}
	if msg := (Info{Version: "1.0.0", VCSRevision: "abc"}).Check(); msg != "" {
		t.Errorf("clean build should not warn, got %q", msg)
	}
}

func TestPublish(t *testing.T) {
	old := promversion.Version
	t.Cleanup(func() { promversion.Version = old })

	Info{Version: "9.9.9", VCSRevision: "deadbeef", BuildTime: "2026-01-01"}.Publish()
	if promversion.Version != "9.9.9" || promversion.Revision != "deadbeef" || promversion.BuildDate != "2026-01-01" {
		t.Errorf("Publish did not copy build info: %s %s %s", promversion.Version, promversion.Revision, promversion.BuildDate)
	}
}
