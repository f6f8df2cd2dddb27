package version

import (
	"testing"

	"github.com/fatih/color"
)

func withoutColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestColoredKeepsText(t *testing.T) {
	withoutColor(t)
	tests := []string{"0.1.0-dev", "1.2.3", "1.2.3-rc.1+build.123", "not-a-version", "1.2"}
	for _, v := range tests {
		if got := Colored(v); got != v {
			t.Errorf("Colored(%q) = %q", v, got)
		}
	}
}

func TestInfo(t *testing.T) {
	withoutColor(t)
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate })

	Version, GitCommit, BuildDate = "1.2.3", "", ""
	if got := Info(); got != "nx 1.2.3\n" {
		t.Fatalf("Info() = %q", got)
	}

	GitCommit, BuildDate = "abc123", "2024-01-15T10:30:00Z"
	want := "nx 1.2.3\ncommit: abc123\nbuilt:  2024-01-15T10:30:00Z\n"
	if got := Info(); got != want {
		t.Fatalf("Info() = %q, want %q", got, want)
	}
}
