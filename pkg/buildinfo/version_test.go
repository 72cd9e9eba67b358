package buildinfo

import (
	"strings"
	"testing"
)

func TestShort(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })

	Version, Commit = "v0.3.0", "0123456789abcdef"
	if got := Short(); got != "v0.3.0 (0123456)" {
		t.Errorf("Short() = %q, want %q", got, "v0.3.0 (0123456)")
	}

	Commit = "none"
	if got := Short(); got != "v0.3.0 (none)" {
		t.Errorf("Short() = %q", got)
	}
}

func TestTemplate(t *testing.T) {
	if !strings.Contains(Template(), Version) {
		t.Errorf("Template() = %q, missing version", Template())
	}
}
