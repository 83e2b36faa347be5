package version

import (
	"testing"

	"github.com/Masterminds/semver/v3"
)

func TestVersion(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}

	// Default value should be "unknown" until set by build
	if Version != "unknown" {
		t.Logf("Version is: %s (expected 'unknown' or version set via ldflags)", Version)
	}
}

func TestBuildInfo(t *testing.T) {
	if BuildTime == "" {
		t.Error("BuildTime should be initialized")
	}

	if GitCommit == "" {
		t.Error("GitCommit should be initialized")
	}
}

func TestMDBookVersionIsSemver(t *testing.T) {
	if _, err := semver.StrictNewVersion(MDBookVersion); err != nil {
		t.Fatalf("MDBookVersion %q is not a strict semantic version: %v", MDBookVersion, err)
	}
}
