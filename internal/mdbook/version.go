package mdbook

import (
	"github.com/Masterminds/semver/v3"

	ferrors "git.home.luguber.info/inful/mdbook-force-relative-links/internal/foundation/errors"
	"git.home.luguber.info/inful/mdbook-force-relative-links/internal/version"
)

// CheckVersion reports whether the running mdbook satisfies the caret requirement of
// the mdbook version this preprocessor was built against.
//
// A mismatch is never fatal: the returned error is a warning-severity
// CategoryVersion error meant to be logged.
func CheckVersion(mdbookVersion string) (bool, error) {
	return checkVersion(mdbookVersion, version.MDBookVersion)
}

func checkVersion(running, builtAgainst string) (bool, error) {
	req, err := semver.NewConstraint("^" + builtAgainst)
	if err != nil {
		return false, ferrors.WrapError(err, ferrors.CategoryVersion, "invalid mdbook version requirement").
			Warning().
			WithContext("requirement", builtAgainst).
			Build()
	}

	v, err := semver.NewVersion(running)
	if err != nil {
		return false, ferrors.WrapError(err, ferrors.CategoryVersion, "unable to parse mdbook version").
			Warning().
			WithContext("mdbook_version", running).
			Build()
	}

	if !req.Check(v) {
		return false, ferrors.VersionWarning("preprocessor was built against a different mdbook version").
			WithContext("mdbook_version", running).
			WithContext("requirement", "^"+builtAgainst).
			Build()
	}
	return true, nil
}
