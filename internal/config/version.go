package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrVersionConstraint is returned when the running tool does not satisfy
// the config's required_version.
var ErrVersionConstraint = errors.New("tool version does not satisfy required_version")

// CheckVersion reports whether version satisfies the semver constraint.
// An empty constraint, or a development build ("dev"), always passes.
func CheckVersion(constraint, version string) error {
	if constraint == "" || version == "" || version == "dev" {
		return nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("parsing %s %q: %w", KeyRequiredVersion, constraint, err)
	}
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return fmt.Errorf("parsing tool version %q: %w", version, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: %s does not match %q", ErrVersionConstraint, version, constraint)
	}
	return nil
}
