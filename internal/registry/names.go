package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/octet-labs/mkexample/internal/config"
)

// ErrInvalidName is returned for project names that cannot be generated.
var ErrInvalidName = errors.New("invalid project name")

// DirName returns the directory name for a project, e.g. "foo" → "example_foo".
func DirName(cfg *config.Config, name string) string {
	return cfg.Prefix + name
}

// NameFromDir returns the project name encoded in a directory name. The
// second result is false for directories that are not generated projects,
// including the prototype directory.
func NameFromDir(cfg *config.Config, dir string) (string, bool) {
	if dir == cfg.Prototype || !strings.HasPrefix(dir, cfg.Prefix) {
		return "", false
	}
	name := strings.TrimPrefix(dir, cfg.Prefix)
	if name == "" {
		return "", false
	}
	return name, true
}

// Normalize strips the project prefix when the user typed a directory name
// ("example_foo") instead of a project name ("foo").
func Normalize(cfg *config.Config, name string) string {
	if trimmed := strings.TrimPrefix(name, cfg.Prefix); trimmed != "" && trimmed != name {
		return trimmed
	}
	return name
}

// ValidateName checks that name can be used as a project name: a single
// non-empty path segment that does not look like a flag, does not contain
// the placeholder token and does not map onto the prototype directory.
func ValidateName(cfg *config.Config, name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.HasPrefix(name, "-"):
		return fmt.Errorf("%w: %q must not start with '-'", ErrInvalidName, name)
	case strings.ContainsAny(name, "/\\\x00\n\r"):
		return fmt.Errorf("%w: %q must be a single path segment", ErrInvalidName, name)
	case strings.Contains(name, cfg.Token):
		return fmt.Errorf("%w: %q contains the reserved token %q", ErrInvalidName, name, cfg.Token)
	case DirName(cfg, name) == cfg.Prototype:
		return fmt.Errorf("%w: %q would generate into the prototype directory %s", ErrInvalidName, name, cfg.Prototype)
	}
	return nil
}
