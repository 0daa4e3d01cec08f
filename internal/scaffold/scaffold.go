package scaffold

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/octet-labs/mkexample/internal/config"
	"github.com/octet-labs/mkexample/internal/logging"
	"github.com/octet-labs/mkexample/internal/platform"
	"github.com/octet-labs/mkexample/internal/prototype"
	"github.com/octet-labs/mkexample/internal/registry"
)

// ErrNoPrototype is returned when the prototype directory is missing.
var ErrNoPrototype = errors.New("prototype directory not found")

// Result holds the outcome of one operation on one project. Paths are
// slash-separated and relative to the examples root.
type Result struct {
	Project registry.Project
	Created []string // files written
	Kept    []string // files that already existed and were left alone
	Skipped []string // prototype entries that are not regular files or directories
	Removed []string // artifacts removed by Clean
}

// Engine runs operations against one examples root.
type Engine struct {
	fs       billy.Filesystem
	cfg      *config.Config
	logger   *slog.Logger
	verbatim func(name string) bool
}

// New returns an Engine over fs, which must be rooted at the examples root.
// A nil logger discards diagnostics.
func New(fs billy.Filesystem, cfg *config.Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Engine{
		fs:       fs,
		cfg:      cfg,
		logger:   logger,
		verbatim: prototype.ExtensionMatcher(cfg.BinaryExtensions),
	}
}

// Open returns an Engine over cfg.ExamplesRoot on disk.
func Open(cfg *config.Config, logger *slog.Logger) (*Engine, error) {
	info, err := os.Stat(cfg.ExamplesRoot)
	if err != nil {
		return nil, fmt.Errorf("opening examples root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("examples root %s is not a directory", cfg.ExamplesRoot)
	}

	root, err := filepath.Abs(cfg.ExamplesRoot)
	if err != nil {
		return nil, fmt.Errorf("resolving examples root: %w", err)
	}
	return New(osfs.New(root), cfg, logger), nil
}

// Create materializes the project called name from the prototype. It is
// safe to run again: files already present in the project are kept as they
// are and only missing ones are created. A name given with the project
// prefix ("example_foo") is treated as "foo".
func (e *Engine) Create(name string) (*Result, error) {
	name = registry.Normalize(e.cfg, name)
	if err := registry.ValidateName(e.cfg, name); err != nil {
		return nil, err
	}
	return e.instantiate(registry.Project{Name: name, Dir: registry.DirName(e.cfg, name)})
}

// Update re-runs Create for every generated project, each with its own name,
// so files added to the prototype since a project was generated appear in
// it. Projects whose names Create would reject are skipped with a warning.
// It stops at the first failure and returns the results gathered so far.
func (e *Engine) Update() ([]*Result, error) {
	if err := e.checkPrototype(); err != nil {
		return nil, err
	}

	projects, err := registry.Discover(e.fs, e.cfg)
	if err != nil {
		return nil, err
	}

	var results []*Result
	for _, p := range projects {
		if err := registry.ValidateName(e.cfg, p.Name); err != nil {
			e.logger.Warn("skipping project with an invalid name", "dir", p.Dir, "error", err)
			continue
		}
		result, err := e.instantiate(p)
		if result != nil {
			results = append(results, result)
		}
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// List returns the generated projects.
func (e *Engine) List() ([]registry.Project, error) {
	return registry.Discover(e.fs, e.cfg)
}

func (e *Engine) instantiate(p registry.Project) (*Result, error) {
	if err := e.checkPrototype(); err != nil {
		return nil, err
	}

	m := &prototype.Materializer{
		FS:       e.fs,
		Sub:      prototype.Substitutor{Token: e.cfg.Token, Name: p.Name},
		Verbatim: e.verbatim,
	}
	result := &Result{Project: p}

	if err := m.Dir(p.Dir); err != nil {
		return result, err
	}

	err := prototype.Walk(e.fs, e.cfg.Prototype, func(n prototype.Node) error {
		src := path.Join(e.cfg.Prototype, n.Rel)
		dst := path.Join(p.Dir, m.Sub.Path(n.Rel))

		switch n.Kind {
		case prototype.KindDir:
			return m.Dir(dst)

		case prototype.KindFile:
			outcome, err := m.File(src, dst, n.Mode)
			if err != nil {
				return err
			}
			if outcome == prototype.Created {
				result.Created = append(result.Created, dst)
			} else {
				result.Kept = append(result.Kept, dst)
			}
			e.logger.Debug(outcome.String(), "project", p.Name, "path", dst)
			return nil

		default:
			result.Skipped = append(result.Skipped, dst)
			attrs := []any{"project", p.Name, "path", src, "kind", n.Kind.String()}
			if n.Kind == prototype.KindSymlink {
				attrs = append(attrs, "target", platform.ReadSymlinkTarget(e.fs, src))
			}
			e.logger.Warn("skipping prototype entry that is not a regular file", attrs...)
			return nil
		}
	})
	if err != nil {
		return result, fmt.Errorf("generating %s: %w", p.Dir, err)
	}

	e.logger.Info("project ready", "project", p.Name, "dir", p.Dir,
		"created", len(result.Created), "kept", len(result.Kept))
	return result, nil
}

func (e *Engine) checkPrototype() error {
	info, err := e.fs.Lstat(e.cfg.Prototype)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNoPrototype, e.cfg.Prototype)
		}
		return fmt.Errorf("checking prototype %s: %w", e.cfg.Prototype, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrNoPrototype, e.cfg.Prototype)
	}
	return nil
}
