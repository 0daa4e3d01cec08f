package scaffold

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/go-git/go-billy/v5/util"
	"github.com/octet-labs/mkexample/internal/prototype"
	"github.com/octet-labs/mkexample/internal/registry"
)

// Clean removes build-system artifacts from every generated project. An
// entry is an artifact when its base name matches one of the configured
// patterns; matching directories (IDE bundles) are removed with their
// contents. Everything else, including the project directory, stays.
func (e *Engine) Clean() ([]*Result, error) {
	projects, err := registry.Discover(e.fs, e.cfg)
	if err != nil {
		return nil, err
	}

	var results []*Result
	for _, p := range projects {
		result, err := e.cleanProject(p)
		results = append(results, result)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

func (e *Engine) cleanProject(p registry.Project) (*Result, error) {
	result := &Result{Project: p}

	err := prototype.Walk(e.fs, p.Dir, func(n prototype.Node) error {
		if !e.isArtifact(path.Base(n.Rel)) {
			return nil
		}

		target := path.Join(p.Dir, n.Rel)
		if err := util.RemoveAll(e.fs, target); err != nil {
			return fmt.Errorf("removing %s: %w", target, err)
		}
		result.Removed = append(result.Removed, target)
		e.logger.Debug("removed", "project", p.Name, "path", target, "kind", n.Kind.String())

		if n.Kind == prototype.KindDir {
			return prototype.SkipDir
		}
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("cleaning %s: %w", p.Dir, err)
	}

	e.logger.Info("project cleaned", "project", p.Name, "removed", len(result.Removed))
	return result, nil
}

func (e *Engine) isArtifact(name string) bool {
	for _, pattern := range e.cfg.ArtifactPatterns {
		// Patterns are validated when the config is loaded.
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
