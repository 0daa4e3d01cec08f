package registry

import (
	"fmt"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/octet-labs/mkexample/internal/config"
)

// Discover lists the generated projects directly under the root of fs,
// sorted by directory name. fs is rooted at the examples root.
func Discover(fs billy.Filesystem, cfg *config.Config) ([]Project, error) {
	entries, err := fs.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("reading examples root: %w", err)
	}

	var projects []Project
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name, ok := NameFromDir(cfg, entry.Name())
		if !ok {
			continue
		}
		projects = append(projects, Project{Name: name, Dir: entry.Name()})
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].Dir < projects[j].Dir
	})
	return projects, nil
}
