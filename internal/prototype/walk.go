package prototype

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path"

	"github.com/go-git/go-billy/v5"
	"github.com/octet-labs/mkexample/internal/platform"
)

// Kind classifies a traversed entry.
type Kind int

const (
	KindFile Kind = iota
	KindDir
	KindSymlink
	KindOther // devices, pipes, sockets
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "directory"
	case KindSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// Node is one entry below a walk root.
type Node struct {
	Rel  string // slash-separated path relative to the walk root
	Kind Kind
	Mode os.FileMode
}

// SkipDir returned from a WalkFunc for a directory node prunes that
// directory. Returned for any other node it is ignored.
var SkipDir = iofs.SkipDir

// ErrNotADirectory is returned when a walk root is not a directory.
var ErrNotADirectory = errors.New("not a directory")

// WalkFunc is called once per node in depth-first pre-order.
type WalkFunc func(n Node) error

// Walk visits every entry below root. Entries are classified with Lstat, so
// symlinks are reported as KindSymlink and never followed. Within a
// directory, nodes come in the order the filesystem lists them (go-billy
// sorts by name). The root itself is not reported.
func Walk(fs billy.Filesystem, root string, fn WalkFunc) error {
	info, err := fs.Lstat(root)
	if err != nil {
		return fmt.Errorf("reading %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", root, ErrNotADirectory)
	}
	return walkDir(fs, root, "", fn)
}

func walkDir(fs billy.Filesystem, root, rel string, fn WalkFunc) error {
	dir := fs.Join(root, rel)
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		childRel := path.Join(rel, entry.Name())
		info, err := fs.Lstat(fs.Join(root, childRel))
		if err != nil {
			return fmt.Errorf("reading %s: %w", fs.Join(root, childRel), err)
		}

		node := Node{Rel: childRel, Kind: kindOf(info), Mode: info.Mode()}
		err = fn(node)
		if errors.Is(err, SkipDir) {
			continue
		}
		if err != nil {
			return err
		}

		if node.Kind == KindDir {
			if err := walkDir(fs, root, childRel, fn); err != nil {
				return err
			}
		}
	}

	return nil
}

// Collect returns every node below root in walk order.
func Collect(fs billy.Filesystem, root string) ([]Node, error) {
	var nodes []Node
	err := Walk(fs, root, func(n Node) error {
		nodes = append(nodes, n)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

func kindOf(info os.FileInfo) Kind {
	switch {
	case platform.IsSymlink(info):
		return KindSymlink
	case info.IsDir():
		return KindDir
	case info.Mode().IsRegular():
		return KindFile
	default:
		return KindOther
	}
}
