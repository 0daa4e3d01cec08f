package platform

import (
	"os"

	"github.com/go-git/go-billy/v5"
)

// IsSymlink reports whether info (from Lstat) describes a symbolic link.
func IsSymlink(info os.FileInfo) bool {
	return info.Mode()&os.ModeSymlink != 0
}

// ReadSymlinkTarget returns the target of the symlink at path. Used only for
// reporting; links are never followed.
func ReadSymlinkTarget(fs billy.Symlink, path string) string {
	target, err := fs.Readlink(path)
	if err != nil {
		return ""
	}
	return target
}
