package platform

import (
	"os"
	"runtime"
)

// DirPerm is the mode used for every directory the tool creates.
const DirPerm os.FileMode = 0755

// FilePerm returns the permission bits for a file generated from a source
// with the given mode. The source's bits are kept so executable scripts stay
// executable, and the owner-write bit is always added because generated files
// exist to be edited. On Windows, where Unix bits mean nothing, it returns 0644.
func FilePerm(src os.FileMode) os.FileMode {
	if runtime.GOOS == "windows" {
		return 0644
	}
	perm := src.Perm() | 0200
	if perm&0444 == 0 {
		perm |= 0400
	}
	return perm
}
