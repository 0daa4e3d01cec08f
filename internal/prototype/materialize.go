package prototype

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/octet-labs/mkexample/internal/platform"
)

// Presence is the result of probing a destination path.
type Presence int

const (
	Absent Presence = iota
	Exists
)

func (p Presence) String() string {
	if p == Exists {
		return "exists"
	}
	return "absent"
}

// Outcome records what Materializer.File did.
type Outcome int

const (
	Kept    Outcome = iota // destination already existed and was left untouched
	Created                // destination was written
)

func (o Outcome) String() string {
	if o == Created {
		return "created"
	}
	return "kept"
}

// ErrNotAFile is returned when a file destination is occupied by a directory.
var ErrNotAFile = errors.New("destination exists and is not a file")

// Probe reports whether a file destination exists. Only a genuine
// "does not exist" yields Absent. A destination that exists but cannot be
// opened, or any other stat failure, is returned as an error so the caller
// never writes over something it could not inspect. Symlinks count as
// existing and are not followed.
func Probe(fs billy.Filesystem, p string) (Presence, error) {
	info, err := fs.Lstat(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Absent, nil
		}
		return Absent, fmt.Errorf("checking %s: %w", p, err)
	}

	if platform.IsSymlink(info) {
		return Exists, nil
	}
	if info.IsDir() {
		return Exists, fmt.Errorf("%s: %w", p, ErrNotAFile)
	}

	f, err := fs.Open(p)
	if err != nil {
		return Exists, fmt.Errorf("opening %s: %w", p, err)
	}
	_ = f.Close()
	return Exists, nil
}

// Materializer creates destination files from source files, substituting
// content on the way, and never overwrites an existing destination.
type Materializer struct {
	FS  billy.Filesystem
	Sub Substitutor
	// Verbatim reports source files that are copied byte-for-byte. Nil
	// means every file gets content substitution.
	Verbatim func(name string) bool
}

// Dir creates dst and any missing parents. An existing directory is fine.
func (m *Materializer) Dir(dst string) error {
	if err := m.FS.MkdirAll(dst, platform.DirPerm); err != nil {
		return fmt.Errorf("creating directory %s: %w", dst, err)
	}
	return nil
}

// File materializes src at dst. If dst already exists it returns Kept and
// writes nothing. Otherwise it creates the parent directory, reads src,
// substitutes the content unless src is verbatim, and writes dst with
// permissions derived from mode.
func (m *Materializer) File(src, dst string, mode os.FileMode) (Outcome, error) {
	presence, err := Probe(m.FS, dst)
	if err != nil {
		return Kept, err
	}
	if presence == Exists {
		return Kept, nil
	}

	if err := m.Dir(filepath.Dir(dst)); err != nil {
		return Kept, err
	}

	data, err := util.ReadFile(m.FS, src)
	if err != nil {
		return Kept, fmt.Errorf("reading %s: %w", src, err)
	}
	if m.Verbatim == nil || !m.Verbatim(src) {
		data = m.Sub.Bytes(data)
	}

	created, err := writeNew(m.FS, dst, data, platform.FilePerm(mode))
	if err != nil {
		return Kept, err
	}
	if !created {
		return Kept, nil
	}
	return Created, nil
}

// writeNew writes data to a file that must not exist yet. O_EXCL closes the
// window between Probe and the write: if something else created dst in the
// meantime, the other writer wins and writeNew reports false. A failed write
// removes the partial file so a rerun will try again.
func writeNew(fs billy.Filesystem, dst string, data []byte, perm os.FileMode) (bool, error) {
	f, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("creating %s: %w", dst, err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = fs.Remove(dst)
		return false, fmt.Errorf("writing %s: %w", dst, err)
	}
	if err := f.Close(); err != nil {
		_ = fs.Remove(dst)
		return false, fmt.Errorf("writing %s: %w", dst, err)
	}
	return true, nil
}

// ExtensionMatcher returns a Verbatim func matching file names by
// extension, case-insensitively. Extensions include the leading dot.
func ExtensionMatcher(exts []string) func(name string) bool {
	set := make(map[string]bool, len(exts))
	for _, ext := range exts {
		set[strings.ToLower(ext)] = true
	}
	return func(name string) bool {
		return set[strings.ToLower(filepath.Ext(name))]
	}
}
