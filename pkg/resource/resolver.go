// Package resource locates the backend entry point inside the application's resource
// directory and builds the command line used to launch it.
package resource

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
)

// ErrEntryNotFound is returned when the backend entry point does not exist.
var ErrEntryNotFound = errors.New("backend entry not found")

// Resolver resolves backend paths against a resource directory.
type Resolver struct {
	fs  afero.Fs
	dir string
}

// NewResolver returns a resolver rooted at dir. An empty dir falls back to DefaultDir.
func NewResolver(fs afero.Fs, dir string) *Resolver {
	if dir == "" {
		dir = DefaultDir()
	}
	return &Resolver{fs: fs, dir: dir}
}

// Dir returns the resource directory entries are resolved against.
func (r *Resolver) Dir() string {
	return r.dir
}

// Entry returns the absolute path of entry. Relative entries are joined to the resource
// directory. The result must exist and must not be a directory.
func (r *Resolver) Entry(entry string) (string, error) {
	if entry == "" {
		return "", errors.Wrap(ErrEntryNotFound, "empty entry")
	}

	path := entry
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.dir, entry)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, "resolve %s", path)
	}

	info, err := r.fs.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrapf(ErrEntryNotFound, "%s", abs)
		}
		return "", errors.Wrapf(err, "stat %s", abs)
	}
	if info.IsDir() {
		return "", errors.Wrapf(ErrEntryNotFound, "%s is a directory", abs)
	}
	return abs, nil
}

// DefaultDir is the "resources" directory next to the running executable, or the working
// directory when that does not exist.
func DefaultDir() string {
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Join(filepath.Dir(exe), "resources")
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// Command returns the executable and arguments to launch entry. With an interpreter the
// entry becomes its first argument; without one the entry is executed directly.
func Command(interpreter, entry string, args []string) (string, []string) {
	if interpreter == "" {
		return entry, append([]string{}, args...)
	}
	argv := make([]string, 0, len(args)+1)
	argv = append(argv, entry)
	argv = append(argv, args...)
	return interpreter, argv
}
