package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// WriteError reports a disk or permission failure while staging an artifact.
// The canonical path is guaranteed to be untouched when one is returned.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write artifact %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// TempPath returns a sibling temp path for final, suitable for staged writes.
// Keeping the temp file in the destination directory makes the final rename
// atomic on POSIX filesystems.
func TempPath(final string) string {
	dir := filepath.Dir(final)
	return filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(final), uuid.NewString()[:8]))
}

// WriteAtomic writes data to the canonical path all-or-nothing: the content
// is staged under a temp name and renamed into place only on success.
func WriteAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	tmp := TempPath(path)
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		os.Remove(tmp)
		return &WriteError{Path: path, Err: err}
	}

	return Promote(tmp, path)
}

// Promote moves a fully written temp file to its canonical path. On failure
// the temp file is removed so no partial artifact survives.
func Promote(tmp, final string) error {
	if err := os.MkdirAll(filepath.Dir(final), 0755); err != nil {
		os.Remove(tmp)
		return &WriteError{Path: final, Err: err}
	}

	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return &WriteError{Path: final, Err: err}
	}

	return nil
}
