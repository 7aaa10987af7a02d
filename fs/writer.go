// Package fs provides filesystem storage for rendered artifacts.
package fs

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/mkaminski/websave"
)

// Writer writes artifacts into an output directory. Exists and
// WriteFile share one mutex, so a collision check and the write that
// follows it never interleave with another worker's.
type Writer struct {
	mu sync.Mutex
}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// EnsureDir creates the output directory if it does not exist.
func (w *Writer) EnsureDir(dir string) error {
	if dir == "" {
		return websave.Errorf(websave.EINVALID, "output directory required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return websave.Errorf(websave.EINTERNAL, "creating output directory %s: %v", dir, err)
	}
	return nil
}

// Exists reports whether any stem.ext path already exists in dir for
// the given extensions. Used by the batch runner as the on-disk
// collision predicate during stem resolution.
func (w *Writer) Exists(dir, stem string, exts []string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, ext := range exts {
		if _, err := os.Stat(filepath.Join(dir, stem+"."+ext)); err == nil {
			return true
		}
	}
	return false
}

// WriteFile writes data to dir/stem.ext and returns the written path.
func (w *Writer) WriteFile(dir, stem, ext string, data []byte) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	path := filepath.Join(dir, stem+"."+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", websave.Errorf(websave.EINTERNAL, "writing %s: %v", path, err)
	}
	return path, nil
}
