// Package output writes generated model files to their destination.
package output

import (
	"os"
	"path/filepath"
)

// Writer is the file-write capability the orchestrator depends on. Both
// operations are idempotent: creating an existing directory is not an
// error, and writing an existing file overwrites it.
type Writer interface {
	EnsureDir(path string) error
	WriteFile(path string, content []byte) error
}

// FileWriter writes to the local file system.
type FileWriter struct{}

// NewFileWriter creates a file-system writer.
func NewFileWriter() *FileWriter {
	return &FileWriter{}
}

// EnsureDir creates the directory and any missing parents.
func (w *FileWriter) EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// WriteFile writes the content, creating the parent directory first.
func (w *FileWriter) WriteFile(path string, content []byte) error {
	if err := w.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	return os.WriteFile(path, content, 0o644)
}
