package output

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileWriter_WriteFile(t *testing.T) {
	w := NewFileWriter()
	path := filepath.Join(t.TempDir(), "crm", "accounts.go")

	if err := w.WriteFile(path, []byte("package crm\n")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != "package crm\n" {
		t.Errorf("content = %q", got)
	}
}

func TestFileWriter_Idempotent(t *testing.T) {
	w := NewFileWriter()
	dir := filepath.Join(t.TempDir(), "out")

	// Creating the same directory twice is not an error.
	if err := w.EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	if err := w.EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir() second call error = %v", err)
	}

	// Writing the same file twice overwrites.
	path := filepath.Join(dir, "model.go")
	if err := w.WriteFile(path, []byte("v1")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := w.WriteFile(path, []byte("v2")); err != nil {
		t.Fatalf("WriteFile() second call error = %v", err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "v2" {
		t.Errorf("content = %q, want %q", got, "v2")
	}
}
