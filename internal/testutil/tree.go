package testutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// FileEntry describes a file or directory to create for a test.
type FileEntry struct {
	Path    string // relative path using forward slashes (e.g., "src/main.go")
	IsDir   bool
	Content []byte
}

// File creates a FileEntry for a file at the given path.
// Path should use forward slashes regardless of OS.
func File(path string) FileEntry {
	return FileEntry{Path: path}
}

// Dir creates a FileEntry for a directory at the given path.
func Dir(path string) FileEntry {
	return FileEntry{Path: path, IsDir: true}
}

// WithContent sets the file content.
func (f FileEntry) WithContent(content string) FileEntry {
	f.Content = []byte(content)
	return f
}

// WithBytes sets raw file content.
func (f FileEntry) WithBytes(content []byte) FileEntry {
	f.Content = content
	return f
}

// WriteTree creates entries under root on afs, failing the test on error.
func WriteTree(t *testing.T, afs afero.Fs, root string, entries ...FileEntry) {
	t.Helper()
	for _, e := range entries {
		path := filepath.Join(root, filepath.FromSlash(e.Path))
		if e.IsDir {
			if err := afs.MkdirAll(path, 0755); err != nil {
				t.Fatalf("mkdir %s: %v", path, err)
			}
			continue
		}
		if err := afs.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
		}
		if err := afero.WriteFile(afs, path, e.Content, 0644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
}
