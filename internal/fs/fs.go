package fs

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"
)

// NewReal returns a read-only view of the real filesystem.
// Scans never modify what they read, so writes fail with an error.
func NewReal() afero.Fs {
	return &RealFileSystem{Fs: afero.NewReadOnlyFs(afero.NewOsFs())}
}

// NewMem creates an in-memory FileSystem for testing.
func NewMem() *MemFileSystem {
	return &MemFileSystem{Fs: afero.NewMemMapFs()}
}

// RealFileSystem is the OS filesystem with debug logging of file opens.
type RealFileSystem struct {
	afero.Fs
}

// Open opens a file for reading.
func (r *RealFileSystem) Open(name string) (afero.File, error) {
	slog.Debug("opening", "path", name)
	return r.Fs.Open(name)
}

// MemFileSystem is an in-memory filesystem for testing.
type MemFileSystem struct {
	afero.Fs
}

// MustMkdirAll creates a directory and panics on error. For use in tests.
func (m *MemFileSystem) MustMkdirAll(path string) {
	if err := m.Fs.MkdirAll(path, 0755); err != nil {
		panic(fmt.Sprintf("MustMkdirAll(%q): %v", path, err))
	}
}

// MustWriteFile writes content to path, creating parent directories, and
// panics on error. For use in tests.
func (m *MemFileSystem) MustWriteFile(path string, content []byte) {
	m.MustMkdirAll(filepath.Dir(path))
	if err := afero.WriteFile(m.Fs, path, content, 0644); err != nil {
		panic(fmt.Sprintf("MustWriteFile(%q): %v", path, err))
	}
}
