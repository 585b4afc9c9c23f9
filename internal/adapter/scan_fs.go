package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	m "realias.dev/pkg/realias/internal/model"
)

// ScanFS abstracts the filesystem operations the domain layer relies on
// when scanning trees and replacing records. It intentionally hides
// direct `os` access so the workflow logic can be tested without
// touching the disk layout conventions of any one platform.
type ScanFS interface {
	// ReadDir lists the entries of dir in lexical order.
	ReadDir(dir m.Path) ([]os.DirEntry, error)

	// Exists reports whether path refers to an existing entry.
	Exists(path m.Path) bool

	// Stat returns metadata for a path.
	Stat(path m.Path) (os.FileInfo, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// Rename atomically moves src over dst on the same volume.
	Rename(src, dst m.Path) error

	// Remove deletes a single file.
	Remove(path m.Path) error

	// TempSibling returns an unused path in the same directory as path,
	// suitable for writing a replacement before an atomic rename.
	TempSibling(path m.Path) (m.Path, error)
}

// LocalScanFS is the concrete ScanFS backed by the os package.
type LocalScanFS struct{}

// NewLocalScanFS constructs a LocalScanFS ready to be wired into the
// workflow.
func NewLocalScanFS() *LocalScanFS {
	return &LocalScanFS{}
}

// ReadDir lists the entries of dir.
func (a *LocalScanFS) ReadDir(dir m.Path) ([]os.DirEntry, error) {
	return os.ReadDir(string(dir))
}

// Exists reports whether path exists.
func (a *LocalScanFS) Exists(path m.Path) bool {
	_, err := os.Stat(string(path))
	return err == nil
}

// Stat returns os.FileInfo metadata for the given path.
func (a *LocalScanFS) Stat(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// ReadFile loads file contents from disk.
func (a *LocalScanFS) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// Rename moves src over dst.
func (a *LocalScanFS) Rename(src, dst m.Path) error {
	return os.Rename(string(src), string(dst))
}

// Remove deletes a single file.
func (a *LocalScanFS) Remove(path m.Path) error {
	return os.Remove(string(path))
}

// TempSibling reserves a fresh file next to path and returns its name.
// Keeping it in the same directory keeps the later rename atomic.
func (a *LocalScanFS) TempSibling(path m.Path) (m.Path, error) {
	dir := filepath.Dir(string(path))
	base := filepath.Base(string(path))

	f, err := os.CreateTemp(dir, "."+base+".realias-*")
	if err != nil {
		return "", fmt.Errorf("failed to reserve temp sibling for %s: %w", path, err)
	}

	name := f.Name()
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp sibling %s: %w", name, err)
	}

	return m.Path(name), nil
}
