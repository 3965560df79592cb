// Package fsops provides the filesystem operations behind a craft run.
//
// All filesystem mutations go through the FS interface so the engine can be
// exercised against fakes in tests. The one operation with real logic is
// CopyFiltered, which copies a template entry into the project while excluding
// nested paths the run's Plan marks as off-limits.
package fsops

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// SkipFunc decides whether a path, relative to the root of the copy, is
// excluded from copying.
type SkipFunc func(relPath string) bool

// FS abstracts the filesystem operations used by the engine.
type FS interface {
	// Exists checks if a path exists.
	Exists(path string) (bool, error)

	// ReadDir lists the immediate entries of a directory.
	ReadDir(path string) ([]os.DirEntry, error)

	// RemoveAll removes a path and all its contents.
	RemoveAll(path string) error

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string, perm os.FileMode) error

	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating parent directories as needed.
	WriteFile(path string, data []byte, perm os.FileMode) error

	// CopyFiltered recursively copies src to dst, skipping any nested path
	// (relative to src) for which skip returns true. A nil skip copies
	// everything.
	CopyFiltered(src, dst string, skip SkipFunc) error
}

// RealFS implements FS using actual OS operations.
type RealFS struct{}

// NewRealFS creates a new RealFS.
func NewRealFS() *RealFS {
	return &RealFS{}
}

// Exists checks if a path exists.
func (fs *RealFS) Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// ReadDir lists the immediate entries of a directory.
func (fs *RealFS) ReadDir(path string) ([]os.DirEntry, error) {
	return os.ReadDir(path)
}

// RemoveAll removes a path and all its contents.
func (fs *RealFS) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

// MkdirAll creates a directory and all parent directories.
func (fs *RealFS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// ReadFile reads the entire contents of a file.
func (fs *RealFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to a file, creating parent directories as needed.
func (fs *RealFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}
	return os.WriteFile(path, data, perm)
}

// CopyFiltered recursively copies src to dst, skipping nested paths for which
// skip returns true. Follows symlinks to copy target content.
func (fs *RealFS) CopyFiltered(src, dst string, skip SkipFunc) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source: %w", err)
	}

	if srcInfo.IsDir() {
		return fs.copyDir(src, dst, "", skip)
	}
	return fs.copyFile(src, dst, srcInfo.Mode())
}

// copyDir recursively copies a directory, tracking the path relative to the
// copy root so nested entries can be filtered.
func (fs *RealFS) copyDir(src, dst, rel string, skip SkipFunc) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source directory: %w", err)
	}

	if err := os.MkdirAll(dst, srcInfo.Mode()); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("failed to read source directory: %w", err)
	}

	for _, entry := range entries {
		entryRel := filepath.Join(rel, entry.Name())
		if skip != nil && skip(entryRel) {
			continue
		}

		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := fs.copyDir(srcPath, dstPath, entryRel, skip); err != nil {
				return err
			}
			continue
		}

		info, err := os.Stat(srcPath)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", srcPath, err)
		}
		if info.IsDir() {
			// Symlinked directory: descend into the target.
			if err := fs.copyDir(srcPath, dstPath, entryRel, skip); err != nil {
				return err
			}
			continue
		}
		if err := fs.copyFile(srcPath, dstPath, info.Mode()); err != nil {
			return err
		}
	}

	return nil
}

// copyFile copies a single file from src to dst.
func (fs *RealFS) copyFile(src, dst string, mode os.FileMode) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer func() {
		_ = srcFile.Close()
	}()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}
	defer func() {
		_ = dstFile.Close()
	}()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file contents: %w", err)
	}

	return dstFile.Sync()
}

// FakeFS implements FS for tests. It delegates to a RealFS but fails the
// operations configured to fail, keyed by the path's base name, so per-path
// failure handling can be exercised alongside healthy siblings.
type FakeFS struct {
	real RealFS

	// RemoveErrs fails RemoveAll for paths with a matching base name.
	RemoveErrs map[string]error

	// CopyErrs fails CopyFiltered for sources with a matching base name.
	CopyErrs map[string]error

	// WriteErr, if set, fails every WriteFile call.
	WriteErr error
}

// NewFakeFS creates a new FakeFS with no configured failures.
func NewFakeFS() *FakeFS {
	return &FakeFS{
		RemoveErrs: map[string]error{},
		CopyErrs:   map[string]error{},
	}
}

// Exists checks if a path exists.
func (fs *FakeFS) Exists(path string) (bool, error) {
	return fs.real.Exists(path)
}

// ReadDir lists the immediate entries of a directory.
func (fs *FakeFS) ReadDir(path string) ([]os.DirEntry, error) {
	return fs.real.ReadDir(path)
}

// RemoveAll removes a path, failing when configured to.
func (fs *FakeFS) RemoveAll(path string) error {
	if err := fs.RemoveErrs[filepath.Base(path)]; err != nil {
		return err
	}
	return fs.real.RemoveAll(path)
}

// MkdirAll creates a directory and all parent directories.
func (fs *FakeFS) MkdirAll(path string, perm os.FileMode) error {
	return fs.real.MkdirAll(path, perm)
}

// ReadFile reads the entire contents of a file.
func (fs *FakeFS) ReadFile(path string) ([]byte, error) {
	return fs.real.ReadFile(path)
}

// WriteFile writes data to a file, failing when configured to.
func (fs *FakeFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	if fs.WriteErr != nil {
		return fs.WriteErr
	}
	return fs.real.WriteFile(path, data, perm)
}

// CopyFiltered recursively copies src to dst, failing when configured to.
func (fs *FakeFS) CopyFiltered(src, dst string, skip SkipFunc) error {
	if err := fs.CopyErrs[filepath.Base(src)]; err != nil {
		return err
	}
	return fs.real.CopyFiltered(src, dst, skip)
}
