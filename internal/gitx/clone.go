// Package gitx wraps the git operations craft needs.
package gitx

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Cloner provides an abstraction for cloning template repositories.
type Cloner interface {
	// Clone clones the repository at url into dir. The directory's parent
	// must exist; dir itself must not.
	Clone(ctx context.Context, url, dir string) error
}

// RealCloner implements Cloner by shelling out to git. The subprocess
// inherits the controlling terminal's streams so clone progress is visible.
type RealCloner struct{}

// NewRealCloner creates a new RealCloner.
func NewRealCloner() *RealCloner {
	return &RealCloner{}
}

// Clone runs `git clone <url> <dir>`.
func (c *RealCloner) Clone(ctx context.Context, url, dir string) error {
	cmd := exec.CommandContext(ctx, "git", "clone", url, dir)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git clone %s %s: %w", url, dir, err)
	}
	return nil
}

// FakeCloner implements Cloner for tests by materializing a predefined file
// set instead of contacting a remote.
type FakeCloner struct {
	// Files maps slash-separated relative paths to file contents.
	Files map[string]string

	// Err, if set, is returned by Clone without writing anything.
	Err error

	// ClonedURL records the url passed to the last Clone call.
	ClonedURL string
}

// Clone writes the predefined files under dir.
func (c *FakeCloner) Clone(ctx context.Context, url, dir string) error {
	c.ClonedURL = url
	if c.Err != nil {
		return c.Err
	}
	return WriteTree(dir, c.Files)
}

// WriteTree materializes a map of slash-separated relative paths to contents
// under root. Shared by FakeCloner and engine tests.
func WriteTree(root string, files map[string]string) error {
	if err := os.MkdirAll(root, 0755); err != nil {
		return err
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}
