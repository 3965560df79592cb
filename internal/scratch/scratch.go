// Package scratch manages the temporary directory that holds a template
// snapshot for the duration of one run.
package scratch

import (
	"fmt"
	"os"
	"path/filepath"
)

// Dir is a scratch directory acquired for a single run. Release is
// best-effort and safe to call on every exit path.
type Dir struct {
	root     string
	released bool
}

// Acquire creates a fresh scratch directory. The returned Dir's Template
// path does not exist yet; it is created by the clone.
func Acquire() (*Dir, error) {
	root, err := os.MkdirTemp("", "craft-")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	return &Dir{root: root}, nil
}

// Template is the path the template repository is cloned into.
func (d *Dir) Template() string {
	return filepath.Join(d.root, "template")
}

// Release removes the scratch directory. Failure is swallowed: a leaked
// temp directory must never fail the run.
func (d *Dir) Release() {
	if d.released {
		return
	}
	d.released = true
	_ = os.RemoveAll(d.root)
}
