// Package engine orchestrates a craft run: generate the baseline project,
// snapshot the template, apply the Plan's delete and copy directives, and
// reconcile the package manifests.
//
// The engine owns no policy of its own. All per-path decisions come from the
// Plan loaded out of the template; all external effects go through the
// injected fsops.FS, gitx.Cloner, and npm.Toolchain so the pipeline can be
// exercised end-to-end in tests.
package engine

import (
	"github.com/craft-cli/craft/internal/clock"
	"github.com/craft-cli/craft/internal/fsops"
	"github.com/craft-cli/craft/internal/gitx"
	"github.com/craft-cli/craft/internal/npm"
)

// Engine runs the scaffolding pipeline. It is the main API surface called by
// the CLI.
type Engine struct {
	fs       fsops.FS
	cloner   gitx.Cloner
	tools    npm.Toolchain
	clock    clock.Clock
	reporter Reporter
}

// New creates a new Engine with the given dependencies. A nil reporter
// silences narration.
func New(fs fsops.FS, cloner gitx.Cloner, tools npm.Toolchain, clk clock.Clock, reporter Reporter) *Engine {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Engine{
		fs:       fs,
		cloner:   cloner,
		tools:    tools,
		clock:    clk,
		reporter: reporter,
	}
}
