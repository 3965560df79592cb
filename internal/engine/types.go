package engine

import "time"

// RunRequest describes one scaffolding run.
type RunRequest struct {
	// ProjectDir is the directory create-react-app generates into. It is
	// also the project name passed to the generator.
	ProjectDir string

	// TemplateURL is the git URL of the template repository.
	TemplateURL string
}

// PathResult is the outcome of one per-path delete or copy operation.
type PathResult struct {
	// Path is the path relative to the project or template root.
	Path string

	// Err is nil on success. A failed path never aborts its phase.
	Err error
}

// RunResult summarizes a completed run.
type RunResult struct {
	// ProjectDir is the target project directory.
	ProjectDir string

	// Deleted holds the per-path outcomes of the deletion phase.
	Deleted []PathResult

	// Copied holds the per-path outcomes of the copy phase, one entry per
	// top-level template entry that was not skipped.
	Copied []PathResult

	// Installed lists the name@version packages handed to npm install.
	Installed []string

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}
