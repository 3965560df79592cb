package engine

import "errors"

var (
	// ErrPrerequisite indicates no usable generator installation was found.
	ErrPrerequisite = errors.New("missing prerequisite")

	// ErrExternalCommand indicates a generator, clone, or install
	// subprocess exited non-zero, aborting the remaining pipeline.
	ErrExternalCommand = errors.New("external command failed")
)
