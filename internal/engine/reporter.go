package engine

// Reporter receives the step-by-step narration of a run. The CLI implements
// it with colored console output; tests use NopReporter.
type Reporter interface {
	// Step announces the start of a pipeline phase.
	Step(msg string)

	// ItemOK reports one successful per-path operation.
	ItemOK(path string)

	// ItemFailed reports one failed per-path operation. The run continues.
	ItemFailed(path string, err error)

	// Warn reports a recoverable problem, such as a configuration parse
	// failure.
	Warn(msg string)
}

// NopReporter discards all narration.
type NopReporter struct{}

func (NopReporter) Step(msg string)                 {}
func (NopReporter) ItemOK(path string)              {}
func (NopReporter) ItemFailed(path string, _ error) {}
func (NopReporter) Warn(msg string)                 {}
