package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/craft-cli/craft/internal/manifest"
	"github.com/craft-cli/craft/internal/planner"
	"github.com/craft-cli/craft/internal/scratch"
)

// Run executes the full pipeline. Stages are strictly sequential; only the
// per-path operations inside the delete and copy phases run concurrently.
// Partial state already written to the project directory is not rolled back
// on failure. The template snapshot is released on every exit path.
func (e *Engine) Run(ctx context.Context, req *RunRequest) (*RunResult, error) {
	start := e.clock.Now()

	if err := e.tools.CheckGenerator(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPrerequisite, err)
	}

	e.reporter.Step(fmt.Sprintf("Generating %s with create-react-app", req.ProjectDir))
	if err := e.tools.GenerateApp(ctx, req.ProjectDir); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalCommand, err)
	}

	scr, err := scratch.Acquire()
	if err != nil {
		return nil, err
	}
	defer scr.Release()

	e.reporter.Step(fmt.Sprintf("Cloning template %s", req.TemplateURL))
	if err := e.cloner.Clone(ctx, req.TemplateURL, scr.Template()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalCommand, err)
	}

	loaded := planner.Load(scr.Template())
	for _, warning := range loaded.Warnings {
		e.reporter.Warn(warning)
	}

	result := &RunResult{ProjectDir: req.ProjectDir}
	result.Deleted = e.deletePhase(loaded.Plan, req.ProjectDir)
	result.Copied, err = e.copyPhase(loaded.Plan, scr.Template(), req.ProjectDir)
	if err != nil {
		return nil, err
	}

	result.Installed, err = e.reconcileManifest(ctx, loaded.Plan, scr.Template(), req.ProjectDir)
	if err != nil {
		return nil, err
	}

	result.Elapsed = e.clock.Now().Sub(start)
	return result, nil
}

// deletePhase removes every delete-directive path under the project root.
// Deletions run concurrently; a missing path is a success and an individual
// failure never stops the siblings or the run.
func (e *Engine) deletePhase(s planner.Plan, projectRoot string) []PathResult {
	paths := s.Deletions()
	if len(paths) == 0 {
		return nil
	}

	e.reporter.Step("Deleting files")
	results := make([]PathResult, len(paths))
	var wg sync.WaitGroup
	for i, rel := range paths {
		wg.Add(1)
		go func(i int, rel string) {
			defer wg.Done()
			results[i] = PathResult{Path: rel, Err: e.deleteOne(filepath.Join(projectRoot, rel))}
		}(i, rel)
	}
	wg.Wait()

	e.reportResults(results)
	return results
}

// deleteOne removes a single path, treating absence as success.
func (e *Engine) deleteOne(path string) error {
	exists, err := e.fs.Exists(path)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", path, err)
	}
	if !exists {
		return nil
	}
	if err := e.fs.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}

// copyPhase copies the template's top-level entries into the project root.
// An entry is skipped when the Plan holds a non-replace directive for it;
// nested non-replace paths are excluded during the recursive copy. Entries
// copy concurrently and fail independently.
func (e *Engine) copyPhase(s planner.Plan, templateRoot, projectRoot string) ([]PathResult, error) {
	entries, err := e.fs.ReadDir(templateRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to read template snapshot: %w", err)
	}

	var toCopy []string
	for _, entry := range entries {
		if s.ShouldSkipCopy(entry.Name()) {
			continue
		}
		toCopy = append(toCopy, entry.Name())
	}
	if len(toCopy) == 0 {
		return nil, nil
	}

	e.reporter.Step("Copying template files")
	results := make([]PathResult, len(toCopy))
	var wg sync.WaitGroup
	for i, name := range toCopy {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			skip := func(rel string) bool {
				return s.ShouldSkipCopy(filepath.Join(name, rel))
			}
			err := e.fs.CopyFiltered(
				filepath.Join(templateRoot, name),
				filepath.Join(projectRoot, name),
				skip,
			)
			results[i] = PathResult{Path: name, Err: err}
		}(i, name)
	}
	wg.Wait()

	e.reportResults(results)
	return results, nil
}

// reconcileManifest merges the template's package.json into the baseline's
// and installs template-only dependencies. Active only while the manifest's
// directive is merge; a missing or unparsable manifest on either side skips
// reconciliation instead of failing the run.
func (e *Engine) reconcileManifest(ctx context.Context, s planner.Plan, templateRoot, projectRoot string) ([]string, error) {
	if d, ok := s.Directive(planner.ManifestFile); !ok || d != planner.Merge {
		return nil, nil
	}

	templateManifest, ok := e.readManifest(filepath.Join(templateRoot, planner.ManifestFile))
	if !ok {
		return nil, nil
	}
	baselinePath := filepath.Join(projectRoot, planner.ManifestFile)
	baselineManifest, ok := e.readManifest(baselinePath)
	if !ok {
		return nil, nil
	}

	missing := manifest.MissingDeps(templateManifest, baselineManifest)
	if len(missing) > 0 {
		e.reporter.Step(fmt.Sprintf("Installing %d template dependencies", len(missing)))
		if err := e.tools.Install(ctx, projectRoot, missing); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrExternalCommand, err)
		}
	}

	// Reload: npm --save rewrote the manifest with the new dependencies.
	baselineManifest, ok = e.readManifest(baselinePath)
	if !ok {
		return missing, nil
	}

	merged, err := manifest.Merge(templateManifest, baselineManifest)
	if err != nil {
		return missing, fmt.Errorf("failed to merge manifests: %w", err)
	}
	data, err := merged.Encode()
	if err != nil {
		return missing, fmt.Errorf("failed to encode merged manifest: %w", err)
	}
	if err := e.fs.WriteFile(baselinePath, data, 0644); err != nil {
		return missing, fmt.Errorf("failed to write merged manifest: %w", err)
	}

	return missing, nil
}

// readManifest loads and parses a package.json, warning instead of failing.
func (e *Engine) readManifest(path string) (manifest.Manifest, bool) {
	data, err := e.fs.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			e.reporter.Warn(fmt.Sprintf("cannot read %s: %v; skipping manifest merge", path, err))
		}
		return nil, false
	}
	m, err := manifest.Parse(data)
	if err != nil {
		e.reporter.Warn(fmt.Sprintf("cannot parse %s: %v; skipping manifest merge", path, err))
		return nil, false
	}
	return m, true
}

// reportResults narrates per-path outcomes in order.
func (e *Engine) reportResults(results []PathResult) {
	for _, r := range results {
		if r.Err != nil {
			e.reporter.ItemFailed(r.Path, r.Err)
			continue
		}
		e.reporter.ItemOK(r.Path)
	}
}
