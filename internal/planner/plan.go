// Package planner defines the path-to-directive mapping that drives a craft run.
//
// A Plan maps relative paths inside the template snapshot (and, for deletions,
// inside the target project) to the action craft takes for them. It is built
// once per run from a fixed default table overlaid with entries parsed from an
// optional configuration file at the template root, and is read-only for the
// rest of the run.
package planner

import (
	"fmt"
	"path/filepath"
	"sort"
)

// Directive is the action assigned to a single path.
type Directive string

const (
	// Ignore leaves the path alone: never copied, never deleted.
	Ignore Directive = "ignore"

	// Delete removes the path from the target project if present.
	Delete Directive = "delete"

	// Replace copies the template's version of the path over the target's.
	Replace Directive = "replace"

	// Merge reconciles the two versions field-by-field. Only meaningful for
	// the package.json manifest.
	Merge Directive = "merge"
)

// ParseDirective validates a directive token read from configuration.
func ParseDirective(token string) (Directive, error) {
	switch Directive(token) {
	case Ignore, Delete, Replace, Merge:
		return Directive(token), nil
	}
	return "", fmt.Errorf("unknown directive %q", token)
}

// Plan maps host-separator-normalized relative paths to directives.
type Plan map[string]Directive

// Names of craft's own configuration files inside a template. These are never
// copied into the generated project.
const (
	ConfigFileYML    = "craft.yml"
	ConfigFileYAML   = "craft.yaml"
	ConfigFileLegacy = ".craftrc"
)

// ManifestFile is the package manifest, subject to merge handling.
const ManifestFile = "package.json"

// Defaults returns the default Plan used when a template carries no
// configuration. Callers own the returned map.
func Defaults() Plan {
	return Plan{
		"node_modules":      Ignore,
		"package-lock.json": Ignore,
		ManifestFile:        Merge,
		ConfigFileYML:       Ignore,
		ConfigFileYAML:      Ignore,
		ConfigFileLegacy:    Ignore,
		".git":              Ignore,
	}
}

// Directive returns the directive for a relative path, and whether the Plan
// holds an entry for it. The path is normalized before lookup.
func (s Plan) Directive(relPath string) (Directive, bool) {
	d, ok := s[NormalizePath(relPath)]
	return d, ok
}

// ShouldSkipCopy reports whether a path must be excluded from copying: any
// entry other than "replace" is never materialized by the copy phase.
func (s Plan) ShouldSkipCopy(relPath string) bool {
	d, ok := s.Directive(relPath)
	return ok && d != Replace
}

// Deletions returns the delete-directive paths in lexical order.
func (s Plan) Deletions() []string {
	var paths []string
	for path, d := range s {
		if d == Delete {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths
}

// merge overlays other's entries onto s, later entries winning.
func (s Plan) merge(other Plan) {
	for path, d := range other {
		s[path] = d
	}
}

// NormalizePath rewrites a configuration path to the host separator
// convention. Template configs always use forward slashes.
func NormalizePath(p string) string {
	return filepath.FromSlash(p)
}
