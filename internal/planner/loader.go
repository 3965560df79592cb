package planner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadResult is the outcome of loading a template's configuration. Warnings
// carry recoverable parse problems; loading never fails the run.
type LoadResult struct {
	Plan     Plan
	Warnings []string
}

// Load locates the template's configuration artifact and returns it merged
// over Defaults. Lookup order: craft.yml, craft.yaml (structured YAML form),
// then .craftrc (legacy line form). A missing artifact yields the defaults;
// an unreadable or malformed one yields the defaults plus a warning.
func Load(templateRoot string) LoadResult {
	result := LoadResult{Plan: Defaults()}

	for _, name := range []string{ConfigFileYML, ConfigFileYAML} {
		path := filepath.Join(templateRoot, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			result.Warnings = append(result.Warnings, fmt.Sprintf("cannot read %s: %v; using defaults", name, err))
			return result
		}

		overrides, warnings, err := parseStructured(data)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("cannot parse %s: %v; using defaults", name, err))
			return result
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.Plan.merge(overrides)
		return result
	}

	path := filepath.Join(templateRoot, ConfigFileLegacy)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("cannot read %s: %v; using defaults", ConfigFileLegacy, err))
		}
		return result
	}

	overrides, warnings := parseLegacy(string(data))
	result.Warnings = append(result.Warnings, warnings...)
	result.Plan.merge(overrides)
	return result
}

// pathList accepts either a single scalar path or a sequence of paths.
type pathList []string

func (l *pathList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var single string
		if err := node.Decode(&single); err != nil {
			return err
		}
		*l = pathList{single}
		return nil
	case yaml.SequenceNode:
		var many []string
		if err := node.Decode(&many); err != nil {
			return err
		}
		*l = pathList(many)
		return nil
	}
	return fmt.Errorf("expected a path or list of paths, got yaml kind %d", node.Kind)
}

// structuredConfig is the YAML form: a single "files" mapping from directive
// name to one or more paths.
type structuredConfig struct {
	Files map[string]pathList `yaml:"files"`
}

// parseStructured parses the YAML configuration form. An unrecognized
// directive name produces a warning and the whole group is skipped.
func parseStructured(data []byte) (Plan, []string, error) {
	var cfg structuredConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, nil, err
	}

	overrides := Plan{}
	var warnings []string
	for name, paths := range cfg.Files {
		directive, err := ParseDirective(name)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("skipping %q entries: %v", name, err))
			continue
		}
		// "merge" is reserved for the manifest and not accepted from config.
		if directive == Merge {
			warnings = append(warnings, fmt.Sprintf("skipping %q entries: merge is not configurable", name))
			continue
		}
		for _, p := range paths {
			overrides[NormalizePath(p)] = directive
		}
	}
	return overrides, warnings, nil
}

// parseLegacy parses the line-oriented form: one "path: directive" entry per
// line. A line is a comment only when its first character is #; indented #
// lines are malformed entries and warn. Entries with unknown directive tokens
// warn and leave the Plan untouched for that path.
func parseLegacy(content string) (Plan, []string) {
	overrides := Plan{}
	var warnings []string

	for i, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		path, token, found := strings.Cut(trimmed, ":")
		if !found {
			warnings = append(warnings, fmt.Sprintf("line %d: expected \"path: directive\", got %q", i+1, trimmed))
			continue
		}

		directive, err := ParseDirective(strings.TrimSpace(token))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: %v", i+1, err))
			continue
		}
		overrides[NormalizePath(strings.TrimSpace(path))] = directive
	}
	return overrides, warnings
}
