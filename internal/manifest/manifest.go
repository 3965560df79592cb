// Package manifest handles package.json reconciliation between a generated
// baseline project and a template.
//
// A manifest is held as a flat field map so unknown fields pass through the
// merge untouched. Precedence is baseline-wins field-for-field, with two
// exceptions: template scripts override baseline scripts, and the template's
// eslintConfig is preferred when present.
package manifest

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Manifest is a parsed package.json, field names to raw values.
type Manifest map[string]json.RawMessage

// Parse decodes a package.json document.
func Parse(data []byte) (Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return m, nil
}

// Encode renders the manifest as pretty-printed JSON with 2-space
// indentation and a trailing newline, the npm convention.
func (m Manifest) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return append(data, '\n'), nil
}

// Dependencies returns the dependencies field as a name-to-version map.
// A missing or malformed field yields an empty map.
func (m Manifest) Dependencies() map[string]string {
	return m.stringMap("dependencies")
}

// Scripts returns the scripts field as a name-to-command map.
func (m Manifest) Scripts() map[string]string {
	return m.stringMap("scripts")
}

func (m Manifest) stringMap(field string) map[string]string {
	raw, ok := m[field]
	if !ok {
		return map[string]string{}
	}
	var out map[string]string
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return map[string]string{}
	}
	return out
}

// MissingDeps returns the template dependencies absent by name from the
// baseline, as sorted name@version install arguments. A same-named baseline
// dependency always wins, whatever its version.
func MissingDeps(template, baseline Manifest) []string {
	baseDeps := baseline.Dependencies()

	var missing []string
	for name, version := range template.Dependencies() {
		if _, ok := baseDeps[name]; ok {
			continue
		}
		missing = append(missing, name+"@"+version)
	}
	sort.Strings(missing)
	return missing
}

// Merge combines the template and baseline manifests. The baseline wins
// field-for-field; template scripts win over baseline scripts entry-for-entry;
// the template's eslintConfig is preferred when present.
func Merge(template, baseline Manifest) (Manifest, error) {
	merged := Manifest{}
	for field, value := range template {
		merged[field] = value
	}
	for field, value := range baseline {
		merged[field] = value
	}

	scripts := baseline.Scripts()
	for name, command := range template.Scripts() {
		scripts[name] = command
	}
	if len(scripts) > 0 {
		raw, err := json.Marshal(scripts)
		if err != nil {
			return nil, fmt.Errorf("failed to encode scripts: %w", err)
		}
		merged["scripts"] = raw
	}

	if eslint, ok := template["eslintConfig"]; ok {
		merged["eslintConfig"] = eslint
	}

	return merged, nil
}
