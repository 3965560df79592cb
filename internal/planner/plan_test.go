package planner

import (
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	s := Defaults()

	expected := map[string]Directive{
		"node_modules":      Ignore,
		"package-lock.json": Ignore,
		"package.json":      Merge,
		"craft.yml":         Ignore,
		"craft.yaml":        Ignore,
		".craftrc":          Ignore,
		".git":              Ignore,
	}

	if len(s) != len(expected) {
		t.Errorf("Defaults() has %d entries, want %d", len(s), len(expected))
	}
	for path, want := range expected {
		got, ok := s.Directive(path)
		if !ok {
			t.Errorf("Defaults() missing entry for %q", path)
			continue
		}
		if got != want {
			t.Errorf("Defaults()[%q] = %q, want %q", path, got, want)
		}
	}
}

func TestParseDirective(t *testing.T) {
	tests := []struct {
		token   string
		want    Directive
		wantErr bool
	}{
		{"ignore", Ignore, false},
		{"delete", Delete, false},
		{"replace", Replace, false},
		{"merge", Merge, false},
		{"", "", true},
		{"IGNORE", "", true},
		{"remove", "", true},
	}

	for _, tt := range tests {
		got, err := ParseDirective(tt.token)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDirective(%q) expected error, got %q", tt.token, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDirective(%q) unexpected error: %v", tt.token, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDirective(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}

func TestShouldSkipCopy(t *testing.T) {
	s := Plan{
		"node_modules":                   Ignore,
		"package.json":                   Merge,
		"old":                            Delete,
		"src":                            Replace,
		filepath.Join("src", "skip.txt"): Ignore,
	}

	tests := []struct {
		path string
		want bool
	}{
		{"node_modules", true},
		{"package.json", true},
		{"old", true},
		{"src", false},         // replace entries are copied
		{"README.md", false},   // absent from the Plan -> copied
		{"src/skip.txt", true}, // nested ignore, forward-slash lookup
	}

	for _, tt := range tests {
		if got := s.ShouldSkipCopy(tt.path); got != tt.want {
			t.Errorf("ShouldSkipCopy(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestDeletions(t *testing.T) {
	s := Plan{
		"z-old":        Delete,
		"a-old":        Delete,
		"node_modules": Ignore,
		"src":          Replace,
	}

	got := s.Deletions()
	want := []string{"a-old", "z-old"}

	if len(got) != len(want) {
		t.Fatalf("Deletions() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Deletions()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDeletionsEmpty(t *testing.T) {
	if got := Defaults().Deletions(); len(got) != 0 {
		t.Errorf("Defaults().Deletions() = %v, want none", got)
	}
}
