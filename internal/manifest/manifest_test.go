package manifest

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func mustParse(t *testing.T, doc string) Manifest {
	t.Helper()
	m, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return m
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("{not json")); err == nil {
		t.Fatal("expected error parsing invalid JSON")
	}
}

func TestDependencies_Missing(t *testing.T) {
	m := mustParse(t, `{"name": "app"}`)
	if got := m.Dependencies(); len(got) != 0 {
		t.Errorf("Dependencies() = %v, want empty", got)
	}
}

func TestMissingDeps(t *testing.T) {
	template := mustParse(t, `{"dependencies": {"lodash": "^4.0.0", "react": "^17.0.0", "axios": "^1.0.0"}}`)
	baseline := mustParse(t, `{"dependencies": {"react": "^18.2.0"}}`)

	got := MissingDeps(template, baseline)
	want := []string{"axios@^1.0.0", "lodash@^4.0.0"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("MissingDeps() = %v, want %v", got, want)
	}
}

func TestMissingDeps_NoneMissing(t *testing.T) {
	template := mustParse(t, `{"dependencies": {"react": "^17.0.0"}}`)
	baseline := mustParse(t, `{"dependencies": {"react": "^18.2.0"}}`)

	if got := MissingDeps(template, baseline); len(got) != 0 {
		t.Errorf("MissingDeps() = %v, want none: baseline versions win by name", got)
	}
}

func TestMerge_BaselineWinsFieldForField(t *testing.T) {
	template := mustParse(t, `{"name": "template", "version": "0.1.0", "license": "MIT"}`)
	baseline := mustParse(t, `{"name": "my-app", "version": "1.0.0"}`)

	merged, err := Merge(template, baseline)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	var got struct {
		Name    string `json:"name"`
		Version string `json:"version"`
		License string `json:"license"`
	}
	data, _ := merged.Encode()
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("merged manifest unparsable: %v", err)
	}
	if got.Name != "my-app" || got.Version != "1.0.0" {
		t.Errorf("baseline fields must win: got name=%q version=%q", got.Name, got.Version)
	}
	if got.License != "MIT" {
		t.Errorf("template-only fields must survive: license=%q", got.License)
	}
}

func TestMerge_TemplateScriptsWin(t *testing.T) {
	template := mustParse(t, `{"scripts": {"build": "custom-build"}}`)
	baseline := mustParse(t, `{"scripts": {"build": "react-scripts build", "test": "react-scripts test"}}`)

	merged, err := Merge(template, baseline)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	want := map[string]string{
		"build": "custom-build",
		"test":  "react-scripts test",
	}
	if got := merged.Scripts(); !reflect.DeepEqual(got, want) {
		t.Errorf("merged scripts = %v, want %v", got, want)
	}
}

func TestMerge_ScriptsIdempotent(t *testing.T) {
	template := mustParse(t, `{"scripts": {"build": "custom-build"}}`)
	baseline := mustParse(t, `{"scripts": {"build": "react-scripts build", "test": "react-scripts test"}}`)

	once, err := Merge(template, baseline)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	twice, err := Merge(template, once)
	if err != nil {
		t.Fatalf("second Merge failed: %v", err)
	}

	if !reflect.DeepEqual(once.Scripts(), twice.Scripts()) {
		t.Errorf("re-merging changed scripts: %v vs %v", once.Scripts(), twice.Scripts())
	}
}

func TestMerge_EslintConfigPrefersTemplate(t *testing.T) {
	template := mustParse(t, `{"eslintConfig": {"extends": ["custom"]}}`)
	baseline := mustParse(t, `{"eslintConfig": {"extends": ["react-app"]}}`)

	merged, err := Merge(template, baseline)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	var cfg struct {
		Extends []string `json:"extends"`
	}
	if err := json.Unmarshal(merged["eslintConfig"], &cfg); err != nil {
		t.Fatalf("eslintConfig unparsable: %v", err)
	}
	if !reflect.DeepEqual(cfg.Extends, []string{"custom"}) {
		t.Errorf("eslintConfig extends = %v, want template's value", cfg.Extends)
	}
}

func TestMerge_EslintConfigFallsBackToBaseline(t *testing.T) {
	template := mustParse(t, `{"name": "template"}`)
	baseline := mustParse(t, `{"eslintConfig": {"extends": ["react-app"]}}`)

	merged, err := Merge(template, baseline)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if _, ok := merged["eslintConfig"]; !ok {
		t.Fatal("baseline eslintConfig must survive when template has none")
	}
}

func TestEncode_TwoSpaceIndent(t *testing.T) {
	m := mustParse(t, `{"name": "app", "scripts": {"start": "react-scripts start"}}`)

	data, err := m.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	out := string(data)
	if !strings.Contains(out, "\n  \"name\"") {
		t.Errorf("expected 2-space indentation, got:\n%s", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("expected trailing newline")
	}
}
