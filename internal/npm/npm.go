// Package npm wraps the node toolchain invocations craft depends on: the
// create-react-app generator and npm dependency installation.
package npm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNoGenerator indicates that neither create-react-app nor npx is
// installed, so no baseline project can be generated.
var ErrNoGenerator = errors.New("create-react-app is not installed and npx is unavailable")

// Toolchain provides an abstraction for the external node tooling.
type Toolchain interface {
	// CheckGenerator verifies a usable generator installation exists.
	// Returns ErrNoGenerator when neither create-react-app nor npx is on
	// the PATH.
	CheckGenerator() error

	// GenerateApp runs create-react-app for the given project directory,
	// through npx when the dedicated executable is not installed.
	GenerateApp(ctx context.Context, projectDir string) error

	// Install runs `npm install --save --loglevel error <pkg>...` inside
	// dir. Packages are name@version strings. A nil or empty package list
	// is a no-op.
	Install(ctx context.Context, dir string, packages []string) error
}

// RealToolchain implements Toolchain by shelling out. Subprocesses inherit
// the controlling terminal's streams; failure is signaled by exit status.
type RealToolchain struct{}

// NewRealToolchain creates a new RealToolchain.
func NewRealToolchain() *RealToolchain {
	return &RealToolchain{}
}

// generatorCommand resolves the command line prefix for create-react-app.
func (t *RealToolchain) generatorCommand() ([]string, error) {
	if _, err := exec.LookPath("create-react-app"); err == nil {
		return []string{"create-react-app"}, nil
	}
	if _, err := exec.LookPath("npx"); err == nil {
		return []string{"npx", "create-react-app"}, nil
	}
	return nil, ErrNoGenerator
}

// CheckGenerator verifies a usable generator installation exists.
func (t *RealToolchain) CheckGenerator() error {
	_, err := t.generatorCommand()
	return err
}

// GenerateApp runs create-react-app for the given project directory.
func (t *RealToolchain) GenerateApp(ctx context.Context, projectDir string) error {
	argv, err := t.generatorCommand()
	if err != nil {
		return err
	}
	argv = append(argv, projectDir)
	return t.run(ctx, "", argv)
}

// Install installs the given packages inside dir, saving them to the
// manifest.
func (t *RealToolchain) Install(ctx context.Context, dir string, packages []string) error {
	if len(packages) == 0 {
		return nil
	}
	argv := append([]string{"npm", "install", "--save", "--loglevel", "error"}, packages...)
	return t.run(ctx, dir, argv)
}

// run executes argv with inherited stdio, reporting the failing command line
// on error.
func (t *RealToolchain) run(ctx context.Context, dir string, argv []string) error {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", strings.Join(argv, " "), err)
	}
	return nil
}

// FakeToolchain implements Toolchain for tests.
type FakeToolchain struct {
	// GeneratorErr is returned by CheckGenerator and GenerateApp.
	GeneratorErr error

	// InstallErr is returned by Install.
	InstallErr error

	// Baseline maps slash-separated relative paths to contents written
	// under the project directory by GenerateApp, standing in for the
	// create-react-app output.
	Baseline map[string]string

	// Generated records the project directories passed to GenerateApp.
	Generated []string

	// Installed records the package lists passed to Install.
	Installed [][]string
}

// CheckGenerator returns the configured error.
func (t *FakeToolchain) CheckGenerator() error {
	return t.GeneratorErr
}

// GenerateApp records the call and writes the configured baseline tree.
func (t *FakeToolchain) GenerateApp(ctx context.Context, projectDir string) error {
	if t.GeneratorErr != nil {
		return t.GeneratorErr
	}
	t.Generated = append(t.Generated, projectDir)
	return writeTree(projectDir, t.Baseline)
}

// Install records the call and mimics npm --save by adding the packages to
// the dependencies field of dir's package.json, when one exists.
func (t *FakeToolchain) Install(ctx context.Context, dir string, packages []string) error {
	if t.InstallErr != nil {
		return t.InstallErr
	}
	if len(packages) == 0 {
		return nil
	}
	t.Installed = append(t.Installed, packages)

	manifestPath := filepath.Join(dir, "package.json")
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil
	}
	var manifest map[string]interface{}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil
	}
	deps, _ := manifest["dependencies"].(map[string]interface{})
	if deps == nil {
		deps = map[string]interface{}{}
	}
	for _, pkg := range packages {
		name, version := splitPackageSpec(pkg)
		deps[name] = version
	}
	manifest["dependencies"] = deps
	out, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil
	}
	return os.WriteFile(manifestPath, out, 0644)
}

// splitPackageSpec splits "name@version" on the last @, keeping scoped
// package names intact.
func splitPackageSpec(pkg string) (name, version string) {
	idx := strings.LastIndex(pkg, "@")
	if idx <= 0 {
		return pkg, "*"
	}
	return pkg[:idx], pkg[idx+1:]
}

// writeTree materializes a map of slash-separated relative paths to contents
// under root.
func writeTree(root string, files map[string]string) error {
	if err := os.MkdirAll(root, 0755); err != nil {
		return err
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}
