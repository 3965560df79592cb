// Package cli wires the craft command line to the engine.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/craft-cli/craft/internal/clock"
	"github.com/craft-cli/craft/internal/engine"
	"github.com/craft-cli/craft/internal/fsops"
	"github.com/craft-cli/craft/internal/gitx"
	"github.com/craft-cli/craft/internal/npm"
)

// rootCmd is the root command for craft.
var rootCmd = &cobra.Command{
	Use:   "craft <project-directory> <template-repository-url>",
	Short: "Scaffold a create-react-app project from a template repository",
	Long: heredoc.Doc(`
		craft generates a project with create-react-app, then layers a template
		repository on top of it.

		The template is cloned into a scratch directory and applied according to
		its craft.yml (or legacy .craftrc): per path, craft either ignores,
		deletes, or replaces it against the generated baseline. The two
		package.json manifests are merged and template-only dependencies are
		installed with npm.
	`),
	Args:          validateArgs,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Past argument validation: run failures should not re-print usage.
		cmd.SilenceUsage = true

		eng := newEngine()
		result, err := eng.Run(context.Background(), &engine.RunRequest{
			ProjectDir:  args[0],
			TemplateURL: args[1],
		})
		if err != nil {
			// The error carries the failing command line; main prints it
			// and exits non-zero.
			return err
		}

		fmt.Println()
		PrintSuccess(fmt.Sprintf("Project ready at %s (%s)", result.ProjectDir, result.Elapsed.Round(time.Millisecond)))
		return nil
	},
}

// validateArgs enforces the two positional arguments.
func validateArgs(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		return fmt.Errorf("missing <project-directory> and <template-repository-url> arguments")
	case 1:
		return fmt.Errorf("missing <template-repository-url> argument")
	case 2:
		return nil
	}
	return fmt.Errorf("expected 2 arguments, got %d", len(args))
}

// newEngine creates an engine with real implementations of all dependencies.
func newEngine() *engine.Engine {
	return engine.New(
		fsops.NewRealFS(),
		gitx.NewRealCloner(),
		npm.NewRealToolchain(),
		&clock.RealClock{},
		consoleReporter{},
	)
}

// consoleReporter narrates engine progress with colored output.
type consoleReporter struct{}

func (consoleReporter) Step(msg string)                   { PrintStep(msg) }
func (consoleReporter) ItemOK(path string)                { PrintItemOK(path) }
func (consoleReporter) ItemFailed(path string, err error) { PrintItemFailed(path, err) }
func (consoleReporter) Warn(msg string)                   { PrintWarning(msg) }

// SetVersion sets the version reported by --version and the version command.
func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}
