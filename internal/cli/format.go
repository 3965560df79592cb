package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	// Color functions - fatih/color disables itself when output is not a TTY
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	headerColor  = color.New(color.FgBlue, color.Bold)
	dimColor     = color.New(color.FgHiBlack)
)

// PrintStep prints a pipeline phase header.
func PrintStep(msg string) {
	_, _ = headerColor.Printf("▸ %s\n", msg)
}

// PrintSuccess prints a success message with a checkmark.
func PrintSuccess(msg string) {
	_, _ = successColor.Printf("✓ %s\n", msg)
}

// PrintWarning prints a warning message with a warning symbol.
func PrintWarning(msg string) {
	_, _ = warningColor.Printf("⚠ %s\n", msg)
}

// PrintError prints an error message to stderr.
func PrintError(msg string) {
	_, _ = errorColor.Fprintf(os.Stderr, "✗ %s\n", msg)
}

// PrintItemOK prints one successful per-path operation.
func PrintItemOK(path string) {
	_, _ = successColor.Print("  ✓ ")
	fmt.Println(path)
}

// PrintItemFailed prints one failed per-path operation.
func PrintItemFailed(path string, err error) {
	_, _ = errorColor.Print("  ✗ ")
	fmt.Printf("%s: %v\n", path, err)
}

// PrintInfo prints a dimmed informational message.
func PrintInfo(msg string) {
	_, _ = dimColor.Printf("%s\n", msg)
}
