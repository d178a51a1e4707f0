package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"numdoc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "numdoc",
	Short: "numpydoc-style docstring linter for Python sources",
	Long:  `numdoc checks Python docstrings against the numpydoc conventions and reports composable, positioned diagnostics`,
}

// errDiagnosticsFound distinguishes "the lint ran and found issues" (exit 1)
// from usage and I/O failures (exit 2).
var errDiagnosticsFound = errors.New("diagnostics found")

func main() {
	rootCmd.Version = version.Version
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(codesCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum diagnostics to show per file (0=unlimited)")

	err := rootCmd.Execute()
	switch {
	case err == nil:
	case errors.Is(err, errDiagnosticsFound):
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
}

// isTerminal reports whether the file is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color persistent flag against the output stream.
func useColor(cmd *cobra.Command, out *os.File) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return isTerminal(out), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}
