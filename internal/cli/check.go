package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// CheckResult holds configuration check results.
type CheckResult struct {
	Valid       bool     `json:"valid"`
	Bindings    int      `json:"bindings"`
	Files       int      `json:"files"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <config>",
		Short: "Check a configuration without starting the daemon",
		Long: `Check a hotkey configuration without starting the daemon.

Loads the configuration and every file it includes, lexes and compiles
all bindings, and reports every diagnostic found.

Exit codes:
  0 - Configuration compiles cleanly
  1 - Diagnostics reported (dropped lines, blocks, or bindings)
  2 - Command error (unreadable configuration file)

Examples:
  chordd check ~/.config/chordd/chordd.conf
  chordd check ./chordd.conf --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runCheck(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		_ = formatter.Error("load_failed", err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load configuration", err)
	}

	formatter.VerboseLog("Loaded %d file(s)", len(loaded.Files))

	result := CheckResult{
		Valid:       len(loaded.Diagnostics) == 0,
		Bindings:    loaded.Table.Len(),
		Files:       len(loaded.Files),
		Diagnostics: diagnosticStrings(loaded.Diagnostics),
	}

	if formatter.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else if result.Valid {
		fmt.Fprintf(formatter.Writer, "✓ %d binding(s) from %d file(s)\n", result.Bindings, result.Files)
	} else {
		fmt.Fprintf(formatter.Writer, "✗ %d diagnostic(s), %d binding(s) survive\n", len(result.Diagnostics), result.Bindings)
		for _, d := range result.Diagnostics {
			fmt.Fprintf(formatter.Writer, "  %s\n", d)
		}
	}

	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("configuration has %d diagnostic(s)", len(result.Diagnostics)))
	}
	return nil
}
