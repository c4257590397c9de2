package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvall/chordd/internal/compiler"
)

// BindingDump is one compiled binding in a table dump.
type BindingDump struct {
	Chord     string `json:"chord"`
	Command   string `json:"command"`
	Send      bool   `json:"send,omitempty"`
	OnRelease bool   `json:"on_release,omitempty"`
	File      string `json:"file"`
	Line      int    `json:"line"`
}

// CompileResult holds a compiled binding table dump.
type CompileResult struct {
	Bindings    []BindingDump `json:"bindings"`
	Diagnostics []string      `json:"diagnostics,omitempty"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile <config>",
		Short: "Compile a configuration and dump the binding table",
		Long: `Compile a hotkey configuration and dump the resulting binding table.

Bindings are printed in definition order, which is also match order:
when several bindings share a chord, the first one fires.

Examples:
  chordd compile ~/.config/chordd/chordd.conf
  chordd compile ./chordd.conf --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runCompile(opts *RootOptions, path string, cmd *cobra.Command) error {
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

	result := CompileResult{
		Bindings:    dumpTable(loaded.Table),
		Diagnostics: diagnosticStrings(loaded.Diagnostics),
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	for _, b := range result.Bindings {
		fmt.Fprintf(formatter.Writer, "%s\t%s", b.Chord, b.Command)
		if b.Send {
			fmt.Fprint(formatter.Writer, "\t[send]")
		}
		fmt.Fprintf(formatter.Writer, "\t(%s:%d)\n", b.File, b.Line)
	}
	for _, d := range result.Diagnostics {
		fmt.Fprintf(formatter.Writer, "# %s\n", d)
	}
	return nil
}

// dumpTable renders bindings in definition order.
func dumpTable(table *compiler.Table) []BindingDump {
	dump := make([]BindingDump, 0, table.Len())
	for _, b := range table.Bindings() {
		dump = append(dump, BindingDump{
			Chord:     b.Chord.String(),
			Command:   b.Command,
			Send:      b.Send,
			OnRelease: b.Chord.OnRelease,
			File:      b.File,
			Line:      b.Line,
		})
	}
	return dump
}
