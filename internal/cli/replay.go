package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nvall/chordd/internal/compiler"
	"github.com/nvall/chordd/internal/config"
	"github.com/nvall/chordd/internal/engine"
	"github.com/nvall/chordd/internal/harness"
	"github.com/nvall/chordd/internal/runner"
)

// ReplayFiring is one fired command in a replay.
type ReplayFiring struct {
	Token   string `json:"token"`
	Command string `json:"command"`
}

// ReplayResult holds the outcome of replaying an event script.
type ReplayResult struct {
	Events      int            `json:"events"`
	Firings     []ReplayFiring `json:"firings"`
	Diagnostics []string       `json:"diagnostics,omitempty"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <config> <script>",
		Short: "Replay a key-event script and print fired commands",
		Long: `Replay a key-event script against a compiled configuration.

The script is a YAML list of event lines:

  - press super
  - press enter
  - release enter
  - reload

Commands are recorded, not executed, and printed in firing order with
deterministic fire tokens. A reload event recompiles the configuration
from disk.

Exit codes:
  0 - Script replayed
  1 - Configuration diagnostics reported
  2 - Command error (unreadable file, malformed script)

Examples:
  chordd replay ./chordd.conf ./script.yaml
  chordd replay ./chordd.conf ./script.yaml --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runReplay(opts *RootOptions, configPath, scriptPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	loaded, err := LoadConfig(configPath)
	if err != nil {
		_ = formatter.Error("load_failed", err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load configuration", err)
	}

	eventLines, err := loadScript(scriptPath)
	if err != nil {
		_ = formatter.Error("script_failed", err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load script", err)
	}

	events := make([]engine.Event, len(eventLines))
	for i, line := range eventLines {
		ev, parseErr := harness.ParseEvent(line)
		if parseErr != nil {
			_ = formatter.Error("script_failed", parseErr.Error(), nil)
			return WrapExitError(ExitCommandError, fmt.Sprintf("script event %d", i+1), parseErr)
		}
		events[i] = ev
	}

	rec := runner.NewRecorder()
	reload := func() (*compiler.Table, []config.Diagnostic, error) {
		reloaded, reloadErr := LoadConfig(configPath)
		if reloadErr != nil {
			return nil, nil, reloadErr
		}
		return reloaded.Table, reloaded.Diagnostics, nil
	}

	eng := engine.New(loaded.Table, rec,
		engine.WithReload(reload),
		engine.WithTokens(engine.NewFixedGenerator()),
	)
	for _, ev := range events {
		eng.Enqueue(ev)
	}
	eng.Close()
	if err := eng.Run(context.Background()); err != nil {
		return WrapExitError(ExitFailure, "replay failed", err)
	}

	result := ReplayResult{
		Events:      len(events),
		Firings:     make([]ReplayFiring, 0, len(rec.Firings())),
		Diagnostics: diagnosticStrings(loaded.Diagnostics),
	}
	for _, f := range rec.Firings() {
		result.Firings = append(result.Firings, ReplayFiring{Token: f.Token, Command: f.Command})
	}

	if formatter.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		for _, d := range result.Diagnostics {
			fmt.Fprintf(formatter.Writer, "# %s\n", d)
		}
		for _, f := range result.Firings {
			fmt.Fprintf(formatter.Writer, "%s %s\n", f.Token, f.Command)
		}
	}

	if len(result.Diagnostics) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("configuration has %d diagnostic(s)", len(result.Diagnostics)))
	}
	return nil
}

// loadScript reads a YAML event script: a list of event lines.
func loadScript(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var lines []string
	if err := yaml.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return lines, nil
}
