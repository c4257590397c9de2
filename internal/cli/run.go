package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nvall/chordd/internal/compiler"
	"github.com/nvall/chordd/internal/config"
	"github.com/nvall/chordd/internal/engine"
	"github.com/nvall/chordd/internal/harness"
	"github.com/nvall/chordd/internal/runner"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Shell string
	Watch bool
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <config>",
		Short: "Start the hotkey daemon",
		Long: `Start the hotkey daemon with a compiled configuration.

The daemon reads key events from stdin, one per line ("press super",
"release w", "reload", "reset"), matches them against the compiled
binding table, and executes matched commands through the shell.

SIGUSR1 requests a reload; with --watch, editing the configuration or
any included file does too. SIGINT and SIGTERM stop the daemon.

Examples:
  chordd run ~/.config/chordd/chordd.conf
  chordd run ./chordd.conf --shell /bin/bash --verbose`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Shell, "shell", "", "shell for command execution (default $SHELL, else sh)")
	cmd.Flags().BoolVar(&opts.Watch, "watch", true, "reload when configuration files change")

	return cmd
}

func runDaemon(opts *RunOptions, configPath string, cmd *cobra.Command) error {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})
	log := slog.New(handler)
	slog.SetDefault(log)

	log.Info("loading configuration", "path", configPath)
	loaded, err := LoadConfig(configPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load configuration", err)
	}
	for _, d := range loaded.Diagnostics {
		log.Warn("config diagnostic", "kind", d.Kind.String(), "detail", d.Error())
	}
	log.Info("configuration compiled", "bindings", loaded.Table.Len(), "files", len(loaded.Files))

	shell := opts.Shell
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "sh"
	}

	reload := func() (*compiler.Table, []config.Diagnostic, error) {
		reloaded, reloadErr := LoadConfig(configPath)
		if reloadErr != nil {
			return nil, nil, reloadErr
		}
		return reloaded.Table, reloaded.Diagnostics, nil
	}

	eng := engine.New(loaded.Table, runner.NewShell(shell, log),
		engine.WithReload(reload),
		engine.WithLogger(log),
	)

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stopChan)

	reloadChan := make(chan os.Signal, 1)
	signal.Notify(reloadChan, syscall.SIGUSR1)
	defer signal.Stop(reloadChan)

	go func() {
		for {
			select {
			case sig := <-stopChan:
				log.Info("received signal, shutting down", "signal", sig)
				cancel()
				return
			case <-reloadChan:
				log.Info("received SIGUSR1, reloading")
				eng.RequestReload()
			case <-ctx.Done():
				return
			}
		}
	}()

	if opts.Watch {
		watcher, watchErr := config.NewWatcher(loaded.Files, log)
		if watchErr != nil {
			return WrapExitError(ExitCommandError, "failed to watch configuration", watchErr)
		}
		defer watcher.Close()

		go func() {
			for {
				select {
				case _, ok := <-watcher.Reloads():
					if !ok {
						return
					}
					log.Info("configuration changed, reloading")
					eng.RequestReload()
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go readEvents(ctx, cmd, eng, log)

	fmt.Fprintln(cmd.OutOrStdout(), "Daemon started. Reading key events from stdin.")
	fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl-C to stop.")

	if err := eng.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return WrapExitError(ExitFailure, "engine error", err)
	}

	log.Info("daemon stopped")
	return nil
}

// readEvents feeds the engine from the command's stdin until EOF or
// cancellation. Malformed lines are logged and skipped so a typo cannot
// kill the daemon.
func readEvents(ctx context.Context, cmd *cobra.Command, eng *engine.Engine, log *slog.Logger) {
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := scanner.Text()
		if line == "" {
			continue
		}

		ev, err := harness.ParseEvent(line)
		if err != nil {
			log.Warn("ignoring malformed event", "line", line, "error", err)
			continue
		}
		if !eng.Enqueue(ev) {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		log.Warn("event source closed", "error", err)
	}
}
