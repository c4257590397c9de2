// Package runner executes resolved hotkey commands.
//
// The engine hands the runner a command string and nothing else; the
// runner owns shell interpretation, process lifecycle, and error
// reporting. Execution is fire-and-forget so a slow command never stalls
// key matching.
package runner

import (
	"log/slog"
	"os/exec"
	"sync"
)

// Shell runs commands through a shell, detached from the engine loop.
type Shell struct {
	shell string
	log   *slog.Logger
}

// NewShell creates a runner that executes commands with the given shell
// binary ("sh" when empty).
func NewShell(shell string, log *slog.Logger) *Shell {
	if shell == "" {
		shell = "sh"
	}
	if log == nil {
		log = slog.Default()
	}
	return &Shell{shell: shell, log: log}
}

// Run starts the command and returns immediately.
//
// The spawned process is reaped in a background goroutine; exit status
// is logged under the fire token but never surfaced to the engine,
// since command failure is not a matching failure.
func (r *Shell) Run(token, command string) {
	cmd := exec.Command(r.shell, "-c", command)

	if err := cmd.Start(); err != nil {
		r.log.Error("command failed to start", "token", token, "command", command, "error", err)
		return
	}
	r.log.Debug("command started", "token", token, "pid", cmd.Process.Pid)

	go func() {
		if err := cmd.Wait(); err != nil {
			r.log.Warn("command exited with error", "token", token, "error", err)
			return
		}
		r.log.Debug("command exited", "token", token)
	}()
}

// Firing records one executed command for tests and replay output.
type Firing struct {
	Token   string
	Command string
}

// Recorder captures fired commands instead of executing them.
//
// Thread-safety: safe for concurrent use; the replay command reads
// firings after the engine loop has stopped.
type Recorder struct {
	mu      sync.Mutex
	firings []Firing
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Run records the firing.
func (r *Recorder) Run(token, command string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.firings = append(r.firings, Firing{Token: token, Command: command})
}

// Firings returns the recorded firings in order.
func (r *Recorder) Firings() []Firing {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Firing, len(r.firings))
	copy(out, r.firings)
	return out
}

// Commands returns just the command strings in firing order.
func (r *Recorder) Commands() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.firings))
	for i, f := range r.firings {
		out[i] = f.Command
	}
	return out
}
