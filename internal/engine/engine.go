// Package engine is the runtime half of the daemon: it owns the pressed
// key state, matches incoming key events against the compiled binding
// table, and hands matched commands to a runner.
package engine

import (
	"context"
	"log/slog"

	"github.com/nvall/chordd/internal/compiler"
	"github.com/nvall/chordd/internal/config"
	"github.com/nvall/chordd/internal/keysym"
)

// CommandRunner executes a resolved command string.
//
// Run must not block: command execution is fire-and-forget, and a slow
// command must never stall key matching. The token correlates the firing
// with the runner's own logs.
type CommandRunner interface {
	Run(token, command string)
}

// ReloadFunc recompiles the configuration into a fresh table.
// Returning an error keeps the previous table active.
type ReloadFunc func() (*compiler.Table, []config.Diagnostic, error)

// Engine is the single-writer event loop.
//
// CRITICAL: All mutation (the tracker and the active table pointer)
// happens in the Run loop goroutine. External callers use Enqueue() (or
// the typed helpers) to submit events; each event's tracker update and
// match resolution completes before the next event is considered, and a
// reload swaps the whole table between events, never mid-match.
//
// Thread-safety model:
//   - Enqueue / Key / RequestReload / RequestReset: any goroutine
//   - Run: exactly one goroutine
type Engine struct {
	table   *compiler.Table
	tracker *Tracker
	queue   *eventQueue
	runner  CommandRunner
	reload  ReloadFunc
	tokens  FireTokenGenerator
	log     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithReload installs the recompilation callback used for reload events.
func WithReload(fn ReloadFunc) Option {
	return func(e *Engine) { e.reload = fn }
}

// WithTokens overrides the fire-token generator (deterministic tests).
func WithTokens(g FireTokenGenerator) Option {
	return func(e *Engine) { e.tokens = g }
}

// WithLogger overrides the logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New creates an Engine over a compiled table and a command runner.
func New(table *compiler.Table, runner CommandRunner, opts ...Option) *Engine {
	e := &Engine{
		table:   table,
		tracker: NewTracker(),
		queue:   newEventQueue(),
		runner:  runner,
		tokens:  UUIDv7Generator{},
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enqueue submits an event for processing by the Run loop.
// Thread-safe. Returns false if the engine has been closed.
func (e *Engine) Enqueue(ev Event) bool {
	return e.queue.Enqueue(ev)
}

// Key submits a key event.
func (e *Engine) Key(code keysym.Code, transition Transition) bool {
	return e.Enqueue(Event{Type: EventTypeKey, Key: KeyEvent{Code: code, Transition: transition}})
}

// RequestReload asks the Run loop to recompile and swap the table.
func (e *Engine) RequestReload() bool {
	return e.Enqueue(Event{Type: EventTypeReload})
}

// RequestReset asks the Run loop to clear tracked key state.
func (e *Engine) RequestReset() bool {
	return e.Enqueue(Event{Type: EventTypeReset})
}

// Close stops the queue; Run drains remaining events and returns.
func (e *Engine) Close() {
	e.queue.Close()
}

// Table returns the active binding table.
// Single-writer: only safe from the Run goroutine or after Run returns.
func (e *Engine) Table() *compiler.Table {
	return e.table
}

// Run starts the single-writer event loop.
// Blocks until the context is cancelled or Close() is called and the
// queue drains.
//
// Matching is a pure read of the table and the tracked key state: it
// cannot fail, and unknown key codes simply never match.
func (e *Engine) Run(ctx context.Context) error {
	e.log.Info("engine starting", "bindings", e.table.Len())

	for {
		event, ok := e.queue.TryDequeue()
		if ok {
			e.processEvent(event)
			continue
		}

		select {
		case <-ctx.Done():
			e.log.Info("engine stopping: context cancelled")
			e.queue.Close()
			return ctx.Err()

		case <-e.queue.Wait():
			// Signal received - loop back to TryDequeue. An availability
			// token can go stale (left by an enqueue that landed while a
			// burst was being drained), so an empty queue alone never
			// means shutdown; only a closed queue does. The signal
			// channel closes when the queue closes, so this case fires
			// immediately once Close is called.
			if e.queue.Closed() && e.queue.Len() == 0 {
				e.log.Info("engine stopping: queue closed")
				return nil
			}
		}
	}
}

func (e *Engine) processEvent(event Event) {
	switch event.Type {
	case EventTypeKey:
		e.processKey(event.Key)
	case EventTypeReload:
		e.processReload()
	case EventTypeReset:
		e.log.Debug("resetting key state", "held", len(e.tracker.Snapshot()))
		e.tracker.Reset()
	}
}

func (e *Engine) processKey(ev KeyEvent) {
	var (
		binding compiler.Binding
		matched bool
	)

	switch ev.Transition {
	case Press:
		repeat := e.tracker.Press(ev.Code)
		binding, matched = matchPress(e.table, ev.Code, e.tracker.Held(), repeat)
	case Release:
		atPress, wasDown := e.tracker.Release(ev.Code)
		if !wasDown {
			return
		}
		binding, matched = matchRelease(e.table, ev.Code, atPress)
	default:
		return
	}

	if !matched {
		return
	}

	token := e.tokens.Generate()
	e.log.Debug("binding fired",
		"token", token,
		"chord", binding.Chord.String(),
		"send", binding.Send,
		"command", binding.Command,
	)
	e.runner.Run(token, binding.Command)
}

// processReload recompiles and swaps the table. On failure the previous
// table stays active; diagnostics from a successful compile are logged
// but do not block the swap (a partially valid configuration still
// activates its valid bindings).
func (e *Engine) processReload() {
	if e.reload == nil {
		e.log.Warn("reload requested but no reload function configured")
		return
	}

	table, diags, err := e.reload()
	if err != nil {
		e.log.Error("reload failed, keeping previous bindings", "error", err)
		return
	}
	for _, d := range diags {
		e.log.Warn("config diagnostic", "kind", d.Kind.String(), "detail", d.Error())
	}

	e.table = table
	e.log.Info("configuration reloaded", "bindings", table.Len(), "diagnostics", len(diags))
}
