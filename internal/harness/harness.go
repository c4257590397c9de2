// Package harness executes YAML-defined key-event scenarios against the
// full compile-and-match pipeline and renders deterministic text traces
// for golden-file comparison.
//
// A scenario carries an inline configuration, a list of key events, and
// optionally a replacement configuration activated by a "reload" event.
// Running one compiles the configuration, drives the engine with a
// recording runner and fixed fire tokens, and captures every firing in
// order.
package harness

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nvall/chordd/internal/compiler"
	"github.com/nvall/chordd/internal/config"
	"github.com/nvall/chordd/internal/engine"
	"github.com/nvall/chordd/internal/runner"
)

// Scenario defines one conformance scenario.
type Scenario struct {
	// Name uniquely identifies the scenario; golden files are keyed on it.
	Name string `yaml:"name"`

	// Description explains what the scenario validates.
	Description string `yaml:"description,omitempty"`

	// Config is the inline hotkey configuration compiled before events run.
	Config string `yaml:"config"`

	// ReloadConfig, when set, replaces Config the first time a "reload"
	// event is processed. When empty, a reload recompiles Config itself.
	ReloadConfig string `yaml:"reload_config,omitempty"`

	// Events lists the key events to feed the engine, one per line in the
	// textual event syntax ("press super", "release w", "reload", "reset").
	Events []string `yaml:"events"`
}

// Result captures the outcome of a scenario run.
type Result struct {
	Scenario    *Scenario
	Table       *compiler.Table
	Diagnostics []config.Diagnostic
	Firings     []runner.Firing
}

// Load reads a scenario from a YAML file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: missing name", path)
	}
	return &s, nil
}

// Run compiles the scenario configuration and drives every event through
// the engine. Configuration diagnostics are collected, not fatal; only a
// malformed event line is an error.
func (s *Scenario) Run() (*Result, error) {
	events := make([]engine.Event, len(s.Events))
	for i, line := range s.Events {
		ev, err := ParseEvent(line)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i+1, err)
		}
		events[i] = ev
	}

	table, diags := compileInline(s.Config)

	rec := runner.NewRecorder()
	reload := func() (*compiler.Table, []config.Diagnostic, error) {
		src := s.Config
		if s.ReloadConfig != "" {
			src = s.ReloadConfig
		}
		t, d := compileInline(src)
		return t, d, nil
	}

	eng := engine.New(table, rec,
		engine.WithReload(reload),
		engine.WithTokens(engine.NewFixedGenerator()),
	)

	for _, ev := range events {
		eng.Enqueue(ev)
	}
	eng.Close()
	if err := eng.Run(context.Background()); err != nil {
		return nil, err
	}

	return &Result{
		Scenario:    s,
		Table:       table,
		Diagnostics: diags,
		Firings:     rec.Firings(),
	}, nil
}

// Trace renders the result as a deterministic text trace: the binding
// count, diagnostics, the event list, and every firing in order.
func (r *Result) Trace() string {
	var b strings.Builder

	fmt.Fprintf(&b, "scenario: %s\n", r.Scenario.Name)
	fmt.Fprintf(&b, "bindings: %d\n", r.Table.Len())
	for _, d := range r.Diagnostics {
		fmt.Fprintf(&b, "diagnostic: %s\n", d.Error())
	}

	b.WriteString("events:\n")
	for _, ev := range r.Scenario.Events {
		fmt.Fprintf(&b, "  %s\n", strings.TrimSpace(ev))
	}

	b.WriteString("firings:\n")
	for _, f := range r.Firings {
		fmt.Fprintf(&b, "  %s %s\n", f.Token, f.Command)
	}

	return b.String()
}

// compileInline lexes and compiles an inline configuration under a
// synthetic file name.
func compileInline(contents string) (*compiler.Table, []config.Diagnostic) {
	lines, lexDiags := config.Lex("scenario.conf", contents)
	table, compileDiags := compiler.Compile(lines)
	return table, append(lexDiags, compileDiags...)
}
