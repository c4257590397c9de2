package compiler

import (
	"fmt"
	"strings"

	"github.com/nvall/chordd/internal/config"
	"github.com/nvall/chordd/internal/expand"
	"github.com/nvall/chordd/internal/keysym"
)

// Prefixes marking a chord token. '@' fires the binding on release,
// '~' additionally forwards the event to the focused client.
const (
	prefixOnRelease = '@'
	prefixSend      = '~'
)

// Compile builds a binding table from lexed configuration lines.
//
// Each definition line pairs with the command body that follows it, one
// or more consecutive command lines; both sides are brace-expanded and
// paired positionally. Problems are
// collected as diagnostics and never abort the compile: a bad block or
// binding is dropped and everything else still activates.
func Compile(lines []config.Line) (*Table, []config.Diagnostic) {
	var (
		bindings []Binding
		diags    []config.Diagnostic
	)

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		switch line.Type {
		case config.LineStatement:
			// Includes were resolved by the loader.
			continue

		case config.LineCommand:
			diags = append(diags, config.Diagnostic{
				Kind:    config.KindCompile,
				File:    line.File,
				Line:    line.Number,
				Message: "command line without a hotkey definition",
			})
			continue

		case config.LineKey:
			if i+1 >= len(lines) || lines[i+1].Type != config.LineCommand {
				diags = append(diags, config.Diagnostic{
					Kind:    config.KindCompile,
					File:    line.File,
					Line:    line.Number,
					Message: "hotkey definition without a command",
				})
				continue
			}
			command := lines[i+1]
			i++
			// A body is every consecutive command line; multi-line
			// bodies join with newlines and run as one shell script.
			for i+1 < len(lines) && lines[i+1].Type == config.LineCommand {
				i++
				command.Content += "\n" + lines[i].Content
			}

			compiled, blockDiags := compileBlock(line, command)
			bindings = append(bindings, compiled...)
			diags = append(diags, blockDiags...)
		}
	}

	return NewTable(bindings), diags
}

// compileBlock expands one (hotkey, command) pair and compiles every
// resulting concrete binding.
func compileBlock(key, command config.Line) ([]Binding, []config.Diagnostic) {
	hotkeys, err := expand.Expand(key.Content)
	if err != nil {
		return nil, []config.Diagnostic{{
			Kind:    config.KindExpansion,
			File:    key.File,
			Line:    key.Number,
			Message: err.Error(),
		}}
	}

	commands, err := expand.Expand(command.Content)
	if err != nil {
		return nil, []config.Diagnostic{{
			Kind:    config.KindExpansion,
			File:    command.File,
			Line:    command.Number,
			Message: err.Error(),
		}}
	}

	if len(hotkeys) != len(commands) {
		return nil, []config.Diagnostic{{
			Kind: config.KindExpansion,
			File: key.File,
			Line: key.Number,
			Message: fmt.Sprintf(
				"hotkey expands to %d variants but command expands to %d",
				len(hotkeys), len(commands)),
		}}
	}

	var (
		bindings []Binding
		diags    []config.Diagnostic
	)
	for n, hotkey := range hotkeys {
		binding, err := compileBinding(hotkey, commands[n])
		if err != nil {
			diags = append(diags, config.Diagnostic{
				Kind:    config.KindCompile,
				File:    key.File,
				Line:    key.Number,
				Message: fmt.Sprintf("%q: %v", hotkey, err),
			})
			continue
		}
		binding.File = key.File
		binding.Line = key.Number
		bindings = append(bindings, binding)
	}
	return bindings, diags
}

// compileBinding parses one concrete hotkey string into a binding.
//
// Tokens are split on '+', trimmed, and case-folded. Modifier names
// (including aliases) accumulate into the modifier set; exactly one
// remaining token must resolve to a key, which becomes the trigger.
// Empty tokens (left behind by an elided expansion alternative) are
// skipped. The command is attached verbatim.
func compileBinding(hotkey, command string) (Binding, error) {
	var binding Binding

	for _, token := range strings.Split(hotkey, "+") {
		token = strings.TrimSpace(token)

		for len(token) > 0 {
			if token[0] == prefixOnRelease {
				binding.Chord.OnRelease = true
			} else if token[0] == prefixSend {
				binding.Send = true
			} else {
				break
			}
			token = strings.TrimSpace(token[1:])
		}
		if token == "" {
			continue
		}

		if mod, ok := keysym.ResolveModifier(token); ok {
			binding.Chord.Modifiers = binding.Chord.Modifiers.With(mod)
			continue
		}

		code, ok := keysym.Resolve(token)
		if !ok {
			return Binding{}, fmt.Errorf("unknown key name %q", token)
		}
		if binding.Chord.Trigger != keysym.CodeNone {
			return Binding{}, fmt.Errorf("multiple trigger keys (%q and %q)",
				binding.Chord.Trigger.Name(), token)
		}
		binding.Chord.Trigger = code
	}

	if binding.Chord.Trigger == keysym.CodeNone {
		return Binding{}, fmt.Errorf("no trigger key")
	}

	binding.Command = command
	return binding, nil
}
