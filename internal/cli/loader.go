package cli

import (
	"github.com/nvall/chordd/internal/compiler"
	"github.com/nvall/chordd/internal/config"
)

// LoadResult contains the outcome of loading a configuration tree.
type LoadResult struct {
	Table       *compiler.Table
	Diagnostics []config.Diagnostic
	Files       []config.File
}

// LoadConfig runs the whole front half of the daemon: load the root
// file and its includes, lex every file, and compile the binding table.
//
// Diagnostics are collected, not fatal: a partially valid configuration
// still produces a table with its valid bindings. Only an unreadable
// root file is an error.
func LoadConfig(path string) (*LoadResult, error) {
	files, loadDiags, err := config.LoadTree(path)
	if err != nil {
		return nil, err
	}

	lines, lexDiags := config.LexTree(files)
	table, compileDiags := compiler.Compile(lines)

	diags := append(loadDiags, lexDiags...)
	diags = append(diags, compileDiags...)

	return &LoadResult{
		Table:       table,
		Diagnostics: diags,
		Files:       files,
	}, nil
}

// diagnosticStrings renders diagnostics for output payloads.
func diagnosticStrings(diags []config.Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Error()
	}
	return out
}
