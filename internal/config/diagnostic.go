package config

import "fmt"

// Kind categorizes configuration diagnostics.
type Kind int

const (
	// KindLex is a line-level problem (malformed continuation).
	KindLex Kind = iota + 1
	// KindExpansion is a brace-expansion problem (unterminated group,
	// mismatched alternative counts between a hotkey and its command).
	KindExpansion
	// KindCompile is a binding-level problem (unknown key name, zero or
	// multiple trigger keys).
	KindCompile
)

// String returns the diagnostic category name.
func (k Kind) String() string {
	switch k {
	case KindLex:
		return "lex"
	case KindExpansion:
		return "expansion"
	case KindCompile:
		return "compile"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Diagnostic records one recoverable configuration problem.
//
// Diagnostics never abort a load: the affected line, block, or binding is
// dropped and every other binding still activates. Callers aggregate them
// for reporting.
type Diagnostic struct {
	Kind    Kind
	File    string
	Line    int
	Message string
}

// Error implements the error interface so diagnostics can be logged or
// wrapped uniformly.
func (d Diagnostic) Error() string {
	if d.File != "" {
		return fmt.Sprintf("%s:%d: %s: %s", d.File, d.Line, d.Kind, d.Message)
	}
	return fmt.Sprintf("line %d: %s: %s", d.Line, d.Kind, d.Message)
}
