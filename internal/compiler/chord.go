// Package compiler turns lexed configuration lines into the binding
// table the matching engine runs against.
//
// Compilation is total over the input: every problem is collected as a
// diagnostic and the affected line, block, or binding is dropped, so a
// partially valid configuration still yields a usable table.
package compiler

import (
	"fmt"
	"strings"

	"github.com/nvall/chordd/internal/keysym"
)

// Chord is a compiled modifier set plus exactly one trigger key.
//
// INVARIANTS:
//   - Trigger is never a modifier key (modifier names classify as
//     modifiers before key lookup runs)
//   - duplicate modifiers in source collapse to one (bitmask)
type Chord struct {
	Modifiers keysym.Modifier
	Trigger   keysym.Code

	// OnRelease marks a binding that fires when the trigger is released
	// rather than pressed ('@' prefix).
	OnRelease bool
}

// String returns the canonical "super+shift+w" spelling, with an '@'
// prefix for release-triggered chords.
func (c Chord) String() string {
	var b strings.Builder
	if c.OnRelease {
		b.WriteByte('@')
	}
	if mods := c.Modifiers.String(); mods != "" {
		b.WriteString(mods)
		b.WriteByte('+')
	}
	if name := c.Trigger.Name(); name != "" {
		b.WriteString(name)
	} else {
		fmt.Fprintf(&b, "key(%d)", uint16(c.Trigger))
	}
	return b.String()
}

// Binding pairs a compiled chord with the concrete command it triggers.
type Binding struct {
	Chord   Chord
	Command string

	// Send marks a passthrough binding ('~' prefix): the input
	// collaborator should forward the matched event to the focused
	// client as well as running the command.
	Send bool

	// Repeat opts the binding into firing on OS key-repeat. The observed
	// grammar has no spelling for it, so compiled bindings always start
	// with repeat suppression on.
	Repeat bool

	// File and Line locate the definition for diagnostics and dumps.
	File string
	Line int
}

// Table is the ordered, immutable collection of compiled bindings.
//
// Definition order is load-bearing: when several bindings share a chord,
// the matcher fires the first and stops. A reload builds a fresh Table
// and swaps it in whole; an existing Table is never mutated.
type Table struct {
	bindings []Binding
}

// NewTable builds a table from bindings in definition order.
// The slice is copied so later caller mutation cannot reorder matching.
func NewTable(bindings []Binding) *Table {
	copied := make([]Binding, len(bindings))
	copy(copied, bindings)
	return &Table{bindings: copied}
}

// Bindings returns the bindings in definition order.
// The returned slice is shared: callers must not modify it.
func (t *Table) Bindings() []Binding {
	return t.bindings
}

// Len returns the number of compiled bindings.
func (t *Table) Len() int {
	return len(t.bindings)
}
