package engine

import (
	"github.com/nvall/chordd/internal/compiler"
	"github.com/nvall/chordd/internal/keysym"
)

// matchPress resolves a press event against the table.
//
// A binding matches when its chord's modifiers are a subset of the held
// modifier set (extra held modifiers never block), its trigger equals
// the just-pressed key, and it is not release-triggered. Bindings are
// checked in definition order and the first match wins; at most one
// command fires per press.
//
// A repeat press (key still down, OS auto-repeat) only matches bindings
// that opt into repeat.
func matchPress(table *compiler.Table, code keysym.Code, held keysym.Modifier, repeat bool) (compiler.Binding, bool) {
	for _, b := range table.Bindings() {
		if b.Chord.OnRelease {
			continue
		}
		if b.Chord.Trigger != code {
			continue
		}
		if !held.Has(b.Chord.Modifiers) {
			continue
		}
		if repeat && !b.Repeat {
			continue
		}
		return b, true
	}
	return compiler.Binding{}, false
}

// matchRelease resolves a release event against the table.
//
// Only release-triggered bindings are considered; the modifier subset
// test uses the modifier set recorded when the released key went down,
// so releasing the modifiers first does not defeat the binding.
func matchRelease(table *compiler.Table, code keysym.Code, atPress keysym.Modifier) (compiler.Binding, bool) {
	for _, b := range table.Bindings() {
		if !b.Chord.OnRelease {
			continue
		}
		if b.Chord.Trigger != code {
			continue
		}
		if !atPress.Has(b.Chord.Modifiers) {
			continue
		}
		return b, true
	}
	return compiler.Binding{}, false
}
