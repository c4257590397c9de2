package keysym

import "strings"

// Modifier is a bitmask of held modifier keys.
//
// A chord stores the modifiers it requires; the tracker reports the
// modifiers currently held. Subset tests are single AND operations.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModSuper is the Super key (Meta, Win, Cmd).
	ModSuper Modifier = 1 << iota

	// ModAlt is the Alt key.
	ModAlt

	// ModControl is the Control key.
	ModControl

	// ModShift is the Shift key.
	ModShift
)

// modifierNames maps lower-cased configuration tokens to modifiers.
// Aliases resolve to one canonical modifier: "mod4", "meta", "win" and
// "cmd" are all Super; "mod1" is Alt; "control" is Ctrl.
var modifierNames = map[string]Modifier{
	"super": ModSuper,
	"mod4":  ModSuper,
	"meta":  ModSuper,
	"win":   ModSuper,
	"cmd":   ModSuper,

	"alt":  ModAlt,
	"mod1": ModAlt,

	"ctrl":    ModControl,
	"control": ModControl,

	"shift": ModShift,
}

// modifierCodes maps the physical modifier keys to their canonical
// modifier. Left and right variants collapse to the same bit.
var modifierCodes = map[Code]Modifier{
	KeyLeftMeta:   ModSuper,
	KeyRightMeta:  ModSuper,
	KeyLeftAlt:    ModAlt,
	KeyRightAlt:   ModAlt,
	KeyLeftCtrl:   ModControl,
	KeyRightCtrl:  ModControl,
	KeyLeftShift:  ModShift,
	KeyRightShift: ModShift,
}

// ResolveModifier looks up a configuration token case-insensitively.
// Returns ModNone and false for tokens that are not modifier names.
func ResolveModifier(name string) (Modifier, bool) {
	mod, ok := modifierNames[strings.ToLower(strings.TrimSpace(name))]
	return mod, ok
}

// ModifierOf reports the modifier a physical key contributes while held.
// Non-modifier keys return ModNone and false.
func ModifierOf(code Code) (Modifier, bool) {
	mod, ok := modifierCodes[code]
	return mod, ok
}

// ModifierKey resolves a modifier name to its canonical left-hand
// physical key, for event sources that speak names rather than codes.
func ModifierKey(name string) (Code, bool) {
	mod, ok := ResolveModifier(name)
	if !ok {
		return CodeNone, false
	}
	switch mod {
	case ModSuper:
		return KeyLeftMeta, true
	case ModAlt:
		return KeyLeftAlt, true
	case ModControl:
		return KeyLeftCtrl, true
	case ModShift:
		return KeyLeftShift, true
	default:
		return CodeNone, false
	}
}

// IsModifierCode reports whether the key is a physical modifier key.
func IsModifierCode(code Code) bool {
	_, ok := modifierCodes[code]
	return ok
}

// Has returns true if m contains all bits of mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod == mod
}

// With returns m with mod added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// String returns the canonical "super+ctrl+shift" spelling.
// Order is fixed (super, alt, ctrl, shift) regardless of source order.
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}
	var parts []string
	if m.Has(ModSuper) {
		parts = append(parts, "super")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "alt")
	}
	if m.Has(ModControl) {
		parts = append(parts, "ctrl")
	}
	if m.Has(ModShift) {
		parts = append(parts, "shift")
	}
	return strings.Join(parts, "+")
}
