// Package keysym defines the key codes and modifier set used by the
// binding compiler and the matching engine.
//
// Codes follow the Linux input-event numbering so that an event source
// reading from an input device can hand codes to the engine without
// translation. The engine itself treats codes as opaque: an unknown code
// simply never matches any binding.
package keysym

import "strings"

// Code identifies a physical key. Values follow Linux input-event codes.
type Code uint16

// CodeNone is the zero Code. No binding ever has it as a trigger.
const CodeNone Code = 0

const (
	KeyEscape    Code = 1
	Key1         Code = 2
	Key2         Code = 3
	Key3         Code = 4
	Key4         Code = 5
	Key5         Code = 6
	Key6         Code = 7
	Key7         Code = 8
	Key8         Code = 9
	Key9         Code = 10
	Key0         Code = 11
	KeyMinus     Code = 12
	KeyEqual     Code = 13
	KeyBackspace Code = 14
	KeyTab       Code = 15

	KeyQ          Code = 16
	KeyW          Code = 17
	KeyE          Code = 18
	KeyR          Code = 19
	KeyT          Code = 20
	KeyY          Code = 21
	KeyU          Code = 22
	KeyI          Code = 23
	KeyO          Code = 24
	KeyP          Code = 25
	KeyLeftBrace  Code = 26
	KeyRightBrace Code = 27
	KeyEnter      Code = 28
	KeyLeftCtrl   Code = 29

	KeyA          Code = 30
	KeyS          Code = 31
	KeyD          Code = 32
	KeyF          Code = 33
	KeyG          Code = 34
	KeyH          Code = 35
	KeyJ          Code = 36
	KeyK          Code = 37
	KeyL          Code = 38
	KeySemicolon  Code = 39
	KeyApostrophe Code = 40
	KeyGrave      Code = 41
	KeyLeftShift  Code = 42
	KeyBackslash  Code = 43

	KeyZ          Code = 44
	KeyX          Code = 45
	KeyC          Code = 46
	KeyV          Code = 47
	KeyB          Code = 48
	KeyN          Code = 49
	KeyM          Code = 50
	KeyComma      Code = 51
	KeyDot        Code = 52
	KeySlash      Code = 53
	KeyRightShift Code = 54
	KeyKPAsterisk Code = 55
	KeyLeftAlt    Code = 56
	KeySpace      Code = 57
	KeyCapsLock   Code = 58

	KeyF1  Code = 59
	KeyF2  Code = 60
	KeyF3  Code = 61
	KeyF4  Code = 62
	KeyF5  Code = 63
	KeyF6  Code = 64
	KeyF7  Code = 65
	KeyF8  Code = 66
	KeyF9  Code = 67
	KeyF10 Code = 68

	KeyNumLock    Code = 69
	KeyScrollLock Code = 70
	KeyKPMinus    Code = 74
	KeyKPPlus     Code = 78
	KeyF11        Code = 87
	KeyF12        Code = 88

	KeyKPEnter   Code = 96
	KeyRightCtrl Code = 97
	KeyKPSlash   Code = 98
	KeySysRq     Code = 99
	KeyRightAlt  Code = 100

	KeyHome     Code = 102
	KeyUp       Code = 103
	KeyPageUp   Code = 104
	KeyLeft     Code = 105
	KeyRight    Code = 106
	KeyEnd      Code = 107
	KeyDown     Code = 108
	KeyPageDown Code = 109
	KeyInsert   Code = 110
	KeyDelete   Code = 111

	KeyMute       Code = 113
	KeyVolumeDown Code = 114
	KeyVolumeUp   Code = 115
	KeyPause      Code = 119

	KeyLeftMeta  Code = 125
	KeyRightMeta Code = 126

	KeyBrightnessDown Code = 224
	KeyBrightnessUp   Code = 225
)

// names maps lower-cased configuration token to key code.
//
// Synonyms resolve to the same code ("enter"/"return", "period"/"dot").
// Single-character punctuation is included so that an expanded alternative
// like "," or "." resolves without a named spelling.
var names = map[string]Code{
	"escape": KeyEscape,
	"esc":    KeyEscape,

	"1": Key1, "2": Key2, "3": Key3, "4": Key4, "5": Key5,
	"6": Key6, "7": Key7, "8": Key8, "9": Key9, "0": Key0,

	"minus": KeyMinus, "-": KeyMinus,
	"equal": KeyEqual, "=": KeyEqual,
	"backspace": KeyBackspace,
	"tab":       KeyTab,

	"q": KeyQ, "w": KeyW, "e": KeyE, "r": KeyR, "t": KeyT,
	"y": KeyY, "u": KeyU, "i": KeyI, "o": KeyO, "p": KeyP,
	"a": KeyA, "s": KeyS, "d": KeyD, "f": KeyF, "g": KeyG,
	"h": KeyH, "j": KeyJ, "k": KeyK, "l": KeyL,
	"z": KeyZ, "x": KeyX, "c": KeyC, "v": KeyV, "b": KeyB,
	"n": KeyN, "m": KeyM,

	"bracketleft": KeyLeftBrace, "[": KeyLeftBrace,
	"bracketright": KeyRightBrace, "]": KeyRightBrace,
	"enter":  KeyEnter,
	"return": KeyEnter,

	"semicolon": KeySemicolon, ";": KeySemicolon,
	"apostrophe": KeyApostrophe, "'": KeyApostrophe,
	"grave": KeyGrave, "`": KeyGrave,
	"backslash": KeyBackslash, "\\": KeyBackslash,

	"comma": KeyComma, ",": KeyComma,
	"period": KeyDot, "dot": KeyDot, ".": KeyDot,
	"slash": KeySlash, "/": KeySlash,

	"space":    KeySpace,
	"capslock": KeyCapsLock,

	"f1": KeyF1, "f2": KeyF2, "f3": KeyF3, "f4": KeyF4,
	"f5": KeyF5, "f6": KeyF6, "f7": KeyF7, "f8": KeyF8,
	"f9": KeyF9, "f10": KeyF10, "f11": KeyF11, "f12": KeyF12,

	"numlock":     KeyNumLock,
	"scrolllock":  KeyScrollLock,
	"kpminus":     KeyKPMinus,
	"kpplus":      KeyKPPlus,
	"kpasterisk":  KeyKPAsterisk,
	"kpslash":     KeyKPSlash,
	"kpenter":     KeyKPEnter,
	"print":       KeySysRq,
	"printscreen": KeySysRq,

	"home": KeyHome, "end": KeyEnd,
	"pageup": KeyPageUp, "pagedown": KeyPageDown,
	"up": KeyUp, "down": KeyDown, "left": KeyLeft, "right": KeyRight,
	"insert": KeyInsert, "delete": KeyDelete,

	"pause": KeyPause,

	"xf86audiomute":         KeyMute,
	"xf86audiolowervolume":  KeyVolumeDown,
	"xf86audioraisevolume":  KeyVolumeUp,
	"xf86monbrightnessdown": KeyBrightnessDown,
	"xf86monbrightnessup":   KeyBrightnessUp,
}

// codeNames is the canonical spelling per code, for diagnostics and the
// compiled-table dump. Built once from the names table; synonyms pick the
// longest spelling so punctuation dumps as "comma" rather than ",".
var codeNames = func() map[Code]string {
	m := make(map[Code]string, len(names))
	for name, code := range names {
		if prev, ok := m[code]; ok && len(prev) >= len(name) {
			continue
		}
		m[code] = name
	}
	// Pinned where the longest spelling is the wrong canonical one.
	m[KeyEnter] = "enter"
	m[KeySysRq] = "print"
	return m
}()

// Resolve looks up a configuration token case-insensitively.
// Returns CodeNone and false for unknown names.
func Resolve(name string) (Code, bool) {
	code, ok := names[strings.ToLower(strings.TrimSpace(name))]
	return code, ok
}

// Name returns the canonical configuration spelling for a code.
// Unknown codes return "".
func (c Code) Name() string {
	return codeNames[c]
}
