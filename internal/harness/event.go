package harness

import (
	"fmt"
	"strings"

	"github.com/nvall/chordd/internal/engine"
	"github.com/nvall/chordd/internal/keysym"
)

// ParseEvent parses one line of the textual event syntax used by
// scenarios, replay scripts, and the daemon's stdin event source:
//
//	press <key>      key goes down
//	release <key>    key comes up
//	reload           recompile the configuration
//	reset            clear tracked key state
//
// Key names use the configuration spelling (modifier names included,
// since modifiers arrive as ordinary key events).
func ParseEvent(line string) (engine.Event, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return engine.Event{}, fmt.Errorf("empty event line")
	}

	switch fields[0] {
	case "reload":
		if len(fields) != 1 {
			return engine.Event{}, fmt.Errorf("reload takes no arguments: %q", line)
		}
		return engine.Event{Type: engine.EventTypeReload}, nil

	case "reset":
		if len(fields) != 1 {
			return engine.Event{}, fmt.Errorf("reset takes no arguments: %q", line)
		}
		return engine.Event{Type: engine.EventTypeReset}, nil

	case "press", "release":
		if len(fields) != 2 {
			return engine.Event{}, fmt.Errorf("%s takes exactly one key name: %q", fields[0], line)
		}
		code, err := resolveEventKey(fields[1])
		if err != nil {
			return engine.Event{}, err
		}
		transition := engine.Press
		if fields[0] == "release" {
			transition = engine.Release
		}
		return engine.Event{
			Type: engine.EventTypeKey,
			Key:  engine.KeyEvent{Code: code, Transition: transition},
		}, nil

	default:
		return engine.Event{}, fmt.Errorf("unknown event %q", fields[0])
	}
}

// resolveEventKey maps an event key name to its code. Modifier names
// resolve to their canonical left-hand physical key, so "press super"
// means pressing the left super key.
func resolveEventKey(name string) (keysym.Code, error) {
	lower := strings.ToLower(name)
	if code, ok := keysym.Resolve(lower); ok {
		return code, nil
	}
	if code, ok := keysym.ModifierKey(lower); ok {
		return code, nil
	}
	return keysym.CodeNone, fmt.Errorf("unknown key %q", name)
}
