package engine

import (
	"sort"

	"github.com/nvall/chordd/internal/keysym"
)

// Tracker maintains the set of currently-pressed keys.
//
// The tracker is pure state: it never decides whether a chord matches.
// It is owned by the Engine's Run loop and is not safe for concurrent
// use; the matcher sees it only through value snapshots.
//
// Per-key state machine: Up -> Down on press, Down -> Up on release.
// A press while already Down is idempotent and reported as a repeat so
// the matcher can apply throttle policy. Releases clear one entry at a
// time; only Reset clears in bulk (device re-grab).
type Tracker struct {
	down map[keysym.Code]keysym.Modifier // value: modifiers held at press time
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{down: make(map[keysym.Code]keysym.Modifier)}
}

// Press records a key going down.
// Returns true if the key was already down (OS key-repeat).
func (t *Tracker) Press(code keysym.Code) (repeat bool) {
	if _, down := t.down[code]; down {
		return true
	}
	// Record the modifier set held at the moment of the press; release
	// matching uses it so that letting go of a modifier first does not
	// orphan an on-release binding.
	t.down[code] = t.Held()
	return false
}

// Release records a key coming up.
// Returns the modifier set that was held when the key was pressed, and
// whether the key was actually down. Releases of untracked keys (pressed
// before the daemon started, or unknown codes) report false.
func (t *Tracker) Release(code keysym.Code) (atPress keysym.Modifier, wasDown bool) {
	atPress, wasDown = t.down[code]
	delete(t.down, code)
	return atPress, wasDown
}

// Held returns the modifier set contributed by the keys currently down.
func (t *Tracker) Held() keysym.Modifier {
	var mods keysym.Modifier
	for code := range t.down {
		if mod, ok := keysym.ModifierOf(code); ok {
			mods = mods.With(mod)
		}
	}
	return mods
}

// IsDown reports whether a key is currently down.
func (t *Tracker) IsDown(code keysym.Code) bool {
	_, down := t.down[code]
	return down
}

// Snapshot returns the sorted set of keys currently down.
func (t *Tracker) Snapshot() []keysym.Code {
	codes := make([]keysym.Code, 0, len(t.down))
	for code := range t.down {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// Reset clears all tracked state.
func (t *Tracker) Reset() {
	t.down = make(map[keysym.Code]keysym.Modifier)
}
