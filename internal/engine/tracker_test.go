package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvall/chordd/internal/keysym"
)

func TestTracker_PressRelease(t *testing.T) {
	tr := NewTracker()

	assert.False(t, tr.Press(keysym.KeyW))
	assert.True(t, tr.IsDown(keysym.KeyW))

	_, wasDown := tr.Release(keysym.KeyW)
	assert.True(t, wasDown)
	assert.False(t, tr.IsDown(keysym.KeyW))
}

func TestTracker_RepeatPressIsIdempotent(t *testing.T) {
	tr := NewTracker()

	assert.False(t, tr.Press(keysym.KeyW))
	assert.True(t, tr.Press(keysym.KeyW), "second press while down is a repeat")
	assert.Len(t, tr.Snapshot(), 1, "no duplicate state")

	// One release fully clears the key.
	_, wasDown := tr.Release(keysym.KeyW)
	assert.True(t, wasDown)
	assert.False(t, tr.IsDown(keysym.KeyW))
}

func TestTracker_ReleaseUntrackedKey(t *testing.T) {
	tr := NewTracker()
	_, wasDown := tr.Release(keysym.KeyW)
	assert.False(t, wasDown)
}

func TestTracker_HeldModifiers(t *testing.T) {
	tr := NewTracker()
	tr.Press(keysym.KeyLeftMeta)
	tr.Press(keysym.KeyLeftShift)
	tr.Press(keysym.KeyW)

	assert.Equal(t, keysym.ModSuper.With(keysym.ModShift), tr.Held())

	tr.Release(keysym.KeyLeftShift)
	assert.Equal(t, keysym.ModSuper, tr.Held())
}

func TestTracker_RecordsModifiersAtPress(t *testing.T) {
	tr := NewTracker()
	tr.Press(keysym.KeyLeftMeta)
	tr.Press(keysym.KeyW)

	// Modifier released before the trigger.
	tr.Release(keysym.KeyLeftMeta)

	atPress, wasDown := tr.Release(keysym.KeyW)
	require.True(t, wasDown)
	assert.Equal(t, keysym.ModSuper, atPress)
}

func TestTracker_Reset(t *testing.T) {
	tr := NewTracker()
	tr.Press(keysym.KeyLeftMeta)
	tr.Press(keysym.KeyW)

	tr.Reset()

	assert.Empty(t, tr.Snapshot())
	assert.Equal(t, keysym.ModNone, tr.Held())
}

func TestTracker_SnapshotSorted(t *testing.T) {
	tr := NewTracker()
	tr.Press(keysym.KeyW)
	tr.Press(keysym.KeyA)
	tr.Press(keysym.KeyLeftMeta)

	assert.Equal(t, []keysym.Code{keysym.KeyW, keysym.KeyA, keysym.KeyLeftMeta}, tr.Snapshot())
}
