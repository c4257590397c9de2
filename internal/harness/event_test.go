package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvall/chordd/internal/engine"
	"github.com/nvall/chordd/internal/keysym"
)

func TestParseEvent(t *testing.T) {
	tests := []struct {
		line string
		want engine.Event
	}{
		{"press w", engine.Event{Type: engine.EventTypeKey, Key: engine.KeyEvent{Code: keysym.KeyW, Transition: engine.Press}}},
		{"release w", engine.Event{Type: engine.EventTypeKey, Key: engine.KeyEvent{Code: keysym.KeyW, Transition: engine.Release}}},
		{"press super", engine.Event{Type: engine.EventTypeKey, Key: engine.KeyEvent{Code: keysym.KeyLeftMeta, Transition: engine.Press}}},
		{"press Ctrl", engine.Event{Type: engine.EventTypeKey, Key: engine.KeyEvent{Code: keysym.KeyLeftCtrl, Transition: engine.Press}}},
		{"  press   enter  ", engine.Event{Type: engine.EventTypeKey, Key: engine.KeyEvent{Code: keysym.KeyEnter, Transition: engine.Press}}},
		{"reload", engine.Event{Type: engine.EventTypeReload}},
		{"reset", engine.Event{Type: engine.EventTypeReset}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseEvent(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEventErrors(t *testing.T) {
	lines := []string{
		"",
		"   ",
		"press",
		"press a b",
		"press notakey",
		"reload now",
		"reset all",
		"wiggle a",
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			_, err := ParseEvent(line)
			assert.Error(t, err)
		})
	}
}
