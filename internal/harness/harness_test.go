package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScenarios runs every YAML scenario in testdata/scenarios against
// its golden trace.
func TestScenarios(t *testing.T) {
	entries, err := os.ReadDir("testdata/scenarios")
	require.NoError(t, err)

	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join("testdata", "scenarios", entry.Name())

		scenario, err := Load(path)
		require.NoError(t, err, "loading %s", path)

		t.Run(scenario.Name, func(t *testing.T) {
			RunWithGolden(t, scenario)
		})
	}
}

func TestLoadMissingName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "anon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("config: |\n  super + a\n      true\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing name")
}

func TestRunRejectsMalformedEvent(t *testing.T) {
	s := &Scenario{
		Name:   "bad-event",
		Config: "super + a\n    true\n",
		Events: []string{"press a", "wiggle b"},
	}

	_, err := s.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "event 2")
}

func TestReloadWithoutReplacementRecompiles(t *testing.T) {
	s := &Scenario{
		Name:   "reload-same",
		Config: "super + a\n    echo hi\n",
		Events: []string{"press super", "press a", "reload", "release a", "press a"},
	}

	result, err := s.Run()
	require.NoError(t, err)
	require.Len(t, result.Firings, 2)
	assert.Equal(t, "echo hi", result.Firings[0].Command)
	assert.Equal(t, "echo hi", result.Firings[1].Command)
	assert.Equal(t, "fire-0", result.Firings[0].Token)
	assert.Equal(t, "fire-1", result.Firings[1].Token)
}

func TestResetClearsHeldModifiers(t *testing.T) {
	s := &Scenario{
		Name:   "reset-drops-state",
		Config: "super + a\n    echo hi\n",
		Events: []string{"press super", "reset", "press a"},
	}

	result, err := s.Run()
	require.NoError(t, err)
	assert.Empty(t, result.Firings)
}
