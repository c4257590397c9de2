package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o644))
	return path
}

func TestReplayFiresCommands(t *testing.T) {
	script := writeScript(t, "- press super\n- press enter\n- release enter\n- press 2\n")

	stdout, _, err := executeCommand(t, "replay", "testdata/example.conf", script)
	require.NoError(t, err)
	assert.Equal(t, "fire-0 alacritty\nfire-1 echo workspace 2\n", stdout)
}

func TestReplayOnReleaseBinding(t *testing.T) {
	script := writeScript(t, "- press super\n- press w\n- release w\n")

	stdout, _, err := executeCommand(t, "replay", "testdata/example.conf", script)
	require.NoError(t, err)
	assert.Equal(t, "fire-0 echo closed\n", stdout)
}

func TestReplayJSONOutput(t *testing.T) {
	script := writeScript(t, "- press super\n- press p\n")

	stdout, _, err := executeCommand(t, "replay", "testdata/example.conf", script, "--format", "json")
	require.NoError(t, err)

	var response struct {
		Status string       `json:"status"`
		Data   ReplayResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &response))
	assert.Equal(t, 2, response.Data.Events)
	require.Len(t, response.Data.Firings, 1)
	assert.Equal(t, "fire-0", response.Data.Firings[0].Token)
	assert.Equal(t, "playerctl play-pause", response.Data.Firings[0].Command)
}

func TestReplayRejectsMalformedEvent(t *testing.T) {
	script := writeScript(t, "- press super\n- wiggle a\n")

	_, _, err := executeCommand(t, "replay", "testdata/example.conf", script)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestReplayDiagnosticsExitCode(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "bad.conf")
	require.NoError(t, os.WriteFile(conf, []byte("super + nope\n    true\n"), 0o644))
	script := writeScript(t, "- press super\n")

	_, _, err := executeCommand(t, "replay", conf, script)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}
