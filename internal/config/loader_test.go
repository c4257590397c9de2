package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestImports(t *testing.T) {
	contents := "include /etc/hotkeys/a\nsuper + w\n    true\ninclude extra.conf\n"
	assert.Equal(t, []string{"/etc/hotkeys/a", "extra.conf"}, Imports(contents))
}

func TestImports_None(t *testing.T) {
	assert.Empty(t, Imports("super + w\n    true\n"))
}

func TestLoadTree_MergesIncludes(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "extra.conf", "super + b\n    cmd-b\n")
	root := writeConfig(t, dir, "root.conf", "include extra.conf\nsuper + a\n    cmd-a\n")

	files, diags, err := LoadTree(root)
	require.NoError(t, err)
	assert.Empty(t, diags)

	require.Len(t, files, 2)
	assert.Equal(t, root, files[0].Path)
	assert.Contains(t, files[1].Contents, "cmd-b")
}

func TestLoadTree_IncludeCycle(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "a.conf", "include b.conf\nsuper + a\n    cmd-a\n")
	writeConfig(t, dir, "b.conf", "include a.conf\nsuper + b\n    cmd-b\n")

	files, diags, err := LoadTree(filepath.Join(dir, "a.conf"))
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Len(t, files, 2)
}

func TestLoadTree_MissingIncludeIsDiagnostic(t *testing.T) {
	dir := t.TempDir()
	root := writeConfig(t, dir, "root.conf", "include nope.conf\nsuper + a\n    cmd-a\n")

	files, diags, err := LoadTree(root)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Len(t, diags, 1)
	assert.Equal(t, KindLex, diags[0].Kind)
}

func TestLoadTree_MissingRootIsError(t *testing.T) {
	_, _, err := LoadTree(filepath.Join(t.TempDir(), "absent.conf"))
	assert.Error(t, err)
}

func TestLexTree_PreservesFileOrder(t *testing.T) {
	files := []File{
		{Path: "a", Contents: "super + a\n    first\n"},
		{Path: "b", Contents: "super + a\n    second\n"},
	}

	lines, diags := LexTree(files)
	require.Empty(t, diags)
	require.Len(t, lines, 4)
	assert.Equal(t, "a", lines[0].File)
	assert.Equal(t, "b", lines[2].File)
}

func TestLoadFile_NormalizesNFC(t *testing.T) {
	dir := t.TempDir()
	// "é" written as 'e' + combining acute must normalize to the
	// precomposed code point.
	path := writeConfig(t, dir, "nfc.conf", "# café\n")

	f, err := LoadFile(path)
	require.NoError(t, err)
	assert.Contains(t, f.Contents, "café")
}
