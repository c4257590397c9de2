package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// File is one loaded configuration file.
type File struct {
	Path     string
	Contents string
}

// LoadFile reads a configuration file and NFC-normalizes its contents so
// that key names written with combining characters compare equal to their
// precomposed spellings.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return File{Path: path, Contents: norm.NFC.String(string(data))}, nil
}

// Imports scans configuration text for "include <path>" statements and
// returns the paths in order of appearance.
func Imports(contents string) []string {
	var paths []string
	for _, raw := range strings.Split(contents, "\n") {
		fields := strings.Fields(raw)
		if len(fields) >= 2 && fields[0] == importStatement {
			paths = append(paths, fields[1])
		}
	}
	return paths
}

// LoadTree loads a root configuration file and every file it includes,
// breadth-first, in include order.
//
// Relative include paths resolve against the directory of the including
// file. A path appearing more than once (including cycles) loads once.
// A missing or unreadable include is reported as a lex diagnostic and
// skipped; only a missing root file is a hard error.
func LoadTree(path string) ([]File, []Diagnostic, error) {
	root, err := LoadFile(path)
	if err != nil {
		return nil, nil, err
	}

	files := []File{root}
	seen := map[string]bool{canonicalPath(path): true}

	var diags []Diagnostic
	for i := 0; i < len(files); i++ {
		base := filepath.Dir(files[i].Path)
		for _, imp := range Imports(files[i].Contents) {
			resolved := imp
			if !filepath.IsAbs(resolved) {
				resolved = filepath.Join(base, resolved)
			}
			if key := canonicalPath(resolved); seen[key] {
				continue
			} else {
				seen[key] = true
			}

			included, err := LoadFile(resolved)
			if err != nil {
				diags = append(diags, Diagnostic{
					Kind:    KindLex,
					File:    files[i].Path,
					Message: fmt.Sprintf("include %s: %v", imp, err),
				})
				continue
			}
			files = append(files, included)
		}
	}

	return files, diags, nil
}

// LexTree lexes every file of a loaded tree into one logical line stream,
// preserving file order so first-match-wins spans includes.
func LexTree(files []File) ([]Line, []Diagnostic) {
	var (
		lines []Line
		diags []Diagnostic
	)
	for _, f := range files {
		l, d := Lex(f.Path, f.Contents)
		lines = append(lines, l...)
		diags = append(diags, d...)
	}
	return lines, diags
}

func canonicalPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return filepath.Clean(abs)
	}
	return filepath.Clean(path)
}
