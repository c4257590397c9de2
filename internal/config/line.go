// Package config turns hotkey configuration text into a stream of tagged
// logical lines for the binding compiler, and loads configuration files
// with include resolution.
package config

import (
	"fmt"
	"strings"
)

const (
	commentSymbol   = "#"
	importStatement = "include"
)

// LineType tags a logical configuration line.
type LineType int

const (
	// LineKey is a hotkey definition (no leading whitespace).
	LineKey LineType = iota + 1
	// LineCommand is a command body (leading whitespace).
	LineCommand
	// LineStatement is a directive such as "include <path>".
	LineStatement
)

// String returns the line type name.
func (t LineType) String() string {
	switch t {
	case LineKey:
		return "key"
	case LineCommand:
		return "command"
	case LineStatement:
		return "statement"
	default:
		return fmt.Sprintf("linetype(%d)", int(t))
	}
}

// Line is one logical configuration line after continuation joining.
// Content is trimmed; Number is the first physical line it came from.
type Line struct {
	Content string
	Type    LineType
	Number  int
	File    string
}

// markLine classifies a raw physical line. Blank lines and lines whose
// first non-whitespace character is '#' classify as neither kind and are
// dropped by Lex before joining, so comments never glue two blocks
// together.
func markLine(raw string) (LineType, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.HasPrefix(trimmed, commentSymbol) {
		return 0, false
	}
	if strings.HasPrefix(raw, " ") || strings.HasPrefix(raw, "\t") {
		return LineCommand, true
	}
	if first := strings.Fields(trimmed)[0]; first == importStatement {
		return LineStatement, true
	}
	return LineKey, true
}

// continues reports whether content ends in an unescaped backslash.
// An even run of trailing backslashes is literal text, not a continuation.
func continues(content string) bool {
	n := 0
	for i := len(content) - 1; i >= 0 && content[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

// stripTrailingComment removes an in-line comment from a definition line.
// Command bodies are opaque shell text and are never stripped.
func stripTrailingComment(content string) string {
	if i := strings.Index(content, commentSymbol); i >= 0 {
		return strings.TrimSpace(content[:i])
	}
	return content
}

// Lex turns configuration text into logical lines.
//
// Physical lines are classified first, with comment and blank lines
// dropped, so a comment inside a continuation block never glues into the
// joined content. A surviving line ending in an unescaped backslash is
// then joined with the following surviving line: the backslash and
// newline are removed and the contents concatenated. A definition left
// dangling by a continuation on the final line is dropped with a lex
// diagnostic; everything before it still loads.
func Lex(file, contents string) ([]Line, []Diagnostic) {
	var raws []Line
	for number, raw := range strings.Split(contents, "\n") {
		lineType, ok := markLine(raw)
		if !ok {
			continue
		}
		raws = append(raws, Line{
			Content: strings.TrimSpace(raw),
			Type:    lineType,
			Number:  number + 1,
			File:    file,
		})
	}

	var (
		lines []Line
		diags []Diagnostic
	)
	for i := 0; i < len(raws); i++ {
		cur := raws[i]
		for continues(cur.Content) && i+1 < len(raws) {
			i++
			cur.Content = cur.Content[:len(cur.Content)-1] + raws[i].Content
		}
		if continues(cur.Content) {
			diags = append(diags, Diagnostic{
				Kind:    KindLex,
				File:    file,
				Line:    cur.Number,
				Message: "continuation backslash on final line",
			})
			continue
		}
		if cur.Type == LineKey {
			cur.Content = stripTrailingComment(cur.Content)
		}
		if cur.Content != "" {
			lines = append(lines, cur)
		}
	}

	return lines, diags
}
