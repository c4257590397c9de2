// Package expand implements brace-group expansion for hotkey and command
// expressions.
//
// A group is written {a,b,c}; alternatives may themselves contain groups,
// may be ranges (a-e, 5-1), may be the elision marker "_", or may be
// empty. An expression expands to the cartesian product of its top-level
// groups, leftmost group varying slowest.
package expand

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnterminatedGroup reports a '{' without a matching '}'.
var ErrUnterminatedGroup = errors.New("unterminated brace group")

// elision is the alternative that expands to the empty string, letting a
// chord token or command fragment drop out of one arm of a group.
const elision = "_"

// Expand returns every concrete string an expression denotes, in
// expansion order. An expression without groups expands to itself.
//
// Backslash escapes '{', '}', ',' and '-' wherever they would otherwise
// be structural; the escaping backslash is removed from the result. Any
// other backslash sequence passes through untouched (command bodies are
// shell text and own their escapes).
func Expand(expr string) ([]string, error) {
	open := firstGroup(expr)
	if open < 0 {
		return []string{unescape(expr)}, nil
	}

	close, err := matchClose(expr, open)
	if err != nil {
		return nil, err
	}

	prefix := unescape(expr[:open])

	suffixes, err := Expand(expr[close+1:])
	if err != nil {
		return nil, err
	}

	var results []string
	for _, alt := range splitAlternatives(expr[open+1 : close]) {
		for _, concrete := range desugarRange(alt) {
			expanded, err := Expand(concrete)
			if err != nil {
				return nil, err
			}
			for _, mid := range expanded {
				for _, suffix := range suffixes {
					results = append(results, prefix+mid+suffix)
				}
			}
		}
	}
	return results, nil
}

// firstGroup returns the index of the first unescaped '{', or -1.
func firstGroup(expr string) int {
	for i := 0; i < len(expr); i++ {
		switch expr[i] {
		case '\\':
			i++
		case '{':
			return i
		}
	}
	return -1
}

// matchClose returns the index of the '}' closing the group opened at
// open, honoring nesting and escapes.
func matchClose(expr string, open int) (int, error) {
	depth := 0
	for i := open; i < len(expr); i++ {
		switch expr[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("%w at offset %d", ErrUnterminatedGroup, open)
}

// splitAlternatives splits a group interior on unescaped, top-level
// commas. An empty interior yields one empty alternative, so "{}" still
// counts as one expansion.
func splitAlternatives(interior string) []string {
	var (
		alts  []string
		start int
		depth int
	)
	for i := 0; i < len(interior); i++ {
		switch interior[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				alts = append(alts, interior[start:i])
				start = i + 1
			}
		}
	}
	return append(alts, interior[start:])
}

// desugarRange rewrites a range alternative into its explicit list.
//
// A range is exactly three characters, endpoint-dash-endpoint, with both
// endpoints ASCII digits or both ASCII letters. Ranges are inclusive and
// direction-aware: "5-1" counts down. The elision marker desugars to the
// empty string. Anything else is returned as-is.
func desugarRange(alt string) []string {
	if alt == elision {
		return []string{""}
	}
	if len(alt) != 3 || alt[1] != '-' {
		return []string{alt}
	}
	lo, hi := alt[0], alt[2]
	if !sameRangeClass(lo, hi) {
		return []string{alt}
	}

	step := 1
	if lo > hi {
		step = -1
	}
	var out []string
	for c := int(lo); ; c += step {
		out = append(out, string(rune(c)))
		if c == int(hi) {
			break
		}
	}
	return out
}

func sameRangeClass(a, b byte) bool {
	digit := func(c byte) bool { return c >= '0' && c <= '9' }
	lower := func(c byte) bool { return c >= 'a' && c <= 'z' }
	upper := func(c byte) bool { return c >= 'A' && c <= 'Z' }
	return (digit(a) && digit(b)) || (lower(a) && lower(b)) || (upper(a) && upper(b))
}

// unescape removes the backslash from escaped structural characters,
// leaving every other backslash sequence intact.
func unescape(s string) string {
	if !strings.Contains(s, "\\") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case '{', '}', ',', '-':
				i++
				b.WriteByte(s[i])
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
