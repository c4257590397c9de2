package engine

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// FireTokenGenerator generates unique tokens correlating a fired command
// with its runner logs. Implemented by UUIDv7Generator (production) and
// FixedGenerator (tests).
type FireTokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 fire tokens, so tokens
// sort by firing time in logs.
//
// Thread-safety: stateless, safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined tokens for deterministic tests
// and golden trace comparison.
//
// Thread-safety: safe for concurrent use via internal mutex.
type FixedGenerator struct {
	mu     sync.Mutex
	tokens []string
	idx    int
}

// NewFixedGenerator creates a generator that returns tokens in order.
func NewFixedGenerator(tokens ...string) *FixedGenerator {
	return &FixedGenerator{tokens: tokens}
}

// Generate returns the next predetermined token. When the supplied
// tokens run out it keeps counting ("fire-4", "fire-5", ...) so long
// scenarios stay deterministic without enumerating every firing.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx < len(g.tokens) {
		token := g.tokens[g.idx]
		g.idx++
		return token
	}
	token := fmt.Sprintf("fire-%d", g.idx)
	g.idx++
	return token
}
