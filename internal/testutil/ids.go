package testutil

import (
	"fmt"
	"sync"
)

// SequenceIDGenerator returns predictable IDs for journal and dictionary
// handles in tests: "<prefix>-1", "<prefix>-2", ...
//
// This keeps journal rows and golden output byte-identical across runs.
//
// Thread-safety: safe for concurrent use via internal mutex.
type SequenceIDGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequenceIDGenerator creates a generator. If prefix is empty,
// "test-id" is used.
func NewSequenceIDGenerator(prefix string) *SequenceIDGenerator {
	if prefix == "" {
		prefix = "test-id"
	}
	return &SequenceIDGenerator{prefix: prefix}
}

// Generate returns the next ID in the sequence.
func (g *SequenceIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}
