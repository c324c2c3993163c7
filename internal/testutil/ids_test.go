package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequenceIDGenerator_Increments(t *testing.T) {
	gen := NewSequenceIDGenerator("load")

	assert.Equal(t, "load-1", gen.Generate())
	assert.Equal(t, "load-2", gen.Generate())
	assert.Equal(t, "load-3", gen.Generate())
}

func TestSequenceIDGenerator_EmptyPrefixDefault(t *testing.T) {
	gen := NewSequenceIDGenerator("")

	assert.Equal(t, "test-id-1", gen.Generate())
}

func TestSequenceIDGenerator_ThreadSafe(t *testing.T) {
	gen := NewSequenceIDGenerator("x")

	var mu sync.Mutex
	seen := make(map[string]bool)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id := gen.Generate()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// Every call produced a distinct ID
	assert.Len(t, seen, 1000)
}
