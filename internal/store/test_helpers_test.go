package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/raddict/internal/dictionary"
	"github.com/roach88/raddict/internal/testutil"
)

// createTestStore creates a new file-backed store with deterministic IDs.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithIDGenerator(testutil.NewSequenceIDGenerator("load")))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestLoad creates a successful load record with minimal required fields.
func createTestLoad(source string, files ...string) LoadRecord {
	return LoadRecord{
		DictID: "test-dict",
		Source: source,
		OK:     true,
		Stats:  dictionary.Stats{Attributes: 1},
		Files:  files,
	}
}
