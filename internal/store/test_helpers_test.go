package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/chartrie/internal/ir"
	"github.com/roach88/chartrie/internal/pattern"
	"github.com/roach88/chartrie/internal/testutil"
	"github.com/roach88/chartrie/internal/trie"
)

// createTestStore creates a new file-backed store with deterministic ids.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithIDGenerator(testutil.NewFixedIDGenerator("auto")))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRecord compiles expr into an unsaved record.
func createTestRecord(t *testing.T, name, expr string) Record {
	t.Helper()
	op, err := pattern.Parse(expr)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", expr, err)
	}
	a := trie.Compile(op)
	snap := ir.Snapshot(a.Graph, a.Start)
	snap.Pattern = expr
	return Record{Name: name, Pattern: expr, Automaton: snap}
}
