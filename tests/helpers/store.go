// Package helpers provides shared test fixtures.
package helpers

import (
	"testing"

	"orproxy/store"
)

// NewTestFileStore creates a FileStore rooted in a per-test temp directory.
func NewTestFileStore(t *testing.T, maxPairs int) *store.FileStore {
	t.Helper()

	s, err := store.NewFileStore(t.TempDir(), maxPairs)
	if err != nil {
		t.Fatalf("failed to create file store: %v", err)
	}

	return s
}
