// Package baseline persists the regression baseline as a single JSON
// file with sorted keys, so version-control diffs of the file stay
// meaningful to a reviewer.
package baseline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/docvet/docvet/internal/domain"
)

// Store is a file-based implementation of domain.BaselineStore.
type Store struct{}

// New creates a file-based baseline store.
func New() *Store {
	return &Store{}
}

// Load reads a baseline from disk. Returns (nil, nil) if none exists;
// a missing baseline is the NO_BASELINE gate state, not an error.
func (s *Store) Load(path string) (*domain.Baseline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var b domain.Baseline
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parsing baseline %s: %w", path, err)
	}
	return &b, nil
}

// Save writes a baseline to disk, creating directories as needed. Callers
// must not run two gate invocations against the same path concurrently.
func (s *Store) Save(path string, b *domain.Baseline) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
