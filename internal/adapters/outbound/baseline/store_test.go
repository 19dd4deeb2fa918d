package baseline_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	baselineStore "github.com/docvet/docvet/internal/adapters/outbound/baseline"
	"github.com/docvet/docvet/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LoadMissingReturnsNil(t *testing.T) {
	store := baselineStore.New()

	b, err := store.Load(filepath.Join(t.TempDir(), ".docvet", "baseline.json"))
	require.NoError(t, err, "a missing baseline is not an error")
	assert.Nil(t, b)
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store := baselineStore.New()
	path := filepath.Join(t.TempDir(), ".docvet", "baseline.json")

	in := &domain.Baseline{
		Digest:               "abc",
		CreatedAt:            time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		CommitHash:           "deadbeef",
		Statuses:             map[string]domain.Status{"a.md:1": domain.StatusSuccess},
		ViolationIDs:         []string{"syntax|a.md:1"},
		AcceptedViolationIDs: []string{"naming_convention|a.md:1"},
	}
	require.NoError(t, store.Save(path, in), "Save creates intermediate directories")

	out, err := store.Load(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestStore_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baseline.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := baselineStore.New().Load(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing baseline")
}
