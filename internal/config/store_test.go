package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreGetReturnsDefaultsWithoutAnOverridesFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	cfg := s.Get()
	assert.Equal(t, Default().MaxNodes, cfg.MaxNodes)
}

func TestStoreSetOverridesMaxNodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	s := NewStore(path, nil)
	n := 500
	s.Set(Overrides{MaxNodes: &n})
	assert.Equal(t, 500, s.Get().MaxNodes)
}

func TestStoreSetPersistsAcrossNewStoreInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	n := 777
	NewStore(path, nil).Set(Overrides{MaxNodes: &n})

	reloaded := NewStore(path, nil)
	assert.Equal(t, 777, reloaded.Get().MaxNodes)
}

func TestStoreResetClearsOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	s := NewStore(path, nil)
	n := 42
	s.Set(Overrides{MaxNodes: &n})
	require.Equal(t, 42, s.Get().MaxNodes)

	s.Reset()
	assert.Equal(t, Default().MaxNodes, s.Get().MaxNodes)
}

func TestStoreDisabledCompressorsRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	s := NewStore(path, nil)
	s.Set(Overrides{DisabledCompressors: []string{"google_search", "wikipedia"}})
	assert.ElementsMatch(t, []string{"google_search", "wikipedia"}, s.DisabledCompressors())
}

func TestStoreSetOnlyTouchesProvidedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	s := NewStore(path, nil)
	maxNodes := 100
	s.Set(Overrides{MaxNodes: &maxNodes})
	maxDepth := 10
	s.Set(Overrides{MaxDepth: &maxDepth})

	cfg := s.Get()
	assert.Equal(t, 100, cfg.MaxNodes)
	assert.Equal(t, 10, cfg.MaxDepth)
}
