package scripts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryMatchFallsBackToDefault(t *testing.T) {
	r := NewRegistry()
	s := r.Match("https://example.com/anything")
	require.NotNil(t, s)
	assert.Equal(t, "default", s.ID)
}

func TestRegistryMatchesBuiltinScriptByURLPattern(t *testing.T) {
	r := NewRegistry()
	s := r.Match("https://www.google.com/search?q=golang")
	require.NotNil(t, s)
	assert.Equal(t, "google_search", s.ID)
}

func TestRegistryPlatformRuleTakesPriorityOverBuiltinPattern(t *testing.T) {
	r := NewRegistry()
	r.SetRules([]Rule{{Pattern: "https://www.google.com/*", Script: "default"}})
	s := r.Match("https://www.google.com/search?q=golang")
	require.NotNil(t, s)
	assert.Equal(t, "default", s.ID)
}

func TestRegistryDisabledScriptIsSkippedByPatternMatching(t *testing.T) {
	r := NewRegistry()
	r.Disable("google_search")
	s := r.Match("https://www.google.com/search?q=golang")
	assert.Equal(t, "default", s.ID)
}

func TestGlobMatchWildcardMatchesAnyMiddleSegment(t *testing.T) {
	assert.True(t, globMatch("https://example.com/*/page", "https://example.com/foo/page"))
	assert.False(t, globMatch("https://example.com/*/page", "https://example.com/foo/other"))
}

func TestGlobMatchExactPatternRequiresExactString(t *testing.T) {
	assert.True(t, globMatch("https://a.com/x", "https://a.com/x"))
	assert.False(t, globMatch("https://a.com/x", "https://a.com/y"))
}
