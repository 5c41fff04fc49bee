package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveScriptMatchesByURLPattern(t *testing.T) {
	s := resolveScript("https://www.google.com/search?q=golang", "", nil)
	require.NotNil(t, s)
	assert.Equal(t, "google_search", s.ID)
}

func TestResolveScriptReturnsNilForDefault(t *testing.T) {
	s := resolveScript("https://example.com/anything", "", nil)
	assert.Nil(t, s)
}

func TestResolveScriptHonorsDisabledCompressorsOnURLMatch(t *testing.T) {
	s := resolveScript("https://www.google.com/search?q=golang", "", []string{"google_search"})
	assert.Nil(t, s)
}

func TestResolveScriptForceIDOverridesURLMatching(t *testing.T) {
	s := resolveScript("https://example.com/anything", "wikipedia", nil)
	require.NotNil(t, s)
	assert.Equal(t, "wikipedia", s.ID)
}

func TestResolveScriptForceIDRefusesDisabledScript(t *testing.T) {
	s := resolveScript("https://example.com/anything", "wikipedia", []string{"wikipedia"})
	assert.Nil(t, s)
}

func TestResolveScriptForceIDUnknownReturnsNil(t *testing.T) {
	s := resolveScript("https://example.com/anything", "not-a-real-script", nil)
	assert.Nil(t, s)
}
