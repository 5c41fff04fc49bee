// Package scripts holds the built-in per-site compressors, each wrapping
// internal/compress's shared pipeline with its own noise filter and list
// limits.
package scripts

import (
	"strings"

	"github.com/clawome/clawome/internal/compress"
	"github.com/clawome/clawome/internal/config"
	"github.com/clawome/clawome/internal/walker"
)

// Settings holds a script's user-configurable values, its own defaults
// merged with any caller overrides.
type Settings map[string]any

func (s Settings) bool(key string, def bool) bool {
	if v, ok := s[key].(bool); ok {
		return v
	}
	return def
}

func (s Settings) int(key string, def int) int {
	if v, ok := s[key].(int); ok {
		return v
	}
	return def
}

// Script is a named, URL-pattern-matched compressor.
type Script struct {
	ID          string
	Description string
	URLPatterns []string
	Process     func(nodes []walker.Node, cfg *config.Config, settings Settings) []compress.FlatNode
}

func hasAttr(attrs, needle string) bool {
	return strings.Contains(attrs, needle)
}

// Default returns the general-purpose compressor: compress.Process with no
// filtering, the library's fallback when no script matches a URL.
func Default() *Script {
	return &Script{
		ID:          "default",
		Description: "General-purpose node filtering and simplification.",
		Process: func(nodes []walker.Node, cfg *config.Config, _ Settings) []compress.FlatNode {
			return compress.Process(nodes, cfg)
		},
	}
}

// All returns the built-in script registry in registration order (default
// is handled separately as the fallback).
func All() []*Script {
	return []*Script{GoogleSearch(), Wikipedia(), StackOverflow()}
}
