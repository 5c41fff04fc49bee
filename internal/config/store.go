package config

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Overrides holds the subset of numeric/slice knobs a host is allowed to
// change at runtime, persisted as YAML.
type Overrides struct {
	MaxNodes              *int     `yaml:"max_nodes,omitempty"`
	MaxDepth              *int     `yaml:"max_depth,omitempty"`
	DisabledCompressors   []string `yaml:"disabled_compressors,omitempty"`
	LiteTextMax           *int     `yaml:"lite_text_max,omitempty"`
	LiteTextHead          *int     `yaml:"lite_text_head,omitempty"`
	ListTruncateThreshold *int     `yaml:"list_truncate_threshold,omitempty"`
	ListTruncateHead      *int     `yaml:"list_truncate_head,omitempty"`
}

// Store keeps a base Config plus a mutable Overrides layer, persisted to a
// YAML file on disk. Reads merge overrides onto the base; writes only ever
// touch the overrides layer.
type Store struct {
	mu        sync.RWMutex
	path      string
	base      *Config
	overrides Overrides
	log       *zap.Logger
}

// NewStore creates a Store backed by path, loading any existing overrides.
// A missing or unreadable file is not an error — it just means no overrides
// are active yet.
func NewStore(path string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{path: path, base: Default(), log: log}
	s.load()
	return s
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var ov Overrides
	if err := yaml.Unmarshal(data, &ov); err != nil {
		s.log.Warn("config: ignoring unreadable overrides file", zap.String("path", s.path), zap.Error(err))
		return
	}
	s.mu.Lock()
	s.overrides = ov
	s.mu.Unlock()
}

func (s *Store) save() {
	s.mu.RLock()
	data, err := yaml.Marshal(s.overrides)
	s.mu.RUnlock()
	if err != nil {
		s.log.Warn("config: failed to marshal overrides", zap.Error(err))
		return
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		s.log.Warn("config: failed to persist overrides", zap.String("path", s.path), zap.Error(err))
	}
}

// Get returns the effective Config: base defaults with overrides applied.
func (s *Store) Get() *Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg := *s.base
	if s.overrides.MaxNodes != nil {
		cfg.MaxNodes = *s.overrides.MaxNodes
	}
	if s.overrides.MaxDepth != nil {
		cfg.MaxDepth = *s.overrides.MaxDepth
	}
	if s.overrides.LiteTextMax != nil {
		cfg.LiteTextMax = *s.overrides.LiteTextMax
	}
	if s.overrides.LiteTextHead != nil {
		cfg.LiteTextHead = *s.overrides.LiteTextHead
	}
	if s.overrides.ListTruncateThreshold != nil {
		cfg.ListTruncateThreshold = *s.overrides.ListTruncateThreshold
	}
	if s.overrides.ListTruncateHead != nil {
		cfg.ListTruncateHead = *s.overrides.ListTruncateHead
	}
	return &cfg
}

// Set merges the given overrides and persists them. Only already-known
// keys are accepted, since Go's typed struct gives us that for free.
func (s *Store) Set(ov Overrides) {
	s.mu.Lock()
	if ov.MaxNodes != nil {
		s.overrides.MaxNodes = ov.MaxNodes
	}
	if ov.MaxDepth != nil {
		s.overrides.MaxDepth = ov.MaxDepth
	}
	if ov.DisabledCompressors != nil {
		s.overrides.DisabledCompressors = ov.DisabledCompressors
	}
	if ov.LiteTextMax != nil {
		s.overrides.LiteTextMax = ov.LiteTextMax
	}
	if ov.LiteTextHead != nil {
		s.overrides.LiteTextHead = ov.LiteTextHead
	}
	if ov.ListTruncateThreshold != nil {
		s.overrides.ListTruncateThreshold = ov.ListTruncateThreshold
	}
	if ov.ListTruncateHead != nil {
		s.overrides.ListTruncateHead = ov.ListTruncateHead
	}
	s.mu.Unlock()
	s.save()
}

// Reset clears all overrides back to defaults.
func (s *Store) Reset() {
	s.mu.Lock()
	s.overrides = Overrides{}
	s.mu.Unlock()
	s.save()
}

// DisabledCompressors reports which named compressors are currently off.
func (s *Store) DisabledCompressors() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.overrides.DisabledCompressors...)
}
