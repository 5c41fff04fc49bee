package scripts

import "strings"

// Rule is a platform-level override, always checked before any script's
// own URLPatterns.
type Rule struct {
	Pattern string
	Script  string
}

// Registry holds the built-in scripts plus any platform-level rules and
// disabled-script overrides, and resolves a URL to the script that should
// compress it.
type Registry struct {
	scripts  map[string]*Script
	order    []string
	disabled map[string]bool
	rules    []Rule
}

// NewRegistry builds a registry seeded with the built-in scripts.
func NewRegistry() *Registry {
	r := &Registry{scripts: map[string]*Script{}, disabled: map[string]bool{}}
	for _, s := range All() {
		r.Register(s)
	}
	return r
}

// Register adds or replaces a script, preserving first-seen order for the
// tier-2 URLPatterns scan.
func (r *Registry) Register(s *Script) {
	if _, exists := r.scripts[s.ID]; !exists {
		r.order = append(r.order, s.ID)
	}
	r.scripts[s.ID] = s
}

// Disable marks a script ineligible for tier-2 URLPatterns matching (it can
// still be selected explicitly via a Rule).
func (r *Registry) Disable(id string) { r.disabled[id] = true }

// SetRules replaces the platform-level tier-1 override rules.
func (r *Registry) SetRules(rules []Rule) { r.rules = rules }

// Match resolves url to a script, by the same two-tier priority as the
// original: explicit platform rules first, then each enabled script's own
// URLPatterns in registration order, then "default".
func (r *Registry) Match(url string) *Script {
	for _, rule := range r.rules {
		if rule.Pattern == "" || rule.Script == "" {
			continue
		}
		if globMatch(rule.Pattern, url) {
			if rule.Script == "default" {
				return Default()
			}
			if s, found := r.scripts[rule.Script]; found {
				return s
			}
		}
	}
	for _, id := range r.order {
		if r.disabled[id] {
			continue
		}
		s := r.scripts[id]
		for _, pattern := range s.URLPatterns {
			if globMatch(pattern, url) {
				return s
			}
		}
	}
	return Default()
}

// globMatch implements the subset of shell glob fnmatch.fnmatch relies on
// for URL_PATTERNS: '*' matches any run of characters, including '/'.
func globMatch(pattern, s string) bool {
	parts := strings.Split(pattern, "*")
	if len(parts) == 1 {
		return pattern == s
	}
	if !strings.HasPrefix(s, parts[0]) {
		return false
	}
	s = s[len(parts[0]):]
	for i := 1; i < len(parts)-1; i++ {
		idx := strings.Index(s, parts[i])
		if idx < 0 {
			return false
		}
		s = s[idx+len(parts[i]):]
	}
	return strings.HasSuffix(s, parts[len(parts)-1])
}
