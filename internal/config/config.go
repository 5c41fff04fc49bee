// Package config carries the pipeline's configuration surface and a
// runtime-overridable settings store.
package config

// AttrRule lists which attributes to surface for a given tag.
type AttrRule = []string

// Config is the single configuration record the host supplies to the
// pipeline. Every stage (Prepare, Walk, Compress, Render) reads from it;
// nothing in the core mutates it.
type Config struct {
	// SkipTags are never emitted and never descended into.
	SkipTags map[string]bool
	// InlineTags are treated as inline text fragments of their parent.
	InlineTags map[string]bool
	// AttrRules lists, per tag, which attributes to surface.
	AttrRules map[string]AttrRule
	// GlobalAttrs are surfaced on every tag regardless of AttrRules.
	GlobalAttrs []string
	// StateAttrs are read into the node's State map when present.
	StateAttrs []string

	TypeableInputTypes  map[string]bool
	ClickableInputTypes map[string]bool

	IconPrefixes     []string
	MaterialClasses  []string
	SemanticKeywords []string
	CloneSelectors   []string
	StateClasses     []string

	MaxNodes int
	MaxDepth int
	MaxTextLen int

	GrayTextMinRGB  int
	GrayTextMaxDiff int
	IconMaxSize     int

	// LiteTextMax/LiteTextHead control lite-mode text truncation.
	LiteTextMax  int
	LiteTextHead int

	// ListTruncateThreshold/ListTruncateHead control long-list truncation.
	ListTruncateThreshold int
	ListTruncateHead      int
	ListTruncateTagRatio  float64
	ListTruncateMaxActive float64
}

// Default returns the library's baseline configuration: tag/attribute
// surfacing rules, resource limits, and the gray-text/icon detection
// thresholds.
func Default() *Config {
	return &Config{
		SkipTags: toSet([]string{
			"script", "style", "meta", "link", "noscript",
			"head", "br", "hr", "iframe", "object", "embed",
			"template", "slot", "col",
		}),
		InlineTags: toSet([]string{
			"a", "span", "strong", "em", "b", "i", "u", "s",
			"code", "kbd", "mark", "small", "sub", "sup",
			"abbr", "cite", "time", "label", "font",
		}),
		AttrRules: map[string]AttrRule{
			"a":        {"href"},
			"img":      {"src", "alt"},
			"input":    {"type", "name", "placeholder", "value"},
			"textarea": {"name", "placeholder"},
			"select":   {"name"},
			"option":   {"value"},
			"button":   {"type"},
			"form":     {"action", "method"},
			"video":    {"src"},
			"audio":    {"src"},
			"source":   {"src", "type"},
			"th":       {"colspan", "rowspan"},
			"td":       {"colspan", "rowspan"},
		},
		GlobalAttrs: []string{"id", "role", "aria-label", "title"},
		StateAttrs: []string{
			"disabled", "checked", "readonly", "required",
			"aria-expanded", "aria-selected", "aria-checked", "aria-pressed",
			"aria-current", "aria-valuenow", "aria-valuemin", "aria-valuemax",
			"open",
		},
		TypeableInputTypes: toSet([]string{
			"text", "search", "email", "password", "url", "tel", "number", "",
		}),
		ClickableInputTypes: toSet([]string{
			"submit", "button", "reset", "image",
		}),
		IconPrefixes:     []string{"icon", "fa", "glyphicon", "material-icons"},
		MaterialClasses:  []string{"material-icons", "material-symbols-outlined", "material-symbols-rounded"},
		SemanticKeywords: []string{"close", "menu", "search", "back", "next", "prev", "play", "pause", "settings", "more", "delete", "edit", "add", "remove", "share", "download", "upload"},
		CloneSelectors:   []string{".slick-cloned", ".swiper-slide-duplicate", "[aria-hidden=\"true\"][data-clone]"},
		StateClasses:     []string{"active", "current", "selected", "open", "expanded", "checked"},

		MaxNodes:   20000,
		MaxDepth:   50,
		MaxTextLen: 0,

		GrayTextMinRGB:  120,
		GrayTextMaxDiff: 30,
		IconMaxSize:     24,

		LiteTextMax:  120,
		LiteTextHead: 80,

		ListTruncateThreshold: 50,
		ListTruncateHead:      10,
		ListTruncateTagRatio:  0.7,
		ListTruncateMaxActive: 0.3,
	}
}

func toSet(items []string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, it := range items {
		m[it] = true
	}
	return m
}
