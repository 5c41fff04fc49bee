package scripts

import (
	"strings"

	"github.com/clawome/clawome/internal/compress"
	"github.com/clawome/clawome/internal/config"
	"github.com/clawome/clawome/internal/walker"
)

var stackoverflowNoiseTags = map[string]bool{
	"footer": true, "style": true, "script": true, "noscript": true, "svg": true,
}

var stackoverflowNoiseTexts = map[string]bool{
	"Teams": true, "Advertising": true, "Talent": true, "Company": true,
	"Stack Overflow for Teams": true,
}

// StackOverflow strips marketing chrome and, by default, the
// related-questions sidebar.
func StackOverflow() *Script {
	return &Script{
		ID:          "stackoverflow",
		Description: "Extract question, answers, votes, and comments.",
		URLPatterns: []string{"*stackoverflow.com/questions/*", "*stackexchange.com/questions/*"},
		Process: func(nodes []walker.Node, cfg *config.Config, settings Settings) []compress.FlatNode {
			removeSidebar := settings.bool("remove_sidebar", true)
			keep := func(n walker.Node) bool {
				if stackoverflowNoiseTags[n.Tag] {
					return false
				}
				if stackoverflowNoiseTexts[strings.TrimSpace(n.Text)] {
					return false
				}
				if removeSidebar && (hasAttr(n.Attrs, "js-sidebar-zone") || strings.Contains(strings.ToLower(n.Attrs), "sidebar")) {
					return false
				}
				if hasAttr(n.Attrs, "js-consent-banner") {
					return false
				}
				return true
			}
			return compress.ProcessWithOptions(nodes, cfg, compress.Options{
				Keep:      keep,
				Threshold: settings.int("max_items", 30),
				Head:      settings.int("show_head", 10),
			})
		},
	}
}
