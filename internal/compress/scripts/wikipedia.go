package scripts

import (
	"strings"

	"github.com/clawome/clawome/internal/compress"
	"github.com/clawome/clawome/internal/config"
	"github.com/clawome/clawome/internal/walker"
)

var wikipediaSkipSections = map[string]bool{
	"External links": true, "References": true, "Notes": true, "Citations": true,
	"Further reading": true, "Bibliography": true,
}

var wikipediaNoiseTags = map[string]bool{
	"footer": true, "style": true, "script": true, "noscript": true, "svg": true, "sup": true,
}

func wikipediaIsNoise(n walker.Node, removeEditLinks bool) bool {
	if wikipediaNoiseTags[n.Tag] {
		return true
	}
	if strings.Contains(n.Attrs, `role="navigation"`) && !strings.Contains(n.Attrs, "mw-") {
		return true
	}
	text := strings.TrimSpace(n.Text)
	if removeEditLinks && (text == "[edit]" || text == "[citation needed]") {
		return true
	}
	return false
}

func wikipediaShouldSkipSection(text string) bool {
	t := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "[edit]"))
	return wikipediaSkipSections[t]
}

// Wikipedia drops navigation chrome and, by default, entire
// References/External-links sections by tracking heading depth until a
// sibling heading at the same or shallower depth ends the skip run.
func Wikipedia() *Script {
	return &Script{
		ID:          "wikipedia",
		Description: "Focus on article content, table of contents, and infoboxes.",
		URLPatterns: []string{"*wikipedia.org/wiki/*", "*wikipedia.org/w/*"},
		Process: func(nodes []walker.Node, cfg *config.Config, settings Settings) []compress.FlatNode {
			removeEditLinks := settings.bool("remove_edit_links", true)
			filtered := make([]walker.Node, 0, len(nodes))
			for _, n := range nodes {
				if !wikipediaIsNoise(n, removeEditLinks) {
					filtered = append(filtered, n)
				}
			}

			if settings.bool("skip_references", true) {
				var result []walker.Node
				skipDepth := -1
				inSkip := false
				for _, n := range filtered {
					isHeading := n.Tag == "h2" || n.Tag == "h3"
					if isHeading && wikipediaShouldSkipSection(n.Text) {
						skipDepth = n.Depth
						inSkip = true
						continue
					}
					if inSkip {
						if isHeading && n.Depth <= skipDepth {
							inSkip = false
						} else {
							continue
						}
					}
					result = append(result, n)
				}
				filtered = result
			}

			return compress.ProcessWithOptions(filtered, cfg, compress.Options{
				Threshold: settings.int("max_items", 40),
				Head:      settings.int("show_head", 15),
			})
		},
	}
}
