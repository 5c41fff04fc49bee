package scripts

import (
	"strings"

	"github.com/clawome/clawome/internal/compress"
	"github.com/clawome/clawome/internal/config"
	"github.com/clawome/clawome/internal/walker"
)

var googleNoiseTags = map[string]bool{
	"footer": true, "style": true, "script": true, "noscript": true, "svg": true, "path": true,
}

var googleNoiseTexts = map[string]bool{
	"Sign in": true, "Settings": true, "Privacy": true, "Terms": true, "Advertising": true,
	"Business": true, "About": true, "How Search works": true,
}

// GoogleSearch strips chrome/footer noise and Google's search-results-page
// furniture.
func GoogleSearch() *Script {
	return &Script{
		ID:          "google_search",
		Description: "Extract search results, knowledge panels, and navigation.",
		URLPatterns: []string{"*google.com/search*", "*google.*/search*"},
		Process: func(nodes []walker.Node, cfg *config.Config, settings Settings) []compress.FlatNode {
			removeFooter := settings.bool("remove_footer", true)
			keep := func(n walker.Node) bool {
				if googleNoiseTags[n.Tag] {
					return false
				}
				if googleNoiseTexts[strings.TrimSpace(n.Text)] {
					return false
				}
				if removeFooter && hasAttr(n.Attrs, `role="contentinfo"`) {
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
