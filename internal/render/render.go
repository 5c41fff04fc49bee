// Package render turns a compressed node list into the agent-facing
// textual grammar: a bit-stable line-oriented serializer, lite-mode
// truncation, and node-map (selector side table) construction.
package render

import (
	"sort"
	"strconv"
	"strings"

	"github.com/clawome/clawome/internal/compress"
	"github.com/clawome/clawome/internal/config"
	"github.com/clawome/clawome/internal/domutil"
)

const fullTextCap = 120

// NodeMap is the side table mapping a node's hid to its CSS selector.
type NodeMap map[string]string

// Result is the rendered tree plus its node map. Stats is computed
// separately by Assemble so a lite re-render can skip re-walking.
type Result struct {
	Rendered string
	NodeMap  NodeMap
}

// Render produces one line per node, two-space-per-depth indent, in the
// `[hid] tag(attrs) [actions] [state]: text` grammar, and builds the node
// map as nodes are emitted. lite selects the lite-mode text truncation
// rule. An inlined node (already bracketed inside its parent's text)
// contributes no line of its own, but still gets a node-map entry so the
// action layer can still target it.
func Render(nodes []compress.FlatNode, cfg *config.Config, lite bool) Result {
	lines := make([]string, 0, len(nodes))
	nm := make(NodeMap, len(nodes))
	for _, n := range nodes {
		if n.Selector != "" {
			nm[n.HID] = n.Selector
		}
		if n.Inlined {
			continue
		}
		lines = append(lines, strings.Repeat("  ", n.Depth)+formatLine(n, cfg, lite))
	}
	return Result{Rendered: strings.Join(lines, "\n"), NodeMap: nm}
}

// formatLine builds one line in the template:
// [HID] TAG(ATTRS) [ACTION]... [STATE]...: TEXT
func formatLine(n compress.FlatNode, cfg *config.Config, lite bool) string {
	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(n.HID)
	sb.WriteString("] ")
	sb.WriteString(n.Tag)

	if attrs := n.Attrs; attrs != "" {
		sb.WriteByte('(')
		sb.WriteString(attrs)
		sb.WriteByte(')')
	}

	for _, action := range n.Actions {
		sb.WriteString(" [")
		sb.WriteString(action)
		sb.WriteByte(']')
	}

	for _, key := range sortedStateKeys(n.State) {
		v := n.State[key]
		sb.WriteByte(' ')
		sb.WriteByte('[')
		if v == "true" {
			sb.WriteString(key)
		} else {
			sb.WriteString(key)
			sb.WriteString(`="`)
			sb.WriteString(v)
			sb.WriteString(`"`)
		}
		sb.WriteByte(']')
	}

	if n.FormLabel != "" {
		sb.WriteString(" «")
		sb.WriteString(n.FormLabel)
		sb.WriteString("»")
	}

	text := formatText(n.Text, len(n.Actions) > 0, lite, cfg)
	if text != "" {
		sb.WriteString(": ")
		sb.WriteString(text)
	}

	return sb.String()
}

// formatText applies the TEXT rule and its lite-mode variant: non-lite
// always caps at 120 chars; lite mode only truncates non-interactive text
// past liteTextMax, down to liteTextHead chars plus an omitted-count
// marker, and never touches an interactive node's text.
func formatText(text string, interactive, lite bool, cfg *config.Config) string {
	if !lite {
		return domutil.Truncate(text, fullTextCap)
	}
	if interactive {
		return text
	}
	runes := []rune(text)
	if len(runes) <= cfg.LiteTextMax {
		return text
	}
	omitted := len(runes) - cfg.LiteTextHead
	return string(runes[:cfg.LiteTextHead]) + "…(" + strconv.Itoa(omitted) + " chars omitted)"
}

func sortedStateKeys(state map[string]string) []string {
	keys := make([]string, 0, len(state))
	for k := range state {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
