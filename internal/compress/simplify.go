package compress

import (
	"regexp"
	"strings"
)

var (
	reTransparentRole = regexp.MustCompile(`,?\s*role="(?:none|presentation)"`)
	reIDAttr          = regexp.MustCompile(`,?\s*id="[^"]*"`)
)

// wrapperTags are presentation-only containers — collapse candidates when
// they carry nothing worth keeping.
var wrapperTags = map[string]bool{
	"div": true, "span": true, "section": true, "article": true, "main": true,
	"header": true, "footer": true, "aside": true, "figure": true, "figcaption": true,
	"nav": true, "details": true, "summary": true, "hgroup": true,
	"center": true, "font": true, "big": true, "nobr": true, "marquee": true,
	"thead": true, "tbody": true, "tfoot": true, "colgroup": true,
}

// isCollapsible reports whether a node is eligible for collapsing: never
// if it's selected (tab/dropdown active state) or its text still carries a
// bracketed inline-interactive fragment.
func isCollapsible(n *treeNode) bool {
	if n.State["selected"] == "true" {
		return false
	}
	if strings.Contains(n.Text, "⟨") && strings.Contains(n.Text, "⟩") {
		return false
	}
	if wrapperTags[n.Tag] {
		return true
	}
	return isCollapsibleRole(n.Attrs)
}

// meaningfulAttrs strips transparent-role and id noise from the surfaced
// attribute string, leaving only attributes worth keeping a node for.
func meaningfulAttrs(attrs string) string {
	s := reTransparentRole.ReplaceAllString(attrs, "")
	s = reIDAttr.ReplaceAllString(s, "")
	return strings.Trim(s, ", ")
}

// hasInformativeContent is the other half of the same decision: a node has
// content worth keeping if it has non-empty surfaced text, a meaningful
// attribute string, or a non-empty state map.
func hasInformativeContent(n *treeNode) bool {
	if n.Text != "" {
		return true
	}
	if meaningfulAttrs(n.Attrs) != "" {
		return true
	}
	return len(n.State) > 0
}

func childrenText(n *treeNode) string {
	var parts []string
	for _, c := range n.Children {
		if c.Text != "" {
			parts = append(parts, c.Text)
		}
	}
	return strings.Join(parts, " ")
}

// textOverlap reports whether the shorter string either equals the longer
// one or is a substantial (>=8 chars, >50% of the longer) substring of it.
func textOverlap(parentText, childText string) bool {
	p := strings.TrimSpace(parentText)
	c := strings.TrimSpace(childText)
	if p == "" || c == "" {
		return false
	}
	if p == c {
		return true
	}
	shorter, longer := c, p
	if len(p) < len(c) {
		shorter, longer = p, c
	}
	return strings.Contains(longer, shorter) && len(shorter) >= 8 && float64(len(shorter)) > float64(len(longer))*0.5
}

// simplify dedupes text that merely repeats a child's, and collapses
// wrapper/transparent-role nodes with no content into their children
// (0 children → drop, 1 → hoist, >1 → splice), bottom-up. Called
// repeatedly by Process until the tree reaches a fixed point, capped at
// 10 passes.
func simplify(nodes []*treeNode) []*treeNode {
	var result []*treeNode
	for _, n := range nodes {
		n.Children = simplify(n.Children)

		if n.Text != "" && len(n.Children) > 0 {
			ct := childrenText(n)
			if ct != "" && (n.Text == ct || strings.HasPrefix(ct, n.Text) ||
				(strings.HasPrefix(n.Text, ct) && float64(len(ct)) > float64(len(n.Text))*0.8)) {
				n.Text = ""
			}
		}

		if n.Text != "" && len(n.Children) > 0 {
			for _, c := range n.Children {
				if c.Text != "" && len(c.Actions) == 0 && textOverlap(n.Text, c.Text) {
					c.Text = ""
				}
			}
		}

		collapsible := isCollapsible(n)
		hasContent := hasInformativeContent(n)
		nChildren := len(n.Children)

		switch {
		case collapsible && !hasContent && nChildren == 0:
			continue
		case collapsible && !hasContent && nChildren == 1:
			result = append(result, n.Children[0])
			continue
		case collapsible && !hasContent && nChildren > 1:
			result = append(result, n.Children...)
			continue
		}

		result = append(result, n)
	}
	return result
}
