package walker

import (
	"strconv"
	"strings"

	"github.com/clawome/clawome/internal/domutil"
	"golang.org/x/net/html"
)

// cssSelector prefers the back-reference attribute Prepare assigned, then
// id, then aria-label, then name, then a walk-up nth-of-type chain.
func cssSelector(n *html.Node) string {
	if bid, ok := domutil.Attr(n, "data-bid"); ok && bid != "" {
		return `[data-bid="` + bid + `"]`
	}
	if id, ok := domutil.Attr(n, "id"); ok && id != "" {
		return "#" + id
	}
	if aria, ok := domutil.Attr(n, "aria-label"); ok && aria != "" {
		safe := strings.ReplaceAll(aria, `\`, `\\`)
		safe = strings.ReplaceAll(safe, `"`, `\"`)
		return n.Data + `[aria-label="` + safe + `"]`
	}
	if name, ok := domutil.Attr(n, "name"); ok && name != "" {
		return n.Data + `[name="` + name + `"]`
	}
	return pathSelector(n, false)
}

// xpath builds an absolute, index-qualified XPath to n.
func xpath(n *html.Node) string {
	return pathSelector(n, true)
}

func pathSelector(n *html.Node, asXPath bool) string {
	var parts []string
	el := n
	for el != nil && el.Type == html.ElementNode {
		parent := el.Parent
		if parent == nil || parent.Type != html.ElementNode {
			parts = append(parts, el.Data)
			break
		}
		if id, ok := domutil.Attr(el, "id"); ok && id != "" {
			if asXPath {
				parts = append(parts, el.Data)
			} else {
				parts = append(parts, "#"+id)
			}
			break
		}
		siblings := sameTagSiblings(parent, el.Data)
		idx := indexOf(siblings, el)
		if len(siblings) == 1 {
			parts = append(parts, el.Data)
		} else if asXPath {
			parts = append(parts, el.Data+"["+strconv.Itoa(idx+1)+"]")
		} else {
			parts = append(parts, el.Data+":nth-of-type("+strconv.Itoa(idx+1)+")")
		}
		el = parent
	}
	reverse(parts)
	if asXPath {
		return "/" + strings.Join(parts, "/")
	}
	return strings.Join(parts, " > ")
}

func sameTagSiblings(parent *html.Node, tag string) []*html.Node {
	var out []*html.Node
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			out = append(out, c)
		}
	}
	return out
}

func indexOf(nodes []*html.Node, target *html.Node) int {
	for i, n := range nodes {
		if n == target {
			return i
		}
	}
	return 0
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

