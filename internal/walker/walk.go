package walker

import (
	"strings"

	"github.com/clawome/clawome/internal/config"
	"github.com/clawome/clawome/internal/domutil"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

const cellTextCap = 500

// ctx carries per-walk state: the document-wide <label for=id> index, the
// running node counter, and the resource limits that terminate the walk.
type ctx struct {
	cfg        *config.Config
	log        *zap.Logger
	labelByFor map[string]string
	nodes      []Node
	emitted    int
	truncated  bool
}

// Walk runs a depth-first traversal over a Prepare-annotated HTML document
// and returns the flat node sequence plus termination stats. doc must be
// the document returned by golang.org/x/net/html.Parse.
func Walk(doc *html.Node, cfg *config.Config, log *zap.Logger) ([]Node, Stats) {
	if log == nil {
		log = zap.NewNop()
	}
	body := findBody(doc)
	c := &ctx{cfg: cfg, log: log, labelByFor: indexLabels(doc)}
	if body != nil {
		c.walkChildren(body, 0)
	}
	return c.nodes, Stats{NodesEmitted: c.emitted, TruncatedNodes: c.truncated}
}

func findBody(doc *html.Node) *html.Node {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "body" {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	if found != nil {
		return found
	}
	return doc
}

// indexLabels builds id → label-text for every <label for="id">, used by
// formLabel association.
func indexLabels(doc *html.Node) map[string]string {
	idx := map[string]string{}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "label" {
			if forID, ok := domutil.Attr(n, "for"); ok && forID != "" {
				if t := domutil.InnerText(n); t != "" {
					idx[forID] = t
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return idx
}

func (c *ctx) limitHit(depth int) bool {
	if c.emitted >= c.cfg.MaxNodes {
		c.truncated = true
		return true
	}
	if depth > c.cfg.MaxDepth {
		c.truncated = true
		return true
	}
	return false
}

// walkChildren visits el's element children: skip hidden/skip-tagged
// elements, special-case svg/tr, absorb pure inline fragments into the
// parent's text, and recurse into anything with block or interactive
// descendants.
func (c *ctx) walkChildren(el *html.Node, depth int) {
	if c.limitHit(depth) {
		return
	}
	for child := el.FirstChild; child != nil; child = child.NextSibling {
		if c.emitted >= c.cfg.MaxNodes {
			c.truncated = true
			return
		}
		if child.Type != html.ElementNode {
			continue
		}
		tag := child.Data
		if c.cfg.SkipTags[tag] {
			continue
		}
		if domutil.IsHidden(child) {
			continue
		}

		switch tag {
		case "svg":
			c.emitSVG(child, depth)
			continue
		case "tr":
			c.emitRow(child, depth)
			continue
		}

		blocks := c.blockChildren(child)
		actions := detectActions(child, c.cfg)
		icon, hasIcon := domutil.Attr(child, "data-bicon")
		attrs := fmtAttrs(child, c.cfg)

		if c.cfg.InlineTags[tag] && len(actions) == 0 && len(blocks) == 0 && !hasIcon && attrs == "" {
			// Step 4: pure inline fragment, already absorbed by the
			// ancestor's text collection pass.
			continue
		}

		text := c.collectText(child)
		state := detectState(child, c.cfg)
		lbl := label(child, text)
		if img := imgName(child); img != "" && lbl == "" {
			lbl = "[img: " + img + "]"
		}
		lbl = domutil.Truncate(lbl, 500)

		inlined := c.cfg.InlineTags[tag] && len(actions) > 0 && len(blocks) == 0
		displayText := text
		if inlined {
			displayText = ""
		} else if displayText == "" && hasIcon {
			displayText = "[icon: " + icon + "]"
		}

		formLabel := c.formLabelFor(child)

		c.emitted++
		c.nodes = append(c.nodes, Node{
			Idx:       backRef(child),
			Depth:     depth,
			Tag:       tag,
			Attrs:     attrs,
			Text:      displayText,
			Label:     lbl,
			FormLabel: formLabel,
			Actions:   actions,
			State:     state,
			Selector:  cssSelector(child),
			XPath:     xpath(child),
			Inlined:   inlined,
		})

		if len(blocks) > 0 || hasInteractiveDescendant(child, c.cfg) {
			c.walkChildren(child, depth+1)
		}
	}
}

// blockChildren returns child's element children that require their own
// node (i.e. are not absorbed into child's text collection pass): anything
// not in InlineTags, plus inline tags that themselves have block
// descendants.
func (c *ctx) blockChildren(el *html.Node) []*html.Node {
	var out []*html.Node
	for n := el.FirstChild; n != nil; n = n.NextSibling {
		if n.Type != html.ElementNode {
			continue
		}
		if c.cfg.SkipTags[n.Data] {
			continue
		}
		if !c.cfg.InlineTags[n.Data] {
			out = append(out, n)
			continue
		}
		if len(c.blockChildren(n)) > 0 {
			out = append(out, n)
		}
	}
	return out
}

// collectText gathers el's own text: plain text nodes trimmed, inline
// children with no block descendants contribute their inner text
// (bracketed if actionable), joined with the CJK-aware rule.
func (c *ctx) collectText(el *html.Node) string {
	var parts []string
	for child := el.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.TextNode:
			if t := strings.TrimSpace(child.Data); t != "" {
				parts = append(parts, t)
			}
		case html.ElementNode:
			if !c.cfg.InlineTags[child.Data] {
				continue
			}
			if len(c.blockChildren(child)) > 0 {
				continue
			}
			text := domutil.InnerText(child)
			if text == "" {
				continue
			}
			if len(detectActions(child, c.cfg)) > 0 {
				parts = append(parts, "⟨"+text+"⟩")
			} else {
				parts = append(parts, text)
			}
		}
	}
	text := domutil.JoinText(parts)
	if c.cfg.MaxTextLen > 0 {
		text = domutil.Truncate(text, c.cfg.MaxTextLen)
	}
	return text
}

// formLabelFor resolves an input/textarea/select's associated label text:
// <label for=id>, a wrapping <label>, or aria-labelledby.
func (c *ctx) formLabelFor(n *html.Node) string {
	switch n.Data {
	case "input", "textarea", "select":
	default:
		return ""
	}
	if id, ok := domutil.Attr(n, "id"); ok && id != "" {
		if lbl, ok := c.labelByFor[id]; ok {
			return lbl
		}
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == "label" {
			return domutil.InnerText(p)
		}
	}
	if ids, ok := domutil.Attr(n, "aria-labelledby"); ok && ids != "" {
		root := n
		for root.Parent != nil {
			root = root.Parent
		}
		var byID func(x *html.Node, id string) *html.Node
		byID = func(x *html.Node, id string) *html.Node {
			if x.Type == html.ElementNode && domutil.AttrOr(x, "id", "") == id {
				return x
			}
			for ch := x.FirstChild; ch != nil; ch = ch.NextSibling {
				if f := byID(ch, id); f != nil {
					return f
				}
			}
			return nil
		}
		var parts []string
		for _, id := range strings.Fields(ids) {
			if el := byID(root, id); el != nil {
				if t := domutil.InnerText(el); t != "" {
					parts = append(parts, t)
				}
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, " ")
		}
	}
	return ""
}

// emitSVG emits a single leaf node labeled "[icon: name]" for an svg
// element, never descending into it; an svg with no resolvable name emits
// nothing.
func (c *ctx) emitSVG(n *html.Node, depth int) {
	name := svgIconName(n)
	if name == "" {
		return
	}
	c.emitted++
	c.nodes = append(c.nodes, Node{
		Idx:      backRef(n),
		Depth:    depth,
		Tag:      "svg",
		Text:     "[icon: " + name + "]",
		Label:    "[icon: " + name + "]",
		Selector: cssSelector(n),
		XPath:    xpath(n),
		State:    map[string]string{},
	})
}

func svgIconName(n *html.Node) string {
	if t := findDescendant(n, "title"); t != nil {
		if txt := domutil.InnerText(t); txt != "" {
			return txt
		}
	}
	if v, ok := domutil.Attr(n, "aria-label"); ok && v != "" {
		return v
	}
	if parent := n.Parent; parent != nil {
		if icon, ok := domutil.Attr(parent, "data-bicon"); ok && icon != "" {
			return icon
		}
	}
	if use := findDescendant(n, "use"); use != nil {
		href := domutil.AttrOr(use, "href", domutil.AttrOr(use, "xlink:href", ""))
		if i := strings.IndexByte(href, '#'); i >= 0 {
			return strings.TrimPrefix(href[i+1:], "icon-")
		}
	}
	return ""
}

func findDescendant(n *html.Node, tag string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			return c
		}
		if d := findDescendant(c, tag); d != nil {
			return d
		}
	}
	return nil
}

// emitRow collapses a table row into one node with pipe-joined cell text,
// except for cells containing an interactive descendant, which get walked
// normally instead of collapsed.
func (c *ctx) emitRow(tr *html.Node, depth int) {
	var cellTexts []string
	var interactiveCells []*html.Node
	for cell := tr.FirstChild; cell != nil; cell = cell.NextSibling {
		if cell.Type != html.ElementNode || (cell.Data != "td" && cell.Data != "th") {
			continue
		}
		if hasInteractiveDescendant(cell, c.cfg) {
			cellTexts = append(cellTexts, "")
			interactiveCells = append(interactiveCells, cell)
			continue
		}
		text := c.collectText(cell)
		if text == "" {
			text = domutil.InnerText(cell)
		}
		cellTexts = append(cellTexts, domutil.Truncate(text, cellTextCap))
	}
	c.emitted++
	c.nodes = append(c.nodes, Node{
		Idx:      backRef(tr),
		Depth:    depth,
		Tag:      "tr",
		Text:     strings.Join(cellTexts, " | "),
		Label:    strings.Join(cellTexts, " | "),
		Selector: cssSelector(tr),
		XPath:    xpath(tr),
		State:    detectState(tr, c.cfg),
	})
	for _, cell := range interactiveCells {
		c.walkChildren(cell, depth+1)
	}
}

func hasInteractiveDescendant(n *html.Node, cfg *config.Config) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if cfg.SkipTags[c.Data] {
			continue
		}
		if len(detectActions(c, cfg)) > 0 {
			return true
		}
		if hasInteractiveDescendant(c, cfg) {
			return true
		}
	}
	return false
}
