// Package domutil holds small helpers for walking golang.org/x/net/html
// trees that are shared between the walker and compress stages — attribute
// lookup, visibility classification, and a CJK-aware text join rule.
package domutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

var (
	reDisplayNone      = regexp.MustCompile(`(?i)display\s*:\s*none`)
	reVisibilityHidden = regexp.MustCompile(`(?i)visibility\s*:\s*hidden`)
	reOpacityZero      = regexp.MustCompile(`(?i)opacity\s*:\s*0(?:\.0+)?\s*(?:;|!|$)`)
)

// Attr returns the value of attribute key on n and whether it was present.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

// AttrOr returns the attribute value or fallback if absent.
func AttrOr(n *html.Node, key, fallback string) string {
	if v, ok := Attr(n, key); ok {
		return v
	}
	return fallback
}

// HasAttr reports whether n carries attribute key at all (value ignored).
func HasAttr(n *html.Node, key string) bool {
	_, ok := Attr(n, key)
	return ok
}

// ClassList splits the class attribute on whitespace.
func ClassList(n *html.Node) []string {
	v, _ := Attr(n, "class")
	return strings.Fields(v)
}

// IsHidden reports whether n is invisible by any of: the data-bhidden
// annotation Prepare wrote into the live DOM, the hidden/aria-hidden
// attributes, a hidden input, a closed dialog, or an inline style hiding
// it. A data-bgroup="active" override always wins and reports visible;
// data-bgroup="inactive" is not itself hidden — Prepare already clears
// data-bhidden from inactive members, so they're emitted like any other
// node and carry their hidden state through detectState instead.
func IsHidden(n *html.Node) bool {
	if grp, ok := Attr(n, "data-bgroup"); ok && grp == "active" {
		return false
	}
	if v, ok := Attr(n, "data-bhidden"); ok && v == "1" {
		return true
	}
	if HasAttr(n, "hidden") {
		return true
	}
	if v, ok := Attr(n, "aria-hidden"); ok && strings.EqualFold(v, "true") {
		return true
	}
	if n.Data == "input" {
		if t, _ := Attr(n, "type"); strings.EqualFold(t, "hidden") {
			return true
		}
	}
	if n.Data == "dialog" && !HasAttr(n, "open") {
		return true
	}
	if style, ok := Attr(n, "style"); ok && style != "" {
		if reDisplayNone.MatchString(style) {
			return true
		}
		if reVisibilityHidden.MatchString(style) {
			return true
		}
		if reOpacityZero.MatchString(style) {
			return true
		}
	}
	return false
}

// DirectText returns the trimmed concatenation of n's direct text-node
// children (no descent into child elements).
func DirectText(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(sb.String())
}

// InnerText returns all descendant text, space-joined, mirroring
// BeautifulSoup's get_text(separator=" ", strip=True).
func InnerText(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			if t := strings.TrimSpace(node.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}

// IsCJKBoundary reports whether r is a CJK character or full-width
// punctuation, used by JoinText to decide whether a space is needed between
// two text fragments.
func IsCJKBoundary(r rune) bool {
	if unicode.Is(unicode.Han, r) || unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r) || unicode.Is(unicode.Hangul, r) {
		return true
	}
	// CJK/full-width punctuation block and general punctuation used with
	// full-width text (e.g. 、。！？「」【】—— etc.)
	return (r >= 0x3000 && r <= 0x303F) || (r >= 0xFF00 && r <= 0xFFEF)
}

// JoinText concatenates text fragments with a single space between them,
// except when both boundary characters are CJK/full-width punctuation, in
// which case no space is inserted.
func JoinText(parts []string) string {
	var sb strings.Builder
	var prevRune rune
	hasPrev := false
	for _, p := range parts {
		if p == "" {
			continue
		}
		if hasPrev {
			first := []rune(p)[0]
			if IsCJKBoundary(prevRune) && IsCJKBoundary(first) {
				// no separator
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(p)
		r := []rune(p)
		prevRune = r[len(r)-1]
		hasPrev = true
	}
	return sb.String()
}

// FirstElementChild returns n's first child that is an element node.
func FirstElementChild(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

// ElementChildren returns n's element-node children in document order.
func ElementChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// Truncate shortens s to maxLen runes, appending an ellipsis when cut.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "…"
}
