package domutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/net/html"
)

func parseFragment(t *testing.T, s string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	var body *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if body != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "body" {
			body = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return FirstElementChild(body)
}

func TestAttrLookupIsCaseInsensitive(t *testing.T) {
	n := parseFragment(t, `<div DATA-FOO="bar"></div>`)
	v, ok := Attr(n, "data-foo")
	assert.True(t, ok)
	assert.Equal(t, "bar", v)
}

func TestAttrOrFallsBackWhenAbsent(t *testing.T) {
	n := parseFragment(t, `<div></div>`)
	assert.Equal(t, "fallback", AttrOr(n, "missing", "fallback"))
}

func TestIsHiddenDisplayNone(t *testing.T) {
	n := parseFragment(t, `<div style="display: none;"></div>`)
	assert.True(t, IsHidden(n))
}

func TestIsHiddenVisibilityHidden(t *testing.T) {
	n := parseFragment(t, `<div style="visibility:hidden"></div>`)
	assert.True(t, IsHidden(n))
}

func TestIsHiddenAriaHiddenTrue(t *testing.T) {
	n := parseFragment(t, `<div aria-hidden="true"></div>`)
	assert.True(t, IsHidden(n))
}

func TestIsHiddenSwitchableGroupActiveOverridesAriaHidden(t *testing.T) {
	n := parseFragment(t, `<div aria-hidden="true" data-bgroup="active"></div>`)
	assert.False(t, IsHidden(n))
}

func TestIsHiddenSwitchableGroupInactiveIsNotHiddenByItself(t *testing.T) {
	n := parseFragment(t, `<div data-bgroup="inactive"></div>`)
	assert.False(t, IsHidden(n))
}

func TestIsHiddenClosedDialog(t *testing.T) {
	n := parseFragment(t, `<dialog></dialog>`)
	assert.True(t, IsHidden(n))
}

func TestIsHiddenOpenDialog(t *testing.T) {
	n := parseFragment(t, `<dialog open></dialog>`)
	assert.False(t, IsHidden(n))
}

func TestIsHiddenVisibleDiv(t *testing.T) {
	n := parseFragment(t, `<div>hello</div>`)
	assert.False(t, IsHidden(n))
}

func TestDirectTextIgnoresChildElementText(t *testing.T) {
	n := parseFragment(t, `<div>outer <span>inner</span></div>`)
	assert.Equal(t, "outer", DirectText(n))
}

func TestInnerTextJoinsAllDescendants(t *testing.T) {
	n := parseFragment(t, `<div>outer <span>inner</span> tail</div>`)
	assert.Equal(t, "outer inner tail", InnerText(n))
}

func TestJoinTextInsertsSpaceBetweenLatinFragments(t *testing.T) {
	assert.Equal(t, "hello world", JoinText([]string{"hello", "world"}))
}

func TestJoinTextOmitsSpaceBetweenCJKFragments(t *testing.T) {
	assert.Equal(t, "你好世界", JoinText([]string{"你好", "世界"}))
}

func TestJoinTextSkipsEmptyFragments(t *testing.T) {
	assert.Equal(t, "a b", JoinText([]string{"a", "", "b"}))
}

func TestTruncateAppendsEllipsisWhenCut(t *testing.T) {
	assert.Equal(t, "hell…", Truncate("hello world", 4))
}

func TestTruncateLeavesShortStringsUntouched(t *testing.T) {
	assert.Equal(t, "hi", Truncate("hi", 10))
}

func TestTruncateZeroMaxLenIsNoop(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 0))
}

func TestElementChildrenSkipsTextNodes(t *testing.T) {
	n := parseFragment(t, `<ul>text<li>a</li><li>b</li></ul>`)
	kids := ElementChildren(n)
	assert.Len(t, kids, 2)
	assert.Equal(t, "li", kids[0].Data)
}
