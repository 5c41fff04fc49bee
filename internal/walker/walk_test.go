package walker

import (
	"strings"
	"testing"

	"github.com/clawome/clawome/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func walk(t *testing.T, body string) []Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(body))
	require.NoError(t, err)
	nodes, _ := Walk(doc, config.Default(), nil)
	return nodes
}

func TestWalkEmitsClickableButton(t *testing.T) {
	nodes := walk(t, `<button>Save</button>`)
	require.Len(t, nodes, 1)
	assert.Equal(t, "button", nodes[0].Tag)
	assert.Equal(t, "Save", nodes[0].Text)
	assert.True(t, nodes[0].HasAction("click"))
}

func TestWalkSkipsHiddenNodes(t *testing.T) {
	nodes := walk(t, `<div style="display:none">hidden</div><div>visible</div>`)
	require.Len(t, nodes, 1)
	assert.Equal(t, "visible", nodes[0].Text)
}

func TestWalkSkipsScriptAndStyleTags(t *testing.T) {
	nodes := walk(t, `<script>alert(1)</script><style>.a{}</style><div>content</div>`)
	require.Len(t, nodes, 1)
	assert.Equal(t, "content", nodes[0].Text)
}

func TestWalkTypeableInputGetsTypeAction(t *testing.T) {
	nodes := walk(t, `<input type="text" placeholder="name">`)
	require.Len(t, nodes, 1)
	assert.True(t, nodes[0].HasAction("type"))
}

func TestWalkDisabledTypeableInputBecomesClickOnly(t *testing.T) {
	nodes := walk(t, `<input type="text" disabled>`)
	require.Len(t, nodes, 1)
	assert.True(t, nodes[0].HasAction("click"))
	assert.False(t, nodes[0].HasAction("type"))
}

func TestWalkAssociatesLabelForWithInput(t *testing.T) {
	nodes := walk(t, `<label for="email">Email</label><input id="email" type="text">`)
	var input *Node
	for i := range nodes {
		if nodes[i].Tag == "input" {
			input = &nodes[i]
		}
	}
	require.NotNil(t, input)
	assert.Equal(t, "Email", input.FormLabel)
}

func TestWalkAssociatesWrappingLabelWithInput(t *testing.T) {
	nodes := walk(t, `<label>Name <input type="text"></label>`)
	var input *Node
	for i := range nodes {
		if nodes[i].Tag == "input" {
			input = &nodes[i]
		}
	}
	require.NotNil(t, input)
	assert.Equal(t, "Name", input.FormLabel)
}

func TestWalkCollapsesTableRowToPipeJoinedCells(t *testing.T) {
	nodes := walk(t, `<table><tr><td>Alice</td><td>30</td></tr></table>`)
	require.Len(t, nodes, 3) // table, parser-inserted tbody, tr
	assert.Equal(t, "tr", nodes[2].Tag)
	assert.Equal(t, "Alice | 30", nodes[2].Text)
}

func TestWalkRecursesIntoInteractiveTableCell(t *testing.T) {
	nodes := walk(t, `<table><tr><td><button>Edit</button></td></tr></table>`)
	require.Len(t, nodes, 4) // table, parser-inserted tbody, tr, button
	assert.Equal(t, "tr", nodes[2].Tag)
	assert.Equal(t, "button", nodes[3].Tag)
}

func TestWalkTerminatesAtMaxNodes(t *testing.T) {
	cfg := config.Default()
	cfg.MaxNodes = 2
	doc, err := html.Parse(strings.NewReader(`<div>a</div><div>b</div><div>c</div><div>d</div>`))
	require.NoError(t, err)
	nodes, stats := Walk(doc, cfg, nil)
	assert.True(t, stats.TruncatedNodes)
	assert.LessOrEqual(t, len(nodes), 2)
}

func TestWalkBracketsInlineActionableFragmentInsideText(t *testing.T) {
	nodes := walk(t, `<div>See <a href="/more">more</a> details</div>`)
	require.Len(t, nodes, 2)
	assert.Equal(t, "div", nodes[0].Tag)
	assert.Equal(t, "See ⟨more⟩ details", nodes[0].Text)
	assert.Equal(t, "a", nodes[1].Tag)
	assert.True(t, nodes[1].Inlined)
}

func TestWalkSVGEmitsIconLeaf(t *testing.T) {
	nodes := walk(t, `<svg><title>close</title></svg>`)
	require.Len(t, nodes, 1)
	assert.Equal(t, "svg", nodes[0].Tag)
	assert.Equal(t, "[icon: close]", nodes[0].Text)
}
