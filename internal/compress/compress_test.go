package compress

import (
	"testing"

	"github.com/clawome/clawome/internal/config"
	"github.com/clawome/clawome/internal/walker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func findByTag(flat []FlatNode, tag string) *FlatNode {
	for i := range flat {
		if flat[i].Tag == tag {
			return &flat[i]
		}
	}
	return nil
}

func TestProcessCollapsesEmptyWrapperDiv(t *testing.T) {
	cfg := config.Default()
	nodes := []walker.Node{
		{Idx: 1, Depth: 0, Tag: "div", Attrs: ""},
		{Idx: 2, Depth: 1, Tag: "button", Text: "Save", Actions: []string{"click"}},
	}
	flat := Process(nodes, cfg)
	require.Len(t, flat, 1)
	assert.Equal(t, "button", flat[0].Tag)
	assert.Equal(t, "1", flat[0].HID)
}

func TestProcessHoistsSingleChildOfCollapsibleWrapper(t *testing.T) {
	cfg := config.Default()
	nodes := []walker.Node{
		{Idx: 1, Depth: 0, Tag: "span", Attrs: `role="presentation"`},
		{Idx: 2, Depth: 1, Tag: "a", Text: "link", Actions: []string{"click"}},
	}
	flat := Process(nodes, cfg)
	require.Len(t, flat, 1)
	assert.Equal(t, "a", flat[0].Tag)
}

func TestProcessKeepsSelectedCollapsibleNode(t *testing.T) {
	cfg := config.Default()
	nodes := []walker.Node{
		{Idx: 1, Depth: 0, Tag: "div", State: map[string]string{"selected": "true"}},
	}
	flat := Process(nodes, cfg)
	require.Len(t, flat, 1)
	assert.Equal(t, "div", flat[0].Tag)
}

func TestProcessPrunesEmptyLeaf(t *testing.T) {
	cfg := config.Default()
	nodes := []walker.Node{
		{Idx: 1, Depth: 0, Tag: "section"},
		{Idx: 2, Depth: 1, Tag: "span"},
	}
	flat := Process(nodes, cfg)
	assert.Empty(t, flat)
}

func TestProcessKeepsStatefulEmptyLeaf(t *testing.T) {
	cfg := config.Default()
	nodes := []walker.Node{
		{Idx: 1, Depth: 0, Tag: "div", State: map[string]string{"aria-expanded": "false"}},
	}
	flat := Process(nodes, cfg)
	require.Len(t, flat, 1)
	assert.Equal(t, "div", flat[0].Tag)
	assert.Equal(t, "false", flat[0].State["aria-expanded"])
}

func TestProcessDedupesParentTextThatRepeatsChild(t *testing.T) {
	cfg := config.Default()
	nodes := []walker.Node{
		{Idx: 1, Depth: 0, Tag: "div", Text: "Save"},
		{Idx: 2, Depth: 1, Tag: "button", Text: "Save", Actions: []string{"click"}},
	}
	flat := Process(nodes, cfg)
	assert.Nil(t, findByTag(flat, "div"))
	btn := findByTag(flat, "button")
	require.NotNil(t, btn)
	assert.Equal(t, "Save", btn.Text)
}

func TestProcessAssignsDottedHierarchicalIDs(t *testing.T) {
	cfg := config.Default()
	nodes := []walker.Node{
		{Idx: 1, Depth: 0, Tag: "form", Attrs: `action="/submit"`},
		{Idx: 2, Depth: 1, Tag: "input", Actions: []string{"type"}},
		{Idx: 3, Depth: 1, Tag: "button", Text: "Go", Actions: []string{"click"}},
	}
	flat := Process(nodes, cfg)
	require.Len(t, flat, 3)
	assert.Equal(t, "1", flat[0].HID)
	assert.Equal(t, "1.1", flat[1].HID)
	assert.Equal(t, "1.2", flat[2].HID)
}

func TestProcessCollapsesLongHomogeneousList(t *testing.T) {
	cfg := config.Default()
	cfg.ListTruncateThreshold = 5
	cfg.ListTruncateHead = 2
	nodes := []walker.Node{{Idx: 1, Depth: 0, Tag: "ul"}}
	for i := 0; i < 10; i++ {
		nodes = append(nodes, walker.Node{Idx: i + 2, Depth: 1, Tag: "li", Text: "item"})
	}
	flat := ProcessWithOptions(nodes, cfg, Options{})
	more := findByTag(flat, "…")
	require.NotNil(t, more)
	assert.Contains(t, more.Text, "10 total")
}

func TestProcessLeavesShortListUntruncated(t *testing.T) {
	cfg := config.Default()
	nodes := []walker.Node{{Idx: 1, Depth: 0, Tag: "ul"}}
	for i := 0; i < 3; i++ {
		nodes = append(nodes, walker.Node{Idx: i + 2, Depth: 1, Tag: "li", Text: "item"})
	}
	flat := Process(nodes, cfg)
	assert.Nil(t, findByTag(flat, "…"))
}

func TestProcessCollapsesPopupSubtreeHoistingInteractiveDescendants(t *testing.T) {
	cfg := config.Default()
	nodes := []walker.Node{
		{Idx: 1, Depth: 0, Tag: "div", Attrs: `role="dialog"`},
		{Idx: 2, Depth: 1, Tag: "p", Text: "Are you sure?"},
		{Idx: 3, Depth: 1, Tag: "button", Text: "Confirm", Actions: []string{"click"}},
	}
	flat := Process(nodes, cfg)
	dialog := findByTag(flat, "div")
	require.NotNil(t, dialog)
	assert.Contains(t, dialog.Text, "Are you sure?")
	btn := findByTag(flat, "button")
	require.NotNil(t, btn)
	assert.Equal(t, 1, btn.Depth)
}

func TestProcessWithOptionsAppliesPreFilter(t *testing.T) {
	cfg := config.Default()
	nodes := []walker.Node{
		{Idx: 1, Depth: 0, Tag: "div", Text: "keep"},
		{Idx: 2, Depth: 0, Tag: "div", Text: "drop"},
	}
	flat := ProcessWithOptions(nodes, cfg, Options{Keep: func(n walker.Node) bool {
		return n.Text != "drop"
	}})
	require.Len(t, flat, 1)
	assert.Equal(t, "keep", flat[0].Text)
}

// TestProcessSimplifyReachesFixedPoint checks the fixed-point guarantee
// Process relies on: running simplify a second time over its own output
// never shrinks the tree further.
func TestProcessSimplifyReachesFixedPoint(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		depth := rapid.IntRange(0, 4).Draw(rt, "depth")
		text := rapid.StringMatching(`[a-zA-Z ]{0,20}`).Draw(rt, "text")
		nodes := []walker.Node{{Idx: 1, Depth: 0, Tag: "div", Text: text}}
		for i := 1; i <= depth; i++ {
			nodes = append(nodes, walker.Node{Idx: i + 1, Depth: i, Tag: "div"})
		}
		tree := flatToTree(nodes)
		once := simplify(tree)
		twice := simplify(once)
		assert.Equal(rt, countNodes(once), countNodes(twice))
	})
}
