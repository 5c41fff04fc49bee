package pipeline

import (
	"testing"

	"github.com/clawome/clawome/internal/compress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffNodesNoChangesWhenIdentical(t *testing.T) {
	nodes := []compress.FlatNode{{HID: "1", Selector: "#a", Tag: "div", Text: "hi"}}
	d := DiffNodes(nodes, nodes, 20)
	assert.False(t, d.HasChanges)
	assert.Equal(t, "no changes", d.Summary)
}

func TestDiffNodesDetectsAddedNode(t *testing.T) {
	before := []compress.FlatNode{{HID: "1", Selector: "#a", Tag: "div"}}
	after := []compress.FlatNode{
		{HID: "1", Selector: "#a", Tag: "div"},
		{HID: "2", Selector: "#b", Tag: "button", Text: "New"},
	}
	d := DiffNodes(before, after, 20)
	require.True(t, d.HasChanges)
	require.Len(t, d.Added, 1)
	assert.Equal(t, "button", d.Added[0].Tag)
	assert.Contains(t, d.Summary, "1 node(s) added")
}

func TestDiffNodesDetectsRemovedNode(t *testing.T) {
	before := []compress.FlatNode{
		{HID: "1", Selector: "#a", Tag: "div"},
		{HID: "2", Selector: "#b", Tag: "button"},
	}
	after := []compress.FlatNode{{HID: "1", Selector: "#a", Tag: "div"}}
	d := DiffNodes(before, after, 20)
	require.Len(t, d.Removed, 1)
	assert.Equal(t, "button", d.Removed[0].Tag)
}

func TestDiffNodesDetectsHidShiftBySelectorIdentity(t *testing.T) {
	before := []compress.FlatNode{{HID: "1", Selector: "#a", Tag: "div"}}
	after := []compress.FlatNode{{HID: "2", Selector: "#a", Tag: "div"}}
	d := DiffNodes(before, after, 20)
	require.Len(t, d.Changed, 1)
	assert.Equal(t, "hid", d.Changed[0].Field)
	assert.Equal(t, "1", d.Changed[0].Before)
	assert.Equal(t, "2", d.Changed[0].After)
}

func TestDiffNodesDetectsTextChange(t *testing.T) {
	before := []compress.FlatNode{{HID: "1", Selector: "#a", Tag: "span", Text: "old"}}
	after := []compress.FlatNode{{HID: "1", Selector: "#a", Tag: "span", Text: "new"}}
	d := DiffNodes(before, after, 20)
	require.Len(t, d.Changed, 1)
	assert.Equal(t, "text", d.Changed[0].Field)
	assert.Equal(t, "old", d.Changed[0].Before)
	assert.Equal(t, "new", d.Changed[0].After)
}

func TestDiffNodesDetectsStateChangeOverUnionOfKeys(t *testing.T) {
	before := []compress.FlatNode{{HID: "1", Selector: "#a", Tag: "input", State: map[string]string{"disabled": "true"}}}
	after := []compress.FlatNode{{HID: "1", Selector: "#a", Tag: "input", State: map[string]string{"checked": "true"}}}
	d := DiffNodes(before, after, 20)
	fields := map[string]bool{}
	for _, c := range d.Changed {
		fields[c.Field] = true
	}
	assert.True(t, fields["state.disabled"])
	assert.True(t, fields["state.checked"])
}

func TestDiffNodesDetectsActionsChange(t *testing.T) {
	before := []compress.FlatNode{{HID: "1", Selector: "#a", Tag: "div", Actions: []string{"click"}}}
	after := []compress.FlatNode{{HID: "1", Selector: "#a", Tag: "div", Actions: []string{"click", "type"}}}
	d := DiffNodes(before, after, 20)
	require.Len(t, d.Changed, 1)
	assert.Equal(t, "actions", d.Changed[0].Field)
}

func TestDiffNodesIgnoresNodesWithoutSelector(t *testing.T) {
	before := []compress.FlatNode{{HID: "1", Tag: "div"}}
	after := []compress.FlatNode{{HID: "1", Tag: "div", Text: "changed"}}
	d := DiffNodes(before, after, 20)
	assert.False(t, d.HasChanges)
}

func TestDiffNodesCapsEachListIndependently(t *testing.T) {
	var before, after []compress.FlatNode
	for i := 0; i < 5; i++ {
		sel := "#s" + string(rune('a'+i))
		after = append(after, compress.FlatNode{HID: "n", Selector: sel, Tag: "div"})
	}
	d := DiffNodes(before, after, 2)
	assert.Len(t, d.Added, 2)
}

func TestDiffNodesSummaryCombinesAllThreeCounts(t *testing.T) {
	before := []compress.FlatNode{
		{HID: "1", Selector: "#removed", Tag: "div"},
		{HID: "2", Selector: "#changed", Tag: "span", Text: "old"},
	}
	after := []compress.FlatNode{
		{HID: "2", Selector: "#changed", Tag: "span", Text: "new"},
		{HID: "3", Selector: "#added", Tag: "button"},
	}
	d := DiffNodes(before, after, 20)
	assert.Contains(t, d.Summary, "added")
	assert.Contains(t, d.Summary, "removed")
	assert.Contains(t, d.Summary, "changed")
}
