// Package compress implements flat-to-tree reconstruction, the
// fixed-point simplify loop, popup folding, homogeneous long-list
// truncation, empty-leaf pruning, and tree-to-flat hierarchical ID
// assignment — the shared pipeline every per-site compressor builds on.
package compress

import (
	"strconv"
	"strings"

	"github.com/clawome/clawome/internal/walker"
)

// treeNode is a walker.Node plus its children, mutated in place through
// each simplification stage.
type treeNode struct {
	walker.Node
	Children []*treeNode
}

// FlatNode is the hierarchically-numbered record tree_to_flat produces —
// the input to internal/render.
type FlatNode struct {
	HID       string
	Depth     int
	Tag       string
	Attrs     string
	Text      string
	Label     string
	FormLabel string
	Selector  string
	XPath     string
	Actions   []string
	State     map[string]string
	Inlined   bool
}

// flatToTree rebuilds parent-child hierarchy from a depth-annotated flat
// list using a parent stack.
func flatToTree(nodes []walker.Node) []*treeNode {
	type frame struct {
		depth int
		node  *treeNode
	}
	var roots []*treeNode
	stack := []frame{{depth: -1, node: nil}}
	for _, n := range nodes {
		tn := &treeNode{Node: n}
		d := n.Depth
		for len(stack) > 1 && stack[len(stack)-1].depth >= d {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1].node
		if parent == nil {
			roots = append(roots, tn)
		} else {
			parent.Children = append(parent.Children, tn)
		}
		stack = append(stack, frame{depth: d, node: tn})
	}
	return roots
}

// treeToFlat depth-first serializes the tree, assigning dotted
// hierarchical identifiers (hids) as it goes.
func treeToFlat(roots []*treeNode) []FlatNode {
	var flat []FlatNode
	var walk func(nodes []*treeNode, depth int, prefix string)
	walk = func(nodes []*treeNode, depth int, prefix string) {
		for i, n := range nodes {
			hid := prefix + strconv.Itoa(i+1)
			flat = append(flat, FlatNode{
				HID:       hid,
				Depth:     depth,
				Tag:       n.Tag,
				Attrs:     n.Attrs,
				Text:      n.Text,
				Label:     n.Label,
				FormLabel: n.FormLabel,
				Selector:  n.Selector,
				XPath:     n.XPath,
				Actions:   n.Actions,
				State:     n.State,
				Inlined:   n.Inlined,
			})
			walk(n.Children, depth+1, hid+".")
		}
	}
	walk(roots, 0, "")
	return flat
}

func countNodes(roots []*treeNode) int {
	total := 0
	for _, n := range roots {
		total += 1 + countNodes(n.Children)
	}
	return total
}

// syntheticMore builds the "…" marker node emitted by truncateLongLists,
// whose text reads "+K more (N total)".
func syntheticMore(shown, total int) *treeNode {
	return &treeNode{Node: walker.Node{
		Idx:   -1,
		Tag:   "…",
		Text:  "+" + strconv.Itoa(total-shown) + " more (" + strconv.Itoa(total) + " total)",
		State: map[string]string{},
	}}
}

func isCollapsibleRole(attrs string) bool {
	return strings.Contains(attrs, `role="none"`) || strings.Contains(attrs, `role="presentation"`)
}
