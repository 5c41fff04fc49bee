package compress

import "strings"

// pruneEmptyLeaves drops any leaf with no text, no actions, no meaningful
// attributes, no state, and no label, bottom-up so a parent that becomes
// empty only because its children were pruned is reconsidered too.
func pruneEmptyLeaves(nodes []*treeNode) []*treeNode {
	var result []*treeNode
	for _, n := range nodes {
		n.Children = pruneEmptyLeaves(n.Children)
		txt := strings.TrimSpace(n.Text)
		if len(n.Children) == 0 && txt == "" && len(n.Actions) == 0 && meaningfulAttrs(n.Attrs) == "" &&
			len(n.State) == 0 && n.Label == "" {
			continue
		}
		result = append(result, n)
	}
	return result
}
