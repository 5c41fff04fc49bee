package compress

import "github.com/clawome/clawome/internal/config"

// hasInteractive reports whether n or any descendant carries an action.
func hasInteractive(n *treeNode) bool {
	if len(n.Actions) > 0 {
		return true
	}
	for _, c := range n.Children {
		if hasInteractive(c) {
			return true
		}
	}
	return false
}

// truncateLongLists cuts a homogeneous sibling run down to size: a run
// that reaches the configured threshold, is dominated by one tag
// (tagRatio), and is mostly non-interactive (maxActive) gets cut to its
// first N siblings plus a synthetic "+K more (N total)" node.
func truncateLongLists(nodes []*treeNode, cfg *config.Config) []*treeNode {
	for _, n := range nodes {
		n.Children = truncateLongLists(n.Children, cfg)
		children := n.Children
		total := len(children)
		if total < cfg.ListTruncateThreshold {
			continue
		}
		tagFreq := map[string]int{}
		for _, c := range children {
			tagFreq[c.Tag]++
		}
		topCount := 0
		for _, count := range tagFreq {
			if count > topCount {
				topCount = count
			}
		}
		if float64(topCount) < float64(total)*cfg.ListTruncateTagRatio {
			continue
		}
		interactiveCount := 0
		for _, c := range children {
			if hasInteractive(c) {
				interactiveCount++
			}
		}
		if float64(interactiveCount) > float64(total)*cfg.ListTruncateMaxActive {
			continue
		}
		head := cfg.ListTruncateHead
		if head > total {
			head = total
		}
		n.Children = append(append([]*treeNode{}, children[:head]...), syntheticMore(head, total))
	}
	return nodes
}
