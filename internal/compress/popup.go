package compress

import (
	"strings"

	"github.com/clawome/clawome/internal/domutil"
)

const popupTextCap = 500

// isPopup reports role=dialog/alertdialog, or any custom-element tag
// whose name contains "dialog".
func isPopup(n *treeNode) bool {
	if strings.Contains(n.Attrs, `role="dialog"`) || strings.Contains(n.Attrs, `role="alertdialog"`) {
		return true
	}
	return strings.Contains(n.Tag, "-") && strings.Contains(strings.ToLower(n.Tag), "dialog")
}

// collapsePopups folds a dialog/popup subtree into a one-line summary
// carrying the dialog's concatenated visible text, with every interactive
// descendant hoisted up as a direct child of the summary so the agent can
// still target it.
func collapsePopups(nodes []*treeNode) []*treeNode {
	var result []*treeNode
	for _, n := range nodes {
		if isPopup(n) && len(n.Children) > 0 {
			n.Text = domutil.Truncate(subtreeText(n), popupTextCap)
			n.Children = collectInteractive(n.Children)
			result = append(result, n)
			continue
		}
		n.Children = collapsePopups(n.Children)
		result = append(result, n)
	}
	return result
}

func subtreeText(n *treeNode) string {
	var parts []string
	if n.Text != "" {
		parts = append(parts, n.Text)
	}
	for _, c := range n.Children {
		if t := subtreeText(c); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// collectInteractive flattens every actionable descendant (pre-order) into
// a severed, childless copy, for hoisting under a collapsed popup summary.
func collectInteractive(nodes []*treeNode) []*treeNode {
	var out []*treeNode
	for _, n := range nodes {
		if len(n.Actions) > 0 {
			hoisted := *n
			hoisted.Children = nil
			out = append(out, &hoisted)
		}
		out = append(out, collectInteractive(n.Children)...)
	}
	return out
}
