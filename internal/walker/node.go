// Package walker implements the Walk stage: a depth-first traversal of a
// Prepare-annotated DOM that produces a flat sequence of node records.
package walker

// Node is the flat walker record emitted per visible, relevant element.
type Node struct {
	// Idx is the live DOM's data-bid back-reference (-1 for nodes
	// synthesized after Walk), not an emission sequence number.
	Idx       int
	Depth    int
	Tag      string
	Attrs    string
	Text     string
	Label    string
	FormLabel string
	Actions  []string
	State    map[string]string
	Selector string
	XPath    string
	Inlined  bool
}

// HasAction reports whether kind is present in n.Actions.
func (n *Node) HasAction(kind string) bool {
	for _, a := range n.Actions {
		if a == kind {
			return true
		}
	}
	return false
}

// Stats summarizes a Walk invocation.
type Stats struct {
	NodesEmitted   int
	TruncatedNodes bool // true if a MaxNodes/MaxDepth resource limit was hit
}
