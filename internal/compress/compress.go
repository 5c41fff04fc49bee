package compress

import (
	"github.com/clawome/clawome/internal/config"
	"github.com/clawome/clawome/internal/walker"
)

// Options lets a per-site compressor (internal/compress/scripts) reuse the
// shared pipeline with a pre-filter and its own list-truncation settings,
// while keeping its own noise filter and max-items/show-head settings.
type Options struct {
	// Keep, if set, drops any walker.Node it returns false for before the
	// tree is built (the per-site "_is_noise" filter).
	Keep func(walker.Node) bool
	// Threshold/Head override cfg.ListTruncateThreshold/Head when nonzero.
	Threshold, Head int
}

// Process runs the full tree-compression pipeline end to end: build a
// tree from the flat walk, run a fixed-point simplify loop (capped at 10
// passes), collapse popups, truncate long lists, prune empty leaves, and
// flatten back out with dotted hierarchical IDs assigned.
func Process(nodes []walker.Node, cfg *config.Config) []FlatNode {
	return ProcessWithOptions(nodes, cfg, Options{})
}

// ProcessWithOptions runs the same pipeline as Process but honors a
// pre-filter and truncation overrides, the hook each per-site compressor
// uses to wrap the shared stages with its own noise filter.
func ProcessWithOptions(nodes []walker.Node, cfg *config.Config, opts Options) []FlatNode {
	if opts.Keep != nil {
		filtered := make([]walker.Node, 0, len(nodes))
		for _, n := range nodes {
			if opts.Keep(n) {
				filtered = append(filtered, n)
			}
		}
		nodes = filtered
	}

	effective := *cfg
	if opts.Threshold > 0 {
		effective.ListTruncateThreshold = opts.Threshold
	}
	if opts.Head > 0 {
		effective.ListTruncateHead = opts.Head
	}

	tree := flatToTree(nodes)
	for i := 0; i < 10; i++ {
		before := countNodes(tree)
		tree = simplify(tree)
		if countNodes(tree) == before {
			break
		}
	}
	tree = collapsePopups(tree)
	tree = truncateLongLists(tree, &effective)
	tree = pruneEmptyLeaves(tree)
	return treeToFlat(tree)
}
