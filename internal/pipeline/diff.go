// Package pipeline wires browser.PageHandle, walker.Walk, compress.Process
// and render.Render into a single Extract/Resolve interface, and adds
// DOM-diff and lite-mode re-assembly on top of the core pipeline.
package pipeline

import (
	"strconv"
	"strings"

	"github.com/clawome/clawome/internal/compress"
)

// DiffEntry is one changed/added/removed node in a Diff result.
type DiffEntry struct {
	HID     string
	Tag     string
	Label   string
	Actions []string
	Field   string // set only on Changed entries: "hid", "text", "state.<key>", "actions"
	Before  string
	After   string
}

// Diff is the change summary produced after re-extracting at a checkpoint.
type Diff struct {
	HasChanges bool
	Summary    string
	Added      []DiffEntry
	Removed    []DiffEntry
	Changed    []DiffEntry
}

const (
	diffLabelCap = 120
	diffTextCap  = 80
)

// DiffNodes compares two filtered-node snapshots by selector identity. hid
// is not used as identity because it shifts whenever nodes are inserted or
// removed between extractions. The selector is normally the data-bid
// back-reference, which Prepare renumbers in document order on every
// extraction, so an element keeps its selector across two extractions only
// while no element before it in document order was inserted or removed.
// maxItems caps each of Added/Removed/Changed independently.
func DiffNodes(before, after []compress.FlatNode, maxItems int) Diff {
	bmap := buildSelectorMap(before)
	amap := buildSelectorMap(after)

	var addedAll, removedAll, changedAll []DiffEntry

	for sel, an := range amap {
		if _, ok := bmap[sel]; !ok {
			addedAll = append(addedAll, brief(an))
		}
	}
	for sel, bn := range bmap {
		if _, ok := amap[sel]; !ok {
			removedAll = append(removedAll, brief(bn))
		}
	}

	for sel, an := range amap {
		bn, ok := bmap[sel]
		if !ok {
			continue
		}

		if bn.HID != an.HID {
			changedAll = append(changedAll, DiffEntry{
				HID: an.HID, Tag: an.Tag, Label: truncate(an.Label, diffLabelCap),
				Field: "hid", Before: bn.HID, After: an.HID,
			})
		}

		if bn.Text != an.Text {
			label := an.Label
			if label == "" {
				label = an.Text
			}
			changedAll = append(changedAll, DiffEntry{
				HID: an.HID, Tag: an.Tag, Label: truncate(label, diffLabelCap),
				Field: "text", Before: truncate(bn.Text, diffTextCap), After: truncate(an.Text, diffTextCap),
			})
		}

		for _, key := range unionStateKeys(bn.State, an.State) {
			bv, bok := bn.State[key]
			av, aok := an.State[key]
			if bv == av && bok == aok {
				continue
			}
			changedAll = append(changedAll, DiffEntry{
				HID: an.HID, Tag: an.Tag, Label: truncate(an.Label, diffLabelCap),
				Field: "state." + key, Before: bv, After: av,
			})
		}

		if !sameActions(bn.Actions, an.Actions) {
			changedAll = append(changedAll, DiffEntry{
				HID: an.HID, Tag: an.Tag, Label: truncate(an.Label, diffLabelCap),
				Field: "actions", Before: strings.Join(bn.Actions, "/"), After: strings.Join(an.Actions, "/"),
			})
		}
	}

	var parts []string
	if len(addedAll) > 0 {
		parts = append(parts, strconv.Itoa(len(addedAll))+" node(s) added")
	}
	if len(removedAll) > 0 {
		parts = append(parts, strconv.Itoa(len(removedAll))+" node(s) removed")
	}
	if len(changedAll) > 0 {
		parts = append(parts, strconv.Itoa(len(changedAll))+" node(s) changed")
	}
	summary := "no changes"
	if len(parts) > 0 {
		summary = strings.Join(parts, ", ")
	}

	return Diff{
		HasChanges: len(addedAll) > 0 || len(removedAll) > 0 || len(changedAll) > 0,
		Summary:    summary,
		Added:      capEntries(addedAll, maxItems),
		Removed:    capEntries(removedAll, maxItems),
		Changed:    capEntries(changedAll, maxItems),
	}
}

func buildSelectorMap(nodes []compress.FlatNode) map[string]compress.FlatNode {
	m := make(map[string]compress.FlatNode, len(nodes))
	for _, n := range nodes {
		if n.Selector != "" {
			m[n.Selector] = n
		}
	}
	return m
}

func brief(n compress.FlatNode) DiffEntry {
	label := n.Label
	if label == "" {
		label = n.Text
	}
	return DiffEntry{HID: n.HID, Tag: n.Tag, Label: truncate(label, diffLabelCap), Actions: n.Actions}
}

func unionStateKeys(a, b map[string]string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var keys []string
	for k := range a {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for k := range b {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys
}

func sameActions(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func capEntries(entries []DiffEntry, maxItems int) []DiffEntry {
	if maxItems <= 0 || len(entries) <= maxItems {
		return entries
	}
	return entries[:maxItems]
}

func truncate(s string, maxRunes int) string {
	r := []rune(s)
	if len(r) <= maxRunes {
		return s
	}
	return string(r[:maxRunes])
}
