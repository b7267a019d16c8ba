// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certgraph

import "slices"

const (
	// DefaultMaxAncestorHops bounds the upward walk of a chain selection.
	DefaultMaxAncestorHops = 4000
	// DefaultMaxDescendantSteps bounds the downward search of a chain selection.
	DefaultMaxDescendantSteps = 8000
)

// SelectorOptions bounds chain selection walks. The zero value uses defaults.
type SelectorOptions struct {
	MaxAncestorHops    int
	MaxDescendantSteps int
}

func (o SelectorOptions) normalized() SelectorOptions {
	if o.MaxAncestorHops <= 0 {
		o.MaxAncestorHops = DefaultMaxAncestorHops
	}
	if o.MaxDescendantSteps <= 0 {
		o.MaxDescendantSteps = DefaultMaxDescendantSteps
	}
	return o
}

// Selection is the set of VersionIDs related to an anchor.
type Selection map[string]struct{}

// Has reports whether id is part of the selection. A nil selection has nothing.
func (s Selection) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the selected ids sorted lexically.
func (s Selection) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ChainSelector answers ancestor/descendant queries over one node set.
//
// The parent and children indices are built once by [NewChainSelector] and
// reused by every [ChainSelector.Select] call. A ChainSelector is read-only
// after construction and safe for concurrent use.
type ChainSelector struct {
	byID     map[string]*CertificateNode
	children map[string][]*CertificateNode
	opts     SelectorOptions
}

// NewChainSelector indexes nodes by VersionID and by IssuerVersion.
func NewChainSelector(nodes []*CertificateNode, opts SelectorOptions) *ChainSelector {
	s := &ChainSelector{
		byID:     indexByID(nodes),
		children: make(map[string][]*CertificateNode),
		opts:     opts.normalized(),
	}
	for _, n := range nodes {
		if n.IssuerVersion != "" {
			k := scopedKey(n.Foundation, n.IssuerVersion)
			s.children[k] = append(s.children[k], n)
		}
	}
	return s
}

// scopedKey keys an issuer pointer by foundation, the scope in which
// [BuildHierarchy] resolves it.
func scopedKey(foundation, id string) string {
	return foundation + "\x00" + id
}

// Len returns the number of indexed nodes.
func (s *ChainSelector) Len() int { return len(s.byID) }

// Node returns the indexed node for id.
func (s *ChainSelector) Node(id string) (*CertificateNode, bool) {
	n, ok := s.byID[id]
	return n, ok
}

// Select returns the anchor plus every transitive ancestor and descendant.
//
// An unknown anchor yields an empty selection. Issuer links only count
// inside one foundation. The ancestor walk stops at a missing parent, at a
// revisited id, or after MaxAncestorHops. The descendant
// search is breadth-first and stops after MaxDescendantSteps edge visits, so
// the result is finite and identical across calls for the same input.
//
// Parameters:
//   - anchorID: VersionID of the selected node
//
// Returns:
//   - Selection: Related ids including the anchor
func (s *ChainSelector) Select(anchorID string) Selection {
	anchor, ok := s.byID[anchorID]
	if !ok {
		return Selection{}
	}

	sel := Selection{anchor.VersionID: {}}

	cur := anchor
	for hops := 0; hops < s.opts.MaxAncestorHops; hops++ {
		parent, ok := s.byID[cur.IssuerVersion]
		if cur.IssuerVersion == "" || !ok || parent.Foundation != cur.Foundation {
			break
		}
		if sel.Has(parent.VersionID) {
			break
		}
		sel[parent.VersionID] = struct{}{}
		cur = parent
	}

	queue := []*CertificateNode{anchor}
	steps := 0
	for len(queue) > 0 && steps < s.opts.MaxDescendantSteps {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range s.children[scopedKey(cur.Foundation, cur.VersionID)] {
			steps++
			if steps > s.opts.MaxDescendantSteps {
				break
			}
			if sel.Has(child.VersionID) {
				continue
			}
			sel[child.VersionID] = struct{}{}
			queue = append(queue, child)
		}
	}

	return sel
}

// Highlight reports, per node, whether it is emphasized under sel. With no
// active selection (nil sel) every node is emphasized.
func Highlight(sel Selection, nodes []*CertificateNode) []bool {
	out := make([]bool, len(nodes))
	for i, n := range nodes {
		out[i] = sel == nil || sel.Has(n.VersionID)
	}
	return out
}

// SelectChain is a one-shot convenience around NewChainSelector and Select.
func SelectChain(anchorID string, nodes []*CertificateNode) Selection {
	return NewChainSelector(nodes, SelectorOptions{}).Select(anchorID)
}
