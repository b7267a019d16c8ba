// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certgraph

import (
	"slices"
	"strings"
)

const (
	// DefaultMaxDepthHops bounds the upward walk of the hierarchy builder.
	DefaultMaxDepthHops = 2000

	// MaxOrdinaryDepth is the deepest level reported as a real depth. Longer
	// chains that still end at a root are reported as DepthRunaway so they can
	// never be mistaken for a sentinel.
	MaxOrdinaryDepth = 95

	// TraceSeparator joins trace labels.
	TraceSeparator = " → "
)

// Trace markers appended where the upward walk stops early.
const (
	traceDangling = "?"  // "?(id)" names the unresolved issuer
	traceCycle    = "↻"  // "↻(id)" names the revisited issuer
	traceRunaway  = "…"  // hop bound reached
)

// HierarchyOptions controls a hierarchy build. The zero value uses defaults.
type HierarchyOptions struct {
	// MaxHops bounds every upward walk. Zero or less means DefaultMaxDepthHops.
	MaxHops int
}

func (o HierarchyOptions) maxHops() int {
	if o.MaxHops <= 0 {
		return DefaultMaxDepthHops
	}
	return o.MaxHops
}

// HierarchyStats summarizes one build.
type HierarchyStats struct {
	Nodes         int `json:"nodes"`
	Groups        int `json:"groups"`
	Roots         int `json:"roots"`
	Intermediates int `json:"intermediates"`
	Leaves        int `json:"leaves"`
	Dangling      int `json:"dangling"`
	Cycles        int `json:"cycles"`
	Runaway       int `json:"runaway"`
}

// BuildHierarchy annotates every node with Depth, Parent, Trace,
// CycleDetected and Dangling.
//
// Issuer pointers are resolved only inside a node's own foundation, through
// an index built once per foundation. The display grouping of [GroupTiers]
// never narrows this scope, so a leaf finds its CA under any view. Every walk
// is iterative and bounded, so cyclic or pathological input terminates.
// Rebuilding an unchanged node set yields identical annotations.
//
// Parameters:
//   - nodes: Nodes to annotate in place
//   - opts: Hop bound
//
// Returns:
//   - HierarchyStats: Counts of tiers and anomalies found
func BuildHierarchy(nodes []*CertificateNode, opts HierarchyOptions) HierarchyStats {
	maxHops := opts.maxHops()
	keys, groups := partition(nodes, ByFoundation)

	for _, k := range keys {
		group := groups[k]
		idx := indexByID(group)
		for _, n := range group {
			n.resetAnnotations()
		}
		for _, n := range group {
			annotate(n, idx, maxHops)
		}
	}

	stats := HierarchyStats{Nodes: len(nodes), Groups: len(keys)}
	for _, n := range nodes {
		switch {
		case n.IsRoot():
			stats.Roots++
		case n.IsCA:
			stats.Intermediates++
		default:
			stats.Leaves++
		}
		if n.Dangling {
			stats.Dangling++
		}
		if n.CycleDetected {
			stats.Cycles++
		}
		if n.Depth == DepthRunaway {
			stats.Runaway++
		}
	}
	return stats
}

// indexByID maps VersionID to node. Later nodes win on duplicate ids.
func indexByID(nodes []*CertificateNode) map[string]*CertificateNode {
	idx := make(map[string]*CertificateNode, len(nodes))
	for _, n := range nodes {
		idx[n.VersionID] = n
	}
	return idx
}

func annotate(n *CertificateNode, idx map[string]*CertificateNode, maxHops int) {
	if n.IssuerVersion != "" {
		n.Parent = idx[n.IssuerVersion]
	}

	depth, cycle, dangling := walkDepth(n, idx, maxHops)
	if !n.IsCA {
		depth = DepthLeaf
	}
	trace, traceCycle := walkTrace(n, idx, maxHops)

	n.Depth = depth
	n.Trace = trace
	n.CycleDetected = cycle || traceCycle
	n.Dangling = dangling
}

// walkDepth computes the depth of n by following issuer pointers upward.
// It reports whether the walk hit a cycle or a dangling issuer.
func walkDepth(n *CertificateNode, idx map[string]*CertificateNode, maxHops int) (depth int, cycle, dangling bool) {
	if n.IsRoot() {
		return DepthRoot, false, false
	}

	visited := map[string]struct{}{n.VersionID: {}}
	cur := n
	hops := 0

	for {
		id := cur.IssuerVersion
		if id == "" {
			// A top that claims no issuer without being a CA. At hops == 0
			// that top is n itself, a leaf without issuer.
			if hops == 0 {
				return DepthLeaf, false, false
			}
			return chainDepth(hops), false, false
		}
		if _, seen := visited[id]; seen {
			return DepthCycle, true, false
		}

		next, ok := idx[id]
		if !ok {
			if n.IsCA {
				return DepthDanglingCA, false, true
			}
			return DepthDanglingLeaf, false, true
		}

		hops++
		if hops > maxHops {
			return DepthRunaway, false, false
		}
		visited[id] = struct{}{}

		if next.IsRoot() {
			return chainDepth(hops), false, false
		}
		cur = next
	}
}

// chainDepth turns a hop count ending at a root into a depth.
func chainDepth(hops int) int {
	d := max(hops, DepthDanglingCA)
	if d > MaxOrdinaryDepth {
		return DepthRunaway
	}
	return d
}

// walkTrace builds the root-to-node description of n's issuer chain and
// reports whether the chain revisits a node. When the walk stops before a
// root, a marker naming the reason ends the trace.
func walkTrace(n *CertificateNode, idx map[string]*CertificateNode, maxHops int) (string, bool) {
	labels := []string{n.Label()}
	visited := map[string]struct{}{n.VersionID: {}}
	cur := n
	cycle := false
	stop := ""

	for hops := 0; ; hops++ {
		id := cur.IssuerVersion
		if id == "" {
			break
		}
		if hops >= maxHops {
			stop = traceRunaway
			break
		}
		if _, seen := visited[id]; seen {
			stop = traceCycle + "(" + id + ")"
			cycle = true
			break
		}

		next, ok := idx[id]
		if !ok {
			stop = traceDangling + "(" + id + ")"
			break
		}
		visited[id] = struct{}{}
		labels = append(labels, next.Label())
		cur = next
	}

	slices.Reverse(labels)
	if stop != "" {
		labels = append(labels, stop)
	}
	return strings.Join(labels, TraceSeparator), cycle
}
