// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certgraph

import (
	"cmp"
	"slices"
	"strings"
)

// Tier names a hierarchy tier.
type Tier string

// Hierarchy tiers in display order.
const (
	TierRoot         Tier = "root"
	TierTransitional Tier = "transitional"
	TierIntermediate Tier = "intermediate"
	TierLeaf         Tier = "leaf"
)

// TierOf classifies a single node.
func TierOf(n *CertificateNode) Tier {
	switch {
	case !n.IsCA:
		return TierLeaf
	case n.IssuerVersion == "":
		return TierRoot
	case n.Transitional:
		return TierTransitional
	default:
		return TierIntermediate
	}
}

// IntermediateTier holds the intermediate CAs of one depth.
type IntermediateTier struct {
	Depth int
	Nodes []*CertificateNode
}

// Group is one partition of a node set, split into tiers.
type Group struct {
	Foundation    string
	CertName      string // empty unless grouped by certificate name
	Roots         []*CertificateNode
	Transitional  []*CertificateNode
	Intermediates []IntermediateTier // ascending depth
	Leaves        []*CertificateNode
}

// Key returns a display key for the group.
func (g Group) Key() string {
	if g.CertName == "" {
		return g.Foundation
	}
	return g.Foundation + " / " + g.CertName
}

// Nodes returns every node of the group in tier order.
func (g Group) Nodes() []*CertificateNode {
	out := make([]*CertificateNode, 0, g.Len())
	out = append(out, g.Roots...)
	out = append(out, g.Transitional...)
	for _, t := range g.Intermediates {
		out = append(out, t.Nodes...)
	}
	return append(out, g.Leaves...)
}

// Len returns the number of nodes in the group.
func (g Group) Len() int {
	n := len(g.Roots) + len(g.Transitional) + len(g.Leaves)
	for _, t := range g.Intermediates {
		n += len(t.Nodes)
	}
	return n
}

// GroupTiers partitions nodes by view.Group and sorts every tier by view.Sort.
//
// Intermediate CAs are sub-leveled by the Depth written by [BuildHierarchy],
// so the hierarchy must be built first. Groups are returned ordered by
// foundation, then certificate name. The foundation filter of the view is
// applied before grouping. Nodes are never modified.
//
// Parameters:
//   - nodes: Annotated nodes
//   - view: Grouping mode, sort mode and foundation filter
//
// Returns:
//   - []Group: One entry per group key
func GroupTiers(nodes []*CertificateNode, view View) []Group {
	keys, parts := partition(view.Filter(nodes), view.Group)
	groups := make([]Group, 0, len(keys))

	for _, k := range keys {
		members := parts[k]
		g := Group{Foundation: members[0].Foundation}
		if view.Group == ByFoundationAndCertName {
			g.CertName = members[0].CertName
		}

		byDepth := make(map[int][]*CertificateNode)
		for _, n := range members {
			switch TierOf(n) {
			case TierRoot:
				g.Roots = append(g.Roots, n)
			case TierTransitional:
				g.Transitional = append(g.Transitional, n)
			case TierIntermediate:
				byDepth[n.Depth] = append(byDepth[n.Depth], n)
			default:
				g.Leaves = append(g.Leaves, n)
			}
		}

		depths := make([]int, 0, len(byDepth))
		for d := range byDepth {
			depths = append(depths, d)
		}
		slices.Sort(depths)
		for _, d := range depths {
			if d <= 0 {
				// Only reachable for nodes that were never built.
				continue
			}
			g.Intermediates = append(g.Intermediates, IntermediateTier{
				Depth: d,
				Nodes: SortNodes(byDepth[d], view.Sort),
			})
		}

		g.Roots = SortNodes(g.Roots, view.Sort)
		g.Transitional = SortNodes(g.Transitional, view.Sort)
		g.Leaves = SortNodes(g.Leaves, view.Sort)
		groups = append(groups, g)
	}

	slices.SortFunc(groups, func(a, b Group) int {
		if c := strings.Compare(a.Foundation, b.Foundation); c != 0 {
			return c
		}
		return strings.Compare(a.CertName, b.CertName)
	})
	return groups
}

// SortNodes returns a sorted copy of nodes. The input slice is not modified.
func SortNodes(nodes []*CertificateNode, mode SortMode) []*CertificateNode {
	out := slices.Clone(nodes)
	var less func(a, b *CertificateNode) int
	switch mode {
	case SortName:
		less = compareName
	case SortDepth:
		less = func(a, b *CertificateNode) int {
			if c := cmp.Compare(a.Depth, b.Depth); c != 0 {
				return c
			}
			return compareUrgency(a, b)
		}
	default:
		less = compareUrgency
	}
	slices.SortStableFunc(out, less)
	return out
}

// compareUrgency orders by ascending days with undated nodes last, then by name.
func compareUrgency(a, b *CertificateNode) int {
	switch {
	case a.DaysRemaining == nil && b.DaysRemaining != nil:
		return 1
	case a.DaysRemaining != nil && b.DaysRemaining == nil:
		return -1
	case a.DaysRemaining != nil && b.DaysRemaining != nil:
		if c := cmp.Compare(*a.DaysRemaining, *b.DaysRemaining); c != 0 {
			return c
		}
	}
	return compareName(a, b)
}

func compareName(a, b *CertificateNode) int {
	if c := strings.Compare(a.VersionIDShort, b.VersionIDShort); c != 0 {
		return c
	}
	return strings.Compare(a.VersionID, b.VersionID)
}
