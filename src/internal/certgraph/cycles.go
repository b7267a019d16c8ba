// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certgraph

import (
	"slices"
	"strings"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Cycle is a set of nodes whose issuer pointers loop back on each other.
type Cycle struct {
	Foundation string   `json:"foundation"`
	Members    []string `json:"members"` // VersionIDs, sorted
}

// FindCycles lists every issuer cycle in nodes.
//
// Issuer pointers are resolved inside each foundation, matching
// [BuildHierarchy]. A cycle is a strongly connected component of the issuer
// graph with more than one member, or a single node that names itself as
// issuer. Cycles are returned ordered by foundation, then by first member.
func FindCycles(nodes []*CertificateNode) []Cycle {
	keys, groups := partition(nodes, ByFoundation)
	var cycles []Cycle

	for _, k := range keys {
		group := groups[k]
		idx := indexByID(group)

		g := simple.NewDirectedGraph()
		ids := make(map[string]int64, len(idx))
		names := make(map[int64]string, len(idx))
		for _, n := range group {
			if _, ok := ids[n.VersionID]; ok {
				continue
			}
			gn := g.NewNode()
			g.AddNode(gn)
			ids[n.VersionID] = gn.ID()
			names[gn.ID()] = n.VersionID
		}

		var selfIssued []string
		for id, n := range idx {
			if n.IssuerVersion == "" {
				continue
			}
			if n.IssuerVersion == id {
				// simple graphs reject self edges
				selfIssued = append(selfIssued, id)
				continue
			}
			to, ok := ids[n.IssuerVersion]
			if !ok {
				continue
			}
			g.SetEdge(g.NewEdge(g.Node(ids[id]), g.Node(to)))
		}

		base := Cycle{Foundation: group[0].Foundation}

		var found []Cycle
		for _, scc := range topo.TarjanSCC(g) {
			if len(scc) < 2 {
				continue
			}
			members := make([]string, 0, len(scc))
			for _, gn := range scc {
				members = append(members, names[gn.ID()])
			}
			slices.Sort(members)
			c := base
			c.Members = members
			found = append(found, c)
		}
		for _, id := range selfIssued {
			c := base
			c.Members = []string{id}
			found = append(found, c)
		}

		slices.SortFunc(found, func(a, b Cycle) int {
			return strings.Compare(a.Members[0], b.Members[0])
		})
		cycles = append(cycles, found...)
	}

	slices.SortStableFunc(cycles, func(a, b Cycle) int {
		return strings.Compare(a.Foundation, b.Foundation)
	})
	return cycles
}
