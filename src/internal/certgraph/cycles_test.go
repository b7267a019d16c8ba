// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certgraph_test

import (
	"testing"

	"github.com/H0llyW00dzZ/certview/src/internal/certgraph"
	"github.com/stretchr/testify/assert"
)

func TestFindCycles(t *testing.T) {
	t.Run("acyclic", func(t *testing.T) {
		nodes := []*certgraph.CertificateNode{ca("r", ""), ca("m", "r"), leaf("l", "m"), leaf("d", "zzz")}
		assert.Empty(t, certgraph.FindCycles(nodes))
	})

	t.Run("three CA loop with a tail", func(t *testing.T) {
		nodes := []*certgraph.CertificateNode{ca("C", "A"), ca("A", "B"), ca("B", "C"), leaf("tail", "A")}
		assert.Equal(t, []certgraph.Cycle{
			{Foundation: testFoundation, Members: []string{"A", "B", "C"}},
		}, certgraph.FindCycles(nodes))
	})

	t.Run("self issued", func(t *testing.T) {
		nodes := []*certgraph.CertificateNode{ca("s", "s"), ca("r", "")}
		assert.Equal(t, []certgraph.Cycle{
			{Foundation: testFoundation, Members: []string{"s"}},
		}, certgraph.FindCycles(nodes))
	})

	t.Run("several groups", func(t *testing.T) {
		x, y := ca("x", "y"), ca("y", "x")
		x.Foundation, y.Foundation = "fdn-0", "fdn-0"
		nodes := []*certgraph.CertificateNode{ca("q", "p"), ca("p", "q"), x, y, ca("b", "a"), ca("a", "b")}

		assert.Equal(t, []certgraph.Cycle{
			{Foundation: "fdn-0", Members: []string{"x", "y"}},
			{Foundation: testFoundation, Members: []string{"a", "b"}},
			{Foundation: testFoundation, Members: []string{"p", "q"}},
		}, certgraph.FindCycles(nodes))
	})

	t.Run("cross foundation pointers do not form cycles", func(t *testing.T) {
		x, y := ca("x", "y"), ca("y", "x")
		y.Foundation = "fdn-0"
		assert.Empty(t, certgraph.FindCycles([]*certgraph.CertificateNode{x, y}))
	})

	t.Run("members with different cert names", func(t *testing.T) {
		x, y := ca("x", "y"), ca("y", "x")
		x.CertName, y.CertName = "issuing-ca", "cross-signed-ca"
		assert.Equal(t, []certgraph.Cycle{
			{Foundation: testFoundation, Members: []string{"x", "y"}},
		}, certgraph.FindCycles([]*certgraph.CertificateNode{x, y}))
	})
}

func TestFindCycles_AgreesWithHierarchy(t *testing.T) {
	nodes := build(ca("A", "B"), ca("B", "C"), ca("C", "A"), ca("r", ""), ca("m", "r"))

	inCycle := make(map[string]bool)
	for _, c := range certgraph.FindCycles(nodes) {
		for _, id := range c.Members {
			inCycle[id] = true
		}
	}

	for _, n := range nodes {
		if n.IsCA {
			assert.Equal(t, inCycle[n.VersionID], n.Depth == certgraph.DepthCycle, "node %s", n.VersionID)
		}
	}
}
