// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certgraph_test

import (
	"fmt"
	"testing"

	"github.com/H0llyW00dzZ/certview/src/internal/certgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectChain(t *testing.T) {
	linear := []*certgraph.CertificateNode{ca("root", ""), ca("mid", "root"), leaf("leaf", "mid")}
	siblings := []*certgraph.CertificateNode{
		ca("root", ""),
		ca("midA", "root"), leaf("leafA", "midA"),
		ca("midB", "root"), leaf("leafB", "midB"),
	}

	tests := []struct {
		name   string
		nodes  []*certgraph.CertificateNode
		anchor string
		want   []string
	}{
		{"from leaf", linear, "leaf", []string{"leaf", "mid", "root"}},
		{"from root", linear, "root", []string{"leaf", "mid", "root"}},
		{"from middle", linear, "mid", []string{"leaf", "mid", "root"}},
		{"unknown anchor", linear, "nope", []string{}},
		{"sibling exclusion", siblings, "leafA", []string{"leafA", "midA", "root"}},
		{"root reaches every sibling", siblings, "root", []string{"leafA", "leafB", "midA", "midB", "root"}},
		{"middle excludes other branch", siblings, "midB", []string{"leafB", "midB", "root"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := certgraph.SelectChain(tt.anchor, tt.nodes)
			assert.Equal(t, tt.want, sel.IDs())
		})
	}
}

func TestChainSelector_Cycles(t *testing.T) {
	nodes := []*certgraph.CertificateNode{ca("A", "B"), ca("B", "C"), ca("C", "A"), leaf("l", "B"), ca("x", "")}
	s := certgraph.NewChainSelector(nodes, certgraph.SelectorOptions{})

	// The descendant search skips ids the ancestor walk already collected, so
	// only an anchor that issues l directly reaches it from inside the loop.
	assert.Equal(t, []string{"A", "B", "C"}, s.Select("A").IDs())
	assert.Equal(t, []string{"A", "B", "C", "l"}, s.Select("B").IDs())
	assert.Equal(t, []string{"A", "B", "C"}, s.Select("C").IDs())
	assert.Equal(t, []string{"A", "B", "C", "l"}, s.Select("l").IDs())
	assert.Equal(t, []string{"x"}, s.Select("x").IDs())

	self := certgraph.SelectChain("s", []*certgraph.CertificateNode{ca("s", "s")})
	assert.Equal(t, []string{"s"}, self.IDs())
}

func TestChainSelector_Bounds(t *testing.T) {
	const length = 100
	nodes := []*certgraph.CertificateNode{ca("n0", "")}
	for i := 1; i < length; i++ {
		nodes = append(nodes, ca(fmt.Sprintf("n%d", i), fmt.Sprintf("n%d", i-1)))
	}

	s := certgraph.NewChainSelector(nodes, certgraph.SelectorOptions{MaxAncestorHops: 10, MaxDescendantSteps: 5})

	up := s.Select(fmt.Sprintf("n%d", length-1))
	assert.Len(t, up, 11, "anchor plus ten ancestors")

	down := s.Select("n0")
	assert.Len(t, down, 6, "anchor plus five descendants")

	assert.Equal(t, up, s.Select(fmt.Sprintf("n%d", length-1)), "truncation is stable across calls")
	assert.Equal(t, down, s.Select("n0"))
}

func TestChainSelector_Accessors(t *testing.T) {
	nodes := []*certgraph.CertificateNode{ca("root", ""), leaf("leaf", "root")}
	s := certgraph.NewChainSelector(nodes, certgraph.SelectorOptions{})

	assert.Equal(t, 2, s.Len())
	n, ok := s.Node("leaf")
	require.True(t, ok)
	assert.Same(t, nodes[1], n)
	_, ok = s.Node("nope")
	assert.False(t, ok)
}

func TestHighlight(t *testing.T) {
	nodes := []*certgraph.CertificateNode{
		ca("root", ""),
		ca("midA", "root"), leaf("leafA", "midA"),
		ca("midB", "root"), leaf("leafB", "midB"),
	}

	assert.Equal(t, []bool{true, true, true, true, true}, certgraph.Highlight(nil, nodes))

	sel := certgraph.SelectChain("leafA", nodes)
	assert.Equal(t, []bool{true, true, true, false, false}, certgraph.Highlight(sel, nodes))

	assert.False(t, certgraph.Selection(nil).Has("root"))
}
