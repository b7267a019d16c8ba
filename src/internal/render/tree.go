// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package render

import (
	"fmt"
	"strings"

	"github.com/H0llyW00dzZ/certview/src/internal/certgraph"
)

const (
	branchMid  = "├── "
	branchLast = "└── "
	indentMid  = "│   "
	indentLast = "    "
)

type tierSection struct {
	title string
	nodes []*certgraph.CertificateNode
}

func sections(g certgraph.Group) []tierSection {
	var out []tierSection
	if len(g.Roots) > 0 {
		out = append(out, tierSection{"Root", g.Roots})
	}
	if len(g.Transitional) > 0 {
		out = append(out, tierSection{"Transitional", g.Transitional})
	}
	for _, t := range g.Intermediates {
		out = append(out, tierSection{fmt.Sprintf("Intermediate (depth %d)", t.Depth), t.Nodes})
	}
	if len(g.Leaves) > 0 {
		out = append(out, tierSection{"Leaf", g.Leaves})
	}
	return out
}

// Tree renders grouped tiers as an ASCII tree.
//
// Each group is a heading followed by its non-empty tiers in display order.
// A node line shows its bucket, label, depth for CAs and anomaly badges.
// With an active selection every node line starts with a selected or
// dimmed marker.
//
// Parameters:
//   - groups: Result of certgraph.GroupTiers
//   - sel: Active chain selection, nil for none
//
// Returns:
//   - string: Tree representation, one line per tier and node
func Tree(groups []certgraph.Group, sel certgraph.Selection) string {
	if len(groups) == 0 {
		return "No certificates to display\n"
	}

	var b strings.Builder
	for gi, g := range groups {
		if gi > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s (%d certificates)\n", g.Key(), g.Len())

		secs := sections(g)
		for si, sec := range secs {
			lastSec := si == len(secs)-1
			connector, indent := branchMid, indentMid
			if lastSec {
				connector, indent = branchLast, indentLast
			}
			fmt.Fprintf(&b, "%s%s\n", connector, sec.title)

			for ni, n := range sec.nodes {
				c := branchMid
				if ni == len(sec.nodes)-1 {
					c = branchLast
				}
				b.WriteString(indent + c + nodeLine(n, sel) + "\n")
			}
		}
	}
	return b.String()
}

func nodeLine(n *certgraph.CertificateNode, sel certgraph.Selection) string {
	var parts []string
	if m := marker(n, sel); m != "" {
		parts = append(parts, m)
	}
	parts = append(parts, "["+string(n.Bucket())+"]", n.Label())
	if n.IsCA {
		parts = append(parts, fmt.Sprintf("depth=%d", n.Depth))
	}
	if n.DaysRemaining != nil {
		parts = append(parts, fmt.Sprintf("days=%d", *n.DaysRemaining))
	}
	parts = append(parts, Badges(n)...)
	return strings.Join(parts, " ")
}
