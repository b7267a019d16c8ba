// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package render

import (
	"github.com/H0llyW00dzZ/certview/src/internal/certgraph"
	"github.com/goccy/go-json"
)

// NodeView is the JSON form of an annotated node.
type NodeView struct {
	VersionID      string   `json:"versionId"`
	VersionIDShort string   `json:"versionIdShort"`
	CertName       string   `json:"certName"`
	IssuerVersion  string   `json:"issuerVersion,omitempty"`
	IsCA           bool     `json:"isCA"`
	Transitional   bool     `json:"transitional"`
	Active         bool     `json:"active"`
	DaysRemaining  *int     `json:"daysRemaining"`
	Bucket         string   `json:"bucket"`
	ValidUntil     string   `json:"validUntil,omitempty"`
	Deployments    []string `json:"deployments"`
	Location       string   `json:"location,omitempty"`
	RotationStatus string   `json:"rotationStatus,omitempty"`
	Depth          int      `json:"depth"`
	Trace          string   `json:"trace"`
	CycleDetected  bool     `json:"cycleDetected"`
	Dangling       bool     `json:"dangling"`
	Highlighted    bool     `json:"highlighted"`
}

// TierView is the JSON form of one tier.
type TierView struct {
	Tier  string     `json:"tier"`
	Depth int        `json:"depth,omitempty"` // intermediates only
	Nodes []NodeView `json:"nodes"`
}

// GroupView is the JSON form of a group.
type GroupView struct {
	Foundation string     `json:"foundation"`
	CertName   string     `json:"certName,omitempty"`
	Count      int        `json:"count"`
	Tiers      []TierView `json:"tiers"`
}

// DocumentView is the top level JSON document.
type DocumentView struct {
	Selection []string    `json:"selection,omitempty"`
	Groups    []GroupView `json:"groups"`
}

// JSON renders grouped tiers as an indented JSON document.
//
// Every node carries a highlighted flag computed with certgraph.Highlight,
// so a consumer can dim unrelated nodes the same way the tree does. Empty
// tiers are omitted.
//
// Parameters:
//   - groups: Result of certgraph.GroupTiers
//   - sel: Active chain selection, nil for none
//
// Returns:
//   - []byte: JSON document
//   - error: Error if JSON marshaling fails
func JSON(groups []certgraph.Group, sel certgraph.Selection) ([]byte, error) {
	doc := Document(groups, sel)
	return json.MarshalIndent(doc, "", "  ")
}

// Document builds the JSON view of grouped tiers.
func Document(groups []certgraph.Group, sel certgraph.Selection) DocumentView {
	doc := DocumentView{Groups: make([]GroupView, 0, len(groups))}
	if sel != nil {
		doc.Selection = sel.IDs()
	}

	for _, g := range groups {
		gv := GroupView{Foundation: g.Foundation, CertName: g.CertName, Count: g.Len()}
		add := func(tier certgraph.Tier, depth int, nodes []*certgraph.CertificateNode) {
			if len(nodes) == 0 {
				return
			}
			gv.Tiers = append(gv.Tiers, TierView{Tier: string(tier), Depth: depth, Nodes: nodeViews(nodes, sel)})
		}
		add(certgraph.TierRoot, 0, g.Roots)
		add(certgraph.TierTransitional, 0, g.Transitional)
		for _, t := range g.Intermediates {
			add(certgraph.TierIntermediate, t.Depth, t.Nodes)
		}
		add(certgraph.TierLeaf, 0, g.Leaves)
		doc.Groups = append(doc.Groups, gv)
	}
	return doc
}

func nodeViews(nodes []*certgraph.CertificateNode, sel certgraph.Selection) []NodeView {
	highlight := certgraph.Highlight(sel, nodes)
	out := make([]NodeView, len(nodes))
	for i, n := range nodes {
		deployments := n.Deployments
		if deployments == nil {
			deployments = []string{}
		}
		out[i] = NodeView{
			VersionID:      n.VersionID,
			VersionIDShort: n.VersionIDShort,
			CertName:       n.CertName,
			IssuerVersion:  n.IssuerVersion,
			IsCA:           n.IsCA,
			Transitional:   n.Transitional,
			Active:         n.Active,
			DaysRemaining:  n.DaysRemaining,
			Bucket:         string(n.Bucket()),
			ValidUntil:     n.ValidUntil,
			Deployments:    deployments,
			Location:       n.Location,
			RotationStatus: n.RotationStatus,
			Depth:          n.Depth,
			Trace:          n.Trace,
			CycleDetected:  n.CycleDetected,
			Dangling:       n.Dangling,
			Highlighted:    highlight[i],
		}
	}
	return out
}
