// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certgraph_test

import (
	"github.com/H0llyW00dzZ/certview/src/internal/certgraph"
)

const testFoundation = "fdn-1"

// ca returns a CA node in testFoundation. An empty issuer makes it a root.
func ca(id, issuer string) *certgraph.CertificateNode {
	return &certgraph.CertificateNode{
		VersionID:      id,
		VersionIDShort: id,
		CertName:       "ca-" + id,
		Foundation:     testFoundation,
		IssuerVersion:  issuer,
		IsCA:           true,
		Active:         true,
	}
}

// leaf returns a non-CA node in testFoundation.
func leaf(id, issuer string) *certgraph.CertificateNode {
	n := ca(id, issuer)
	n.IsCA = false
	n.CertName = "leaf-" + id
	return n
}

func days(d int) *int { return &d }

func ids(nodes []*certgraph.CertificateNode) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.VersionID
	}
	return out
}

func build(nodes ...*certgraph.CertificateNode) []*certgraph.CertificateNode {
	certgraph.BuildHierarchy(nodes, certgraph.HierarchyOptions{})
	return nodes
}
