// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certgraph

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownGroupMode indicates a grouping mode name that is not recognized.
	ErrUnknownGroupMode = errors.New("certgraph: unknown group mode")

	// ErrUnknownSortMode indicates a sort mode name that is not recognized.
	ErrUnknownSortMode = errors.New("certgraph: unknown sort mode")
)

// GroupMode selects how nodes are partitioned into groups.
type GroupMode int

const (
	// ByFoundation puts every node of a foundation in one group.
	ByFoundation GroupMode = iota
	// ByFoundationAndCertName splits each foundation further by certificate name.
	ByFoundationAndCertName
)

// String returns the configuration name of the mode.
func (m GroupMode) String() string {
	switch m {
	case ByFoundationAndCertName:
		return "foundation-cert"
	default:
		return "foundation"
	}
}

// ParseGroupMode maps a configuration name to a GroupMode.
func ParseGroupMode(s string) (GroupMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "foundation", "byfoundation":
		return ByFoundation, nil
	case "foundation-cert", "foundation-certname", "byfoundationandcertname":
		return ByFoundationAndCertName, nil
	default:
		return ByFoundation, fmt.Errorf("%w: %q", ErrUnknownGroupMode, s)
	}
}

// SortMode selects the order of nodes inside a tier.
type SortMode int

const (
	// SortUrgency orders by ascending remaining days, undated last.
	SortUrgency SortMode = iota
	// SortName orders by short version id.
	SortName
	// SortDepth orders by ascending depth, then by urgency.
	SortDepth
)

// String returns the configuration name of the mode.
func (m SortMode) String() string {
	switch m {
	case SortName:
		return "name"
	case SortDepth:
		return "depth"
	default:
		return "urgency"
	}
}

// ParseSortMode maps a configuration name to a SortMode.
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "urgency":
		return SortUrgency, nil
	case "name":
		return SortName, nil
	case "depth":
		return SortDepth, nil
	default:
		return SortUrgency, fmt.Errorf("%w: %q", ErrUnknownSortMode, s)
	}
}

// View is the host-owned selection and filter state for one render pass.
//
// It is passed explicitly into engine calls; the engine keeps no global
// selection state.
type View struct {
	Group      GroupMode
	Sort       SortMode
	Anchor     string // selected VersionID, empty for no selection
	Foundation string // only nodes of this foundation, empty for all
}

// Filter returns the nodes visible under the view's foundation filter.
func (v View) Filter(nodes []*CertificateNode) []*CertificateNode {
	if v.Foundation == "" {
		return nodes
	}
	out := make([]*CertificateNode, 0, len(nodes))
	for _, n := range nodes {
		if n.Foundation == v.Foundation {
			out = append(out, n)
		}
	}
	return out
}

// groupKey returns the partition key of a node for the given mode.
func groupKey(n *CertificateNode, mode GroupMode) string {
	if mode == ByFoundationAndCertName {
		return n.Foundation + "\x00" + n.CertName
	}
	return n.Foundation
}

// partition splits nodes by group key, keeping input order inside a group.
// Keys are returned in first-seen order.
func partition(nodes []*CertificateNode, mode GroupMode) ([]string, map[string][]*CertificateNode) {
	var keys []string
	groups := make(map[string][]*CertificateNode)
	for _, n := range nodes {
		k := groupKey(n, mode)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], n)
	}
	return keys, groups
}
