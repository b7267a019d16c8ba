// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/H0llyW00dzZ/certview/src/internal/certgraph"
)

// ErrUnknownFormat is returned for an output format name that is not recognized.
var ErrUnknownFormat = errors.New("render: unknown output format")

// Format selects how grouped tiers are rendered.
type Format string

// Output formats.
const (
	FormatTree  Format = "tree"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// Formats lists the accepted format names.
var Formats = []Format{FormatTree, FormatTable, FormatJSON}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Groups renders grouped tiers in format f.
//
// Parameters:
//   - f: Output format
//   - groups: Result of certgraph.GroupTiers
//   - sel: Active chain selection, nil for none
//
// Returns:
//   - string: Rendered output, ending in a newline
//   - error: ErrUnknownFormat, or a JSON encoding failure
func Groups(f Format, groups []certgraph.Group, sel certgraph.Selection) (string, error) {
	switch f {
	case FormatTree:
		return Tree(groups, sel), nil
	case FormatTable:
		var nodes []*certgraph.CertificateNode
		for _, g := range groups {
			nodes = append(nodes, g.Nodes()...)
		}
		return Table(nodes, sel), nil
	case FormatJSON:
		data, err := JSON(groups, sel)
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}

// Badges lists the anomaly markers of a node in a fixed order.
func Badges(n *certgraph.CertificateNode) []string {
	var badges []string
	if n.CycleDetected {
		badges = append(badges, "CYCLE")
	}
	if n.Dangling {
		badges = append(badges, "DANGLING")
	}
	if n.IsCA && n.Depth == certgraph.DepthRunaway {
		badges = append(badges, "RUNAWAY")
	}
	if !n.Active {
		badges = append(badges, "INACTIVE")
	}
	return badges
}

// days formats remaining days, "-" when unknown.
func days(n *certgraph.CertificateNode) string {
	if n.DaysRemaining == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *n.DaysRemaining)
}

// Selection markers. Without an active selection no marker is drawn.
const (
	markSelected = "●"
	markDimmed   = "○"
)

func marker(n *certgraph.CertificateNode, sel certgraph.Selection) string {
	switch {
	case sel == nil:
		return ""
	case sel.Has(n.VersionID):
		return markSelected
	default:
		return markDimmed
	}
}
