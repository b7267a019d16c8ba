// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certgraph

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// NormalizeDeployments turns a raw deployment field into canonical tags.
//
// Strings are split on commas and semicolons. Lists are taken element by
// element. Tags are trimmed, empty ones dropped, and duplicates removed while
// keeping first-occurrence order.
func NormalizeDeployments(raw any) []string {
	var parts []string
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		parts = strings.FieldsFunc(v, isDeploymentSeparator)
	case []string:
		parts = v
	case []any:
		parts = make([]string, 0, len(v))
		for _, e := range v {
			switch s := e.(type) {
			case nil:
			case string:
				parts = append(parts, s)
			default:
				parts = append(parts, fmt.Sprint(s))
			}
		}
	default:
		parts = strings.FieldsFunc(fmt.Sprint(v), isDeploymentSeparator)
	}

	tags := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

func isDeploymentSeparator(r rune) bool { return r == ',' || r == ';' }

// DeploymentIndex maps deployment tags to the nodes that carry them.
type DeploymentIndex struct {
	byTag  map[string][]*CertificateNode
	folded map[string]string // tag -> case-folded tag
	tags   []string          // distinct tags, first-seen order
	order  map[*CertificateNode]int
}

// NewDeploymentIndex builds the reverse index in a single pass over all tags.
func NewDeploymentIndex(nodes []*CertificateNode) *DeploymentIndex {
	idx := &DeploymentIndex{
		byTag:  make(map[string][]*CertificateNode),
		folded: make(map[string]string),
		order:  make(map[*CertificateNode]int, len(nodes)),
	}
	fold := cases.Fold()

	for i, n := range nodes {
		idx.order[n] = i
		for _, tag := range n.Deployments {
			if _, ok := idx.byTag[tag]; !ok {
				idx.tags = append(idx.tags, tag)
				idx.folded[tag] = fold.String(tag)
			}
			idx.byTag[tag] = append(idx.byTag[tag], n)
		}
	}

	return idx
}

// Exact returns the nodes carrying exactly the given tag, in input order.
func (idx *DeploymentIndex) Exact(tag string) []*CertificateNode {
	return slices.Clone(idx.byTag[tag])
}

// Contains returns the nodes with at least one tag containing query under
// case-insensitive comparison, in input order. An empty query matches nothing.
func (idx *DeploymentIndex) Contains(query string) []*CertificateNode {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil
	}
	q = cases.Fold().String(q)

	seen := make(map[*CertificateNode]struct{})
	var out []*CertificateNode
	for _, tag := range idx.tags {
		if !strings.Contains(idx.folded[tag], q) {
			continue
		}
		for _, n := range idx.byTag[tag] {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}

	slices.SortFunc(out, func(a, b *CertificateNode) int {
		return cmp.Compare(idx.order[a], idx.order[b])
	})
	return out
}

// Match runs Exact or Contains depending on exact.
func (idx *DeploymentIndex) Match(query string, exact bool) []*CertificateNode {
	if exact {
		return idx.Exact(strings.TrimSpace(query))
	}
	return idx.Contains(query)
}

// TagCount is a deployment tag and the number of nodes referencing it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TopTags returns tag frequencies by descending count, ties broken lexically.
// A limit of zero or less returns every tag.
func TopTags(nodes []*CertificateNode, limit int) []TagCount {
	freq := make(map[string]int)
	for _, n := range nodes {
		for _, tag := range n.Deployments {
			freq[tag]++
		}
	}

	counts := make([]TagCount, 0, len(freq))
	for tag, c := range freq {
		counts = append(counts, TagCount{Tag: tag, Count: c})
	}
	slices.SortFunc(counts, func(a, b TagCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Tag, b.Tag)
	})

	if limit > 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}

// Tags returns the sorted distinct deployment tags across nodes.
func Tags(nodes []*CertificateNode) []string {
	set := make(map[string]struct{})
	for _, n := range nodes {
		for _, tag := range n.Deployments {
			set[tag] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for tag := range set {
		out = append(out, tag)
	}
	slices.Sort(out)
	return out
}
