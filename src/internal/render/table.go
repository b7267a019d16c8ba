// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package render

import (
	"strconv"
	"strings"

	"github.com/H0llyW00dzZ/certview/src/internal/certgraph"
	"github.com/H0llyW00dzZ/certview/src/internal/helper/gc"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// markdown renders header and rows as a markdown table.
func markdown(header []string, rows [][]string) string {
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	table := tablewriter.NewTable(buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)
	table.Header(header)
	table.Bulk(rows)
	table.Render()
	return buf.String()
}

// Table renders nodes as a markdown table, one row per node in input order.
//
// With an active selection the first column marks selected and dimmed
// rows.
//
// Parameters:
//   - nodes: Nodes to list, usually one group's Nodes() or a match list
//   - sel: Active chain selection, nil for none
//
// Returns:
//   - string: Markdown table representation
func Table(nodes []*certgraph.CertificateNode, sel certgraph.Selection) string {
	if len(nodes) == 0 {
		return "No certificates to display\n"
	}

	rows := make([][]string, 0, len(nodes))
	for i, n := range nodes {
		index := strconv.Itoa(i + 1)
		if m := marker(n, sel); m != "" {
			index = m + " " + index
		}

		depth := "-"
		if n.IsCA {
			depth = strconv.Itoa(n.Depth)
		}

		rows = append(rows, []string{
			index,
			n.Foundation,
			n.CertName,
			n.VersionIDShort,
			string(certgraph.TierOf(n)),
			depth,
			days(n),
			string(n.Bucket()),
			strings.Join(n.Deployments, ", "),
			strings.Join(Badges(n), " "),
		})
	}

	return markdown([]string{"#", "Foundation", "Certificate", "Version", "Tier", "Depth", "Days", "Bucket", "Deployments", "Flags"}, rows)
}

// TagTable renders deployment tag frequencies.
func TagTable(tags []certgraph.TagCount) string {
	if len(tags) == 0 {
		return "No deployments detected\n"
	}
	rows := make([][]string, 0, len(tags))
	for _, t := range tags {
		rows = append(rows, []string{t.Tag, strconv.Itoa(t.Count)})
	}
	return markdown([]string{"Deployment", "Certificates"}, rows)
}

// BucketTable renders bucket counts in display order.
func BucketTable(counts map[certgraph.Bucket]int) string {
	rows := make([][]string, 0, len(certgraph.Buckets))
	total := 0
	for _, b := range certgraph.Buckets {
		rows = append(rows, []string{string(b), strconv.Itoa(counts[b])})
		total += counts[b]
	}
	rows = append(rows, []string{"total", strconv.Itoa(total)})
	return markdown([]string{"Bucket", "Certificates"}, rows)
}

// CycleTable renders an issuer cycle report.
func CycleTable(cycles []certgraph.Cycle) string {
	if len(cycles) == 0 {
		return "No issuer cycles found\n"
	}
	rows := make([][]string, 0, len(cycles))
	for i, c := range cycles {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			c.Foundation,
			strconv.Itoa(len(c.Members)),
			strings.Join(c.Members, " → "),
		})
	}
	return markdown([]string{"#", "Foundation", "Size", "Members"}, rows)
}
