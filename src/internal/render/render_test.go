// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package render_test

import (
	"strings"
	"testing"

	"github.com/H0llyW00dzZ/certview/src/internal/certgraph"
	"github.com/H0llyW00dzZ/certview/src/internal/render"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() []*certgraph.CertificateNode {
	records := []certgraph.Record{
		{VersionID: "root0001", CertName: "root", Foundation: "f1", IsCA: true, Active: true, DaysRemaining: 400},
		{VersionID: "mid00001", CertName: "mid", Foundation: "f1", IsCA: true, Active: true, IssuerVersion: "root0001", DaysRemaining: 50},
		{VersionID: "leafA001", CertName: "web", Foundation: "f1", Active: true, IssuerVersion: "mid00001", DaysRemaining: 10, Deployments: "edge, api"},
		{VersionID: "leafB001", CertName: "db", Foundation: "f1", IssuerVersion: "root0001", Deployments: "db"},
		{VersionID: "orphan01", CertName: "lost", Foundation: "f1", IsCA: true, Active: true, IssuerVersion: "gone"},
		{VersionID: "cycA0001", CertName: "loopA", Foundation: "f2", IsCA: true, Active: true, IssuerVersion: "cycB0001"},
		{VersionID: "cycB0001", CertName: "loopB", Foundation: "f2", IsCA: true, Active: true, IssuerVersion: "cycA0001"},
	}
	nodes, _ := certgraph.NewNodes(records)
	certgraph.BuildHierarchy(nodes, certgraph.HierarchyOptions{})
	return nodes
}

func byID(nodes []*certgraph.CertificateNode, id string) *certgraph.CertificateNode {
	for _, n := range nodes {
		if n.VersionID == id {
			return n
		}
	}
	return nil
}

func TestParseFormat(t *testing.T) {
	for _, f := range render.Formats {
		got, err := render.ParseFormat(strings.ToUpper(string(f)))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	_, err := render.ParseFormat("yaml")
	assert.ErrorIs(t, err, render.ErrUnknownFormat)

	_, err = render.Groups(render.Format("xml"), nil, nil)
	assert.ErrorIs(t, err, render.ErrUnknownFormat)
}

func TestBadges(t *testing.T) {
	nodes := fixture()

	assert.Empty(t, render.Badges(byID(nodes, "root0001")))
	assert.Equal(t, []string{"INACTIVE"}, render.Badges(byID(nodes, "leafB001")))
	assert.Equal(t, []string{"DANGLING"}, render.Badges(byID(nodes, "orphan01")))
	assert.Equal(t, []string{"CYCLE"}, render.Badges(byID(nodes, "cycA0001")))

	runaway := &certgraph.CertificateNode{IsCA: true, Active: true, Depth: certgraph.DepthRunaway}
	assert.Equal(t, []string{"RUNAWAY"}, render.Badges(runaway))
}

func TestTree(t *testing.T) {
	groups := certgraph.GroupTiers(fixture(), certgraph.View{Sort: certgraph.SortName})
	out := render.Tree(groups, nil)

	want := strings.Join([]string{
		"f1 (5 certificates)",
		"├── Root",
		"│   └── [>90] root(root0001) depth=1 days=400",
		"├── Intermediate (depth 2)",
		"│   ├── [<=60] mid(mid00001) depth=2 days=50",
		"│   └── [no-date] lost(orphan01) depth=2 DANGLING",
		"└── Leaf",
		"    ├── [<=30] web(leafA001) days=10",
		"    └── [no-date] db(leafB001) INACTIVE",
		"",
		"f2 (2 certificates)",
		"└── Intermediate (depth 98)",
		"    ├── [no-date] loopA(cycA0001) depth=98 CYCLE",
		"    └── [no-date] loopB(cycB0001) depth=98 CYCLE",
		"",
	}, "\n")
	assert.Equal(t, want, out)
}

func TestTree_Selection(t *testing.T) {
	nodes := fixture()
	groups := certgraph.GroupTiers(nodes, certgraph.View{Foundation: "f1", Sort: certgraph.SortName})
	sel := certgraph.SelectChain("leafA001", nodes)

	out := render.Tree(groups, sel)
	assert.Contains(t, out, "● [<=30] web(leafA001)")
	assert.Contains(t, out, "● [<=60] mid(mid00001)")
	assert.Contains(t, out, "● [>90] root(root0001)")
	assert.Contains(t, out, "○ [no-date] db(leafB001)")
	assert.Contains(t, out, "○ [no-date] lost(orphan01)")
}

func TestTree_Empty(t *testing.T) {
	assert.Equal(t, "No certificates to display\n", render.Tree(nil, nil))
}

func TestTable(t *testing.T) {
	nodes := fixture()
	sel := certgraph.SelectChain("mid00001", nodes)
	out := render.Table(nodes[:4], sel)

	for _, header := range []string{"foundation", "certificate", "deployments"} {
		assert.Contains(t, strings.ToLower(out), header)
	}
	for _, want := range []string{"edge, api", "leafA001", "intermediate", "<=60", "INACTIVE", "● 1", "○ 4"} {
		assert.Contains(t, out, want)
	}
	for _, id := range []string{"root0001", "mid00001", "leafA001", "leafB001"} {
		assert.Equal(t, 1, strings.Count(out, id), "one row per node")
	}

	assert.Equal(t, "No certificates to display\n", render.Table(nil, nil))
}

func TestSummaryTables(t *testing.T) {
	nodes := fixture()

	tags := render.TagTable(certgraph.TopTags(nodes, 10))
	assert.Contains(t, tags, "edge")
	assert.Contains(t, tags, "db")
	assert.Equal(t, "No deployments detected\n", render.TagTable(nil))

	buckets := render.BucketTable(certgraph.CountBuckets(nodes))
	assert.Contains(t, buckets, "no-date")
	assert.Contains(t, buckets, "total")
	assert.Contains(t, buckets, "7")

	cycles := render.CycleTable(certgraph.FindCycles(nodes))
	assert.Contains(t, cycles, "cycA0001 → cycB0001")
	assert.Equal(t, "No issuer cycles found\n", render.CycleTable(nil))
}

func TestJSON(t *testing.T) {
	nodes := fixture()
	groups := certgraph.GroupTiers(nodes, certgraph.View{Sort: certgraph.SortName})
	sel := certgraph.SelectChain("leafA001", nodes)

	data, err := render.JSON(groups, sel)
	require.NoError(t, err)

	var doc render.DocumentView
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, []string{"leafA001", "mid00001", "root0001"}, doc.Selection)
	require.Len(t, doc.Groups, 2)

	f1 := doc.Groups[0]
	assert.Equal(t, "f1", f1.Foundation)
	assert.Equal(t, 5, f1.Count)

	var tiers []string
	for _, tier := range f1.Tiers {
		tiers = append(tiers, tier.Tier)
	}
	assert.Equal(t, []string{"root", "intermediate", "leaf"}, tiers)
	assert.Equal(t, 2, f1.Tiers[1].Depth)

	leaves := f1.Tiers[2].Nodes
	require.Len(t, leaves, 2)
	db := leaves[1]
	assert.Equal(t, "leafB001", db.VersionID)
	assert.False(t, db.Highlighted)
	assert.Equal(t, []string{"db"}, db.Deployments)
	assert.Nil(t, db.DaysRemaining)
	assert.Equal(t, "no-date", db.Bucket)

	web := leaves[0]
	assert.True(t, web.Highlighted)
	assert.Equal(t, "root(root0001) → mid(mid00001) → web(leafA001)", web.Trace)
	assert.Equal(t, certgraph.DepthLeaf, web.Depth)

	assert.True(t, doc.Groups[1].Tiers[0].Nodes[0].CycleDetected)
}

func TestJSON_NoSelection(t *testing.T) {
	out, err := render.Groups(render.FormatJSON, certgraph.GroupTiers(fixture(), certgraph.View{}), nil)
	require.NoError(t, err)
	assert.NotContains(t, out, `"selection"`)
	assert.NotContains(t, out, `"highlighted": false`)
	assert.True(t, strings.HasSuffix(out, "}\n"))
}
