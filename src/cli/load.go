// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"io"
	"os"

	"github.com/H0llyW00dzZ/certview/src/internal/certgraph"
	"github.com/H0llyW00dzZ/certview/src/internal/ingest"
	"github.com/H0llyW00dzZ/certview/src/internal/render"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// viewFlags are the view-shaping flags shared by several commands. Empty
// values fall back to the configuration.
type viewFlags struct {
	groupBy    string
	sort       string
	format     string
	foundation string
	anchor     string
}

// register adds the flags to cmd. Only tiers and watch take --select.
func (f *viewFlags) register(cmd *cobra.Command, selectable bool) {
	flags := cmd.Flags()
	flags.StringVar(&f.groupBy, "group-by", "", "grouping: foundation or foundation-cert")
	flags.StringVar(&f.sort, "sort", "", "order inside a tier: urgency, name or depth")
	flags.StringVar(&f.format, "format", "", "output format: tree, table or json (default tree on a terminal, json otherwise)")
	flags.StringVar(&f.foundation, "foundation", "", "only show this foundation")
	if selectable {
		flags.StringVar(&f.anchor, "select", "", "emphasize the chain of this version id")
	}
}

// resolve builds the view and output format from flags and configuration.
func (a *app) resolve(f viewFlags) (certgraph.View, render.Format, error) {
	groupBy := firstNonEmpty(f.groupBy, a.cfg.View.GroupBy)
	group, err := certgraph.ParseGroupMode(groupBy)
	if err != nil {
		return certgraph.View{}, "", err
	}
	sort, err := certgraph.ParseSortMode(firstNonEmpty(f.sort, a.cfg.View.Sort))
	if err != nil {
		return certgraph.View{}, "", err
	}
	format, err := render.ParseFormat(firstNonEmpty(f.format, a.cfg.View.Format, defaultFormat(a.out)))
	if err != nil {
		return certgraph.View{}, "", err
	}
	return certgraph.View{
		Group:      group,
		Sort:       sort,
		Anchor:     f.anchor,
		Foundation: f.foundation,
	}, format, nil
}

// defaultFormat picks tree for an interactive terminal and json otherwise.
func defaultFormat(w io.Writer) string {
	if f, ok := w.(*os.File); ok {
		fd := f.Fd()
		if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
			return string(render.FormatTree)
		}
	}
	return string(render.FormatJSON)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// load ingests files into the store, annotates the new snapshot and logs
// what was found.
func (a *app) load(ctx context.Context, files []string) (*certgraph.Snapshot, error) {
	if len(files) == 0 {
		return nil, ErrInputFileRequired
	}

	records, err := ingest.LoadFiles(ctx, files, ingest.Options{
		Now:         a.now,
		Foundation:  a.cfg.Ingest.Foundation,
		Concurrency: a.cfg.Ingest.Concurrency,
	})
	if err != nil {
		return nil, err
	}

	snap := a.store.Replace(records)
	stats := certgraph.BuildHierarchy(snap.Nodes, certgraph.HierarchyOptions{
		MaxHops: a.cfg.Limits.MaxDepthHops,
	})
	a.report(len(files), snap, stats)
	return snap, nil
}

// report logs load statistics and anomalies.
func (a *app) report(files int, snap *certgraph.Snapshot, stats certgraph.HierarchyStats) {
	a.log.Printf("loaded %d certificates from %d files: %d foundations, %d roots, %d intermediates, %d leaves",
		stats.Nodes, files, stats.Groups, stats.Roots, stats.Intermediates, stats.Leaves)

	if snap.Duplicates > 0 {
		a.log.Warnf("%d records replaced by a later record with the same version id", snap.Duplicates)
	}
	if stats.Dangling > 0 {
		a.log.Warnf("%d certificates name an issuer that is not loaded", stats.Dangling)
	}
	if stats.Cycles > 0 {
		a.log.Warnf("%d certificates are in or below an issuer cycle", stats.Cycles)
	}
	if stats.Runaway > 0 {
		a.log.Warnf("%d certificates exceed the chain depth limit", stats.Runaway)
	}
}

// selection returns the chain selection of view.Anchor, or nil without one.
func (a *app) selection(snap *certgraph.Snapshot, view certgraph.View) certgraph.Selection {
	if view.Anchor == "" {
		return nil
	}
	selector := a.cache.Selector(snap, view)
	if _, ok := selector.Node(view.Anchor); !ok {
		a.log.Warnf("anchor %q is not loaded; nothing is selected", view.Anchor)
	}
	return selector.Select(view.Anchor)
}
