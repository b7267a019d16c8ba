// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"fmt"

	"github.com/H0llyW00dzZ/certview/src/internal/certgraph"
	"github.com/H0llyW00dzZ/certview/src/internal/ingest"
	"github.com/H0llyW00dzZ/certview/src/internal/render"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func (a *app) newTiersCommand() *cobra.Command {
	var vf viewFlags
	cmd := &cobra.Command{
		Use:   "tiers [FILE...]",
		Short: "Group certificates into root, intermediate and leaf tiers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.renderTiers(cmd.Context(), vf, a.inputs(args))
		},
	}
	vf.register(cmd, true)
	return cmd
}

// renderTiers loads files and writes the grouped tiers to the output.
func (a *app) renderTiers(ctx context.Context, vf viewFlags, files []string) error {
	view, format, err := a.resolve(vf)
	if err != nil {
		return err
	}
	snap, err := a.load(ctx, files)
	if err != nil {
		return err
	}

	out, err := render.Groups(format, certgraph.GroupTiers(snap.Nodes, view), a.selection(snap, view))
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(a.out, out)
	return err
}

func (a *app) newChainCommand() *cobra.Command {
	var vf viewFlags
	cmd := &cobra.Command{
		Use:   "chain ANCHOR -f FILE...",
		Short: "Show the issuer chain of a certificate",
		Long:  "Selects every ancestor and descendant of ANCHOR inside its group and\nprints the selected version ids followed by the chain.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if vf.format == "" {
				vf.format = string(render.FormatTable)
			}
			view, format, err := a.resolve(vf)
			if err != nil {
				return err
			}
			view.Anchor = args[0]

			snap, err := a.load(cmd.Context(), a.inputs(nil))
			if err != nil {
				return err
			}
			sel := a.cache.Selector(snap, view).Select(view.Anchor)
			if len(sel) == 0 {
				return fmt.Errorf("%w: %q", ErrUnknownAnchor, view.Anchor)
			}

			var chain []*certgraph.CertificateNode
			for _, n := range view.Filter(snap.Nodes) {
				if sel.Has(n.VersionID) {
					chain = append(chain, n)
				}
			}
			a.log.Printf("chain of %s has %d certificates", view.Anchor, len(chain))

			if format != render.FormatTable {
				out, err := render.Groups(format, certgraph.GroupTiers(chain, view), sel)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(a.out, out)
				return err
			}

			for _, id := range sel.IDs() {
				fmt.Fprintln(a.out, id)
			}
			fmt.Fprintln(a.out)
			_, err = fmt.Fprint(a.out, render.Table(certgraph.SortNodes(chain, certgraph.SortDepth), sel))
			return err
		},
	}
	vf.register(cmd, false)
	return cmd
}

func (a *app) newDeploymentsCommand() *cobra.Command {
	var (
		vf    viewFlags
		exact bool
		limit int
	)
	cmd := &cobra.Command{
		Use:   "deployments [QUERY] -f FILE...",
		Short: "List deployment tags or the certificates deployed to them",
		Long:  "Without QUERY, prints the most used deployment tags. With QUERY, prints the\ncertificates whose tags contain it, or equal it with --exact.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, _, err := a.resolve(vf)
			if err != nil {
				return err
			}
			snap, err := a.load(cmd.Context(), a.inputs(nil))
			if err != nil {
				return err
			}
			nodes := view.Filter(snap.Nodes)

			if len(args) == 0 {
				if limit <= 0 {
					limit = a.cfg.Deployments.TopLimit
				}
				_, err = fmt.Fprint(a.out, render.TagTable(certgraph.TopTags(nodes, limit)))
				return err
			}

			matches := certgraph.NewDeploymentIndex(nodes).Match(args[0], exact)
			a.log.Printf("%d certificates match deployment %q", len(matches), args[0])
			if len(matches) == 0 {
				_, err = fmt.Fprintf(a.out, "No certificates deployed to %q\n", args[0])
				return err
			}
			_, err = fmt.Fprint(a.out, render.Table(certgraph.SortNodes(matches, view.Sort), nil))
			return err
		},
	}
	vf.register(cmd, false)
	cmd.Flags().BoolVar(&exact, "exact", false, "match the tag exactly instead of by substring")
	cmd.Flags().IntVar(&limit, "limit", 0, "number of tags listed without a query (default from config)")
	return cmd
}

func (a *app) newBucketsCommand() *cobra.Command {
	var vf viewFlags
	cmd := &cobra.Command{
		Use:   "buckets [FILE...]",
		Short: "Count certificates per expiry bucket",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, _, err := a.resolve(vf)
			if err != nil {
				return err
			}
			snap, err := a.load(cmd.Context(), a.inputs(args))
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(a.out, render.BucketTable(certgraph.CountBuckets(view.Filter(snap.Nodes))))
			return err
		},
	}
	vf.register(cmd, false)
	return cmd
}

func (a *app) newCyclesCommand() *cobra.Command {
	var vf viewFlags
	cmd := &cobra.Command{
		Use:   "cycles [FILE...]",
		Short: "Report issuer cycles",
		RunE: func(cmd *cobra.Command, args []string) error {
			if vf.format == "" {
				vf.format = string(render.FormatTable)
			}
			view, format, err := a.resolve(vf)
			if err != nil {
				return err
			}
			snap, err := a.load(cmd.Context(), a.inputs(args))
			if err != nil {
				return err
			}
			cycles := certgraph.FindCycles(view.Filter(snap.Nodes))

			switch format {
			case render.FormatJSON:
				if cycles == nil {
					cycles = []certgraph.Cycle{}
				}
				data, err := json.MarshalIndent(cycles, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(a.out, string(data))
				return err
			default:
				_, err = fmt.Fprint(a.out, render.CycleTable(cycles))
				return err
			}
		},
	}
	vf.register(cmd, false)
	return cmd
}

func (a *app) newValidateCommand() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "validate [FILE...]",
		Short: "Check JSON inputs against the record schema",
		Long:  "Reports records whose fields are missing or mistyped. Warnings never stop a\nload; --strict turns them into a failing exit status.",
		RunE: func(cmd *cobra.Command, args []string) error {
			files := a.inputs(args)
			if len(files) == 0 {
				return ErrInputFileRequired
			}

			total := 0
			for _, path := range files {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				data, err := ingest.ReadFile(path)
				if err != nil {
					return err
				}
				if ingest.DetectFormat(path, data) == ingest.FormatX509 {
					fmt.Fprintf(a.out, "%s: skipped, X.509 input\n", path)
					continue
				}

				warnings, err := ingest.Validate(data)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				total += len(warnings)
				if len(warnings) == 0 {
					fmt.Fprintf(a.out, "%s: ok\n", path)
					continue
				}
				fmt.Fprintf(a.out, "%s: %d warnings\n", path, len(warnings))
				for _, w := range warnings {
					fmt.Fprintf(a.out, "  %s\n", w)
				}
			}

			if total > 0 {
				a.log.Warnf("%d schema warnings in %d files", total, len(files))
				if strict {
					return fmt.Errorf("%w: %d", ErrValidationFailed, total)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with an error when any warning is found")
	return cmd
}
