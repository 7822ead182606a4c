package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	graphschemav1 "github.com/redbco/graphschema/api/graphschema/v1"
)

func keyRefs(names []string) []*graphschemav1.PropertyKey {
	out := make([]*graphschemav1.PropertyKey, 0, len(names))
	for _, n := range names {
		out = append(out, &graphschemav1.PropertyKey{Name: n})
	}
	return out
}

func newIndicesCmd(opts *options) *cobra.Command {
	var element string

	cmd := &cobra.Command{
		Use:     "indices",
		Aliases: []string{"index"},
		Short:   "Manage composite and mixed indices",
	}
	cmd.PersistentFlags().StringVarP(&element, "element", "e", "vertex", "Indexed element: vertex or edge")

	indexCall := func(cmd *cobra.Command, fn func(ctx context.Context, ic indexClient) error) error {
		return opts.call(cmd, func(ctx context.Context, c *client) error {
			ic, err := c.indices(element)
			if err != nil {
				return err
			}
			return fn(ctx, ic)
		})
	}

	var label string
	var mixed bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List indices",
		Long:  "List composite indices, or mixed ones with --mixed. --label ALL selects indices not constrained to a label.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &graphschemav1.GetIndicesRequest{Context: opts.graph, Label: label}
			return indexCall(cmd, func(ctx context.Context, ic indexClient) error {
				if mixed {
					indices, err := recvAll(ic.GetMixedIndices(ctx, req))
					if err != nil {
						return err
					}
					return opts.print(cmd.OutOrStdout(), indices, mixedTable(indices...))
				}
				indices, err := recvAll(ic.GetCompositeIndices(ctx, req))
				if err != nil {
					return err
				}
				return opts.print(cmd.OutOrStdout(), indices, compositeTable(indices...))
			})
		},
	}
	list.Flags().StringVar(&label, "label", "", "Only indices constrained to this label")
	list.Flags().BoolVar(&mixed, "mixed", false, "List mixed instead of composite indices")
	cmd.AddCommand(list)

	cmd.AddCommand(&cobra.Command{
		Use:   "get [name]",
		Short: "Show one composite index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return indexCall(cmd, func(ctx context.Context, ic indexClient) error {
				idx, err := ic.GetCompositeIndexByName(ctx, &graphschemav1.GetIndexByNameRequest{Context: opts.graph, Name: args[0]})
				if err != nil {
					return err
				}
				return opts.print(cmd.OutOrStdout(), idx, compositeTable(idx))
			})
		},
	})

	var (
		compositeLabel string
		compositeKeys  []string
		unique         bool
	)
	composite := &cobra.Command{
		Use:   "ensure-composite [name]",
		Short: "Build a composite index unless it exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx := &graphschemav1.CompositeIndex{
				Name:       args[0],
				Label:      compositeLabel,
				Properties: keyRefs(compositeKeys),
				Unique:     unique,
			}
			return indexCall(cmd, func(ctx context.Context, ic indexClient) error {
				built, err := ic.EnsureCompositeIndex(ctx, &graphschemav1.EnsureCompositeIndexRequest{Context: opts.graph, Index: idx})
				if err != nil {
					return err
				}
				return opts.print(cmd.OutOrStdout(), built, compositeTable(built))
			})
		},
	}
	composite.Flags().StringVar(&compositeLabel, "label", "", "Label the index is constrained to")
	composite.Flags().StringArrayVarP(&compositeKeys, "key", "k", nil, "Indexed property key, in index order, repeatable")
	composite.Flags().BoolVar(&unique, "unique", false, "Enforce uniqueness of the indexed values")
	cmd.AddCommand(composite)

	var (
		mixedLabel string
		mixedKeys  []string
		backend    string
	)
	mixedEnsure := &cobra.Command{
		Use:   "ensure-mixed [name]",
		Short: "Build a mixed index unless it exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx := &graphschemav1.MixedIndex{
				Name:       args[0],
				Label:      mixedLabel,
				Properties: keyRefs(mixedKeys),
				Backend:    backend,
			}
			return indexCall(cmd, func(ctx context.Context, ic indexClient) error {
				built, err := ic.EnsureMixedIndex(ctx, &graphschemav1.EnsureMixedIndexRequest{Context: opts.graph, Index: idx})
				if err != nil {
					return err
				}
				return opts.print(cmd.OutOrStdout(), built, mixedTable(built))
			})
		},
	}
	mixedEnsure.Flags().StringVar(&mixedLabel, "label", "", "Label the index is constrained to")
	mixedEnsure.Flags().StringArrayVarP(&mixedKeys, "key", "k", nil, "Indexed property key, repeatable")
	mixedEnsure.Flags().StringVar(&backend, "backend", "", "Name of the external indexing backend")
	cmd.AddCommand(mixedEnsure)

	cmd.AddCommand(&cobra.Command{
		Use:   "readiness [name]",
		Short: "Poll the backfill progress of an index once",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return indexCall(cmd, func(ctx context.Context, ic indexClient) error {
				rd, err := ic.GetIndexReadiness(ctx, &graphschemav1.GetIndexReadinessRequest{Context: opts.graph, Name: args[0]})
				if err != nil {
					return err
				}
				return opts.print(cmd.OutOrStdout(), rd, readinessTable(rd))
			})
		},
	})

	var (
		wait        bool
		waitTimeout time.Duration
	)
	enable := &cobra.Command{
		Use:   "enable [name]",
		Short: "Enable a REGISTERED composite index",
		Long: "Move a REGISTERED composite index to ENABLED. With --wait the server first waits for the backfill " +
			"to finish, for at most --wait-timeout.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &graphschemav1.EnableCompositeIndexRequest{Context: opts.graph, Name: args[0], Wait: wait}
			if wait && waitTimeout > 0 {
				if waitTimeout >= opts.timeout {
					return fmt.Errorf("--wait-timeout %s must be shorter than --timeout %s", waitTimeout, opts.timeout)
				}
				req.TimeoutSeconds = int32(waitTimeout / time.Second)
			}
			return indexCall(cmd, func(ctx context.Context, ic indexClient) error {
				idx, err := ic.EnableCompositeIndex(ctx, req)
				if err != nil {
					return err
				}
				return opts.print(cmd.OutOrStdout(), idx, compositeTable(idx))
			})
		},
	}
	enable.Flags().BoolVar(&wait, "wait", false, "Wait for the index to become REGISTERED first")
	enable.Flags().DurationVar(&waitTimeout, "wait-timeout", 20*time.Second, "Upper bound of the server-side wait")
	cmd.AddCommand(enable)

	return cmd
}
