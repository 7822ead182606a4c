package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	graphschemav1 "github.com/redbco/graphschema/api/graphschema/v1"
)

// parseProperty reads a --property value of the form name[:DataType[:CARDINALITY]]
func parseProperty(s string) (*graphschemav1.PropertyKey, error) {
	parts := strings.Split(s, ":")
	if len(parts) > 3 || parts[0] == "" {
		return nil, fmt.Errorf("invalid property %q, expected name[:DataType[:CARDINALITY]]", s)
	}
	pk := &graphschemav1.PropertyKey{Name: parts[0]}
	if len(parts) > 1 {
		pk.DataType = parts[1]
	}
	if len(parts) > 2 {
		pk.Cardinality = parts[2]
	}
	return pk, nil
}

func parseProperties(values []string) ([]*graphschemav1.PropertyKey, error) {
	out := make([]*graphschemav1.PropertyKey, 0, len(values))
	for _, v := range values {
		pk, err := parseProperty(v)
		if err != nil {
			return nil, err
		}
		out = append(out, pk)
	}
	return out, nil
}

func optionalID(cmd *cobra.Command, id int64) *int64 {
	if !cmd.Flags().Changed("id") {
		return nil
	}
	return &id
}

func newKeysCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage property keys",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all property keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.call(cmd, func(ctx context.Context, c *client) error {
				keys, err := recvAll(c.keys.GetPropertyKeys(ctx, &graphschemav1.GetPropertyKeysRequest{Context: opts.graph}))
				if err != nil {
					return err
				}
				return opts.print(cmd.OutOrStdout(), keys, keysTable(keys...))
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get [name]",
		Short: "Show one property key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.call(cmd, func(ctx context.Context, c *client) error {
				key, err := c.keys.GetPropertyKeyByName(ctx, &graphschemav1.GetPropertyKeyByNameRequest{Context: opts.graph, Name: args[0]})
				if err != nil {
					return err
				}
				return opts.print(cmd.OutOrStdout(), key, keysTable(key))
			})
		},
	})

	var dataType, cardinality, label string
	ensure := &cobra.Command{
		Use:   "ensure [name]",
		Short: "Create a property key unless it exists",
		Long: "Create a property key unless one with the name exists. The data type and cardinality of an existing " +
			"key are never changed. With --label the key is also associated with that vertex or edge label.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pk := &graphschemav1.PropertyKey{Name: args[0], DataType: dataType, Cardinality: cardinality}
			return opts.call(cmd, func(ctx context.Context, c *client) error {
				var key *graphschemav1.PropertyKey
				var err error
				if label != "" {
					key, err = c.keys.EnsurePropertyKeyForLabel(ctx, &graphschemav1.EnsurePropertyKeyForLabelRequest{
						Context: opts.graph, Label: label, PropertyKey: pk,
					})
				} else {
					key, err = c.keys.EnsurePropertyKey(ctx, &graphschemav1.EnsurePropertyKeyRequest{Context: opts.graph, PropertyKey: pk})
				}
				if err != nil {
					return err
				}
				return opts.print(cmd.OutOrStdout(), key, keysTable(key))
			})
		},
	}
	ensure.Flags().StringVar(&dataType, "type", "", "Data type of a new key (default String)")
	ensure.Flags().StringVar(&cardinality, "cardinality", "", "SINGLE, LIST or SET (default SINGLE)")
	ensure.Flags().StringVar(&label, "label", "", "Vertex or edge label to associate the key with")
	cmd.AddCommand(ensure)

	return cmd
}

func newVertexLabelsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "vertex-labels",
		Aliases: []string{"vl"},
		Short:   "Manage vertex labels",
	}

	var name string
	list := &cobra.Command{
		Use:   "list",
		Short: "List vertex labels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.call(cmd, func(ctx context.Context, c *client) error {
				var labels []*graphschemav1.VertexLabel
				var err error
				if name != "" {
					labels, err = recvAll(c.vertices.GetVertexLabelsByName(ctx, &graphschemav1.GetVertexLabelsByNameRequest{Context: opts.graph, Name: name}))
				} else {
					labels, err = recvAll(c.vertices.GetVertexLabels(ctx, &graphschemav1.GetVertexLabelsRequest{Context: opts.graph}))
				}
				if err != nil {
					return err
				}
				return opts.print(cmd.OutOrStdout(), labels, vertexLabelsTable(labels...))
			})
		},
	}
	list.Flags().StringVar(&name, "name", "", "Only the label with this name")
	cmd.AddCommand(list)

	var (
		labelID     int64
		properties  []string
		readOnly    bool
		partitioned bool
	)
	ensure := &cobra.Command{
		Use:   "ensure [name]",
		Short: "Create, rename or extend a vertex label",
		Long: "Create a vertex label unless it exists and associate the given properties with it. With --id the " +
			"label with that id is renamed to [name]. --read-only and --partitioned apply only on creation.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			props, err := parseProperties(properties)
			if err != nil {
				return err
			}
			vl := &graphschemav1.VertexLabel{
				Id:          optionalID(cmd, labelID),
				Name:        args[0],
				Properties:  props,
				ReadOnly:    readOnly,
				Partitioned: partitioned,
			}
			return opts.call(cmd, func(ctx context.Context, c *client) error {
				label, err := c.vertices.EnsureVertexLabel(ctx, &graphschemav1.EnsureVertexLabelRequest{Context: opts.graph, Label: vl})
				if err != nil {
					return err
				}
				return opts.print(cmd.OutOrStdout(), label, vertexLabelsTable(label))
			})
		},
	}
	ensure.Flags().Int64Var(&labelID, "id", 0, "Id of an existing label to rename")
	ensure.Flags().StringArrayVarP(&properties, "property", "p", nil, "Property as name[:DataType[:CARDINALITY]], repeatable")
	ensure.Flags().BoolVar(&readOnly, "read-only", false, "Create the label read-only")
	ensure.Flags().BoolVar(&partitioned, "partitioned", false, "Create the label partitioned")
	cmd.AddCommand(ensure)

	return cmd
}

func newEdgeLabelsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "edge-labels",
		Aliases: []string{"el"},
		Short:   "Manage edge labels",
	}

	var name string
	list := &cobra.Command{
		Use:   "list",
		Short: "List edge labels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.call(cmd, func(ctx context.Context, c *client) error {
				var labels []*graphschemav1.EdgeLabel
				var err error
				if name != "" {
					labels, err = recvAll(c.edges.GetEdgeLabelsByName(ctx, &graphschemav1.GetEdgeLabelsByNameRequest{Context: opts.graph, Name: name}))
				} else {
					labels, err = recvAll(c.edges.GetEdgeLabels(ctx, &graphschemav1.GetEdgeLabelsRequest{Context: opts.graph}))
				}
				if err != nil {
					return err
				}
				return opts.print(cmd.OutOrStdout(), labels, edgeLabelsTable(labels...))
			})
		},
	}
	list.Flags().StringVar(&name, "name", "", "Only the label with this name")
	cmd.AddCommand(list)

	var (
		labelID      int64
		properties   []string
		multiplicity string
		undirected   bool
	)
	ensure := &cobra.Command{
		Use:   "ensure [name]",
		Short: "Create, rename or extend an edge label",
		Long: "Create an edge label unless it exists and associate the given properties with it. With --id the " +
			"label with that id is renamed to [name]. --multiplicity and --undirected apply only on creation.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			props, err := parseProperties(properties)
			if err != nil {
				return err
			}
			el := &graphschemav1.EdgeLabel{
				Id:           optionalID(cmd, labelID),
				Name:         args[0],
				Properties:   props,
				Multiplicity: multiplicity,
			}
			if cmd.Flags().Changed("undirected") {
				directed := !undirected
				el.Directed = &directed
			}
			return opts.call(cmd, func(ctx context.Context, c *client) error {
				label, err := c.edges.EnsureEdgeLabel(ctx, &graphschemav1.EnsureEdgeLabelRequest{Context: opts.graph, Label: el})
				if err != nil {
					return err
				}
				return opts.print(cmd.OutOrStdout(), label, edgeLabelsTable(label))
			})
		},
	}
	ensure.Flags().Int64Var(&labelID, "id", 0, "Id of an existing label to rename")
	ensure.Flags().StringArrayVarP(&properties, "property", "p", nil, "Property as name[:DataType[:CARDINALITY]], repeatable")
	ensure.Flags().StringVar(&multiplicity, "multiplicity", "", "MULTI, SIMPLE, MANY2ONE, ONE2MANY or ONE2ONE (default MULTI)")
	ensure.Flags().BoolVar(&undirected, "undirected", false, "Create the label undirected")
	cmd.AddCommand(ensure)

	return cmd
}
