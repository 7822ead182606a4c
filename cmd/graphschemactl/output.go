package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	graphschemav1 "github.com/redbco/graphschema/api/graphschema/v1"
)

// table is the tabular rendering of a result
type table struct {
	header []string
	rows   [][]string
}

func (o *options) print(w io.Writer, v any, t table) error {
	switch o.output {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		return enc.Close()
	case "table", "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(t.header, "\t"))
		for _, row := range t.rows {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
		return tw.Flush()
	}
	return fmt.Errorf("unknown output format %q, expected table or yaml", o.output)
}

func id(p *int64) string {
	if p == nil {
		return "-"
	}
	return strconv.FormatInt(*p, 10)
}

func keyNames(keys []*graphschemav1.PropertyKey) string {
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, k.Name)
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ",")
}

func keysTable(keys ...*graphschemav1.PropertyKey) table {
	t := table{header: []string{"ID", "NAME", "DATA TYPE", "CARDINALITY"}}
	for _, k := range keys {
		t.rows = append(t.rows, []string{id(k.Id), k.Name, k.DataType, k.Cardinality})
	}
	return t
}

func vertexLabelsTable(labels ...*graphschemav1.VertexLabel) table {
	t := table{header: []string{"ID", "NAME", "PROPERTIES", "READ ONLY", "PARTITIONED"}}
	for _, l := range labels {
		t.rows = append(t.rows, []string{
			id(l.Id), l.Name, keyNames(l.Properties),
			strconv.FormatBool(l.ReadOnly), strconv.FormatBool(l.Partitioned),
		})
	}
	return t
}

func edgeLabelsTable(labels ...*graphschemav1.EdgeLabel) table {
	t := table{header: []string{"ID", "NAME", "PROPERTIES", "MULTIPLICITY", "DIRECTED"}}
	for _, l := range labels {
		directed := "true"
		if l.Directed != nil {
			directed = strconv.FormatBool(*l.Directed)
		}
		t.rows = append(t.rows, []string{id(l.Id), l.Name, keyNames(l.Properties), l.Multiplicity, directed})
	}
	return t
}

func compositeTable(indices ...*graphschemav1.CompositeIndex) table {
	t := table{header: []string{"ID", "NAME", "LABEL", "KEYS", "UNIQUE", "STATUS"}}
	for _, idx := range indices {
		t.rows = append(t.rows, []string{
			id(idx.Id), idx.Name, idx.Label, keyNames(idx.Properties), strconv.FormatBool(idx.Unique), idx.Status,
		})
	}
	return t
}

func mixedTable(indices ...*graphschemav1.MixedIndex) table {
	t := table{header: []string{"ID", "NAME", "LABEL", "KEYS", "BACKEND", "STATUS"}}
	for _, idx := range indices {
		t.rows = append(t.rows, []string{id(idx.Id), idx.Name, idx.Label, keyNames(idx.Properties), idx.Backend, idx.Status})
	}
	return t
}

func readinessTable(rd *graphschemav1.IndexReadiness) table {
	t := table{header: []string{"INDEX", "KEY", "STATUS", "READY"}}
	keys := make([]string, 0, len(rd.KeyStatus))
	for k := range rd.KeyStatus {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		t.rows = append(t.rows, []string{rd.Name, k, rd.KeyStatus[k], strconv.FormatBool(rd.Ready)})
	}
	return t
}
