package neo4j

import (
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/redbco/graphschema/pkg/schema"
)

type indexKey struct {
	key    schema.PropertyKey
	status schema.SchemaStatus
}

func str(m map[string]any, k string) string {
	s, _ := m[k].(string)
	return s
}

func i64(m map[string]any, k string) int64 {
	n, _ := m[k].(int64)
	return n
}

func boolean(m map[string]any, k string) bool {
	b, _ := m[k].(bool)
	return b
}

func recordMap(rec *neo4j.Record, key string) (map[string]any, error) {
	v, ok := rec.Get(key)
	if !ok {
		return nil, fmt.Errorf("record has no %q column", key)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("column %q is %T, not a map", key, v)
	}
	return m, nil
}

func recordMaps(rec *neo4j.Record, key string) ([]map[string]any, error) {
	v, ok := rec.Get(key)
	if !ok {
		return nil, fmt.Errorf("record has no %q column", key)
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("column %q is %T, not a list", key, v)
	}
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func keyFromMap(m map[string]any) schema.PropertyKey {
	return schema.PropertyKey{
		ID:          i64(m, "id"),
		Name:        str(m, "name"),
		DataType:    schema.DataType(str(m, "dataType")),
		Cardinality: schema.Cardinality(str(m, "cardinality")),
	}
}

func decodeKey(rec *neo4j.Record) (schema.PropertyKey, error) {
	m, err := recordMap(rec, "key")
	if err != nil {
		return schema.PropertyKey{}, err
	}
	return keyFromMap(m), nil
}

type labelRecord struct {
	id    int64
	name  string
	props map[string]any
	keys  []schema.PropertyKey
}

func decodeLabel(rec *neo4j.Record) (labelRecord, error) {
	m, err := recordMap(rec, "label")
	if err != nil {
		return labelRecord{}, err
	}
	keys, err := recordMaps(rec, "keys")
	if err != nil {
		return labelRecord{}, err
	}
	l := labelRecord{id: i64(m, "id"), name: str(m, "name"), props: m, keys: make([]schema.PropertyKey, 0, len(keys))}
	for _, k := range keys {
		l.keys = append(l.keys, keyFromMap(k))
	}
	return l, nil
}

func (l labelRecord) vertexLabel() schema.VertexLabel {
	return schema.VertexLabel{
		ID:         l.id,
		Name:       l.name,
		Properties: l.keys,
		VertexLabelFlags: schema.VertexLabelFlags{
			ReadOnly:    boolean(l.props, "readOnly"),
			Partitioned: boolean(l.props, "partitioned"),
		},
	}
}

func (l labelRecord) edgeLabel() schema.EdgeLabel {
	return schema.EdgeLabel{
		ID:         l.id,
		Name:       l.name,
		Properties: l.keys,
		EdgeLabelFlags: schema.EdgeLabelFlags{
			Multiplicity: schema.Multiplicity(str(l.props, "multiplicity")),
			Directed:     boolean(l.props, "directed"),
		},
	}
}

// decodeIndex reads an index row; its status is that of the first key
func decodeIndex(rec *neo4j.Record) (schema.Index, []indexKey, error) {
	m, err := recordMap(rec, "index")
	if err != nil {
		return schema.Index{}, nil, err
	}
	keyMaps, err := recordMaps(rec, "keys")
	if err != nil {
		return schema.Index{}, nil, err
	}

	idx := schema.Index{
		ID:           i64(m, "id"),
		Name:         str(m, "name"),
		Element:      schema.ElementKind(str(m, "element")),
		Type:         schema.IndexType(str(m, "type")),
		ConstraintID: i64(m, "constraintId"),
		Constraint:   str(m, "constraintLabel"),
		Unique:       boolean(m, "unique"),
		Backend:      str(m, "backend"),
		Keys:         make([]schema.PropertyKey, 0, len(keyMaps)),
	}
	keys := make([]indexKey, 0, len(keyMaps))
	for _, km := range keyMaps {
		k := indexKey{key: keyFromMap(km), status: schema.SchemaStatus(str(km, "status"))}
		idx.Keys = append(idx.Keys, k.key)
		keys = append(keys, k)
	}
	if len(keys) > 0 {
		idx.Status = keys[0].status
	}
	return idx, keys, nil
}
