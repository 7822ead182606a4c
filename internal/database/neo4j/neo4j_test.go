package neo4j

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redbco/graphschema/pkg/schema"
	"github.com/redbco/graphschema/pkg/schemastore"
)

func TestURI(t *testing.T) {
	tests := []struct {
		name string
		cfg  schemastore.GraphConfig
		want string
	}{
		{name: "defaults", cfg: schemastore.GraphConfig{}, want: "neo4j://localhost:7687"},
		{name: "tls", cfg: schemastore.GraphConfig{Host: "neo4j.internal", Port: 7688, SSL: true}, want: "neo4j+s://neo4j.internal:7688"},
		{
			name: "direct",
			cfg:  schemastore.GraphConfig{Host: "db", Port: 7687, Options: map[string]string{"scheme": "bolt"}},
			want: "bolt://db:7687",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, uri(tt.cfg))
		})
	}
}

func TestNativeIndexCypher(t *testing.T) {
	assert.Equal(t, "gs_first__by_age_2", nativeIndexName("first", "by-age 2"))

	vertex := schema.Index{
		Name:       "byAge",
		Element:    schema.ElementVertex,
		Keys:       []schema.PropertyKey{{Name: "age"}, {Name: "name"}},
		Constraint: "user",
	}
	assert.Equal(t,
		"CREATE INDEX `gs_first__byAge` IF NOT EXISTS FOR (x:`user`) ON (x.`age`, x.`name`)",
		nativeIndexCypher("gs_first__byAge", vertex))

	edge := schema.Index{
		Name:       "uniqueSince",
		Element:    schema.ElementEdge,
		Keys:       []schema.PropertyKey{{Name: "since"}},
		Constraint: "kno`ws",
		Unique:     true,
	}
	assert.Equal(t,
		"CREATE CONSTRAINT `n` IF NOT EXISTS FOR ()-[x:`kno``ws`]-() REQUIRE (x.`since`) IS UNIQUE",
		nativeIndexCypher("n", edge))
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want schema.Kind
	}{
		{name: "constraint", err: &neo4j.Neo4jError{Code: constraintViolation}, want: schema.KindConflict},
		{name: "transient", err: &neo4j.Neo4jError{Code: "Neo.TransientError.Transaction.DeadlockDetected"}, want: schema.KindUnavailable},
		{name: "syntax", err: &neo4j.Neo4jError{Code: "Neo.ClientError.Statement.SyntaxError"}, want: schema.KindUnknown},
		{name: "canceled", err: fmt.Errorf("run: %w", context.Canceled), want: schema.KindUnavailable},
		{name: "classified", err: schema.NewNotFoundError("get", "index", "byAge"), want: schema.KindNotFound},
		{name: "plain", err: errors.New("boom"), want: schema.KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError("op", tt.err)
			require.Error(t, got)
			assert.Equal(t, tt.want, schema.KindOf(got))
		})
	}
	assert.NoError(t, mapError("op", nil))

	conflict := mapError("op", &neo4j.Neo4jError{Code: constraintViolation})
	assert.True(t, isConstraintViolation(conflict))
}

func TestDecodeIndex(t *testing.T) {
	rec := &neo4j.Record{
		Keys: []string{"index", "keys"},
		Values: []any{
			map[string]any{
				"id": int64(7), "name": "byAge", "element": "vertex", "type": "composite",
				"constraintId": int64(4), "constraintLabel": "user", "unique": true, "backend": "",
			},
			[]any{
				map[string]any{"id": int64(2), "name": "age", "dataType": "Int32", "cardinality": "SINGLE", "status": "REGISTERED"},
				map[string]any{"id": int64(3), "name": "name", "dataType": "String", "cardinality": "SINGLE", "status": "INSTALLED"},
			},
		},
	}

	idx, keys, err := decodeIndex(rec)
	require.NoError(t, err)
	assert.Equal(t, int64(7), idx.ID)
	assert.Equal(t, schema.ElementVertex, idx.Element)
	assert.Equal(t, schema.IndexComposite, idx.Type)
	assert.Equal(t, int64(4), idx.ConstraintID)
	assert.Equal(t, "user", idx.Label())
	assert.True(t, idx.Unique)
	assert.Equal(t, schema.StatusRegistered, idx.Status)
	require.Len(t, keys, 2)
	assert.Equal(t, schema.StatusInstalled, keys[1].status)
	assert.Equal(t, schema.DataTypeInt32, idx.Keys[0].DataType)

	_, _, err = decodeIndex(&neo4j.Record{Keys: []string{"index"}, Values: []any{"oops"}})
	assert.Error(t, err)
}

func TestDecodeLabel(t *testing.T) {
	rec := &neo4j.Record{
		Keys: []string{"label", "keys"},
		Values: []any{
			map[string]any{"id": int64(4), "name": "knows", "multiplicity": "SIMPLE", "directed": false},
			[]any{map[string]any{"id": int64(5), "name": "since", "dataType": "Date", "cardinality": "SINGLE"}},
		},
	}
	l, err := decodeLabel(rec)
	require.NoError(t, err)

	el := l.edgeLabel()
	assert.Equal(t, int64(4), el.ID)
	assert.Equal(t, schema.MultiplicitySimple, el.Multiplicity)
	assert.False(t, el.Directed)
	require.Len(t, el.Properties, 1)
	assert.Equal(t, "since", el.Properties[0].Name)

	vl := l.vertexLabel()
	assert.False(t, vl.ReadOnly)
	assert.Equal(t, "knows", vl.Name)
}
