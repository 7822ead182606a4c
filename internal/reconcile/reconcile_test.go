package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redbco/graphschema/internal/database/memory"
	"github.com/redbco/graphschema/pkg/schema"
	"github.com/redbco/graphschema/pkg/schemastore"
)

// inSession runs fn in a fresh session and commits it
func inSession[T any](t *testing.T, g *memory.Graph, fn func(context.Context, schemastore.Session) (T, error)) (T, error) {
	t.Helper()
	ctx := context.Background()
	sess, err := g.OpenManagement(ctx)
	require.NoError(t, err)

	out, err := fn(ctx, sess)
	if err != nil {
		require.NoError(t, sess.Rollback(ctx))
		return out, err
	}
	return out, sess.Commit(ctx)
}

func ensureKey(t *testing.T, g *memory.Graph, req PropertyKeyRequest) (schema.PropertyKey, error) {
	return inSession(t, g, func(ctx context.Context, s schemastore.Session) (schema.PropertyKey, error) {
		return EnsurePropertyKey(ctx, s, req)
	})
}

func ensureVertex(t *testing.T, g *memory.Graph, req VertexLabelRequest) (schema.VertexLabel, error) {
	return inSession(t, g, func(ctx context.Context, s schemastore.Session) (schema.VertexLabel, error) {
		return EnsureVertexLabel(ctx, s, req)
	})
}

func ensureEdge(t *testing.T, g *memory.Graph, req EdgeLabelRequest) (schema.EdgeLabel, error) {
	return inSession(t, g, func(ctx context.Context, s schemastore.Session) (schema.EdgeLabel, error) {
		return EnsureEdgeLabel(ctx, s, req)
	})
}

func names(keys []schema.PropertyKey) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k.Name)
	}
	return out
}

func TestEnsurePropertyKey(t *testing.T) {
	g := memory.New("first")

	first, err := ensureKey(t, g, PropertyKeyRequest{Name: "age", DataType: schema.DataTypeInt32, Cardinality: schema.CardinalitySingle})
	require.NoError(t, err)
	assert.Equal(t, "age", first.Name)
	assert.Equal(t, schema.DataTypeInt32, first.DataType)

	// Mismatched attributes are ignored; the stored key wins
	second, err := ensureKey(t, g, PropertyKeyRequest{Name: "age", DataType: schema.DataTypeString, Cardinality: schema.CardinalityList})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	defaults, err := ensureKey(t, g, PropertyKeyRequest{Name: "nickname"})
	require.NoError(t, err)
	assert.Equal(t, schema.DataTypeString, defaults.DataType)
	assert.Equal(t, schema.CardinalitySingle, defaults.Cardinality)

	_, err = ensureKey(t, g, PropertyKeyRequest{})
	assert.ErrorIs(t, err, schema.ErrInvalidArgument)
}

func TestEnsurePropertyKeyForOwner(t *testing.T) {
	g := memory.New("first")
	label, err := ensureVertex(t, g, VertexLabelRequest{Name: "user"})
	require.NoError(t, err)

	owner := Owner{Kind: schema.ElementVertex, ID: label.ID, Name: label.Name}
	for i := 0; i < 3; i++ {
		_, err := inSession(t, g, func(ctx context.Context, s schemastore.Session) (schema.PropertyKey, error) {
			return EnsurePropertyKeyForOwner(ctx, s, owner, PropertyKeyRequest{Name: "email"})
		})
		require.NoError(t, err)
	}

	got, err := ensureVertex(t, g, VertexLabelRequest{Name: "user"})
	require.NoError(t, err)
	assert.Equal(t, []string{"email"}, names(got.Properties))
}

func TestResolveOwner(t *testing.T) {
	g := memory.New("first")
	_, err := ensureVertex(t, g, VertexLabelRequest{Name: "shared"})
	require.NoError(t, err)
	_, err = ensureEdge(t, g, EdgeLabelRequest{Name: "shared"})
	require.NoError(t, err)
	_, err = ensureEdge(t, g, EdgeLabelRequest{Name: "knows"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		label    string
		wantKind schema.ElementKind
		wantErr  error
	}{
		{name: "vertex first", label: "shared", wantKind: schema.ElementVertex},
		{name: "edge fallback", label: "knows", wantKind: schema.ElementEdge},
		{name: "missing", label: "nobody", wantErr: schema.ErrNotFound},
		{name: "empty", label: "", wantErr: schema.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, err := inSession(t, g, func(ctx context.Context, s schemastore.Session) (Owner, error) {
				return ResolveOwner(ctx, s, tt.label)
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, owner.Kind)
		})
	}
}

func TestEnsureVertexLabelIdempotent(t *testing.T) {
	g := memory.New("first")

	first, err := ensureVertex(t, g, VertexLabelRequest{Name: "test"})
	require.NoError(t, err)
	second, err := ensureVertex(t, g, VertexLabelRequest{Name: "test"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	all, err := inSession(t, g, func(ctx context.Context, s schemastore.Session) ([]schema.VertexLabel, error) {
		return s.ListVertexLabels(ctx)
	})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestEnsureVertexLabelRename(t *testing.T) {
	g := memory.New("first")

	created, err := ensureVertex(t, g, VertexLabelRequest{Name: "test", Properties: []PropertyKeyRequest{{Name: "p1"}}})
	require.NoError(t, err)

	id := created.ID
	renamed, err := ensureVertex(t, g, VertexLabelRequest{ID: &id, Name: "test2"})
	require.NoError(t, err)
	assert.Equal(t, id, renamed.ID)
	assert.Equal(t, "test2", renamed.Name)
	assert.Equal(t, []string{"p1"}, names(renamed.Properties))

	old, err := inSession(t, g, func(ctx context.Context, s schemastore.Session) (*schema.VertexLabel, error) {
		return s.GetVertexLabel(ctx, schema.ByName("test"))
	})
	require.NoError(t, err)
	assert.Nil(t, old)

	missing := int64(424242)
	_, err = ensureVertex(t, g, VertexLabelRequest{ID: &missing, Name: "test3"})
	assert.ErrorIs(t, err, schema.ErrNotFound)
}

func TestEnsureVertexLabelRenameConflict(t *testing.T) {
	g := memory.New("first")
	a, err := ensureVertex(t, g, VertexLabelRequest{Name: "a"})
	require.NoError(t, err)
	_, err = ensureVertex(t, g, VertexLabelRequest{Name: "b"})
	require.NoError(t, err)

	_, err = ensureVertex(t, g, VertexLabelRequest{ID: &a.ID, Name: "b"})
	assert.ErrorIs(t, err, schema.ErrConflict)
}

func TestEnsureLabelPropertiesAccumulate(t *testing.T) {
	g := memory.New("first")

	_, err := ensureVertex(t, g, VertexLabelRequest{Name: "test", Properties: []PropertyKeyRequest{{Name: "p1"}}})
	require.NoError(t, err)
	got, err := ensureVertex(t, g, VertexLabelRequest{Name: "test", Properties: []PropertyKeyRequest{{Name: "p2"}}})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p1", "p2"}, names(got.Properties))

	again, err := ensureVertex(t, g, VertexLabelRequest{Name: "test", Properties: []PropertyKeyRequest{{Name: "p1"}, {Name: "p2"}}})
	require.NoError(t, err)
	assert.Len(t, again.Properties, 2)

	bare, err := ensureVertex(t, g, VertexLabelRequest{Name: "test"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p1", "p2"}, names(bare.Properties))
}

func TestEnsureVertexLabelFlagsFirstWriteWins(t *testing.T) {
	g := memory.New("first")

	created, err := ensureVertex(t, g, VertexLabelRequest{Name: "audit", ReadOnly: true})
	require.NoError(t, err)
	assert.True(t, created.ReadOnly)

	updated, err := ensureVertex(t, g, VertexLabelRequest{Name: "audit", ReadOnly: false, Partitioned: true})
	require.NoError(t, err)
	assert.True(t, updated.ReadOnly)
	assert.False(t, updated.Partitioned)
}

func TestEnsureEdgeLabel(t *testing.T) {
	g := memory.New("first")

	created, err := ensureEdge(t, g, EdgeLabelRequest{Name: "knows", Properties: []PropertyKeyRequest{{Name: "since", DataType: schema.DataTypeDate}}})
	require.NoError(t, err)
	assert.Equal(t, schema.MultiplicityMulti, created.Multiplicity)
	assert.True(t, created.Directed)
	assert.Equal(t, []string{"since"}, names(created.Properties))

	undirected := false
	other, err := ensureEdge(t, g, EdgeLabelRequest{Name: "married", Multiplicity: schema.MultiplicityOne2One, Directed: &undirected})
	require.NoError(t, err)
	assert.Equal(t, schema.MultiplicityOne2One, other.Multiplicity)
	assert.False(t, other.Directed)

	renamed, err := ensureEdge(t, g, EdgeLabelRequest{ID: &created.ID, Name: "befriended"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, renamed.ID)
	assert.Equal(t, []string{"since"}, names(renamed.Properties))

	_, err = ensureEdge(t, g, EdgeLabelRequest{})
	assert.ErrorIs(t, err, schema.ErrInvalidArgument)
}

func TestUserAgeScenario(t *testing.T) {
	g := memory.New("first")

	user, err := ensureVertex(t, g, VertexLabelRequest{
		Name:       "user",
		Properties: []PropertyKeyRequest{{Name: "age", DataType: schema.DataTypeInt32}},
	})
	require.NoError(t, err)
	require.Len(t, user.Properties, 1)
	assert.Equal(t, "age", user.Properties[0].Name)
	assert.Equal(t, schema.DataTypeInt32, user.Properties[0].DataType)

	again, err := ensureVertex(t, g, VertexLabelRequest{
		Name:       "user",
		Properties: []PropertyKeyRequest{{Name: "age", DataType: schema.DataTypeInt32}},
	})
	require.NoError(t, err)
	assert.Equal(t, user, again)
}
