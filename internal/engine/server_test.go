package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	graphschemav1 "github.com/redbco/graphschema/api/graphschema/v1"
	"github.com/redbco/graphschema/internal/database/memory"
	"github.com/redbco/graphschema/pkg/schema"
)

type clients struct {
	keys     graphschemav1.ManagementForPropertyKeysClient
	vertices graphschemav1.ManagementForVertexLabelsClient
	edges    graphschemav1.ManagementForEdgeLabelsClient
}

func serve(t *testing.T, f *fixture) clients {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	Register(srv, f.engine)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return clients{
		keys:     graphschemav1.NewManagementForPropertyKeysClient(conn),
		vertices: graphschemav1.NewManagementForVertexLabelsClient(conn),
		edges:    graphschemav1.NewManagementForEdgeLabelsClient(conn),
	}
}

func collect[T any](t *testing.T, stream grpc.ServerStreamingClient[T], err error) []*T {
	t.Helper()
	require.NoError(t, err)
	var out []*T
	for {
		msg, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return out
		}
		require.NoError(t, err)
		out = append(out, msg)
	}
}

func recvErr[T any](stream grpc.ServerStreamingClient[T], err error) error {
	if err != nil {
		return err
	}
	_, err = stream.Recv()
	return err
}

func TestVertexLabelRoundTrip(t *testing.T) {
	c := serve(t, newFixture(t))
	ctx := context.Background()

	user, err := c.vertices.EnsureVertexLabel(ctx, &graphschemav1.EnsureVertexLabelRequest{
		Context: "first",
		Label: &graphschemav1.VertexLabel{
			Name:       "user",
			Properties: []*graphschemav1.PropertyKey{{Name: "age", DataType: "Int32"}},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, user.Id)
	require.Len(t, user.Properties, 1)
	assert.Equal(t, "Int32", user.Properties[0].DataType)
	assert.Equal(t, "SINGLE", user.Properties[0].Cardinality)

	renamed, err := c.vertices.EnsureVertexLabel(ctx, &graphschemav1.EnsureVertexLabelRequest{
		Context: "first",
		Label:   &graphschemav1.VertexLabel{Id: user.Id, Name: "person"},
	})
	require.NoError(t, err)
	assert.Equal(t, *user.Id, *renamed.Id)
	assert.Equal(t, "person", renamed.Name)

	stream, err := c.vertices.GetVertexLabels(ctx, &graphschemav1.GetVertexLabelsRequest{Context: "first"})
	labels := collect(t, stream, err)
	require.Len(t, labels, 1)
	assert.Equal(t, "person", labels[0].Name)

	stream, err = c.vertices.GetVertexLabelsByName(ctx, &graphschemav1.GetVertexLabelsByNameRequest{Context: "first", Name: "user"})
	assert.Empty(t, collect(t, stream, err))

	stream, err = c.vertices.GetVertexLabels(ctx, &graphschemav1.GetVertexLabelsRequest{Context: "second"})
	assert.Empty(t, collect(t, stream, err))
}

func TestPropertyKeyService(t *testing.T) {
	c := serve(t, newFixture(t))
	ctx := context.Background()

	key, err := c.keys.EnsurePropertyKey(ctx, &graphschemav1.EnsurePropertyKeyRequest{
		Context:     "first",
		PropertyKey: &graphschemav1.PropertyKey{Name: "tags", DataType: "string", Cardinality: "set"},
	})
	require.NoError(t, err)
	assert.Equal(t, "String", key.DataType)
	assert.Equal(t, "SET", key.Cardinality)

	got, err := c.keys.GetPropertyKeyByName(ctx, &graphschemav1.GetPropertyKeyByNameRequest{Context: "first", Name: "tags"})
	require.NoError(t, err)
	assert.Equal(t, *key.Id, *got.Id)

	stream, err := c.keys.GetPropertyKeys(ctx, &graphschemav1.GetPropertyKeysRequest{Context: "first"})
	assert.Len(t, collect(t, stream, err), 1)

	_, err = c.keys.EnsurePropertyKeyForLabel(ctx, &graphschemav1.EnsurePropertyKeyForLabelRequest{
		Context:     "first",
		Label:       "user",
		PropertyKey: &graphschemav1.PropertyKey{Name: "age"},
	})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestEdgeLabelService(t *testing.T) {
	c := serve(t, newFixture(t))
	ctx := context.Background()

	undirected := false
	knows, err := c.edges.EnsureEdgeLabel(ctx, &graphschemav1.EnsureEdgeLabelRequest{
		Context: "first",
		Label: &graphschemav1.EdgeLabel{
			Name:         "knows",
			Multiplicity: "simple",
			Directed:     &undirected,
			Properties:   []*graphschemav1.PropertyKey{{Name: "since", DataType: "Date"}},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, knows.Directed)
	assert.False(t, *knows.Directed)
	assert.Equal(t, "SIMPLE", knows.Multiplicity)

	idx, err := c.edges.EnsureCompositeIndex(ctx, &graphschemav1.EnsureCompositeIndexRequest{
		Context: "first",
		Index: &graphschemav1.CompositeIndex{
			Name:       "knowsSince",
			Label:      "knows",
			Properties: []*graphschemav1.PropertyKey{{Name: "since"}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "INSTALLED", idx.Status)

	// Edge indices are not visible through the vertex service
	_, err = c.vertices.GetCompositeIndexByName(ctx, &graphschemav1.GetIndexByNameRequest{Context: "first", Name: "knowsSince"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	stream, err := c.edges.GetCompositeIndices(ctx, &graphschemav1.GetIndicesRequest{Context: "first", Label: "knows"})
	assert.Len(t, collect(t, stream, err), 1)

	stream, err = c.edges.GetCompositeIndices(ctx, &graphschemav1.GetIndicesRequest{Context: "first", Label: "all"})
	assert.Empty(t, collect(t, stream, err))

	byName, err := c.edges.GetEdgeLabelsByName(ctx, &graphschemav1.GetEdgeLabelsByNameRequest{Context: "first", Name: "knows"})
	assert.Len(t, collect(t, byName, err), 1)
}

func TestIndexLifecycleService(t *testing.T) {
	f := newFixture(t, memory.WithManualBackfill())
	c := serve(t, f)
	ctx := context.Background()

	_, err := c.vertices.EnsureVertexLabel(ctx, &graphschemav1.EnsureVertexLabelRequest{
		Context: "first",
		Label:   &graphschemav1.VertexLabel{Name: "user", Properties: []*graphschemav1.PropertyKey{{Name: "age", DataType: "Int32"}, {Name: "bio"}}},
	})
	require.NoError(t, err)

	_, err = c.vertices.EnsureCompositeIndex(ctx, &graphschemav1.EnsureCompositeIndexRequest{
		Context: "first",
		Index:   &graphschemav1.CompositeIndex{Name: "byAge", Label: "user", Properties: []*graphschemav1.PropertyKey{{Name: "age"}}},
	})
	require.NoError(t, err)

	rd, err := c.vertices.GetIndexReadiness(ctx, &graphschemav1.GetIndexReadinessRequest{Context: "first", Name: "byAge"})
	require.NoError(t, err)
	assert.False(t, rd.Ready)
	assert.Equal(t, "INSTALLED", rd.Status)
	assert.Equal(t, map[string]string{"age": "INSTALLED"}, rd.KeyStatus)

	_, err = c.vertices.EnableCompositeIndex(ctx, &graphschemav1.EnableCompositeIndexRequest{Context: "first", Name: "byAge"})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	_, err = c.vertices.EnableCompositeIndex(ctx, &graphschemav1.EnableCompositeIndexRequest{Context: "first", Name: "byAge", Wait: true, TimeoutSeconds: 1})
	assert.Equal(t, codes.Unavailable, status.Code(err))

	require.NoError(t, f.first.CompleteBackfill("byAge"))
	enabled, err := c.vertices.EnableCompositeIndex(ctx, &graphschemav1.EnableCompositeIndexRequest{Context: "first", Name: "byAge", Wait: true})
	require.NoError(t, err)
	assert.Equal(t, "ENABLED", enabled.Status)
	assert.Equal(t, "user", enabled.Label)

	mixed, err := c.vertices.EnsureMixedIndex(ctx, &graphschemav1.EnsureMixedIndexRequest{
		Context: "first",
		Index:   &graphschemav1.MixedIndex{Name: "bioSearch", Properties: []*graphschemav1.PropertyKey{{Name: "bio"}}, Backend: "search"},
	})
	require.NoError(t, err)
	assert.Equal(t, "ALL", mixed.Label)

	stream, err := c.vertices.GetMixedIndices(ctx, &graphschemav1.GetIndicesRequest{Context: "first"})
	assert.Len(t, collect(t, stream, err), 1)
}

func TestServiceErrorCodes(t *testing.T) {
	c := serve(t, newFixture(t))
	ctx := context.Background()

	_, err := c.vertices.EnsureVertexLabel(ctx, &graphschemav1.EnsureVertexLabelRequest{Context: "first", Label: &graphschemav1.VertexLabel{Name: "user"}})
	require.NoError(t, err)
	admin, err := c.vertices.EnsureVertexLabel(ctx, &graphschemav1.EnsureVertexLabelRequest{Context: "first", Label: &graphschemav1.VertexLabel{Name: "admin"}})
	require.NoError(t, err)

	unknownID := int64(9999)
	tests := []struct {
		name string
		call func() error
		want codes.Code
	}{
		{
			name: "missing context",
			call: func() error {
				_, err := c.keys.EnsurePropertyKey(ctx, &graphschemav1.EnsurePropertyKeyRequest{PropertyKey: &graphschemav1.PropertyKey{Name: "age"}})
				return err
			},
			want: codes.InvalidArgument,
		},
		{
			name: "unknown context",
			call: func() error {
				return recvErr(c.vertices.GetVertexLabels(ctx, &graphschemav1.GetVertexLabelsRequest{Context: "third"}))
			},
			want: codes.NotFound,
		},
		{
			name: "missing property key",
			call: func() error {
				_, err := c.keys.EnsurePropertyKey(ctx, &graphschemav1.EnsurePropertyKeyRequest{Context: "first"})
				return err
			},
			want: codes.InvalidArgument,
		},
		{
			name: "unknown data type",
			call: func() error {
				_, err := c.keys.EnsurePropertyKey(ctx, &graphschemav1.EnsurePropertyKeyRequest{Context: "first", PropertyKey: &graphschemav1.PropertyKey{Name: "age", DataType: "Decimal"}})
				return err
			},
			want: codes.InvalidArgument,
		},
		{
			name: "rename onto taken name",
			call: func() error {
				_, err := c.vertices.EnsureVertexLabel(ctx, &graphschemav1.EnsureVertexLabelRequest{Context: "first", Label: &graphschemav1.VertexLabel{Id: admin.Id, Name: "user"}})
				return err
			},
			want: codes.AlreadyExists,
		},
		{
			name: "unknown label id",
			call: func() error {
				_, err := c.vertices.EnsureVertexLabel(ctx, &graphschemav1.EnsureVertexLabelRequest{Context: "first", Label: &graphschemav1.VertexLabel{Id: &unknownID, Name: "ghost"}})
				return err
			},
			want: codes.NotFound,
		},
		{
			name: "unknown property key",
			call: func() error {
				_, err := c.keys.GetPropertyKeyByName(ctx, &graphschemav1.GetPropertyKeyByNameRequest{Context: "first", Name: "height"})
				return err
			},
			want: codes.NotFound,
		},
		{
			name: "mixed index without backend",
			call: func() error {
				_, err := c.vertices.EnsureMixedIndex(ctx, &graphschemav1.EnsureMixedIndexRequest{Context: "first", Index: &graphschemav1.MixedIndex{Name: "x", Properties: []*graphschemav1.PropertyKey{{Name: "age"}}}})
				return err
			},
			want: codes.InvalidArgument,
		},
		{
			name: "negative timeout",
			call: func() error {
				_, err := c.vertices.EnableCompositeIndex(ctx, &graphschemav1.EnableCompositeIndexRequest{Context: "first", Name: "byAge", TimeoutSeconds: -1})
				return err
			},
			want: codes.InvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, status.Code(tt.call()))
		})
	}
}

func TestRequestIDFromMetadata(t *testing.T) {
	f := newFixture(t)
	c := serve(t, f)

	ctx := metadata.AppendToOutgoingContext(context.Background(), RequestIDHeader, "req-from-client")
	_, err := c.keys.EnsurePropertyKey(ctx, &graphschemav1.EnsurePropertyKeyRequest{Context: "first", PropertyKey: &graphschemav1.PropertyKey{Name: "age"}})
	require.NoError(t, err)

	evs := f.events.Events()
	require.Len(t, evs, 1)
	assert.Equal(t, "req-from-client", evs[0].RequestID)
}

func TestToStatus(t *testing.T) {
	tests := []struct {
		err  error
		want codes.Code
	}{
		{err: schema.NewInvalidArgumentError("op", "bad"), want: codes.InvalidArgument},
		{err: schema.NewNotFoundError("op", "index", "byAge"), want: codes.NotFound},
		{err: schema.NewConflictError("op", "vertex label", "user", nil), want: codes.AlreadyExists},
		{err: schema.NewIllegalStateError("op", "byAge", "cannot skip REGISTERED"), want: codes.FailedPrecondition},
		{err: schema.NewUnavailableError("op", errors.New("down")), want: codes.Unavailable},
		{err: fmt.Errorf("commit: %w", schema.ErrConflict), want: codes.AlreadyExists},
		{err: context.DeadlineExceeded, want: codes.Unavailable},
		{err: errors.New("disk on fire"), want: codes.Internal},
		{err: status.Error(codes.PermissionDenied, "no"), want: codes.PermissionDenied},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, status.Code(toStatus(tt.err)), tt.err.Error())
	}
	assert.NoError(t, toStatus(nil))
}
