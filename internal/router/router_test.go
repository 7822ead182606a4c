package router

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redbco/graphschema/internal/database/memory"
	"github.com/redbco/graphschema/pkg/logger"
	"github.com/redbco/graphschema/pkg/schema"
	"github.com/redbco/graphschema/pkg/schemastore"
)

// closeCounting wraps a memory graph and counts Close calls
type closeCounting struct {
	*memory.Graph
	closed *atomic.Int32
}

func (c closeCounting) Close() error {
	c.closed.Add(1)
	return nil
}

type testBackend struct {
	closed *atomic.Int32
}

func (b testBackend) Type() string { return "test" }

func (b testBackend) Open(ctx context.Context, cfg schemastore.GraphConfig) (schemastore.Graph, error) {
	if cfg.Option("fail", "") == "true" {
		return nil, schema.NewUnavailableError("open", errors.New("connection refused"))
	}
	return closeCounting{Graph: memory.New(cfg.Name), closed: b.closed}, nil
}

func TestResolve(t *testing.T) {
	first := memory.New("first")
	second := memory.New("second")
	r := New(map[string]schemastore.Graph{"first": first, "second": second})

	g, err := r.Resolve("second")
	require.NoError(t, err)
	assert.Same(t, second, g)

	_, err = r.Resolve("third")
	assert.ErrorIs(t, err, schema.ErrNotFound)

	_, err = r.Resolve("")
	assert.ErrorIs(t, err, schema.ErrNotFound)

	assert.Equal(t, []string{"first", "second"}, r.Names())
}

func TestContextIsolation(t *testing.T) {
	ctx := context.Background()
	r := New(map[string]schemastore.Graph{"first": memory.New("first"), "second": memory.New("second")})

	sess, err := r.Open(ctx, "first")
	require.NoError(t, err)
	_, err = sess.MakeVertexLabel(ctx, "test", schema.VertexLabelFlags{})
	require.NoError(t, err)
	require.NoError(t, sess.Commit(ctx))

	other, err := r.Open(ctx, "second")
	require.NoError(t, err)
	defer other.Rollback(ctx)

	labels, err := other.ListVertexLabels(ctx)
	require.NoError(t, err)
	assert.Empty(t, labels)
}

func TestConnect(t *testing.T) {
	closed := &atomic.Int32{}
	registry := schemastore.NewRegistry()
	registry.Register(testBackend{closed: closed})
	log := logger.New("router-test", "1.0.0")

	t.Run("all graphs open", func(t *testing.T) {
		r, err := Connect(context.Background(), registry, []schemastore.GraphConfig{
			{Name: "first", Backend: "test"},
			{Name: "second", Backend: "test"},
		}, log)
		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, r.Names())
		assert.NoError(t, r.Ping(context.Background()))
		assert.NoError(t, r.Close())
		assert.Equal(t, int32(2), closed.Load())
	})

	t.Run("one graph fails", func(t *testing.T) {
		closed.Store(0)
		_, err := Connect(context.Background(), registry, []schemastore.GraphConfig{
			{Name: "first", Backend: "test"},
			{Name: "second", Backend: "test", Options: map[string]string{"fail": "true"}},
		}, log)
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrUnavailable)
		assert.LessOrEqual(t, closed.Load(), int32(1))
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := Connect(context.Background(), registry, []schemastore.GraphConfig{
			{Name: "first", Backend: "cassandra"},
		}, log)
		assert.ErrorIs(t, err, schema.ErrInvalidArgument)
	})

	t.Run("duplicate context", func(t *testing.T) {
		_, err := Connect(context.Background(), registry, []schemastore.GraphConfig{
			{Name: "first", Backend: "test"},
			{Name: "first", Backend: "test"},
		}, log)
		assert.ErrorIs(t, err, schema.ErrInvalidArgument)
	})
}

func TestPingReportsOfflineGraph(t *testing.T) {
	first := memory.New("first")
	r := New(map[string]schemastore.Graph{"first": first})

	first.SetOffline(true)
	err := r.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "graph first")
	assert.ErrorIs(t, err, schema.ErrUnavailable)
}
