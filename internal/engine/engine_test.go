package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redbco/graphschema/internal/database/memory"
	"github.com/redbco/graphschema/internal/events"
	"github.com/redbco/graphschema/internal/lifecycle"
	"github.com/redbco/graphschema/internal/metrics"
	"github.com/redbco/graphschema/internal/reconcile"
	"github.com/redbco/graphschema/internal/router"
	"github.com/redbco/graphschema/internal/search"
	"github.com/redbco/graphschema/pkg/logger"
	"github.com/redbco/graphschema/pkg/schema"
	"github.com/redbco/graphschema/pkg/schemastore"
)

var fastPolicy = lifecycle.Policy{InitialInterval: time.Millisecond, MaxInterval: 5 * time.Millisecond, Multiplier: 2}

type fixture struct {
	engine  *Engine
	first   *memory.Graph
	second  *memory.Graph
	events  *events.Recorder
	metrics *metrics.Metrics
}

func newFixture(t *testing.T, opts ...memory.Option) *fixture {
	t.Helper()
	f := &fixture{
		first:   memory.New("first", opts...),
		second:  memory.New("second", opts...),
		events:  &events.Recorder{},
		metrics: metrics.New(prometheus.NewRegistry()),
	}
	log := logger.New("engine-test", "1.0.0")
	log.DisableConsoleOutput()

	r := router.New(map[string]schemastore.Graph{"first": f.first, "second": f.second})
	f.engine = New(r, log, WithMetrics(f.metrics), WithPublisher(f.events), WithReadinessPolicy(fastPolicy))
	return f
}

func userRequest(props ...string) reconcile.VertexLabelRequest {
	req := reconcile.VertexLabelRequest{Name: "user"}
	for _, p := range props {
		req.Properties = append(req.Properties, reconcile.PropertyKeyRequest{Name: p, DataType: schema.DataTypeInt32})
	}
	return req
}

func keyNames(keys []schema.PropertyKey) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k.Name)
	}
	return out
}

func TestUserAgeThroughEngine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.engine.EnsureVertexLabel(ctx, "first", userRequest("age"))
	require.NoError(t, err)
	assert.Equal(t, []string{"age"}, keyNames(user.Properties))

	key, err := f.engine.EnsurePropertyKeyForLabel(ctx, "first", "user", reconcile.PropertyKeyRequest{Name: "name"})
	require.NoError(t, err)
	assert.Equal(t, schema.DataTypeString, key.DataType)

	labels, err := f.engine.GetVertexLabelsByName(ctx, "first", "user")
	require.NoError(t, err)
	require.Len(t, labels, 1)
	assert.Equal(t, user.ID, labels[0].ID)
	assert.ElementsMatch(t, []string{"age", "name"}, keyNames(labels[0].Properties))

	again, err := f.engine.EnsureVertexLabel(ctx, "first", userRequest("age"))
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	assert.Len(t, again.Properties, 2)

	keys, err := f.engine.GetPropertyKeys(ctx, "first")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"age", "name"}, keyNames(keys))
}

func TestContextIsolationThroughEngine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.engine.EnsureVertexLabel(ctx, "first", userRequest("age"))
	require.NoError(t, err)

	labels, err := f.engine.GetVertexLabels(ctx, "second")
	require.NoError(t, err)
	assert.Empty(t, labels)

	_, err = f.engine.GetPropertyKeyByName(ctx, "second", "age")
	assert.ErrorIs(t, err, schema.ErrNotFound)

	key, err := f.engine.GetPropertyKeyByName(ctx, "first", "age")
	require.NoError(t, err)
	assert.Equal(t, schema.DataTypeInt32, key.DataType)
}

func TestContextSelection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.engine.GetVertexLabels(ctx, "")
	assert.ErrorIs(t, err, schema.ErrInvalidArgument)

	_, err = f.engine.EnsurePropertyKey(ctx, "third", reconcile.PropertyKeyRequest{Name: "age"})
	assert.ErrorIs(t, err, schema.ErrNotFound)

	_, err = f.engine.GetIndexReadiness(ctx, "third", "byAge")
	assert.ErrorIs(t, err, schema.ErrNotFound)

	_, err = f.engine.EnableCompositeIndex(ctx, "", "byAge", false)
	assert.ErrorIs(t, err, schema.ErrInvalidArgument)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Errors.WithLabelValues("third", "ensure_property_key", "not_found")))
	assert.Empty(t, f.events.Events())
}

func TestFailedEnsureRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// The label is created before the empty key name is rejected
	req := reconcile.VertexLabelRequest{Name: "user", Properties: []reconcile.PropertyKeyRequest{{Name: "age"}, {Name: ""}}}
	_, err := f.engine.EnsureVertexLabel(ctx, "first", req)
	assert.ErrorIs(t, err, schema.ErrInvalidArgument)

	labels, err := f.engine.GetVertexLabelsByName(ctx, "first", "user")
	require.NoError(t, err)
	assert.Empty(t, labels)

	_, err = f.engine.GetPropertyKeyByName(ctx, "first", "age")
	assert.ErrorIs(t, err, schema.ErrNotFound)
	assert.Empty(t, f.events.Events())
}

func TestEdgeLabelsThroughEngine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	undirected := false
	knows, err := f.engine.EnsureEdgeLabel(ctx, "first", reconcile.EdgeLabelRequest{
		Name:         "knows",
		Multiplicity: schema.MultiplicitySimple,
		Directed:     &undirected,
		Properties:   []reconcile.PropertyKeyRequest{{Name: "since", DataType: schema.DataTypeDate}},
	})
	require.NoError(t, err)
	assert.False(t, knows.Directed)
	assert.Equal(t, schema.MultiplicitySimple, knows.Multiplicity)

	// EnsurePropertyKeyForLabel falls back to the edge label of that name
	_, err = f.engine.EnsurePropertyKeyForLabel(ctx, "first", "knows", reconcile.PropertyKeyRequest{Name: "weight", DataType: schema.DataTypeFloat64})
	require.NoError(t, err)

	labels, err := f.engine.GetEdgeLabelsByName(ctx, "first", "knows")
	require.NoError(t, err)
	require.Len(t, labels, 1)
	assert.ElementsMatch(t, []string{"since", "weight"}, keyNames(labels[0].Properties))

	all, err := f.engine.GetEdgeLabels(ctx, "first")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	none, err := f.engine.GetEdgeLabelsByName(ctx, "first", "likes")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCompositeIndexScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.engine.EnsureVertexLabel(ctx, "first", userRequest("age"))
	require.NoError(t, err)

	idx, err := f.engine.EnsureCompositeIndex(ctx, "first", lifecycle.IndexRequest{
		Name:    "byAge",
		Element: schema.ElementVertex,
		Keys:    []string{"age"},
		Label:   "user",
	})
	require.NoError(t, err)
	assert.Equal(t, schema.StatusInstalled, idx.Status)

	rd, err := f.engine.GetIndexReadiness(ctx, "first", "byAge")
	require.NoError(t, err)
	assert.True(t, rd.Ready())
	assert.Equal(t, schema.StatusRegistered, rd.Status())

	enabled, err := f.engine.EnableCompositeIndex(ctx, "first", "byAge", false)
	require.NoError(t, err)
	assert.Equal(t, schema.StatusEnabled, enabled.Status)

	// Enabling again is a no-op
	_, err = f.engine.EnableCompositeIndex(ctx, "first", "byAge", false)
	require.NoError(t, err)

	got, err := f.engine.GetCompositeIndexByName(ctx, "first", schema.ElementVertex, "byAge")
	require.NoError(t, err)
	assert.Equal(t, schema.StatusEnabled, got.Status)

	_, err = f.engine.GetCompositeIndexByName(ctx, "first", schema.ElementEdge, "byAge")
	assert.ErrorIs(t, err, schema.ErrNotFound)

	byUser, err := f.engine.GetCompositeIndices(ctx, "first", schema.ElementVertex, "user")
	require.NoError(t, err)
	assert.Len(t, byUser, 1)

	unconstrained, err := f.engine.GetCompositeIndices(ctx, "first", schema.ElementVertex, schema.AllLabels)
	require.NoError(t, err)
	assert.Empty(t, unconstrained)

	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.IndexEnabled.WithLabelValues("first", "vertex")))
}

func TestMixedIndexThroughEngine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.engine.EnsureVertexLabel(ctx, "first", reconcile.VertexLabelRequest{
		Name:       "user",
		Properties: []reconcile.PropertyKeyRequest{{Name: "bio"}},
	})
	require.NoError(t, err)

	req := lifecycle.IndexRequest{Name: "bioSearch", Element: schema.ElementVertex, Keys: []string{"bio"}, Backend: "search"}
	idx, err := f.engine.EnsureMixedIndex(ctx, "first", req)
	require.NoError(t, err)
	assert.Equal(t, schema.IndexMixed, idx.Type)

	mixed, err := f.engine.GetMixedIndices(ctx, "first", schema.ElementVertex, "")
	require.NoError(t, err)
	assert.Len(t, mixed, 1)

	composite, err := f.engine.GetCompositeIndices(ctx, "first", schema.ElementVertex, "")
	require.NoError(t, err)
	assert.Empty(t, composite)

	_, err = f.engine.GetCompositeIndexByName(ctx, "first", schema.ElementVertex, "bioSearch")
	assert.ErrorIs(t, err, schema.ErrNotFound)

	_, err = f.engine.EnableCompositeIndex(ctx, "first", "bioSearch", false)
	assert.ErrorIs(t, err, schema.ErrIllegalState)
}

type flakyProvisioner struct {
	failures    int
	provisioned []string
}

func (p *flakyProvisioner) Provision(_ context.Context, graph string, idx schema.Index) error {
	if p.failures > 0 {
		p.failures--
		return schema.NewUnavailableError("provision mixed index", errors.New("cluster unreachable"))
	}
	p.provisioned = append(p.provisioned, graph+"/"+idx.Name)
	return nil
}

func (p *flakyProvisioner) Ping(context.Context) error { return nil }
func (p *flakyProvisioner) Close() error               { return nil }

func TestMixedIndexProvisioning(t *testing.T) {
	f := newFixture(t)
	p := &flakyProvisioner{failures: 1}
	WithSearch(search.NewSet(map[string]search.Provisioner{"search": p}))(f.engine)
	ctx := context.Background()

	_, err := f.engine.EnsureVertexLabel(ctx, "first", reconcile.VertexLabelRequest{
		Name:       "user",
		Properties: []reconcile.PropertyKeyRequest{{Name: "bio"}},
	})
	require.NoError(t, err)

	req := lifecycle.IndexRequest{Name: "bioSearch", Element: schema.ElementVertex, Keys: []string{"bio"}, Backend: "search"}
	_, err = f.engine.EnsureMixedIndex(ctx, "first", req)
	assert.ErrorIs(t, err, schema.ErrUnavailable)

	// the schema index is committed, the retry only provisions
	idx, err := f.engine.EnsureMixedIndex(ctx, "first", req)
	require.NoError(t, err)
	assert.Equal(t, "bioSearch", idx.Name)
	assert.Equal(t, []string{"first/bioSearch"}, p.provisioned)

	other := lifecycle.IndexRequest{Name: "bioLucene", Element: schema.ElementVertex, Keys: []string{"bio"}, Backend: "lucene"}
	_, err = f.engine.EnsureMixedIndex(ctx, "first", other)
	require.NoError(t, err)
	assert.Len(t, p.provisioned, 1)
}

func TestEnableWithManualBackfill(t *testing.T) {
	f := newFixture(t, memory.WithManualBackfill())
	ctx := context.Background()

	_, err := f.engine.EnsureVertexLabel(ctx, "first", userRequest("age"))
	require.NoError(t, err)
	_, err = f.engine.EnsureCompositeIndex(ctx, "first", lifecycle.IndexRequest{Name: "byAge", Element: schema.ElementVertex, Keys: []string{"age"}})
	require.NoError(t, err)

	_, err = f.engine.EnableCompositeIndex(ctx, "first", "byAge", false)
	assert.ErrorIs(t, err, schema.ErrIllegalState)

	waitCtx, cancel := context.WithTimeout(ctx, 30*time.Millisecond)
	defer cancel()
	_, err = f.engine.EnableCompositeIndex(waitCtx, "first", "byAge", true)
	assert.ErrorIs(t, err, schema.ErrUnavailable)

	go func() {
		time.Sleep(10 * time.Millisecond)
		_ = f.first.CompleteBackfill("byAge")
	}()
	waitCtx, cancel = context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	idx, err := f.engine.EnableCompositeIndex(waitCtx, "first", "byAge", true)
	require.NoError(t, err)
	assert.Equal(t, schema.StatusEnabled, idx.Status)
}

func TestEventsAndRequestID(t *testing.T) {
	f := newFixture(t)
	ctx := WithRequestID(context.Background(), "req-42")

	label, err := f.engine.EnsureVertexLabel(ctx, "first", userRequest())
	require.NoError(t, err)
	_, err = f.engine.GetVertexLabels(ctx, "first")
	require.NoError(t, err)

	evs := f.events.Events()
	require.Len(t, evs, 1)
	assert.Equal(t, "first", evs[0].Graph)
	assert.Equal(t, "ensure_vertex_label", evs[0].Operation)
	assert.Equal(t, events.ObjectVertexLabel, evs[0].Object)
	assert.Equal(t, label.ID, evs[0].ID)
	assert.Equal(t, "req-42", evs[0].RequestID)
	assert.False(t, evs[0].Time.IsZero())

	stats := f.engine.Stats()
	assert.Equal(t, int64(2), stats["operations_total"])
	assert.Equal(t, int64(0), stats["operations_in_flight"])
	assert.Equal(t, int64(0), stats["operations_failed"])
}

func TestIdempotentEnsurePublishesOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.engine.EnsureVertexLabel(ctx, "first", userRequest("age"))
		require.NoError(t, err)
		_, err = f.engine.EnsurePropertyKey(ctx, "first", reconcile.PropertyKeyRequest{Name: "age"})
		require.NoError(t, err)
		_, err = f.engine.EnsureCompositeIndex(ctx, "first", lifecycle.IndexRequest{Name: "byAge", Element: schema.ElementVertex, Keys: []string{"age"}, Label: "user"})
		require.NoError(t, err)
	}

	evs := f.events.Events()
	require.Len(t, evs, 2)
	assert.Equal(t, events.ObjectVertexLabel, evs[0].Object)
	assert.Equal(t, events.ObjectIndex, evs[1].Object)

	// an already associated key is no change; a new association is
	_, err := f.engine.EnsurePropertyKeyForLabel(ctx, "first", "user", reconcile.PropertyKeyRequest{Name: "age"})
	require.NoError(t, err)
	_, err = f.engine.EnsurePropertyKey(ctx, "first", reconcile.PropertyKeyRequest{Name: "name"})
	require.NoError(t, err)
	_, err = f.engine.EnsurePropertyKeyForLabel(ctx, "first", "user", reconcile.PropertyKeyRequest{Name: "name"})
	require.NoError(t, err)

	evs = f.events.Events()
	require.Len(t, evs, 4)
	assert.Equal(t, "ensure_property_key", evs[2].Operation)
	assert.Equal(t, "ensure_property_key_for_label", evs[3].Operation)
}

func TestIndexFollowsLabelRename(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.engine.EnsureVertexLabel(ctx, "first", userRequest("age"))
	require.NoError(t, err)
	_, err = f.engine.EnsureCompositeIndex(ctx, "first", lifecycle.IndexRequest{Name: "byAge", Element: schema.ElementVertex, Keys: []string{"age"}, Label: "user"})
	require.NoError(t, err)

	renamed, err := f.engine.EnsureVertexLabel(ctx, "first", reconcile.VertexLabelRequest{ID: &user.ID, Name: "member"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, renamed.ID)

	fresh, err := f.engine.EnsureVertexLabel(ctx, "first", userRequest())
	require.NoError(t, err)
	assert.NotEqual(t, user.ID, fresh.ID)

	members, err := f.engine.GetCompositeIndices(ctx, "first", schema.ElementVertex, "member")
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "byAge", members[0].Name)
	assert.Equal(t, "member", members[0].Label())
	assert.Equal(t, user.ID, members[0].ConstraintID)

	users, err := f.engine.GetCompositeIndices(ctx, "first", schema.ElementVertex, "user")
	require.NoError(t, err)
	assert.Empty(t, users)

	idx, err := f.engine.GetCompositeIndexByName(ctx, "first", schema.ElementVertex, "byAge")
	require.NoError(t, err)
	assert.Equal(t, "member", idx.Label())

	missing, err := f.engine.GetCompositeIndices(ctx, "first", schema.ElementVertex, "admin")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

// countingGraph hands out sessions that count how they were finished
type countingGraph struct {
	*memory.Graph
	commits   atomic.Int64
	rollbacks atomic.Int64
}

type countingSession struct {
	schemastore.Session
	graph *countingGraph
}

func (g *countingGraph) OpenManagement(ctx context.Context) (schemastore.Session, error) {
	sess, err := g.Graph.OpenManagement(ctx)
	if err != nil {
		return nil, err
	}
	return &countingSession{Session: sess, graph: g}, nil
}

func (s *countingSession) Commit(ctx context.Context) error {
	s.graph.commits.Add(1)
	return s.Session.Commit(ctx)
}

func (s *countingSession) Rollback(ctx context.Context) error {
	s.graph.rollbacks.Add(1)
	return s.Session.Rollback(ctx)
}

func TestReadsNeverCommit(t *testing.T) {
	ctx := context.Background()
	g := &countingGraph{Graph: memory.New("first")}
	log := logger.New("engine-test", "1.0.0")
	log.DisableConsoleOutput()
	e := New(router.New(map[string]schemastore.Graph{"first": g}), log, WithReadinessPolicy(fastPolicy))

	_, err := e.EnsureVertexLabel(ctx, "first", userRequest("age"))
	require.NoError(t, err)
	_, err = e.EnsureCompositeIndex(ctx, "first", lifecycle.IndexRequest{Name: "byAge", Element: schema.ElementVertex, Keys: []string{"age"}, Label: "user"})
	require.NoError(t, err)
	require.Equal(t, int64(2), g.commits.Load())

	reads := []struct {
		name string
		call func() error
	}{
		{name: "property keys", call: func() error {
			_, err := e.GetPropertyKeys(ctx, "first")
			return err
		}},
		{name: "vertex labels by name", call: func() error {
			_, err := e.GetVertexLabelsByName(ctx, "first", "user")
			return err
		}},
		{name: "composite indices", call: func() error {
			_, err := e.GetCompositeIndices(ctx, "first", schema.ElementVertex, "user")
			return err
		}},
		{name: "composite index by name", call: func() error {
			_, err := e.GetCompositeIndexByName(ctx, "first", schema.ElementVertex, "byAge")
			return err
		}},
	}

	for _, tt := range reads {
		t.Run(tt.name, func(t *testing.T) {
			commits, rollbacks := g.commits.Load(), g.rollbacks.Load()
			require.NoError(t, tt.call())
			assert.Equal(t, commits, g.commits.Load())
			assert.Equal(t, rollbacks+1, g.rollbacks.Load())
		})
	}
}

type failingPublisher struct{ calls int }

func (p *failingPublisher) Publish(context.Context, events.SchemaChanged) error {
	p.calls++
	return errors.New("redis: connection refused")
}

func (p *failingPublisher) Close() error { return nil }

func TestPublishFailureDoesNotFailOperation(t *testing.T) {
	pub := &failingPublisher{}
	log := logger.New("engine-test", "1.0.0")
	log.DisableConsoleOutput()
	r := router.New(map[string]schemastore.Graph{"first": memory.New("first")})
	e := New(r, log, WithPublisher(pub))

	_, err := e.EnsurePropertyKey(context.Background(), "first", reconcile.PropertyKeyRequest{Name: "age"})
	require.NoError(t, err)
	assert.Equal(t, 1, pub.calls)
}

func TestUnavailableGraph(t *testing.T) {
	f := newFixture(t)
	f.second.SetOffline(true)

	_, err := f.engine.GetVertexLabels(context.Background(), "second")
	assert.ErrorIs(t, err, schema.ErrUnavailable)
	assert.True(t, schema.Retryable(err))

	_, err = f.engine.GetVertexLabels(context.Background(), "first")
	assert.NoError(t, err)
}
