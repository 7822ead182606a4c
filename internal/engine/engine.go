// Package engine runs schema operations against the graph selected by a
// context name. It owns session scoping, instrumentation and change events;
// the reconcile and lifecycle packages hold the schema rules.
package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/redbco/graphschema/internal/events"
	"github.com/redbco/graphschema/internal/lifecycle"
	"github.com/redbco/graphschema/internal/metrics"
	"github.com/redbco/graphschema/internal/router"
	"github.com/redbco/graphschema/internal/search"
	"github.com/redbco/graphschema/pkg/logger"
	"github.com/redbco/graphschema/pkg/schema"
	"github.com/redbco/graphschema/pkg/schemastore"
)

type requestIDKey struct{}

// WithRequestID attaches a request id to ctx for logs and events
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request id carried by ctx
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// withRequestID makes sure ctx carries a request id
func withRequestID(ctx context.Context) context.Context {
	if RequestID(ctx) != "" {
		return ctx
	}
	return WithRequestID(ctx, uuid.NewString())
}

// Engine serves schema operations for every configured graph context
type Engine struct {
	router    *router.Router
	lifecycle *lifecycle.Manager
	policy    lifecycle.Policy
	log       *logger.Logger
	metrics   *metrics.Metrics
	events    events.Publisher
	search    *search.Set

	inFlight atomic.Int64
	total    atomic.Int64
	failed   atomic.Int64
}

// Option configures an Engine
type Option func(*Engine)

// WithMetrics records operations in m
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithPublisher publishes committed changes through p
func WithPublisher(p events.Publisher) Option {
	return func(e *Engine) { e.events = p }
}

// WithSearch provisions the external indices of mixed indices through s
func WithSearch(s *search.Set) Option {
	return func(e *Engine) { e.search = s }
}

// WithReadinessPolicy sets the polling policy of index readiness waits
func WithReadinessPolicy(p lifecycle.Policy) Option {
	return func(e *Engine) { e.policy = p }
}

// New creates an Engine over the graphs of r
func New(r *router.Router, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		router: r,
		policy: lifecycle.DefaultPolicy(),
		log:    log,
		events: events.Nop{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.metrics == nil {
		e.metrics = metrics.New(nil)
	}
	e.lifecycle = lifecycle.NewManager(e.policy, log)
	return e
}

// Router returns the context router the engine serves
func (e *Engine) Router() *router.Router {
	return e.router
}

// Stats returns operation counters for service metrics collection
func (e *Engine) Stats() map[string]int64 {
	return map[string]int64{
		"operations_in_flight": e.inFlight.Load(),
		"operations_total":     e.total.Load(),
		"operations_failed":    e.failed.Load(),
	}
}

// track counts an operation as in flight and returns the function that
// records its outcome.
func (e *Engine) track(ctx context.Context, graph, op string, mutation bool) func(error) {
	start := time.Now()
	e.inFlight.Add(1)
	e.metrics.InFlight.WithLabelValues(graph).Inc()

	return func(err error) {
		elapsed := time.Since(start)
		e.inFlight.Add(-1)
		e.total.Add(1)
		e.metrics.InFlight.WithLabelValues(graph).Dec()

		kind := ""
		if err != nil {
			kind = schema.KindOf(err).String()
			e.failed.Add(1)
		}
		e.metrics.Observe(graph, op, kind, elapsed)

		if e.log == nil {
			return
		}
		lc := e.log.WithFields(map[string]string{
			"graph":      graph,
			"operation":  op,
			"request_id": RequestID(ctx),
			"elapsed":    elapsed.Round(time.Microsecond).String(),
		})
		switch {
		case err != nil && schema.KindOf(err) == schema.KindUnknown:
			lc.With("error", err.Error()).Error("Schema operation failed")
		case err != nil:
			lc.With("error", err.Error()).Warn("Schema operation rejected")
		case mutation:
			lc.Info("Schema operation committed")
		default:
			lc.Debug("Schema read served")
		}
	}
}

func (e *Engine) open(ctx context.Context, graph string) (schemastore.Session, error) {
	if graph == "" {
		return nil, schema.NewInvalidArgumentError("resolve", "graph context is required")
	}
	return e.router.Open(ctx, graph)
}

func (e *Engine) resolve(graph string) (schemastore.Graph, error) {
	if graph == "" {
		return nil, schema.NewInvalidArgumentError("resolve", "graph context is required")
	}
	return e.router.Resolve(graph)
}

func (e *Engine) rollback(ctx context.Context, graph string, sess schemastore.Session) {
	if err := sess.Rollback(ctx); err != nil && e.log != nil {
		e.log.Warnf("Rollback on graph %s failed: %v", graph, err)
	}
}

// changeSession notes whether any mutation went through the session it wraps.
// The reconcilers only mutate what is missing, so an idempotent ensure leaves
// changed unset.
type changeSession struct {
	schemastore.Session
	changed bool
}

func (s *changeSession) mark(err error) error {
	if err == nil {
		s.changed = true
	}
	return err
}

func (s *changeSession) MakePropertyKey(ctx context.Context, key schema.PropertyKey) (*schema.PropertyKey, error) {
	k, err := s.Session.MakePropertyKey(ctx, key)
	return k, s.mark(err)
}

func (s *changeSession) MakeVertexLabel(ctx context.Context, name string, flags schema.VertexLabelFlags) (*schema.VertexLabel, error) {
	l, err := s.Session.MakeVertexLabel(ctx, name, flags)
	return l, s.mark(err)
}

func (s *changeSession) MakeEdgeLabel(ctx context.Context, name string, flags schema.EdgeLabelFlags) (*schema.EdgeLabel, error) {
	l, err := s.Session.MakeEdgeLabel(ctx, name, flags)
	return l, s.mark(err)
}

func (s *changeSession) ChangeName(ctx context.Context, kind schema.ElementKind, labelID int64, newName string) error {
	return s.mark(s.Session.ChangeName(ctx, kind, labelID, newName))
}

func (s *changeSession) AddProperty(ctx context.Context, kind schema.ElementKind, labelID int64, keyID int64) error {
	return s.mark(s.Session.AddProperty(ctx, kind, labelID, keyID))
}

func (s *changeSession) BuildIndex(ctx context.Context, def schema.IndexDefinition) (*schema.Index, error) {
	idx, err := s.Session.BuildIndex(ctx, def)
	return idx, s.mark(err)
}

func (s *changeSession) UpdateIndex(ctx context.Context, indexName string, action schema.SchemaAction) error {
	return s.mark(s.Session.UpdateIndex(ctx, indexName, action))
}

// update runs fn in a management session and commits it. Every failure
// before the commit rolls the session back. changed reports whether fn
// mutated the schema.
func update[T any](ctx context.Context, e *Engine, graph, op string, fn func(context.Context, schemastore.Session) (T, error)) (result T, changed bool, err error) {
	ctx = withRequestID(ctx)
	done := e.track(ctx, graph, op, true)
	defer func() { done(err) }()

	sess, err := e.open(ctx, graph)
	if err != nil {
		return result, false, err
	}
	committed := false
	defer func() {
		if !committed {
			e.rollback(ctx, graph, sess)
		}
	}()

	cs := &changeSession{Session: sess}
	result, err = fn(ctx, cs)
	if err != nil {
		var zero T
		return zero, false, err
	}

	committed = true
	if err = sess.Commit(ctx); err != nil {
		var zero T
		return zero, false, err
	}
	return result, cs.changed, nil
}

// view runs fn in a management session that is always rolled back
func view[T any](ctx context.Context, e *Engine, graph, op string, fn func(context.Context, schemastore.Session) (T, error)) (result T, err error) {
	ctx = withRequestID(ctx)
	done := e.track(ctx, graph, op, false)
	defer func() { done(err) }()

	sess, err := e.open(ctx, graph)
	if err != nil {
		return result, err
	}
	defer e.rollback(ctx, graph, sess)

	return fn(ctx, sess)
}

// publish announces a committed change. Delivery failures are only logged.
func (e *Engine) publish(ctx context.Context, graph, op string, ev events.SchemaChanged) {
	ev.Graph = graph
	ev.Operation = op
	ev.RequestID = RequestID(ctx)
	ev.Time = time.Now().UTC()

	if err := e.events.Publish(ctx, ev); err != nil && e.log != nil {
		e.log.Warnf("Failed to publish %s change of %s on graph %s: %v", ev.Object, ev.Name, graph, err)
	}
}

// Close releases the event publisher, the search backends and every graph
func (e *Engine) Close() error {
	if err := e.events.Close(); err != nil && e.log != nil {
		e.log.Warnf("Failed to close event publisher: %v", err)
	}
	if e.search != nil {
		if err := e.search.Close(); err != nil && e.log != nil {
			e.log.Warnf("Failed to close search backends: %v", err)
		}
	}
	return e.router.Close()
}
