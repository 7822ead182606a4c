// Package memory implements an in-process, transactional schema store. It is
// the default backend and the one the service's own tests run against.
package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/redbco/graphschema/pkg/schema"
	"github.com/redbco/graphschema/pkg/schemastore"
)

// BackendType is the configuration name of this backend
const BackendType = "memory"

var errOffline = errors.New("memory graph is offline")

func init() {
	schemastore.Register(&Backend{})
}

// Backend opens memory graphs
type Backend struct{}

func (b *Backend) Type() string { return BackendType }

// Open creates an empty graph. The option manual_backfill=true keeps indices
// INSTALLED until CompleteBackfill is called.
func (b *Backend) Open(ctx context.Context, cfg schemastore.GraphConfig) (schemastore.Graph, error) {
	var opts []Option
	if cfg.BoolOption("manual_backfill", false) {
		opts = append(opts, WithManualBackfill())
	}
	return New(cfg.Name, opts...), nil
}

// Option configures a Graph
type Option func(*Graph)

// WithManualBackfill stops readiness polls from advancing INSTALLED indices
func WithManualBackfill() Option {
	return func(g *Graph) {
		g.manualBackfill = true
	}
}

// Graph is one in-memory graph instance
type Graph struct {
	name string

	mu        sync.RWMutex
	committed *catalog
	lastID    atomic.Int64

	manualBackfill bool
	offline        atomic.Bool
}

var _ schemastore.Graph = (*Graph)(nil)

// New creates an empty graph served under name
func New(name string, opts ...Option) *Graph {
	g := &Graph{name: name, committed: newCatalog()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Graph) Name() string    { return g.name }
func (g *Graph) Backend() string { return BackendType }

func (g *Graph) nextID() int64 {
	return g.lastID.Add(1)
}

// OpenManagement snapshots the committed catalog into a new session
func (g *Graph) OpenManagement(ctx context.Context) (schemastore.Session, error) {
	if g.offline.Load() {
		return nil, schema.NewUnavailableError("open_management", errOffline)
	}
	if err := ctx.Err(); err != nil {
		return nil, schema.NewUnavailableError("open_management", err)
	}

	g.mu.RLock()
	view := g.committed.clone()
	g.mu.RUnlock()

	return &Session{graph: g, view: view}, nil
}

func (g *Graph) commit(journal []func(*catalog) error) error {
	if g.offline.Load() {
		return schema.NewUnavailableError("commit", errOffline)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	next := g.committed.clone()
	for _, op := range journal {
		if err := op(next); err != nil {
			return err
		}
	}
	g.committed = next
	return nil
}

// IndexReadiness reports per-key status. Unless backfill is manual, a poll
// finishes the backfill of an INSTALLED composite index.
func (g *Graph) IndexReadiness(ctx context.Context, indexName string) (schema.Readiness, error) {
	if g.offline.Load() {
		return schema.Readiness{}, schema.NewUnavailableError("index_readiness", errOffline)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	rec, ok := g.committed.indices[indexName]
	if !ok {
		return schema.Readiness{}, schema.NewNotFoundError("index_readiness", "index", indexName)
	}
	if !g.manualBackfill && rec.index.Type == schema.IndexComposite {
		rec.setStatus([]schema.SchemaStatus{schema.StatusInstalled}, schema.StatusRegistered)
	}
	return rec.readiness(), nil
}

// CompleteBackfill moves every INSTALLED key of an index to REGISTERED
func (g *Graph) CompleteBackfill(indexName string) error {
	return g.transition(indexName, []schema.SchemaStatus{schema.StatusInstalled}, schema.StatusRegistered)
}

// DisableIndex moves an index to DISABLED, as an operator would
func (g *Graph) DisableIndex(indexName string) error {
	return g.transition(indexName, []schema.SchemaStatus{
		schema.StatusInstalled, schema.StatusRegistered, schema.StatusEnabled,
	}, schema.StatusDisabled)
}

func (g *Graph) transition(indexName string, from []schema.SchemaStatus, to schema.SchemaStatus) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	rec, ok := g.committed.indices[indexName]
	if !ok {
		return schema.NewNotFoundError("transition", "index", indexName)
	}
	rec.setStatus(from, to)
	return nil
}

// SetOffline makes every store call fail with Unavailable until cleared
func (g *Graph) SetOffline(offline bool) {
	g.offline.Store(offline)
}

func (g *Graph) Ping(ctx context.Context) error {
	if g.offline.Load() {
		return schema.NewUnavailableError("ping", errOffline)
	}
	return nil
}

func (g *Graph) Close() error {
	return nil
}
