// Package router maps graph context names to the graph instances they select.
// The table is built once at startup and never changes afterwards.
package router

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/redbco/graphschema/pkg/logger"
	"github.com/redbco/graphschema/pkg/schema"
	"github.com/redbco/graphschema/pkg/schemastore"
)

// Router resolves graph context names. It is safe for concurrent use because
// it is never mutated after construction.
type Router struct {
	graphs map[string]schemastore.Graph
	names  []string
}

// New builds a router over the given graphs. The map is copied.
func New(graphs map[string]schemastore.Graph) *Router {
	r := &Router{
		graphs: make(map[string]schemastore.Graph, len(graphs)),
		names:  make([]string, 0, len(graphs)),
	}
	for name, g := range graphs {
		r.graphs[name] = g
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)
	return r
}

// Connect opens every configured graph concurrently. If any graph fails to
// open, the ones already opened are closed and the first error is returned.
func Connect(ctx context.Context, registry *schemastore.Registry, configs []schemastore.GraphConfig, log *logger.Logger) (*Router, error) {
	seen := make(map[string]bool, len(configs))
	for _, cfg := range configs {
		if seen[cfg.Name] {
			return nil, schema.NewInvalidArgumentError("connect", fmt.Sprintf("graph context %q configured twice", cfg.Name))
		}
		seen[cfg.Name] = true
	}

	opened := make([]schemastore.Graph, len(configs))

	g, gctx := errgroup.WithContext(ctx)
	for i, cfg := range configs {
		i, cfg := i, cfg
		g.Go(func() error {
			graph, err := registry.Open(gctx, cfg)
			if err != nil {
				return err
			}
			opened[i] = graph
			if log != nil {
				log.Infof("Opened graph context %s (backend %s)", cfg.Name, cfg.Backend)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, graph := range opened {
			if graph == nil {
				continue
			}
			if cerr := graph.Close(); cerr != nil && log != nil {
				log.Warnf("Failed to close graph context %s: %v", graph.Name(), cerr)
			}
		}
		return nil, err
	}

	graphs := make(map[string]schemastore.Graph, len(opened))
	for i, graph := range opened {
		graphs[configs[i].Name] = graph
	}
	return New(graphs), nil
}

// Resolve returns the graph selected by a context name. Unknown names are
// NotFound; there is no default graph.
func (r *Router) Resolve(name string) (schemastore.Graph, error) {
	g, ok := r.graphs[name]
	if !ok {
		return nil, schema.NewNotFoundError("resolve", "graph context", name)
	}
	return g, nil
}

// Open resolves a context and starts a management session on it
func (r *Router) Open(ctx context.Context, name string) (schemastore.Session, error) {
	g, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	sess, err := g.OpenManagement(ctx)
	if err != nil {
		return nil, schema.WrapError("open management session on "+name, err)
	}
	return sess, nil
}

// Names lists the context names in sorted order
func (r *Router) Names() []string {
	return append([]string(nil), r.names...)
}

// Ping checks every graph and joins the failures
func (r *Router) Ping(ctx context.Context) error {
	var errs []error
	for _, name := range r.names {
		if err := r.graphs[name].Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("graph %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Close closes every graph
func (r *Router) Close() error {
	var errs []error
	for _, name := range r.names {
		if err := r.graphs[name].Close(); err != nil {
			errs = append(errs, fmt.Errorf("graph %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
