package engine

import (
	"context"
	"time"

	"github.com/redbco/graphschema/internal/events"
	"github.com/redbco/graphschema/internal/lifecycle"
	"github.com/redbco/graphschema/internal/reconcile"
	"github.com/redbco/graphschema/pkg/schema"
	"github.com/redbco/graphschema/pkg/schemastore"
)

// EnsurePropertyKey returns the named property key, creating it if absent
func (e *Engine) EnsurePropertyKey(ctx context.Context, graph string, req reconcile.PropertyKeyRequest) (schema.PropertyKey, error) {
	const op = "ensure_property_key"
	ctx = withRequestID(ctx)

	key, changed, err := update(ctx, e, graph, op, func(ctx context.Context, sess schemastore.Session) (schema.PropertyKey, error) {
		return reconcile.EnsurePropertyKey(ctx, sess, req)
	})
	if err != nil {
		return schema.PropertyKey{}, err
	}
	if changed {
		e.publish(ctx, graph, op, events.SchemaChanged{Object: events.ObjectPropertyKey, Name: key.Name, ID: key.ID})
	}
	return key, nil
}

// EnsurePropertyKeyForLabel ensures a property key and associates it with the
// vertex label named label, or with the edge label of that name when no
// vertex label matches.
func (e *Engine) EnsurePropertyKeyForLabel(ctx context.Context, graph, label string, req reconcile.PropertyKeyRequest) (schema.PropertyKey, error) {
	const op = "ensure_property_key_for_label"
	ctx = withRequestID(ctx)

	key, changed, err := update(ctx, e, graph, op, func(ctx context.Context, sess schemastore.Session) (schema.PropertyKey, error) {
		owner, err := reconcile.ResolveOwner(ctx, sess, label)
		if err != nil {
			return schema.PropertyKey{}, err
		}
		return reconcile.EnsurePropertyKeyForOwner(ctx, sess, owner, req)
	})
	if err != nil {
		return schema.PropertyKey{}, err
	}
	if changed {
		e.publish(ctx, graph, op, events.SchemaChanged{Object: events.ObjectPropertyKey, Name: key.Name, ID: key.ID})
	}
	return key, nil
}

// GetPropertyKeys lists every property key of the graph
func (e *Engine) GetPropertyKeys(ctx context.Context, graph string) ([]schema.PropertyKey, error) {
	return view(ctx, e, graph, "get_property_keys", func(ctx context.Context, sess schemastore.Session) ([]schema.PropertyKey, error) {
		keys, err := sess.ListPropertyKeys(ctx)
		return keys, schema.WrapError("list property keys", err)
	})
}

// GetPropertyKeyByName returns one property key or NotFound
func (e *Engine) GetPropertyKeyByName(ctx context.Context, graph, name string) (schema.PropertyKey, error) {
	return view(ctx, e, graph, "get_property_key_by_name", func(ctx context.Context, sess schemastore.Session) (schema.PropertyKey, error) {
		if name == "" {
			return schema.PropertyKey{}, schema.NewInvalidArgumentError("get_property_key", "property key name is required")
		}
		key, err := sess.GetPropertyKey(ctx, name)
		if err != nil {
			return schema.PropertyKey{}, schema.WrapError("get property key", err)
		}
		if key == nil {
			return schema.PropertyKey{}, schema.NewNotFoundError("get_property_key", "property key", name)
		}
		return *key, nil
	})
}

// EnsureVertexLabel resolves, renames or creates a vertex label and ensures
// its properties.
func (e *Engine) EnsureVertexLabel(ctx context.Context, graph string, req reconcile.VertexLabelRequest) (schema.VertexLabel, error) {
	const op = "ensure_vertex_label"
	ctx = withRequestID(ctx)

	label, changed, err := update(ctx, e, graph, op, func(ctx context.Context, sess schemastore.Session) (schema.VertexLabel, error) {
		return reconcile.EnsureVertexLabel(ctx, sess, req)
	})
	if err != nil {
		return schema.VertexLabel{}, err
	}
	if changed {
		e.publish(ctx, graph, op, events.SchemaChanged{Object: events.ObjectVertexLabel, Name: label.Name, ID: label.ID})
	}
	return label, nil
}

// GetVertexLabels lists every vertex label with its properties
func (e *Engine) GetVertexLabels(ctx context.Context, graph string) ([]schema.VertexLabel, error) {
	return view(ctx, e, graph, "get_vertex_labels", func(ctx context.Context, sess schemastore.Session) ([]schema.VertexLabel, error) {
		labels, err := sess.ListVertexLabels(ctx)
		return labels, schema.WrapError("list vertex labels", err)
	})
}

// GetVertexLabelsByName returns the vertex label of that name, or nothing
func (e *Engine) GetVertexLabelsByName(ctx context.Context, graph, name string) ([]schema.VertexLabel, error) {
	return view(ctx, e, graph, "get_vertex_labels_by_name", func(ctx context.Context, sess schemastore.Session) ([]schema.VertexLabel, error) {
		if name == "" {
			return nil, schema.NewInvalidArgumentError("get_vertex_label", "label name is required")
		}
		label, err := sess.GetVertexLabel(ctx, schema.ByName(name))
		if err != nil {
			return nil, schema.WrapError("get vertex label", err)
		}
		if label == nil {
			return nil, nil
		}
		return []schema.VertexLabel{*label}, nil
	})
}

// EnsureEdgeLabel resolves, renames or creates an edge label and ensures its
// properties.
func (e *Engine) EnsureEdgeLabel(ctx context.Context, graph string, req reconcile.EdgeLabelRequest) (schema.EdgeLabel, error) {
	const op = "ensure_edge_label"
	ctx = withRequestID(ctx)

	label, changed, err := update(ctx, e, graph, op, func(ctx context.Context, sess schemastore.Session) (schema.EdgeLabel, error) {
		return reconcile.EnsureEdgeLabel(ctx, sess, req)
	})
	if err != nil {
		return schema.EdgeLabel{}, err
	}
	if changed {
		e.publish(ctx, graph, op, events.SchemaChanged{Object: events.ObjectEdgeLabel, Name: label.Name, ID: label.ID})
	}
	return label, nil
}

func (e *Engine) GetEdgeLabels(ctx context.Context, graph string) ([]schema.EdgeLabel, error) {
	return view(ctx, e, graph, "get_edge_labels", func(ctx context.Context, sess schemastore.Session) ([]schema.EdgeLabel, error) {
		labels, err := sess.ListEdgeLabels(ctx)
		return labels, schema.WrapError("list edge labels", err)
	})
}

func (e *Engine) GetEdgeLabelsByName(ctx context.Context, graph, name string) ([]schema.EdgeLabel, error) {
	return view(ctx, e, graph, "get_edge_labels_by_name", func(ctx context.Context, sess schemastore.Session) ([]schema.EdgeLabel, error) {
		if name == "" {
			return nil, schema.NewInvalidArgumentError("get_edge_label", "label name is required")
		}
		label, err := sess.GetEdgeLabel(ctx, schema.ByName(name))
		if err != nil {
			return nil, schema.WrapError("get edge label", err)
		}
		if label == nil {
			return nil, nil
		}
		return []schema.EdgeLabel{*label}, nil
	})
}

// EnsureCompositeIndex builds a composite index on req.Element, or returns the
// existing index of that name unchanged.
func (e *Engine) EnsureCompositeIndex(ctx context.Context, graph string, req lifecycle.IndexRequest) (schema.Index, error) {
	return e.ensureIndex(ctx, graph, "ensure_composite_index", req, lifecycle.BuildCompositeIndex)
}

// EnsureMixedIndex builds a mixed index backed by req.Backend
func (e *Engine) EnsureMixedIndex(ctx context.Context, graph string, req lifecycle.IndexRequest) (schema.Index, error) {
	return e.ensureIndex(ctx, graph, "ensure_mixed_index", req, lifecycle.BuildMixedIndex)
}

type buildFunc func(context.Context, schemastore.Session, lifecycle.IndexRequest) (schema.Index, error)

func (e *Engine) ensureIndex(ctx context.Context, graph, op string, req lifecycle.IndexRequest, build buildFunc) (schema.Index, error) {
	ctx = withRequestID(ctx)

	idx, changed, err := update(ctx, e, graph, op, func(ctx context.Context, sess schemastore.Session) (schema.Index, error) {
		return build(ctx, sess, req)
	})
	if err != nil {
		return schema.Index{}, err
	}
	// mixed indices are provisioned on every ensure so a retry repairs a failed one
	if e.search != nil {
		if err := e.search.Provision(ctx, graph, idx); err != nil {
			if e.log != nil {
				e.log.Warnf("Failed to provision %s index %s of graph %s on %s: %v", idx.Type, idx.Name, graph, idx.Backend, err)
			}
			return schema.Index{}, err
		}
	}
	if changed {
		e.publish(ctx, graph, op, events.SchemaChanged{
			Object: events.ObjectIndex,
			Name:   idx.Name,
			ID:     idx.ID,
			Status: string(idx.Status),
		})
	}
	return idx, nil
}

// GetCompositeIndices lists composite indices of one element kind. A
// non-empty label keeps only the indices constrained to it.
func (e *Engine) GetCompositeIndices(ctx context.Context, graph string, kind schema.ElementKind, label string) ([]schema.Index, error) {
	return e.listIndices(ctx, graph, "get_composite_indices", kind, schema.IndexComposite, label)
}

// GetMixedIndices lists mixed indices of one element kind
func (e *Engine) GetMixedIndices(ctx context.Context, graph string, kind schema.ElementKind, label string) ([]schema.Index, error) {
	return e.listIndices(ctx, graph, "get_mixed_indices", kind, schema.IndexMixed, label)
}

func (e *Engine) listIndices(ctx context.Context, graph, op string, kind schema.ElementKind, typ schema.IndexType, label string) ([]schema.Index, error) {
	return view(ctx, e, graph, op, func(ctx context.Context, sess schemastore.Session) ([]schema.Index, error) {
		return lifecycle.ListIndices(ctx, sess, kind, typ, label)
	})
}

// GetCompositeIndexByName returns a composite index of the given element kind
func (e *Engine) GetCompositeIndexByName(ctx context.Context, graph string, kind schema.ElementKind, name string) (schema.Index, error) {
	return view(ctx, e, graph, "get_composite_index_by_name", func(ctx context.Context, sess schemastore.Session) (schema.Index, error) {
		idx, err := lifecycle.GetIndex(ctx, sess, name, schema.IndexComposite)
		if err != nil {
			return schema.Index{}, err
		}
		if idx.Element != kind {
			return schema.Index{}, schema.NewNotFoundError("get_index", string(kind)+" composite index", name)
		}
		return idx, nil
	})
}

// GetIndexReadiness polls the backfill progress of a committed index once
func (e *Engine) GetIndexReadiness(ctx context.Context, graph, name string) (rd schema.Readiness, err error) {
	ctx = withRequestID(ctx)
	done := e.track(ctx, graph, "get_index_readiness", false)
	defer func() { done(err) }()

	g, err := e.resolve(graph)
	if err != nil {
		return schema.Readiness{}, err
	}
	return e.lifecycle.Readiness(ctx, g, name)
}

// EnableCompositeIndex moves a REGISTERED composite index to ENABLED. With
// wait set it first waits for backfill, bounded by ctx.
func (e *Engine) EnableCompositeIndex(ctx context.Context, graph, name string, wait bool) (idx schema.Index, err error) {
	const op = "enable_composite_index"
	ctx = withRequestID(ctx)
	done := e.track(ctx, graph, op, true)
	defer func() { done(err) }()

	g, err := e.resolve(graph)
	if err != nil {
		return schema.Index{}, err
	}

	start := time.Now()
	idx, err = e.lifecycle.EnableCompositeIndex(ctx, g, name, wait)
	if err != nil {
		return schema.Index{}, err
	}
	if wait && e.log != nil {
		e.log.Debugf("Index %s on graph %s enabled after %s", name, graph, time.Since(start).Round(time.Millisecond))
	}

	e.metrics.IndexEnabled.WithLabelValues(graph, string(idx.Element)).Inc()
	e.publish(ctx, graph, op, events.SchemaChanged{
		Object: events.ObjectIndex,
		Name:   idx.Name,
		ID:     idx.ID,
		Status: string(idx.Status),
	})
	return idx, nil
}
