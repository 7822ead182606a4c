// Package schemastore defines the schema-management capability that every
// graph store backend must provide. The service drives backends only through
// these interfaces.
package schemastore

import (
	"context"

	"github.com/redbco/graphschema/pkg/schema"
)

// Backend represents a graph store technology.
// Each backend (memory, postgres, neo4j) registers itself with the registry.
type Backend interface {
	// Type returns the backend identifier used in configuration
	Type() string

	// Open connects to one graph instance
	Open(ctx context.Context, cfg GraphConfig) (Graph, error)
}

// Graph is one independently-schema'd graph instance.
type Graph interface {
	// Name returns the graph context name this instance is served under
	Name() string
	Backend() string

	// OpenManagement starts a management session. The session must be
	// finished with Commit or Rollback.
	OpenManagement(ctx context.Context) (Session, error)

	// IndexReadiness reports the current per-key status of a committed index
	// without blocking. Backends may advance their backfill as part of the poll.
	IndexReadiness(ctx context.Context, indexName string) (schema.Readiness, error)

	Ping(ctx context.Context) error
	Close() error
}

// Session is a transactional management session over one graph.
// A Session is not safe for concurrent use.
//
// Lookups return (nil, nil) when the object does not exist.
type Session interface {
	GetPropertyKey(ctx context.Context, name string) (*schema.PropertyKey, error)
	MakePropertyKey(ctx context.Context, key schema.PropertyKey) (*schema.PropertyKey, error)
	ListPropertyKeys(ctx context.Context) ([]schema.PropertyKey, error)

	GetVertexLabel(ctx context.Context, ref schema.LabelRef) (*schema.VertexLabel, error)
	MakeVertexLabel(ctx context.Context, name string, flags schema.VertexLabelFlags) (*schema.VertexLabel, error)
	ListVertexLabels(ctx context.Context) ([]schema.VertexLabel, error)

	GetEdgeLabel(ctx context.Context, ref schema.LabelRef) (*schema.EdgeLabel, error)
	MakeEdgeLabel(ctx context.Context, name string, flags schema.EdgeLabelFlags) (*schema.EdgeLabel, error)
	ListEdgeLabels(ctx context.Context) ([]schema.EdgeLabel, error)

	// ChangeName renames a label in place; its id is preserved
	ChangeName(ctx context.Context, kind schema.ElementKind, labelID int64, newName string) error

	// AddProperty associates a property key with a label
	AddProperty(ctx context.Context, kind schema.ElementKind, labelID int64, keyID int64) error
	AssociatedProperties(ctx context.Context, kind schema.ElementKind, labelID int64) ([]schema.PropertyKey, error)

	BuildIndex(ctx context.Context, def schema.IndexDefinition) (*schema.Index, error)
	GetIndex(ctx context.Context, name string) (*schema.Index, error)
	ListIndices(ctx context.Context, kind schema.ElementKind) ([]schema.Index, error)
	IndexStatus(ctx context.Context, indexName, keyName string) (schema.SchemaStatus, error)
	UpdateIndex(ctx context.Context, indexName string, action schema.SchemaAction) error

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
