package schemastore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/redbco/graphschema/pkg/schema"
)

// ErrBackendNotFound is returned when no backend is registered under a type
var ErrBackendNotFound = errors.New("backend not found")

// Registry manages the registration and retrieval of store backends.
type Registry struct {
	backends map[string]Backend
	mu       sync.RWMutex
}

// NewRegistry creates a new backend registry.
func NewRegistry() *Registry {
	return &Registry{
		backends: make(map[string]Backend),
	}
}

// Register registers a backend.
// If a backend of the same type is already registered, it is replaced.
func (r *Registry) Register(b Backend) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.backends[b.Type()] = b
}

// Get retrieves a registered backend by type.
func (r *Registry) Get(backendType string) (Backend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, exists := r.backends[backendType]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrBackendNotFound, backendType)
	}
	return b, nil
}

// ListRegistered returns the registered backend types in sorted order.
func (r *Registry) ListRegistered() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.backends))
	for t := range r.backends {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Open connects to a graph instance using the backend named in the config.
func (r *Registry) Open(ctx context.Context, cfg GraphConfig) (Graph, error) {
	if cfg.Name == "" {
		return nil, schema.NewInvalidArgumentError("open_graph", "graph name is required")
	}

	b, err := r.Get(cfg.Backend)
	if err != nil {
		return nil, schema.NewInvalidArgumentError("open_graph", err.Error())
	}

	g, err := b.Open(ctx, cfg)
	if err != nil {
		return nil, schema.WrapError(fmt.Sprintf("open graph %s (%s)", cfg.Name, cfg.Backend), err)
	}
	return g, nil
}

// globalRegistry is the default registry backends add themselves to in init.
var globalRegistry = NewRegistry()

// Register registers a backend in the global registry.
func Register(b Backend) {
	globalRegistry.Register(b)
}

// GlobalRegistry returns the global backend registry.
func GlobalRegistry() *Registry {
	return globalRegistry
}
