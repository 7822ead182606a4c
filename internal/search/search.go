// Package search provisions the external document indices that back mixed
// indices. A mixed index names its backend; when that name is configured
// here, ensuring the index also creates the matching external index.
package search

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/redbco/graphschema/pkg/schema"
)

// TypeElasticsearch is the only provisioner type
const TypeElasticsearch = "elasticsearch"

// Config describes one mixed index backend
type Config struct {
	// Name is the backend name clients give when ensuring a mixed index
	Name        string
	Type        string
	Addresses   []string
	Username    string
	Password    string
	IndexPrefix string
}

// Provisioner creates the external index behind a mixed index. Provision must
// succeed when the external index already exists.
type Provisioner interface {
	Provision(ctx context.Context, graph string, idx schema.Index) error
	Ping(ctx context.Context) error
	Close() error
}

// Set routes mixed indices to the provisioner of their backend name
type Set struct {
	provisioners map[string]Provisioner
}

// NewSet creates a set from provisioners keyed by backend name
func NewSet(provisioners map[string]Provisioner) *Set {
	s := &Set{provisioners: make(map[string]Provisioner, len(provisioners))}
	for name, p := range provisioners {
		s.provisioners[name] = p
	}
	return s
}

// Open creates a provisioner for every config. Already created provisioners
// are closed when one fails.
func Open(cfgs []Config) (*Set, error) {
	s := NewSet(nil)
	for _, cfg := range cfgs {
		if _, dup := s.provisioners[cfg.Name]; dup {
			s.Close()
			return nil, fmt.Errorf("search backend %q configured twice", cfg.Name)
		}
		var (
			p   Provisioner
			err error
		)
		switch cfg.Type {
		case TypeElasticsearch, "":
			p, err = NewElasticsearch(cfg)
		default:
			err = fmt.Errorf("unknown search backend type %q", cfg.Type)
		}
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("search backend %s: %w", cfg.Name, err)
		}
		s.provisioners[cfg.Name] = p
	}
	return s, nil
}

// Names lists the configured backend names in sorted order
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.provisioners))
	for name := range s.provisioners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Provision creates the external index of a mixed index. Composite indices
// and mixed indices on unconfigured backends are left alone.
func (s *Set) Provision(ctx context.Context, graph string, idx schema.Index) error {
	if idx.Type != schema.IndexMixed {
		return nil
	}
	p, ok := s.provisioners[idx.Backend]
	if !ok {
		return nil
	}
	return p.Provision(ctx, graph, idx)
}

// Ping checks the backend called name
func (s *Set) Ping(ctx context.Context, name string) error {
	p, ok := s.provisioners[name]
	if !ok {
		return schema.NewNotFoundError("ping", "search backend", name)
	}
	return p.Ping(ctx)
}

func (s *Set) Close() error {
	var errs []error
	for name, p := range s.provisioners {
		if err := p.Close(); err != nil {
			errs = append(errs, fmt.Errorf("search backend %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
