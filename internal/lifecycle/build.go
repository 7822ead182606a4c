// Package lifecycle builds graph indices and drives composite indices through
// INSTALLED, REGISTERED and ENABLED.
package lifecycle

import (
	"context"
	"strings"

	"github.com/redbco/graphschema/pkg/schema"
	"github.com/redbco/graphschema/pkg/schemastore"
)

// IndexRequest describes an index to ensure. An empty Label, or "ALL",
// builds an unconstrained index.
type IndexRequest struct {
	Name    string
	Element schema.ElementKind
	Keys    []string
	Label   string
	Unique  bool
	// Backend names the external index backend of a mixed index
	Backend string
}

func (r IndexRequest) constraint() string {
	if strings.EqualFold(r.Label, schema.AllLabels) {
		return ""
	}
	return r.Label
}

// BuildCompositeIndex ensures a composite index. If an index with the same
// name exists it is returned unchanged.
func BuildCompositeIndex(ctx context.Context, sess schemastore.Session, req IndexRequest) (schema.Index, error) {
	return build(ctx, sess, req, schema.IndexComposite)
}

// BuildMixedIndex ensures a mixed index delegated to req.Backend
func BuildMixedIndex(ctx context.Context, sess schemastore.Session, req IndexRequest) (schema.Index, error) {
	if req.Backend == "" {
		return schema.Index{}, schema.NewInvalidArgumentError("build_mixed_index", "index backend is required")
	}
	req.Unique = false
	return build(ctx, sess, req, schema.IndexMixed)
}

func build(ctx context.Context, sess schemastore.Session, req IndexRequest, typ schema.IndexType) (schema.Index, error) {
	op := "build_" + string(typ) + "_index"
	if err := validate(op, req); err != nil {
		return schema.Index{}, err
	}

	existing, err := sess.GetIndex(ctx, req.Name)
	if err != nil {
		return schema.Index{}, schema.WrapError("get index", err)
	}
	if existing != nil {
		return *existing, nil
	}

	for _, name := range req.Keys {
		key, err := sess.GetPropertyKey(ctx, name)
		if err != nil {
			return schema.Index{}, schema.WrapError("get property key", err)
		}
		if key == nil {
			return schema.Index{}, schema.NewNotFoundError(op, "property key", name)
		}
	}

	def := schema.IndexDefinition{
		Name:    req.Name,
		Element: req.Element,
		Type:    typ,
		Keys:    req.Keys,
		Unique:  req.Unique && typ == schema.IndexComposite,
		Backend: req.Backend,
	}
	if constraint := req.constraint(); constraint != "" {
		id, err := labelID(ctx, sess, req.Element, constraint)
		if err != nil {
			return schema.Index{}, err
		}
		if id == 0 {
			return schema.Index{}, schema.NewNotFoundError(op, string(req.Element)+" label", constraint)
		}
		def.ConstraintID = id
		def.Constraint = constraint
	}
	idx, err := sess.BuildIndex(ctx, def)
	if err != nil {
		return schema.Index{}, schema.WrapError("build index", err)
	}
	return *idx, nil
}

func validate(op string, req IndexRequest) error {
	if req.Name == "" {
		return schema.NewInvalidArgumentError(op, "index name is required")
	}
	if !req.Element.Valid() {
		return schema.NewInvalidArgumentError(op, "element kind must be vertex or edge")
	}
	if len(req.Keys) == 0 {
		return schema.NewInvalidArgumentError(op, "at least one property key is required")
	}
	seen := make(map[string]bool, len(req.Keys))
	for _, k := range req.Keys {
		if k == "" {
			return schema.NewInvalidArgumentError(op, "property key name is required")
		}
		if seen[k] {
			return schema.NewInvalidArgumentError(op, "property key "+k+" listed twice")
		}
		seen[k] = true
	}
	return nil
}

// labelID resolves a label name to its id; zero means there is no such label
func labelID(ctx context.Context, sess schemastore.Session, kind schema.ElementKind, name string) (int64, error) {
	switch kind {
	case schema.ElementVertex:
		l, err := sess.GetVertexLabel(ctx, schema.ByName(name))
		if err != nil {
			return 0, schema.WrapError("get vertex label", err)
		}
		if l != nil {
			return l.ID, nil
		}
	case schema.ElementEdge:
		l, err := sess.GetEdgeLabel(ctx, schema.ByName(name))
		if err != nil {
			return 0, schema.WrapError("get edge label", err)
		}
		if l != nil {
			return l.ID, nil
		}
	}
	return 0, nil
}
