package lifecycle

import (
	"context"
	"strings"

	"github.com/redbco/graphschema/pkg/schema"
	"github.com/redbco/graphschema/pkg/schemastore"
)

// ListIndices returns the indices of one element kind and type. A non-empty
// label keeps only indices constrained to the label currently carrying that
// name; "ALL" selects unconstrained ones.
func ListIndices(ctx context.Context, sess schemastore.Session, kind schema.ElementKind, typ schema.IndexType, label string) ([]schema.Index, error) {
	filter := label != ""
	var constraintID int64
	if filter && !strings.EqualFold(label, schema.AllLabels) {
		id, err := labelID(ctx, sess, kind, label)
		if err != nil {
			return nil, err
		}
		if id == 0 {
			return []schema.Index{}, nil
		}
		constraintID = id
	}

	all, err := sess.ListIndices(ctx, kind)
	if err != nil {
		return nil, schema.WrapError("list indices", err)
	}

	out := make([]schema.Index, 0, len(all))
	for _, idx := range all {
		if idx.Type != typ {
			continue
		}
		if filter && idx.ConstraintID != constraintID {
			continue
		}
		out = append(out, idx)
	}
	return out, nil
}

// GetIndex returns the named index of the given type
func GetIndex(ctx context.Context, sess schemastore.Session, name string, typ schema.IndexType) (schema.Index, error) {
	if name == "" {
		return schema.Index{}, schema.NewInvalidArgumentError("get_index", "index name is required")
	}
	idx, err := sess.GetIndex(ctx, name)
	if err != nil {
		return schema.Index{}, schema.WrapError("get index", err)
	}
	if idx == nil || idx.Type != typ {
		return schema.Index{}, schema.NewNotFoundError("get_index", string(typ)+" index", name)
	}
	return *idx, nil
}
