package reconcile

import (
	"context"

	"github.com/redbco/graphschema/pkg/schema"
	"github.com/redbco/graphschema/pkg/schemastore"
)

// VertexLabelRequest is the desired state of a vertex label. When ID is set
// the label is resolved by id and renamed to Name if needed.
type VertexLabelRequest struct {
	ID          *int64
	Name        string
	ReadOnly    bool
	Partitioned bool
	Properties  []PropertyKeyRequest
}

// EdgeLabelRequest is the desired state of an edge label. A nil Directed
// means directed.
type EdgeLabelRequest struct {
	ID           *int64
	Name         string
	Multiplicity schema.Multiplicity
	Directed     *bool
	Properties   []PropertyKeyRequest
}

func labelRef(id *int64, name string) schema.LabelRef {
	if id != nil {
		return schema.ByID(*id)
	}
	return schema.ByName(name)
}

// EnsureVertexLabel resolves, renames or creates the requested vertex label,
// ensures its properties and returns it with every associated property.
func EnsureVertexLabel(ctx context.Context, sess schemastore.Session, req VertexLabelRequest) (schema.VertexLabel, error) {
	if req.Name == "" {
		return schema.VertexLabel{}, schema.NewInvalidArgumentError("ensure_vertex_label", "label name is required")
	}

	ref := labelRef(req.ID, req.Name)
	label, err := sess.GetVertexLabel(ctx, ref)
	if err != nil {
		return schema.VertexLabel{}, schema.WrapError("get vertex label", err)
	}

	switch {
	case label == nil && req.ID != nil:
		return schema.VertexLabel{}, schema.NewNotFoundError("ensure_vertex_label", "vertex label", ref.String())
	case label == nil:
		label, err = sess.MakeVertexLabel(ctx, req.Name, schema.VertexLabelFlags{
			ReadOnly:    req.ReadOnly,
			Partitioned: req.Partitioned,
		})
		if err != nil {
			return schema.VertexLabel{}, schema.WrapError("make vertex label", err)
		}
	case label.Name != req.Name:
		if err := sess.ChangeName(ctx, schema.ElementVertex, label.ID, req.Name); err != nil {
			return schema.VertexLabel{}, schema.WrapError("rename vertex label", err)
		}
	}

	owner := Owner{Kind: schema.ElementVertex, ID: label.ID, Name: req.Name}
	if err := ensureProperties(ctx, sess, owner, req.Properties); err != nil {
		return schema.VertexLabel{}, err
	}

	final, err := sess.GetVertexLabel(ctx, schema.ByID(label.ID))
	if err != nil {
		return schema.VertexLabel{}, schema.WrapError("get vertex label", err)
	}
	if final == nil {
		return schema.VertexLabel{}, schema.NewNotFoundError("ensure_vertex_label", "vertex label", schema.ByID(label.ID).String())
	}
	return *final, nil
}

// EnsureEdgeLabel is EnsureVertexLabel for edge labels
func EnsureEdgeLabel(ctx context.Context, sess schemastore.Session, req EdgeLabelRequest) (schema.EdgeLabel, error) {
	if req.Name == "" {
		return schema.EdgeLabel{}, schema.NewInvalidArgumentError("ensure_edge_label", "label name is required")
	}

	ref := labelRef(req.ID, req.Name)
	label, err := sess.GetEdgeLabel(ctx, ref)
	if err != nil {
		return schema.EdgeLabel{}, schema.WrapError("get edge label", err)
	}

	switch {
	case label == nil && req.ID != nil:
		return schema.EdgeLabel{}, schema.NewNotFoundError("ensure_edge_label", "edge label", ref.String())
	case label == nil:
		flags := schema.EdgeLabelFlags{Multiplicity: req.Multiplicity, Directed: true}
		if flags.Multiplicity == "" {
			flags.Multiplicity = schema.MultiplicityMulti
		}
		if req.Directed != nil {
			flags.Directed = *req.Directed
		}
		label, err = sess.MakeEdgeLabel(ctx, req.Name, flags)
		if err != nil {
			return schema.EdgeLabel{}, schema.WrapError("make edge label", err)
		}
	case label.Name != req.Name:
		if err := sess.ChangeName(ctx, schema.ElementEdge, label.ID, req.Name); err != nil {
			return schema.EdgeLabel{}, schema.WrapError("rename edge label", err)
		}
	}

	owner := Owner{Kind: schema.ElementEdge, ID: label.ID, Name: req.Name}
	if err := ensureProperties(ctx, sess, owner, req.Properties); err != nil {
		return schema.EdgeLabel{}, err
	}

	final, err := sess.GetEdgeLabel(ctx, schema.ByID(label.ID))
	if err != nil {
		return schema.EdgeLabel{}, schema.WrapError("get edge label", err)
	}
	if final == nil {
		return schema.EdgeLabel{}, schema.NewNotFoundError("ensure_edge_label", "edge label", schema.ByID(label.ID).String())
	}
	return *final, nil
}

func ensureProperties(ctx context.Context, sess schemastore.Session, owner Owner, props []PropertyKeyRequest) error {
	for _, p := range props {
		if _, err := EnsurePropertyKeyForOwner(ctx, sess, owner, p); err != nil {
			return err
		}
	}
	return nil
}
