// Package reconcile makes a graph's schema match requested property keys and
// labels. Every function works inside a caller-owned session and never
// commits; the caller decides the outcome of the session.
package reconcile

import (
	"context"

	"github.com/redbco/graphschema/pkg/schema"
	"github.com/redbco/graphschema/pkg/schemastore"
)

// PropertyKeyRequest is the desired shape of a property key. DataType and
// Cardinality only matter when the key does not exist yet.
type PropertyKeyRequest struct {
	Name        string
	DataType    schema.DataType
	Cardinality schema.Cardinality
}

// Owner is a resolved label that property keys are associated with
type Owner struct {
	Kind schema.ElementKind
	ID   int64
	Name string
}

// EnsurePropertyKey returns the key named by req, creating it if absent.
// An existing key is returned unchanged even if its data type or cardinality
// differ from the request.
func EnsurePropertyKey(ctx context.Context, sess schemastore.Session, req PropertyKeyRequest) (schema.PropertyKey, error) {
	if req.Name == "" {
		return schema.PropertyKey{}, schema.NewInvalidArgumentError("ensure_property_key", "property key name is required")
	}

	existing, err := sess.GetPropertyKey(ctx, req.Name)
	if err != nil {
		return schema.PropertyKey{}, schema.WrapError("get property key", err)
	}
	if existing != nil {
		return *existing, nil
	}

	key := schema.PropertyKey{
		Name:        req.Name,
		DataType:    req.DataType,
		Cardinality: req.Cardinality,
	}
	if key.DataType == "" {
		key.DataType = schema.DataTypeString
	}
	if key.Cardinality == "" {
		key.Cardinality = schema.CardinalitySingle
	}

	created, err := sess.MakePropertyKey(ctx, key)
	if err != nil {
		return schema.PropertyKey{}, schema.WrapError("make property key", err)
	}
	return *created, nil
}

// EnsurePropertyKeyForOwner ensures the key and associates it with owner
// unless it already is.
func EnsurePropertyKeyForOwner(ctx context.Context, sess schemastore.Session, owner Owner, req PropertyKeyRequest) (schema.PropertyKey, error) {
	key, err := EnsurePropertyKey(ctx, sess, req)
	if err != nil {
		return schema.PropertyKey{}, err
	}

	current, err := sess.AssociatedProperties(ctx, owner.Kind, owner.ID)
	if err != nil {
		return schema.PropertyKey{}, schema.WrapError("associated properties", err)
	}
	for _, k := range current {
		if k.ID == key.ID {
			return key, nil
		}
	}

	if err := sess.AddProperty(ctx, owner.Kind, owner.ID, key.ID); err != nil {
		return schema.PropertyKey{}, schema.WrapError("add property", err)
	}
	return key, nil
}

// ResolveOwner finds a label by name, trying vertex labels before edge labels
func ResolveOwner(ctx context.Context, sess schemastore.Session, name string) (Owner, error) {
	if name == "" {
		return Owner{}, schema.NewInvalidArgumentError("resolve_owner", "label name is required")
	}

	vl, err := sess.GetVertexLabel(ctx, schema.ByName(name))
	if err != nil {
		return Owner{}, schema.WrapError("get vertex label", err)
	}
	if vl != nil {
		return Owner{Kind: schema.ElementVertex, ID: vl.ID, Name: vl.Name}, nil
	}

	el, err := sess.GetEdgeLabel(ctx, schema.ByName(name))
	if err != nil {
		return Owner{}, schema.WrapError("get edge label", err)
	}
	if el != nil {
		return Owner{Kind: schema.ElementEdge, ID: el.ID, Name: el.Name}, nil
	}

	return Owner{}, schema.NewNotFoundError("resolve_owner", "label", name)
}
