package engine

import (
	"strings"

	graphschemav1 "github.com/redbco/graphschema/api/graphschema/v1"
	"github.com/redbco/graphschema/internal/lifecycle"
	"github.com/redbco/graphschema/internal/reconcile"
	"github.com/redbco/graphschema/pkg/schema"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func propertyKeyRequest(pk *graphschemav1.PropertyKey) (reconcile.PropertyKeyRequest, error) {
	if pk == nil {
		return reconcile.PropertyKeyRequest{}, schema.NewInvalidArgumentError("decode", "property key is required")
	}
	dt, err := schema.ParseDataType(pk.DataType)
	if err != nil {
		return reconcile.PropertyKeyRequest{}, err
	}
	card, err := schema.ParseCardinality(pk.Cardinality)
	if err != nil {
		return reconcile.PropertyKeyRequest{}, err
	}
	return reconcile.PropertyKeyRequest{Name: pk.Name, DataType: dt, Cardinality: card}, nil
}

func propertyKeyRequests(pks []*graphschemav1.PropertyKey) ([]reconcile.PropertyKeyRequest, error) {
	out := make([]reconcile.PropertyKeyRequest, 0, len(pks))
	for _, pk := range pks {
		req, err := propertyKeyRequest(pk)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, nil
}

func vertexLabelRequest(l *graphschemav1.VertexLabel) (reconcile.VertexLabelRequest, error) {
	if l == nil {
		return reconcile.VertexLabelRequest{}, schema.NewInvalidArgumentError("decode", "vertex label is required")
	}
	props, err := propertyKeyRequests(l.Properties)
	if err != nil {
		return reconcile.VertexLabelRequest{}, err
	}
	return reconcile.VertexLabelRequest{
		ID:          l.Id,
		Name:        l.Name,
		ReadOnly:    l.ReadOnly,
		Partitioned: l.Partitioned,
		Properties:  props,
	}, nil
}

func edgeLabelRequest(l *graphschemav1.EdgeLabel) (reconcile.EdgeLabelRequest, error) {
	if l == nil {
		return reconcile.EdgeLabelRequest{}, schema.NewInvalidArgumentError("decode", "edge label is required")
	}
	props, err := propertyKeyRequests(l.Properties)
	if err != nil {
		return reconcile.EdgeLabelRequest{}, err
	}
	mult, err := schema.ParseMultiplicity(l.Multiplicity)
	if err != nil {
		return reconcile.EdgeLabelRequest{}, err
	}
	return reconcile.EdgeLabelRequest{
		ID:           l.Id,
		Name:         l.Name,
		Multiplicity: mult,
		Directed:     l.Directed,
		Properties:   props,
	}, nil
}

// indexKeys takes the key names of an index message in order
func indexKeys(pks []*graphschemav1.PropertyKey) ([]string, error) {
	keys := make([]string, 0, len(pks))
	for _, pk := range pks {
		if pk == nil {
			return nil, schema.NewInvalidArgumentError("decode", "index property key is required")
		}
		keys = append(keys, pk.Name)
	}
	return keys, nil
}

func compositeIndexRequest(kind schema.ElementKind, idx *graphschemav1.CompositeIndex) (lifecycle.IndexRequest, error) {
	if idx == nil {
		return lifecycle.IndexRequest{}, schema.NewInvalidArgumentError("decode", "index is required")
	}
	keys, err := indexKeys(idx.Properties)
	if err != nil {
		return lifecycle.IndexRequest{}, err
	}
	return lifecycle.IndexRequest{
		Name:    idx.Name,
		Element: kind,
		Keys:    keys,
		Label:   idx.Label,
		Unique:  idx.Unique,
	}, nil
}

func mixedIndexRequest(kind schema.ElementKind, idx *graphschemav1.MixedIndex) (lifecycle.IndexRequest, error) {
	if idx == nil {
		return lifecycle.IndexRequest{}, schema.NewInvalidArgumentError("decode", "index is required")
	}
	keys, err := indexKeys(idx.Properties)
	if err != nil {
		return lifecycle.IndexRequest{}, err
	}
	return lifecycle.IndexRequest{
		Name:    idx.Name,
		Element: kind,
		Keys:    keys,
		Label:   idx.Label,
		Backend: idx.Backend,
	}, nil
}

// indexLabel turns the optional label filter of a list request into the
// filter understood by the lifecycle package.
func indexLabel(label string) string {
	if strings.EqualFold(label, schema.AllLabels) {
		return schema.AllLabels
	}
	return label
}

func toPropertyKey(k schema.PropertyKey) *graphschemav1.PropertyKey {
	return &graphschemav1.PropertyKey{
		Id:          int64Ptr(k.ID),
		Name:        k.Name,
		DataType:    string(k.DataType),
		Cardinality: string(k.Cardinality),
	}
}

func toPropertyKeys(keys []schema.PropertyKey) []*graphschemav1.PropertyKey {
	out := make([]*graphschemav1.PropertyKey, 0, len(keys))
	for _, k := range keys {
		out = append(out, toPropertyKey(k))
	}
	return out
}

func toVertexLabel(l schema.VertexLabel) *graphschemav1.VertexLabel {
	return &graphschemav1.VertexLabel{
		Id:          int64Ptr(l.ID),
		Name:        l.Name,
		Properties:  toPropertyKeys(l.Properties),
		ReadOnly:    l.ReadOnly,
		Partitioned: l.Partitioned,
	}
}

func toEdgeLabel(l schema.EdgeLabel) *graphschemav1.EdgeLabel {
	directed := l.Directed
	return &graphschemav1.EdgeLabel{
		Id:           int64Ptr(l.ID),
		Name:         l.Name,
		Properties:   toPropertyKeys(l.Properties),
		Multiplicity: string(l.Multiplicity),
		Directed:     &directed,
	}
}

func toCompositeIndex(idx schema.Index) *graphschemav1.CompositeIndex {
	return &graphschemav1.CompositeIndex{
		Id:         int64Ptr(idx.ID),
		Name:       idx.Name,
		Label:      idx.Label(),
		Properties: toPropertyKeys(idx.Keys),
		Unique:     idx.Unique,
		Status:     string(idx.Status),
	}
}

func toMixedIndex(idx schema.Index) *graphschemav1.MixedIndex {
	return &graphschemav1.MixedIndex{
		Id:         int64Ptr(idx.ID),
		Name:       idx.Name,
		Label:      idx.Label(),
		Properties: toPropertyKeys(idx.Keys),
		Backend:    idx.Backend,
		Status:     string(idx.Status),
	}
}

func toIndexReadiness(rd schema.Readiness) *graphschemav1.IndexReadiness {
	keys := make(map[string]string, len(rd.KeyStatus))
	for k, st := range rd.KeyStatus {
		keys[k] = string(st)
	}
	return &graphschemav1.IndexReadiness{
		Name:      rd.Index,
		Ready:     rd.Ready(),
		Status:    string(rd.Status()),
		KeyStatus: keys,
	}
}
