// Package graphschemav1 holds the wire messages and gRPC service descriptors
// of the graphschema management API. Messages travel as JSON using the codec
// registered in codec.go.
package graphschemav1

// PropertyKey is a named, typed property
type PropertyKey struct {
	Id          *int64 `json:"id,omitempty"`
	Name        string `json:"name"`
	DataType    string `json:"dataType,omitempty"`
	Cardinality string `json:"cardinality,omitempty"`
}

// VertexLabel is a vertex label with its associated property keys
type VertexLabel struct {
	Id          *int64         `json:"id,omitempty"`
	Name        string         `json:"name"`
	Properties  []*PropertyKey `json:"properties,omitempty"`
	ReadOnly    bool           `json:"readOnly,omitempty"`
	Partitioned bool           `json:"partitioned,omitempty"`
}

// EdgeLabel is an edge label with its associated property keys. A missing
// Directed means directed.
type EdgeLabel struct {
	Id           *int64         `json:"id,omitempty"`
	Name         string         `json:"name"`
	Properties   []*PropertyKey `json:"properties,omitempty"`
	Multiplicity string         `json:"multiplicity,omitempty"`
	Directed     *bool          `json:"directed,omitempty"`
}

// CompositeIndex is an exact-match index. Label is a label name or "ALL".
type CompositeIndex struct {
	Id         *int64         `json:"id,omitempty"`
	Name       string         `json:"name"`
	Label      string         `json:"label,omitempty"`
	Properties []*PropertyKey `json:"properties"`
	Unique     bool           `json:"unique,omitempty"`
	Status     string         `json:"status,omitempty"`
}

// MixedIndex is an index delegated to an external search backend
type MixedIndex struct {
	Id         *int64         `json:"id,omitempty"`
	Name       string         `json:"name"`
	Label      string         `json:"label,omitempty"`
	Properties []*PropertyKey `json:"properties"`
	Backend    string         `json:"backend"`
	Status     string         `json:"status,omitempty"`
}

// IndexReadiness is one poll of an index's backfill progress
type IndexReadiness struct {
	Name      string            `json:"name"`
	Ready     bool              `json:"ready"`
	Status    string            `json:"status"`
	KeyStatus map[string]string `json:"keyStatus,omitempty"`
}

type EnsurePropertyKeyRequest struct {
	Context     string       `json:"context"`
	PropertyKey *PropertyKey `json:"propertyKey"`
}

// EnsurePropertyKeyForLabelRequest associates a key with the vertex label of
// that name, or the edge label when no vertex label matches.
type EnsurePropertyKeyForLabelRequest struct {
	Context     string       `json:"context"`
	Label       string       `json:"label"`
	PropertyKey *PropertyKey `json:"propertyKey"`
}

type GetPropertyKeysRequest struct {
	Context string `json:"context"`
}

type GetPropertyKeyByNameRequest struct {
	Context string `json:"context"`
	Name    string `json:"name"`
}

type EnsureVertexLabelRequest struct {
	Context string       `json:"context"`
	Label   *VertexLabel `json:"label"`
}

type GetVertexLabelsRequest struct {
	Context string `json:"context"`
}

type GetVertexLabelsByNameRequest struct {
	Context string `json:"context"`
	Name    string `json:"name"`
}

type EnsureEdgeLabelRequest struct {
	Context string     `json:"context"`
	Label   *EdgeLabel `json:"label"`
}

type GetEdgeLabelsRequest struct {
	Context string `json:"context"`
}

type GetEdgeLabelsByNameRequest struct {
	Context string `json:"context"`
	Name    string `json:"name"`
}

type EnsureCompositeIndexRequest struct {
	Context string          `json:"context"`
	Index   *CompositeIndex `json:"index"`
}

type EnsureMixedIndexRequest struct {
	Context string      `json:"context"`
	Index   *MixedIndex `json:"index"`
}

// GetIndicesRequest lists indices constrained to Label, or all when empty
type GetIndicesRequest struct {
	Context string `json:"context"`
	Label   string `json:"label,omitempty"`
}

type GetIndexByNameRequest struct {
	Context string `json:"context"`
	Name    string `json:"name"`
}

type GetIndexReadinessRequest struct {
	Context string `json:"context"`
	Name    string `json:"name"`
}

// EnableCompositeIndexRequest enables a REGISTERED index. With Wait set the
// server first waits for backfill, bounded by the call deadline and by
// TimeoutSeconds when positive.
type EnableCompositeIndexRequest struct {
	Context        string `json:"context"`
	Name           string `json:"name"`
	Wait           bool   `json:"wait,omitempty"`
	TimeoutSeconds int32  `json:"timeoutSeconds,omitempty"`
}
