package memory

import (
	"context"
	"errors"
	"sort"

	"github.com/redbco/graphschema/pkg/schema"
	"github.com/redbco/graphschema/pkg/schemastore"
)

var errSessionClosed = errors.New("management session already closed")

// Session is a snapshot of the committed catalog plus the journal of
// mutations applied to it.
type Session struct {
	graph   *Graph
	view    *catalog
	journal []func(*catalog) error
	closed  bool
}

var _ schemastore.Session = (*Session)(nil)

func (s *Session) apply(op func(*catalog) error) error {
	if s.closed {
		return errSessionClosed
	}
	if err := op(s.view); err != nil {
		return err
	}
	s.journal = append(s.journal, op)
	return nil
}

func (s *Session) check() error {
	if s.closed {
		return errSessionClosed
	}
	return nil
}

func (s *Session) GetPropertyKey(ctx context.Context, name string) (*schema.PropertyKey, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	k, ok := s.view.keys[name]
	if !ok {
		return nil, nil
	}
	return &k, nil
}

func (s *Session) MakePropertyKey(ctx context.Context, key schema.PropertyKey) (*schema.PropertyKey, error) {
	key.ID = s.graph.nextID()
	if err := s.apply(makeKeyOp(key)); err != nil {
		return nil, err
	}
	return &key, nil
}

func (s *Session) ListPropertyKeys(ctx context.Context) ([]schema.PropertyKey, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	keys := make([]schema.PropertyKey, 0, len(s.view.keys))
	for _, k := range s.view.keys {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].ID < keys[j].ID })
	return keys, nil
}

func (s *Session) GetVertexLabel(ctx context.Context, ref schema.LabelRef) (*schema.VertexLabel, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	l := s.view.lookupLabel(schema.ElementVertex, ref)
	if l == nil {
		return nil, nil
	}
	vl := s.view.vertexLabel(l)
	return &vl, nil
}

func (s *Session) MakeVertexLabel(ctx context.Context, name string, flags schema.VertexLabelFlags) (*schema.VertexLabel, error) {
	rec := labelRecord{id: s.graph.nextID(), name: name, vflags: flags}
	if err := s.apply(makeLabelOp(schema.ElementVertex, rec)); err != nil {
		return nil, err
	}
	return &schema.VertexLabel{ID: rec.id, Name: name, Properties: []schema.PropertyKey{}, VertexLabelFlags: flags}, nil
}

func (s *Session) ListVertexLabels(ctx context.Context) ([]schema.VertexLabel, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	labels := s.view.sortedLabels(schema.ElementVertex)
	out := make([]schema.VertexLabel, 0, len(labels))
	for _, l := range labels {
		out = append(out, s.view.vertexLabel(l))
	}
	return out, nil
}

func (s *Session) GetEdgeLabel(ctx context.Context, ref schema.LabelRef) (*schema.EdgeLabel, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	l := s.view.lookupLabel(schema.ElementEdge, ref)
	if l == nil {
		return nil, nil
	}
	el := s.view.edgeLabel(l)
	return &el, nil
}

func (s *Session) MakeEdgeLabel(ctx context.Context, name string, flags schema.EdgeLabelFlags) (*schema.EdgeLabel, error) {
	rec := labelRecord{id: s.graph.nextID(), name: name, eflags: flags}
	if err := s.apply(makeLabelOp(schema.ElementEdge, rec)); err != nil {
		return nil, err
	}
	return &schema.EdgeLabel{ID: rec.id, Name: name, Properties: []schema.PropertyKey{}, EdgeLabelFlags: flags}, nil
}

func (s *Session) ListEdgeLabels(ctx context.Context) ([]schema.EdgeLabel, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	labels := s.view.sortedLabels(schema.ElementEdge)
	out := make([]schema.EdgeLabel, 0, len(labels))
	for _, l := range labels {
		out = append(out, s.view.edgeLabel(l))
	}
	return out, nil
}

func (s *Session) ChangeName(ctx context.Context, kind schema.ElementKind, labelID int64, newName string) error {
	return s.apply(changeNameOp(kind, labelID, newName))
}

func (s *Session) AddProperty(ctx context.Context, kind schema.ElementKind, labelID int64, keyID int64) error {
	return s.apply(addPropertyOp(kind, labelID, keyID))
}

func (s *Session) AssociatedProperties(ctx context.Context, kind schema.ElementKind, labelID int64) ([]schema.PropertyKey, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	l, ok := s.view.labels[kind][labelID]
	if !ok {
		return nil, schema.NewNotFoundError("associated_properties", string(kind)+" label", schema.ByID(labelID).String())
	}
	return s.view.properties(l), nil
}

func (s *Session) BuildIndex(ctx context.Context, def schema.IndexDefinition) (*schema.Index, error) {
	idx := schema.Index{
		ID:           s.graph.nextID(),
		Name:         def.Name,
		Element:      def.Element,
		Type:         def.Type,
		ConstraintID: def.ConstraintID,
		Constraint:   def.Constraint,
		Unique:       def.Unique,
		Backend:      def.Backend,
	}
	for _, name := range def.Keys {
		idx.Keys = append(idx.Keys, schema.PropertyKey{Name: name})
	}

	// Mixed indices are handed to their external backend as soon as they exist.
	initial := schema.StatusInstalled
	if def.Type == schema.IndexMixed {
		initial = schema.StatusEnabled
	}
	if err := s.apply(buildIndexOp(idx, initial)); err != nil {
		return nil, err
	}
	built := s.view.index(s.view.indices[def.Name])
	return &built, nil
}

func (s *Session) GetIndex(ctx context.Context, name string) (*schema.Index, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	rec, ok := s.view.indices[name]
	if !ok {
		return nil, nil
	}
	idx := s.view.index(rec)
	return &idx, nil
}

func (s *Session) ListIndices(ctx context.Context, kind schema.ElementKind) ([]schema.Index, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	out := make([]schema.Index, 0)
	for _, rec := range s.view.indices {
		if rec.index.Element == kind {
			out = append(out, s.view.index(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Session) IndexStatus(ctx context.Context, indexName, keyName string) (schema.SchemaStatus, error) {
	if err := s.check(); err != nil {
		return "", err
	}
	rec, ok := s.view.indices[indexName]
	if !ok {
		return "", schema.NewNotFoundError("index_status", "index", indexName)
	}
	st, ok := rec.status[keyName]
	if !ok {
		return "", schema.NewNotFoundError("index_status", "index key", indexName+"."+keyName)
	}
	return st, nil
}

func (s *Session) UpdateIndex(ctx context.Context, indexName string, action schema.SchemaAction) error {
	if action != schema.ActionEnableIndex {
		return schema.NewInvalidArgumentError("update_index", "unsupported schema action "+string(action))
	}
	return s.apply(enableIndexOp(indexName))
}

// Commit replays the journal against the committed catalog. Nothing is
// published unless every entry applies.
func (s *Session) Commit(ctx context.Context) error {
	if s.closed {
		return errSessionClosed
	}
	s.closed = true
	if len(s.journal) == 0 {
		return nil
	}
	return s.graph.commit(s.journal)
}

// Rollback discards the session. It is a no-op on a finished session.
func (s *Session) Rollback(ctx context.Context) error {
	s.closed = true
	s.journal = nil
	return nil
}
