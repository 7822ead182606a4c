package neo4j

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/redbco/graphschema/pkg/schema"
	"github.com/redbco/graphschema/pkg/schemastore"
)

// Session is a management session backed by one explicit transaction
type Session struct {
	graph   string
	session neo4j.SessionWithContext
	tx      neo4j.ExplicitTransaction
}

var _ schemastore.Session = (*Session)(nil)

func (s *Session) run(ctx context.Context, op, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	params["graph"] = s.graph
	res, err := s.tx.Run(ctx, cypher, params)
	if err != nil {
		return nil, mapError(op, err)
	}
	recs, err := res.Collect(ctx)
	if err != nil {
		return nil, mapError(op, err)
	}
	return recs, nil
}

// nextID allocates an id from the graph's sequence node. The node stays
// locked until the session ends.
func (s *Session) nextID(ctx context.Context) (int64, error) {
	recs, err := s.run(ctx, "next_id", nextIDCypher, map[string]any{})
	if err != nil {
		return 0, err
	}
	if len(recs) == 0 {
		return 0, schema.WrapError("next_id", errNoSequence)
	}
	id, _, err := neo4j.GetRecordValue[int64](recs[0], "id")
	if err != nil {
		return 0, schema.WrapError("next_id", err)
	}
	return id, nil
}

func (s *Session) GetPropertyKey(ctx context.Context, name string) (*schema.PropertyKey, error) {
	recs, err := s.run(ctx, "get_property_key", getKeyCypher, map[string]any{"name": name})
	if err != nil || len(recs) == 0 {
		return nil, err
	}
	k, err := decodeKey(recs[0])
	if err != nil {
		return nil, schema.WrapError("get_property_key", err)
	}
	return &k, nil
}

func (s *Session) MakePropertyKey(ctx context.Context, key schema.PropertyKey) (*schema.PropertyKey, error) {
	id, err := s.nextID(ctx)
	if err != nil {
		return nil, err
	}
	key.ID = id
	_, err = s.run(ctx, "make_property_key", createKeyCypher, map[string]any{
		"id":          key.ID,
		"name":        key.Name,
		"dataType":    string(key.DataType),
		"cardinality": string(key.Cardinality),
	})
	if isConstraintViolation(err) {
		return nil, schema.NewConflictError("make_property_key", "property key", key.Name, err)
	}
	if err != nil {
		return nil, err
	}
	return &key, nil
}

func (s *Session) ListPropertyKeys(ctx context.Context) ([]schema.PropertyKey, error) {
	recs, err := s.run(ctx, "list_property_keys", listKeysCypher, map[string]any{})
	if err != nil {
		return nil, err
	}
	keys := make([]schema.PropertyKey, 0, len(recs))
	for _, rec := range recs {
		k, err := decodeKey(rec)
		if err != nil {
			return nil, schema.WrapError("list_property_keys", err)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func (s *Session) getLabel(ctx context.Context, kind schema.ElementKind, ref schema.LabelRef) (*labelRecord, error) {
	cypher := getLabelByNameCypher
	params := map[string]any{"kind": string(kind)}
	if id, ok := ref.ID(); ok {
		cypher = getLabelByIDCypher
		params["id"] = id
	} else {
		params["name"], _ = ref.Name()
	}

	recs, err := s.run(ctx, "get_label", cypher, params)
	if err != nil || len(recs) == 0 {
		return nil, err
	}
	l, err := decodeLabel(recs[0])
	if err != nil {
		return nil, schema.WrapError("get_label", err)
	}
	return &l, nil
}

func (s *Session) listLabels(ctx context.Context, kind schema.ElementKind) ([]labelRecord, error) {
	recs, err := s.run(ctx, "list_labels", listLabelsCypher, map[string]any{"kind": string(kind)})
	if err != nil {
		return nil, err
	}
	out := make([]labelRecord, 0, len(recs))
	for _, rec := range recs {
		l, err := decodeLabel(rec)
		if err != nil {
			return nil, schema.WrapError("list_labels", err)
		}
		out = append(out, l)
	}
	return out, nil
}

func (s *Session) makeLabel(ctx context.Context, kind schema.ElementKind, name string, params map[string]any) (int64, error) {
	id, err := s.nextID(ctx)
	if err != nil {
		return 0, err
	}
	params["kind"] = string(kind)
	params["id"] = id
	params["name"] = name

	_, err = s.run(ctx, "make_label", createLabelCypher, params)
	if isConstraintViolation(err) {
		return 0, schema.NewConflictError("make_label", string(kind)+" label", name, err)
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Session) GetVertexLabel(ctx context.Context, ref schema.LabelRef) (*schema.VertexLabel, error) {
	l, err := s.getLabel(ctx, schema.ElementVertex, ref)
	if err != nil || l == nil {
		return nil, err
	}
	vl := l.vertexLabel()
	return &vl, nil
}

func (s *Session) MakeVertexLabel(ctx context.Context, name string, flags schema.VertexLabelFlags) (*schema.VertexLabel, error) {
	id, err := s.makeLabel(ctx, schema.ElementVertex, name, map[string]any{
		"readOnly":     flags.ReadOnly,
		"partitioned":  flags.Partitioned,
		"multiplicity": "",
		"directed":     true,
	})
	if err != nil {
		return nil, err
	}
	return &schema.VertexLabel{ID: id, Name: name, Properties: []schema.PropertyKey{}, VertexLabelFlags: flags}, nil
}

func (s *Session) ListVertexLabels(ctx context.Context) ([]schema.VertexLabel, error) {
	labels, err := s.listLabels(ctx, schema.ElementVertex)
	if err != nil {
		return nil, err
	}
	out := make([]schema.VertexLabel, 0, len(labels))
	for _, l := range labels {
		out = append(out, l.vertexLabel())
	}
	return out, nil
}

func (s *Session) GetEdgeLabel(ctx context.Context, ref schema.LabelRef) (*schema.EdgeLabel, error) {
	l, err := s.getLabel(ctx, schema.ElementEdge, ref)
	if err != nil || l == nil {
		return nil, err
	}
	el := l.edgeLabel()
	return &el, nil
}

func (s *Session) MakeEdgeLabel(ctx context.Context, name string, flags schema.EdgeLabelFlags) (*schema.EdgeLabel, error) {
	id, err := s.makeLabel(ctx, schema.ElementEdge, name, map[string]any{
		"readOnly":     false,
		"partitioned":  false,
		"multiplicity": string(flags.Multiplicity),
		"directed":     flags.Directed,
	})
	if err != nil {
		return nil, err
	}
	return &schema.EdgeLabel{ID: id, Name: name, Properties: []schema.PropertyKey{}, EdgeLabelFlags: flags}, nil
}

func (s *Session) ListEdgeLabels(ctx context.Context) ([]schema.EdgeLabel, error) {
	labels, err := s.listLabels(ctx, schema.ElementEdge)
	if err != nil {
		return nil, err
	}
	out := make([]schema.EdgeLabel, 0, len(labels))
	for _, l := range labels {
		out = append(out, l.edgeLabel())
	}
	return out, nil
}

func (s *Session) ChangeName(ctx context.Context, kind schema.ElementKind, labelID int64, newName string) error {
	recs, err := s.run(ctx, "change_name", renameLabelCypher, map[string]any{
		"kind": string(kind),
		"id":   labelID,
		"name": newName,
	})
	if isConstraintViolation(err) {
		return schema.NewConflictError("change_name", string(kind)+" label", newName, err)
	}
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return schema.NewNotFoundError("change_name", string(kind)+" label", schema.ByID(labelID).String())
	}
	return nil
}

func (s *Session) exists(ctx context.Context, kind string, id int64) (bool, error) {
	recs, err := s.run(ctx, "element_exists", elementExistsCypher, map[string]any{"kind": kind, "id": id})
	if err != nil || len(recs) == 0 {
		return false, err
	}
	found, _, err := neo4j.GetRecordValue[bool](recs[0], "found")
	if err != nil {
		return false, schema.WrapError("element_exists", err)
	}
	return found, nil
}

func (s *Session) AddProperty(ctx context.Context, kind schema.ElementKind, labelID int64, keyID int64) error {
	ok, err := s.exists(ctx, string(kind), labelID)
	if err != nil {
		return err
	}
	if !ok {
		return schema.NewNotFoundError("add_property", string(kind)+" label", schema.ByID(labelID).String())
	}
	if ok, err = s.exists(ctx, "key", keyID); err != nil {
		return err
	}
	if !ok {
		return schema.NewNotFoundError("add_property", "property key", schema.ByID(keyID).String())
	}

	seq, err := s.nextID(ctx)
	if err != nil {
		return err
	}
	_, err = s.run(ctx, "add_property", addPropertyCypher, map[string]any{
		"kind":    string(kind),
		"labelId": labelID,
		"keyId":   keyID,
		"seq":     seq,
	})
	return err
}

func (s *Session) AssociatedProperties(ctx context.Context, kind schema.ElementKind, labelID int64) ([]schema.PropertyKey, error) {
	l, err := s.getLabel(ctx, kind, schema.ByID(labelID))
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, schema.NewNotFoundError("associated_properties", string(kind)+" label", schema.ByID(labelID).String())
	}
	return l.keys, nil
}

func (s *Session) BuildIndex(ctx context.Context, def schema.IndexDefinition) (*schema.Index, error) {
	const op = "build_index"

	idx := schema.Index{
		Name:    def.Name,
		Element: def.Element,
		Type:    def.Type,
		Keys:    make([]schema.PropertyKey, 0, len(def.Keys)),
		Unique:  def.Unique,
		Backend: def.Backend,
		Status:  schema.StatusInstalled,
	}
	if def.ConstraintID != 0 {
		l, err := s.getLabel(ctx, def.Element, schema.ByID(def.ConstraintID))
		if err != nil {
			return nil, err
		}
		if l == nil {
			return nil, schema.NewNotFoundError(op, string(def.Element)+" label", schema.ByID(def.ConstraintID).String())
		}
		idx.ConstraintID = l.id
		idx.Constraint = l.name
	}
	// Mixed indices are handed to their external backend as soon as they exist.
	if def.Type == schema.IndexMixed {
		idx.Status = schema.StatusEnabled
	}

	keyParams := make([]any, 0, len(def.Keys))
	for pos, name := range def.Keys {
		k, err := s.GetPropertyKey(ctx, name)
		if err != nil {
			return nil, err
		}
		if k == nil {
			return nil, schema.NewNotFoundError(op, "property key", name)
		}
		idx.Keys = append(idx.Keys, *k)
		keyParams = append(keyParams, map[string]any{"id": k.ID, "position": int64(pos)})
	}

	id, err := s.nextID(ctx)
	if err != nil {
		return nil, err
	}
	idx.ID = id

	_, err = s.run(ctx, op, createIndexCypher, map[string]any{
		"id":           idx.ID,
		"name":         idx.Name,
		"element":      string(idx.Element),
		"type":         string(idx.Type),
		"constraintId": idx.ConstraintID,
		"unique":       idx.Unique,
		"backend":      idx.Backend,
		"keys":         keyParams,
		"status":       string(idx.Status),
	})
	if isConstraintViolation(err) {
		return nil, schema.NewConflictError(op, "index", def.Name, err)
	}
	if err != nil {
		return nil, err
	}
	return &idx, nil
}

func (s *Session) getIndex(ctx context.Context, name string) (*schema.Index, []indexKey, error) {
	recs, err := s.run(ctx, "get_index", getIndexCypher, map[string]any{"name": name})
	if err != nil || len(recs) == 0 {
		return nil, nil, err
	}
	idx, keys, err := decodeIndex(recs[0])
	if err != nil {
		return nil, nil, schema.WrapError("get_index", err)
	}
	return &idx, keys, nil
}

func (s *Session) GetIndex(ctx context.Context, name string) (*schema.Index, error) {
	idx, _, err := s.getIndex(ctx, name)
	return idx, err
}

func (s *Session) ListIndices(ctx context.Context, kind schema.ElementKind) ([]schema.Index, error) {
	recs, err := s.run(ctx, "list_indices", listIndicesCypher, map[string]any{"element": string(kind)})
	if err != nil {
		return nil, err
	}
	out := make([]schema.Index, 0, len(recs))
	for _, rec := range recs {
		idx, _, err := decodeIndex(rec)
		if err != nil {
			return nil, schema.WrapError("list_indices", err)
		}
		out = append(out, idx)
	}
	return out, nil
}

func (s *Session) IndexStatus(ctx context.Context, indexName, keyName string) (schema.SchemaStatus, error) {
	idx, keys, err := s.getIndex(ctx, indexName)
	if err != nil {
		return "", err
	}
	if idx == nil {
		return "", schema.NewNotFoundError("index_status", "index", indexName)
	}
	for _, k := range keys {
		if k.key.Name == keyName {
			return k.status, nil
		}
	}
	return "", schema.NewNotFoundError("index_status", "index key", indexName+"."+keyName)
}

func (s *Session) UpdateIndex(ctx context.Context, indexName string, action schema.SchemaAction) error {
	if action != schema.ActionEnableIndex {
		return schema.NewInvalidArgumentError("update_index", "unsupported schema action "+string(action))
	}
	idx, keys, err := s.getIndex(ctx, indexName)
	if err != nil {
		return err
	}
	if idx == nil {
		return schema.NewNotFoundError("update_index", "index", indexName)
	}
	for _, k := range keys {
		if k.status != schema.StatusRegistered && k.status != schema.StatusEnabled {
			return schema.NewIllegalStateError("update_index", indexName, "cannot enable an index in status "+string(k.status))
		}
	}

	_, err = s.run(ctx, "update_index", setIndexStatusCypher, map[string]any{
		"name": indexName,
		"from": []any{string(schema.StatusRegistered)},
		"to":   string(schema.StatusEnabled),
	})
	return err
}

func (s *Session) Commit(ctx context.Context) error {
	defer s.session.Close(ctx)
	err := s.tx.Commit(ctx)
	if isConstraintViolation(err) {
		return schema.NewConflictError("commit", "", "", err)
	}
	return mapError("commit", err)
}

// Rollback is a no-op on a finished session
func (s *Session) Rollback(ctx context.Context) error {
	defer s.session.Close(ctx)
	// Rolling back a committed transaction is a driver usage error
	_ = s.tx.Rollback(ctx)
	return nil
}
