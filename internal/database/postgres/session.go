package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/redbco/graphschema/pkg/schema"
	"github.com/redbco/graphschema/pkg/schemastore"
)

// Session is a management session backed by one database transaction
type Session struct {
	graph string
	tx    pgx.Tx
}

var _ schemastore.Session = (*Session)(nil)

type labelRow struct {
	id           int64
	name         string
	readOnly     bool
	partitioned  bool
	multiplicity string
	directed     bool
}

func labelKind(kind schema.ElementKind) string {
	if kind == schema.ElementEdge {
		return kindEdge
	}
	return kindVertex
}

func scanKey(row pgx.Row) (schema.PropertyKey, error) {
	var k schema.PropertyKey
	var dataType, cardinality string
	if err := row.Scan(&k.ID, &k.Name, &dataType, &cardinality); err != nil {
		return k, err
	}
	k.DataType = schema.DataType(dataType)
	k.Cardinality = schema.Cardinality(cardinality)
	return k, nil
}

func scanLabel(row pgx.Row) (labelRow, error) {
	var l labelRow
	err := row.Scan(&l.id, &l.name, &l.readOnly, &l.partitioned, &l.multiplicity, &l.directed)
	return l, err
}

func (s *Session) GetPropertyKey(ctx context.Context, name string) (*schema.PropertyKey, error) {
	k, err := scanKey(s.tx.QueryRow(ctx, getKeySQL, s.graph, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("get_property_key", err)
	}
	return &k, nil
}

func (s *Session) MakePropertyKey(ctx context.Context, key schema.PropertyKey) (*schema.PropertyKey, error) {
	err := s.tx.QueryRow(ctx, insertKeySQL, s.graph, key.Name, string(key.DataType), string(key.Cardinality)).Scan(&key.ID)
	if isUniqueViolation(err) {
		return nil, schema.NewConflictError("make_property_key", "property key", key.Name, err)
	}
	if err != nil {
		return nil, mapError("make_property_key", err)
	}
	return &key, nil
}

func (s *Session) ListPropertyKeys(ctx context.Context) ([]schema.PropertyKey, error) {
	rows, err := s.tx.Query(ctx, listKeysSQL, s.graph)
	if err != nil {
		return nil, mapError("list_property_keys", err)
	}
	defer rows.Close()

	keys := make([]schema.PropertyKey, 0)
	for rows.Next() {
		k, err := scanKey(rows)
		if err != nil {
			return nil, mapError("list_property_keys", err)
		}
		keys = append(keys, k)
	}
	return keys, mapError("list_property_keys", rows.Err())
}

func (s *Session) getLabel(ctx context.Context, kind schema.ElementKind, ref schema.LabelRef) (*labelRow, error) {
	var row pgx.Row
	if id, ok := ref.ID(); ok {
		row = s.tx.QueryRow(ctx, getLabelByIDSQL, s.graph, labelKind(kind), id)
	} else {
		name, _ := ref.Name()
		row = s.tx.QueryRow(ctx, getLabelByNameSQL, s.graph, labelKind(kind), name)
	}
	l, err := scanLabel(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("get_label", err)
	}
	return &l, nil
}

func (s *Session) listLabels(ctx context.Context, kind schema.ElementKind) ([]labelRow, error) {
	rows, err := s.tx.Query(ctx, listLabelsSQL, s.graph, labelKind(kind))
	if err != nil {
		return nil, mapError("list_labels", err)
	}
	defer rows.Close()

	var out []labelRow
	for rows.Next() {
		l, err := scanLabel(rows)
		if err != nil {
			return nil, mapError("list_labels", err)
		}
		out = append(out, l)
	}
	return out, mapError("list_labels", rows.Err())
}

// properties loads the associated keys of several labels in one query, in
// the order they were associated.
func (s *Session) properties(ctx context.Context, labelIDs []int64) (map[int64][]schema.PropertyKey, error) {
	out := make(map[int64][]schema.PropertyKey, len(labelIDs))
	for _, id := range labelIDs {
		out[id] = []schema.PropertyKey{}
	}
	if len(labelIDs) == 0 {
		return out, nil
	}

	rows, err := s.tx.Query(ctx, labelPropertiesSQL, s.graph, labelIDs)
	if err != nil {
		return nil, mapError("label_properties", err)
	}
	defer rows.Close()

	for rows.Next() {
		var labelID int64
		var k schema.PropertyKey
		var dataType, cardinality string
		if err := rows.Scan(&labelID, &k.ID, &k.Name, &dataType, &cardinality); err != nil {
			return nil, mapError("label_properties", err)
		}
		k.DataType = schema.DataType(dataType)
		k.Cardinality = schema.Cardinality(cardinality)
		out[labelID] = append(out[labelID], k)
	}
	return out, mapError("label_properties", rows.Err())
}

func labelIDs(labels []labelRow) []int64 {
	ids := make([]int64, 0, len(labels))
	for _, l := range labels {
		ids = append(ids, l.id)
	}
	return ids
}

func (l labelRow) vertexLabel(props []schema.PropertyKey) schema.VertexLabel {
	return schema.VertexLabel{
		ID:               l.id,
		Name:             l.name,
		Properties:       props,
		VertexLabelFlags: schema.VertexLabelFlags{ReadOnly: l.readOnly, Partitioned: l.partitioned},
	}
}

func (l labelRow) edgeLabel(props []schema.PropertyKey) schema.EdgeLabel {
	return schema.EdgeLabel{
		ID:             l.id,
		Name:           l.name,
		Properties:     props,
		EdgeLabelFlags: schema.EdgeLabelFlags{Multiplicity: schema.Multiplicity(l.multiplicity), Directed: l.directed},
	}
}

func (s *Session) GetVertexLabel(ctx context.Context, ref schema.LabelRef) (*schema.VertexLabel, error) {
	l, err := s.getLabel(ctx, schema.ElementVertex, ref)
	if err != nil || l == nil {
		return nil, err
	}
	props, err := s.properties(ctx, []int64{l.id})
	if err != nil {
		return nil, err
	}
	vl := l.vertexLabel(props[l.id])
	return &vl, nil
}

func (s *Session) makeLabel(ctx context.Context, kind schema.ElementKind, name string, v schema.VertexLabelFlags, e schema.EdgeLabelFlags) (int64, error) {
	var id int64
	err := s.tx.QueryRow(ctx, insertLabelSQL, s.graph, labelKind(kind), name,
		v.ReadOnly, v.Partitioned, string(e.Multiplicity), e.Directed).Scan(&id)
	if isUniqueViolation(err) {
		return 0, schema.NewConflictError("make_label", string(kind)+" label", name, err)
	}
	if err != nil {
		return 0, mapError("make_label", err)
	}
	return id, nil
}

func (s *Session) MakeVertexLabel(ctx context.Context, name string, flags schema.VertexLabelFlags) (*schema.VertexLabel, error) {
	id, err := s.makeLabel(ctx, schema.ElementVertex, name, flags, schema.EdgeLabelFlags{Directed: true})
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
	props, err := s.properties(ctx, labelIDs(labels))
	if err != nil {
		return nil, err
	}
	out := make([]schema.VertexLabel, 0, len(labels))
	for _, l := range labels {
		out = append(out, l.vertexLabel(props[l.id]))
	}
	return out, nil
}

func (s *Session) GetEdgeLabel(ctx context.Context, ref schema.LabelRef) (*schema.EdgeLabel, error) {
	l, err := s.getLabel(ctx, schema.ElementEdge, ref)
	if err != nil || l == nil {
		return nil, err
	}
	props, err := s.properties(ctx, []int64{l.id})
	if err != nil {
		return nil, err
	}
	el := l.edgeLabel(props[l.id])
	return &el, nil
}

func (s *Session) MakeEdgeLabel(ctx context.Context, name string, flags schema.EdgeLabelFlags) (*schema.EdgeLabel, error) {
	id, err := s.makeLabel(ctx, schema.ElementEdge, name, schema.VertexLabelFlags{}, flags)
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
	props, err := s.properties(ctx, labelIDs(labels))
	if err != nil {
		return nil, err
	}
	out := make([]schema.EdgeLabel, 0, len(labels))
	for _, l := range labels {
		out = append(out, l.edgeLabel(props[l.id]))
	}
	return out, nil
}

func (s *Session) ChangeName(ctx context.Context, kind schema.ElementKind, labelID int64, newName string) error {
	tag, err := s.tx.Exec(ctx, renameLabelSQL, s.graph, labelKind(kind), labelID, newName)
	if isUniqueViolation(err) {
		return schema.NewConflictError("change_name", string(kind)+" label", newName, err)
	}
	if err != nil {
		return mapError("change_name", err)
	}
	if tag.RowsAffected() == 0 {
		return schema.NewNotFoundError("change_name", string(kind)+" label", schema.ByID(labelID).String())
	}
	return nil
}

func (s *Session) exists(ctx context.Context, kind string, id int64) (bool, error) {
	var ok bool
	if err := s.tx.QueryRow(ctx, elementExistsSQL, s.graph, kind, id).Scan(&ok); err != nil {
		return false, mapError("element_exists", err)
	}
	return ok, nil
}

func (s *Session) AddProperty(ctx context.Context, kind schema.ElementKind, labelID int64, keyID int64) error {
	ok, err := s.exists(ctx, labelKind(kind), labelID)
	if err != nil {
		return err
	}
	if !ok {
		return schema.NewNotFoundError("add_property", string(kind)+" label", schema.ByID(labelID).String())
	}
	if ok, err = s.exists(ctx, kindKey, keyID); err != nil {
		return err
	}
	if !ok {
		return schema.NewNotFoundError("add_property", "property key", schema.ByID(keyID).String())
	}

	if _, err := s.tx.Exec(ctx, addPropertySQL, s.graph, labelID, keyID); err != nil {
		return mapError("add_property", err)
	}
	return nil
}

func (s *Session) AssociatedProperties(ctx context.Context, kind schema.ElementKind, labelID int64) ([]schema.PropertyKey, error) {
	ok, err := s.exists(ctx, labelKind(kind), labelID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, schema.NewNotFoundError("associated_properties", string(kind)+" label", schema.ByID(labelID).String())
	}
	props, err := s.properties(ctx, []int64{labelID})
	if err != nil {
		return nil, err
	}
	return props[labelID], nil
}

func (s *Session) BuildIndex(ctx context.Context, def schema.IndexDefinition) (*schema.Index, error) {
	const op = "build_index"

	var constraintID *int64
	constraint := ""
	if def.ConstraintID != 0 {
		l, err := s.getLabel(ctx, def.Element, schema.ByID(def.ConstraintID))
		if err != nil {
			return nil, err
		}
		if l == nil {
			return nil, schema.NewNotFoundError(op, string(def.Element)+" label", schema.ByID(def.ConstraintID).String())
		}
		constraintID = &l.id
		constraint = l.name
	}

	keys := make([]schema.PropertyKey, 0, len(def.Keys))
	for _, name := range def.Keys {
		k, err := s.GetPropertyKey(ctx, name)
		if err != nil {
			return nil, err
		}
		if k == nil {
			return nil, schema.NewNotFoundError(op, "property key", name)
		}
		keys = append(keys, *k)
	}

	idx := schema.Index{
		Name:         def.Name,
		Element:      def.Element,
		Type:         def.Type,
		Keys:         keys,
		ConstraintID: def.ConstraintID,
		Constraint:   constraint,
		Unique:       def.Unique,
		Backend:      def.Backend,
		Status:       schema.StatusInstalled,
	}
	// Mixed indices are handed to their external backend as soon as they exist.
	if def.Type == schema.IndexMixed {
		idx.Status = schema.StatusEnabled
	}

	err := s.tx.QueryRow(ctx, insertIndexSQL, s.graph, idx.Name, string(idx.Element), string(idx.Type),
		constraintID, idx.Unique, idx.Backend).Scan(&idx.ID)
	if isUniqueViolation(err) {
		return nil, schema.NewConflictError(op, "index", def.Name, err)
	}
	if err != nil {
		return nil, mapError(op, err)
	}

	for pos, k := range keys {
		if _, err := s.tx.Exec(ctx, insertIndexKeySQL, s.graph, idx.ID, pos, k.ID, string(idx.Status)); err != nil {
			return nil, mapError(op, err)
		}
	}
	return &idx, nil
}

type indexKey struct {
	key    schema.PropertyKey
	status schema.SchemaStatus
}

func scanIndex(row pgx.Row) (schema.Index, error) {
	var idx schema.Index
	var element, typ string
	err := row.Scan(&idx.ID, &idx.Name, &element, &typ, &idx.ConstraintID, &idx.Constraint, &idx.Unique, &idx.Backend)
	idx.Element = schema.ElementKind(element)
	idx.Type = schema.IndexType(typ)
	return idx, err
}

func (s *Session) indexKeys(ctx context.Context, ids []int64) (map[int64][]indexKey, error) {
	rows, err := s.tx.Query(ctx, indexKeysSQL, s.graph, ids)
	if err != nil {
		return nil, mapError("index_keys", err)
	}
	defer rows.Close()

	out := make(map[int64][]indexKey, len(ids))
	for rows.Next() {
		var indexID int64
		var k indexKey
		var dataType, cardinality, status string
		if err := rows.Scan(&indexID, &k.key.ID, &k.key.Name, &dataType, &cardinality, &status); err != nil {
			return nil, mapError("index_keys", err)
		}
		k.key.DataType = schema.DataType(dataType)
		k.key.Cardinality = schema.Cardinality(cardinality)
		k.status = schema.SchemaStatus(status)
		out[indexID] = append(out[indexID], k)
	}
	return out, mapError("index_keys", rows.Err())
}

// withKeys fills in the keys of idx; its status is that of the first key
func withKeys(idx schema.Index, keys []indexKey) schema.Index {
	idx.Keys = make([]schema.PropertyKey, 0, len(keys))
	for _, k := range keys {
		idx.Keys = append(idx.Keys, k.key)
	}
	if len(keys) > 0 {
		idx.Status = keys[0].status
	}
	return idx
}

func (s *Session) GetIndex(ctx context.Context, name string) (*schema.Index, error) {
	idx, err := scanIndex(s.tx.QueryRow(ctx, getIndexSQL, s.graph, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("get_index", err)
	}
	keys, err := s.indexKeys(ctx, []int64{idx.ID})
	if err != nil {
		return nil, err
	}
	idx = withKeys(idx, keys[idx.ID])
	return &idx, nil
}

func (s *Session) ListIndices(ctx context.Context, kind schema.ElementKind) ([]schema.Index, error) {
	rows, err := s.tx.Query(ctx, listIndicesSQL, s.graph, string(kind))
	if err != nil {
		return nil, mapError("list_indices", err)
	}
	var indices []schema.Index
	for rows.Next() {
		idx, err := scanIndex(rows)
		if err != nil {
			rows.Close()
			return nil, mapError("list_indices", err)
		}
		indices = append(indices, idx)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, mapError("list_indices", err)
	}

	out := make([]schema.Index, 0, len(indices))
	if len(indices) == 0 {
		return out, nil
	}
	ids := make([]int64, 0, len(indices))
	for _, idx := range indices {
		ids = append(ids, idx.ID)
	}
	keys, err := s.indexKeys(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, idx := range indices {
		out = append(out, withKeys(idx, keys[idx.ID]))
	}
	return out, nil
}

func (s *Session) IndexStatus(ctx context.Context, indexName, keyName string) (schema.SchemaStatus, error) {
	idx, err := s.GetIndex(ctx, indexName)
	if err != nil {
		return "", err
	}
	if idx == nil {
		return "", schema.NewNotFoundError("index_status", "index", indexName)
	}
	keys, err := s.indexKeys(ctx, []int64{idx.ID})
	if err != nil {
		return "", err
	}
	for _, k := range keys[idx.ID] {
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
	idx, err := s.GetIndex(ctx, indexName)
	if err != nil {
		return err
	}
	if idx == nil {
		return schema.NewNotFoundError("update_index", "index", indexName)
	}

	keys, err := s.indexKeys(ctx, []int64{idx.ID})
	if err != nil {
		return err
	}
	for _, k := range keys[idx.ID] {
		if k.status != schema.StatusRegistered && k.status != schema.StatusEnabled {
			return schema.NewIllegalStateError("update_index", indexName, "cannot enable an index in status "+string(k.status))
		}
	}
	if _, err := s.tx.Exec(ctx, enableIndexSQL, s.graph, idx.ID); err != nil {
		return mapError("update_index", err)
	}
	return nil
}

func (s *Session) Commit(ctx context.Context) error {
	return mapError("commit", s.tx.Commit(ctx))
}

// Rollback is a no-op on a finished session
func (s *Session) Rollback(ctx context.Context) error {
	err := s.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return mapError("rollback", err)
}
