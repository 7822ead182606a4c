package memory

import (
	"sort"

	"github.com/redbco/graphschema/pkg/schema"
)

type labelRecord struct {
	id     int64
	name   string
	props  []int64
	vflags schema.VertexLabelFlags
	eflags schema.EdgeLabelFlags
}

type indexRecord struct {
	index  schema.Index
	keys   []string
	status map[string]schema.SchemaStatus
}

// catalog is one full copy of a graph's schema. Sessions work on a clone and
// the graph keeps the committed one.
type catalog struct {
	keys    map[string]schema.PropertyKey
	labels  map[schema.ElementKind]map[int64]*labelRecord
	indices map[string]*indexRecord
}

func newCatalog() *catalog {
	return &catalog{
		keys: make(map[string]schema.PropertyKey),
		labels: map[schema.ElementKind]map[int64]*labelRecord{
			schema.ElementVertex: make(map[int64]*labelRecord),
			schema.ElementEdge:   make(map[int64]*labelRecord),
		},
		indices: make(map[string]*indexRecord),
	}
}

func (c *catalog) clone() *catalog {
	out := newCatalog()
	for name, k := range c.keys {
		out.keys[name] = k
	}
	for kind, labels := range c.labels {
		for id, l := range labels {
			cp := *l
			cp.props = append([]int64(nil), l.props...)
			out.labels[kind][id] = &cp
		}
	}
	for name, idx := range c.indices {
		cp := &indexRecord{
			index:  idx.index,
			keys:   append([]string(nil), idx.keys...),
			status: make(map[string]schema.SchemaStatus, len(idx.status)),
		}
		cp.index.Keys = append([]schema.PropertyKey(nil), idx.index.Keys...)
		for k, st := range idx.status {
			cp.status[k] = st
		}
		out.indices[name] = cp
	}
	return out
}

func (c *catalog) keyByID(id int64) (schema.PropertyKey, bool) {
	for _, k := range c.keys {
		if k.ID == id {
			return k, true
		}
	}
	return schema.PropertyKey{}, false
}

func (c *catalog) labelByName(kind schema.ElementKind, name string) *labelRecord {
	for _, l := range c.labels[kind] {
		if l.name == name {
			return l
		}
	}
	return nil
}

func (c *catalog) lookupLabel(kind schema.ElementKind, ref schema.LabelRef) *labelRecord {
	if id, ok := ref.ID(); ok {
		return c.labels[kind][id]
	}
	name, _ := ref.Name()
	return c.labelByName(kind, name)
}

func (c *catalog) properties(l *labelRecord) []schema.PropertyKey {
	props := make([]schema.PropertyKey, 0, len(l.props))
	for _, id := range l.props {
		if k, ok := c.keyByID(id); ok {
			props = append(props, k)
		}
	}
	return props
}

func (c *catalog) vertexLabel(l *labelRecord) schema.VertexLabel {
	return schema.VertexLabel{
		ID:               l.id,
		Name:             l.name,
		Properties:       c.properties(l),
		VertexLabelFlags: l.vflags,
	}
}

func (c *catalog) edgeLabel(l *labelRecord) schema.EdgeLabel {
	return schema.EdgeLabel{
		ID:             l.id,
		Name:           l.name,
		Properties:     c.properties(l),
		EdgeLabelFlags: l.eflags,
	}
}

func (c *catalog) sortedLabels(kind schema.ElementKind) []*labelRecord {
	out := make([]*labelRecord, 0, len(c.labels[kind]))
	for _, l := range c.labels[kind] {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// index projects r with the current name of its constraint label and the
// status of its first key
func (c *catalog) index(r *indexRecord) schema.Index {
	idx := r.index
	idx.Keys = append([]schema.PropertyKey(nil), r.index.Keys...)
	if l, ok := c.labels[idx.Element][idx.ConstraintID]; ok {
		idx.Constraint = l.name
	}
	if len(r.keys) > 0 {
		idx.Status = r.status[r.keys[0]]
	}
	return idx
}

func (r *indexRecord) readiness() schema.Readiness {
	rd := schema.Readiness{Index: r.index.Name, KeyStatus: make(map[string]schema.SchemaStatus, len(r.status))}
	for k, st := range r.status {
		rd.KeyStatus[k] = st
	}
	return rd
}

func (r *indexRecord) setStatus(from []schema.SchemaStatus, to schema.SchemaStatus) bool {
	changed := false
	for k, st := range r.status {
		for _, f := range from {
			if st == f {
				r.status[k] = to
				changed = true
				break
			}
		}
	}
	return changed
}

// The apply functions below are the journal entries a session records. They
// run first against the session's own clone and again, at commit, against a
// clone of the committed catalog, where another session may have won a race.

func makeKeyOp(k schema.PropertyKey) func(*catalog) error {
	return func(c *catalog) error {
		if _, exists := c.keys[k.Name]; exists {
			return schema.NewConflictError("make_property_key", "property key", k.Name, nil)
		}
		c.keys[k.Name] = k
		return nil
	}
}

func makeLabelOp(kind schema.ElementKind, l labelRecord) func(*catalog) error {
	return func(c *catalog) error {
		if c.labelByName(kind, l.name) != nil {
			return schema.NewConflictError("make_label", string(kind)+" label", l.name, nil)
		}
		cp := l
		cp.props = nil
		c.labels[kind][l.id] = &cp
		return nil
	}
}

func changeNameOp(kind schema.ElementKind, id int64, name string) func(*catalog) error {
	return func(c *catalog) error {
		l, ok := c.labels[kind][id]
		if !ok {
			return schema.NewNotFoundError("change_name", string(kind)+" label", schema.ByID(id).String())
		}
		if other := c.labelByName(kind, name); other != nil && other.id != id {
			return schema.NewConflictError("change_name", string(kind)+" label", name, nil)
		}
		l.name = name
		return nil
	}
}

func addPropertyOp(kind schema.ElementKind, labelID, keyID int64) func(*catalog) error {
	return func(c *catalog) error {
		l, ok := c.labels[kind][labelID]
		if !ok {
			return schema.NewNotFoundError("add_property", string(kind)+" label", schema.ByID(labelID).String())
		}
		if _, ok := c.keyByID(keyID); !ok {
			return schema.NewNotFoundError("add_property", "property key", schema.ByID(keyID).String())
		}
		for _, id := range l.props {
			if id == keyID {
				return nil
			}
		}
		l.props = append(l.props, keyID)
		return nil
	}
}

func buildIndexOp(idx schema.Index, initial schema.SchemaStatus) func(*catalog) error {
	return func(c *catalog) error {
		if _, exists := c.indices[idx.Name]; exists {
			return schema.NewConflictError("build_index", "index", idx.Name, nil)
		}
		rec := &indexRecord{index: idx, status: make(map[string]schema.SchemaStatus, len(idx.Keys))}
		rec.index.Keys = make([]schema.PropertyKey, 0, len(idx.Keys))
		for _, k := range idx.Keys {
			stored, ok := c.keys[k.Name]
			if !ok {
				return schema.NewNotFoundError("build_index", "property key", k.Name)
			}
			rec.index.Keys = append(rec.index.Keys, stored)
			rec.keys = append(rec.keys, k.Name)
			rec.status[k.Name] = initial
		}
		if idx.Constrained() {
			if _, ok := c.labels[idx.Element][idx.ConstraintID]; !ok {
				return schema.NewNotFoundError("build_index", string(idx.Element)+" label", schema.ByID(idx.ConstraintID).String())
			}
		}
		c.indices[idx.Name] = rec
		return nil
	}
}

func enableIndexOp(name string) func(*catalog) error {
	return func(c *catalog) error {
		rec, ok := c.indices[name]
		if !ok {
			return schema.NewNotFoundError("update_index", "index", name)
		}
		for _, st := range rec.status {
			if st != schema.StatusRegistered && st != schema.StatusEnabled {
				return schema.NewIllegalStateError("update_index", name, "cannot enable an index in status "+string(st))
			}
		}
		rec.setStatus([]schema.SchemaStatus{schema.StatusRegistered}, schema.StatusEnabled)
		return nil
	}
}
