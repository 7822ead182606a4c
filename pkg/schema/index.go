package schema

import (
	"fmt"
	"strings"
)

// AllLabels is the constraint of an index that is not restricted to one label
const AllLabels = "ALL"

// IndexType is the kind of graph index
type IndexType string

const (
	IndexComposite IndexType = "composite"
	IndexMixed     IndexType = "mixed"
)

// SchemaStatus is the lifecycle state of an index definition.
// The forward order is INSTALLED -> REGISTERED -> ENABLED; DISABLED is a sink
// that only an external actor can reach.
type SchemaStatus string

const (
	StatusInstalled  SchemaStatus = "INSTALLED"
	StatusRegistered SchemaStatus = "REGISTERED"
	StatusEnabled    SchemaStatus = "ENABLED"
	StatusDisabled   SchemaStatus = "DISABLED"
)

// ParseSchemaStatus parses a status name
func ParseSchemaStatus(s string) (SchemaStatus, error) {
	switch SchemaStatus(strings.ToUpper(s)) {
	case StatusInstalled:
		return StatusInstalled, nil
	case StatusRegistered:
		return StatusRegistered, nil
	case StatusEnabled:
		return StatusEnabled, nil
	case StatusDisabled:
		return StatusDisabled, nil
	}
	return "", fmt.Errorf("unknown schema status %q", s)
}

// SchemaAction is a status change requested on an index
type SchemaAction string

const (
	ActionEnableIndex SchemaAction = "ENABLE_INDEX"
)

// IndexDefinition describes an index to build
type IndexDefinition struct {
	Name    string
	Element ElementKind
	Type    IndexType
	// Keys are property key names in index order
	Keys []string
	// ConstraintID is the id of the constraint label, or zero for an
	// unconstrained index
	ConstraintID int64
	// Constraint is the name of that label when the index is built
	Constraint string
	Unique     bool
	Backend    string
}

// Index is a built graph index. An index is bound to its constraint label by
// id; Constraint is the label's current name, so it follows a rename.
type Index struct {
	ID           int64
	Name         string
	Element      ElementKind
	Type         IndexType
	Keys         []PropertyKey
	ConstraintID int64
	Constraint   string
	Unique       bool
	Backend      string
	Status       SchemaStatus
}

// Constrained reports whether the index is restricted to one label
func (i Index) Constrained() bool {
	return i.ConstraintID != 0
}

// Label returns the constraint label name, or AllLabels when unconstrained
func (i Index) Label() string {
	if !i.Constrained() {
		return AllLabels
	}
	return i.Constraint
}

// Readiness is a point-in-time view of an index's progress through backfill
type Readiness struct {
	Index string
	// KeyStatus holds the status observed for each constituent key
	KeyStatus map[string]SchemaStatus
}

// Ready reports whether the index has left INSTALLED for at least one key
func (r Readiness) Ready() bool {
	for _, st := range r.KeyStatus {
		if st != StatusInstalled {
			return true
		}
	}
	return false
}

// Status returns the most advanced status observed across keys
func (r Readiness) Status() SchemaStatus {
	best := StatusInstalled
	for _, st := range r.KeyStatus {
		if statusRank(st) > statusRank(best) {
			best = st
		}
	}
	return best
}

func statusRank(s SchemaStatus) int {
	switch s {
	case StatusRegistered:
		return 1
	case StatusEnabled:
		return 2
	case StatusDisabled:
		return 3
	}
	return 0
}
