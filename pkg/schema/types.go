// Package schema defines the graph schema objects managed by graphschema and
// the error taxonomy shared by every layer of the service.
package schema

import (
	"fmt"
	"strings"
)

// DataType is the value type of a property key
type DataType string

const (
	DataTypeString    DataType = "String"
	DataTypeCharacter DataType = "Character"
	DataTypeBoolean   DataType = "Boolean"
	DataTypeInt8      DataType = "Int8"
	DataTypeInt16     DataType = "Int16"
	DataTypeInt32     DataType = "Int32"
	DataTypeInt64     DataType = "Int64"
	DataTypeFloat32   DataType = "Float32"
	DataTypeFloat64   DataType = "Float64"
	DataTypeDate      DataType = "Date"
	DataTypeObject    DataType = "Object"
	DataTypeGeoShape  DataType = "GeoShape"
	DataTypeUUID      DataType = "Uuid"
)

// DataTypes lists every supported data type
var DataTypes = []DataType{
	DataTypeString, DataTypeCharacter, DataTypeBoolean,
	DataTypeInt8, DataTypeInt16, DataTypeInt32, DataTypeInt64,
	DataTypeFloat32, DataTypeFloat64, DataTypeDate, DataTypeObject,
	DataTypeGeoShape, DataTypeUUID,
}

// ParseDataType parses a data type name case-insensitively.
// An empty name yields DataTypeString.
func ParseDataType(s string) (DataType, error) {
	if s == "" {
		return DataTypeString, nil
	}
	for _, dt := range DataTypes {
		if strings.EqualFold(string(dt), s) {
			return dt, nil
		}
	}
	return "", NewInvalidArgumentError("parse_data_type", fmt.Sprintf("unknown data type %q", s))
}

// Cardinality controls how many values a property key may hold per element
type Cardinality string

const (
	CardinalitySingle Cardinality = "SINGLE"
	CardinalityList   Cardinality = "LIST"
	CardinalitySet    Cardinality = "SET"
)

// ParseCardinality parses a cardinality name. An empty name yields SINGLE.
func ParseCardinality(s string) (Cardinality, error) {
	switch strings.ToUpper(s) {
	case "", "SINGLE":
		return CardinalitySingle, nil
	case "LIST":
		return CardinalityList, nil
	case "SET":
		return CardinalitySet, nil
	}
	return "", NewInvalidArgumentError("parse_cardinality", fmt.Sprintf("unknown cardinality %q", s))
}

// Multiplicity constrains edges of a label between a pair of vertices
type Multiplicity string

const (
	MultiplicityMulti    Multiplicity = "MULTI"
	MultiplicitySimple   Multiplicity = "SIMPLE"
	MultiplicityMany2One Multiplicity = "MANY2ONE"
	MultiplicityOne2Many Multiplicity = "ONE2MANY"
	MultiplicityOne2One  Multiplicity = "ONE2ONE"
)

// ParseMultiplicity parses a multiplicity name. An empty name yields MULTI.
func ParseMultiplicity(s string) (Multiplicity, error) {
	switch strings.ToUpper(s) {
	case "", "MULTI":
		return MultiplicityMulti, nil
	case "SIMPLE":
		return MultiplicitySimple, nil
	case "MANY2ONE":
		return MultiplicityMany2One, nil
	case "ONE2MANY":
		return MultiplicityOne2Many, nil
	case "ONE2ONE":
		return MultiplicityOne2One, nil
	}
	return "", NewInvalidArgumentError("parse_multiplicity", fmt.Sprintf("unknown multiplicity %q", s))
}

// ElementKind distinguishes vertex and edge schema objects
type ElementKind string

const (
	ElementVertex ElementKind = "vertex"
	ElementEdge   ElementKind = "edge"
)

func (k ElementKind) Valid() bool {
	return k == ElementVertex || k == ElementEdge
}

// PropertyKey is a named, typed property that labels may carry.
// Identity is by name; the data type and cardinality never change after creation.
type PropertyKey struct {
	ID          int64
	Name        string
	DataType    DataType
	Cardinality Cardinality
}

// VertexLabelFlags are accepted only when the label is created
type VertexLabelFlags struct {
	ReadOnly    bool
	Partitioned bool
}

// EdgeLabelFlags are accepted only when the label is created
type EdgeLabelFlags struct {
	Multiplicity Multiplicity
	Directed     bool
}

// VertexLabel is a vertex label together with its associated property keys
type VertexLabel struct {
	ID         int64
	Name       string
	Properties []PropertyKey
	VertexLabelFlags
}

// EdgeLabel is an edge label together with its associated property keys
type EdgeLabel struct {
	ID         int64
	Name       string
	Properties []PropertyKey
	EdgeLabelFlags
}

// LabelRef selects an existing label either by id or by name
type LabelRef struct {
	id   int64
	name string
	byID bool
}

// ByID references a label by its store-assigned id
func ByID(id int64) LabelRef {
	return LabelRef{id: id, byID: true}
}

// ByName references a label by its current name
func ByName(name string) LabelRef {
	return LabelRef{name: name}
}

// ID returns the referenced id and whether the reference is by id
func (r LabelRef) ID() (int64, bool) {
	return r.id, r.byID
}

// Name returns the referenced name and whether the reference is by name
func (r LabelRef) Name() (string, bool) {
	return r.name, !r.byID
}

func (r LabelRef) String() string {
	if r.byID {
		return fmt.Sprintf("id:%d", r.id)
	}
	return r.name
}
