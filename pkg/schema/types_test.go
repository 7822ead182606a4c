package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataType(t *testing.T) {
	tests := []struct {
		in      string
		want    DataType
		wantErr bool
	}{
		{in: "", want: DataTypeString},
		{in: "int32", want: DataTypeInt32},
		{in: "UUID", want: DataTypeUUID},
		{in: "GeoShape", want: DataTypeGeoShape},
		{in: "Decimal", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDataType(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, KindInvalidArgument, KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEnums(t *testing.T) {
	card, err := ParseCardinality("list")
	require.NoError(t, err)
	assert.Equal(t, CardinalityList, card)
	card, err = ParseCardinality("")
	require.NoError(t, err)
	assert.Equal(t, CardinalitySingle, card)
	_, err = ParseCardinality("bag")
	assert.Error(t, err)

	m, err := ParseMultiplicity("one2many")
	require.NoError(t, err)
	assert.Equal(t, MultiplicityOne2Many, m)
	m, err = ParseMultiplicity("")
	require.NoError(t, err)
	assert.Equal(t, MultiplicityMulti, m)
	_, err = ParseMultiplicity("many")
	assert.Error(t, err)

	st, err := ParseSchemaStatus("registered")
	require.NoError(t, err)
	assert.Equal(t, StatusRegistered, st)
	_, err = ParseSchemaStatus("PENDING")
	assert.Error(t, err)

	assert.True(t, ElementVertex.Valid())
	assert.False(t, ElementKind("hyperedge").Valid())
}

func TestLabelRef(t *testing.T) {
	byID := ByID(42)
	id, ok := byID.ID()
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
	_, ok = byID.Name()
	assert.False(t, ok)
	assert.Equal(t, "id:42", byID.String())

	byName := ByName("user")
	name, ok := byName.Name()
	assert.True(t, ok)
	assert.Equal(t, "user", name)
	_, ok = byName.ID()
	assert.False(t, ok)
	assert.Equal(t, "user", byName.String())
}

func TestIndexLabel(t *testing.T) {
	assert.Equal(t, AllLabels, Index{Name: "byName"}.Label())
	assert.Equal(t, "user", Index{Name: "byName", ConstraintID: 3, Constraint: "user"}.Label())
	assert.False(t, Index{Name: "byName"}.Constrained())
}

func TestReadiness(t *testing.T) {
	tests := []struct {
		name  string
		keys  map[string]SchemaStatus
		ready bool
		want  SchemaStatus
	}{
		{name: "no keys", keys: nil, ready: false, want: StatusInstalled},
		{name: "installed", keys: map[string]SchemaStatus{"age": StatusInstalled}, ready: false, want: StatusInstalled},
		{
			name:  "partially registered",
			keys:  map[string]SchemaStatus{"age": StatusInstalled, "name": StatusRegistered},
			ready: true,
			want:  StatusRegistered,
		},
		{name: "enabled", keys: map[string]SchemaStatus{"age": StatusEnabled}, ready: true, want: StatusEnabled},
		{
			name:  "disabled wins",
			keys:  map[string]SchemaStatus{"age": StatusEnabled, "name": StatusDisabled},
			ready: true,
			want:  StatusDisabled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rd := Readiness{Index: "byAge", KeyStatus: tt.keys}
			assert.Equal(t, tt.ready, rd.Ready())
			assert.Equal(t, tt.want, rd.Status())
		})
	}
}
