package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redbco/graphschema/pkg/schema"
	"github.com/redbco/graphschema/pkg/schemastore"
)

func TestPoolSettings(t *testing.T) {
	cfg := schemastore.GraphConfig{
		Name:     "second",
		Backend:  BackendType,
		Host:     "db.internal",
		Port:     6432,
		Database: "schema_second",
		Username: "graphschema",
		Password: "p@ss word",
		SSL:      true,
		Options:  map[string]string{"max_connections": "4", "connect_timeout": "2s"},
	}

	pg, err := poolSettings(cfg)
	require.NoError(t, err)
	assert.Equal(t, "db.internal", pg.Host)
	assert.Equal(t, 6432, pg.Port)
	assert.Equal(t, "schema_second", pg.Database)
	assert.Equal(t, "graphschema", pg.User)
	assert.Equal(t, "p@ss word", pg.Password)
	assert.Equal(t, "require", pg.SSLMode)
	assert.Equal(t, int32(4), pg.MaxConnections)
	assert.Equal(t, 2*time.Second, pg.ConnectionTimeout)

	pool, err := pg.PoolConfig()
	require.NoError(t, err)
	assert.Equal(t, "p@ss word", pool.ConnConfig.Password)
	assert.Equal(t, uint16(6432), pool.ConnConfig.Port)

	cfg.Options = map[string]string{"max_connections": "many"}
	_, err = poolSettings(cfg)
	assert.Error(t, err)

	defaults, err := poolSettings(schemastore.GraphConfig{Name: "first"})
	require.NoError(t, err)
	assert.Equal(t, "localhost", defaults.Host)
	assert.Equal(t, "disable", defaults.SSLMode)
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want schema.Kind
	}{
		{name: "unique violation", err: &pgconn.PgError{Code: uniqueViolation}, want: schema.KindConflict},
		{name: "serialization failure", err: &pgconn.PgError{Code: serializationFailure}, want: schema.KindUnavailable},
		{name: "connection failure", err: &pgconn.PgError{Code: "08006"}, want: schema.KindUnavailable},
		{name: "syntax error", err: &pgconn.PgError{Code: "42601"}, want: schema.KindUnknown},
		{name: "closed transaction", err: pgx.ErrTxClosed, want: schema.KindUnavailable},
		{name: "deadline", err: fmt.Errorf("query: %w", context.DeadlineExceeded), want: schema.KindUnavailable},
		{name: "classified", err: schema.NewNotFoundError("get", "index", "byAge"), want: schema.KindNotFound},
		{name: "plain", err: errors.New("boom"), want: schema.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError("op", tt.err)
			require.Error(t, got)
			assert.Equal(t, tt.want, schema.KindOf(got))
			assert.ErrorIs(t, got, tt.err)
		})
	}
	assert.NoError(t, mapError("op", nil))
}

func TestWithKeys(t *testing.T) {
	idx := withKeys(schema.Index{Name: "byAge"}, []indexKey{
		{key: schema.PropertyKey{ID: 1, Name: "age"}, status: schema.StatusRegistered},
		{key: schema.PropertyKey{ID: 2, Name: "name"}, status: schema.StatusInstalled},
	})
	assert.Equal(t, schema.StatusRegistered, idx.Status)
	require.Len(t, idx.Keys, 2)
	assert.Equal(t, "name", idx.Keys[1].Name)

	assert.Empty(t, withKeys(schema.Index{Name: "empty"}, nil).Status)
	assert.Equal(t, kindEdge, labelKind(schema.ElementEdge))
	assert.Equal(t, kindVertex, labelKind(schema.ElementVertex))
}

// integrationGraph opens a graph against the database named by
// GRAPHSCHEMA_TEST_POSTGRES_HOST, skipping the test when it is unset.
func integrationGraph(t *testing.T) *Graph {
	t.Helper()
	host := os.Getenv("GRAPHSCHEMA_TEST_POSTGRES_HOST")
	if host == "" {
		t.Skip("GRAPHSCHEMA_TEST_POSTGRES_HOST not set")
	}
	port, _ := strconv.Atoi(os.Getenv("GRAPHSCHEMA_TEST_POSTGRES_PORT"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	g, err := (&Backend{}).Open(ctx, schemastore.GraphConfig{
		Name:     fmt.Sprintf("test_%d", time.Now().UnixNano()),
		Backend:  BackendType,
		Host:     host,
		Port:     port,
		Database: os.Getenv("GRAPHSCHEMA_TEST_POSTGRES_DATABASE"),
		Username: os.Getenv("GRAPHSCHEMA_TEST_POSTGRES_USER"),
		Password: os.Getenv("GRAPHSCHEMA_TEST_POSTGRES_PASSWORD"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { g.Close() })
	return g.(*Graph)
}

func TestIndexLifecycleIntegration(t *testing.T) {
	g := integrationGraph(t)
	ctx := context.Background()

	sess, err := g.OpenManagement(ctx)
	require.NoError(t, err)
	age, err := sess.MakePropertyKey(ctx, schema.PropertyKey{Name: "age", DataType: schema.DataTypeInt32, Cardinality: schema.CardinalitySingle})
	require.NoError(t, err)
	user, err := sess.MakeVertexLabel(ctx, "user", schema.VertexLabelFlags{})
	require.NoError(t, err)
	require.NoError(t, sess.AddProperty(ctx, schema.ElementVertex, user.ID, age.ID))
	require.NoError(t, sess.AddProperty(ctx, schema.ElementVertex, user.ID, age.ID))
	idx, err := sess.BuildIndex(ctx, schema.IndexDefinition{
		Name: "byAge", Element: schema.ElementVertex, Type: schema.IndexComposite, Keys: []string{"age"},
		ConstraintID: user.ID, Constraint: "user",
	})
	require.NoError(t, err)
	assert.Equal(t, schema.StatusInstalled, idx.Status)
	require.NoError(t, sess.Commit(ctx))

	rd, err := g.IndexReadiness(ctx, "byAge")
	require.NoError(t, err)
	assert.True(t, rd.Ready())

	sess, err = g.OpenManagement(ctx)
	require.NoError(t, err)
	require.NoError(t, sess.UpdateIndex(ctx, "byAge", schema.ActionEnableIndex))
	require.NoError(t, sess.Commit(ctx))

	sess, err = g.OpenManagement(ctx)
	require.NoError(t, err)
	defer sess.Rollback(ctx)

	got, err := sess.GetIndex(ctx, "byAge")
	require.NoError(t, err)
	assert.Equal(t, schema.StatusEnabled, got.Status)

	vl, err := sess.GetVertexLabel(ctx, schema.ByName("user"))
	require.NoError(t, err)
	require.Len(t, vl.Properties, 1)
	assert.Equal(t, "age", vl.Properties[0].Name)

	_, err = sess.MakeVertexLabel(ctx, "user", schema.VertexLabelFlags{})
	assert.Equal(t, schema.KindConflict, schema.KindOf(err))
	require.NoError(t, sess.Rollback(ctx))

	sess, err = g.OpenManagement(ctx)
	require.NoError(t, err)
	defer sess.Rollback(ctx)
	require.NoError(t, sess.ChangeName(ctx, schema.ElementVertex, user.ID, "member"))
	got, err = sess.GetIndex(ctx, "byAge")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ConstraintID)
	assert.Equal(t, "member", got.Label())
}
