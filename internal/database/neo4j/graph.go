// Package neo4j keeps graph schema catalogs as nodes in a Neo4j database and
// backs composite indices with native Neo4j indexes, whose population decides
// when an index becomes REGISTERED.
package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/redbco/graphschema/pkg/schema"
	"github.com/redbco/graphschema/pkg/schemastore"
)

// BackendType is the configuration name of this backend
const BackendType = "neo4j"

func init() {
	schemastore.Register(&Backend{})
}

// Backend opens Neo4j graphs
type Backend struct{}

func (b *Backend) Type() string { return BackendType }

// Open connects a driver and creates the catalog constraints when missing.
//
// Options: native_indexes (default true) creates a native index for every
// label-constrained composite index; without it indices register on the
// first readiness poll.
func (b *Backend) Open(ctx context.Context, cfg schemastore.GraphConfig) (schemastore.Graph, error) {
	driver, err := neo4j.NewDriverWithContext(uri(cfg), neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, schema.NewInvalidArgumentError("open_graph", fmt.Sprintf("error creating Neo4j driver: %v", err))
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, schema.NewUnavailableError("open_graph", err)
	}

	g := &Graph{
		name:     cfg.Name,
		database: cfg.Database,
		driver:   driver,
		native:   cfg.BoolOption("native_indexes", true),
	}
	if err := g.migrate(ctx); err != nil {
		driver.Close(ctx)
		return nil, err
	}
	return g, nil
}

func uri(cfg schemastore.GraphConfig) string {
	scheme := cfg.Option("scheme", "neo4j")
	if cfg.SSL {
		scheme += "+s"
	}
	port := cfg.Port
	if port == 0 {
		port = 7687
	}
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, host, port)
}

// Graph is one graph context stored in Neo4j
type Graph struct {
	name     string
	database string
	driver   neo4j.DriverWithContext
	native   bool
}

var _ schemastore.Graph = (*Graph)(nil)

func (g *Graph) Name() string    { return g.name }
func (g *Graph) Backend() string { return BackendType }

// exec runs one auto-committed statement. Schema commands cannot share a
// transaction with data writes.
func (g *Graph) exec(ctx context.Context, op, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	res, err := neo4j.ExecuteQuery(ctx, g.driver, cypher, params, neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(g.database))
	if err != nil {
		return nil, mapError(op, err)
	}
	return res.Records, nil
}

func (g *Graph) migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := g.exec(ctx, "migrate", stmt, nil); err != nil {
			return err
		}
	}
	return nil
}

// OpenManagement begins an explicit transaction on a fresh session
func (g *Graph) OpenManagement(ctx context.Context) (schemastore.Session, error) {
	sess := g.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: g.database,
	})
	tx, err := sess.BeginTransaction(ctx)
	if err != nil {
		sess.Close(ctx)
		return nil, schema.NewUnavailableError("open_management", err)
	}
	return &Session{graph: g.name, session: sess, tx: tx}, nil
}

// IndexReadiness reports per-key status of an index. INSTALLED composite
// indices are backed by a native index here; once Neo4j reports it ONLINE the
// keys become REGISTERED, and a FAILED population disables the index.
func (g *Graph) IndexReadiness(ctx context.Context, indexName string) (schema.Readiness, error) {
	const op = "index_readiness"

	recs, err := g.exec(ctx, op, getIndexCypher, map[string]any{"graph": g.name, "name": indexName})
	if err != nil {
		return schema.Readiness{}, err
	}
	if len(recs) == 0 {
		return schema.Readiness{}, schema.NewNotFoundError(op, "index", indexName)
	}
	idx, keys, err := decodeIndex(recs[0])
	if err != nil {
		return schema.Readiness{}, schema.WrapError(op, err)
	}

	rd := schema.Readiness{Index: indexName, KeyStatus: make(map[string]schema.SchemaStatus, len(keys))}
	installed := false
	for _, k := range keys {
		rd.KeyStatus[k.key.Name] = k.status
		installed = installed || k.status == schema.StatusInstalled
	}
	if !installed || idx.Type != schema.IndexComposite {
		return rd, nil
	}

	next := schema.StatusRegistered
	if g.native && idx.Constrained() {
		state, err := g.nativeState(ctx, idx)
		if err != nil {
			return schema.Readiness{}, err
		}
		switch state {
		case "ONLINE":
		case "FAILED":
			next = schema.StatusDisabled
		default:
			return rd, nil
		}
	}

	if _, err := g.exec(ctx, op, setIndexStatusCypher, map[string]any{
		"graph": g.name,
		"name":  indexName,
		"from":  []any{string(schema.StatusInstalled)},
		"to":    string(next),
	}); err != nil {
		return schema.Readiness{}, err
	}
	for k, st := range rd.KeyStatus {
		if st == schema.StatusInstalled {
			rd.KeyStatus[k] = next
		}
	}
	return rd, nil
}

// nativeState creates the native index of idx if needed and returns the
// population state Neo4j reports for it.
func (g *Graph) nativeState(ctx context.Context, idx schema.Index) (string, error) {
	name := nativeIndexName(g.name, idx.Name)
	if _, err := g.exec(ctx, "create_native_index", nativeIndexCypher(name, idx), nil); err != nil {
		return "", err
	}
	recs, err := g.exec(ctx, "show_native_index", showIndexCypher, map[string]any{"name": name})
	if err != nil {
		return "", err
	}
	if len(recs) == 0 {
		return "", nil
	}
	state, _ := recs[0].Get("state")
	s, _ := state.(string)
	return s, nil
}

func (g *Graph) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := g.driver.VerifyConnectivity(ctx); err != nil {
		return schema.NewUnavailableError("ping", err)
	}
	return nil
}

func (g *Graph) Close() error {
	return g.driver.Close(context.Background())
}
