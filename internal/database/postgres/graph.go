// Package postgres keeps graph schema catalogs in PostgreSQL tables. Several
// graph contexts may share one database; every row is scoped by graph name.
package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/redbco/graphschema/pkg/database"
	"github.com/redbco/graphschema/pkg/schema"
	"github.com/redbco/graphschema/pkg/schemastore"
)

// BackendType is the configuration name of this backend
const BackendType = "postgres"

func init() {
	schemastore.Register(&Backend{})
}

// Backend opens PostgreSQL graphs
type Backend struct{}

func (b *Backend) Type() string { return BackendType }

// Open connects a pool and creates the catalog tables when missing.
//
// Options: sslmode, max_connections, connect_timeout and backfill_delay,
// which keeps new composite indices INSTALLED for at least that long.
func (b *Backend) Open(ctx context.Context, cfg schemastore.GraphConfig) (schemastore.Graph, error) {
	pgCfg, err := poolSettings(cfg)
	if err != nil {
		return nil, schema.NewInvalidArgumentError("open_graph", err.Error())
	}
	delay, err := time.ParseDuration(cfg.Option("backfill_delay", "0s"))
	if err != nil {
		return nil, schema.NewInvalidArgumentError("open_graph", "invalid backfill_delay: "+err.Error())
	}

	pool, err := database.NewPostgreSQL(ctx, pgCfg)
	if err != nil {
		return nil, schema.NewUnavailableError("open_graph", err)
	}

	g := &Graph{name: cfg.Name, pool: pool, backfillDelay: delay}
	if err := g.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return g, nil
}

func poolSettings(cfg schemastore.GraphConfig) (database.PostgreSQLConfig, error) {
	pg := database.DefaultPostgreSQLConfig()
	if cfg.Host != "" {
		pg.Host = cfg.Host
	}
	if cfg.Port != 0 {
		pg.Port = cfg.Port
	}
	if cfg.Database != "" {
		pg.Database = cfg.Database
	}
	if cfg.Username != "" {
		pg.User = cfg.Username
	}
	pg.Password = cfg.Password

	sslMode := "disable"
	if cfg.SSL {
		sslMode = "require"
	}
	pg.SSLMode = cfg.Option("sslmode", sslMode)

	if v := cfg.Option("max_connections", ""); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil || n <= 0 {
			return pg, fmt.Errorf("invalid max_connections %q", v)
		}
		pg.MaxConnections = int32(n)
	}
	if v := cfg.Option("connect_timeout", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return pg, fmt.Errorf("invalid connect_timeout %q", v)
		}
		pg.ConnectionTimeout = d
	}
	return pg, nil
}

// Graph is one graph context stored in PostgreSQL
type Graph struct {
	name          string
	pool          *pgxpool.Pool
	backfillDelay time.Duration
}

var _ schemastore.Graph = (*Graph)(nil)

func (g *Graph) Name() string    { return g.name }
func (g *Graph) Backend() string { return BackendType }

func (g *Graph) migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := g.pool.Exec(ctx, stmt); err != nil {
			return mapError("migrate", err)
		}
	}
	return nil
}

// OpenManagement begins a transaction that lives as long as the session
func (g *Graph) OpenManagement(ctx context.Context) (schemastore.Session, error) {
	tx, err := g.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, schema.NewUnavailableError("open_management", err)
	}
	return &Session{graph: g.name, tx: tx}, nil
}

// IndexReadiness promotes INSTALLED keys of a composite index once the
// backfill delay has passed and reports the per-key status.
func (g *Graph) IndexReadiness(ctx context.Context, indexName string) (schema.Readiness, error) {
	if _, err := g.pool.Exec(ctx, promoteInstalledSQL, g.name, indexName, g.backfillDelay.Seconds()); err != nil {
		return schema.Readiness{}, mapError("index_readiness", err)
	}

	rows, err := g.pool.Query(ctx, readinessSQL, g.name, indexName)
	if err != nil {
		return schema.Readiness{}, mapError("index_readiness", err)
	}
	defer rows.Close()

	rd := schema.Readiness{Index: indexName, KeyStatus: make(map[string]schema.SchemaStatus)}
	for rows.Next() {
		var key, status string
		if err := rows.Scan(&key, &status); err != nil {
			return schema.Readiness{}, mapError("index_readiness", err)
		}
		rd.KeyStatus[key] = schema.SchemaStatus(status)
	}
	if err := rows.Err(); err != nil {
		return schema.Readiness{}, mapError("index_readiness", err)
	}
	if len(rd.KeyStatus) == 0 {
		return schema.Readiness{}, schema.NewNotFoundError("index_readiness", "index", indexName)
	}
	return rd, nil
}

func (g *Graph) Ping(ctx context.Context) error {
	if err := g.pool.Ping(ctx); err != nil {
		return schema.NewUnavailableError("ping", err)
	}
	return nil
}

func (g *Graph) Close() error {
	g.pool.Close()
	return nil
}
