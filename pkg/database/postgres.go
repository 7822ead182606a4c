package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQLConfig holds the connection settings of a PostgreSQL pool
type PostgreSQLConfig struct {
	User              string
	Password          string
	Host              string
	Port              int
	Database          string
	SSLMode           string
	MaxConnections    int32
	ConnectionTimeout time.Duration
}

// DefaultPostgreSQLConfig returns a default configuration for local development
func DefaultPostgreSQLConfig() PostgreSQLConfig {
	return PostgreSQLConfig{
		User:              "graphschema",
		Host:              "localhost",
		Port:              5432,
		Database:          "graphschema",
		SSLMode:           "disable",
		MaxConnections:    10,
		ConnectionTimeout: 5 * time.Second,
	}
}

// PoolConfig validates cfg and turns it into a pgxpool configuration
func (cfg PostgreSQLConfig) PoolConfig() (*pgxpool.Config, error) {
	if cfg.Database == "" {
		return nil, fmt.Errorf("database name is required")
	}
	if cfg.Host == "" {
		return nil, fmt.Errorf("database host is required")
	}
	if cfg.User == "" {
		return nil, fmt.Errorf("database user is required")
	}

	// Build from an empty DSN so passwords with special characters need no escaping
	poolConfig, err := pgxpool.ParseConfig("")
	if err != nil {
		return nil, fmt.Errorf("failed to create connection config: %w", err)
	}

	poolConfig.ConnConfig.Host = cfg.Host
	poolConfig.ConnConfig.Port = uint16(cfg.Port)
	poolConfig.ConnConfig.Database = cfg.Database
	poolConfig.ConnConfig.User = cfg.User
	poolConfig.ConnConfig.Password = cfg.Password
	poolConfig.ConnConfig.ConnectTimeout = cfg.ConnectionTimeout

	if cfg.SSLMode == "disable" {
		poolConfig.ConnConfig.TLSConfig = nil
	}

	if cfg.MaxConnections > 0 {
		poolConfig.MaxConns = cfg.MaxConnections
	}
	if cfg.ConnectionTimeout > 0 {
		poolConfig.MaxConnIdleTime = cfg.ConnectionTimeout * 12
	}
	return poolConfig, nil
}

// NewPostgreSQL creates a pool and checks it with a ping
func NewPostgreSQL(ctx context.Context, cfg PostgreSQLConfig) (*pgxpool.Pool, error) {
	poolConfig, err := cfg.PoolConfig()
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}
