// Package config loads the graphschema service configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/redbco/graphschema/internal/lifecycle"
	"github.com/redbco/graphschema/internal/search"
	"github.com/redbco/graphschema/pkg/database"
	"github.com/redbco/graphschema/pkg/keyring"
	"github.com/redbco/graphschema/pkg/logger"
	"github.com/redbco/graphschema/pkg/schemastore"
)

type Config struct {
	Server    ServerConfig            `yaml:"server"`
	Logging   LoggingConfig           `yaml:"logging"`
	Keyring   KeyringConfig           `yaml:"keyring"`
	Graphs    map[string]GraphConfig  `yaml:"graphs"`
	Search    map[string]SearchConfig `yaml:"search"`
	Readiness ReadinessConfig         `yaml:"readiness"`
	Events    EventsConfig            `yaml:"events"`
}

type ServerConfig struct {
	Port                int           `yaml:"port"`
	MetricsPort         int           `yaml:"metrics_port"`
	ShutdownTimeout     time.Duration `yaml:"shutdown_timeout"`
	HealthCheckInterval time.Duration `yaml:"health_check_interval"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type KeyringConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// GraphConfig is one graph context. Password and PasswordKeyring are
// mutually exclusive; the latter is a "service/user" keyring reference.
type GraphConfig struct {
	Backend         string            `yaml:"backend"`
	Host            string            `yaml:"host"`
	Port            int               `yaml:"port"`
	Database        string            `yaml:"database"`
	Username        string            `yaml:"username"`
	Password        string            `yaml:"password"`
	PasswordKeyring string            `yaml:"password_keyring"`
	SSL             bool              `yaml:"ssl"`
	Options         map[string]string `yaml:"options"`
}

// SearchConfig is an external backend of mixed indices. Its key under
// search is the backend name clients give when ensuring a mixed index.
type SearchConfig struct {
	Type            string   `yaml:"type"`
	Addresses       []string `yaml:"addresses"`
	Username        string   `yaml:"username"`
	Password        string   `yaml:"password"`
	PasswordKeyring string   `yaml:"password_keyring"`
	IndexPrefix     string   `yaml:"index_prefix"`
}

type ReadinessConfig struct {
	InitialInterval time.Duration `yaml:"initial_interval"`
	MaxInterval     time.Duration `yaml:"max_interval"`
	Multiplier      float64       `yaml:"multiplier"`
}

// EventsConfig enables schema change events on Redis when RedisAddress is set
type EventsConfig struct {
	RedisAddress  string `yaml:"redis_address"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	ChannelPrefix string `yaml:"channel_prefix"`
}

// Load reads and validates the configuration file at path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a configuration document, fills defaults and validates it.
// Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default serves a single in-memory graph named "graph"
func Default() *Config {
	cfg := &Config{Graphs: map[string]GraphConfig{"graph": {Backend: "memory"}}}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 50061
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 30 * time.Second
	}
	if c.Server.HealthCheckInterval == 0 {
		c.Server.HealthCheckInterval = 10 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Keyring.Backend == "" {
		c.Keyring.Backend = string(keyring.BackendAuto)
	}
	if c.Keyring.Path == "" {
		c.Keyring.Path = keyring.DefaultPath()
	}

	for name, sc := range c.Search {
		if sc.Type == "" {
			sc.Type = search.TypeElasticsearch
		}
		if sc.IndexPrefix == "" {
			sc.IndexPrefix = "graphschema"
		}
		c.Search[name] = sc
	}

	policy := lifecycle.DefaultPolicy()
	if c.Readiness.InitialInterval == 0 {
		c.Readiness.InitialInterval = policy.InitialInterval
	}
	if c.Readiness.MaxInterval == 0 {
		c.Readiness.MaxInterval = policy.MaxInterval
	}
	if c.Readiness.Multiplier == 0 {
		c.Readiness.Multiplier = policy.Multiplier
	}

	if c.Events.ChannelPrefix == "" {
		c.Events.ChannelPrefix = "graphschema:"
	}
}

// Validate reports every problem of the configuration at once
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Server.MetricsPort < 0 || c.Server.MetricsPort > 65535 {
		errs = append(errs, fmt.Errorf("server.metrics_port %d out of range", c.Server.MetricsPort))
	}
	if c.Server.MetricsPort != 0 && c.Server.MetricsPort == c.Server.Port {
		errs = append(errs, errors.New("server.metrics_port must differ from server.port"))
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	if _, err := keyring.ParseBackend(c.Keyring.Backend); err != nil {
		errs = append(errs, fmt.Errorf("keyring.backend: %w", err))
	}

	if len(c.Graphs) == 0 {
		errs = append(errs, errors.New("at least one graph must be configured under graphs"))
	}
	for _, name := range c.GraphNames() {
		g := c.Graphs[name]
		if g.Backend == "" {
			errs = append(errs, fmt.Errorf("graphs.%s.backend is required", name))
		}
		if g.Password != "" && g.PasswordKeyring != "" {
			errs = append(errs, fmt.Errorf("graphs.%s: password and password_keyring are mutually exclusive", name))
		}
		if g.PasswordKeyring != "" {
			if _, _, err := database.ParseKeyringRef(g.PasswordKeyring); err != nil {
				errs = append(errs, fmt.Errorf("graphs.%s.password_keyring: %w", name, err))
			}
		}
		if g.Port < 0 || g.Port > 65535 {
			errs = append(errs, fmt.Errorf("graphs.%s.port %d out of range", name, g.Port))
		}
	}

	for _, name := range sortedKeys(c.Search) {
		sc := c.Search[name]
		if sc.Type != search.TypeElasticsearch {
			errs = append(errs, fmt.Errorf("search.%s.type %q is not supported", name, sc.Type))
		}
		if len(sc.Addresses) == 0 {
			errs = append(errs, fmt.Errorf("search.%s.addresses is required", name))
		}
		if sc.Password != "" && sc.PasswordKeyring != "" {
			errs = append(errs, fmt.Errorf("search.%s: password and password_keyring are mutually exclusive", name))
		}
		if sc.PasswordKeyring != "" {
			if _, _, err := database.ParseKeyringRef(sc.PasswordKeyring); err != nil {
				errs = append(errs, fmt.Errorf("search.%s.password_keyring: %w", name, err))
			}
		}
	}

	if c.Readiness.InitialInterval < 0 || c.Readiness.MaxInterval < c.Readiness.InitialInterval {
		errs = append(errs, errors.New("readiness intervals must satisfy 0 <= initial_interval <= max_interval"))
	}
	if c.Readiness.Multiplier < 1 {
		errs = append(errs, errors.New("readiness.multiplier must be at least 1"))
	}

	return errors.Join(errs...)
}

// GraphNames lists the configured graph contexts in sorted order
func (c *Config) GraphNames() []string {
	return sortedKeys(c.Graphs)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NeedsKeyring reports whether any graph password lives in the keyring
func (c *Config) NeedsKeyring() bool {
	for _, g := range c.Graphs {
		if g.PasswordKeyring != "" {
			return true
		}
	}
	for _, sc := range c.Search {
		if sc.PasswordKeyring != "" {
			return true
		}
	}
	return false
}

// Credentials opens the configured keyring
func (c *Config) Credentials() (*database.CredentialsManager, error) {
	backend, err := keyring.ParseBackend(c.Keyring.Backend)
	if err != nil {
		return nil, err
	}
	km, err := keyring.NewManager(backend, c.Keyring.Path, keyring.MasterPasswordFromEnv())
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}
	return database.NewCredentialsManager(km), nil
}

// GraphConfigs returns the store configuration of every graph context with
// keyring passwords resolved through creds. creds may be nil when no graph
// uses the keyring.
func (c *Config) GraphConfigs(creds *database.CredentialsManager) ([]schemastore.GraphConfig, error) {
	out := make([]schemastore.GraphConfig, 0, len(c.Graphs))
	for _, name := range c.GraphNames() {
		g := c.Graphs[name]
		password := g.Password
		if g.PasswordKeyring != "" {
			if creds == nil {
				return nil, fmt.Errorf("graphs.%s: password_keyring set but no keyring available", name)
			}
			resolved, err := creds.Resolve(g.PasswordKeyring)
			if err != nil {
				return nil, fmt.Errorf("graphs.%s: %w", name, err)
			}
			password = resolved
		}
		out = append(out, schemastore.GraphConfig{
			Name:     name,
			Backend:  g.Backend,
			Host:     g.Host,
			Port:     g.Port,
			Database: g.Database,
			Username: g.Username,
			Password: password,
			SSL:      g.SSL,
			Options:  g.Options,
		})
	}
	return out, nil
}

// SearchConfigs returns the mixed index backends with keyring passwords
// resolved through creds
func (c *Config) SearchConfigs(creds *database.CredentialsManager) ([]search.Config, error) {
	out := make([]search.Config, 0, len(c.Search))
	for _, name := range sortedKeys(c.Search) {
		sc := c.Search[name]
		password := sc.Password
		if sc.PasswordKeyring != "" {
			if creds == nil {
				return nil, fmt.Errorf("search.%s: password_keyring set but no keyring available", name)
			}
			resolved, err := creds.Resolve(sc.PasswordKeyring)
			if err != nil {
				return nil, fmt.Errorf("search.%s: %w", name, err)
			}
			password = resolved
		}
		out = append(out, search.Config{
			Name:        name,
			Type:        sc.Type,
			Addresses:   sc.Addresses,
			Username:    sc.Username,
			Password:    password,
			IndexPrefix: sc.IndexPrefix,
		})
	}
	return out, nil
}

// ReadinessPolicy returns the polling policy of index readiness waits
func (c *Config) ReadinessPolicy() lifecycle.Policy {
	return lifecycle.Policy{
		InitialInterval: c.Readiness.InitialInterval,
		MaxInterval:     c.Readiness.MaxInterval,
		Multiplier:      c.Readiness.Multiplier,
	}
}

// Flatten renders the configuration as dotted keys. Secrets are left out.
func (c *Config) Flatten() map[string]string {
	out := map[string]string{
		"server.port":                  strconv.Itoa(c.Server.Port),
		"server.metrics_port":          strconv.Itoa(c.Server.MetricsPort),
		"server.shutdown_timeout":      c.Server.ShutdownTimeout.String(),
		"server.health_check_interval": c.Server.HealthCheckInterval.String(),
		"logging.level":                c.Logging.Level,
		"keyring.backend":              c.Keyring.Backend,
		"readiness.initial_interval":   c.Readiness.InitialInterval.String(),
		"readiness.max_interval":       c.Readiness.MaxInterval.String(),
		"readiness.multiplier":         strconv.FormatFloat(c.Readiness.Multiplier, 'g', -1, 64),
		"events.redis_address":         c.Events.RedisAddress,
		"events.channel_prefix":        c.Events.ChannelPrefix,
	}
	for name, g := range c.Graphs {
		prefix := "graphs." + name + "."
		out[prefix+"backend"] = g.Backend
		out[prefix+"host"] = g.Host
		out[prefix+"port"] = strconv.Itoa(g.Port)
		out[prefix+"database"] = g.Database
		out[prefix+"username"] = g.Username
		for k, v := range g.Options {
			out[prefix+"options."+k] = v
		}
	}
	for name, sc := range c.Search {
		prefix := "search." + name + "."
		out[prefix+"type"] = sc.Type
		out[prefix+"addresses"] = strings.Join(sc.Addresses, ",")
		out[prefix+"index_prefix"] = sc.IndexPrefix
	}
	return out
}
