package config

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// Config is the flat key/value view of the service configuration. Keys are
// dotted paths such as "server.port" or "graphs.first.backend".
type Config struct {
	mu     sync.RWMutex
	values map[string]string

	// Keys, or key prefixes ending in ".", whose change requires a restart
	restartKeys []string
}

// New creates a new configuration manager
func New() *Config {
	return &Config{
		values: make(map[string]string),
		restartKeys: []string{
			"server.port",
			"server.metrics_port",
			"graphs.",
		},
	}
}

// Get retrieves a configuration value
func (c *Config) Get(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.values[key]
}

// GetDefault retrieves a value or fallback when unset
func (c *Config) GetDefault(key, fallback string) string {
	if v := c.Get(key); v != "" {
		return v
	}
	return fallback
}

// GetInt retrieves an integer value or fallback when unset or malformed
func (c *Config) GetInt(key string, fallback int) int {
	v, err := strconv.Atoi(c.Get(key))
	if err != nil {
		return fallback
	}
	return v
}

// GetDuration retrieves a duration such as "250ms" or fallback
func (c *Config) GetDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(c.Get(key))
	if err != nil {
		return fallback
	}
	return v
}

// GetAll returns a copy of all configuration values
func (c *Config) GetAll() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]string, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

// Update updates configuration values
func (c *Config) Update(values map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k, v := range values {
		c.values[k] = v
	}
}

// RequiresRestart checks if any restart key differs from oldConfig
func (c *Config) RequiresRestart(oldConfig map[string]string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, key := range c.restartKeys {
		if !strings.HasSuffix(key, ".") {
			if oldConfig[key] != c.values[key] {
				return true
			}
			continue
		}
		if prefixChanged(key, oldConfig, c.values) || prefixChanged(key, c.values, oldConfig) {
			return true
		}
	}

	return false
}

func prefixChanged(prefix string, a, b map[string]string) bool {
	for k, v := range a {
		if strings.HasPrefix(k, prefix) {
			if other, ok := b[k]; !ok || other != v {
				return true
			}
		}
	}
	return false
}

// SetRestartKeys sets which configuration keys require restart when changed
func (c *Config) SetRestartKeys(keys []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.restartKeys = keys
}
