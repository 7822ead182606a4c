package schemastore

import (
	"fmt"
	"strconv"
)

// GraphConfig describes how to reach one graph instance
type GraphConfig struct {
	// Name is the graph context name clients use to address the instance
	Name     string
	Backend  string
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSL      bool
	Options  map[string]string
}

// Option returns a backend-specific option or the fallback
func (c GraphConfig) Option(key, fallback string) string {
	if v, ok := c.Options[key]; ok && v != "" {
		return v
	}
	return fallback
}

// BoolOption returns a backend-specific boolean option or the fallback
func (c GraphConfig) BoolOption(key string, fallback bool) bool {
	v, ok := c.Options[key]
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// Address returns host:port
func (c GraphConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
