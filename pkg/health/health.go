package health

import (
	"sort"
	"sync"
	"time"
)

// Status is the outcome of one or more health checks
type Status int

const (
	StatusUnknown Status = iota
	StatusHealthy
	StatusDegraded
	StatusUnhealthy
)

func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusUnhealthy:
		return "unhealthy"
	}
	return "unknown"
}

// CheckFunc is a function that performs a health check
type CheckFunc func() error

// Check represents a single health check result
type Check struct {
	Name        string
	Status      Status
	Message     string
	LastChecked time.Time
}

// Checker manages health checks for a service
type Checker struct {
	mu          sync.RWMutex
	checks      map[string]*Check
	lastHealthy time.Time
}

// NewChecker creates a new health checker
func NewChecker() *Checker {
	return &Checker{
		checks:      make(map[string]*Check),
		lastHealthy: time.Now(),
	}
}

// RunCheck executes a health check and records its result
func (c *Checker) RunCheck(name string, checkFunc CheckFunc) {
	status := StatusHealthy
	message := "OK"

	if err := checkFunc(); err != nil {
		status = StatusUnhealthy
		message = err.Error()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.checks[name] = &Check{
		Name:        name,
		Status:      status,
		Message:     message,
		LastChecked: time.Now(),
	}

	if c.isHealthy() {
		c.lastHealthy = time.Now()
	}
}

// RunAll executes every check in checks
func (c *Checker) RunAll(checks map[string]CheckFunc) Status {
	for name, fn := range checks {
		c.RunCheck(name, fn)
	}
	return c.GetOverallStatus()
}

// GetOverallStatus is healthy when no check failed, unhealthy when all
// failed and degraded otherwise.
func (c *Checker) GetOverallStatus() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.checks) == 0 {
		return StatusHealthy
	}

	unhealthy := 0
	for _, check := range c.checks {
		if check.Status == StatusUnhealthy {
			unhealthy++
		}
	}

	switch {
	case unhealthy == 0:
		return StatusHealthy
	case unhealthy < len(c.checks):
		return StatusDegraded
	}
	return StatusUnhealthy
}

// GetAllChecks returns all health check results ordered by name
func (c *Checker) GetAllChecks() []*Check {
	c.mu.RLock()
	defer c.mu.RUnlock()

	checks := make([]*Check, 0, len(c.checks))
	for _, check := range c.checks {
		checkCopy := *check
		checks = append(checks, &checkCopy)
	}
	sort.Slice(checks, func(i, j int) bool { return checks[i].Name < checks[j].Name })
	return checks
}

// GetLastHealthyTime returns the last time all checks were healthy
func (c *Checker) GetLastHealthyTime() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastHealthy
}

func (c *Checker) isHealthy() bool {
	for _, check := range c.checks {
		if check.Status != StatusHealthy {
			return false
		}
	}
	return true
}
