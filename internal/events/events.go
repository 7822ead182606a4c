// Package events announces committed schema changes to other processes.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Object names the kind of schema object an event is about
type Object string

const (
	ObjectPropertyKey Object = "property_key"
	ObjectVertexLabel Object = "vertex_label"
	ObjectEdgeLabel   Object = "edge_label"
	ObjectIndex       Object = "index"
)

// SchemaChanged is published after a mutation commits
type SchemaChanged struct {
	Graph     string    `json:"graph"`
	Operation string    `json:"operation"`
	Object    Object    `json:"object"`
	Name      string    `json:"name"`
	ID        int64     `json:"id,omitempty"`
	Status    string    `json:"status,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	Time      time.Time `json:"time"`
}

// Publisher delivers schema change events
type Publisher interface {
	Publish(ctx context.Context, ev SchemaChanged) error
	Close() error
}

// Nop drops every event
type Nop struct{}

func (Nop) Publish(context.Context, SchemaChanged) error { return nil }
func (Nop) Close() error                                 { return nil }

// RedisPublisher publishes events as JSON on one pub/sub channel per graph
type RedisPublisher struct {
	client *redis.Client
	prefix string
}

// NewRedisPublisher publishes through client on channels named prefix + graph
func NewRedisPublisher(client *redis.Client, prefix string) *RedisPublisher {
	return &RedisPublisher{client: client, prefix: prefix}
}

// Channel returns the channel events of a graph are published on
func (p *RedisPublisher) Channel(graph string) string {
	return p.prefix + graph
}

func (p *RedisPublisher) Publish(ctx context.Context, ev SchemaChanged) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode schema event: %w", err)
	}
	if err := p.client.Publish(ctx, p.Channel(ev.Graph), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish schema event: %w", err)
	}
	return nil
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

// Recorder keeps published events in memory
type Recorder struct {
	mu     sync.Mutex
	events []SchemaChanged
}

func (r *Recorder) Publish(_ context.Context, ev SchemaChanged) error {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
	return nil
}

func (r *Recorder) Close() error { return nil }

// Events returns a copy of everything published so far
func (r *Recorder) Events() []SchemaChanged {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]SchemaChanged(nil), r.events...)
}
