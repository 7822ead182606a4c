package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/redbco/graphschema/pkg/schema"
)

// Elasticsearch keeps one Elasticsearch index per mixed index
type Elasticsearch struct {
	client *elasticsearch.Client
	prefix string
}

func NewElasticsearch(cfg Config) (*Elasticsearch, error) {
	if len(cfg.Addresses) == 0 {
		return nil, errors.New("at least one address is required")
	}
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating Elasticsearch client: %w", err)
	}
	prefix := cfg.IndexPrefix
	if prefix == "" {
		prefix = "graphschema"
	}
	return &Elasticsearch{client: client, prefix: prefix}, nil
}

// IndexName is the Elasticsearch index of a mixed index of a graph context.
// Elasticsearch names are lowercase; anything outside [a-z0-9_-] becomes an
// underscore.
func (e *Elasticsearch) IndexName(graph, index string) string {
	clean := func(s string) string {
		return strings.Map(func(r rune) rune {
			switch {
			case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
				return r
			}
			return '_'
		}, strings.ToLower(s))
	}
	return clean(e.prefix) + "_" + clean(graph) + "__" + clean(index)
}

func fieldMapping(dt schema.DataType) map[string]any {
	switch dt {
	case schema.DataTypeString:
		return map[string]any{"type": "text", "fields": map[string]any{"keyword": map[string]any{"type": "keyword"}}}
	case schema.DataTypeCharacter, schema.DataTypeUUID:
		return map[string]any{"type": "keyword"}
	case schema.DataTypeBoolean:
		return map[string]any{"type": "boolean"}
	case schema.DataTypeInt8:
		return map[string]any{"type": "byte"}
	case schema.DataTypeInt16:
		return map[string]any{"type": "short"}
	case schema.DataTypeInt32:
		return map[string]any{"type": "integer"}
	case schema.DataTypeInt64:
		return map[string]any{"type": "long"}
	case schema.DataTypeFloat32:
		return map[string]any{"type": "float"}
	case schema.DataTypeFloat64:
		return map[string]any{"type": "double"}
	case schema.DataTypeDate:
		return map[string]any{"type": "date"}
	case schema.DataTypeGeoShape:
		return map[string]any{"type": "geo_shape"}
	}
	return map[string]any{"type": "object", "enabled": false}
}

// indexBody is the create-index request of idx
func indexBody(graph string, idx schema.Index) map[string]any {
	props := make(map[string]any, len(idx.Keys))
	for _, k := range idx.Keys {
		props[k.Name] = fieldMapping(k.DataType)
	}
	return map[string]any{
		"mappings": map[string]any{
			"dynamic":    "strict",
			"properties": props,
			"_meta": map[string]any{
				"graph":   graph,
				"index":   idx.Name,
				"element": string(idx.Element),
				"label":   idx.Label(),
			},
		},
	}
}

// responseError classifies an error response; overload and server errors are
// retryable.
func responseError(op, action, name string, status int, msg string) error {
	if status >= http.StatusInternalServerError || status == http.StatusTooManyRequests {
		return schema.NewUnavailableError(op, fmt.Errorf("%s %s: %s", action, name, msg))
	}
	return fmt.Errorf("%s: error response %s %s: %s", op, action, name, msg)
}

func (e *Elasticsearch) Provision(ctx context.Context, graph string, idx schema.Index) error {
	const op = "provision mixed index"
	name := e.IndexName(graph, idx.Name)

	res, err := e.client.Indices.Exists([]string{name}, e.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return schema.NewUnavailableError(op, err)
	}
	res.Body.Close()
	switch res.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
	default:
		return responseError(op, "checking index", name, res.StatusCode, res.Status())
	}

	body, err := json.Marshal(indexBody(graph, idx))
	if err != nil {
		return fmt.Errorf("error marshaling index mapping: %w", err)
	}
	res, err = e.client.Indices.Create(
		name,
		e.client.Indices.Create.WithContext(ctx),
		e.client.Indices.Create.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return schema.NewUnavailableError(op, err)
	}
	defer res.Body.Close()

	if !res.IsError() {
		return nil
	}
	msg := res.String()
	if res.StatusCode == http.StatusBadRequest && strings.Contains(msg, "resource_already_exists_exception") {
		// created concurrently
		return nil
	}
	return responseError(op, "creating index", name, res.StatusCode, msg)
}

func (e *Elasticsearch) Ping(ctx context.Context) error {
	res, err := e.client.Ping(e.client.Ping.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("error response from Elasticsearch: %s", res.String())
	}
	return nil
}

func (e *Elasticsearch) Close() error {
	return nil
}
