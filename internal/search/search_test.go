package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redbco/graphschema/pkg/schema"
)

// fakeCluster answers the index API calls the provisioner makes
type fakeCluster struct {
	mu          sync.Mutex
	indices     map[string]map[string]any
	creates     int
	existsCode  int
	createCode  int
	createError string
}

func (f *fakeCluster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	name := strings.TrimPrefix(r.URL.Path, "/")

	switch r.Method {
	case http.MethodHead:
		if f.existsCode != 0 && name != "" {
			w.WriteHeader(f.existsCode)
			return
		}
		if _, ok := f.indices[name]; ok || name == "" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	case http.MethodPut:
		f.creates++
		if f.createCode != 0 {
			w.WriteHeader(f.createCode)
			io.WriteString(w, `{"error":{"type":"`+f.createError+`"},"status":`+strconv.Itoa(f.createCode)+`}`)
			return
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.indices[name] = body
		io.WriteString(w, `{"acknowledged":true,"shards_acknowledged":true,"index":"`+name+`"}`)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newCluster(t *testing.T) (*fakeCluster, *Elasticsearch) {
	t.Helper()
	f := &fakeCluster{indices: map[string]map[string]any{}}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	es, err := NewElasticsearch(Config{Name: "search", Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return f, es
}

func mixedIndex() schema.Index {
	return schema.Index{
		ID:           7,
		Name:         "userSearch",
		Element:      schema.ElementVertex,
		Type:         schema.IndexMixed,
		ConstraintID: 3,
		Constraint:   "user",
		Backend:      "search",
		Keys: []schema.PropertyKey{
			{ID: 1, Name: "name", DataType: schema.DataTypeString},
			{ID: 2, Name: "age", DataType: schema.DataTypeInt32},
		},
	}
}

func TestIndexName(t *testing.T) {
	es := &Elasticsearch{prefix: "graphschema"}
	tests := []struct {
		graph, index, want string
	}{
		{graph: "first", index: "userSearch", want: "graphschema_first__usersearch"},
		{graph: "My Graph", index: "by/name", want: "graphschema_my_graph__by_name"},
		{graph: "a-b", index: "c_d", want: "graphschema_a-b__c_d"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, es.IndexName(tt.graph, tt.index))
	}
}

func TestFieldMapping(t *testing.T) {
	tests := []struct {
		dt   schema.DataType
		want string
	}{
		{schema.DataTypeString, "text"},
		{schema.DataTypeUUID, "keyword"},
		{schema.DataTypeInt8, "byte"},
		{schema.DataTypeInt64, "long"},
		{schema.DataTypeFloat64, "double"},
		{schema.DataTypeDate, "date"},
		{schema.DataTypeGeoShape, "geo_shape"},
		{schema.DataTypeObject, "object"},
	}
	for _, tt := range tests {
		t.Run(string(tt.dt), func(t *testing.T) {
			assert.Equal(t, tt.want, fieldMapping(tt.dt)["type"])
		})
	}
}

func TestProvisionCreatesOnce(t *testing.T) {
	f, es := newCluster(t)
	ctx := context.Background()

	require.NoError(t, es.Provision(ctx, "first", mixedIndex()))
	require.NoError(t, es.Provision(ctx, "first", mixedIndex()))
	assert.Equal(t, 1, f.creates)

	body, ok := f.indices["graphschema_first__usersearch"]
	require.True(t, ok)
	mappings := body["mappings"].(map[string]any)
	props := mappings["properties"].(map[string]any)
	assert.Equal(t, "integer", props["age"].(map[string]any)["type"])
	assert.Equal(t, "text", props["name"].(map[string]any)["type"])
	assert.Equal(t, "user", mappings["_meta"].(map[string]any)["label"])
}

func TestProvisionErrors(t *testing.T) {
	tests := []struct {
		name    string
		exists  int
		code    int
		typ     string
		ok      bool
		kind    schema.Kind
		creates int
	}{
		{name: "created concurrently", code: http.StatusBadRequest, typ: "resource_already_exists_exception", ok: true, creates: 1},
		{name: "bad mapping", code: http.StatusBadRequest, typ: "mapper_parsing_exception", kind: schema.KindUnknown, creates: 1},
		{name: "cluster down", code: http.StatusServiceUnavailable, typ: "cluster_block_exception", kind: schema.KindUnavailable, creates: 1},
		{name: "check overloaded", exists: http.StatusTooManyRequests, kind: schema.KindUnavailable},
		{name: "check failing", exists: http.StatusBadGateway, kind: schema.KindUnavailable},
		{name: "check unauthorized", exists: http.StatusUnauthorized, kind: schema.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, es := newCluster(t)
			f.existsCode = tt.exists
			f.createCode = tt.code
			f.createError = tt.typ

			err := es.Provision(context.Background(), "first", mixedIndex())
			assert.Equal(t, tt.creates, f.creates)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.kind, schema.KindOf(err))
		})
	}
}

func TestPing(t *testing.T) {
	_, es := newCluster(t)
	assert.NoError(t, es.Ping(context.Background()))
}

type recordingProvisioner struct {
	provisioned []string
	closed      bool
}

func (p *recordingProvisioner) Provision(_ context.Context, graph string, idx schema.Index) error {
	p.provisioned = append(p.provisioned, graph+"/"+idx.Name)
	return nil
}

func (p *recordingProvisioner) Ping(context.Context) error { return nil }

func (p *recordingProvisioner) Close() error {
	p.closed = true
	return nil
}

func TestSetRoutesByBackend(t *testing.T) {
	p := &recordingProvisioner{}
	s := NewSet(map[string]Provisioner{"search": p})
	ctx := context.Background()

	idx := mixedIndex()
	require.NoError(t, s.Provision(ctx, "first", idx))

	other := mixedIndex()
	other.Backend = "lucene"
	require.NoError(t, s.Provision(ctx, "first", other))

	composite := mixedIndex()
	composite.Type = schema.IndexComposite
	require.NoError(t, s.Provision(ctx, "first", composite))

	assert.Equal(t, []string{"first/userSearch"}, p.provisioned)
	assert.Equal(t, []string{"search"}, s.Names())
	assert.NoError(t, s.Ping(ctx, "search"))
	assert.ErrorIs(t, s.Ping(ctx, "lucene"), schema.ErrNotFound)

	require.NoError(t, s.Close())
	assert.True(t, p.closed)
}

func TestOpen(t *testing.T) {
	tests := []struct {
		name string
		cfgs []Config
		want string
	}{
		{name: "no address", cfgs: []Config{{Name: "search"}}, want: "address"},
		{name: "unknown type", cfgs: []Config{{Name: "search", Type: "solr", Addresses: []string{"http://x"}}}, want: "unknown search backend type"},
		{
			name: "duplicate",
			cfgs: []Config{
				{Name: "search", Addresses: []string{"http://x"}},
				{Name: "search", Addresses: []string{"http://y"}},
			},
			want: "configured twice",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(tt.cfgs)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	s, err := Open([]Config{{Name: "search", Addresses: []string{"http://localhost:9200"}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"search"}, s.Names())
}
