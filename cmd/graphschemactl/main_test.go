package main

import (
	"bytes"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"github.com/redbco/graphschema/internal/database/memory"
	"github.com/redbco/graphschema/internal/engine"
	"github.com/redbco/graphschema/internal/lifecycle"
	"github.com/redbco/graphschema/internal/metrics"
	"github.com/redbco/graphschema/internal/router"
	"github.com/redbco/graphschema/pkg/keyring"
	"github.com/redbco/graphschema/pkg/logger"
	"github.com/redbco/graphschema/pkg/schemastore"
)

func startServer(t *testing.T) string {
	t.Helper()

	log := logger.New("graphschemactl-test", "1.0.0")
	log.DisableConsoleOutput()
	r := router.New(map[string]schemastore.Graph{"first": memory.New("first")})
	e := engine.New(r, log,
		engine.WithMetrics(metrics.New(prometheus.NewRegistry())),
		engine.WithReadinessPolicy(lifecycle.Policy{InitialInterval: time.Millisecond, MaxInterval: 5 * time.Millisecond, Multiplier: 2}),
	)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := grpc.NewServer()
	engine.Register(srv, e)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	return lis.Addr().String()
}

func run(t *testing.T, in io.Reader, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetErr(io.Discard)
	if in != nil {
		root.SetIn(in)
	}
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestParseProperty(t *testing.T) {
	tests := []struct {
		in          string
		name        string
		dataType    string
		cardinality string
		wantErr     bool
	}{
		{in: "age", name: "age"},
		{in: "age:Int32", name: "age", dataType: "Int32"},
		{in: "tags:String:SET", name: "tags", dataType: "String", cardinality: "SET"},
		{in: "", wantErr: true},
		{in: ":Int32", wantErr: true},
		{in: "a:b:c:d", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			pk, err := parseProperty(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.name, pk.Name)
			assert.Equal(t, tt.dataType, pk.DataType)
			assert.Equal(t, tt.cardinality, pk.Cardinality)
		})
	}
}

func TestSchemaCommands(t *testing.T) {
	addr := startServer(t)
	base := []string{"--server", addr, "--context", "first"}

	out, err := run(t, nil, append(base, "vertex-labels", "ensure", "user", "-p", "age:Int32", "-p", "name")...)
	require.NoError(t, err)
	assert.Contains(t, out, "user")
	assert.Contains(t, out, "age,name")

	out, err = run(t, nil, append(base, "keys", "get", "age")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Int32")

	out, err = run(t, nil, append(base, "-o", "yaml", "keys", "list")...)
	require.NoError(t, err)
	assert.Contains(t, out, "name: age")
	assert.Contains(t, out, "name: name")

	out, err = run(t, nil, append(base, "el", "ensure", "follows", "--multiplicity", "SIMPLE")...)
	require.NoError(t, err)
	assert.Contains(t, out, "SIMPLE")

	out, err = run(t, nil, append(base, "indices", "ensure-composite", "byAge", "--label", "user", "-k", "age")...)
	require.NoError(t, err)
	assert.Contains(t, out, "INSTALLED")

	out, err = run(t, nil, append(base, "indices", "enable", "byAge", "--wait", "--wait-timeout", "5s")...)
	require.NoError(t, err)
	assert.Contains(t, out, "ENABLED")

	out, err = run(t, nil, append(base, "indices", "list", "--label", "user")...)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "byAge")

	out, err = run(t, nil, append(base, "indices", "readiness", "byAge")...)
	require.NoError(t, err)
	assert.Contains(t, out, "age")
	assert.Contains(t, out, "true")
}

func TestCommandErrors(t *testing.T) {
	addr := startServer(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "missing context", args: []string{"--server", addr, "keys", "list"}, want: "--context"},
		{name: "unknown graph", args: []string{"--server", addr, "-c", "nope", "keys", "list"}, want: "NotFound"},
		{name: "unknown element", args: []string{"--server", addr, "-c", "first", "indices", "-e", "face", "list"}, want: "unknown element"},
		{name: "unknown output", args: []string{"--server", addr, "-c", "first", "-o", "xml", "keys", "list"}, want: "unknown output format"},
		{name: "bad property", args: []string{"--server", addr, "-c", "first", "vl", "ensure", "x", "-p", "a:b:c:d"}, want: "invalid property"},
		{
			name: "wait longer than request",
			args: []string{"--server", addr, "-c", "first", "--timeout", "1s", "indices", "enable", "x", "--wait", "--wait-timeout", "2s"},
			want: "must be shorter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, nil, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCredentialsCommands(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keyring.json")
	cfgPath := filepath.Join(dir, "graphschema.yaml")
	cfg := "keyring:\n  backend: file\n  path: " + path + "\ngraphs:\n  first:\n    backend: memory\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))
	t.Setenv("GRAPHSCHEMA_KEYRING_PASSWORD", "test-master")

	out, err := run(t, strings.NewReader("s3cret\n"), "--config", cfgPath, "credentials", "set", "graphschema/first")
	require.NoError(t, err)
	assert.Contains(t, out, "Stored password graphschema/first")

	fk, err := keyring.NewFileKeyring(path, "test-master")
	require.NoError(t, err)
	password, err := fk.Get("graphschema", "first")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", password)

	_, err = run(t, strings.NewReader("\n"), "--config", cfgPath, "credentials", "set", "graphschema/first")
	assert.ErrorContains(t, err, "empty password")

	_, err = run(t, nil, "--config", cfgPath, "credentials", "delete", "graphschema/first")
	require.NoError(t, err)
	_, err = fk.Get("graphschema", "first")
	assert.ErrorIs(t, err, keyring.ErrNotFound)
}

func TestVersion(t *testing.T) {
	out, err := run(t, nil, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "graphschemactl dev")
}
