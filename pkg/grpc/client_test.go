package grpc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
)

func TestDialOptions(t *testing.T) {
	tests := []struct {
		name string
		opts ClientOptions
		want int
	}{
		{name: "defaults", opts: DefaultClientOptions(), want: 2},
		{name: "no keepalive", opts: ClientOptions{}, want: 1},
		{name: "user agent", opts: ClientOptions{UserAgent: "test/1"}, want: 2},
		{
			name: "extra options",
			opts: ClientOptions{KeepaliveTime: time.Second, DialOptions: []grpc.DialOption{grpc.WithAuthority("x")}},
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, tt.opts.dialOptions(), tt.want)
		})
	}
}

func TestNewClient(t *testing.T) {
	_, err := NewClient("", DefaultClientOptions())
	assert.Error(t, err)

	conn, err := NewClient("localhost:50061", DefaultClientOptions())
	require.NoError(t, err)
	assert.NoError(t, conn.Close())
}
