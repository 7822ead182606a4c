// Package grpc builds client connections to graphschema servers.
package grpc

import (
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
)

// ClientOptions tune a client connection
type ClientOptions struct {
	KeepaliveTime    time.Duration
	KeepaliveTimeout time.Duration
	UserAgent        string

	// Appended after the defaults, so they win on conflict
	DialOptions []grpc.DialOption
}

// DefaultClientOptions keeps idle management connections alive. The server's
// enforcement policy allows pings every 5s.
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		KeepaliveTime:    10 * time.Second,
		KeepaliveTimeout: 3 * time.Second,
	}
}

func (o ClientOptions) dialOptions() []grpc.DialOption {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if o.KeepaliveTime > 0 {
		dialOpts = append(dialOpts, grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                o.KeepaliveTime,
			Timeout:             o.KeepaliveTimeout,
			PermitWithoutStream: true,
		}))
	}
	if o.UserAgent != "" {
		dialOpts = append(dialOpts, grpc.WithUserAgent(o.UserAgent))
	}
	return append(dialOpts, o.DialOptions...)
}

// NewClient creates a lazily connecting client for addr
func NewClient(addr string, opts ClientOptions) (*grpc.ClientConn, error) {
	if addr == "" {
		return nil, fmt.Errorf("empty server address")
	}
	conn, err := grpc.NewClient(addr, opts.dialOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client for %s: %w", addr, err)
	}
	return conn, nil
}
