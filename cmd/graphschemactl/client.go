package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	graphschemav1 "github.com/redbco/graphschema/api/graphschema/v1"
	gsgrpc "github.com/redbco/graphschema/pkg/grpc"
)

type client struct {
	conn     *grpc.ClientConn
	keys     graphschemav1.ManagementForPropertyKeysClient
	vertices graphschemav1.ManagementForVertexLabelsClient
	edges    graphschemav1.ManagementForEdgeLabelsClient
}

// indexClient is the index surface shared by the vertex and edge services
type indexClient interface {
	EnsureCompositeIndex(ctx context.Context, in *graphschemav1.EnsureCompositeIndexRequest, opts ...grpc.CallOption) (*graphschemav1.CompositeIndex, error)
	EnsureMixedIndex(ctx context.Context, in *graphschemav1.EnsureMixedIndexRequest, opts ...grpc.CallOption) (*graphschemav1.MixedIndex, error)
	GetCompositeIndexByName(ctx context.Context, in *graphschemav1.GetIndexByNameRequest, opts ...grpc.CallOption) (*graphschemav1.CompositeIndex, error)
	GetCompositeIndices(ctx context.Context, in *graphschemav1.GetIndicesRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[graphschemav1.CompositeIndex], error)
	GetMixedIndices(ctx context.Context, in *graphschemav1.GetIndicesRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[graphschemav1.MixedIndex], error)
	GetIndexReadiness(ctx context.Context, in *graphschemav1.GetIndexReadinessRequest, opts ...grpc.CallOption) (*graphschemav1.IndexReadiness, error)
	EnableCompositeIndex(ctx context.Context, in *graphschemav1.EnableCompositeIndexRequest, opts ...grpc.CallOption) (*graphschemav1.CompositeIndex, error)
}

func (o *options) dial() (*client, error) {
	copts := gsgrpc.DefaultClientOptions()
	copts.UserAgent = "graphschemactl/" + Version
	conn, err := gsgrpc.NewClient(o.server, copts)
	if err != nil {
		return nil, err
	}
	return &client{
		conn:     conn,
		keys:     graphschemav1.NewManagementForPropertyKeysClient(conn),
		vertices: graphschemav1.NewManagementForVertexLabelsClient(conn),
		edges:    graphschemav1.NewManagementForEdgeLabelsClient(conn),
	}, nil
}

func (c *client) Close() error {
	return c.conn.Close()
}

func (c *client) indices(element string) (indexClient, error) {
	switch strings.ToLower(element) {
	case "vertex", "":
		return c.vertices, nil
	case "edge":
		return c.edges, nil
	}
	return nil, fmt.Errorf("unknown element %q, expected vertex or edge", element)
}

// call runs fn with a connected client and a request context bounded by
// --timeout. Every schema command requires --context.
func (o *options) call(cmd *cobra.Command, fn func(ctx context.Context, c *client) error) error {
	if o.graph == "" {
		return errors.New("a graph context is required, set it with --context")
	}
	c, err := o.dial()
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), o.timeout)
	defer cancel()
	return fn(ctx, c)
}

func recvAll[T any](stream grpc.ServerStreamingClient[T], err error) ([]*T, error) {
	if err != nil {
		return nil, err
	}
	var out []*T
	for {
		msg, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, msg)
	}
}
