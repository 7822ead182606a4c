package graphschemav1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ManagementForPropertyKeys_EnsurePropertyKey_FullMethodName         = "/graphschema.v1.ManagementForPropertyKeys/EnsurePropertyKey"
	ManagementForPropertyKeys_EnsurePropertyKeyForLabel_FullMethodName = "/graphschema.v1.ManagementForPropertyKeys/EnsurePropertyKeyForLabel"
	ManagementForPropertyKeys_GetPropertyKeys_FullMethodName           = "/graphschema.v1.ManagementForPropertyKeys/GetPropertyKeys"
	ManagementForPropertyKeys_GetPropertyKeyByName_FullMethodName      = "/graphschema.v1.ManagementForPropertyKeys/GetPropertyKeyByName"
)

// ManagementForPropertyKeysClient is the client API for the ManagementForPropertyKeys service.
type ManagementForPropertyKeysClient interface {
	EnsurePropertyKey(ctx context.Context, in *EnsurePropertyKeyRequest, opts ...grpc.CallOption) (*PropertyKey, error)
	EnsurePropertyKeyForLabel(ctx context.Context, in *EnsurePropertyKeyForLabelRequest, opts ...grpc.CallOption) (*PropertyKey, error)
	GetPropertyKeys(ctx context.Context, in *GetPropertyKeysRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[PropertyKey], error)
	GetPropertyKeyByName(ctx context.Context, in *GetPropertyKeyByNameRequest, opts ...grpc.CallOption) (*PropertyKey, error)
}

type managementForPropertyKeysClient struct {
	cc grpc.ClientConnInterface
}

func NewManagementForPropertyKeysClient(cc grpc.ClientConnInterface) ManagementForPropertyKeysClient {
	return &managementForPropertyKeysClient{cc}
}

func (c *managementForPropertyKeysClient) EnsurePropertyKey(ctx context.Context, in *EnsurePropertyKeyRequest, opts ...grpc.CallOption) (*PropertyKey, error) {
	out := new(PropertyKey)
	err := c.cc.Invoke(ctx, ManagementForPropertyKeys_EnsurePropertyKey_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *managementForPropertyKeysClient) EnsurePropertyKeyForLabel(ctx context.Context, in *EnsurePropertyKeyForLabelRequest, opts ...grpc.CallOption) (*PropertyKey, error) {
	out := new(PropertyKey)
	err := c.cc.Invoke(ctx, ManagementForPropertyKeys_EnsurePropertyKeyForLabel_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *managementForPropertyKeysClient) GetPropertyKeys(ctx context.Context, in *GetPropertyKeysRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[PropertyKey], error) {
	stream, err := c.cc.NewStream(ctx, &ManagementForPropertyKeys_ServiceDesc.Streams[0], ManagementForPropertyKeys_GetPropertyKeys_FullMethodName, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[GetPropertyKeysRequest, PropertyKey]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

func (c *managementForPropertyKeysClient) GetPropertyKeyByName(ctx context.Context, in *GetPropertyKeyByNameRequest, opts ...grpc.CallOption) (*PropertyKey, error) {
	out := new(PropertyKey)
	err := c.cc.Invoke(ctx, ManagementForPropertyKeys_GetPropertyKeyByName_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ManagementForPropertyKeysServer is the server API for the ManagementForPropertyKeys service.
type ManagementForPropertyKeysServer interface {
	EnsurePropertyKey(context.Context, *EnsurePropertyKeyRequest) (*PropertyKey, error)
	EnsurePropertyKeyForLabel(context.Context, *EnsurePropertyKeyForLabelRequest) (*PropertyKey, error)
	GetPropertyKeys(*GetPropertyKeysRequest, grpc.ServerStreamingServer[PropertyKey]) error
	GetPropertyKeyByName(context.Context, *GetPropertyKeyByNameRequest) (*PropertyKey, error)
	mustEmbedUnimplementedManagementForPropertyKeysServer()
}

// UnimplementedManagementForPropertyKeysServer must be embedded by implementations.
type UnimplementedManagementForPropertyKeysServer struct{}

func (UnimplementedManagementForPropertyKeysServer) EnsurePropertyKey(context.Context, *EnsurePropertyKeyRequest) (*PropertyKey, error) {
	return nil, status.Errorf(codes.Unimplemented, "method EnsurePropertyKey not implemented")
}
func (UnimplementedManagementForPropertyKeysServer) EnsurePropertyKeyForLabel(context.Context, *EnsurePropertyKeyForLabelRequest) (*PropertyKey, error) {
	return nil, status.Errorf(codes.Unimplemented, "method EnsurePropertyKeyForLabel not implemented")
}
func (UnimplementedManagementForPropertyKeysServer) GetPropertyKeys(*GetPropertyKeysRequest, grpc.ServerStreamingServer[PropertyKey]) error {
	return status.Errorf(codes.Unimplemented, "method GetPropertyKeys not implemented")
}
func (UnimplementedManagementForPropertyKeysServer) GetPropertyKeyByName(context.Context, *GetPropertyKeyByNameRequest) (*PropertyKey, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetPropertyKeyByName not implemented")
}
func (UnimplementedManagementForPropertyKeysServer) mustEmbedUnimplementedManagementForPropertyKeysServer() {}

func RegisterManagementForPropertyKeysServer(s grpc.ServiceRegistrar, srv ManagementForPropertyKeysServer) {
	s.RegisterService(&ManagementForPropertyKeys_ServiceDesc, srv)
}

func _ManagementForPropertyKeys_EnsurePropertyKey_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(EnsurePropertyKeyRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ManagementForPropertyKeysServer).EnsurePropertyKey(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ManagementForPropertyKeys_EnsurePropertyKey_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ManagementForPropertyKeysServer).EnsurePropertyKey(ctx, req.(*EnsurePropertyKeyRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ManagementForPropertyKeys_EnsurePropertyKeyForLabel_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(EnsurePropertyKeyForLabelRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ManagementForPropertyKeysServer).EnsurePropertyKeyForLabel(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ManagementForPropertyKeys_EnsurePropertyKeyForLabel_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ManagementForPropertyKeysServer).EnsurePropertyKeyForLabel(ctx, req.(*EnsurePropertyKeyForLabelRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ManagementForPropertyKeys_GetPropertyKeys_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(GetPropertyKeysRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ManagementForPropertyKeysServer).GetPropertyKeys(m, &grpc.GenericServerStream[GetPropertyKeysRequest, PropertyKey]{ServerStream: stream})
}

func _ManagementForPropertyKeys_GetPropertyKeyByName_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetPropertyKeyByNameRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ManagementForPropertyKeysServer).GetPropertyKeyByName(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ManagementForPropertyKeys_GetPropertyKeyByName_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ManagementForPropertyKeysServer).GetPropertyKeyByName(ctx, req.(*GetPropertyKeyByNameRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// ManagementForPropertyKeys_ServiceDesc is the grpc.ServiceDesc for the ManagementForPropertyKeys service.
var ManagementForPropertyKeys_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "graphschema.v1.ManagementForPropertyKeys",
	HandlerType: (*ManagementForPropertyKeysServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "EnsurePropertyKey",
			Handler:    _ManagementForPropertyKeys_EnsurePropertyKey_Handler,
		},
		{
			MethodName: "EnsurePropertyKeyForLabel",
			Handler:    _ManagementForPropertyKeys_EnsurePropertyKeyForLabel_Handler,
		},
		{
			MethodName: "GetPropertyKeyByName",
			Handler:    _ManagementForPropertyKeys_GetPropertyKeyByName_Handler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "GetPropertyKeys",
			Handler:       _ManagementForPropertyKeys_GetPropertyKeys_Handler,
			ServerStreams: true,
		},
	},
}
