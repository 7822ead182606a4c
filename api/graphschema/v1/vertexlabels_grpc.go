package graphschemav1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ManagementForVertexLabels_EnsureVertexLabel_FullMethodName       = "/graphschema.v1.ManagementForVertexLabels/EnsureVertexLabel"
	ManagementForVertexLabels_GetVertexLabels_FullMethodName         = "/graphschema.v1.ManagementForVertexLabels/GetVertexLabels"
	ManagementForVertexLabels_GetVertexLabelsByName_FullMethodName   = "/graphschema.v1.ManagementForVertexLabels/GetVertexLabelsByName"
	ManagementForVertexLabels_EnsureCompositeIndex_FullMethodName    = "/graphschema.v1.ManagementForVertexLabels/EnsureCompositeIndex"
	ManagementForVertexLabels_EnsureMixedIndex_FullMethodName        = "/graphschema.v1.ManagementForVertexLabels/EnsureMixedIndex"
	ManagementForVertexLabels_GetCompositeIndexByName_FullMethodName = "/graphschema.v1.ManagementForVertexLabels/GetCompositeIndexByName"
	ManagementForVertexLabels_GetCompositeIndices_FullMethodName     = "/graphschema.v1.ManagementForVertexLabels/GetCompositeIndices"
	ManagementForVertexLabels_GetMixedIndices_FullMethodName         = "/graphschema.v1.ManagementForVertexLabels/GetMixedIndices"
	ManagementForVertexLabels_GetIndexReadiness_FullMethodName       = "/graphschema.v1.ManagementForVertexLabels/GetIndexReadiness"
	ManagementForVertexLabels_EnableCompositeIndex_FullMethodName    = "/graphschema.v1.ManagementForVertexLabels/EnableCompositeIndex"
)

// ManagementForVertexLabelsClient is the client API for the ManagementForVertexLabels service.
type ManagementForVertexLabelsClient interface {
	EnsureVertexLabel(ctx context.Context, in *EnsureVertexLabelRequest, opts ...grpc.CallOption) (*VertexLabel, error)
	GetVertexLabels(ctx context.Context, in *GetVertexLabelsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[VertexLabel], error)
	GetVertexLabelsByName(ctx context.Context, in *GetVertexLabelsByNameRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[VertexLabel], error)
	EnsureCompositeIndex(ctx context.Context, in *EnsureCompositeIndexRequest, opts ...grpc.CallOption) (*CompositeIndex, error)
	EnsureMixedIndex(ctx context.Context, in *EnsureMixedIndexRequest, opts ...grpc.CallOption) (*MixedIndex, error)
	GetCompositeIndexByName(ctx context.Context, in *GetIndexByNameRequest, opts ...grpc.CallOption) (*CompositeIndex, error)
	GetCompositeIndices(ctx context.Context, in *GetIndicesRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[CompositeIndex], error)
	GetMixedIndices(ctx context.Context, in *GetIndicesRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[MixedIndex], error)
	GetIndexReadiness(ctx context.Context, in *GetIndexReadinessRequest, opts ...grpc.CallOption) (*IndexReadiness, error)
	EnableCompositeIndex(ctx context.Context, in *EnableCompositeIndexRequest, opts ...grpc.CallOption) (*CompositeIndex, error)
}

type managementForVertexLabelsClient struct {
	cc grpc.ClientConnInterface
}

func NewManagementForVertexLabelsClient(cc grpc.ClientConnInterface) ManagementForVertexLabelsClient {
	return &managementForVertexLabelsClient{cc}
}

func (c *managementForVertexLabelsClient) EnsureVertexLabel(ctx context.Context, in *EnsureVertexLabelRequest, opts ...grpc.CallOption) (*VertexLabel, error) {
	out := new(VertexLabel)
	err := c.cc.Invoke(ctx, ManagementForVertexLabels_EnsureVertexLabel_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *managementForVertexLabelsClient) GetVertexLabels(ctx context.Context, in *GetVertexLabelsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[VertexLabel], error) {
	stream, err := c.cc.NewStream(ctx, &ManagementForVertexLabels_ServiceDesc.Streams[0], ManagementForVertexLabels_GetVertexLabels_FullMethodName, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[GetVertexLabelsRequest, VertexLabel]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

func (c *managementForVertexLabelsClient) GetVertexLabelsByName(ctx context.Context, in *GetVertexLabelsByNameRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[VertexLabel], error) {
	stream, err := c.cc.NewStream(ctx, &ManagementForVertexLabels_ServiceDesc.Streams[1], ManagementForVertexLabels_GetVertexLabelsByName_FullMethodName, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[GetVertexLabelsByNameRequest, VertexLabel]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

func (c *managementForVertexLabelsClient) EnsureCompositeIndex(ctx context.Context, in *EnsureCompositeIndexRequest, opts ...grpc.CallOption) (*CompositeIndex, error) {
	out := new(CompositeIndex)
	err := c.cc.Invoke(ctx, ManagementForVertexLabels_EnsureCompositeIndex_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *managementForVertexLabelsClient) EnsureMixedIndex(ctx context.Context, in *EnsureMixedIndexRequest, opts ...grpc.CallOption) (*MixedIndex, error) {
	out := new(MixedIndex)
	err := c.cc.Invoke(ctx, ManagementForVertexLabels_EnsureMixedIndex_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *managementForVertexLabelsClient) GetCompositeIndexByName(ctx context.Context, in *GetIndexByNameRequest, opts ...grpc.CallOption) (*CompositeIndex, error) {
	out := new(CompositeIndex)
	err := c.cc.Invoke(ctx, ManagementForVertexLabels_GetCompositeIndexByName_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *managementForVertexLabelsClient) GetCompositeIndices(ctx context.Context, in *GetIndicesRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[CompositeIndex], error) {
	stream, err := c.cc.NewStream(ctx, &ManagementForVertexLabels_ServiceDesc.Streams[2], ManagementForVertexLabels_GetCompositeIndices_FullMethodName, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[GetIndicesRequest, CompositeIndex]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

func (c *managementForVertexLabelsClient) GetMixedIndices(ctx context.Context, in *GetIndicesRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[MixedIndex], error) {
	stream, err := c.cc.NewStream(ctx, &ManagementForVertexLabels_ServiceDesc.Streams[3], ManagementForVertexLabels_GetMixedIndices_FullMethodName, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[GetIndicesRequest, MixedIndex]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

func (c *managementForVertexLabelsClient) GetIndexReadiness(ctx context.Context, in *GetIndexReadinessRequest, opts ...grpc.CallOption) (*IndexReadiness, error) {
	out := new(IndexReadiness)
	err := c.cc.Invoke(ctx, ManagementForVertexLabels_GetIndexReadiness_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *managementForVertexLabelsClient) EnableCompositeIndex(ctx context.Context, in *EnableCompositeIndexRequest, opts ...grpc.CallOption) (*CompositeIndex, error) {
	out := new(CompositeIndex)
	err := c.cc.Invoke(ctx, ManagementForVertexLabels_EnableCompositeIndex_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ManagementForVertexLabelsServer is the server API for the ManagementForVertexLabels service.
type ManagementForVertexLabelsServer interface {
	EnsureVertexLabel(context.Context, *EnsureVertexLabelRequest) (*VertexLabel, error)
	GetVertexLabels(*GetVertexLabelsRequest, grpc.ServerStreamingServer[VertexLabel]) error
	GetVertexLabelsByName(*GetVertexLabelsByNameRequest, grpc.ServerStreamingServer[VertexLabel]) error
	EnsureCompositeIndex(context.Context, *EnsureCompositeIndexRequest) (*CompositeIndex, error)
	EnsureMixedIndex(context.Context, *EnsureMixedIndexRequest) (*MixedIndex, error)
	GetCompositeIndexByName(context.Context, *GetIndexByNameRequest) (*CompositeIndex, error)
	GetCompositeIndices(*GetIndicesRequest, grpc.ServerStreamingServer[CompositeIndex]) error
	GetMixedIndices(*GetIndicesRequest, grpc.ServerStreamingServer[MixedIndex]) error
	GetIndexReadiness(context.Context, *GetIndexReadinessRequest) (*IndexReadiness, error)
	EnableCompositeIndex(context.Context, *EnableCompositeIndexRequest) (*CompositeIndex, error)
	mustEmbedUnimplementedManagementForVertexLabelsServer()
}

// UnimplementedManagementForVertexLabelsServer must be embedded by implementations.
type UnimplementedManagementForVertexLabelsServer struct{}

func (UnimplementedManagementForVertexLabelsServer) EnsureVertexLabel(context.Context, *EnsureVertexLabelRequest) (*VertexLabel, error) {
	return nil, status.Errorf(codes.Unimplemented, "method EnsureVertexLabel not implemented")
}
func (UnimplementedManagementForVertexLabelsServer) GetVertexLabels(*GetVertexLabelsRequest, grpc.ServerStreamingServer[VertexLabel]) error {
	return status.Errorf(codes.Unimplemented, "method GetVertexLabels not implemented")
}
func (UnimplementedManagementForVertexLabelsServer) GetVertexLabelsByName(*GetVertexLabelsByNameRequest, grpc.ServerStreamingServer[VertexLabel]) error {
	return status.Errorf(codes.Unimplemented, "method GetVertexLabelsByName not implemented")
}
func (UnimplementedManagementForVertexLabelsServer) EnsureCompositeIndex(context.Context, *EnsureCompositeIndexRequest) (*CompositeIndex, error) {
	return nil, status.Errorf(codes.Unimplemented, "method EnsureCompositeIndex not implemented")
}
func (UnimplementedManagementForVertexLabelsServer) EnsureMixedIndex(context.Context, *EnsureMixedIndexRequest) (*MixedIndex, error) {
	return nil, status.Errorf(codes.Unimplemented, "method EnsureMixedIndex not implemented")
}
func (UnimplementedManagementForVertexLabelsServer) GetCompositeIndexByName(context.Context, *GetIndexByNameRequest) (*CompositeIndex, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetCompositeIndexByName not implemented")
}
func (UnimplementedManagementForVertexLabelsServer) GetCompositeIndices(*GetIndicesRequest, grpc.ServerStreamingServer[CompositeIndex]) error {
	return status.Errorf(codes.Unimplemented, "method GetCompositeIndices not implemented")
}
func (UnimplementedManagementForVertexLabelsServer) GetMixedIndices(*GetIndicesRequest, grpc.ServerStreamingServer[MixedIndex]) error {
	return status.Errorf(codes.Unimplemented, "method GetMixedIndices not implemented")
}
func (UnimplementedManagementForVertexLabelsServer) GetIndexReadiness(context.Context, *GetIndexReadinessRequest) (*IndexReadiness, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetIndexReadiness not implemented")
}
func (UnimplementedManagementForVertexLabelsServer) EnableCompositeIndex(context.Context, *EnableCompositeIndexRequest) (*CompositeIndex, error) {
	return nil, status.Errorf(codes.Unimplemented, "method EnableCompositeIndex not implemented")
}
func (UnimplementedManagementForVertexLabelsServer) mustEmbedUnimplementedManagementForVertexLabelsServer() {}

func RegisterManagementForVertexLabelsServer(s grpc.ServiceRegistrar, srv ManagementForVertexLabelsServer) {
	s.RegisterService(&ManagementForVertexLabels_ServiceDesc, srv)
}

func _ManagementForVertexLabels_EnsureVertexLabel_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(EnsureVertexLabelRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ManagementForVertexLabelsServer).EnsureVertexLabel(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ManagementForVertexLabels_EnsureVertexLabel_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ManagementForVertexLabelsServer).EnsureVertexLabel(ctx, req.(*EnsureVertexLabelRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ManagementForVertexLabels_GetVertexLabels_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(GetVertexLabelsRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ManagementForVertexLabelsServer).GetVertexLabels(m, &grpc.GenericServerStream[GetVertexLabelsRequest, VertexLabel]{ServerStream: stream})
}

func _ManagementForVertexLabels_GetVertexLabelsByName_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(GetVertexLabelsByNameRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ManagementForVertexLabelsServer).GetVertexLabelsByName(m, &grpc.GenericServerStream[GetVertexLabelsByNameRequest, VertexLabel]{ServerStream: stream})
}

func _ManagementForVertexLabels_EnsureCompositeIndex_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(EnsureCompositeIndexRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ManagementForVertexLabelsServer).EnsureCompositeIndex(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ManagementForVertexLabels_EnsureCompositeIndex_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ManagementForVertexLabelsServer).EnsureCompositeIndex(ctx, req.(*EnsureCompositeIndexRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ManagementForVertexLabels_EnsureMixedIndex_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(EnsureMixedIndexRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ManagementForVertexLabelsServer).EnsureMixedIndex(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ManagementForVertexLabels_EnsureMixedIndex_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ManagementForVertexLabelsServer).EnsureMixedIndex(ctx, req.(*EnsureMixedIndexRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ManagementForVertexLabels_GetCompositeIndexByName_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetIndexByNameRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ManagementForVertexLabelsServer).GetCompositeIndexByName(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ManagementForVertexLabels_GetCompositeIndexByName_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ManagementForVertexLabelsServer).GetCompositeIndexByName(ctx, req.(*GetIndexByNameRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ManagementForVertexLabels_GetCompositeIndices_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(GetIndicesRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ManagementForVertexLabelsServer).GetCompositeIndices(m, &grpc.GenericServerStream[GetIndicesRequest, CompositeIndex]{ServerStream: stream})
}

func _ManagementForVertexLabels_GetMixedIndices_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(GetIndicesRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ManagementForVertexLabelsServer).GetMixedIndices(m, &grpc.GenericServerStream[GetIndicesRequest, MixedIndex]{ServerStream: stream})
}

func _ManagementForVertexLabels_GetIndexReadiness_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetIndexReadinessRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ManagementForVertexLabelsServer).GetIndexReadiness(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ManagementForVertexLabels_GetIndexReadiness_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ManagementForVertexLabelsServer).GetIndexReadiness(ctx, req.(*GetIndexReadinessRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ManagementForVertexLabels_EnableCompositeIndex_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(EnableCompositeIndexRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ManagementForVertexLabelsServer).EnableCompositeIndex(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ManagementForVertexLabels_EnableCompositeIndex_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ManagementForVertexLabelsServer).EnableCompositeIndex(ctx, req.(*EnableCompositeIndexRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// ManagementForVertexLabels_ServiceDesc is the grpc.ServiceDesc for the ManagementForVertexLabels service.
var ManagementForVertexLabels_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "graphschema.v1.ManagementForVertexLabels",
	HandlerType: (*ManagementForVertexLabelsServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "EnsureVertexLabel",
			Handler:    _ManagementForVertexLabels_EnsureVertexLabel_Handler,
		},
		{
			MethodName: "EnsureCompositeIndex",
			Handler:    _ManagementForVertexLabels_EnsureCompositeIndex_Handler,
		},
		{
			MethodName: "EnsureMixedIndex",
			Handler:    _ManagementForVertexLabels_EnsureMixedIndex_Handler,
		},
		{
			MethodName: "GetCompositeIndexByName",
			Handler:    _ManagementForVertexLabels_GetCompositeIndexByName_Handler,
		},
		{
			MethodName: "GetIndexReadiness",
			Handler:    _ManagementForVertexLabels_GetIndexReadiness_Handler,
		},
		{
			MethodName: "EnableCompositeIndex",
			Handler:    _ManagementForVertexLabels_EnableCompositeIndex_Handler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "GetVertexLabels",
			Handler:       _ManagementForVertexLabels_GetVertexLabels_Handler,
			ServerStreams: true,
		},
		{
			StreamName:    "GetVertexLabelsByName",
			Handler:       _ManagementForVertexLabels_GetVertexLabelsByName_Handler,
			ServerStreams: true,
		},
		{
			StreamName:    "GetCompositeIndices",
			Handler:       _ManagementForVertexLabels_GetCompositeIndices_Handler,
			ServerStreams: true,
		},
		{
			StreamName:    "GetMixedIndices",
			Handler:       _ManagementForVertexLabels_GetMixedIndices_Handler,
			ServerStreams: true,
		},
	},
}
