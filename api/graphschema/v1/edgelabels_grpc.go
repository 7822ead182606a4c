package graphschemav1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ManagementForEdgeLabels_EnsureEdgeLabel_FullMethodName         = "/graphschema.v1.ManagementForEdgeLabels/EnsureEdgeLabel"
	ManagementForEdgeLabels_GetEdgeLabels_FullMethodName           = "/graphschema.v1.ManagementForEdgeLabels/GetEdgeLabels"
	ManagementForEdgeLabels_GetEdgeLabelsByName_FullMethodName     = "/graphschema.v1.ManagementForEdgeLabels/GetEdgeLabelsByName"
	ManagementForEdgeLabels_EnsureCompositeIndex_FullMethodName    = "/graphschema.v1.ManagementForEdgeLabels/EnsureCompositeIndex"
	ManagementForEdgeLabels_EnsureMixedIndex_FullMethodName        = "/graphschema.v1.ManagementForEdgeLabels/EnsureMixedIndex"
	ManagementForEdgeLabels_GetCompositeIndexByName_FullMethodName = "/graphschema.v1.ManagementForEdgeLabels/GetCompositeIndexByName"
	ManagementForEdgeLabels_GetCompositeIndices_FullMethodName     = "/graphschema.v1.ManagementForEdgeLabels/GetCompositeIndices"
	ManagementForEdgeLabels_GetMixedIndices_FullMethodName         = "/graphschema.v1.ManagementForEdgeLabels/GetMixedIndices"
	ManagementForEdgeLabels_GetIndexReadiness_FullMethodName       = "/graphschema.v1.ManagementForEdgeLabels/GetIndexReadiness"
	ManagementForEdgeLabels_EnableCompositeIndex_FullMethodName    = "/graphschema.v1.ManagementForEdgeLabels/EnableCompositeIndex"
)

// ManagementForEdgeLabelsClient is the client API for the ManagementForEdgeLabels service.
type ManagementForEdgeLabelsClient interface {
	EnsureEdgeLabel(ctx context.Context, in *EnsureEdgeLabelRequest, opts ...grpc.CallOption) (*EdgeLabel, error)
	GetEdgeLabels(ctx context.Context, in *GetEdgeLabelsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[EdgeLabel], error)
	GetEdgeLabelsByName(ctx context.Context, in *GetEdgeLabelsByNameRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[EdgeLabel], error)
	EnsureCompositeIndex(ctx context.Context, in *EnsureCompositeIndexRequest, opts ...grpc.CallOption) (*CompositeIndex, error)
	EnsureMixedIndex(ctx context.Context, in *EnsureMixedIndexRequest, opts ...grpc.CallOption) (*MixedIndex, error)
	GetCompositeIndexByName(ctx context.Context, in *GetIndexByNameRequest, opts ...grpc.CallOption) (*CompositeIndex, error)
	GetCompositeIndices(ctx context.Context, in *GetIndicesRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[CompositeIndex], error)
	GetMixedIndices(ctx context.Context, in *GetIndicesRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[MixedIndex], error)
	GetIndexReadiness(ctx context.Context, in *GetIndexReadinessRequest, opts ...grpc.CallOption) (*IndexReadiness, error)
	EnableCompositeIndex(ctx context.Context, in *EnableCompositeIndexRequest, opts ...grpc.CallOption) (*CompositeIndex, error)
}

type managementForEdgeLabelsClient struct {
	cc grpc.ClientConnInterface
}

func NewManagementForEdgeLabelsClient(cc grpc.ClientConnInterface) ManagementForEdgeLabelsClient {
	return &managementForEdgeLabelsClient{cc}
}

func (c *managementForEdgeLabelsClient) EnsureEdgeLabel(ctx context.Context, in *EnsureEdgeLabelRequest, opts ...grpc.CallOption) (*EdgeLabel, error) {
	out := new(EdgeLabel)
	err := c.cc.Invoke(ctx, ManagementForEdgeLabels_EnsureEdgeLabel_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *managementForEdgeLabelsClient) GetEdgeLabels(ctx context.Context, in *GetEdgeLabelsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[EdgeLabel], error) {
	stream, err := c.cc.NewStream(ctx, &ManagementForEdgeLabels_ServiceDesc.Streams[0], ManagementForEdgeLabels_GetEdgeLabels_FullMethodName, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[GetEdgeLabelsRequest, EdgeLabel]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

func (c *managementForEdgeLabelsClient) GetEdgeLabelsByName(ctx context.Context, in *GetEdgeLabelsByNameRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[EdgeLabel], error) {
	stream, err := c.cc.NewStream(ctx, &ManagementForEdgeLabels_ServiceDesc.Streams[1], ManagementForEdgeLabels_GetEdgeLabelsByName_FullMethodName, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[GetEdgeLabelsByNameRequest, EdgeLabel]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

func (c *managementForEdgeLabelsClient) EnsureCompositeIndex(ctx context.Context, in *EnsureCompositeIndexRequest, opts ...grpc.CallOption) (*CompositeIndex, error) {
	out := new(CompositeIndex)
	err := c.cc.Invoke(ctx, ManagementForEdgeLabels_EnsureCompositeIndex_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *managementForEdgeLabelsClient) EnsureMixedIndex(ctx context.Context, in *EnsureMixedIndexRequest, opts ...grpc.CallOption) (*MixedIndex, error) {
	out := new(MixedIndex)
	err := c.cc.Invoke(ctx, ManagementForEdgeLabels_EnsureMixedIndex_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *managementForEdgeLabelsClient) GetCompositeIndexByName(ctx context.Context, in *GetIndexByNameRequest, opts ...grpc.CallOption) (*CompositeIndex, error) {
	out := new(CompositeIndex)
	err := c.cc.Invoke(ctx, ManagementForEdgeLabels_GetCompositeIndexByName_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *managementForEdgeLabelsClient) GetCompositeIndices(ctx context.Context, in *GetIndicesRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[CompositeIndex], error) {
	stream, err := c.cc.NewStream(ctx, &ManagementForEdgeLabels_ServiceDesc.Streams[2], ManagementForEdgeLabels_GetCompositeIndices_FullMethodName, callOptions(opts)...)
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

func (c *managementForEdgeLabelsClient) GetMixedIndices(ctx context.Context, in *GetIndicesRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[MixedIndex], error) {
	stream, err := c.cc.NewStream(ctx, &ManagementForEdgeLabels_ServiceDesc.Streams[3], ManagementForEdgeLabels_GetMixedIndices_FullMethodName, callOptions(opts)...)
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

func (c *managementForEdgeLabelsClient) GetIndexReadiness(ctx context.Context, in *GetIndexReadinessRequest, opts ...grpc.CallOption) (*IndexReadiness, error) {
	out := new(IndexReadiness)
	err := c.cc.Invoke(ctx, ManagementForEdgeLabels_GetIndexReadiness_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *managementForEdgeLabelsClient) EnableCompositeIndex(ctx context.Context, in *EnableCompositeIndexRequest, opts ...grpc.CallOption) (*CompositeIndex, error) {
	out := new(CompositeIndex)
	err := c.cc.Invoke(ctx, ManagementForEdgeLabels_EnableCompositeIndex_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ManagementForEdgeLabelsServer is the server API for the ManagementForEdgeLabels service.
type ManagementForEdgeLabelsServer interface {
	EnsureEdgeLabel(context.Context, *EnsureEdgeLabelRequest) (*EdgeLabel, error)
	GetEdgeLabels(*GetEdgeLabelsRequest, grpc.ServerStreamingServer[EdgeLabel]) error
	GetEdgeLabelsByName(*GetEdgeLabelsByNameRequest, grpc.ServerStreamingServer[EdgeLabel]) error
	EnsureCompositeIndex(context.Context, *EnsureCompositeIndexRequest) (*CompositeIndex, error)
	EnsureMixedIndex(context.Context, *EnsureMixedIndexRequest) (*MixedIndex, error)
	GetCompositeIndexByName(context.Context, *GetIndexByNameRequest) (*CompositeIndex, error)
	GetCompositeIndices(*GetIndicesRequest, grpc.ServerStreamingServer[CompositeIndex]) error
	GetMixedIndices(*GetIndicesRequest, grpc.ServerStreamingServer[MixedIndex]) error
	GetIndexReadiness(context.Context, *GetIndexReadinessRequest) (*IndexReadiness, error)
	EnableCompositeIndex(context.Context, *EnableCompositeIndexRequest) (*CompositeIndex, error)
	mustEmbedUnimplementedManagementForEdgeLabelsServer()
}

// UnimplementedManagementForEdgeLabelsServer must be embedded by implementations.
type UnimplementedManagementForEdgeLabelsServer struct{}

func (UnimplementedManagementForEdgeLabelsServer) EnsureEdgeLabel(context.Context, *EnsureEdgeLabelRequest) (*EdgeLabel, error) {
	return nil, status.Errorf(codes.Unimplemented, "method EnsureEdgeLabel not implemented")
}
func (UnimplementedManagementForEdgeLabelsServer) GetEdgeLabels(*GetEdgeLabelsRequest, grpc.ServerStreamingServer[EdgeLabel]) error {
	return status.Errorf(codes.Unimplemented, "method GetEdgeLabels not implemented")
}
func (UnimplementedManagementForEdgeLabelsServer) GetEdgeLabelsByName(*GetEdgeLabelsByNameRequest, grpc.ServerStreamingServer[EdgeLabel]) error {
	return status.Errorf(codes.Unimplemented, "method GetEdgeLabelsByName not implemented")
}
func (UnimplementedManagementForEdgeLabelsServer) EnsureCompositeIndex(context.Context, *EnsureCompositeIndexRequest) (*CompositeIndex, error) {
	return nil, status.Errorf(codes.Unimplemented, "method EnsureCompositeIndex not implemented")
}
func (UnimplementedManagementForEdgeLabelsServer) EnsureMixedIndex(context.Context, *EnsureMixedIndexRequest) (*MixedIndex, error) {
	return nil, status.Errorf(codes.Unimplemented, "method EnsureMixedIndex not implemented")
}
func (UnimplementedManagementForEdgeLabelsServer) GetCompositeIndexByName(context.Context, *GetIndexByNameRequest) (*CompositeIndex, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetCompositeIndexByName not implemented")
}
func (UnimplementedManagementForEdgeLabelsServer) GetCompositeIndices(*GetIndicesRequest, grpc.ServerStreamingServer[CompositeIndex]) error {
	return status.Errorf(codes.Unimplemented, "method GetCompositeIndices not implemented")
}
func (UnimplementedManagementForEdgeLabelsServer) GetMixedIndices(*GetIndicesRequest, grpc.ServerStreamingServer[MixedIndex]) error {
	return status.Errorf(codes.Unimplemented, "method GetMixedIndices not implemented")
}
func (UnimplementedManagementForEdgeLabelsServer) GetIndexReadiness(context.Context, *GetIndexReadinessRequest) (*IndexReadiness, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetIndexReadiness not implemented")
}
func (UnimplementedManagementForEdgeLabelsServer) EnableCompositeIndex(context.Context, *EnableCompositeIndexRequest) (*CompositeIndex, error) {
	return nil, status.Errorf(codes.Unimplemented, "method EnableCompositeIndex not implemented")
}
func (UnimplementedManagementForEdgeLabelsServer) mustEmbedUnimplementedManagementForEdgeLabelsServer() {}

func RegisterManagementForEdgeLabelsServer(s grpc.ServiceRegistrar, srv ManagementForEdgeLabelsServer) {
	s.RegisterService(&ManagementForEdgeLabels_ServiceDesc, srv)
}

func _ManagementForEdgeLabels_EnsureEdgeLabel_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(EnsureEdgeLabelRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ManagementForEdgeLabelsServer).EnsureEdgeLabel(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ManagementForEdgeLabels_EnsureEdgeLabel_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ManagementForEdgeLabelsServer).EnsureEdgeLabel(ctx, req.(*EnsureEdgeLabelRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ManagementForEdgeLabels_GetEdgeLabels_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(GetEdgeLabelsRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ManagementForEdgeLabelsServer).GetEdgeLabels(m, &grpc.GenericServerStream[GetEdgeLabelsRequest, EdgeLabel]{ServerStream: stream})
}

func _ManagementForEdgeLabels_GetEdgeLabelsByName_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(GetEdgeLabelsByNameRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ManagementForEdgeLabelsServer).GetEdgeLabelsByName(m, &grpc.GenericServerStream[GetEdgeLabelsByNameRequest, EdgeLabel]{ServerStream: stream})
}

func _ManagementForEdgeLabels_EnsureCompositeIndex_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(EnsureCompositeIndexRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ManagementForEdgeLabelsServer).EnsureCompositeIndex(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ManagementForEdgeLabels_EnsureCompositeIndex_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ManagementForEdgeLabelsServer).EnsureCompositeIndex(ctx, req.(*EnsureCompositeIndexRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ManagementForEdgeLabels_EnsureMixedIndex_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(EnsureMixedIndexRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ManagementForEdgeLabelsServer).EnsureMixedIndex(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ManagementForEdgeLabels_EnsureMixedIndex_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ManagementForEdgeLabelsServer).EnsureMixedIndex(ctx, req.(*EnsureMixedIndexRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ManagementForEdgeLabels_GetCompositeIndexByName_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetIndexByNameRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ManagementForEdgeLabelsServer).GetCompositeIndexByName(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ManagementForEdgeLabels_GetCompositeIndexByName_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ManagementForEdgeLabelsServer).GetCompositeIndexByName(ctx, req.(*GetIndexByNameRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ManagementForEdgeLabels_GetCompositeIndices_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(GetIndicesRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ManagementForEdgeLabelsServer).GetCompositeIndices(m, &grpc.GenericServerStream[GetIndicesRequest, CompositeIndex]{ServerStream: stream})
}

func _ManagementForEdgeLabels_GetMixedIndices_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(GetIndicesRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ManagementForEdgeLabelsServer).GetMixedIndices(m, &grpc.GenericServerStream[GetIndicesRequest, MixedIndex]{ServerStream: stream})
}

func _ManagementForEdgeLabels_GetIndexReadiness_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetIndexReadinessRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ManagementForEdgeLabelsServer).GetIndexReadiness(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ManagementForEdgeLabels_GetIndexReadiness_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ManagementForEdgeLabelsServer).GetIndexReadiness(ctx, req.(*GetIndexReadinessRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ManagementForEdgeLabels_EnableCompositeIndex_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(EnableCompositeIndexRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ManagementForEdgeLabelsServer).EnableCompositeIndex(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ManagementForEdgeLabels_EnableCompositeIndex_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ManagementForEdgeLabelsServer).EnableCompositeIndex(ctx, req.(*EnableCompositeIndexRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// ManagementForEdgeLabels_ServiceDesc is the grpc.ServiceDesc for the ManagementForEdgeLabels service.
var ManagementForEdgeLabels_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "graphschema.v1.ManagementForEdgeLabels",
	HandlerType: (*ManagementForEdgeLabelsServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "EnsureEdgeLabel",
			Handler:    _ManagementForEdgeLabels_EnsureEdgeLabel_Handler,
		},
		{
			MethodName: "EnsureCompositeIndex",
			Handler:    _ManagementForEdgeLabels_EnsureCompositeIndex_Handler,
		},
		{
			MethodName: "EnsureMixedIndex",
			Handler:    _ManagementForEdgeLabels_EnsureMixedIndex_Handler,
		},
		{
			MethodName: "GetCompositeIndexByName",
			Handler:    _ManagementForEdgeLabels_GetCompositeIndexByName_Handler,
		},
		{
			MethodName: "GetIndexReadiness",
			Handler:    _ManagementForEdgeLabels_GetIndexReadiness_Handler,
		},
		{
			MethodName: "EnableCompositeIndex",
			Handler:    _ManagementForEdgeLabels_EnableCompositeIndex_Handler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "GetEdgeLabels",
			Handler:       _ManagementForEdgeLabels_GetEdgeLabels_Handler,
			ServerStreams: true,
		},
		{
			StreamName:    "GetEdgeLabelsByName",
			Handler:       _ManagementForEdgeLabels_GetEdgeLabelsByName_Handler,
			ServerStreams: true,
		},
		{
			StreamName:    "GetCompositeIndices",
			Handler:       _ManagementForEdgeLabels_GetCompositeIndices_Handler,
			ServerStreams: true,
		},
		{
			StreamName:    "GetMixedIndices",
			Handler:       _ManagementForEdgeLabels_GetMixedIndices_Handler,
			ServerStreams: true,
		},
	},
}
