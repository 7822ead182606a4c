package engine

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	graphschemav1 "github.com/redbco/graphschema/api/graphschema/v1"
	"github.com/redbco/graphschema/pkg/schema"
)

// RequestIDHeader is the metadata key clients may set to correlate logs
const RequestIDHeader = "x-request-id"

// toStatus converts an engine error into a gRPC status
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return status.Error(codes.Unavailable, err.Error())
	}
	return status.Error(schema.GRPCCode(schema.KindOf(err)), err.Error())
}

// incoming prepares a handler context and checks the graph context field
func incoming(ctx context.Context, graph string) (context.Context, error) {
	if graph == "" {
		return ctx, status.Error(codes.InvalidArgument, "context is required")
	}
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get(RequestIDHeader); len(ids) > 0 && ids[0] != "" {
			return WithRequestID(ctx, ids[0]), nil
		}
	}
	return withRequestID(ctx), nil
}

func sendAll[T any, M any](stream grpc.ServerStreamingServer[M], items []T, conv func(T) *M) error {
	for _, item := range items {
		if err := stream.Send(conv(item)); err != nil {
			return err
		}
	}
	return nil
}

// PropertyKeyServer serves ManagementForPropertyKeys
type PropertyKeyServer struct {
	graphschemav1.UnimplementedManagementForPropertyKeysServer
	engine *Engine
}

func NewPropertyKeyServer(e *Engine) *PropertyKeyServer {
	return &PropertyKeyServer{engine: e}
}

func (s *PropertyKeyServer) EnsurePropertyKey(ctx context.Context, req *graphschemav1.EnsurePropertyKeyRequest) (*graphschemav1.PropertyKey, error) {
	ctx, err := incoming(ctx, req.Context)
	if err != nil {
		return nil, err
	}
	pk, err := propertyKeyRequest(req.PropertyKey)
	if err != nil {
		return nil, toStatus(err)
	}
	key, err := s.engine.EnsurePropertyKey(ctx, req.Context, pk)
	if err != nil {
		return nil, toStatus(err)
	}
	return toPropertyKey(key), nil
}

func (s *PropertyKeyServer) EnsurePropertyKeyForLabel(ctx context.Context, req *graphschemav1.EnsurePropertyKeyForLabelRequest) (*graphschemav1.PropertyKey, error) {
	ctx, err := incoming(ctx, req.Context)
	if err != nil {
		return nil, err
	}
	if req.Label == "" {
		return nil, status.Error(codes.InvalidArgument, "label is required")
	}
	pk, err := propertyKeyRequest(req.PropertyKey)
	if err != nil {
		return nil, toStatus(err)
	}
	key, err := s.engine.EnsurePropertyKeyForLabel(ctx, req.Context, req.Label, pk)
	if err != nil {
		return nil, toStatus(err)
	}
	return toPropertyKey(key), nil
}

func (s *PropertyKeyServer) GetPropertyKeys(req *graphschemav1.GetPropertyKeysRequest, stream grpc.ServerStreamingServer[graphschemav1.PropertyKey]) error {
	ctx, err := incoming(stream.Context(), req.Context)
	if err != nil {
		return err
	}
	keys, err := s.engine.GetPropertyKeys(ctx, req.Context)
	if err != nil {
		return toStatus(err)
	}
	return sendAll(stream, keys, toPropertyKey)
}

func (s *PropertyKeyServer) GetPropertyKeyByName(ctx context.Context, req *graphschemav1.GetPropertyKeyByNameRequest) (*graphschemav1.PropertyKey, error) {
	ctx, err := incoming(ctx, req.Context)
	if err != nil {
		return nil, err
	}
	key, err := s.engine.GetPropertyKeyByName(ctx, req.Context, req.Name)
	if err != nil {
		return nil, toStatus(err)
	}
	return toPropertyKey(key), nil
}

// indexHandlers implements the index calls shared by the vertex and edge
// label services for one element kind.
type indexHandlers struct {
	engine *Engine
	kind   schema.ElementKind
}

func (h indexHandlers) ensureComposite(ctx context.Context, req *graphschemav1.EnsureCompositeIndexRequest) (*graphschemav1.CompositeIndex, error) {
	ctx, err := incoming(ctx, req.Context)
	if err != nil {
		return nil, err
	}
	ir, err := compositeIndexRequest(h.kind, req.Index)
	if err != nil {
		return nil, toStatus(err)
	}
	idx, err := h.engine.EnsureCompositeIndex(ctx, req.Context, ir)
	if err != nil {
		return nil, toStatus(err)
	}
	return toCompositeIndex(idx), nil
}

func (h indexHandlers) ensureMixed(ctx context.Context, req *graphschemav1.EnsureMixedIndexRequest) (*graphschemav1.MixedIndex, error) {
	ctx, err := incoming(ctx, req.Context)
	if err != nil {
		return nil, err
	}
	ir, err := mixedIndexRequest(h.kind, req.Index)
	if err != nil {
		return nil, toStatus(err)
	}
	idx, err := h.engine.EnsureMixedIndex(ctx, req.Context, ir)
	if err != nil {
		return nil, toStatus(err)
	}
	return toMixedIndex(idx), nil
}

func (h indexHandlers) compositeByName(ctx context.Context, req *graphschemav1.GetIndexByNameRequest) (*graphschemav1.CompositeIndex, error) {
	ctx, err := incoming(ctx, req.Context)
	if err != nil {
		return nil, err
	}
	idx, err := h.engine.GetCompositeIndexByName(ctx, req.Context, h.kind, req.Name)
	if err != nil {
		return nil, toStatus(err)
	}
	return toCompositeIndex(idx), nil
}

func (h indexHandlers) compositeIndices(req *graphschemav1.GetIndicesRequest, stream grpc.ServerStreamingServer[graphschemav1.CompositeIndex]) error {
	ctx, err := incoming(stream.Context(), req.Context)
	if err != nil {
		return err
	}
	indices, err := h.engine.GetCompositeIndices(ctx, req.Context, h.kind, indexLabel(req.Label))
	if err != nil {
		return toStatus(err)
	}
	return sendAll(stream, indices, toCompositeIndex)
}

func (h indexHandlers) mixedIndices(req *graphschemav1.GetIndicesRequest, stream grpc.ServerStreamingServer[graphschemav1.MixedIndex]) error {
	ctx, err := incoming(stream.Context(), req.Context)
	if err != nil {
		return err
	}
	indices, err := h.engine.GetMixedIndices(ctx, req.Context, h.kind, indexLabel(req.Label))
	if err != nil {
		return toStatus(err)
	}
	return sendAll(stream, indices, toMixedIndex)
}

func (h indexHandlers) readiness(ctx context.Context, req *graphschemav1.GetIndexReadinessRequest) (*graphschemav1.IndexReadiness, error) {
	ctx, err := incoming(ctx, req.Context)
	if err != nil {
		return nil, err
	}
	rd, err := h.engine.GetIndexReadiness(ctx, req.Context, req.Name)
	if err != nil {
		return nil, toStatus(err)
	}
	return toIndexReadiness(rd), nil
}

func (h indexHandlers) enable(ctx context.Context, req *graphschemav1.EnableCompositeIndexRequest) (*graphschemav1.CompositeIndex, error) {
	ctx, err := incoming(ctx, req.Context)
	if err != nil {
		return nil, err
	}
	if req.TimeoutSeconds < 0 {
		return nil, status.Error(codes.InvalidArgument, "timeoutSeconds must not be negative")
	}
	if req.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(req.TimeoutSeconds)*time.Second)
		defer cancel()
	}
	idx, err := h.engine.EnableCompositeIndex(ctx, req.Context, req.Name, req.Wait)
	if err != nil {
		return nil, toStatus(err)
	}
	return toCompositeIndex(idx), nil
}

// VertexLabelServer serves ManagementForVertexLabels
type VertexLabelServer struct {
	graphschemav1.UnimplementedManagementForVertexLabelsServer
	engine  *Engine
	indices indexHandlers
}

func NewVertexLabelServer(e *Engine) *VertexLabelServer {
	return &VertexLabelServer{engine: e, indices: indexHandlers{engine: e, kind: schema.ElementVertex}}
}

func (s *VertexLabelServer) EnsureVertexLabel(ctx context.Context, req *graphschemav1.EnsureVertexLabelRequest) (*graphschemav1.VertexLabel, error) {
	ctx, err := incoming(ctx, req.Context)
	if err != nil {
		return nil, err
	}
	lr, err := vertexLabelRequest(req.Label)
	if err != nil {
		return nil, toStatus(err)
	}
	label, err := s.engine.EnsureVertexLabel(ctx, req.Context, lr)
	if err != nil {
		return nil, toStatus(err)
	}
	return toVertexLabel(label), nil
}

func (s *VertexLabelServer) GetVertexLabels(req *graphschemav1.GetVertexLabelsRequest, stream grpc.ServerStreamingServer[graphschemav1.VertexLabel]) error {
	ctx, err := incoming(stream.Context(), req.Context)
	if err != nil {
		return err
	}
	labels, err := s.engine.GetVertexLabels(ctx, req.Context)
	if err != nil {
		return toStatus(err)
	}
	return sendAll(stream, labels, toVertexLabel)
}

func (s *VertexLabelServer) GetVertexLabelsByName(req *graphschemav1.GetVertexLabelsByNameRequest, stream grpc.ServerStreamingServer[graphschemav1.VertexLabel]) error {
	ctx, err := incoming(stream.Context(), req.Context)
	if err != nil {
		return err
	}
	labels, err := s.engine.GetVertexLabelsByName(ctx, req.Context, req.Name)
	if err != nil {
		return toStatus(err)
	}
	return sendAll(stream, labels, toVertexLabel)
}

func (s *VertexLabelServer) EnsureCompositeIndex(ctx context.Context, req *graphschemav1.EnsureCompositeIndexRequest) (*graphschemav1.CompositeIndex, error) {
	return s.indices.ensureComposite(ctx, req)
}

func (s *VertexLabelServer) EnsureMixedIndex(ctx context.Context, req *graphschemav1.EnsureMixedIndexRequest) (*graphschemav1.MixedIndex, error) {
	return s.indices.ensureMixed(ctx, req)
}

func (s *VertexLabelServer) GetCompositeIndexByName(ctx context.Context, req *graphschemav1.GetIndexByNameRequest) (*graphschemav1.CompositeIndex, error) {
	return s.indices.compositeByName(ctx, req)
}

func (s *VertexLabelServer) GetCompositeIndices(req *graphschemav1.GetIndicesRequest, stream grpc.ServerStreamingServer[graphschemav1.CompositeIndex]) error {
	return s.indices.compositeIndices(req, stream)
}

func (s *VertexLabelServer) GetMixedIndices(req *graphschemav1.GetIndicesRequest, stream grpc.ServerStreamingServer[graphschemav1.MixedIndex]) error {
	return s.indices.mixedIndices(req, stream)
}

func (s *VertexLabelServer) GetIndexReadiness(ctx context.Context, req *graphschemav1.GetIndexReadinessRequest) (*graphschemav1.IndexReadiness, error) {
	return s.indices.readiness(ctx, req)
}

func (s *VertexLabelServer) EnableCompositeIndex(ctx context.Context, req *graphschemav1.EnableCompositeIndexRequest) (*graphschemav1.CompositeIndex, error) {
	return s.indices.enable(ctx, req)
}

// EdgeLabelServer serves ManagementForEdgeLabels
type EdgeLabelServer struct {
	graphschemav1.UnimplementedManagementForEdgeLabelsServer
	engine  *Engine
	indices indexHandlers
}

func NewEdgeLabelServer(e *Engine) *EdgeLabelServer {
	return &EdgeLabelServer{engine: e, indices: indexHandlers{engine: e, kind: schema.ElementEdge}}
}

func (s *EdgeLabelServer) EnsureEdgeLabel(ctx context.Context, req *graphschemav1.EnsureEdgeLabelRequest) (*graphschemav1.EdgeLabel, error) {
	ctx, err := incoming(ctx, req.Context)
	if err != nil {
		return nil, err
	}
	lr, err := edgeLabelRequest(req.Label)
	if err != nil {
		return nil, toStatus(err)
	}
	label, err := s.engine.EnsureEdgeLabel(ctx, req.Context, lr)
	if err != nil {
		return nil, toStatus(err)
	}
	return toEdgeLabel(label), nil
}

func (s *EdgeLabelServer) GetEdgeLabels(req *graphschemav1.GetEdgeLabelsRequest, stream grpc.ServerStreamingServer[graphschemav1.EdgeLabel]) error {
	ctx, err := incoming(stream.Context(), req.Context)
	if err != nil {
		return err
	}
	labels, err := s.engine.GetEdgeLabels(ctx, req.Context)
	if err != nil {
		return toStatus(err)
	}
	return sendAll(stream, labels, toEdgeLabel)
}

func (s *EdgeLabelServer) GetEdgeLabelsByName(req *graphschemav1.GetEdgeLabelsByNameRequest, stream grpc.ServerStreamingServer[graphschemav1.EdgeLabel]) error {
	ctx, err := incoming(stream.Context(), req.Context)
	if err != nil {
		return err
	}
	labels, err := s.engine.GetEdgeLabelsByName(ctx, req.Context, req.Name)
	if err != nil {
		return toStatus(err)
	}
	return sendAll(stream, labels, toEdgeLabel)
}

func (s *EdgeLabelServer) EnsureCompositeIndex(ctx context.Context, req *graphschemav1.EnsureCompositeIndexRequest) (*graphschemav1.CompositeIndex, error) {
	return s.indices.ensureComposite(ctx, req)
}

func (s *EdgeLabelServer) EnsureMixedIndex(ctx context.Context, req *graphschemav1.EnsureMixedIndexRequest) (*graphschemav1.MixedIndex, error) {
	return s.indices.ensureMixed(ctx, req)
}

func (s *EdgeLabelServer) GetCompositeIndexByName(ctx context.Context, req *graphschemav1.GetIndexByNameRequest) (*graphschemav1.CompositeIndex, error) {
	return s.indices.compositeByName(ctx, req)
}

func (s *EdgeLabelServer) GetCompositeIndices(req *graphschemav1.GetIndicesRequest, stream grpc.ServerStreamingServer[graphschemav1.CompositeIndex]) error {
	return s.indices.compositeIndices(req, stream)
}

func (s *EdgeLabelServer) GetMixedIndices(req *graphschemav1.GetIndicesRequest, stream grpc.ServerStreamingServer[graphschemav1.MixedIndex]) error {
	return s.indices.mixedIndices(req, stream)
}

func (s *EdgeLabelServer) GetIndexReadiness(ctx context.Context, req *graphschemav1.GetIndexReadinessRequest) (*graphschemav1.IndexReadiness, error) {
	return s.indices.readiness(ctx, req)
}

func (s *EdgeLabelServer) EnableCompositeIndex(ctx context.Context, req *graphschemav1.EnableCompositeIndexRequest) (*graphschemav1.CompositeIndex, error) {
	return s.indices.enable(ctx, req)
}

// Register installs the three management services on s
func Register(s grpc.ServiceRegistrar, e *Engine) {
	graphschemav1.RegisterManagementForPropertyKeysServer(s, NewPropertyKeyServer(e))
	graphschemav1.RegisterManagementForVertexLabelsServer(s, NewVertexLabelServer(e))
	graphschemav1.RegisterManagementForEdgeLabelsServer(s, NewEdgeLabelServer(e))
}
