package handlers

import (
	"context"
	"errors"
	"math"

	"github.com/gartstein/layofflens/internal/layoffs/aggregate"
	e "github.com/gartstein/layofflens/internal/layoffs/errors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const analyticsServiceName = "layofflens.v1.AnalyticsService"

// AnalyticsServer is the gRPC surface. Requests and responses are
// google.protobuf.Struct messages carrying the same fields as the REST API.
type AnalyticsServer interface {
	GetStats(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetIndustryDistribution(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetTimeSeries(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetGeographic(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// AnalyticsServiceDesc describes AnalyticsServer for grpc.Server.RegisterService.
var AnalyticsServiceDesc = grpc.ServiceDesc{
	ServiceName: analyticsServiceName,
	HandlerType: (*AnalyticsServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetStats", Handler: unaryHandler("GetStats", AnalyticsServer.GetStats)},
		{MethodName: "GetIndustryDistribution", Handler: unaryHandler("GetIndustryDistribution", AnalyticsServer.GetIndustryDistribution)},
		{MethodName: "GetTimeSeries", Handler: unaryHandler("GetTimeSeries", AnalyticsServer.GetTimeSeries)},
		{MethodName: "GetGeographic", Handler: unaryHandler("GetGeographic", AnalyticsServer.GetGeographic)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "layofflens/v1/analytics.proto",
}

func unaryHandler(
	method string,
	call func(AnalyticsServer, context.Context, *structpb.Struct) (*structpb.Struct, error),
) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	fullMethod := "/" + analyticsServiceName + "/" + method
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AnalyticsServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AnalyticsServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// AnalyticsHandler implements AnalyticsServer over an AnalyticsController.
type AnalyticsHandler struct {
	service AnalyticsController
	logger  *zap.Logger
}

// NewAnalyticsHandler constructs a new AnalyticsHandler with the given service and logger.
func NewAnalyticsHandler(service AnalyticsController, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
		logger:  logger.Named("grpc_handler"),
	}
}

// GetStats returns the aggregated statistics for the filter in req.
func (h *AnalyticsHandler) GetStats(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	filter, err := parseFilter(structParams(req))
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	stats, err := h.service.Stats(ctx, filter)
	if err != nil {
		return nil, h.mapServiceError(err)
	}
	return h.respond(stats)
}

// GetIndustryDistribution returns {"data": [...]} with the top sector shares.
func (h *AnalyticsHandler) GetIndustryDistribution(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	get := structParams(req)
	filter, err := parseFilter(get)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	top, err := parseInt(get, paramTop, aggregate.DefaultTopIndustries, math.MaxInt)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	points, err := h.service.Industries(ctx, filter, top)
	if err != nil {
		return nil, h.mapServiceError(err)
	}
	return h.respond(map[string]any{"data": points})
}

// GetTimeSeries returns {"data": [...]} with one point per month.
func (h *AnalyticsHandler) GetTimeSeries(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	get := structParams(req)
	filter, err := parseFilter(get)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	months, err := parseInt(get, paramMonths, aggregate.DefaultMonths, aggregate.MaxMonths)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	series, err := h.service.TimeSeries(ctx, filter, months)
	if err != nil {
		return nil, h.mapServiceError(err)
	}
	return h.respond(map[string]any{"data": series})
}

func (h *AnalyticsHandler) GetGeographic(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	filter, err := parseFilter(structParams(req))
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	summary, err := h.service.Geographic(ctx, filter)
	if err != nil {
		return nil, h.mapServiceError(err)
	}
	return h.respond(summary)
}

func (h *AnalyticsHandler) respond(v any) (*structpb.Struct, error) {
	out, err := toStruct(v)
	if err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to encode response")
	}
	return out, nil
}

// mapServiceError maps domain or repository errors to appropriate gRPC status codes.
func (h *AnalyticsHandler) mapServiceError(err error) error {
	switch {
	case errors.Is(err, e.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, e.ErrFetchFailed), errors.Is(err, e.ErrStoreFailed):
		h.logger.Error("Store unavailable", zap.Error(err))
		return status.Error(codes.Unavailable, err.Error())
	default:
		h.logger.Error("Internal error", zap.Error(err))
		return status.Error(codes.Internal, "internal error")
	}
}
