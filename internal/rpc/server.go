package rpc

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/xtding233/roulette/internal/app"
)

// Server implements RouletteServer on top of the shared service. Like the
// HTTP host it keeps no state between calls.
type Server struct {
	svc *app.RouletteService
}

var _ RouletteServer = (*Server)(nil)

func NewServer(svc *app.RouletteService) *Server {
	return &Server{svc: svc}
}

func (s *Server) Spin(_ context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	res := s.svc.SpinQuery(app.SurfaceGRPC, req.GetValue())
	return spinMessage(res.Results, res.State.DrawCount), nil
}

func (s *Server) Share(_ context.Context, req *structpb.Struct) (*wrapperspb.StringValue, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	st, err := parseState(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return wrapperspb.String(s.svc.Share(app.SurfaceGRPC, st).ShareURL), nil
}

func (s *Server) Restore(_ context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	return restoreMessage(s.svc.Restore(req.GetValue())), nil
}

// LoggingInterceptor logs each unary call with its status code.
func LoggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logger.Info("rpc",
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
		return resp, err
	}
}

// NewGRPCServer builds a grpc.Server with the service registered.
func NewGRPCServer(svc *app.RouletteService, logger *slog.Logger, opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(LoggingInterceptor(logger)))
	s := grpc.NewServer(opts...)
	Register(s, NewServer(svc))
	return s
}
