// Package rpc exposes the roulette as the gRPC service roulette.v1.Roulette.
// Messages are protobuf well-known types, so no generated code is needed:
//
//	Spin(StringValue query)    -> Struct{results, draws}
//	Share(Struct{items, draws}) -> StringValue share_url
//	Restore(StringValue query) -> Struct{items, draws, empty}
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "roulette.v1.Roulette"

const (
	spinMethod    = "/" + ServiceName + "/Spin"
	shareMethod   = "/" + ServiceName + "/Share"
	restoreMethod = "/" + ServiceName + "/Restore"
)

// RouletteServer is the server API for the Roulette service.
type RouletteServer interface {
	Spin(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	Share(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error)
	Restore(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
}

// ServiceDesc describes the Roulette service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RouletteServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Spin", Handler: spinHandler},
		{MethodName: "Share", Handler: shareHandler},
		{MethodName: "Restore", Handler: restoreHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "roulette/v1/roulette.proto",
}

// Register attaches srv to s.
func Register(s grpc.ServiceRegistrar, srv RouletteServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func spinHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RouletteServer).Spin(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: spinMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RouletteServer).Spin(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func shareHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RouletteServer).Share(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: shareMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RouletteServer).Share(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func restoreHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RouletteServer).Restore(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: restoreMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RouletteServer).Restore(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}
