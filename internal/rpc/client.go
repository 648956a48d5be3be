package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/xtding233/roulette/internal/sharecode"
)

// Client calls a remote Roulette service.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Spin spins the state in query and returns the names drawn plus the draw
// count the server used.
func (c *Client) Spin(ctx context.Context, query string, opts ...grpc.CallOption) ([]string, int, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, spinMethod, wrapperspb.String(query), out, opts...); err != nil {
		return nil, 0, err
	}
	results, draws, err := parseSpin(out)
	if err != nil {
		return nil, 0, status.Error(codes.Internal, err.Error())
	}
	return results, draws, nil
}

// Share returns the share URL the server builds for st.
func (c *Client) Share(ctx context.Context, st sharecode.State, opts ...grpc.CallOption) (string, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, shareMethod, stateMessage(st), out, opts...); err != nil {
		return "", err
	}
	return out.GetValue(), nil
}

// Restore decodes query on the server.
func (c *Client) Restore(ctx context.Context, query string, opts ...grpc.CallOption) (sharecode.State, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, restoreMethod, wrapperspb.String(query), out, opts...); err != nil {
		return sharecode.State{}, err
	}
	st, err := parseState(out)
	if err != nil {
		return sharecode.State{}, status.Error(codes.Internal, err.Error())
	}
	return st, nil
}

