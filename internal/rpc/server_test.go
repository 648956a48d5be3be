package rpc_test

import (
	"context"
	"log/slog"
	"net"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/xtding233/roulette/internal/app"
	"github.com/xtding233/roulette/internal/roulette"
	"github.com/xtding233/roulette/internal/rpc"
	"github.com/xtding233/roulette/internal/sharecode"
)

type fixedRNG struct{ val float64 }

func (r fixedRNG) Float64() float64 { return r.val }

const page = "https://example.com/roulette"

func newService() *app.RouletteService {
	return app.NewRouletteService(nil, nil, app.Options{PublicURL: page, RNG: fixedRNG{val: 0}})
}

func dial(t *testing.T) *rpc.Client {
	t.Helper()
	return rpc.NewClient(dialConn(t))
}

func dialConn(t *testing.T) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := rpc.NewGRPCServer(newService(), slog.New(slog.DiscardHandler))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// shareStruct sends a hand-built Share request.
func shareStruct(conn *grpc.ClientConn, msg *structpb.Struct) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	err := conn.Invoke(context.Background(), "/"+rpc.ServiceName+"/Share", msg, out)
	return out, err
}

func TestSpin(t *testing.T) {
	c := dial(t)
	results, draws, err := c.Spin(context.Background(), "name0=A&weight0=2&name1=B&weight1=1&draws=3")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"A", "B"}, results); diff != "" {
		t.Errorf("results (-want +got):\n%s", diff)
	}
	if draws != 3 {
		t.Errorf("draws = %d, want 3", draws)
	}
}

func TestShare(t *testing.T) {
	c := dial(t)
	got, err := c.Share(context.Background(), sharecode.State{
		Items:     []roulette.Item{{Name: "A", Weight: 2}, {Name: "B", Weight: 0}},
		DrawCount: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if want := page + "?name0=A&weight0=2&name1=B&weight1=1&draws=2"; got != want {
		t.Errorf("share url = %q, want %q", got, want)
	}
}

func TestShareFailSoftWeights(t *testing.T) {
	conn := dialConn(t)
	msg, err := structpb.NewStruct(map[string]any{
		"items": []any{
			map[string]any{"name": "A", "weight": "3"},
			map[string]any{"name": "B", "weight": "lots"},
			map[string]any{"name": "C"},
		},
		"draws": "2x",
	})
	if err != nil {
		t.Fatal(err)
	}
	out, err := shareStruct(conn, msg)
	if err != nil {
		t.Fatal(err)
	}
	if want := page + "?name0=A&weight0=3&name1=B&weight1=1&name2=C&weight2=1&draws=2"; out.GetValue() != want {
		t.Errorf("share url = %q, want %q", out.GetValue(), want)
	}
}

func TestShareMalformed(t *testing.T) {
	conn := dialConn(t)
	msg, err := structpb.NewStruct(map[string]any{"items": "A,B"})
	if err != nil {
		t.Fatal(err)
	}
	_, err = shareStruct(conn, msg)
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestRestore(t *testing.T) {
	c := dial(t)
	cases := []struct {
		query string
		want  sharecode.State
	}{
		{"?name0=X&weight0=abc&draws=zz", sharecode.State{Items: []roulette.Item{{Name: "X", Weight: 1}}, DrawCount: 1}},
		{page + "?name0=A&weight0=2.5&draws=4", sharecode.State{Items: []roulette.Item{{Name: "A", Weight: 2.5}}, DrawCount: 4}},
		{"", sharecode.State{Items: []roulette.Item{}, DrawCount: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			got, err := c.Restore(context.Background(), tc.query)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("state (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNilRequests(t *testing.T) {
	s := rpc.NewServer(newService())
	ctx := context.Background()

	if _, err := s.Spin(ctx, nil); status.Code(err) != codes.InvalidArgument {
		t.Errorf("Spin: expected InvalidArgument, got %v", err)
	}
	if _, err := s.Share(ctx, nil); status.Code(err) != codes.InvalidArgument {
		t.Errorf("Share: expected InvalidArgument, got %v", err)
	}
	if _, err := s.Restore(ctx, nil); status.Code(err) != codes.InvalidArgument {
		t.Errorf("Restore: expected InvalidArgument, got %v", err)
	}
}
