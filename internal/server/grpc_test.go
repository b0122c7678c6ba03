package server

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

func startServer(t *testing.T, srv SimulatorServer, logger *zap.Logger) *SimulatorClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer(grpc.UnaryInterceptor(ChainUnaryInterceptors(
		RecoveryInterceptor(logger),
		LoggingInterceptor(logger),
	)))
	RegisterSimulatorServer(s, srv)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewSimulatorClient(conn)
}

func request(t *testing.T, fields map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(fields)
	require.NoError(t, err)
	return s
}

func TestSimulatorRun(t *testing.T) {
	logger := zaptest.NewLogger(t)
	client := startServer(t, NewSimulatorServer(NewRunner(testConfig(), nil, logger), logger), logger)

	resp, err := client.Run(context.Background(), request(t, map[string]any{
		"workers":                2,
		"simulations_per_worker": 15,
		"seed":                   77,
	}))
	require.NoError(t, err)

	fields := resp.GetFields()
	_, err = uuid.Parse(fields["run_id"].GetStringValue())
	assert.NoError(t, err)
	assert.Equal(t, "77", fields["seed"].GetStringValue())
	assert.Equal(t, float64(30), fields["total"].GetNumberValue())

	var sum float64
	for _, list := range []string{"wins", "losses"} {
		for _, v := range fields[list].GetListValue().GetValues() {
			sum += v.GetNumberValue()
		}
	}
	assert.Equal(t, float64(30), sum)

	started, err := time.Parse(time.RFC3339Nano, fields["started_at"].GetStringValue())
	require.NoError(t, err)
	finished, err := time.Parse(time.RFC3339Nano, fields["finished_at"].GetStringValue())
	require.NoError(t, err)
	assert.False(t, finished.Before(started))
}

func TestSimulatorRunRejectsBadRequests(t *testing.T) {
	logger := zaptest.NewLogger(t)
	client := startServer(t, NewSimulatorServer(NewRunner(testConfig(), nil, logger), logger), logger)

	cases := map[string]map[string]any{
		"too many workers": {"workers": 65},
		"fractional":       {"workers": 1.5},
		"wrong type":       {"simulations_per_worker": "ten"},
		"bad seed":         {"seed": "abc"},
	}
	for name, fields := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := client.Run(context.Background(), request(t, fields))
			assert.Equal(t, codes.InvalidArgument, status.Code(err))
		})
	}
}

func TestSimulatorSeedAsString(t *testing.T) {
	req, err := runRequestFromStruct(request(t, map[string]any{"seed": "9007199254740993"}))
	require.NoError(t, err)
	assert.Equal(t, int64(9007199254740993), req.Seed)
}

type panickingServer struct{}

func (panickingServer) Run(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	panic("boom")
}

func TestRecoveryInterceptor(t *testing.T) {
	logger := zaptest.NewLogger(t)
	client := startServer(t, panickingServer{}, logger)

	_, err := client.Run(context.Background(), request(t, nil))
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestChainUnaryInterceptorsOrder(t *testing.T) {
	var order []string
	mark := func(name string) grpc.UnaryServerInterceptor {
		return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
			order = append(order, name)
			return handler(ctx, req)
		}
	}
	chain := ChainUnaryInterceptors(mark("outer"), mark("inner"))
	resp, err := chain(context.Background(), "req", &grpc.UnaryServerInfo{FullMethod: SimulatorRunMethod},
		func(ctx context.Context, req any) (any, error) {
			order = append(order, "handler")
			return "resp", nil
		})
	require.NoError(t, err)
	assert.Equal(t, "resp", resp)
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestToStatus(t *testing.T) {
	assert.Equal(t, codes.InvalidArgument, status.Code(toStatus(ErrInvalidRequest)))
	assert.Equal(t, codes.Canceled, status.Code(toStatus(context.Canceled)))
	assert.Equal(t, codes.DeadlineExceeded, status.Code(toStatus(context.DeadlineExceeded)))
	assert.Equal(t, codes.Internal, status.Code(toStatus(assert.AnError)))
}

type blockingServer struct {
	started chan struct{}
}

func (b blockingServer) Run(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	close(b.started)
	<-ctx.Done()
	return nil, status.FromContextError(ctx.Err()).Err()
}

func TestStopGRPCServerForcesAfterTimeout(t *testing.T) {
	logger := zaptest.NewLogger(t)
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer()
	srv := blockingServer{started: make(chan struct{})}
	RegisterSimulatorServer(s, srv)
	go func() { _ = s.Serve(lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	defer conn.Close()

	req := request(t, nil)
	rpcErr := make(chan error, 1)
	go func() {
		_, err := NewSimulatorClient(conn).Run(context.Background(), req)
		rpcErr <- err
	}()
	<-srv.started

	start := time.Now()
	assert.False(t, StopGRPCServer(s, 50*time.Millisecond, logger))
	assert.Less(t, time.Since(start), 5*time.Second)

	select {
	case err := <-rpcErr:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("in-flight RPC was not cancelled")
	}
}

func TestStopGRPCServerDrainsIdleServer(t *testing.T) {
	s := grpc.NewServer()
	lis := bufconn.Listen(1 << 20)
	go func() { _ = s.Serve(lis) }()

	assert.True(t, StopGRPCServer(s, time.Second, zaptest.NewLogger(t)))
}
