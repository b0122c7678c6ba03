package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/magefree/goldfish-go/internal/montecarlo"
)

const (
	// SimulatorServiceName is the fully qualified gRPC service name.
	SimulatorServiceName = "goldfish.v1.Simulator"
	// SimulatorRunMethod is the full method name of Run.
	SimulatorRunMethod = "/" + SimulatorServiceName + "/Run"
)

// SimulatorServer is the server API of the Simulator service. Messages are
// well-known structpb values so no generated code is needed.
type SimulatorServer interface {
	Run(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

func _Simulator_Run_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SimulatorServer).Run(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SimulatorRunMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SimulatorServer).Run(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// SimulatorServiceDesc describes the Simulator service for registration.
var SimulatorServiceDesc = grpc.ServiceDesc{
	ServiceName: SimulatorServiceName,
	HandlerType: (*SimulatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Run",
			Handler:    _Simulator_Run_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "goldfish/v1/simulator.proto",
}

// RegisterSimulatorServer registers srv on s.
func RegisterSimulatorServer(s grpc.ServiceRegistrar, srv SimulatorServer) {
	s.RegisterService(&SimulatorServiceDesc, srv)
}

// SimulatorClient calls the Simulator service.
type SimulatorClient struct {
	cc grpc.ClientConnInterface
}

func NewSimulatorClient(cc grpc.ClientConnInterface) *SimulatorClient {
	return &SimulatorClient{cc: cc}
}

func (c *SimulatorClient) Run(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, SimulatorRunMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// simulatorServer implements SimulatorServer on top of a Runner.
type simulatorServer struct {
	runner *Runner
	logger *zap.Logger
}

// NewSimulatorServer creates the gRPC service implementation.
func NewSimulatorServer(runner *Runner, logger *zap.Logger) SimulatorServer {
	return &simulatorServer{runner: runner, logger: logger}
}

// Run executes a simulation and returns the finished histogram.
func (s *simulatorServer) Run(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	runReq, err := runRequestFromStruct(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	result, err := s.runner.Run(ctx, runReq, nil)
	if err != nil {
		return nil, toStatus(err)
	}

	resp, err := runResultToStruct(result)
	if err != nil {
		s.logger.Error("failed to encode run result", zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to encode result")
	}
	return resp, nil
}

// toStatus maps runner errors to gRPC status codes.
func toStatus(err error) error {
	switch {
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, montecarlo.ErrInvalidConfig):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func runRequestFromStruct(s *structpb.Struct) (RunRequest, error) {
	var req RunRequest
	fields := s.GetFields()
	for name, dst := range map[string]*int{
		"workers":                &req.Workers,
		"simulations_per_worker": &req.SimulationsPerWorker,
		"progress_every":         &req.ProgressEvery,
	} {
		v, ok := fields[name]
		if !ok {
			continue
		}
		n, err := wholeNumber(name, v)
		if err != nil {
			return req, err
		}
		*dst = int(n)
	}
	if v, ok := fields["seed"]; ok {
		n, err := seedValue(v)
		if err != nil {
			return req, err
		}
		req.Seed = n
	}
	return req, nil
}

// seedValue accepts a number or, for seeds beyond float64 precision, a
// decimal string.
func seedValue(v *structpb.Value) (int64, error) {
	if str, ok := v.GetKind().(*structpb.Value_StringValue); ok {
		n, err := strconv.ParseInt(str.StringValue, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("seed: %w", err)
		}
		return n, nil
	}
	return wholeNumber("seed", v)
}

func wholeNumber(name string, v *structpb.Value) (int64, error) {
	num, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	n := int64(num.NumberValue)
	if float64(n) != num.NumberValue {
		return 0, fmt.Errorf("%s must be a whole number", name)
	}
	return n, nil
}

func runResultToStruct(r *RunResult) (*structpb.Struct, error) {
	started := timestamppb.New(r.StartedAt)
	finished := timestamppb.New(r.FinishedAt)
	if err := started.CheckValid(); err != nil {
		return nil, err
	}
	if err := finished.CheckValid(); err != nil {
		return nil, err
	}

	return structpb.NewStruct(map[string]any{
		"run_id":      r.RunID.String(),
		"seed":        strconv.FormatInt(r.Seed, 10),
		"workers":     r.Workers,
		"wins":        counts(r.Histogram.Wins),
		"losses":      counts(r.Histogram.Losses),
		"total":       float64(r.Histogram.Total()),
		"started_at":  started.AsTime().Format(time.RFC3339Nano),
		"finished_at": finished.AsTime().Format(time.RFC3339Nano),
	})
}

func counts(table []uint64) []any {
	out := make([]any, len(table))
	for i, n := range table {
		out[i] = float64(n)
	}
	return out
}

// extractHostFromContext returns the caller's host, or "unknown".
func extractHostFromContext(ctx context.Context) string {
	if p, ok := peer.FromContext(ctx); ok && p.Addr != net.Addr(nil) {
		if host, _, err := net.SplitHostPort(p.Addr.String()); err == nil {
			return host
		}
		return p.Addr.String()
	}
	return "unknown"
}

// StopGRPCServer drains s with GracefulStop and falls back to Stop once
// timeout elapses, which cancels in-flight runs. It reports whether the
// drain finished in time.
func StopGRPCServer(s *grpc.Server, timeout time.Duration, logger *zap.Logger) bool {
	done := make(chan struct{})
	go func() {
		s.GracefulStop()
		close(done)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-done:
		return true
	case <-timer.C:
		logger.Warn("gRPC graceful stop timed out; cancelling in-flight runs", zap.Duration("timeout", timeout))
		s.Stop()
		<-done
		return false
	}
}
