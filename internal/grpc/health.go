package grpc

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

// ServiceName is the health service name checked alongside the overall "".
const ServiceName = "attendancehub"

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthServer reports SERVING while the store answers a ping.
type HealthServer struct {
	healthpb.UnimplementedHealthServer
	pinger Pinger
	log    *slog.Logger
}

func NewHealthServer(pinger Pinger, log *slog.Logger) *HealthServer {
	return &HealthServer{pinger: pinger, log: log}
}

func (h *HealthServer) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	if svc := req.GetService(); svc != "" && svc != ServiceName {
		return nil, status.Error(codes.NotFound, "unknown_service")
	}
	if err := h.pinger.Ping(ctx); err != nil {
		h.log.WarnContext(ctx, "health check ping failed", "err", err)
		return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}, nil
	}
	return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}, nil
}

func NewServer(pinger Pinger, log *slog.Logger) *grpc.Server {
	srv := grpc.NewServer(grpc.UnaryInterceptor(NewLoggingUnaryInterceptor(log)))
	healthpb.RegisterHealthServer(srv, NewHealthServer(pinger, log))
	reflection.Register(srv)
	return srv
}

func NewLoggingUnaryInterceptor(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		log.DebugContext(ctx, "grpc request",
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return resp, err
	}
}
