package grpcapi

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// CommissionServiceName is the health-check service name reported next to
// the overall server status.
const CommissionServiceName = "cruise.commission.v1.CommissionService"

type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	server *health.Server
	db     Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{server: health.NewServer(), db: db}
}

// NewServer builds the gRPC server with the health and reflection services
// registered.
func NewServer(h *HealthHandler, opts ...grpc.ServerOption) *grpc.Server {
	srv := grpc.NewServer(opts...)
	healthpb.RegisterHealthServer(srv, h.server)
	reflection.Register(srv)
	return srv
}

// Check pings the database once and publishes the result.
func (h *HealthHandler) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if h.db != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(pingCtx); err != nil {
			slog.Warn("database ping failed", "error", err)
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	h.server.SetServingStatus("", status)
	h.server.SetServingStatus(CommissionServiceName, status)
	return status
}

// Watch re-checks the database every interval until ctx is done.
func (h *HealthHandler) Watch(ctx context.Context, interval time.Duration) {
	h.Check(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Check(ctx)
		}
	}
}

// Shutdown marks every service NOT_SERVING and ignores later checks.
func (h *HealthHandler) Shutdown() {
	h.server.Shutdown()
}
