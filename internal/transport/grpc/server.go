// Package grpc runs the service's gRPC listener. It carries the standard
// health service and server reflection for operational tooling.
package grpc

import (
	"context"
	"fmt"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/Komy007/kkshop-sub000/internal/logging"
)

// ServiceName is the name reported through the health service for the
// catalog as a whole.
const ServiceName = "catalog.v1.CatalogService"

// Server wraps a grpc.Server with health reporting.
type Server struct {
	server *grpc.Server
	health *health.Server
	logger logging.Logger
}

// NewServer creates a gRPC server with health and reflection registered.
// Both the overall and the catalog service start as SERVING.
func NewServer(logger logging.Logger, opts ...grpc.ServerOption) *Server {
	if logger == nil {
		logger = logging.NoOp()
	}

	srv := grpc.NewServer(opts...)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	reflection.Register(srv)

	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	return &Server{server: srv, health: hs, logger: logger}
}

// Serve accepts connections on lis until Stop is called.
func (s *Server) Serve(lis net.Listener) error {
	s.logger.Info("grpc.server.listening", "addr", lis.Addr().String())
	if err := s.server.Serve(lis); err != nil {
		return fmt.Errorf("grpc serve: %w", err)
	}
	return nil
}

// Stop flips every service to NOT_SERVING and drains in-flight RPCs. When
// ctx expires first the server is stopped forcibly.
func (s *Server) Stop(ctx context.Context) {
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.logger.Warn("grpc.server.forced_stop", "error", ctx.Err().Error())
		s.server.Stop()
	}
}
