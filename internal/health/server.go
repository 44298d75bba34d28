// Package health exposes the standard gRPC health and reflection services.
// The TVMaze service status follows the client's circuit breaker.
package health

import (
	"net"
	"sync"

	grpcprom "github.com/grpc-ecosystem/go-grpc-middleware/providers/prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/showfinder/showfinder/internal/config"
)

// ServiceName is the health service name reporting TVMaze availability.
const ServiceName = "showfinder.tvmaze"

var (
	grpcServerMetrics         *grpcprom.ServerMetrics
	registerServerMetricsOnce sync.Once
)

// Server is a gRPC server carrying only health checking and reflection.
type Server struct {
	grpcServer   *grpc.Server
	healthServer *health.Server
}

// NewServer creates a gRPC server with Prometheus metrics, health checking
// and reflection. Both the overall status and ServiceName start as SERVING.
func NewServer() *Server {
	// Set up Prometheus gRPC server metrics once per process
	registerServerMetricsOnce.Do(func() {
		grpcServerMetrics = grpcprom.NewServerMetrics(
			grpcprom.WithServerHandlingTimeHistogram(),
		)
		prometheus.MustRegister(grpcServerMetrics)
	})

	srvMetrics := grpcServerMetrics

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(srvMetrics.UnaryServerInterceptor()),
		grpc.ChainStreamInterceptor(srvMetrics.StreamServerInterceptor()),
	)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	// Register reflection service for tools like grpcurl
	reflection.Register(grpcServer)

	srvMetrics.InitializeMetrics(grpcServer)

	return &Server{
		grpcServer:   grpcServer,
		healthServer: healthServer,
	}
}

// SetAvailable flips ServiceName between SERVING and NOT_SERVING. It matches
// the signature of client.WithAvailabilityListener.
func (s *Server) SetAvailable(available bool) {
	status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if available {
		status = grpc_health_v1.HealthCheckResponse_SERVING
	}
	logger := config.GetLogger()
	logger.Info().Str("service", ServiceName).Str("status", status.String()).Msg("Health status changed")
	s.healthServer.SetServingStatus(ServiceName, status)
}

// Serve accepts connections on lis until Stop is called.
func (s *Server) Serve(lis net.Listener) error {
	return s.grpcServer.Serve(lis)
}

// Stop marks every service NOT_SERVING and drains in-flight calls.
func (s *Server) Stop() {
	s.healthServer.Shutdown()
	s.grpcServer.GracefulStop()
}
