// Package handlers provides the gRPC and HTTP servers for the analytics
// service, translating transport requests into AnalyticsController calls.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gartstein/layofflens/internal/layoffs/metrics"
	"github.com/gartstein/layofflens/internal/layoffs/models"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const shutdownTimeout = 5 * time.Second

// AnalyticsController defines the business logic interface
// that the gRPC/HTTP handlers will invoke.
type AnalyticsController interface {
	Stats(ctx context.Context, filter models.Filter) (*models.AggregatedStats, error)
	Industries(ctx context.Context, filter models.Filter, topN int) ([]models.ChartPoint, error)
	TimeSeries(ctx context.Context, filter models.Filter, months int) ([]models.TimeSeriesPoint, error)
	Geographic(ctx context.Context, filter models.Filter) (*models.GeoSummary, error)
	Layoffs(ctx context.Context, filter models.Filter, page, limit int) (*models.LayoffPage, error)
	CreateLayoff(ctx context.Context, record *models.LayoffRecord) (*models.LayoffRecord, error)
	Sectors(ctx context.Context) ([]string, error)
	Locations(ctx context.Context) ([]string, error)
	Dashboard(ctx context.Context, filter models.Filter) (*models.Dashboard, error)
}

// Server holds references to both a gRPC server and an HTTP server.
type Server struct {
	grpcServer   *grpc.Server
	httpServer   *http.Server
	health       *health.Server
	logger       *zap.Logger
	grpcEndpoint string
	httpEndpoint string
}

// NewServer constructs a Server with separate endpoints for gRPC and HTTP.
func NewServer(
	grpcPort int,
	httpPort int,
	logger *zap.Logger,
	grpcOpts ...grpc.ServerOption,
) *Server {
	s := &Server{
		grpcServer:   grpc.NewServer(grpcOpts...),
		httpServer:   &http.Server{ReadHeaderTimeout: 10 * time.Second},
		health:       health.NewServer(),
		logger:       logger.Named("server"),
		grpcEndpoint: fmt.Sprintf(":%d", grpcPort),
		httpEndpoint: fmt.Sprintf(":%d", httpPort),
	}
	healthpb.RegisterHealthServer(s.grpcServer, s.health)
	return s
}

// RegisterGRPCHandler registers the analytics service and marks it serving.
func (s *Server) RegisterGRPCHandler(h AnalyticsServer) {
	s.grpcServer.RegisterService(&AnalyticsServiceDesc, h)
	s.health.SetServingStatus(analyticsServiceName, healthpb.HealthCheckResponse_SERVING)
}

// RegisterHTTPHandler mounts the REST routes, /metrics and /healthz on a
// gateway mux and installs it as the HTTP server's handler.
func (s *Server) RegisterHTTPHandler(h *HTTPHandler, m *metrics.Metrics) error {
	mux := runtime.NewServeMux()
	if err := h.Register(mux, m); err != nil {
		return err
	}
	s.httpServer.Handler = mux
	s.httpServer.Addr = s.httpEndpoint
	return nil
}

// Start runs the gRPC and HTTP servers concurrently, returning on the first error.
func (s *Server) Start() error {
	var wg sync.WaitGroup
	wg.Add(2)
	errChan := make(chan error, 2)

	// Start gRPC Server
	go func() {
		defer wg.Done()
		s.logger.Info("Starting gRPC server", zap.String("endpoint", s.grpcEndpoint))
		lis, err := net.Listen("tcp", s.grpcEndpoint)
		if err != nil {
			errChan <- fmt.Errorf("gRPC listen error: %w", err)
			return
		}
		if err := s.grpcServer.Serve(lis); err != nil {
			errChan <- fmt.Errorf("gRPC serve error: %w", err)
		}
	}()

	// Start HTTP Server
	go func() {
		defer wg.Done()
		s.logger.Info("Starting HTTP server", zap.String("endpoint", s.httpEndpoint))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP serve error: %w", err)
		}
	}()

	go func() {
		wg.Wait()
		close(errChan)
	}()

	for err := range errChan {
		if err != nil {
			return err
		}
	}
	return nil
}

// Stop gracefully shuts down both gRPC and HTTP servers.
func (s *Server) Stop() {
	s.logger.Info("Shutting down servers...")
	s.health.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.grpcServer.GracefulStop()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	s.logger.Info("Servers stopped")
}
