package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/nerrad567/homegate/internal/auth"
	"github.com/nerrad567/homegate/internal/command"
	"github.com/nerrad567/homegate/internal/facerecog"
	"github.com/nerrad567/homegate/internal/infrastructure/config"
	"github.com/nerrad567/homegate/internal/infrastructure/logging"
	"github.com/nerrad567/homegate/internal/infrastructure/metrics"
	"github.com/nerrad567/homegate/internal/notification"
	"github.com/nerrad567/homegate/internal/sensor"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// HealthChecker is a component reported on /health.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config        config.APIConfig
	Logger        *logging.Logger
	Sensors       *sensor.Service
	Commands      *command.Service
	Notifications *notification.Service
	Auth          *auth.Service
	Faces         *facerecog.Service

	// Metrics is optional; without it /metrics is not served.
	Metrics *metrics.Metrics

	// Health lists the components checked by /health, keyed by name.
	Health map[string]HealthChecker

	Version string
}

// Server is the HTTP API server for Homegate.
//
// The server is created with New() and started with Start().
type Server struct {
	cfg           config.APIConfig
	logger        *logging.Logger
	sensors       *sensor.Service
	commands      *command.Service
	notifications *notification.Service
	auth          *auth.Service
	faces         *facerecog.Service
	metrics       *metrics.Metrics
	health        map[string]HealthChecker
	version       string
	server        *http.Server
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called.
//
// Returns:
//   - *Server: Configured server ready to start
//   - error: If a required dependency is missing
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	switch {
	case deps.Sensors == nil:
		return nil, fmt.Errorf("sensor service is required")
	case deps.Commands == nil:
		return nil, fmt.Errorf("command service is required")
	case deps.Notifications == nil:
		return nil, fmt.Errorf("notification service is required")
	case deps.Auth == nil:
		return nil, fmt.Errorf("auth service is required")
	case deps.Faces == nil:
		return nil, fmt.Errorf("face recognition service is required")
	}

	return &Server{
		cfg:           deps.Config,
		logger:        deps.Logger,
		sensors:       deps.Sensors,
		commands:      deps.Commands,
		notifications: deps.Notifications,
		auth:          deps.Auth,
		faces:         deps.Faces,
		metrics:       deps.Metrics,
		health:        deps.Health,
		version:       deps.Version,
	}, nil
}

// Handler returns the fully wired router. Start serves the same handler.
func (s *Server) Handler() http.Handler {
	return s.buildRouter()
}

// Start begins listening for HTTP connections in a background goroutine.
// The server can be stopped with Close().
func (s *Server) Start(_ context.Context) error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           s.buildRouter(),
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		s.logger.Info("API server starting", "address", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete,
// then forcefully closes remaining connections.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server is running.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}

	return nil
}
