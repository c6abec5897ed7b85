package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	httpapi "github.com/GriffinCanCode/incgamma/internal/api/http"
	"github.com/GriffinCanCode/incgamma/internal/api/middleware"
	"github.com/GriffinCanCode/incgamma/internal/infrastructure/config"
	"github.com/GriffinCanCode/incgamma/internal/infrastructure/logging"
	"github.com/GriffinCanCode/incgamma/internal/infrastructure/monitoring"
	mathProvider "github.com/GriffinCanCode/incgamma/internal/providers/math"
	"github.com/GriffinCanCode/incgamma/internal/service"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	handler  http.Handler
	http     *http.Server
	registry *service.Registry
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
}

// NewServer creates a new server instance. A nil logger is built from cfg.
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if err := cfg.Engine.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	if logger == nil {
		logger = logging.FromConfig(cfg.Logging)
	}

	evaluator := cfg.Engine.Evaluator()
	logger.Info("Initializing incgamma server",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
		zap.Float64("epsilon", evaluator.Epsilon),
		zap.Int("max_iterations", evaluator.MaxIterations),
	)

	metrics := monitoring.NewMetrics()

	serviceRegistry := service.NewRegistry(metrics)
	if err := registerProviders(serviceRegistry, cfg, metrics, logger); err != nil {
		return nil, err
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog(logger.Logger))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := httpapi.NewHandlers(serviceRegistry, evaluator, httpapi.NewHandlerMetrics(metrics))

	router.GET("/health", handlers.Health)

	// Service management
	router.GET("/services", handlers.ListServices)
	router.GET("/services/:id", handlers.GetService)
	router.POST("/services/execute", handlers.ExecuteService)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	logger.Info("Server initialized successfully")

	return &Server{
		router:   router,
		handler:  gzhttp.GzipHandler(router),
		registry: serviceRegistry,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}, nil
}

// Handler returns the compressed root handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Registry returns the service registry
func (s *Server) Registry() *service.Registry {
	return s.registry
}

// Addr returns the configured listen address
func (s *Server) Addr() string {
	return net.JoinHostPort(s.config.Server.Host, s.config.Server.Port)
}

// Run starts the HTTP server and blocks until it stops. It returns nil
// after a graceful Shutdown.
func (s *Server) Run() error {
	s.http = &http.Server{
		Addr:              s.Addr(),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	defer s.logger.Sync()

	if s.http == nil {
		return nil
	}
	if err := s.http.Shutdown(ctx); err != nil {
		s.logger.Error("Graceful shutdown failed", zap.Error(err))
		return fmt.Errorf("failed to shut down: %w", err)
	}

	s.logger.Info("Server shutdown complete")
	return nil
}

func registerProviders(registry *service.Registry, cfg *config.Config, metrics *monitoring.Metrics, logger *logging.Logger) error {
	math := mathProvider.NewProvider(cfg.Engine.Evaluator(), metrics, logger.Logger)
	if err := registry.Register(math); err != nil {
		return fmt.Errorf("failed to register math provider: %w", err)
	}
	logger.Info("Math service registered")

	stats := registry.Stats()
	logger.Info("Service providers registered",
		zap.Any("services", stats["total_services"]),
		zap.Any("tools", stats["total_tools"]),
	)
	return nil
}
