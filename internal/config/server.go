package config

import (
	"DriverGuard/database/postgres"
	monitorHandler "DriverGuard/internal/api/monitor/handler"
	monitorRepository "DriverGuard/internal/api/monitor/repository"
	monitorService "DriverGuard/internal/api/monitor/service"
	"DriverGuard/internal/middleware"
	"DriverGuard/pkg/landmark"
	"DriverGuard/pkg/metrics"
	"DriverGuard/pkg/redis"
	"DriverGuard/pkg/s3"
	"DriverGuard/pkg/utils"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"golang.org/x/time/rate"
	"os"
	"time"
)

type ServerOption func(*Server) error

type Server struct {
	engine         *fiber.App
	db             *sqlx.DB
	log            *logrus.Logger
	middleware     middleware.Middleware
	validator      *validator.Validate
	utils          utils.IUtils
	metrics        *metrics.Metrics
	handlers       []handler
	redisServer    redis.IRedis
	landmarkClient landmark.IClient
	s3Client       s3.ItfS3
	settings       *MonitorSettings
	monitor        monitorService.IMonitorService
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.validator == nil {
		server.validator = NewValidator()
	}
	if server.middleware == nil {
		server.middleware = middleware.New(server.log)
	}
	if server.utils == nil {
		server.utils = utils.New()
	}
	if server.metrics == nil {
		server.metrics = metrics.New()
	}
	if server.settings == nil {
		settings, err := LoadMonitorSettings(server.validator)
		if err != nil {
			return nil, err
		}
		server.settings = &settings
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithLandmarkClient(client landmark.IClient) ServerOption {
	return func(s *Server) error {
		s.landmarkClient = client
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		limit, err := envFloat("RATE_LIMIT", 50)
		if err != nil {
			return err
		}
		burst, err := envInt("RATE_LIMIT_BURST", 100)
		if err != nil {
			return err
		}
		s.middleware = middleware.NewWithConfig(s.log, middleware.Config{RateLimit: rate.Limit(limit), Burst: burst})
		return nil
	}
}

func WithMonitorSettings() ServerOption {
	return func(s *Server) error {
		if s.validator == nil {
			return fmt.Errorf("validator must be initialized before monitor settings")
		}
		settings, err := LoadMonitorSettings(s.validator)
		if err != nil {
			return err
		}
		s.settings = &settings
		return nil
	}
}

// WithS3Client is a no-op unless snapshot uploads are enabled.
func WithS3Client() ServerOption {
	return func(s *Server) error {
		if s.settings == nil || !s.settings.SnapshotUploads {
			return nil
		}
		client, err := s3.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithMetrics(m *metrics.Metrics) ServerOption {
	return func(s *Server) error {
		s.metrics = m
		return nil
	}
}

func (s *Server) RegisterHandler() error {
	var repo monitorRepository.Repository
	if s.db != nil {
		repo = monitorRepository.New(s.db, s.log)
	}

	deps := monitorService.Dependencies{
		Repository: repo,
		Utils:      s.utils,
		Metrics:    s.metrics,
	}
	if s.redisServer != nil {
		deps.Redis = s.redisServer
	}
	if s.landmarkClient != nil {
		deps.Landmark = s.landmarkClient
	}
	if s.s3Client != nil {
		deps.S3 = s.s3Client
	}

	monitorServices, err := monitorService.NewMonitorService(s.log, s.settings.serviceConfig(), deps)
	if err != nil {
		return fmt.Errorf("failed to create monitor service: %w", err)
	}
	s.monitor = monitorServices

	monitorHandlers := monitorHandler.New(s.log, s.validator, s.middleware, monitorServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, monitorHandlers)

	return nil
}

func (s *Server) Run() error {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware())

	router := s.engine.Group("/api/v1")
	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

// Shutdown stops accepting requests, flushes queued alert events and closes
// outbound connections.
func (s *Server) Shutdown(ctx context.Context) error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	keep(s.engine.ShutdownWithContext(ctx))

	if s.monitor != nil {
		keep(s.monitor.Close(ctx))
	}
	if s.landmarkClient != nil {
		s.landmarkClient.Close()
	}
	if s.db != nil {
		keep(s.db.Close())
	}

	return firstErr
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		c, cancel := context.WithTimeout(ctx.Context(), 2*time.Second)
		defer cancel()

		deps := fiber.Map{}
		if s.redisServer != nil {
			deps["redis"] = s.redisServer.Ping(c) == nil
		}
		if s.db != nil {
			deps["postgres"] = s.db.PingContext(c) == nil
		}
		if s.landmarkClient != nil {
			deps["landmark"] = s.landmarkClient.IsConnected()
		}

		return ctx.JSON(fiber.Map{
			"message":      "Server is Healthy!",
			"dependencies": deps,
		})
	})
}
