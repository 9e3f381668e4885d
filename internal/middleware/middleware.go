package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type Middleware interface {
	NewRateLimiter(ctx *fiber.Ctx) error
	NewTokenMiddleware(ctx *fiber.Ctx) error
	NewRequestIDMiddleware() fiber.Handler
	NewLoggingMiddleware() fiber.Handler
	GetRequestID(ctx *fiber.Ctx) string
}

type Config struct {
	RateLimit rate.Limit
	Burst     int
}

type middleware struct {
	token               *tokenMiddleware
	rateLimitter        *rateLimiter
	requestIDMiddleware fiber.Handler
	loggingMiddleware   fiber.Handler
	log                 *logrus.Logger
}

func New(logger *logrus.Logger) Middleware {
	return NewWithConfig(logger, Config{RateLimit: 50, Burst: 100})
}

func NewWithConfig(logger *logrus.Logger, cfg Config) Middleware {
	return &middleware{
		token:               newTokenMiddleware(),
		rateLimitter:        newRateLimiter(cfg.RateLimit, cfg.Burst),
		requestIDMiddleware: NewRequestIDMiddleware(),
		loggingMiddleware:   LoggerConfig(logger),
		log:                 logger,
	}
}

func (m *middleware) GetRequestID(ctx *fiber.Ctx) string {
	requestID, ok := ctx.Locals(RequestIDKey).(string)
	if !ok || requestID == "" {
		return "unknown"
	}
	return requestID
}

func (m *middleware) NewRequestIDMiddleware() fiber.Handler {
	return m.requestIDMiddleware
}

func (m *middleware) NewLoggingMiddleware() fiber.Handler {
	return m.loggingMiddleware
}
