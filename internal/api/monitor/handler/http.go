package monitorHandler

import (
	monitorService "DriverGuard/internal/api/monitor/service"
	"DriverGuard/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
	"time"
)

type MonitorHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	monitorService monitorService.IMonitorService
	readTimeout    time.Duration
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	ms monitorService.IMonitorService,
) *MonitorHandler {
	return &MonitorHandler{
		log:            log,
		validator:      validator,
		middleware:     middleware,
		monitorService: ms,
		readTimeout:    60 * time.Second,
	}
}

func (h *MonitorHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		if c.Query("subject") == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "subject query parameter is required",
			})
		}
		return c.Next()
	}

	monitor := srv.Group("/monitor")
	monitor.Use("/ws", wsMiddleware)
	monitor.Get("/ws", websocket.New(h.handleStream))

	monitor.Post("/evaluate", h.middleware.NewRateLimiter, h.Evaluate)
	monitor.Get("/subjects/:id/status", h.GetSubjectStatus)
	monitor.Get("/events", h.middleware.NewTokenMiddleware, h.ListAlertEvents)
	monitor.Get("/metrics", h.GetMetrics)
}
