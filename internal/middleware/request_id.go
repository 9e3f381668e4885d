package middleware

import (
	contextPkg "DriverGuard/pkg/context"
	"DriverGuard/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"time"
)

const RequestIDKey = "X-Request-ID"

// NewRequestIDMiddleware reuses an inbound X-Request-ID or mints a ULID, and echoes it back.
func NewRequestIDMiddleware() fiber.Handler {
	ids := utils.New()

	return func(c *fiber.Ctx) error {
		requestID := c.Get(RequestIDKey)
		if requestID == "" {
			requestID, _ = ids.NewULIDFromTimestamp(time.Now())
		}

		c.Locals(RequestIDKey, requestID)
		c.Set(RequestIDKey, requestID)
		c.SetUserContext(contextPkg.WithRequestID(c.UserContext(), requestID))

		return c.Next()
	}
}
