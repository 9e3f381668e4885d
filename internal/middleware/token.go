package middleware

import (
	jwtPkg "DriverGuard/pkg/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"strings"
)

const (
	AccessTokenSecret = "JWT_ACCESS_TOKEN_SECRET"
)

type tokenMiddleware struct {
	secretEnvKey string
}

func newTokenMiddleware() *tokenMiddleware {
	return &tokenMiddleware{secretEnvKey: AccessTokenSecret}
}

func unauthorized(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized, access token invalid or expired",
	})
}

func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	fields := logrus.Fields{
		"request_id": m.GetRequestID(ctx),
		"path":       ctx.Path(),
		"method":     ctx.Method(),
		"client_ip":  ctx.IP(),
	}

	authHeader := ctx.Get("Authorization")
	if authHeader == "" {
		m.log.WithFields(fields).Warn("Authorization header is missing")
		return unauthorized(ctx)
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		m.log.WithFields(fields).Warn("Authorization header format is invalid")
		return unauthorized(ctx)
	}

	token, err := jwtPkg.VerifyTokenHeader(ctx, m.token.secretEnvKey)
	if err != nil {
		m.log.WithFields(fields).WithError(err).Warn("Token verification failed")
		return unauthorized(ctx)
	}

	operator, err := jwtPkg.OperatorFromClaims(token)
	if err != nil {
		m.log.WithFields(fields).WithError(err).Warn("Token claims check failed")
		return unauthorized(ctx)
	}
	ctx.Locals(jwtPkg.OperatorLocalsKey, operator)

	fields["operator_id"] = operator.ID
	m.log.WithFields(fields).Debug("Authentication successful")
	return ctx.Next()
}
