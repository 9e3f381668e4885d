package middleware

import (
	jwtPkg "DriverGuard/pkg/jwt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestRequestIDMiddleware(t *testing.T) {
	m := New(quietLogger())
	app := fiber.New()
	app.Use(m.NewRequestIDMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(m.GetRequestID(c))
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDKey, "req-42")
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "req-42", string(body))
	assert.Equal(t, "req-42", resp.Header.Get(RequestIDKey))

	resp, err = app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Len(t, resp.Header.Get(RequestIDKey), 26)
}

func TestRateLimiter(t *testing.T) {
	m := NewWithConfig(quietLogger(), Config{RateLimit: 0.001, Burst: 2})
	app := fiber.New()
	app.Get("/", m.NewRateLimiter, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	var statuses []int
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		statuses = append(statuses, resp.StatusCode)
	}
	assert.Equal(t, []int{200, 200, 429}, statuses)
}

func TestTokenMiddleware(t *testing.T) {
	t.Setenv(AccessTokenSecret, "test-secret")
	m := New(quietLogger())

	app := fiber.New()
	app.Get("/", m.NewTokenMiddleware, func(c *fiber.Ctx) error {
		operator, err := jwtPkg.GetOperator(c)
		if err != nil {
			return err
		}
		return c.SendString(operator.ID)
	})

	token, _, err := jwtPkg.Sign(map[string]interface{}{"id": "op-1", "username": "dispatch"}, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "op-1", string(body))

	resp, err = app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	noID, _, err := jwtPkg.Sign(map[string]interface{}{"username": "dispatch"}, time.Hour)
	require.NoError(t, err)
	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+noID)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSanitizeRequestBody(t *testing.T) {
	out := sanitizeRequestBody(`{"subject_id":"truck-7","frame":"AAAA","token":"x"}`)
	assert.Contains(t, out, `"frame":"[OMITTED]"`)
	assert.Contains(t, out, `"token":"[SECRET]"`)
	assert.Contains(t, out, `"subject_id":"truck-7"`)
	assert.Equal(t, "[non-JSON body]", sanitizeRequestBody("raw"))
}

func TestRateLimiterForgetsIdleClients(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r := newRateLimiter(1, 1)
	r.now = func() time.Time { return clock }

	first := r.GetLimiterFrom("10.0.0.1")
	assert.Same(t, first, r.GetLimiterFrom("10.0.0.1"))

	clock = clock.Add(limiterIdleTTL + time.Minute)
	r.GetLimiterFrom("10.0.0.2")

	assert.Len(t, r.bucket, 1)
	assert.NotSame(t, first, r.GetLimiterFrom("10.0.0.1"))
}
