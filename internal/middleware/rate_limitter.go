package middleware

import (
	"DriverGuard/pkg/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"net/http"
	"sync"
	"time"
)

var (
	ErrTooManyRequests = response.NewError(http.StatusTooManyRequests, "too many requests")
)

const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type rateLimiter struct {
	bucket    map[string]*clientLimiter
	rate      rate.Limit
	burstSize int
	mutex     *sync.Mutex
	lastSweep time.Time
	now       func() time.Time
}

func newRateLimiter(reqRate rate.Limit, burstSize int) *rateLimiter {
	return &rateLimiter{
		bucket:    make(map[string]*clientLimiter),
		rate:      reqRate,
		burstSize: burstSize,
		mutex:     &sync.Mutex{},
		now:       time.Now,
	}
}

func (r *rateLimiter) GetLimiterFrom(ip string) *rate.Limiter {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	now := r.now()
	if now.Sub(r.lastSweep) > limiterIdleTTL {
		r.sweep(now)
	}

	entry, exist := r.bucket[ip]
	if !exist {
		entry = &clientLimiter{limiter: rate.NewLimiter(r.rate, r.burstSize)}
		r.bucket[ip] = entry
	}
	entry.lastSeen = now

	return entry.limiter
}

// sweep drops buckets of clients that went quiet. Caller holds the mutex.
func (r *rateLimiter) sweep(now time.Time) {
	for ip, entry := range r.bucket {
		if now.Sub(entry.lastSeen) > limiterIdleTTL {
			delete(r.bucket, ip)
		}
	}
	r.lastSweep = now
}

func (m *middleware) NewRateLimiter(ctx *fiber.Ctx) error {
	clientIP := ctx.IP()
	limiter := m.rateLimitter.GetLimiterFrom(clientIP)

	if !limiter.Allow() {
		m.log.WithFields(logrus.Fields{
			"request_id": m.GetRequestID(ctx),
			"client_ip":  clientIP,
			"path":       ctx.Path(),
		}).Warn("Too many requests")
		return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": ErrTooManyRequests.Error(),
		})
	}

	return ctx.Next()
}
