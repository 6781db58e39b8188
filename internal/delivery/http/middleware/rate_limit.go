package middleware

import (
	"net/http"
	"strconv"
	"time"

	"go-website-backend/config"
	"go-website-backend/internal/delivery/http/response"
	"go-website-backend/pkg/logger"
	"go-website-backend/pkg/ratelimit"
	"go-website-backend/pkg/redis"

	"github.com/gin-gonic/gin"
)

// GlobalRateLimitMiddleware applies the coarse per-IP ceilings (hourly and
// daily) ahead of the per-endpoint limiters. It is identity-scoped only by
// network address and sits in front of every /api route.
func GlobalRateLimitMiddleware(cfg *config.Config) gin.HandlerFunc {
	hourly := ratelimit.New(redis.Client(), cfg.GlobalHourlyThreshold, time.Hour, "rl:global:1h:")
	daily := ratelimit.New(redis.Client(), cfg.GlobalDailyThreshold, 24*time.Hour, "rl:global:24h:")

	return func(c *gin.Context) {
		identity := c.ClientIP()

		for _, l := range []*ratelimit.Limiter{hourly, daily} {
			allowed, retryAfter := l.Allow(c.Request.Context(), identity)
			if !allowed {
				seconds := int(retryAfter.Seconds())
				if seconds < 1 {
					seconds = 1
				}

				c.Header("X-RateLimit-Limit", strconv.Itoa(l.Limit()))
				c.Header("X-RateLimit-Remaining", "0")
				c.Header("Retry-After", strconv.Itoa(seconds))

				logger.Log.Warn("global rate limit triggered",
					"ip", identity,
					"path", c.FullPath(),
					"user_agent", c.GetHeader("User-Agent"),
				)

				response.RateLimited(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", seconds)
				c.Abort()
				return
			}
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(hourly.Limit()))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(hourly.Remaining(c.Request.Context(), identity)))

		c.Next()
	}
}
