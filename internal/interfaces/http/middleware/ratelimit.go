package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"timeclock/internal/infrastructure/ratelimit"
	"timeclock/internal/shared/logger"
	"timeclock/internal/shared/utils"
)

// GlobalIPRateLimit throttles all API traffic per source address. This is
// coarse abuse protection in front of the per-user punch gates; a denial
// here is a plain 429 and is never written to the punch audit log.
func GlobalIPRateLimit(limiter ratelimit.Limiter, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := limiter.Hit(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Errorw("rate limiter failure", "client_ip", c.ClientIP(), "error", err)
			// Fail open: throttling is best effort.
			c.Next()
			return
		}

		if !res.Allowed {
			c.Header("Retry-After", fmt.Sprintf("%d", int(res.RetryAfter.Seconds())))
			utils.ErrorResponse(c, http.StatusTooManyRequests, "too many requests")
			c.Abort()
			return
		}

		c.Next()
	}
}
