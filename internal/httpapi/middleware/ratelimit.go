package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/raylincc/codechat/internal/common"
	"github.com/raylincc/codechat/internal/ratelimit"
)

// ClientKey resolves the client identifier for rate limiting: first entry
// of X-Forwarded-For, else X-Real-IP, else a shared "unknown" bucket.
func ClientKey(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		if ip := strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0]); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(c.GetHeader("X-Real-IP")); ip != "" {
		return ip
	}
	return "unknown"
}

// RateLimit enforces the per-client quota and attaches the rate-limit
// headers to every response, allowed or not.
func RateLimit(limiter ratelimit.Limiter, quota int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := ClientKey(c)

		res, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			// the limiter backend being down must not take the API down
			slog.Error("rate limit check failed", "error", err, "client", key)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(quota))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

		if !res.Allowed {
			retryAfter := int(time.Until(res.ResetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			common.Fail(c, http.StatusTooManyRequests, common.CodeRateLimitExceeded, "rate limit exceeded, try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
