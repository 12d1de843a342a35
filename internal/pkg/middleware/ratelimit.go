package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"gocatalog/internal/api/response"
	"gocatalog/internal/domain"
	"gocatalog/internal/pkg/cache"
	"gocatalog/internal/pkg/logger"
)

// RateLimiter aplica uma janela fixa por IP usando o contador do cache.
// Falha do cache libera a requisição.
func RateLimiter(client cache.Client, limit int, period time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			key := "rate-limit:" + ip

			count, err := client.Incr(r.Context(), key, period)
			if err != nil {
				log.WithContext(r.Context()).Warn("rate limiter unavailable", map[string]interface{}{"error": err.Error()})
				next.ServeHTTP(w, r)
				return
			}

			remaining := int64(limit) - count
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(limit) {
				w.Header().Set("Retry-After", strconv.Itoa(int(period.Seconds())))
				response.JSON(w, http.StatusTooManyRequests, domain.ErrorResponse{
					ErrorCode: "RATE_LIMIT_EXCEEDED",
					Message:   "Rate limit exceeded",
					TraceID:   response.TraceID(r.Context()),
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
