package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	apperror "gostore/internal/errors"
	"gostore/internal/pkg/cache"
	"gostore/internal/pkg/logger"
)

// RateLimiter limita requisições por IP em janelas fixas, com o contador no Redis.
func RateLimiter(client cache.Client, limit int, window time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			key := "rate-limit:" + ip

			count, err := client.Incr(r.Context(), key, window)
			if err != nil {
				log.Error("Falha ao incrementar contador de rate limit", err)
				writeError(w, apperror.NewCacheError("Falha no controle de requisições", err))
				return
			}

			remaining := int64(limit) - count
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(limit) {
				log.Warn("Limite de requisições excedido", map[string]interface{}{"ip": ip, "count": count})
				writeError(w, apperror.NewRateLimitError("Muitas requisições, tente novamente mais tarde."))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
