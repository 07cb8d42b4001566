package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/session"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
)

// Limiter returns isAllowed, attempts left, seconds to wait and an error.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, int, int, error)
}

// RateLimit limits requests per session, or per client address when the
// request carries no session. A failing limiter lets the request through.
func RateLimit(limiter Limiter, next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		allowed, remaining, retryAfter, err := limiter.Allow(r.Context(), clientKey(r))
		if err != nil {
			logger.Error("Rate limiter unavailable", slog.String("error", err.Error()))
			next.ServeHTTP(w, r)
			return
		}

		if !allowed {
			logger.Warn("Rate limit exceeded", slog.Int("retryAfter", retryAfter))
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			response.Error(w, errors.TooManyRequestsError("Too many requests, slow down"))
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

		next.ServeHTTP(w, r)
	}
}

func clientKey(r *http.Request) string {
	if s, ok := session.FromContext(r.Context()); ok {
		return s.ID
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
