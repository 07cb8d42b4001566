package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/search"
	"github.com/aaravmahajanofficial/storefront/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockLimiter struct {
	mock.Mock
}

func (m *mockLimiter) Allow(ctx context.Context, key string) (bool, int, int, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Int(1), args.Int(2), args.Error(3)
}

func TestRateLimit(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("Allowed request carries remaining budget", func(t *testing.T) {
		limiter := new(mockLimiter)
		limiter.On("Allow", mock.Anything, "192.0.2.1").Return(true, 4, 0, nil).Once()

		rr := httptest.NewRecorder()
		req := newRequest("")
		req.RemoteAddr = "192.0.2.1:1234"

		middleware.RateLimit(limiter, okHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "4", rr.Header().Get("X-RateLimit-Remaining"))
		limiter.AssertExpectations(t)
	})

	t.Run("Keyed by session when present", func(t *testing.T) {
		limiter := new(mockLimiter)
		limiter.On("Allow", mock.Anything, "session-9").Return(true, 1, 0, nil).Once()

		s := session.NewManager(emptySearcher{}, search.Options{}, time.Hour).Get("session-9")
		req := newRequest("")
		req = req.WithContext(session.WithSession(req.Context(), s))

		middleware.RateLimit(limiter, okHandler).ServeHTTP(httptest.NewRecorder(), req)

		limiter.AssertExpectations(t)
	})

	t.Run("Rejected request gets 429 and Retry-After", func(t *testing.T) {
		limiter := new(mockLimiter)
		limiter.On("Allow", mock.Anything, mock.Anything).Return(false, 0, 7, nil).Once()

		rr := httptest.NewRecorder()
		middleware.RateLimit(limiter, okHandler).ServeHTTP(rr, newRequest(""))

		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.Equal(t, "7", rr.Header().Get("Retry-After"))
		assert.Contains(t, rr.Body.String(), `"code":"TOO_MANY_REQUESTS"`)
	})

	t.Run("Limiter failure lets the request through", func(t *testing.T) {
		limiter := new(mockLimiter)
		limiter.On("Allow", mock.Anything, mock.Anything).Return(false, 0, 0, errors.New("redis down")).Once()

		rr := httptest.NewRecorder()
		middleware.RateLimit(limiter, okHandler).ServeHTTP(rr, newRequest(""))

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
