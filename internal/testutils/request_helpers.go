package testutils

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/cart"
	"github.com/aaravmahajanofficial/storefront/internal/search"
	"github.com/aaravmahajanofficial/storefront/internal/session"
)

// NewTestSession returns a detached session with an empty cart.
func NewTestSession(id string, searcher search.Searcher) *session.Session {
	return &session.Session{
		ID:        id,
		Cart:      cart.NewStore(),
		Suggester: search.NewSuggester(searcher, search.Options{}),
	}
}

func CreateTestRequestWithSession(method, target string, body io.Reader, s *session.Session, pathParams map[string]string) *http.Request {
	req := CreateTestRequestWithoutSession(method, target, body, pathParams)

	return req.WithContext(session.WithSession(req.Context(), s))
}

func CreateTestRequestWithoutSession(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.WithValue(req.Context(), middleware.LoggerKey, logger)

	return req.WithContext(ctx)
}
