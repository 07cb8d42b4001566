package errors_test

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *appErrors.AppError
		code       string
		statusCode int
	}{
		{"validation", appErrors.ValidationError("bad"), appErrors.ErrCodeValidation, http.StatusBadRequest},
		{"bad request", appErrors.BadRequestError("bad"), appErrors.ErrCodeBadRequest, http.StatusBadRequest},
		{"not found", appErrors.NotFoundError("missing"), appErrors.ErrCodeNotFound, http.StatusNotFound},
		{"network", appErrors.NetworkError("offline"), appErrors.ErrCodeNetwork, http.StatusServiceUnavailable},
		{"upstream", appErrors.APIError("500"), appErrors.ErrCodeUpstream, http.StatusBadGateway},
		{"superseded", appErrors.SupersededError("stale"), appErrors.ErrCodeSuperseded, http.StatusConflict},
		{"too many", appErrors.TooManyRequestsError("slow down"), appErrors.ErrCodeTooManyRequests, http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.statusCode, tt.err.StatusCode)
		})
	}
}

func TestWrapping(t *testing.T) {
	cause := stdErrors.New("dial tcp: connection refused")
	err := fmt.Errorf("list products: %w", appErrors.NetworkError("Catalog unreachable").WithError(cause))

	appErr, ok := appErrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrCodeNetwork, appErr.Code)
	assert.ErrorIs(t, err, cause)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeNetwork))
	assert.False(t, appErrors.HasCode(err, appErrors.ErrCodeNotFound))
	assert.False(t, appErrors.HasCode(cause, appErrors.ErrCodeNetwork))
}

func TestWithDetail(t *testing.T) {
	err := appErrors.APIError("Catalog request failed").WithDetail("upstream status 500")

	assert.Equal(t, "upstream status 500", err.Detail)
	assert.Equal(t, "Catalog request failed", err.Error())
}
