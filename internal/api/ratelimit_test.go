package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitMiddleware(t *testing.T) {
	ts := setupTestServer(t, func(o *Options) {
		o.RateLimitPerMinute = 1
		o.RateLimitBurst = 1
	})

	first := ts.api.Get("/api/v1/facets", "X-Real-IP: 198.51.100.1")
	require.Equal(t, http.StatusOK, first.Code)

	second := ts.api.Get("/api/v1/facets", "X-Real-IP: 198.51.100.1")
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "60", second.Header().Get("Retry-After"))

	env := decodeEnvelope[map[string]any](t, second.Body.Bytes())
	require.NotNil(t, env.Error)
	assert.Equal(t, "RATE_LIMITED", env.Error.Code)

	other := ts.api.Get("/api/v1/facets", "X-Real-IP: 198.51.100.2")
	assert.Equal(t, http.StatusOK, other.Code, "clients are limited independently")

	health := ts.api.Get("/health", "X-Real-IP: 198.51.100.1")
	assert.Equal(t, http.StatusOK, health.Code, "health checks are never limited")
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{
			name:       "forwarded for takes the first hop",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"},
			remoteAddr: "10.0.0.2:5000",
			want:       "203.0.113.9",
		},
		{
			name:       "real ip",
			headers:    map[string]string{"X-Real-IP": "203.0.113.10"},
			remoteAddr: "10.0.0.2:5000",
			want:       "203.0.113.10",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "10.0.0.2:5000",
			want:       "10.0.0.2",
		},
		{
			name:       "remote addr that is not host:port",
			remoteAddr: "pipe",
			want:       "pipe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, getClientIP(r))
		})
	}
}
