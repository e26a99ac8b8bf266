package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const remoteAddr = "10.0.0.9:51234"

func newEngine(t *testing.T, trusted []string, handlers ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	require.NoError(t, r.SetTrustedProxies(trusted))
	r.Use(handlers...)
	r.POST("/api/booking", func(c *gin.Context) {
		c.String(http.StatusOK, c.ClientIP())
	})
	return r
}

func request(r http.Handler, header, value string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/booking", nil)
	req.RemoteAddr = remoteAddr
	if header != "" {
		req.Header.Set(header, value)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newEngine(t, []string{"10.0.0.9"}, RateLimitMiddleware(10))

	assert.Equal(t, http.StatusOK, request(r, "X-Forwarded-For", "203.0.113.7").Code)

	w := request(r, "X-Forwarded-For", "203.0.113.7")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"RateLimited"`)

	assert.Equal(t, http.StatusOK, request(r, "X-Forwarded-For", "198.51.100.2").Code)
}

func TestRateLimitMiddleware_IgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	r := newEngine(t, nil, RateLimitMiddleware(10))

	w := request(r, "X-Forwarded-For", "203.0.113.7")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "10.0.0.9", w.Body.String())

	// A rotated header is still the same peer.
	assert.Equal(t, http.StatusTooManyRequests, request(r, "X-Forwarded-For", "198.51.100.2").Code)
}

func TestRateLimiterStore_EvictsIdleVisitors(t *testing.T) {
	now := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	store := newRateLimiterStore(60)
	store.now = func() time.Time { return now }

	for i := 0; i < 50; i++ {
		store.getLimiter(fmt.Sprintf("203.0.113.%d", i))
	}
	assert.Equal(t, 50, store.size())

	now = now.Add(visitorIdleTTL - time.Second)
	store.getLimiter("198.51.100.2")
	assert.Equal(t, 51, store.size())

	now = now.Add(2 * time.Second)
	store.getLimiter("198.51.100.3")
	assert.Equal(t, 2, store.size())
}

func TestRequestLogger(t *testing.T) {
	r := newEngine(t, nil, RequestLogger(zap.NewNop()))

	w := request(r, "X-Request-ID", "req-42")
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))

	w = request(r, "", "")
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
}
