package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prasetyowira/wifiqr/constant"
	appLogger "github.com/prasetyowira/wifiqr/infrastructure/logger"
	"github.com/stretchr/testify/assert"
)

func TestRequestLogger_SetsRequestID(t *testing.T) {
	// Arrange
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = appLogger.RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	// Act
	RequestLogger()(next).ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(constant.HeaderRequestID))
}

func TestRequestLogger_KeepsIncomingRequestID(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = appLogger.RequestID(r.Context())
	})
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(constant.HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()

	RequestLogger()(next).ServeHTTP(w, req)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", w.Header().Get(constant.HeaderRequestID))
}

func TestStatusResponseWriter_CapturesSize(t *testing.T) {
	rec := httptest.NewRecorder()
	w := newStatusResponseWriter(rec)

	_, _ = w.Write([]byte("hello"))
	_, _ = w.Write([]byte("!"))

	assert.Equal(t, http.StatusOK, w.status)
	assert.Equal(t, 6, w.size)
}

func TestRateLimit_BlocksAfterBurst(t *testing.T) {
	// Arrange
	handler := RateLimit(0.001, 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	do := func(remote string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/wifi/qrcode", nil)
		req.RemoteAddr = remote
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	// Act & Assert
	assert.Equal(t, http.StatusOK, do("10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, do("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:1002"))
	// Other clients have their own bucket.
	assert.Equal(t, http.StatusOK, do("10.0.0.2:1000"))
}

func TestRateLimit_DisabledWhenRateNotPositive(t *testing.T) {
	handler := RateLimit(0, 1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	req.RemoteAddr = "192.168.1.5:4242"
	assert.Equal(t, "192.168.1.5", clientIP(req))

	req.RemoteAddr = "192.168.1.5"
	assert.Equal(t, "192.168.1.5", clientIP(req))
}
