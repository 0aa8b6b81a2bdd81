package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prasetyowira/wifiqr/config"
	"github.com/prasetyowira/wifiqr/constant"
	"github.com/prasetyowira/wifiqr/domain/wifi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestRouter(service Service, cfg config.Config) *Router {
	router := NewRouter(NewHandler(service), cfg)
	router.SetupRoutes()
	return router
}

func TestRouter_Healthcheck(t *testing.T) {
	// Arrange
	router := newTestRouter(new(MockService), config.Config{})
	req := httptest.NewRequest(http.MethodGet, constant.RouteHealthcheck, nil)
	w := httptest.NewRecorder()

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, constant.MsgHealthy, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(constant.HeaderRequestID))
}

func TestRouter_Metrics(t *testing.T) {
	router := newTestRouter(new(MockService), config.Config{})

	// One request so the HTTP counters have a sample.
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, constant.RouteHealthcheck, nil))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, constant.RouteMetrics, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_total{method="GET",path="/health",status="200"}`)
}

func TestRouter_RoutesToHandlers(t *testing.T) {
	service := new(MockService)
	service.On("Payload", mock.Anything, mock.Anything, mock.Anything).Return("WIFI:S:x;;", nil)
	service.On("QRCodePNG", mock.Anything, mock.Anything, mock.Anything).Return(pngBytes, nil)
	service.On("QRCodeBase64", mock.Anything, mock.Anything, mock.Anything).Return(wifi.Base64QRCode{Payload: "WIFI:S:x;;", Image: "AA=="}, nil)
	service.On("QRCodeText", mock.Anything, mock.Anything, mock.Anything).Return("██", nil)
	router := newTestRouter(service, config.Config{})

	tests := []struct {
		method      string
		target      string
		body        string
		contentType string
	}{
		{http.MethodPost, constant.RoutePayload, `{"ssid":"x"}`, constant.ContentTypeJSON},
		{http.MethodPost, constant.RouteQRCode, `{"ssid":"x"}`, constant.ContentTypePNG},
		{http.MethodGet, constant.RouteQRCode + "?ssid=x", "", constant.ContentTypePNG},
		{http.MethodPost, constant.RouteQRCodeBase64, `{"ssid":"x"}`, constant.ContentTypeJSON},
		{http.MethodGet, constant.RouteQRCodeText + "?ssid=x", "", constant.ContentTypeText},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.contentType, w.Header().Get(constant.HeaderContentType))
		})
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	router := newTestRouter(new(MockService), config.Config{})
	w := httptest.NewRecorder()

	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, constant.RoutePayload, nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouter_BasicAuth(t *testing.T) {
	// Arrange
	service := new(MockService)
	service.On("Payload", mock.Anything, wifi.NetworkSettings{SSID: "x"}, wifi.RenderOptions{}).Return("WIFI:S:x;;", nil)
	router := newTestRouter(service, config.Config{AuthUser: "admin", AuthPass: "pw"})

	// Act
	anonymous := httptest.NewRecorder()
	router.ServeHTTP(anonymous, httptest.NewRequest(http.MethodPost, constant.RoutePayload, strings.NewReader(`{"ssid":"x"}`)))

	authed := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, constant.RoutePayload, strings.NewReader(`{"ssid":"x"}`))
	req.SetBasicAuth("admin", "pw")
	router.ServeHTTP(authed, req)

	health := httptest.NewRecorder()
	router.ServeHTTP(health, httptest.NewRequest(http.MethodGet, constant.RouteHealthcheck, nil))

	// Assert
	assert.Equal(t, http.StatusUnauthorized, anonymous.Code)
	assert.Equal(t, http.StatusOK, authed.Code)
	assert.Equal(t, http.StatusOK, health.Code)
}

func TestRouter_RateLimit(t *testing.T) {
	service := new(MockService)
	service.On("QRCodeText", mock.Anything, mock.Anything, mock.Anything).Return("██", nil)
	router := newTestRouter(service, config.Config{RateLimitRPS: 0.001, RateLimitBurst: 1})

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, constant.RouteQRCodeText+"?ssid=x", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}
