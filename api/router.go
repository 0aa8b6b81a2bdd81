package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	appMiddleware "github.com/prasetyowira/wifiqr/api/middleware"
	"github.com/prasetyowira/wifiqr/config"
	"github.com/prasetyowira/wifiqr/constant"
	appLogger "github.com/prasetyowira/wifiqr/infrastructure/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router represents the application router
type Router struct {
	handler *Handler
	router  *chi.Mux
	cfg     config.Config
}

// NewRouter creates a new router
func NewRouter(handler *Handler, cfg config.Config) *Router {
	r := chi.NewRouter()

	// Middleware setup
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(appMiddleware.RequestLogger())

	return &Router{
		handler: handler,
		router:  r,
		cfg:     cfg,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() {
	appLogger.Info(constant.MsgSettingUpRoutes, appLogger.LoggerInfo{
		ContextFunction: constant.CtxRouter,
		Data: map[string]interface{}{
			constant.DataAuthEnabled: r.cfg.AuthUser != "",
		},
	})

	// API routes, rate limited and optionally behind Basic Auth
	r.router.Group(func(api chi.Router) {
		api.Use(appMiddleware.RateLimit(r.cfg.RateLimitRPS, r.cfg.RateLimitBurst))
		if r.cfg.AuthUser != "" {
			api.Use(middleware.BasicAuth(constant.AuthRealm, map[string]string{
				r.cfg.AuthUser: r.cfg.AuthPass,
			}))
		}

		api.Post(constant.RoutePayload, r.handler.Payload)
		api.Post(constant.RouteQRCode, r.handler.QRCode)
		api.Get(constant.RouteQRCode, r.handler.QRCodeQuery)
		api.Post(constant.RouteQRCodeBase64, r.handler.QRCodeBase64)
		api.Get(constant.RouteQRCodeText, r.handler.QRCodeText)
	})

	// Healthcheck
	r.router.Get(constant.RouteHealthcheck, func(w http.ResponseWriter, r *http.Request) {
		appLogger.CtxDebug(r.Context(), constant.MsgHealthcheckRequest, appLogger.LoggerInfo{
			ContextFunction: constant.CtxRouter,
		})

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(constant.MsgHealthy))
	})

	// Prometheus metrics
	r.router.Handle(constant.RouteMetrics, promhttp.Handler())
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
