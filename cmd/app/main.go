package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prasetyowira/wifiqr/api"
	"github.com/prasetyowira/wifiqr/config"
	"github.com/prasetyowira/wifiqr/constant"
	"github.com/prasetyowira/wifiqr/domain/wifi"
	"github.com/prasetyowira/wifiqr/infrastructure/cache"
	appLogger "github.com/prasetyowira/wifiqr/infrastructure/logger"
	"github.com/prasetyowira/wifiqr/infrastructure/qrcode"
)

func main() {
	// Load configuration from file and environment variables
	configFile := os.Getenv("CONFIG_FILE")
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		appLogger.Initialize("INFO")
		appLogger.Fatal(constant.MsgFailedToLoadConfig, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAppConfig,
				Message: err.Error(),
				Type:    constant.ErrTypeApp,
			},
			Data: map[string]interface{}{
				constant.DataConfigFile: configFile,
			},
		})
	}

	appLogger.Initialize(cfg.LogLevel)
	defer appLogger.Close()

	appLogger.Info(constant.MsgApplicationStarting, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
		Data: map[string]interface{}{
			constant.DataPort:        cfg.Port,
			constant.DataLogoDir:     cfg.LogoDir,
			constant.DataEnvironment: appLogger.Environment(cfg.LogLevel),
		},
	})

	cacheLRU := cache.NewNamespaceLRU(cfg.CacheSize)
	renderer := qrcode.NewStyledRenderer(uint8(cfg.ModuleWidth), cfg.BorderWidth)
	service := wifi.NewService(renderer, qrcode.NewTextRenderer(false), cacheLRU, cfg.LogoDir)

	// Create API handler and router
	handler := api.NewHandler(service)
	router := api.NewRouter(handler, cfg)
	router.SetupRoutes()

	// Configure HTTP server
	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		appLogger.Info(constant.MsgServerStarting, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Data: map[string]interface{}{
				constant.DataPort: cfg.Port,
			},
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal(constant.MsgServerFailedToStart, appLogger.LoggerInfo{
				ContextFunction: constant.CtxMain,
				Error: &appLogger.CustomError{
					Code:    constant.ErrCodeAppServerStart,
					Message: err.Error(),
					Type:    constant.ErrTypeApp,
				},
				Data: map[string]interface{}{
					constant.DataPort: cfg.Port,
				},
			})
		}
	}()

	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info(constant.MsgServerShuttingDown, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error(constant.MsgServerShutdownError, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAppServerShutdown,
				Message: err.Error(),
				Type:    constant.ErrTypeApp,
			},
		})
	}

	appLogger.Info(constant.MsgServerStopped, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
	})
}
