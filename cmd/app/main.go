package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/silverium/labelgen/api"
	"github.com/silverium/labelgen/api/handlers"
	"github.com/silverium/labelgen/config"
	"github.com/silverium/labelgen/constant"
	"github.com/silverium/labelgen/domain/kepingan"
	"github.com/silverium/labelgen/domain/label"
	"github.com/silverium/labelgen/infrastructure/archive"
	"github.com/silverium/labelgen/infrastructure/cache"
	"github.com/silverium/labelgen/infrastructure/db"
	appLogger "github.com/silverium/labelgen/infrastructure/logger"
	"github.com/silverium/labelgen/infrastructure/printer"
	"github.com/silverium/labelgen/infrastructure/qrcode"
	"github.com/silverium/labelgen/infrastructure/registry"
	"github.com/silverium/labelgen/infrastructure/render"
	"github.com/silverium/labelgen/infrastructure/session"
	"github.com/silverium/labelgen/infrastructure/wilayahapi"
)

func main() {
	// Load configuration from environment variables
	cfg := config.LoadConfig()

	// Initialize logger based on environment
	isProduction := cfg.LogLevel == "INFO"
	appLogger.Initialize(isProduction)
	defer appLogger.Close()

	appLogger.Info(constant.MsgApplicationStarting, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
		Data: map[string]interface{}{
			constant.DataPort:        cfg.Port,
			constant.DataDBPath:      cfg.DatabaseURL,
			constant.DataEnvironment: cfg.LogLevel,
		},
	})

	// Create the batch journal
	journal, err := db.NewSQLiteJournal(cfg.DatabaseURL)
	if err != nil {
		appLogger.Fatal(constant.MsgFailedToInitDB, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAppDBInit,
				Message: err.Error(),
				Type:    constant.ErrTypeApp,
			},
			Data: map[string]interface{}{
				constant.DataDBPath: cfg.DatabaseURL,
			},
		})
	}
	defer journal.Close()

	cacheLRU := cache.NewNamespaceLRU(cfg.CacheSize)

	// Outbound clients share one injected session
	sess := session.NewStore(cfg.RegistryToken)
	registryClient := registry.NewClient(cfg.RegistryURL, sess)
	wilayahClient := wilayahapi.NewClient(cfg.WilayahURL)

	// Label pipeline
	qrGenerator := qrcode.NewGenerator(cfg.VerifBaseURL)
	assets := render.NewDirAssets(cfg.TemplateDir, cacheLRU)
	compositor := label.NewCompositor(qrGenerator, assets, render.NewRaster)
	packager := archive.NewZip()
	sheets := printer.NewSheet()

	service := kepingan.NewService(registryClient, compositor, packager, sheets, journal, cacheLRU)

	// Create API handlers and router
	handler := api.NewHandler(service)
	wilayahHandler := handlers.NewWilayahHandler(wilayahClient, cacheLRU)
	router := api.NewRouter(handler, wilayahHandler, cfg.JWTSecret)
	router.SetupRoutes()

	// Configure HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
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

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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
	signal.Notify(quit, os.Interrupt)
	<-quit

	appLogger.Info(constant.MsgServerShuttingDown, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
	})

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error(constant.MsgServerShutdownError, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAppShutdown,
				Message: err.Error(),
				Type:    constant.ErrTypeApp,
			},
		})
	}

	appLogger.Info(constant.MsgServerStopped, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
	})
}
