package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"oak-ledger/internal/handler"
	mid "oak-ledger/internal/middleware"
	"oak-ledger/internal/notify"
	"oak-ledger/internal/session"
	"oak-ledger/internal/store"
	"oak-ledger/pkg/config"
	"oak-ledger/pkg/database"
	"oak-ledger/pkg/ledgerapi"
	"oak-ledger/pkg/logger"
	"oak-ledger/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting oak-ledger", appConfig.LogFields()...)

	// Initialize Prometheus metrics
	prometheus.Register(promclient.DefaultRegisterer)

	// Session storage
	storage, closeStorage, err := openSessionStorage(appConfig, log)
	if err != nil {
		log.Fatal("Failed to open session storage", zap.Error(err))
	}
	defer closeStorage()

	app := session.NewAppContext(storage, appConfig.Session.DefaultRole, log)
	if err := app.Bootstrap(context.Background()); err != nil {
		log.Fatal("Failed to restore session", zap.Error(err))
	}

	// Record store
	client := ledgerapi.NewClient(appConfig.Ledger.BaseURL, appConfig.Ledger.Timeout, app, log)
	policy, err := store.ParsePolicy(appConfig.Store.ConsistencyPolicy)
	if err != nil {
		log.Fatal("Invalid consistency policy", zap.Error(err))
	}
	notices := notify.NewCenter(notify.DefaultCapacity)
	records := store.New(client, app, notices, log,
		store.WithPolicy(policy),
		store.WithLocation(appConfig.Location()))

	if app.Authenticated() {
		if err := records.Refresh(context.Background()); err != nil {
			log.Warn("Initial load failed, screens start empty", zap.Error(err))
		}
	} else {
		log.Info("No stored session, waiting for login")
	}

	// Initialize Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(mid.RequestIDMiddleware)
	e.Use(logger.Middleware())
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	handler.New(app, records, client, client, notices).Register(e)

	// Start server
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		port := appConfig.Server.Port
		log.Info("Starting server", zap.String("port", port))
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
}

func openSessionStorage(cfg *config.Config, log *zap.Logger) (session.Storage, func(), error) {
	if cfg.Session.Store == config.SessionStoreMemory {
		log.Info("Using in-memory session storage")
		return session.NewMemoryStorage(), func() {}, nil
	}

	db, err := database.InitDB(&cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	log.Info("Database connection established")

	storage, err := session.NewGormStorage(db)
	if err != nil {
		_ = database.Close(db)
		return nil, nil, err
	}
	return storage, func() {
		if err := database.Close(db); err != nil {
			log.Warn("Failed to close database", zap.Error(err))
		}
	}, nil
}
