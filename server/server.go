package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"
	"go-link-shortener/config"
	"go-link-shortener/handlers"
	"go-link-shortener/metrics"
	"go-link-shortener/services"
	"go-link-shortener/storage"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// newLinkHandler is swapped out in tests.
var newLinkHandler = setupLinkHandler

// Run starts the HTTP server and blocks until ctx is done or an interrupt arrives.
func Run(ctx context.Context, logger *zap.Logger, cfg *config.Config) error {
	m := metrics.New()
	store := storage.NewInMemoryStorage(cfg.StorageCapacity, logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	linkHandler, err := newLinkHandler(ctx, cfg, store, logger, m)
	if err != nil {
		return err
	}

	defer linkHandler.Close()

	router := setupRouter(linkHandler, cfg, logger, m)
	server := setupServer(cfg, router)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- startServer(server, logger)
	}()

	return waitForShutdown(ctx, server, logger, serveErr)
}

func setupLinkHandler(ctx context.Context, cfg *config.Config, store storage.Storage, logger *zap.Logger, m *metrics.Metrics) (handlers.LinkHandlerInterface, error) {
	handlerCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()

	linkService := services.NewLinkService(store, cfg.BaseURL, services.WithMetrics(m))

	handler, err := handlers.NewLinkHandler(handlerCtx, linkService, cfg, logger, m)
	if err != nil {
		logger.Error("Failed to create link handler", zap.Error(err))
		return nil, err
	}

	logger.Debug("Link handler created successfully")
	return handler, nil
}

func setupRouter(linkHandler handlers.LinkHandlerInterface, cfg *config.Config, logger *zap.Logger, m *metrics.Metrics) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), handlers.RequestLogger(logger), handlers.MetricsMiddleware(m))
	handlers.RegisterRoutes(router, linkHandler, cfg)
	return router
}

func setupServer(cfg *config.Config, router *gin.Engine) *http.Server {
	return &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           router,
		ReadHeaderTimeout: cfg.RequestTimeout,
	}
}

// startServer blocks until the server stops. It returns nil after Shutdown.
func startServer(srv *http.Server, logger *zap.Logger) error {
	logger.Info("Starting server", zap.String("address", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", zap.Error(err))
		return err
	}
	logger.Debug("Server stopped")
	return nil
}

// waitForShutdown blocks until the server fails or a stop is requested.
// A server failure is returned wrapped; a stop shuts the server down gracefully.
func waitForShutdown(ctx context.Context, srv *http.Server, logger *zap.Logger, serveErr <-chan error) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve %s: %w", srv.Addr, err)
		}
		return nil
	case <-quit:
		logger.Info("Received interrupt signal. Initiating server shutdown...")
	case <-ctx.Done():
		logger.Info("Context done. Initiating server shutdown...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	logger.Info("Server gracefully stopped")
	return nil
}
