package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weather-lookup/internal/api"
	"weather-lookup/internal/config"
	"weather-lookup/internal/scheduler"
	"weather-lookup/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	// Bootstrap logger until the configured level is known
	logger, _ := zap.NewProduction()
	zap.ReplaceGlobals(logger)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = cfg.ZapLevel()
	if logger, err = zapCfg.Build(); err != nil {
		zap.L().Fatal("Failed to build logger", zap.Error(err))
	}
	defer logger.Sync()

	zap.ReplaceGlobals(logger)
	logger.Info("Starting Weather Lookup Service")

	backgrounds := services.NewBackgroundSelector(cfg.Assets.URLPrefix, logger)
	lookup := services.NewLookupHandler(backgrounds, logger)
	sessions := services.NewSessionStore(cfg.Session.TTL, cfg.Session.MaxSize, logger)

	// Initialize scheduler
	sweepScheduler := scheduler.NewScheduler(sessions, cfg.Session.SweepSpec, logger)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "weather-lookup",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: errorHandler,
	})

	// Setup handlers and routes
	handler := api.NewHandler(lookup, sessions, sweepScheduler, cfg.Session.ChatWindow, logger)
	api.SetupRoutes(app, handler, api.RouteConfig{
		CookieName:     cfg.Session.CookieName,
		CookieMaxAge:   cfg.Session.TTL,
		AssetDir:       cfg.Assets.Dir,
		AssetURLPrefix: cfg.Assets.URLPrefix,
	}, logger)

	// Start scheduler
	if err := sweepScheduler.Start(); err != nil {
		logger.Fatal("Failed to start scheduler", zap.Error(err))
	}

	// Start server in goroutine
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("Starting server", zap.String("address", addr))

		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sweepScheduler.Stop()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}

func errorHandler(c *fiber.Ctx, err error) error {
	zap.L().Error("HTTP error",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err))

	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   err.Error(),
		"success": false,
	})
}
