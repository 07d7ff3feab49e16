package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"quicksell-pos/internal/config"
	"quicksell-pos/internal/handler"
	applog "quicksell-pos/internal/log"
	"quicksell-pos/internal/repository"
	"quicksell-pos/internal/service"
	"quicksell-pos/internal/ws"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Load config
	type Config struct {
		Log      config.Log
		HTTP     config.HTTP
		Store    config.Store
		Postgres config.Postgres
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	log := applog.NewSlogLogger(cfg.Log)

	// 2. Open the store, once, for the lifetime of the process
	store, err := repository.Open(ctx, cfg.Store, cfg.Postgres, log)
	if err != nil {
		return fmt.Errorf("error opening store: %w", err)
	}
	defer store.Close()
	log.Info("store ready", slog.String("backend", store.Name()))

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub(log)
	go wsHub.Run(ctx)

	// 4. Dependency Injection (Wiring Layers)
	writeLock := &service.WriteLock{}
	svc := handler.Services{
		Catalog:   service.NewCatalogService(store, wsHub, log),
		Sales:     service.NewSaleService(store),
		Checkout:  service.NewCheckoutService(store, writeLock, wsHub, nil, log),
		Void:      service.NewVoidService(store, writeLock, wsHub, log),
		Dashboard: service.NewDashboardService(store, nil),
	}

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:               cfg.HTTP.AppName,
		ErrorHandler:          handler.ErrorHandler(log),
		DisableStartupMessage: true,
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 6. Routes
	handler.RegisterRoutes(app, svc, handler.NewCartRegistry(), wsHub)

	// 7. Graceful Shutdown
	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
		log.Info("http server listening", slog.String("addr", addr))
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("error running http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("server exited")
	return nil
}
