package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/escolafm/portal-backend/internal/app"
	"github.com/escolafm/portal-backend/internal/config"
	"github.com/escolafm/portal-backend/internal/db"
	"github.com/escolafm/portal-backend/internal/pkg/logger"
	"github.com/escolafm/portal-backend/internal/pkg/storage"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Structured logger
	zlog, err := logger.New(cfg.IsProduction)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zlog.Sync()

	// Connect DB
	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		zlog.Fatal("failed to connect to db", zap.Error(err))
	}
	defer pool.Close()

	// File storage for uploaded materials
	store, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		zlog.Fatal("failed to init storage", zap.Error(err))
	}

	// Assemble application container
	container := app.NewContainer(app.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		DBPool:          pool,
		Log:             zlog,
		Storage:         store,
		JWTSecret:       cfg.JWTSecret,
		JWTTTL:          cfg.JWTAccessTokenTTL,
		BcryptCost:      cfg.BcryptCost,
		ClassSlots:      cfg.ClassSlots,
		LowThreshold:    cfg.LowThreshold(),
		MediumThreshold: cfg.MediumThreshold(),
	})

	// Warm the availability engine and attach it to the change feed.
	if err := container.Engine.Start(ctx, container.Feed); err != nil {
		zlog.Fatal("failed to start availability engine", zap.Error(err))
	}
	defer container.Engine.Stop()

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	// Run server in separate goroutine
	go func() {
		zlog.Info("server running", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	zlog.Info("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Warn("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server exited gracefully")
}
