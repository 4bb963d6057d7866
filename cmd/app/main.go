package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sokolink/sokolink-app/api/routes"
	"github.com/sokolink/sokolink-app/internal/app"
	"github.com/sokolink/sokolink-app/internal/catalog"
	"github.com/sokolink/sokolink-app/internal/session"
	"github.com/sokolink/sokolink-app/pkg/config"
	"github.com/sokolink/sokolink-app/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "app"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "app",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	sessions, err := session.NewManager(cfg.Session)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	pageRouter, err := app.New(app.Params{
		Config:   cfg,
		Logger:   logg,
		Catalog:  catalog.NewProvider(),
		Sessions: sessions,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create page router", err)
		os.Exit(1)
	}
	if err := pageRouter.Start(context.Background()); err != nil {
		logg.Error(context.Background(), "failed to start page router", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting app server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, pageRouter, sessions),
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "app server stopped unexpectedly", err)
			pageRouter.Close()
			os.Exit(1)
		}
	case <-sigCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "server shutdown failed", err)
		}
	}

	// Detaches the session subscription and aborts any pending payment.
	pageRouter.Close()
	logg.Info(ctx, "app server stopped")
}
