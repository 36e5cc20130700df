package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/taskdesk/taskdesk-go/internal/app"
	"github.com/taskdesk/taskdesk-go/internal/config"
	"github.com/taskdesk/taskdesk-go/internal/handler"
	"github.com/taskdesk/taskdesk-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	a, err := app.Open(context.Background(), cfg.StoreDriver, cfg.StoreDSN, service.Options{
		Latency:     cfg.Latency,
		DeleteGrace: cfg.DeleteGrace,
	})
	if err != nil {
		slog.Error("store unavailable", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer a.Close()

	if user, ok, err := a.Sessions.Restore(context.Background()); err != nil {
		slog.Warn("restoring session failed", "error", err)
	} else if ok {
		slog.Info("resumed session", "email", user.Email)
	}

	r := handler.NewRouter(handler.RouterConfig{
		Sessions:    a.Sessions,
		Tasks:       a.Tasks,
		Preferences: a.Preferences,
		JWTSecret:   cfg.JWTSecret,
		JWTExpiry:   cfg.JWTExpiry,
		AuthRPS:     cfg.AuthRPS,
		AuthBurst:   cfg.AuthBurst,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
