package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jcmexdev/shopping-cart/internal/cart/storage"
	"github.com/jcmexdev/shopping-cart/internal/cart/storage/memory"
	"github.com/jcmexdev/shopping-cart/internal/cart/storage/redis"
	"github.com/jcmexdev/shopping-cart/internal/cart/storage/sqlite"
	"github.com/jcmexdev/shopping-cart/internal/httpx"
	"github.com/jcmexdev/shopping-cart/internal/pkg/telemetry"
)

func main() {
	telemetry.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.SetupTracer(ctx, getEnv("OTEL_SERVICE_NAME", "cart-service"))
	if err != nil {
		slog.Error("failed to initialise tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	repo, cleanup, err := openRepository(ctx)
	if err != nil {
		slog.Error("failed to open cart storage", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	handler := httpx.NewHandler(repo)
	router := httpx.NewRouter(handler)

	addr := ":" + getEnv("PORT", "8080")
	srv := &http.Server{Addr: addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("http shutdown error", "error", err)
		}
	}()

	slog.Info("cart service running", "addr", addr, "backend", getEnv("CART_BACKEND", "memory"))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("http server failed", "error", err)
		os.Exit(1)
	}
}

// openRepository selects the persistence backend from CART_BACKEND:
// "memory" (default), "sqlite", or "redis".
func openRepository(ctx context.Context) (storage.Repository, func(), error) {
	switch backend := getEnv("CART_BACKEND", "memory"); backend {
	case "memory":
		return memory.New(), func() {}, nil

	case "sqlite":
		repo, err := sqlite.Open(getEnv("SQLITE_PATH", "./data/carts.db"))
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil

	case "redis":
		repo := redis.New(getEnv("REDIS_ADDR", "localhost:6379"))
		if err := repo.Ping(ctx); err != nil {
			_ = repo.Close()
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil

	default:
		return nil, nil, errors.New("unknown CART_BACKEND: " + backend)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
