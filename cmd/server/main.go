package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hongminglow/movie-catalog/internal/config"
	"github.com/hongminglow/movie-catalog/internal/logger"
	"github.com/hongminglow/movie-catalog/internal/server"
	"github.com/hongminglow/movie-catalog/internal/storage"
	"github.com/hongminglow/movie-catalog/internal/storage/memory"
	"github.com/hongminglow/movie-catalog/internal/storage/postgres"
)

const serviceName = "movie-catalog"

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLog, closeLog, err := logger.New(cfg, serviceName)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	slog.SetDefault(appLog)
	if envErr != nil {
		appLog.Info("no .env file found; relying on existing environment")
	}

	if err := run(cfg, appLog); err != nil {
		appLog.Error("server stopped with error", slog.Any("error", err))
		_ = closeLog()
		os.Exit(1)
	}
	if err := closeLog(); err != nil {
		log.Printf("close logger: %v", err)
	}
}

func run(cfg config.Config, appLog *slog.Logger) error {
	ctx := context.Background()
	store, err := openStore(ctx, cfg, appLog)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := server.New(cfg, store, appLog)
	if err := srv.SeedAdmin(ctx); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("movie catalog listening", slog.String("addr", cfg.HTTPAddress()))
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		appLog.Info("shutting down", slog.String("signal", sig.String()))
	case err := <-errCh:
		return err
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(ctxShutdown)
}

// openStore picks the persistence backend from DATABASE_URL.
func openStore(ctx context.Context, cfg config.Config, appLog *slog.Logger) (storage.Store, error) {
	if cfg.InMemoryStore() {
		appLog.Warn("using in-memory store; data is lost on restart")
		return memory.New(), nil
	}
	return postgres.New(ctx, cfg.DatabaseURL)
}
