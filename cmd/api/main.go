package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/studysphere/studysphere-go/internal/config"
	"github.com/studysphere/studysphere-go/internal/repository"
	"github.com/studysphere/studysphere-go/internal/server"
	"github.com/studysphere/studysphere-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg)

	ctx := context.Background()
	users, documents, db, err := openStores(ctx, cfg)
	if err != nil {
		slog.Error("store init failed", "driver", cfg.DatabaseDriver, "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
	}

	authService := service.NewAuthService(users, service.AuthOptions{
		Secret:     cfg.JWTSecret,
		TokenTTL:   cfg.TokenTTL,
		BcryptCost: cfg.BcryptCost,
	})
	documentService := service.NewDocumentService(documents, nil)

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: server.NewRouter(server.Options{
			Auth:               authService,
			Documents:          documentService,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			AuthRateLimitRPS:   cfg.AuthRateLimitRPS,
			AuthRateLimitBurst: cfg.AuthRateLimitBurst,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "driver", cfg.DatabaseDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

func setupLogger(cfg config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var h slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if cfg.IsProduction() {
		h = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(h))
}

// openStores returns the user and document stores for the configured driver.
// db is nil for the memory driver.
func openStores(ctx context.Context, cfg config.Config) (service.UserStore, service.DocumentStore, *sql.DB, error) {
	if cfg.DatabaseDriver == "memory" {
		slog.Warn("using in-memory stores, data is lost on restart")
		return repository.NewMemoryUserRepository(), repository.NewMemoryDocumentRepository(), nil, nil
	}

	dialect := repository.Dialect(cfg.DatabaseDriver)
	db, err := repository.NewDB(ctx, dialect, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, nil, err
	}

	if cfg.MigrateOnStart {
		if err := repository.Migrate(ctx, db, dialect); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
	}

	return repository.NewUserRepository(db, dialect), repository.NewDocumentRepository(db, dialect), db, nil
}
