package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/noshnavigator/nosh-cli/internal/db"
	"github.com/noshnavigator/nosh-cli/internal/gateway/completion"
	"github.com/noshnavigator/nosh-cli/internal/server"
	"github.com/noshnavigator/nosh-cli/internal/server/auth"
)

func main() {
	// Local development convenience; production sets real env vars.
	_ = godotenv.Load()

	cfg := server.FromEnv()
	logger := log.New(os.Stdout, "[noshd] ", log.LstdFlags|log.LUTC)

	ctx := context.Background()
	repo, cleanup, err := buildUserRepository(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	defer cleanup()

	deps := server.Deps{
		Auth:      auth.NewService(repo),
		Tokens:    auth.NewTokenManager(cfg.JWTSecret),
		Completer: buildCompleter(cfg),
	}
	srv := server.New(cfg.HTTPAddr, logger, deps)

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("shutdown: %v", err)
	}
}

// buildUserRepository selects Postgres when DB_DSN is set, otherwise the
// in-memory repository that needs no external services.
func buildUserRepository(ctx context.Context, cfg server.Config, logger *log.Logger) (auth.UserRepository, func(), error) {
	if cfg.DBConnString == "" {
		logger.Printf("DB_DSN not set, using in-memory user store")
		return auth.NewInMemoryUserRepository(), func() {}, nil
	}

	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		return nil, nil, err
	}
	repo := auth.NewPostgresUserRepository(dbpool)
	if err := repo.EnsureSchema(ctx); err != nil {
		dbpool.Close()
		return nil, nil, err
	}
	return repo, dbpool.Close, nil
}

func buildCompleter(cfg server.Config) server.Completer {
	opts := []completion.Option{}
	if cfg.CompletionEndpoint != "" {
		opts = append(opts, completion.WithEndpoint(cfg.CompletionEndpoint))
	}
	if cfg.CompletionModel != "" {
		opts = append(opts, completion.WithModel(cfg.CompletionModel))
	}
	return completion.NewClient(cfg.CompletionAPIKey, opts...)
}
