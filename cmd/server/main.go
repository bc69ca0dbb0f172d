// Spura - AI journaling companion server
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

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/spura-app/spura/internal/api"
	"github.com/spura-app/spura/internal/completion"
	"github.com/spura-app/spura/internal/config"
	"github.com/spura-app/spura/internal/identity"
	"github.com/spura-app/spura/internal/journal"
	"github.com/spura-app/spura/internal/middleware"
	"github.com/spura-app/spura/internal/store"
	"github.com/spura-app/spura/web"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "provider", cfg.Completion.Provider, "dev", cfg.IsDevelopment())

	// Initialize dependencies.
	repo, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close repository", "error", closeErr)
		}
	}()

	if err := repo.Ping(context.Background()); err != nil {
		slog.Error("Database health check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database connected")

	llm, err := completion.New(context.Background(), cfg.Completion)
	if err != nil {
		slog.Error("Failed to initialize completion provider", "error", err)
		os.Exit(1)
	}
	slog.Info("Completion provider ready", "provider", cfg.Completion.Provider)

	journalLog, err := journal.NewLogger(cfg.JournalLog.Enabled, cfg.JournalLog.Dir, cfg.JournalLog.QueueSize, logger)
	if err != nil {
		slog.Error("Failed to initialize journal logger", "error", err)
		os.Exit(1)
	}
	if journalLog != nil {
		defer func() {
			if closeErr := journalLog.Close(); closeErr != nil {
				slog.Error("Failed to close journal logger", "error", closeErr)
			}
		}()
	}

	svc := journal.NewService(llm, repo, journalLog)

	rateLimiter := api.NewRateLimiter(cfg.RateLimit.RequestsPerWindow, cfg.RateLimit.WindowDuration)
	defer rateLimiter.Stop()

	handler := api.NewHandler(repo, svc, rateLimiter, cfg.MaxRequestBodySize)
	verifier := identity.NewVerifier(cfg.AuthJWTSecret)

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	allowedOrigins := []string{"*"}
	if !cfg.IsDevelopment() {
		allowedOrigins = []string{cfg.FrontendURL}
	}
	r.Use(middleware.CORS(allowedOrigins))

	// All API routes touch user-scoped data, so the whole group is gated.
	r.Group(func(r chi.Router) {
		r.Use(identity.Middleware(verifier))
		handler.RegisterRoutes(r)
	})

	// Serve embedded frontend (SPA catch-all).
	r.Handle("/*", web.SPAHandler())

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // completion calls can be slow
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
