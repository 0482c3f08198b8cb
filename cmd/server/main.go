package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/ifsc-carteirinha/carteirinha-backend/internal/config"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/database"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/handler"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/logger"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/repository"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/router"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/service"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Carteirinha Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	cardRepo := repository.NewCardRepository(pool)
	grantRepo := repository.NewGrantRepository(pool)
	accountRepo := repository.NewAccountRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	sessionStore := service.NewRedisSessionStore(rdb)
	identityService := service.NewIdentityService(cfg, grantRepo, log)
	authService := service.NewAuthService(cfg, accountRepo, identityService, sessionStore)
	cardService := service.NewCardService(cardRepo, cfg, log)
	reviewService := service.NewReviewService(cardRepo, log)
	rolesService := service.NewRolesService(cfg, grantRepo, log)
	viewModeService := service.NewViewModeService(sessionStore, cfg.JWTExpiry, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:     handler.NewAuthHandler(authService, viewModeService),
		Card:     handler.NewCardHandler(cardService),
		Review:   handler.NewReviewHandler(cardService, reviewService),
		Roles:    handler.NewRolesHandler(rolesService),
		ViewMode: handler.NewViewModeHandler(viewModeService),
		Assets:   handler.NewAssetsHandler(),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
