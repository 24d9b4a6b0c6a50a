package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/api/handlers"
	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/api/router"
	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/auth"
	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/infra/database/postgres"
	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/pkg/config"
	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/pkg/logger"
	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/service/directory"
	watchlistservice "github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/service/watchlist"
)

const (
	serviceName    = "stock-market-api"
	serviceVersion = "1.0.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := logger.Init(logger.Config{
		Level:          cfg.Logging.Level,
		Format:         cfg.Logging.Format,
		FileEnabled:    cfg.Logging.FileEnabled,
		FilePath:       cfg.Logging.FilePath,
		RotationSize:   cfg.Logging.RotationSize,
		RetentionDays:  cfg.Logging.RetentionDays,
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	log.Info().
		Str("version", serviceVersion).
		Msg("🚀 Starting Stock Market API Server...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connections are lazy; a down database does not block startup.
	// The first request that needs one triggers the attempt.
	pg := postgres.NewConnector(cfg)

	authProvider := auth.NewProvider(cfg.Auth, func(ctx context.Context) (auth.Store, error) {
		pool, err := pg.Connect(ctx)
		if err != nil {
			return nil, err
		}
		return postgres.NewAuthStore(pool), nil
	})

	watchlistSvc := watchlistservice.NewService(authProvider, postgres.NewWatchlistRepository(pg))
	directorySvc := directory.NewService(postgres.NewUserDirectory(pg))

	// Access logs go to their own rotated file when file logging is on
	var accessLogger *zerolog.Logger
	if cfg.Logging.FileEnabled {
		al := logger.NewAccessLogger(cfg.Logging.FilePath, cfg.Logging.RotationSize, cfg.Logging.RetentionDays)
		accessLogger = &al
	}

	r := router.New(&router.Config{
		Mode:             cfg.Server.Mode,
		AuthHandler:      handlers.NewAuthHandler(authProvider),
		WatchlistHandler: handlers.NewWatchlistHandler(watchlistSvc),
		UsersHandler:     handlers.NewUsersHandler(directorySvc),
		HealthHandler:    handlers.NewHealthHandler(pg),
		Sessions:         authProvider,
		CORSOrigin:       cfg.Auth.BaseURL,
		AccessLogger:     accessLogger,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("✅ API server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
