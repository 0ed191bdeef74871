package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"datacatalog/internal/api"
	"datacatalog/internal/bus"
	"datacatalog/internal/config"
	"datacatalog/internal/dataset"
	"datacatalog/internal/tag"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Str("level", cfg.LogLevel).Msg("Invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	dbPool := mustOpenDB(cfg.DatabaseDSN)
	defer dbPool.Close()

	datasetRepository := dataset.NewPostgresRepo(dbPool)
	tagRepository := tag.NewPostgresRepo(dbPool)

	// The bus routing table is assembled once here; a duplicate or missing
	// registration is a boot failure, never a runtime surprise.
	messageBus := bus.New()
	modules := []bus.Module{
		dataset.NewModule(datasetRepository, tagRepository),
		tag.NewModule(tagRepository),
	}
	for _, m := range modules {
		if err := m.Register(messageBus); err != nil {
			log.Fatal().Err(err).Msg("Failed to register message handlers")
		}
	}

	router := api.NewRouter(messageBus, dbPool, cfg)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("Starting server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

func mustOpenDB(dsn string) *pgxpool.Pool {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot create db pool")
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Fatal().Err(err).Msg("Cannot ping database")
	}
	log.Info().Msg("Database connection OK")
	return pool
}
