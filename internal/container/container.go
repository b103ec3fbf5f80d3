package container

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/FACorreiaa/go-city-recommendations/app/db"
	"github.com/FACorreiaa/go-city-recommendations/config"
	"github.com/FACorreiaa/go-city-recommendations/internal/api/recommendation"
)

// Container holds all application dependencies
type Container struct {
	Config                *config.Config
	Logger                *slog.Logger
	Pool                  *pgxpool.Pool
	RecommendationHandler *recommendation.HandlerImpl
}

// NewContainer initializes and returns a new dependency container. The
// database being unreachable is not fatal: the repository runs against an
// uninitialized store and collapses every query to empty data, so the
// service still answers with fallback recommendations.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	var pool *pgxpool.Pool

	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config, continuing without store", slog.Any("error", err))
	} else {
		if err := database.RunMigrations(dbConfig.ConnectionURL, logger); err != nil {
			logger.Error("Failed to run database migrations", slog.Any("error", err))
		}
		pool, err = database.Init(dbConfig.ConnectionURL, logger)
		if err != nil {
			logger.Error("Failed to initialize database pool, continuing without store", slog.Any("error", err))
			pool = nil
		} else if !database.WaitForDB(ctx, pool, logger) {
			logger.Error("Database not ready after waiting, continuing without store")
			pool.Close()
			pool = nil
		}
	}

	// A nil interface keeps the repository's uninitialized-store check
	// honest; a typed-nil *pgxpool.Pool would defeat it.
	var db recommendation.PGXQuerier
	if pool != nil {
		db = pool
	}

	recommendationRepo := recommendation.NewPostgresRecommendationRepository(db, logger)
	recommendationService := recommendation.NewRecommendationService(recommendationRepo, cfg, logger, nil)
	recommendationHandler := recommendation.NewHandlerImpl(recommendationService, logger)

	return &Container{
		Config:                cfg,
		Logger:                logger,
		Pool:                  pool,
		RecommendationHandler: recommendationHandler,
	}, nil
}

// Close releases held resources.
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}
