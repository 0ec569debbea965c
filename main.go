package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"roster-viewer-go/config"
	"roster-viewer-go/db"
	"roster-viewer-go/handlers"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	store := newSelectionStore(cfg, logger)

	apiHandler := handlers.NewAPIHandler(store, cfg.StudentsFile, cfg.CategoryColumn, logger)
	router := handlers.SetupRouter(apiHandler)

	logger.Info("starting roster viewer",
		zap.String("addr", cfg.Addr()),
		zap.String("file", cfg.StudentsFile),
		zap.String("column", cfg.CategoryColumn))
	if err := router.Run(cfg.Addr()); err != nil {
		logger.Fatal("failed to run server", zap.Error(err))
	}
}

// newSelectionStore uses Redis when configured and reachable, else memory.
func newSelectionStore(cfg config.Config, logger *zap.Logger) db.SelectionStore {
	if cfg.RedisAddr == "" {
		logger.Info("REDIS_ADDR not set, keeping selections in memory")
		return db.NewMemoryStore(cfg.SessionTTL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := db.InitializeRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Warn("falling back to in-memory selections", zap.Error(err))
		return db.NewMemoryStore(cfg.SessionTTL)
	}
	logger.Info("connected to Redis", zap.String("addr", cfg.RedisAddr), zap.Int("db", cfg.RedisDB))
	return db.NewRedisService(client, cfg.SessionTTL, logger)
}
