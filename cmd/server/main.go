package main

import (
	"context"
	"time"

	"github.com/brightpaths/org-system/internal/api"
	"github.com/brightpaths/org-system/internal/infrastructure/config"
	mongodb "github.com/brightpaths/org-system/internal/infrastructure/db/mongo"
	redisdb "github.com/brightpaths/org-system/internal/infrastructure/db/redis"
	"github.com/brightpaths/org-system/internal/infrastructure/queue"
	"github.com/brightpaths/org-system/pkg/logger"
)

const auditRetention = 90 * 24 * time.Hour

// @title           Org Promotion API
// @version         1.0
// @description     Organizational hierarchy and promotion workflow service.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	userRepo := mongodb.NewUserRepository(db)
	requestRepo := mongodb.NewPromotionRequestRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := requestRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("promotion request index creation failed")
	}
	if err := auditRepo.EnsureIndexes(ctx, auditRetention); err != nil {
		log.Fatal().Err(err).Msg("audit index creation failed")
	}

	audit := queue.NewAuditDispatcher(cfg.AuditWorkers, auditRepo, log)
	audit.Start(ctx)

	e := api.NewRouter(cfg, db, rdb, audit, log)

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
