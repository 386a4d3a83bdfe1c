package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sweetshop/inventory-api/internal/api"
	mongorepo "github.com/sweetshop/inventory-api/internal/infrastructure/db/mongo"
	redisrepo "github.com/sweetshop/inventory-api/internal/infrastructure/db/redis"
	"github.com/sweetshop/inventory-api/internal/pkg/config"
	"github.com/sweetshop/inventory-api/pkg/logger"
)

// @title        Sweet Shop Inventory API
// @version      1.0
// @description  Catalog and inventory management for a sweet shop: JWT auth, catalog CRUD, search, purchase and restock.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})

	if cfg.JWTSecret == "" {
		if !cfg.IsDevelopment() {
			log.Fatal().Msg("JWT_SECRET must be set outside development")
		}
		cfg.JWTSecret = "dev-secret-do-not-use-in-production"
		log.Warn().Msg("JWT_SECRET not set, using insecure development default")
	}

	ctx := context.Background()

	mongoClient, db, err := mongorepo.Connect(ctx, mongorepo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	rdb, err := redisrepo.Connect(ctx, redisrepo.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")

	indexCtx, cancelIndexes := context.WithTimeout(ctx, 15*time.Second)
	defer cancelIndexes()
	if err := mongorepo.NewAuthRepository(db).EnsureIndexes(indexCtx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}
	if err := mongorepo.NewSweetRepository(db).EnsureIndexes(indexCtx); err != nil {
		log.Fatal().Err(err).Msg("failed to create sweet indexes")
	}

	e := api.NewRouter(db, rdb, cfg.JWTSecret, cfg.JWTTTL)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting http server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown error")
	}
	log.Info().Msg("server stopped gracefully")
}
