// Command seed provisions a development database: one admin account and a
// small sample catalog. Safe to run repeatedly.
package main

import (
	"context"
	"errors"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/sweetshop/inventory-api/internal/core/domain"
	mongorepo "github.com/sweetshop/inventory-api/internal/infrastructure/db/mongo"
	"github.com/sweetshop/inventory-api/internal/pkg/config"
	"github.com/sweetshop/inventory-api/pkg/logger"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin123"
)

type sampleSweet struct {
	name     string
	category string
	price    float64
	quantity int64
}

var sampleCatalog = []sampleSweet{
	{"Berry Bliss Tart", "Tarts", 4.50, 12},
	{"Caramel Crunch Bar", "Bars", 3.75, 20},
	{"Lemon Zest Cheesecake", "Cakes", 5.25, 8},
	{"Pistachio Macaron", "Macarons", 2.10, 30},
	{"Sea Salt Brownie", "Brownies", 3.25, 18},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

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

	authRepo := mongorepo.NewAuthRepository(db)
	sweetRepo := mongorepo.NewSweetRepository(db)

	if err := authRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}
	if err := sweetRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create sweet indexes")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash admin password")
	}

	admin, err := authRepo.Create(ctx, &domain.User{
		Email:        adminEmail,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	})
	switch {
	case errors.Is(err, domain.ErrUserExists):
		log.Info().Str("email", adminEmail).Msg("admin account already present")
	case err != nil:
		log.Fatal().Err(err).Msg("failed to create admin account")
	default:
		log.Info().Int64("id", admin.ID).Str("email", admin.Email).Msg("admin account created")
	}

	existing, err := sweetRepo.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to inspect catalog")
	}
	if len(existing) > 0 {
		log.Info().Int("count", len(existing)).Msg("catalog already populated, skipping sample sweets")
		return
	}

	for _, s := range sampleCatalog {
		cents, ok := domain.PriceToCents(s.price)
		if !ok {
			log.Fatal().Str("name", s.name).Msg("invalid sample price")
		}
		sweet, err := sweetRepo.Create(ctx, &domain.Sweet{
			Name:       s.name,
			Category:   s.category,
			PriceCents: cents,
			Quantity:   s.quantity,
		})
		if err != nil {
			log.Fatal().Err(err).Str("name", s.name).Msg("failed to insert sample sweet")
		}
		log.Info().Int64("id", sweet.ID).Str("name", sweet.Name).Msg("sample sweet inserted")
	}

	log.Info().Int("sweets", len(sampleCatalog)).Msgf("seed complete, admin: %s / %s", adminEmail, adminPassword)
}
