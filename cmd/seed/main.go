package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/sangkips/liquorpos-api/internal/config"
	"github.com/sangkips/liquorpos-api/internal/infrastructure/database"
	"github.com/sangkips/liquorpos-api/internal/infrastructure/logger"
	"github.com/sangkips/liquorpos-api/pkg/utils"
	"go.uber.org/zap"
)

// seed prepares a development database: migrations, default categories, the
// admin user, optionally a demo catalog, and prints a bearer token for the
// admin so the API can be exercised with curl.
func main() {
	demo := flag.Bool("demo", false, "also create demo brands and products")
	printToken := flag.Bool("token", true, "print an access token for the admin user")
	flag.Parse()

	cfg := config.Load()
	log := logger.New(cfg.App, cfg.Log)
	defer func() { _ = log.Sync() }()

	db, err := database.NewPostgresDB(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	admin, err := database.SeedDefaultData(ctx, db, cfg.Seed, log)
	if err != nil {
		log.Fatal("Failed to seed default data", zap.Error(err))
	}

	if *demo {
		if err := database.SeedDemoCatalog(ctx, db, log); err != nil {
			log.Fatal("Failed to seed demo catalog", zap.Error(err))
		}
	}

	if *printToken && admin != nil {
		jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
		token, err := jwtManager.GenerateAccessToken(admin.ID, admin.Username, admin.Email, string(admin.Role))
		if err != nil {
			log.Fatal("Failed to generate token", zap.Error(err))
		}
		fmt.Println(token)
	}
}
