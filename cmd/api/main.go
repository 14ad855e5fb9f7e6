package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/liquorpos-api/internal/application/service"
	"github.com/sangkips/liquorpos-api/internal/config"
	"github.com/sangkips/liquorpos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/liquorpos-api/internal/domain/repository"
	"github.com/sangkips/liquorpos-api/internal/infrastructure/database"
	"github.com/sangkips/liquorpos-api/internal/infrastructure/logger"
	"github.com/sangkips/liquorpos-api/internal/infrastructure/repository"
	"github.com/sangkips/liquorpos-api/internal/presentation/http/handler"
	"github.com/sangkips/liquorpos-api/internal/presentation/http/middleware"
	"github.com/sangkips/liquorpos-api/internal/presentation/http/routes"
	"github.com/sangkips/liquorpos-api/pkg/printer"
	"github.com/sangkips/liquorpos-api/pkg/utils"
	"go.uber.org/zap"
)

const (
	shutdownTimeout          = 15 * time.Second
	idempotencyCleanupPeriod = time.Hour
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.App, cfg.Log)
	defer func() { _ = log.Sync() }()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgresDB(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := database.SeedDefaultData(ctx, db, cfg.Seed, log); err != nil {
		log.Warn("Failed to seed default data", zap.Error(err))
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	location := cfg.App.Location()

	// Repositories
	txScope := repository.NewGormTransactionScope(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	brandRepo := repository.NewBrandRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	analyticsRepo := repository.NewSalesAnalyticsRepository(db)
	movementRepo := repository.NewInventoryMovementRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Services
	auditService := service.NewAuditService(auditRepo, log)
	saleService := service.NewSaleService(txScope, saleRepo, analyticsRepo, auditService, log, location)
	productService := service.NewProductService(txScope, productRepo, categoryRepo, brandRepo, movementRepo, auditService, log)
	customerService := service.NewCustomerService(customerRepo, auditService, log)
	userService := service.NewUserService(userRepo, auditService, log)

	thermalPrinter, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
	})
	if err != nil {
		log.Warn("Failed to initialize printer, receipts will not be printed", zap.Error(err))
		thermalPrinter = printer.NullPrinter{}
	}
	printerService := service.NewPrinterService(thermalPrinter, saleService, entity.ReceiptHeader{
		StoreName: cfg.Printer.StoreName,
		Address:   cfg.Printer.StoreAddress,
		Phone:     cfg.Printer.StorePhone,
		TaxID:     cfg.Printer.StoreTaxID,
	}, cfg.Printer.PaperWidth, location, log)

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfigFrom(cfg.RateLimit))
	defer rateLimiter.Stop()

	router := routes.Setup(&routes.Handlers{
		Health:   handler.NewHealthHandler(db, cfg.App.Name),
		Product:  handler.NewProductHandler(productService),
		Customer: handler.NewCustomerHandler(customerService),
		Sale:     handler.NewSaleHandler(saleService, printerService),
		Printer:  handler.NewPrinterHandler(printerService),
		AuditLog: handler.NewAuditLogHandler(auditService),
		User:     handler.NewUserHandler(userService),
	}, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		UserRepo:        userRepo,
		RateLimiter:     rateLimiter,
		Logger:          log,
	})

	go cleanupIdempotencyKeys(ctx, idempotencyRepo, log)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info("Starting server",
			zap.String("port", port),
			zap.String("env", cfg.App.Env),
			zap.String("timezone", location.String()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("Server stopped")
}

// cleanupIdempotencyKeys drops expired replay entries until ctx ends
func cleanupIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, log *zap.Logger) {
	ticker := time.NewTicker(idempotencyCleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := repo.DeleteExpired(ctx, time.Now())
			if err != nil {
				log.Warn("Failed to delete expired idempotency keys", zap.Error(err))
				continue
			}
			if removed > 0 {
				log.Debug("Expired idempotency keys deleted", zap.Int64("count", removed))
			}
		}
	}
}
