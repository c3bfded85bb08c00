package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fxledger/backend/docs"
	"github.com/fxledger/backend/internal/config"
	"github.com/fxledger/backend/internal/currency"
	"github.com/fxledger/backend/internal/database"
	"github.com/fxledger/backend/internal/handlers"
	"github.com/fxledger/backend/internal/services"
	"go.uber.org/zap"
)

// @title FX Ledger API
// @version 1.0
// @description Multi-currency ledger: accounts, deposits, withdrawals and transfers settled in USD
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, cleanup := initLogger(cfg)
	defer cleanup()

	// Initialize Swagger docs
	docs.SwaggerInfo.Host = "localhost:" + cfg.Port

	ctx := context.Background()

	db, dialect := database.InitDatabase(ctx)
	defer db.Close()

	redisClient := database.InitRedis(ctx)
	if redisClient != nil {
		defer redisClient.Close()
	}

	rates, err := loadRates(cfg)
	if err != nil {
		logger.Fatal("Failed to load conversion rates", zap.Error(err))
	}

	// Initialize services
	ledger := services.NewLedgerService(db, dialect, rates)
	svc := handlers.Services{
		Auth:         services.NewAuthService(db, dialect, redisClient, cfg),
		Users:        services.NewUserService(db, dialect),
		Transactions: services.NewTransactionService(ledger, services.NewAuditLogger(logger)),
	}

	router := handlers.NewRouter(svc, logger, "http://localhost:"+cfg.Port+"/swagger/doc.json")

	// Start server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("Server starting", zap.String("addr", server.Addr), zap.String("env", cfg.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("Server stopped")
}

func initLogger(cfg *config.AppConfig) (*zap.Logger, func()) {
	newLogger := zap.NewProduction
	if cfg.IsDevelopment() {
		newLogger = zap.NewDevelopment
	}

	logger, err := newLogger()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	zap.ReplaceGlobals(logger)

	return logger, func() { _ = logger.Sync() }
}

func loadRates(cfg *config.AppConfig) (currency.RateProvider, error) {
	if cfg.RateFile == "" {
		return currency.StaticRates{}, nil
	}
	rates, err := currency.LoadFileRates(cfg.RateFile)
	if err != nil {
		return nil, err
	}
	zap.L().Info("Conversion rates loaded", zap.String("file", cfg.RateFile))
	return rates, nil
}
