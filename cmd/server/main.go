package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Mystick682/ExTremeData/config"
	"github.com/Mystick682/ExTremeData/internal/auth"
	"github.com/Mystick682/ExTremeData/internal/handler"
	"github.com/Mystick682/ExTremeData/internal/provider/paystack"
	"github.com/Mystick682/ExTremeData/internal/provider/vtpass"
	"github.com/Mystick682/ExTremeData/internal/repository"
	"github.com/Mystick682/ExTremeData/internal/router"
	"github.com/Mystick682/ExTremeData/internal/usecase"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("starting billpay service")

	// Load configuration
	_ = godotenv.Load()
	cfg, err := config.Load(logger)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	// Connect to database
	dbPool, err := pgxpool.New(context.Background(), cfg.DatabaseURL())
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer dbPool.Close()

	logger.Info("connected to database",
		zap.String("database", cfg.Database.DBName))

	// Connect to redis (identity cache)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	// Initialize repositories
	ledgerRepo := repository.NewLedgerRepository(dbPool)
	transactionRepo := repository.NewTransactionRepository(dbPool)

	// Initialize providers
	billerProvider := vtpass.NewClient(cfg.VTpass)
	payoutProvider := paystack.NewClient(cfg.Paystack)

	// Initialize identity resolution
	identityClient := auth.NewIdentityClient(cfg.Identity, logger)
	authMiddleware := auth.NewMiddleware(identityClient, redisClient, cfg.Identity.CacheTTL, logger)

	// Initialize usecases
	purchaseUC := usecase.NewPurchaseUsecase(ledgerRepo, transactionRepo, billerProvider, logger)
	transferUC := usecase.NewTransferUsecase(ledgerRepo, transactionRepo, payoutProvider, logger)
	lookupUC := usecase.NewLookupUsecase(billerProvider, payoutProvider, logger)

	// Initialize handlers
	purchaseHandler := handler.NewPurchaseHandler(purchaseUC, transferUC, logger)
	verifyHandler := handler.NewVerifyHandler(lookupUC, logger)

	// Setup routes
	r := router.SetupRoutes(purchaseHandler, verifyHandler, authMiddleware, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	logger.Info("billpay service started successfully",
		zap.String("port", cfg.Server.Port),
		zap.String("environment", cfg.Server.Env))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
