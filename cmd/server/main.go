// Package main is the entry point for the berostock API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"berostock/internal/domain/auth"
	"berostock/internal/domain/catalog/client"
	"berostock/internal/domain/catalog/product"
	"berostock/internal/domain/reports"
	"berostock/internal/domain/sales"
	v1 "berostock/internal/infrastructure/http/v1"
	"berostock/internal/infrastructure/storage/postgres"
	"berostock/internal/infrastructure/storage/redis"
	"berostock/pkg/logger"
)

func main() {
	// .env is optional; real deployments use environment variables.
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting berostock server")

	// --- Database ---
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(mustEnv("DATABASE_URL")))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Redis (token revocation) ---
	var blacklist auth.TokenBlacklist
	redisClient, err := redis.NewClient(ctx, redis.Config{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	})
	if err != nil {
		log.Warnw("redis unavailable, access tokens will not be revocable", "error", err)
	} else {
		defer redisClient.Close()
		blacklist = redis.NewTokenBlacklist(redisClient)
		log.Info("redis connection established")
	}

	// --- Repositories ---
	userRepo := postgres.NewUserRepo(txManager)
	tokenRepo := postgres.NewTokenRepo(txManager)
	productRepo := postgres.NewProductRepo(txManager)
	clientRepo := postgres.NewClientRepo(txManager)
	saleRepo := postgres.NewSaleRepo(txManager)
	reportRepo := postgres.NewReportRepo(txManager)

	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}

	// --- Services ---
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(mustEnv("JWT_SECRET")))
	authService := auth.NewService(
		userRepo,
		tokenRepo,
		blacklist,
		txManager,
		jwtService,
		auth.DefaultServiceConfig(),
	)

	productService := product.NewService(productRepo, txManager)
	clientService := client.NewService(clientRepo, txManager)
	saleService := sales.NewService(
		saleRepo,
		product.NewInventory(productRepo),
		userRepo,
		auditService,
		txManager,
	)
	reportService := reports.NewService(reportRepo)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:           pool,
		Redis:          redisClient,
		Logger:         log,
		JWTService:     jwtService,
		AuthService:    authService,
		ProductService: productService,
		ClientService:  clientService,
		SaleService:    saleService,
		ReportService:  reportService,
		AuditService:   auditService,
		InvoiceBaseURL: getEnv("INVOICE_BASE_URL", "http://localhost:8080"),
		AllowedOrigins: splitEnv("CORS_ALLOWED_ORIGINS"),
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func splitEnv(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
