// Package v1 provides HTTP API version 1.
package v1

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"berostock/internal/core/appctx"
	"berostock/internal/domain/auth"
	"berostock/internal/domain/catalog/client"
	"berostock/internal/domain/catalog/product"
	"berostock/internal/domain/reports"
	"berostock/internal/domain/sales"
	"berostock/internal/infrastructure/http/v1/handlers"
	"berostock/internal/infrastructure/http/v1/middleware"
	"berostock/internal/infrastructure/storage/postgres"
	"berostock/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	Pool   *postgres.Pool
	Redis  *goredis.Client
	Logger *logger.Logger

	JWTService *auth.JWTService

	AuthService    *auth.Service
	ProductService *product.Service
	ClientService  *client.Service
	SaleService    *sales.Service
	ReportService  *reports.Service
	AuditService   *postgres.AuditService

	// InvoiceBaseURL is the public origin used in invoice links.
	InvoiceBaseURL string

	// AllowedOrigins for CORS. Empty allows all origins.
	AllowedOrigins []string
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters).
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())
	router.Use(corsMiddleware(cfg.AllowedOrigins))

	healthHandler := handlers.NewHealthHandler(cfg.Pool, cfg.Redis)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	authHandler := handlers.NewAuthHandler(cfg.AuthService)
	productHandler := handlers.NewProductHandler(cfg.ProductService)
	clientHandler := handlers.NewClientHandler(cfg.ClientService)
	saleHandler := handlers.NewSaleHandler(cfg.SaleService, cfg.InvoiceBaseURL)
	reportHandler := handlers.NewReportHandler(cfg.ReportService)
	auditHandler := handlers.NewAuditHandler(cfg.SaleService, cfg.AuditService)

	requireAuth := middleware.Auth(cfg.JWTService, cfg.AuthService)
	requirePrivileged := middleware.RequireRole(appctx.RoleAdmin, appctx.RoleManager)
	requireAdmin := middleware.RequireRole(appctx.RoleAdmin)

	v1 := router.Group("/api/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)

			authGroup.POST("/logout", requireAuth, authHandler.Logout)
			authGroup.GET("/me", requireAuth, authHandler.Me)

			users := authGroup.Group("/users", requireAuth, requireAdmin)
			{
				users.POST("", authHandler.CreateUser)
				users.GET("", authHandler.ListUsers)
				users.PATCH("/:id/role", authHandler.UpdateRole)
			}
		}

		protected := v1.Group("", requireAuth)
		{
			products := protected.Group("/products")
			{
				products.GET("", productHandler.List)
				products.GET("/:ref", productHandler.Get)

				products.POST("", requirePrivileged, productHandler.Create)
				products.PUT("/:ref", requirePrivileged, productHandler.Update)
				products.DELETE("/:ref", requirePrivileged, productHandler.Delete)
			}

			clients := protected.Group("/clients")
			{
				clients.GET("", clientHandler.List)
				clients.GET("/:id", clientHandler.Get)
				clients.POST("", clientHandler.Create)
				clients.PUT("/:id", clientHandler.Update)
				clients.DELETE("/:id", requirePrivileged, clientHandler.Delete)
			}

			salesGroup := protected.Group("/sales")
			{
				salesGroup.GET("", saleHandler.List)
				salesGroup.GET("/export", saleHandler.Export)
				salesGroup.GET("/:ref", saleHandler.Get)
				salesGroup.GET("/:ref/history", requirePrivileged, auditHandler.SaleHistory)
				salesGroup.POST("", saleHandler.Create)
				salesGroup.PUT("/:ref", saleHandler.Update)
				salesGroup.DELETE("/:ref", saleHandler.Delete)
			}

			protected.GET("/reports/summary", reportHandler.Summary)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{middleware.HeaderRequestID, middleware.HeaderTraceID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = allowedOrigins
	}
	return cors.New(corsConfig)
}
