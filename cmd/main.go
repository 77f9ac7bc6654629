package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"supplies-service/internal/access"
	"supplies-service/internal/config"
	"supplies-service/internal/handlers"
	"supplies-service/internal/middleware"
	"supplies-service/internal/models"
	"supplies-service/internal/repository"
	"supplies-service/internal/seeders"
	"supplies-service/internal/services"
)

// @title Office Supplies API
// @version 1.0.0
// @description Role-based office supplies request and procurement tracker

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8090
// @BasePath /api/v1

// @securityDefinitions.bearer BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.InfoLevel)

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET must be set")
	}

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database:", err)
	}

	// Run database migrations
	logger.Info("Running database migrations...")
	if err := db.AutoMigrate(
		&models.User{},
		&models.Department{},
		&models.Item{},
		&models.Supplier{},
		&models.Request{},
		&models.RequestItem{},
		&models.Approval{},
		&models.PurchaseOrder{},
		&models.PurchaseOrderItem{},
		&models.AuditLogEntry{},
	); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Database migrations completed")

	// Seed demo data when asked
	if cfg.SeedDemo {
		if err := seeders.Seed(db); err != nil {
			logger.Warnf("Failed to seed demo data: %v", err)
		}
	}

	// Initialize repositories
	requestRepo := repository.NewRequestRepository(db)
	userRepo := repository.NewUserRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// Initialize the access policy. Immutable for the life of the process.
	policy := access.DefaultPolicy()

	// Initialize services
	auditRecorder := services.NewAuditRecorder(auditRepo, policy)
	requestService := services.NewRequestService(requestRepo, userRepo, catalogRepo, policy, auditRecorder)
	userService := services.NewUserService(userRepo, policy, auditRecorder)
	inventoryService := services.NewInventoryService(catalogRepo, policy, auditRecorder)
	procurementService := services.NewProcurementService(catalogRepo, policy, auditRecorder)

	// Initialize handlers
	requestHandler := handlers.NewRequestHandler(requestService)
	userHandler := handlers.NewUserHandler(userService, cfg.JWTSecret)
	dashboardHandler := handlers.NewDashboardHandler(policy)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	procurementHandler := handlers.NewProcurementHandler(procurementService)
	auditHandler := handlers.NewAuditHandler(auditRecorder)

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	// Health check endpoints (no auth required)
	router.GET("/health", handlers.HealthCheck)
	router.GET("/ready", handlers.ReadinessCheck)

	// Session endpoint (no auth required)
	router.POST("/api/v1/auth/login", userHandler.Login)

	// Protected API routes
	api := router.Group("/api/v1")
	api.Use(middleware.Auth(cfg.JWTSecret))

	// Supply request endpoints
	{
		api.POST("/requests", requestHandler.CreateRequest)
		api.GET("/requests", requestHandler.ListRequests)
		api.GET("/requests/pending-approvals", requestHandler.ListPendingApprovals)
		api.GET("/requests/:id", requestHandler.GetRequest)
		api.PATCH("/requests/:id", requestHandler.UpdateRequest)
		api.DELETE("/requests/:id", requestHandler.DeleteRequest)
		api.POST("/requests/:id/approval", requestHandler.SubmitApproval)
		api.POST("/requests/:id/start", requestHandler.MarkInProgress)
		api.POST("/requests/:id/complete", requestHandler.MarkCompleted)
	}

	// Dashboard and access endpoints
	{
		api.GET("/dashboard", dashboardHandler.GetDefaultDashboard)
		api.GET("/dashboard/:type", dashboardHandler.CheckDashboardAccess)
		api.GET("/access/check", dashboardHandler.CheckAccess)
	}

	// Inventory endpoints
	{
		api.POST("/items", inventoryHandler.CreateItem)
		api.GET("/items", inventoryHandler.ListItems)
		api.GET("/items/low-stock", inventoryHandler.ListLowStockItems)
		api.GET("/items/:id", inventoryHandler.GetItem)
		api.PUT("/items/:id", inventoryHandler.UpdateItem)
		api.DELETE("/items/:id", inventoryHandler.DeleteItem)
	}

	// Procurement endpoints
	{
		api.POST("/suppliers", procurementHandler.CreateSupplier)
		api.GET("/suppliers", procurementHandler.ListSuppliers)
		api.PUT("/suppliers/:id", procurementHandler.UpdateSupplier)
		api.DELETE("/suppliers/:id", procurementHandler.DeleteSupplier)
		api.POST("/purchase-orders", procurementHandler.CreatePurchaseOrder)
		api.GET("/purchase-orders", procurementHandler.ListPurchaseOrders)
		api.GET("/purchase-orders/:id", procurementHandler.GetPurchaseOrder)
		api.POST("/purchase-orders/:id/advance", procurementHandler.AdvancePurchaseOrder)
		api.POST("/purchase-orders/:id/cancel", procurementHandler.CancelPurchaseOrder)
		api.POST("/purchase-orders/:id/receive", procurementHandler.ReceivePurchaseOrder)
	}

	// Admin endpoints
	{
		api.POST("/users", userHandler.CreateUser)
		api.GET("/users", userHandler.ListUsers)
		api.GET("/users/:id", userHandler.GetUser)
		api.PATCH("/users/:id", userHandler.UpdateUser)
		api.DELETE("/users/:id", userHandler.DeleteUser)
		api.GET("/departments", userHandler.ListDepartments)
		api.POST("/departments", userHandler.CreateDepartment)
		api.GET("/audit-logs", auditHandler.ListAuditLogs)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8090"
	}

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Infof("Supplies service starting on port %s", port)
		if err := router.Run(":" + port); err != nil {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	<-quit
	logger.Info("Shutting down server...")
	logger.Info("Server shutdown complete")
}
