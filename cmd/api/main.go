package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/washpoint/washpoint-api/internal/application/service"
	"github.com/washpoint/washpoint-api/internal/config"
	"github.com/washpoint/washpoint-api/internal/infrastructure/database"
	"github.com/washpoint/washpoint-api/internal/infrastructure/event"
	"github.com/washpoint/washpoint-api/internal/infrastructure/repository"
	"github.com/washpoint/washpoint-api/internal/presentation/http/handler"
	"github.com/washpoint/washpoint-api/internal/presentation/http/routes"
	"github.com/washpoint/washpoint-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	txManager := repository.NewTxManager(db)
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	vehicleTypeRepo := repository.NewVehicleTypeRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	paymentMethodRepo := repository.NewPaymentMethodRepository(db)
	priceRepo := repository.NewPriceRepository(db)
	promotionRepo := repository.NewPromotionRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderItemRepo := repository.NewOrderItemRepository(db)
	adjustmentRepo := repository.NewAdjustmentRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	cashSessionRepo := repository.NewCashSessionRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize event dispatcher with the audit log subscriber
	dispatcher := event.NewDispatcher()
	dispatcher.Subscribe("", event.NewAuditLogger())

	// Initialize services
	authService := service.NewAuthService(userRepo, roleRepo, jwtManager)
	tenantService := service.NewTenantService(tenantRepo, branchRepo)
	customerService := service.NewCustomerService(customerRepo, vehicleRepo, vehicleTypeRepo)
	catalogService := service.NewCatalogService(serviceRepo, vehicleTypeRepo, paymentMethodRepo)
	pricingService := service.NewPricingService(priceRepo, branchRepo, serviceRepo, vehicleTypeRepo, txManager, dispatcher)
	promotionService := service.NewPromotionService(promotionRepo)
	orderService := service.NewOrderService(orderRepo, orderItemRepo, adjustmentRepo, paymentRepo, branchRepo, vehicleRepo, pricingService, txManager, dispatcher)
	adjustmentService := service.NewAdjustmentService(orderRepo, orderItemRepo, adjustmentRepo, promotionRepo, paymentRepo, paymentMethodRepo, txManager, dispatcher)
	paymentService := service.NewPaymentService(orderRepo, orderItemRepo, adjustmentRepo, paymentRepo, paymentMethodRepo, txManager, dispatcher)
	sequenceService := service.NewSequenceService(sequenceRepo, txManager)
	documentService := service.NewDocumentService(documentRepo, orderRepo, orderItemRepo, sequenceService, txManager, dispatcher)
	cashSessionService := service.NewCashSessionService(cashSessionRepo, paymentRepo, branchRepo, txManager, dispatcher)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Tenant:      handler.NewTenantHandler(tenantService),
		Customer:    handler.NewCustomerHandler(customerService),
		Catalog:     handler.NewCatalogHandler(catalogService),
		Price:       handler.NewPriceHandler(pricingService),
		Promotion:   handler.NewPromotionHandler(promotionService),
		Order:       handler.NewOrderHandler(orderService, adjustmentService, paymentService, documentService),
		CashSession: handler.NewCashSessionHandler(cashSessionService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		TenantRepo:      tenantRepo,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
