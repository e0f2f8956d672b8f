package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/washpoint/washpoint-api/internal/config"
	domainRepo "github.com/washpoint/washpoint-api/internal/domain/repository"
	"github.com/washpoint/washpoint-api/internal/presentation/http/handler"
	"github.com/washpoint/washpoint-api/internal/presentation/http/middleware"
	"github.com/washpoint/washpoint-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Tenant      *handler.TenantHandler
	Customer    *handler.CustomerHandler
	Catalog     *handler.CatalogHandler
	Price       *handler.PriceHandler
	Promotion   *handler.PromotionHandler
	Order       *handler.OrderHandler
	CashSession *handler.CashSessionHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	TenantRepo      domainRepo.TenantRepository
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.TenantMiddleware(deps.TenantRepo))

		// Per-tenant rate limiter
		rateLimiter := middleware.NewTenantRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())
		protected.Use(middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}))

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Profile
	protected.GET("/profile", h.Auth.Me)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Tenants (membership-level, no tenant scope required)
	tenants := protected.Group("/tenants")
	{
		tenants.POST("", h.Tenant.CreateTenant)
		tenants.GET("/mine", h.Tenant.MyTenants)
		tenants.GET("/:id", h.Tenant.GetTenant)
		tenants.GET("/:id/members", h.Tenant.ListMembers)
		tenants.POST("/:id/members", middleware.RequireRole("super-admin", "admin"), h.Tenant.InviteMember)
		tenants.DELETE("/:id/members/:userId", middleware.RequireRole("super-admin", "admin"), h.Tenant.RemoveMember)
	}

	// Everything below operates on one tenant's data
	scoped := protected.Group("")
	scoped.Use(middleware.RequireTenant())

	branches := scoped.Group("/branches")
	{
		branches.POST("", middleware.RequirePermission("manage-users"), h.Tenant.CreateBranch)
		branches.GET("", h.Tenant.ListBranches)
		branches.GET("/:id", h.Tenant.GetBranch)
		branches.PUT("/:id", middleware.RequirePermission("manage-users"), h.Tenant.UpdateBranch)
	}

	customers := scoped.Group("/customers")
	customers.Use(middleware.RequirePermission("manage-customers"))
	{
		customers.POST("", h.Customer.Create)
		customers.GET("", h.Customer.List)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
		customers.POST("/:id/vehicles", h.Customer.AddVehicle)
		customers.GET("/:id/vehicles", h.Customer.ListVehicles)
		customers.DELETE("/:id/vehicles/:vehicleId", h.Customer.DeleteVehicle)
	}

	services := scoped.Group("/services")
	{
		services.POST("", middleware.RequirePermission("manage-catalog"), h.Catalog.CreateService)
		services.GET("", h.Catalog.ListServices)
		services.GET("/:id", h.Catalog.GetService)
		services.PUT("/:id", middleware.RequirePermission("manage-catalog"), h.Catalog.UpdateService)
		services.DELETE("/:id", middleware.RequirePermission("manage-catalog"), h.Catalog.DeleteService)
	}

	vehicleTypes := scoped.Group("/vehicle-types")
	{
		vehicleTypes.POST("", middleware.RequirePermission("manage-catalog"), h.Catalog.CreateVehicleType)
		vehicleTypes.GET("", h.Catalog.ListVehicleTypes)
	}

	paymentMethods := scoped.Group("/payment-methods")
	{
		paymentMethods.POST("", middleware.RequirePermission("manage-catalog"), h.Catalog.CreatePaymentMethod)
		paymentMethods.GET("", h.Catalog.ListPaymentMethods)
		paymentMethods.PATCH("/:id/active", middleware.RequirePermission("manage-catalog"), h.Catalog.SetPaymentMethodActive)
	}

	prices := scoped.Group("/prices")
	{
		prices.POST("", middleware.RequirePermission("manage-prices"), h.Price.Publish)
		prices.GET("", h.Price.List)
		prices.GET("/resolve", h.Price.Resolve)
	}

	promotions := scoped.Group("/promotions")
	promotions.Use(middleware.RequirePermission("manage-promotions"))
	{
		promotions.POST("", h.Promotion.Create)
		promotions.GET("", h.Promotion.List)
		promotions.GET("/:id", h.Promotion.Get)
		promotions.PUT("/:id", h.Promotion.Update)
		promotions.DELETE("/:id", h.Promotion.Delete)
	}

	orders := scoped.Group("/orders")
	{
		orders.POST("", middleware.RequirePermission("manage-orders"), h.Order.Create)
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/items", middleware.RequirePermission("manage-orders"), h.Order.AddItem)
		orders.DELETE("/:id/items/:itemId", middleware.RequirePermission("manage-orders"), h.Order.RemoveItem)
		orders.PUT("/:id/tip", middleware.RequirePermission("manage-orders"), h.Order.SetTip)
		orders.POST("/:id/transition", middleware.RequirePermission("manage-orders"), h.Order.Transition)

		orders.POST("/:id/adjustments", middleware.RequirePermission("manage-orders"), h.Order.AddAdjustment)
		orders.POST("/:id/adjustments/promotion", middleware.RequirePermission("manage-orders"), h.Order.ApplyPromotion)
		orders.POST("/:id/adjustments/payment-method", middleware.RequirePermission("manage-orders"), h.Order.ApplyMethodPromotion)
		orders.DELETE("/:id/adjustments/:adjustmentId", middleware.RequirePermission("manage-orders"), h.Order.RemoveAdjustment)

		orders.POST("/:id/payments", middleware.RequirePermission("register-payments"), h.Order.RegisterPayment)
		orders.GET("/:id/payments", h.Order.ListPayments)

		orders.POST("/:id/documents", middleware.RequirePermission("issue-documents"), h.Order.IssueDocument)
	}

	documents := scoped.Group("/documents")
	{
		documents.GET("/:id", h.Order.GetDocument)
	}

	cashSessions := scoped.Group("/cash-sessions")
	cashSessions.Use(middleware.RequirePermission("manage-cash-sessions"))
	{
		cashSessions.POST("", h.CashSession.Open)
		cashSessions.GET("", h.CashSession.List)
		cashSessions.GET("/:id", h.CashSession.Get)
		cashSessions.POST("/:id/close", h.CashSession.Close)
	}
}
