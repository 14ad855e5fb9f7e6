package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/liquorpos-api/internal/config"
	"github.com/sangkips/liquorpos-api/internal/domain/enum"
	domainRepo "github.com/sangkips/liquorpos-api/internal/domain/repository"
	"github.com/sangkips/liquorpos-api/internal/infrastructure/logger"
	"github.com/sangkips/liquorpos-api/internal/presentation/http/handler"
	"github.com/sangkips/liquorpos-api/internal/presentation/http/middleware"
	"github.com/sangkips/liquorpos-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Health   *handler.HealthHandler
	Product  *handler.ProductHandler
	Customer *handler.CustomerHandler
	Sale     *handler.SaleHandler
	Printer  *handler.PrinterHandler
	AuditLog *handler.AuditLogHandler
	User     *handler.UserHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	UserRepo        domainRepo.UserRepository
	RateLimiter     *middleware.RateLimiter
	Logger          *zap.Logger
}

var (
	admins        = []enum.UserRole{enum.UserRoleAdmin}
	managers      = []enum.UserRole{enum.UserRoleAdmin, enum.UserRoleManager}
	stockKeepers  = []enum.UserRole{enum.UserRoleAdmin, enum.UserRoleManager, enum.UserRoleWarehouse}
	sellers       = []enum.UserRole{enum.UserRoleAdmin, enum.UserRoleManager, enum.UserRoleCashier}
	customerStaff = []enum.UserRole{enum.UserRoleAdmin, enum.UserRoleManager, enum.UserRoleCashier, enum.UserRolePromoter}
)

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(logger.GinMiddleware(deps.Logger))
	router.Use(logger.Recovery(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", h.Health.Check)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(deps.JWTManager))
	if deps.UserRepo != nil {
		v1.Use(middleware.ActiveUser(deps.UserRepo))
	}
	if deps.RateLimiter != nil {
		v1.Use(deps.RateLimiter.Middleware())
	}

	registerProductRoutes(v1, h)
	registerCustomerRoutes(v1, h)
	registerSaleRoutes(v1, h, deps)

	v1.GET("/printer/status", h.Printer.GetStatus)
	registerUserRoutes(v1, h)

	auditLogs := v1.Group("/audit-logs")
	auditLogs.Use(middleware.RequireRole(managers...))
	{
		auditLogs.GET("", h.AuditLog.List)
		auditLogs.GET("/stats", h.AuditLog.Stats)
	}

	return router
}

func registerProductRoutes(rg *gin.RouterGroup, h *Handlers) {
	products := rg.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/low-stock", h.Product.LowStock)
		products.GET("/price-list", h.Product.PriceList)
		products.GET("/barcode/:barcode", h.Product.GetByBarcode)
		products.GET("/:id", h.Product.Get)
		products.GET("/:id/movements", middleware.RequireRole(stockKeepers...), h.Product.Movements)

		products.POST("", middleware.RequireRole(stockKeepers...), h.Product.Create)
		products.PUT("/:id", middleware.RequireRole(stockKeepers...), h.Product.Update)
		products.POST("/:id/adjust-stock", middleware.RequireRole(stockKeepers...), h.Product.AdjustStock)
		products.DELETE("/:id", middleware.RequireRole(managers...), h.Product.Delete)
	}
}

func registerCustomerRoutes(rg *gin.RouterGroup, h *Handlers) {
	customers := rg.Group("/customers")
	customers.Use(middleware.RequireRole(customerStaff...))
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", middleware.RequireRole(managers...), h.Customer.Delete)
	}
}

func registerSaleRoutes(rg *gin.RouterGroup, h *Handlers, deps *Deps) {
	sales := rg.Group("/sales")
	{
		sales.POST("",
			middleware.RequireRole(sellers...),
			middleware.IdempotencyRequired(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}),
			h.Sale.Create,
		)
		sales.GET("", middleware.RequireRole(sellers...), h.Sale.List)
		sales.GET("/summary", middleware.RequireRole(managers...), h.Sale.Summary)
		sales.GET("/:id", middleware.RequireRole(sellers...), h.Sale.Get)
		sales.POST("/:id/cancel", middleware.RequireRole(managers...), h.Sale.Cancel)
		sales.POST("/:id/receipt", middleware.RequireRole(sellers...), h.Sale.Receipt)
	}
}

func registerUserRoutes(rg *gin.RouterGroup, h *Handlers) {
	users := rg.Group("/users")
	users.Use(middleware.RequireRole(admins...))
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}
}
