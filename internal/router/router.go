package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "quotely/docs"
	"quotely/internal/domain"
	"quotely/internal/handler"
	"quotely/internal/middleware"
	"quotely/internal/service"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Inventory *handler.InventoryHandler
	Quotation *handler.QuotationHandler
	Invoice   *handler.InvoiceHandler
	Document  *handler.DocumentHandler
	Draft     *handler.DraftHandler
	Dashboard *handler.DashboardHandler
	Export    *handler.ExportHandler
	Health    *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, h Handlers, allowedOrigins []string) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public auth routes
	v1.POST("/auth/login", h.Auth.Login)

	// Protected routes - require valid JWT and a tenant
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))
	protected.Use(middleware.TenantGuard())

	// User management - admin only, except the caller's own profile
	protected.GET("/users/me", h.Auth.Me)
	users := protected.Group("/users")
	users.Use(middleware.RequireRole(domain.RoleAdmin))
	users.POST("", h.User.Create)
	users.GET("", h.User.List)
	users.GET("/:id", h.User.GetByID)
	users.DELETE("/:id", h.User.Delete)

	inventory := protected.Group("/inventory")
	inventory.POST("", h.Inventory.Create)
	inventory.GET("", h.Inventory.List)
	inventory.GET("/:id", h.Inventory.GetByID)
	inventory.PUT("/:id", h.Inventory.Update)
	inventory.DELETE("/:id", h.Inventory.Delete)

	quotations := protected.Group("/quotations")
	quotations.POST("", h.Quotation.Create)
	quotations.GET("", h.Quotation.List)
	quotations.POST("/pdf", h.Document.AdHocQuotationPDF)
	quotations.GET("/:id", h.Quotation.GetByID)
	quotations.PUT("/:id", h.Quotation.Update)
	quotations.DELETE("/:id", h.Quotation.Delete)
	quotations.POST("/:id/convert", h.Quotation.Convert)
	quotations.GET("/:id/pdf", h.Document.QuotationPDF)
	quotations.POST("/:id/send", h.Document.SendQuotation)

	invoices := protected.Group("/invoices")
	invoices.POST("", h.Invoice.Create)
	invoices.GET("", h.Invoice.List)
	invoices.POST("/pdf", h.Document.AdHocInvoicePDF)
	invoices.GET("/:id", h.Invoice.GetByID)
	invoices.PUT("/:id", h.Invoice.Update)
	invoices.DELETE("/:id", h.Invoice.Delete)
	invoices.GET("/:id/pdf", h.Document.InvoicePDF)
	invoices.POST("/:id/send", h.Document.SendInvoice)

	protected.GET("/dashboard/summary", h.Dashboard.Summary)
	protected.POST("/ai/quotation-draft", h.Draft.QuotationDraft)

	protected.GET("/exports/quotations", h.Export.Quotations)
	protected.GET("/exports/invoices", h.Export.Invoices)

	return r
}
