package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/Facturacion-api/internal/application/analytics"
	"github.com/jhoicas/Facturacion-api/internal/application/auth"
	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/usecase"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/pkg/logger"
	"github.com/jhoicas/Facturacion-api/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	UserUC     *usecase.UserUseCase
	CompanyUC  *usecase.CompanyUseCase
	CustomerUC *billing.CustomerUseCase
	InvoiceUC  *billing.InvoiceUseCase
	StatsUC    *analytics.StatsUseCase
	InvoicePDF *billing.PDFUseCase
	JWTSecret  string

	Logger  *logger.Logger
	Metrics *metrics.Metrics // nil = sin /metrics
}

// NewApp arma la app Fiber con el ErrorHandler central, middlewares y rutas.
// Orden: requestid → log → métricas → recover → rutas.
func NewApp(cfg fiber.Config, deps RouterDeps) *fiber.App {
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	cfg.ErrorHandler = ErrorHandler(deps.Logger, deps.Metrics)
	app := fiber.New(cfg)

	app.Use(requestid.New())
	app.Use(RequestLogger(deps.Logger))
	if deps.Metrics != nil {
		app.Use(Metrics(deps.Metrics))
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.AppName})
	})

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.Me)
	users.Put("/me", userHandler.UpdateMe)
	users.Get("/", adminOnly, userHandler.List)
	users.Post("/", adminOnly, userHandler.Create)

	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.Get)
	companies.Put("/", adminOnly, companyHandler.Update)
	companies.Post("/logo", adminOnly, companyHandler.UpdateLogo)

	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// /stats/overview antes de /:id para que no se lea "stats" como id.
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.StatsUC, deps.InvoicePDF)
	invoices.Get("/stats/overview", invoiceHandler.Stats)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.Delete)
}
