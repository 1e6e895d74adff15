package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/swaggo/swag"

	"github.com/jhoicas/Facturacion-api/docs"
	"github.com/jhoicas/Facturacion-api/internal/application/analytics"
	"github.com/jhoicas/Facturacion-api/internal/application/auth"
	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/Facturacion-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Facturacion-api/internal/interfaces/http"
	"github.com/jhoicas/Facturacion-api/pkg/config"
	"github.com/jhoicas/Facturacion-api/pkg/logger"
	"github.com/jhoicas/Facturacion-api/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	// Importes como números JSON (22.5), no como strings.
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a la base de datos")
	}
	defer store.Close()

	repos := store.Repos
	customerUC := billing.NewCustomerUseCase(store.Tx, repos.Customers)
	invoiceUC := billing.NewInvoiceUseCase(store.Tx, repos.Invoices)
	invoicePDFUC := billing.NewPDFUseCase(invoiceUC, repos.Companies, infrapdf.NewMarotoPDFGenerator())
	authUC := auth.NewAuthUseCase(store.Tx, repos.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	var m *metrics.Metrics
	if cfg.App.MetricsEnabled {
		m = metrics.New()
	}

	app := httpRouter.NewApp(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	}, httpRouter.RouterDeps{
		AuthUC:     authUC,
		UserUC:     usecase.NewUserUseCase(repos.Users, repos.Companies),
		CompanyUC:  usecase.NewCompanyUseCase(repos.Companies),
		CustomerUC: customerUC,
		InvoiceUC:  invoiceUC,
		StatsUC:    analytics.NewStatsUseCase(store.Tx),
		InvoicePDF: invoicePDFUC,
		JWTSecret:  cfg.JWT.Secret,
		Logger:     log,
		Metrics:    m,
	})

	// Swagger UI: http://localhost:<port>/docs
	if cfg.App.SwaggerEnabled {
		specPath, err := writeSpec()
		if err != nil {
			log.Fatal().Err(err).Msg("especificación swagger")
		}
		defer os.Remove(specPath)
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: specPath,
			Path:     "docs",
			Title:    "Facturación API",
		}))
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// writeSpec vuelca la especificación registrada por swag a un archivo temporal para el middleware de Swagger UI.
func writeSpec() (string, error) {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		return "", fmt.Errorf("leer doc swag: %w", err)
	}
	f, err := os.CreateTemp("", "facturacion-swagger-*.json")
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := f.WriteString(doc); err != nil {
		return "", err
	}
	return f.Name(), nil
}
