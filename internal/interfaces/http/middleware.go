package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturacion-api/pkg/logger"
	"github.com/jhoicas/Facturacion-api/pkg/metrics"
)

// RequestLogger registra una línea por petición con método, ruta, estado y latencia.
// El error (si lo hay) ya pasó por el ErrorHandler, así que el estado es el definitivo.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			if hErr := c.App().ErrorHandler(c, err); hErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev.Str("request_id", requestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("company_id", GetCompanyID(c)).
			Msg("http")
		return nil
	}
}

// Metrics cuenta peticiones y latencia por ruta registrada (no por path, para acotar cardinalidad).
func Metrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		m.IncInFlight()
		defer m.DecInFlight()
		start := time.Now()
		err := c.Next()
		if err != nil {
			if hErr := c.App().ErrorHandler(c, err); hErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		route := c.Route().Path
		if route == "" || route == "/" {
			route = "unmatched"
		}
		m.RecordHTTPRequest(c.Method(), route, c.Response().StatusCode(), time.Since(start))
		return nil
	}
}
