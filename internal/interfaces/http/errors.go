package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/pkg/logger"
	"github.com/jhoicas/Facturacion-api/pkg/metrics"
)

// errBadBody cuerpo JSON ilegible; se responde como entrada inválida.
var errBadBody = domain.Invalid("cuerpo inválido")

// ErrorHandler traduce los errores devueltos por los handlers a dto.ErrorResponse.
//
//	ErrNotFound      → 404 NOT_FOUND
//	ErrForbidden     → 403 FORBIDDEN
//	ErrConflict      → 409 CONFLICT
//	ErrInvalidInput  → 400 VALIDATION
//	ErrUnauthorized  → 401 UNAUTHORIZED
//	*fiber.Error     → su propio código
//	resto            → 500 INTERNAL (se loguea, el detalle no sale al cliente)
func ErrorHandler(log *logger.Logger, m *metrics.Metrics) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, code, msg := classify(err)
		if status == fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("request_id", requestID(c)).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("company_id", GetCompanyID(c)).
				Msg("error interno")
		}
		if m != nil {
			m.RecordDomainError(code)
		}
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
	}
}

func classify(err error) (int, string, string) {
	var fe *fiber.Error
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND", detail(err, domain.ErrNotFound)
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN", detail(err, domain.ErrForbidden)
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT", detail(err, domain.ErrConflict)
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION", detail(err, domain.ErrInvalidInput)
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas"
	case errors.As(err, &fe):
		if fe.Code >= fiber.StatusInternalServerError {
			return fe.Code, "INTERNAL", "error interno"
		}
		return fe.Code, fiberCode(fe.Code), fe.Message
	default:
		return fiber.StatusInternalServerError, "INTERNAL", "error interno"
	}
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	default:
		return "BAD_REQUEST"
	}
}

// detail quita el prefijo del sentinel: "entrada inválida: number es obligatorio" → "number es obligatorio".
func detail(err, sentinel error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
		return rest
	}
	return msg
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}
