package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturacion-api/internal/application/access"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/pkg/jwt"
)

// LocalCaller key de c.Locals donde queda el access.Caller autenticado.
const LocalCaller = "caller"

// AuthMiddleware valida el Bearer Token JWT y deja el Caller (usuario, empresa, rol) en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil || claims.UserID == "" || claims.CompanyID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalCaller, access.Caller{
			UserID:    claims.UserID,
			CompanyID: claims.CompanyID,
			Role:      claims.Role,
		})
		return c.Next()
	}
}

// RequireRole corta con 403 si el rol del token no está en roles. Usar después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetCaller(c).Role
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no trae rol"})
		}
		for _, r := range roles {
			if strings.EqualFold(r, role) {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para este recurso"})
	}
}

// GetCaller devuelve el Caller del contexto; vacío si la ruta no pasó por AuthMiddleware.
func GetCaller(c *fiber.Ctx) access.Caller {
	caller, _ := c.Locals(LocalCaller).(access.Caller)
	return caller
}

// GetCompanyID atajo para logs y métricas.
func GetCompanyID(c *fiber.Ctx) string {
	return GetCaller(c).CompanyID
}
