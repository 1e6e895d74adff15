package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/usecase"
)

// CompanyHandler empresa del usuario autenticado.
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler construye el handler inyectando el caso de uso.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Get godoc
// @Summary      Obtener la empresa del token
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies [get]
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetCaller(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar datos de la empresa (admin)
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateCompanyRequest  true  "Campos a modificar"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/companies [put]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return errBadBody
	}
	out, err := h.uc.Update(c.UserContext(), GetCaller(c), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UpdateLogo godoc
// @Summary      Cambiar el logo de la empresa (admin)
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateLogoRequest  true  "URL del logo"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/companies/logo [post]
func (h *CompanyHandler) UpdateLogo(c *fiber.Ctx) error {
	var in dto.UpdateLogoRequest
	if err := c.BodyParser(&in); err != nil {
		return errBadBody
	}
	out, err := h.uc.UpdateLogo(c.UserContext(), GetCaller(c), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
