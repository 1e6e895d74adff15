package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
)

// CustomerHandler clientes de facturación (protegido).
type CustomerHandler struct {
	uc *billing.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *billing.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// List godoc
// @Summary      Listar clientes
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.CustomerResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetCaller(c), pageFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener cliente
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetCaller(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CustomerRequest  true  "Datos del cliente"
// @Success      201  {object}  dto.CustomerResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return errBadBody
	}
	out, err := h.uc.Create(c.UserContext(), GetCaller(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Reemplazar datos del cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del cliente"
// @Param        body  body  dto.CustomerRequest  true  "Datos del cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return errBadBody
	}
	out, err := h.uc.Update(c.UserContext(), GetCaller(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cliente (409 si tiene facturas)
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetCaller(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "cliente eliminado"})
}
