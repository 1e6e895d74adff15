package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/usecase"
)

// UserHandler usuarios de la empresa del token.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Listar usuarios de la empresa (admin)
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}   dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetCaller(c), pageFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear usuario en la empresa (admin)
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "Datos del usuario"
// @Success      201  {object}  dto.UserResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return errBadBody
	}
	out, err := h.uc.Create(c.UserContext(), GetCaller(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Me godoc
// @Summary      Perfil del usuario autenticado
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Router       /api/users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetCaller(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UpdateMe godoc
// @Summary      Actualizar el propio perfil
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "Cambios"
// @Success      200  {object}  dto.UserResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/users/me [put]
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return errBadBody
	}
	out, err := h.uc.UpdateMe(c.UserContext(), GetCaller(c), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{
		Limit:  c.QueryInt("limit", dto.DefaultPageLimit),
		Offset: c.QueryInt("offset", 0),
	}.Normalize()
}
