package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturacion-api/internal/application/analytics"
	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
)

// InvoiceHandler facturas, resumen y PDF (protegido).
type InvoiceHandler struct {
	uc    *billing.InvoiceUseCase
	stats *analytics.StatsUseCase
	pdf   *billing.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, stats *analytics.StatsUseCase, pdf *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, stats: stats, pdf: pdf}
}

// List godoc
// @Summary      Listar facturas (con nombre y email del cliente)
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "draft | pending | paid | overdue | cancelled"
// @Param        limit   query  int     false  "Límite"  default(50)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}   dto.InvoiceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetCaller(c), dto.InvoiceListRequest{
		PageRequest: pageFromQuery(c),
		Status:      c.Query("status"),
	})
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de factura con cliente y líneas
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetCaller(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear factura con sus líneas
// @Description  Importes y total se calculan en el servidor.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InvoiceRequest  true  "Cabecera y líneas"
// @Success      201  {object}  dto.InvoiceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
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
// @Summary      Reemplazar cabecera y líneas de una factura
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la factura"
// @Param        body  body  dto.InvoiceRequest  true  "Cabecera y líneas"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [put]
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
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
// @Summary      Eliminar factura y sus líneas
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetCaller(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "factura eliminada"})
}

// Stats godoc
// @Summary      Resumen de facturación de la empresa
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InvoiceStatsResponse
// @Router       /api/invoices/stats/overview [get]
func (h *InvoiceHandler) Stats(c *fiber.Ctx) error {
	out, err := h.stats.Overview(c.UserContext(), GetCaller(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Descargar la factura en PDF
// @Tags         invoices
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	data, filename, err := h.pdf.DownloadInvoicePDF(c.UserContext(), GetCaller(c), c.Params("id"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
