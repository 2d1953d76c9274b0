package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Compras-api/internal/application/sales"
)

// SaleHandler documentos imprimibles de cotizaciones y pedidos de venta.
type SaleHandler struct {
	uc  *sales.UseCase
	log zerolog.Logger
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.UseCase, log zerolog.Logger) *SaleHandler {
	return &SaleHandler{uc: uc, log: log}
}

// Document godoc
// @Summary      Documento de venta traducido
// @Description  Título, campos, direcciones y etiquetas en el idioma pedido (lang), el del cliente o el por defecto.
// @Tags         sale-orders
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "ID del pedido de venta"
// @Param        lang  query  string  false  "etiqueta BCP 47 (de, en, es)"
// @Success      200  {object}  dto.SaleDocumentResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sale-orders/{id}/document [get]
func (h *SaleHandler) Document(c *fiber.Ctx) error {
	companyID, _, ok := session(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.Document(c.Context(), companyID, c.Params("id"), c.Query("lang"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar documento de venta en PDF
// @Tags         sale-orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id    path   string  true   "ID del pedido de venta"
// @Param        lang  query  string  false  "etiqueta BCP 47"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sale-orders/{id}/pdf [get]
func (h *SaleHandler) PDF(c *fiber.Ctx) error {
	companyID, _, ok := session(c)
	if !ok {
		return unauthorized(c)
	}
	out, filename, err := h.uc.DownloadPDF(c.Context(), companyID, c.Params("id"), c.Query("lang"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(out)
}
