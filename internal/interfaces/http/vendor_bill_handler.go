package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/purchase"
)

// VendorBillHandler facturas de proveedor; alimentan la cantidad facturada de las líneas.
type VendorBillHandler struct {
	uc  *purchase.UseCase
	log zerolog.Logger
}

// NewVendorBillHandler construye el handler.
func NewVendorBillHandler(uc *purchase.UseCase, log zerolog.Logger) *VendorBillHandler {
	return &VendorBillHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Registrar factura o nota crédito de proveedor
// @Tags         vendor-bills
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVendorBillRequest  true  "proveedor, tipo y líneas"
// @Success      201  {object}  dto.VendorBillResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vendor-bills [post]
func (h *VendorBillHandler) Create(c *fiber.Ctx) error {
	companyID, _, ok := session(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.CreateVendorBillRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateBill(c.Context(), companyID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Post godoc
// @Summary      Contabilizar factura
// @Tags         vendor-bills
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {object}  dto.VendorBillResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/vendor-bills/{id}/post [post]
func (h *VendorBillHandler) Post(c *fiber.Ctx) error {
	companyID, _, ok := session(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.PostBill(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Anular factura
// @Tags         vendor-bills
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {object}  dto.VendorBillResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/vendor-bills/{id}/cancel [post]
func (h *VendorBillHandler) Cancel(c *fiber.Ctx) error {
	companyID, _, ok := session(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.CancelBill(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
