package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/inventory"
)

// PickingHandler consulta, validación y devolución de traslados.
type PickingHandler struct {
	uc  *inventory.UseCase
	log zerolog.Logger
}

// NewPickingHandler construye el handler.
func NewPickingHandler(uc *inventory.UseCase, log zerolog.Logger) *PickingHandler {
	return &PickingHandler{uc: uc, log: log}
}

// Get godoc
// @Summary      Obtener picking con sus movimientos
// @Tags         pickings
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del picking"
// @Success      200  {object}  dto.PickingResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pickings/{id} [get]
func (h *PickingHandler) Get(c *fiber.Ctx) error {
	companyID, _, ok := session(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.GetPicking(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Validate godoc
// @Summary      Validar picking
// @Description  Marca los movimientos como hechos, mueve el stock y recalcula lo recibido en los pedidos.
// @Tags         pickings
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del picking"
// @Success      200  {object}  dto.PickingResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/pickings/{id}/validate [post]
func (h *PickingHandler) Validate(c *fiber.Ctx) error {
	companyID, userID, ok := session(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.ValidatePicking(c.Context(), companyID, userID, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Return godoc
// @Summary      Devolver picking
// @Description  Crea el picking de devolución. Sin líneas devuelve todo lo pendiente; to_refund descuenta lo recibido.
// @Tags         pickings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del picking hecho"
// @Param        body  body  dto.ReturnPickingRequest  false "líneas y to_refund"
// @Success      201  {object}  dto.PickingResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/pickings/{id}/return [post]
func (h *PickingHandler) Return(c *fiber.Ctx) error {
	companyID, userID, ok := session(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.ReturnPickingRequest
	if len(c.Body()) > 0 {
		if ok, err := parseBody(c, &in); !ok {
			return err
		}
	}
	out, err := h.uc.ReturnPicking(c.Context(), companyID, userID, c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
