package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/purchase"
)

// PurchaseHandler pedidos de compra: creación, ciclo de vida, líneas y seguimiento.
type PurchaseHandler struct {
	uc  *purchase.UseCase
	log zerolog.Logger
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *purchase.UseCase, log zerolog.Logger) *PurchaseHandler {
	return &PurchaseHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear pedido de compra (borrador)
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "proveedor, líneas, fechas"
// @Success      201   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	companyID, userID, ok := session(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.CreatePurchaseOrderRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateOrder(c.Context(), companyID, userID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar pedidos de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo 100 (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.PurchaseOrderListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	companyID, _, ok := session(c)
	if !ok {
		return unauthorized(c)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de paginación inválidos"})
	}
	page.DefaultPage()
	if ok, err := validStruct(c, &page); !ok {
		return err
	}
	out, err := h.uc.ListOrders(c.Context(), companyID, page)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener pedido de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id} [get]
func (h *PurchaseHandler) Get(c *fiber.Ctx) error {
	companyID, _, ok := session(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.GetOrder(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Action godoc
// @Summary      Transición de estado del pedido
// @Description  send | confirm | approve | cancel | lock | unlock | draft.
// @Description  confirm deja el pedido en "to approve" si supera el monto de doble validación.
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID del pedido"
// @Param        action  path  string  true  "acción"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/{action} [post]
func (h *PurchaseHandler) Action(c *fiber.Ctx) error {
	companyID, userID, ok := session(c)
	if !ok {
		return unauthorized(c)
	}
	id := c.Params("id")
	var run func(ctx context.Context) (*dto.PurchaseOrderResponse, error)
	switch c.Params("action") {
	case "send":
		run = func(ctx context.Context) (*dto.PurchaseOrderResponse, error) {
			return h.uc.MarkSent(ctx, companyID, id)
		}
	case "confirm":
		role := GetRole(c)
		run = func(ctx context.Context) (*dto.PurchaseOrderResponse, error) {
			return h.uc.Confirm(ctx, companyID, userID, role, id)
		}
	case "approve":
		run = func(ctx context.Context) (*dto.PurchaseOrderResponse, error) {
			return h.uc.Approve(ctx, companyID, userID, id)
		}
	case "cancel":
		run = func(ctx context.Context) (*dto.PurchaseOrderResponse, error) {
			return h.uc.Cancel(ctx, companyID, id)
		}
	case "lock":
		run = func(ctx context.Context) (*dto.PurchaseOrderResponse, error) {
			return h.uc.Lock(ctx, companyID, id)
		}
	case "unlock":
		run = func(ctx context.Context) (*dto.PurchaseOrderResponse, error) {
			return h.uc.Unlock(ctx, companyID, id)
		}
	case "draft":
		run = func(ctx context.Context) (*dto.PurchaseOrderResponse, error) {
			return h.uc.ResetToDraft(ctx, companyID, id)
		}
	default:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_ACTION", Message: "acción desconocida: " + c.Params("action")})
	}
	out, err := run(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// AddLine godoc
// @Summary      Agregar línea al pedido
// @Description  Con el pedido confirmado genera los movimientos de la nueva línea.
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del pedido"
// @Param        body  body  dto.PurchaseLineRequest  true  "producto, cantidad, precio"
// @Success      201  {object}  dto.PurchaseOrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/lines [post]
func (h *PurchaseHandler) AddLine(c *fiber.Ctx) error {
	companyID, _, ok := session(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.PurchaseLineRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.AddLine(c.Context(), companyID, c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateLine godoc
// @Summary      Modificar línea del pedido
// @Description  product_qty y/o date_planned. Una disminución por debajo de lo recibido responde 422.
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string                         true  "ID del pedido"
// @Param        lineId  path  string                         true  "ID de la línea"
// @Param        body    body  dto.UpdatePurchaseLineRequest  true  "campos a modificar"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/lines/{lineId} [patch]
func (h *PurchaseHandler) UpdateLine(c *fiber.Ctx) error {
	companyID, _, ok := session(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.UpdatePurchaseLineRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateLine(c.Context(), companyID, c.Params("id"), c.Params("lineId"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Pickings godoc
// @Summary      Recepciones del pedido
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {array}  dto.PickingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/pickings [get]
func (h *PurchaseHandler) Pickings(c *fiber.Ctx) error {
	companyID, _, ok := session(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.ListPickings(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Activities godoc
// @Summary      Actividades y mensajes del pedido y sus recepciones
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderActivityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/activities [get]
func (h *PurchaseHandler) Activities(c *fiber.Ctx) error {
	companyID, _, ok := session(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.ListActivities(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
