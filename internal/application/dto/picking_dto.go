package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMoveResponse salida de un movimiento de stock.
type StockMoveResponse struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	ProductID            string          `json:"product_id"`
	ProductUoMQty        decimal.Decimal `json:"product_uom_qty"`
	ProductUoMID         string          `json:"product_uom_id"`
	State                string          `json:"state"`
	LocationID           string          `json:"location_id"`
	LocationDestID       string          `json:"location_dest_id"`
	PriceUnit            decimal.Decimal `json:"price_unit"`
	PurchaseLineID       string          `json:"purchase_line_id,omitempty"`
	OriginReturnedMoveID string          `json:"origin_returned_move_id,omitempty"`
	ToRefund             bool            `json:"to_refund"`
	Date                 time.Time       `json:"date"`
	DateDeadline         *time.Time      `json:"date_deadline,omitempty"`
}

// PickingResponse salida de un picking con sus movimientos.
type PickingResponse struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Origin         string              `json:"origin"`
	PartnerID      string              `json:"partner_id,omitempty"`
	PickingTypeID  string              `json:"picking_type_id"`
	LocationID     string              `json:"location_id"`
	LocationDestID string              `json:"location_dest_id"`
	State          string              `json:"state"`
	Date           time.Time           `json:"date"`
	DateDone       *time.Time          `json:"date_done,omitempty"`
	Moves          []StockMoveResponse `json:"moves"`
}

// ReturnLineRequest cantidad a devolver de un movimiento (en la UoM del movimiento).
type ReturnLineRequest struct {
	MoveID   string          `json:"move_id" validate:"required"`
	Quantity decimal.Decimal `json:"quantity"`
}

// ReturnPickingRequest body para POST /api/pickings/:id/return.
// Sin líneas se devuelve todo lo pendiente de devolver.
type ReturnPickingRequest struct {
	Lines      []ReturnLineRequest `json:"lines" validate:"dive"`
	ToRefund   bool                `json:"to_refund"`
	LocationID string              `json:"location_id,omitempty"`
}
