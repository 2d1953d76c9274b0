package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	PartnerID     string                `json:"partner_id" validate:"required"`
	DestAddressID string                `json:"dest_address_id,omitempty"`
	PickingTypeID string                `json:"picking_type_id,omitempty"`
	CurrencyID    string                `json:"currency_id,omitempty"`
	DateOrder     *time.Time            `json:"date_order,omitempty"`
	DatePlanned   *time.Time            `json:"date_planned,omitempty"`
	Notes         string                `json:"notes,omitempty" validate:"max=2000"`
	Lines         []PurchaseLineRequest `json:"lines" validate:"dive"`
}

// PurchaseLineRequest línea nueva de pedido (creación o POST /purchase-orders/:id/lines).
type PurchaseLineRequest struct {
	ProductID            string          `json:"product_id" validate:"required"`
	Name                 string          `json:"name,omitempty" validate:"max=2000"`
	ProductQty           decimal.Decimal `json:"product_qty"`
	ProductUoMID         string          `json:"product_uom_id,omitempty"`
	PriceUnit            decimal.Decimal `json:"price_unit"`
	TaxIDs               []string        `json:"tax_ids,omitempty"`
	DatePlanned          *time.Time      `json:"date_planned,omitempty"`
	PropagateCancel      *bool           `json:"propagate_cancel,omitempty"`
	OrderpointLocationID string          `json:"orderpoint_location_id,omitempty"`
	DisplayType          string          `json:"display_type,omitempty" validate:"omitempty,oneof=line_section line_note"`
}

// UpdatePurchaseLineRequest body para PATCH /purchase-orders/:id/lines/:lineId.
// Solo se aplican los campos presentes.
type UpdatePurchaseLineRequest struct {
	ProductQty  *decimal.Decimal `json:"product_qty,omitempty"`
	PriceUnit   *decimal.Decimal `json:"price_unit,omitempty"`
	DatePlanned *time.Time       `json:"date_planned,omitempty"`
}

// PurchaseLineResponse salida de una línea.
type PurchaseLineResponse struct {
	ID           string          `json:"id"`
	Sequence     int             `json:"sequence"`
	Name         string          `json:"name"`
	DisplayType  string          `json:"display_type,omitempty"`
	ProductID    string          `json:"product_id,omitempty"`
	ProductQty   decimal.Decimal `json:"product_qty"`
	ProductUoMID string          `json:"product_uom_id,omitempty"`
	PriceUnit    decimal.Decimal `json:"price_unit"`
	DatePlanned  *time.Time      `json:"date_planned,omitempty"`
	QtyReceived  decimal.Decimal `json:"qty_received"`
	QtyInvoiced  decimal.Decimal `json:"qty_invoiced"`
}

// PurchaseOrderResponse salida de un pedido con sus agregados de recepción.
type PurchaseOrderResponse struct {
	ID            string                 `json:"id"`
	CompanyID     string                 `json:"company_id"`
	Name          string                 `json:"name"`
	PartnerID     string                 `json:"partner_id"`
	DestAddressID string                 `json:"dest_address_id,omitempty"`
	CurrencyID    string                 `json:"currency_id"`
	State         string                 `json:"state"`
	DateOrder     time.Time              `json:"date_order"`
	DatePlanned   *time.Time             `json:"date_planned,omitempty"`
	DateApprove   *time.Time             `json:"date_approve,omitempty"`
	AmountUntaxed decimal.Decimal        `json:"amount_untaxed"`
	IsShipped     bool                   `json:"is_shipped"`
	EffectiveDate *time.Time             `json:"effective_date,omitempty"`
	PickingCount  int                    `json:"picking_count"`
	PickingIDs    []string               `json:"picking_ids"`
	Lines         []PurchaseLineResponse `json:"lines"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// PurchaseOrderListResponse listado paginado de pedidos.
type PurchaseOrderListResponse struct {
	Items []PurchaseOrderResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// ActivityResponse actividad agendada sobre un documento.
type ActivityResponse struct {
	ID           string    `json:"id"`
	ResModel     string    `json:"res_model"`
	ResID        string    `json:"res_id"`
	ActivityType string    `json:"activity_type"`
	Summary      string    `json:"summary"`
	Note         string    `json:"note"`
	UserID       string    `json:"user_id,omitempty"`
	DateDeadline time.Time `json:"date_deadline"`
}

// MessageResponse nota del historial de un documento.
type MessageResponse struct {
	ID        string    `json:"id"`
	ResModel  string    `json:"res_model"`
	ResID     string    `json:"res_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderActivityResponse actividades y mensajes del pedido y de sus traslados.
type OrderActivityResponse struct {
	Activities []ActivityResponse `json:"activities"`
	Messages   []MessageResponse  `json:"messages"`
}
