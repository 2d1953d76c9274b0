package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// VendorBillLineRequest línea de factura de proveedor ligada a una línea de compra.
type VendorBillLineRequest struct {
	PurchaseLineID string          `json:"purchase_line_id" validate:"required"`
	Quantity       decimal.Decimal `json:"quantity"`
	PriceUnit      decimal.Decimal `json:"price_unit"`
}

// CreateVendorBillRequest body para POST /api/vendor-bills.
type CreateVendorBillRequest struct {
	PartnerID string                  `json:"partner_id" validate:"required"`
	MoveType  string                  `json:"move_type" validate:"required,oneof=in_invoice in_refund"`
	Date      *time.Time              `json:"date,omitempty"`
	Post      bool                    `json:"post"`
	Lines     []VendorBillLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// VendorBillResponse salida de una factura de proveedor.
type VendorBillResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	PartnerID string    `json:"partner_id"`
	MoveType  string    `json:"move_type"`
	State     string    `json:"state"`
	Date      time.Time `json:"date"`
}
