package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos y estados de factura de proveedor.
const (
	BillTypeInvoice = "in_invoice"
	BillTypeRefund  = "in_refund"

	BillStateDraft  = "draft"
	BillStatePosted = "posted"
	BillStateCancel = "cancel"
)

// VendorBill cabecera de una factura (o nota crédito) de proveedor.
type VendorBill struct {
	ID        string
	CompanyID string
	PartnerID string
	Name      string
	MoveType  string
	State     string
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VendorBillLine línea facturada; PurchaseLineID la enlaza a la línea de compra.
type VendorBillLine struct {
	ID             string
	BillID         string
	PurchaseLineID string
	ProductID      string
	Quantity       decimal.Decimal
	ProductUoMID   string
	PriceUnit      decimal.Decimal
}
