package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido de venta.
const (
	SaleStateDraft  = "draft"
	SaleStateSent   = "sent"
	SaleStateSale   = "sale"
	SaleStateDone   = "done"
	SaleStateCancel = "cancel"
)

// SaleOrder pedido de venta (solo lectura en este servicio: presentación imprimible).
type SaleOrder struct {
	ID                string
	CompanyID         string
	Name              string
	State             string
	DateOrder         *time.Time
	ValidityDate      *time.Time
	ClientOrderRef    string
	UserID            string
	PartnerID         string
	PartnerInvoiceID  string
	PartnerShippingID string
	CurrencyID        string
	AmountUntaxed     decimal.Decimal
	AmountTax         decimal.Decimal
	AmountTotal       decimal.Decimal
	Lines             []*SaleOrderLine
}

// IsQuotation indica si el documento aún es una cotización (draft/sent).
func (s *SaleOrder) IsQuotation() bool {
	return s.State == SaleStateDraft || s.State == SaleStateSent
}

// SaleOrderLine línea del pedido de venta.
type SaleOrderLine struct {
	ID            string
	OrderID       string
	Name          string
	ProductID     string
	Quantity      decimal.Decimal
	PriceUnit     decimal.Decimal
	Discount      decimal.Decimal
	PriceSubtotal decimal.Decimal
}
