package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido de compra.
const (
	PurchaseStateDraft     = "draft"
	PurchaseStateSent      = "sent"
	PurchaseStateToApprove = "to approve"
	PurchaseStatePurchase  = "purchase"
	PurchaseStateDone      = "done"
	PurchaseStateCancel    = "cancel"
)

// Métodos de cálculo de la cantidad recibida.
const (
	QtyReceivedManual     = "manual"
	QtyReceivedStockMoves = "stock_moves"
)

// PurchaseOrder cabecera del pedido de compra. IsShipped, EffectiveDate,
// PickingIDs y PickingCount son agregados que se recalculan al cerrar cada transacción.
type PurchaseOrder struct {
	ID            string
	CompanyID     string
	Name          string
	PartnerID     string
	DestAddressID string // partner de drop-ship; vacío = recepción en bodega
	PickingTypeID string
	GroupID       string
	CurrencyID    string
	UserID        string
	State         string
	DateOrder     time.Time
	DatePlanned   *time.Time
	DateApprove   *time.Time
	Notes         string

	IsShipped     bool
	EffectiveDate *time.Time
	PickingIDs    []string
	PickingCount  int

	Lines []*PurchaseOrderLine

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PurchaseOrderLine línea del pedido.
type PurchaseOrderLine struct {
	ID                         string
	OrderID                    string
	Sequence                   int
	Name                       string
	DisplayType                string // "" = línea de producto; line_section / line_note no generan movimientos
	ProductID                  string
	ProductQty                 decimal.Decimal // cantidad pedida en ProductUoMID
	ProductUoMID               string
	PriceUnit                  decimal.Decimal
	TaxIDs                     []string
	DatePlanned                *time.Time
	QtyReceivedMethod          string
	QtyReceived                decimal.Decimal
	QtyInvoiced                decimal.Decimal
	PropagateCancel            bool
	OrderpointID               string
	OrderpointLocationID       string
	ProductDescriptionVariants string
}

// Line busca una línea por ID.
func (o *PurchaseOrder) Line(id string) *PurchaseOrderLine {
	for _, l := range o.Lines {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// AmountUntaxed suma cantidad × precio de las líneas de producto.
func (o *PurchaseOrder) AmountUntaxed() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.Lines {
		if l.DisplayType != "" {
			continue
		}
		total = total.Add(l.ProductQty.Mul(l.PriceUnit))
	}
	return total
}

// IsCancellable indica si el estado admite cancelación.
func (o *PurchaseOrder) IsCancellable() bool {
	switch o.State {
	case PurchaseStateDraft, PurchaseStateSent, PurchaseStateToApprove, PurchaseStatePurchase:
		return true
	}
	return false
}

// Clone copia el pedido con sus líneas.
func (o *PurchaseOrder) Clone() *PurchaseOrder {
	if o == nil {
		return nil
	}
	c := *o
	c.PickingIDs = append([]string(nil), o.PickingIDs...)
	c.Lines = make([]*PurchaseOrderLine, 0, len(o.Lines))
	for _, l := range o.Lines {
		lc := *l
		lc.TaxIDs = append([]string(nil), l.TaxIDs...)
		c.Lines = append(c.Lines, &lc)
	}
	return &c
}
