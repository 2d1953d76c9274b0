package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de movimiento de stock.
const (
	MoveStateDraft              = "draft"
	MoveStateWaiting            = "waiting"
	MoveStateConfirmed          = "confirmed"
	MoveStatePartiallyAvailable = "partially_available"
	MoveStateAssigned           = "assigned"
	MoveStateDone               = "done"
	MoveStateCancel             = "cancel"
)

// Métodos de aprovisionamiento.
const (
	ProcureMakeToStock = "make_to_stock"
	ProcureMakeToOrder = "make_to_order"
)

// StockMove representa una transferencia de cantidad entre dos ubicaciones.
// ProductUoMQty está expresada en ProductUoMID; ProductQty en la UoM base del producto.
type StockMove struct {
	ID                 string
	CompanyID          string
	Name               string
	Sequence           int
	ProductID          string
	ProductUoMQty      decimal.Decimal
	ProductUoMID       string
	ProductQty         decimal.Decimal
	State              string
	LocationID         string
	LocationDestID     string
	PickingID          string
	PickingTypeID      string
	WarehouseID        string
	GroupID            string
	PartnerID          string
	Origin             string
	DescriptionPicking string
	PriceUnit          decimal.Decimal
	ProcureMethod      string
	PropagateCancel    bool
	ToRefund           bool
	Scrapped           bool

	// PurchaseLineID línea de compra que origina el movimiento.
	PurchaseLineID string
	// CreatedPurchaseLineID línea de compra creada para abastecer este movimiento (aguas abajo).
	CreatedPurchaseLineID string
	// OriginReturnedMoveID movimiento original del cual este es una devolución.
	OriginReturnedMoveID string

	// MoveDestIDs movimientos aguas abajo que consumen este; MoveOrigIDs los de aguas arriba.
	MoveDestIDs []string
	MoveOrigIDs []string

	Date         time.Time
	DateDeadline *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsCancelled indica estado cancel.
func (m *StockMove) IsCancelled() bool { return m.State == MoveStateCancel }

// IsDone indica estado done.
func (m *StockMove) IsDone() bool { return m.State == MoveStateDone }

// Clone devuelve una copia independiente (incluye los slices de enlaces).
func (m *StockMove) Clone() *StockMove {
	if m == nil {
		return nil
	}
	c := *m
	c.MoveDestIDs = append([]string(nil), m.MoveDestIDs...)
	c.MoveOrigIDs = append([]string(nil), m.MoveOrigIDs...)
	if m.DateDeadline != nil {
		d := *m.DateDeadline
		c.DateDeadline = &d
	}
	return &c
}
