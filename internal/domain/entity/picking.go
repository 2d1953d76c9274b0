package entity

import "time"

// Estados de un picking (derivados de sus movimientos).
const (
	PickingStateDraft     = "draft"
	PickingStateWaiting   = "waiting"
	PickingStateConfirmed = "confirmed"
	PickingStateAssigned  = "assigned"
	PickingStateDone      = "done"
	PickingStateCancel    = "cancel"
)

// Códigos de tipo de operación.
const (
	PickingTypeIncoming = "incoming"
	PickingTypeOutgoing = "outgoing"
	PickingTypeInternal = "internal"
)

// PickingType tipo de operación (recepción, entrega, interno) con sus ubicaciones por defecto.
type PickingType struct {
	ID                    string
	CompanyID             string
	Name                  string
	Code                  string
	SequencePrefix        string
	WarehouseID           string
	DefaultLocationSrcID  string
	DefaultLocationDestID string
	ReturnTypeID          string
}

// Picking agrupa los movimientos de un mismo evento físico de recepción/entrega.
type Picking struct {
	ID             string
	CompanyID      string
	Name           string
	Origin         string
	PartnerID      string
	PickingTypeID  string
	LocationID     string
	LocationDestID string
	GroupID        string
	UserID         string
	State          string
	Date           time.Time
	DateDone       *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsTerminal indica done o cancel.
func (p *Picking) IsTerminal() bool {
	return p.State == PickingStateDone || p.State == PickingStateCancel
}

// ProcurementGroup agrupa movimientos generados por una misma demanda (un pedido).
type ProcurementGroup struct {
	ID        string
	CompanyID string
	Name      string
	PartnerID string
}
