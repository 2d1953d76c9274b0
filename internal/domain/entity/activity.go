package entity

import "time"

// Modelos sobre los que se agenda actividad o se publica un mensaje.
const (
	ResModelPurchaseOrder = "purchase.order"
	ResModelPicking       = "stock.picking"
	ResModelVendorBill    = "account.move"
)

// Tipos de actividad.
const (
	ActivityTypeWarning   = "warning"
	ActivityTypeException = "exception"
)

// Activity actividad agendada sobre un documento y asignada a un usuario responsable.
type Activity struct {
	ID           string
	CompanyID    string
	ResModel     string
	ResID        string
	ActivityType string
	Summary      string
	Note         string
	UserID       string
	DateDeadline time.Time
	CreatedAt    time.Time
}

// Message nota de seguimiento (chatter) publicada sobre un documento.
type Message struct {
	ID        string
	ResModel  string
	ResID     string
	Body      string
	CreatedAt time.Time
}
