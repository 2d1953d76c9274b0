package entity

import "time"

// Warehouse representa una bodega. ViewLocationID es la ubicación vista raíz:
// todas las ubicaciones de la bodega cuelgan de ella.
type Warehouse struct {
	ID             string
	CompanyID      string
	Name           string
	Code           string
	Address        string
	ViewLocationID string
	LotStockID     string // ubicación de existencias principal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
