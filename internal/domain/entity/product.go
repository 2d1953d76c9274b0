package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de producto. Solo product y consu generan movimientos de stock.
const (
	ProductTypeStorable   = "product"
	ProductTypeConsumable = "consu"
	ProductTypeService    = "service"
)

// Product representa un producto o SKU del inventario (multi-bodega).
// Cost es promedio ponderado calculado desde las recepciones.
type Product struct {
	ID            string
	CompanyID     string
	SKU           string // código único por empresa
	Name          string
	Description   string
	Type          string
	UoMID         string // unidad de medida base (stock)
	ResponsibleID string // usuario responsable (recibe las notas de excepción)
	Price         decimal.Decimal
	Cost          decimal.Decimal
	Attributes    json.RawMessage
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsStockable indica si el producto genera movimientos (almacenable o consumible).
func (p *Product) IsStockable() bool {
	return p != nil && (p.Type == ProductTypeStorable || p.Type == ProductTypeConsumable)
}
