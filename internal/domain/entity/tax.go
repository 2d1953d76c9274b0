package entity

import "github.com/shopspring/decimal"

// Tipos de cálculo de impuesto.
const (
	TaxAmountPercent = "percent"
	TaxAmountFixed   = "fixed"
)

// Tax impuesto de compra. Amount es porcentaje (19 = 19%) o monto fijo por unidad.
// PriceInclude indica que el precio unitario de la línea ya incluye el impuesto.
type Tax struct {
	ID           string
	CompanyID    string
	Name         string
	AmountType   string
	Amount       decimal.Decimal
	PriceInclude bool
}
