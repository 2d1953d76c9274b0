package entity

import "github.com/shopspring/decimal"

// Tipos de unidad dentro de su categoría.
const (
	UoMTypeReference = "reference"
	UoMTypeBigger    = "bigger"
	UoMTypeSmaller   = "smaller"
)

// UoM unidad de medida. Factor = cuántas unidades de esta UoM hay en la referencia
// de su categoría (docena: 1/12, referencia: 1, gramo: 1000 frente a kg).
// Rounding es la precisión mínima representable (0.01, 1, ...).
type UoM struct {
	ID         string
	Name       string
	CategoryID string
	Type       string
	Factor     decimal.Decimal
	Rounding   decimal.Decimal
}
