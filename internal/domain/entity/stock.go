package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock (quant) representa la cantidad disponible de un producto en una ubicación interna.
type Stock struct {
	ProductID  string
	LocationID string
	Quantity   decimal.Decimal
	UpdatedAt  time.Time
}
