package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency moneda (COP, EUR, USD...). Rounding es la unidad mínima.
type Currency struct {
	ID       string
	Code     string
	Symbol   string
	Rounding decimal.Decimal
}

// CurrencyRate tasa de una moneda frente a la moneda base del sistema en una fecha.
// Rate = unidades de la moneda por 1 unidad base.
type CurrencyRate struct {
	CurrencyID string
	CompanyID  string
	Date       time.Time
	Rate       decimal.Decimal
}
