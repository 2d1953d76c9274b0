package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Company representa una organización/tenant del sistema.
// Los parámetros de compras (plazo de seguridad y doble validación) viven aquí.
type Company struct {
	ID         string
	Name       string
	NIT        string // identificación tributaria
	Address    string
	Phone      string
	Email      string
	CurrencyID string // moneda de la compañía (valoración de inventario)
	Status     string // active, suspended, inactive

	// POLeadDays días de seguridad que se suman a la fecha prevista para obtener
	// la fecha límite de los movimientos de recepción.
	POLeadDays int
	// PODoubleValidation exige aprobación de un gerente cuando el total supera POApprovalAmount.
	PODoubleValidation bool
	POApprovalAmount   decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RequiresApproval indica si un pedido por amountTotal (en moneda de la compañía) queda en "to approve".
func (c *Company) RequiresApproval(amountTotal decimal.Decimal) bool {
	if c == nil || !c.PODoubleValidation {
		return false
	}
	return amountTotal.GreaterThanOrEqual(c.POApprovalAmount)
}
