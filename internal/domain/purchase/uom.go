package purchase

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// RoundingMethod método de redondeo a la precisión de una UoM.
type RoundingMethod int

const (
	RoundHalfUp RoundingMethod = iota
	RoundUp
	RoundDown
)

// normalizePlaces absorbe el ruido de divisiones periódicas (1/3, 1/12) antes de Ceil/Floor.
const normalizePlaces = 12

// Round redondea value al múltiplo de precision según method. El redondeo es
// simétrico respecto a cero (UP aleja de cero, DOWN acerca a cero).
func Round(value, precision decimal.Decimal, method RoundingMethod) decimal.Decimal {
	if !precision.IsPositive() {
		return value
	}
	n := value.Div(precision).Round(normalizePlaces)
	abs := n.Abs()
	switch method {
	case RoundUp:
		abs = abs.Ceil()
	case RoundDown:
		abs = abs.Floor()
	default:
		abs = abs.Round(0)
	}
	if n.IsNegative() {
		abs = abs.Neg()
	}
	return abs.Mul(precision)
}

// IsZero indica si value es cero a la precisión dada.
func IsZero(value, precision decimal.Decimal) bool {
	return Round(value, precision, RoundHalfUp).IsZero()
}

// Compare compara a y b a la precisión dada: -1, 0 o 1.
// Ambos valores se redondean antes de restar, por lo que diferencias por debajo
// de la precisión se consideran iguales.
func Compare(a, b, precision decimal.Decimal) int {
	delta := Round(a, precision, RoundHalfUp).Sub(Round(b, precision, RoundHalfUp))
	if IsZero(delta, precision) {
		return 0
	}
	if delta.IsNegative() {
		return -1
	}
	return 1
}

// ComputeQuantity convierte qty expresada en from a la UoM to y la redondea a la
// precisión de destino. Las UoM deben pertenecer a la misma categoría.
func ComputeQuantity(qty decimal.Decimal, from, to *entity.UoM, method RoundingMethod) (decimal.Decimal, error) {
	if from == nil || to == nil {
		return qty, nil
	}
	amount := qty
	if from.ID != to.ID {
		if from.CategoryID != to.CategoryID {
			return decimal.Zero, domain.NewUserError(domain.CodeIncompatibleUoM,
				fmt.Sprintf("la conversión de %s a %s no es posible: pertenecen a categorías distintas", from.Name, to.Name))
		}
		if !from.Factor.IsPositive() {
			return decimal.Zero, fmt.Errorf("uom %s: factor inválido %s", from.Name, from.Factor)
		}
		amount = qty.Div(from.Factor).Mul(to.Factor)
	}
	return Round(amount, to.Rounding, method), nil
}

// ComputePrice convierte un precio por unidad de from a precio por unidad de to.
func ComputePrice(price decimal.Decimal, from, to *entity.UoM) decimal.Decimal {
	if from == nil || to == nil || from.ID == to.ID || !to.Factor.IsPositive() {
		return price
	}
	return price.Mul(from.Factor).Div(to.Factor)
}

// precisionOf devuelve la precisión de la UoM (0.01 por defecto si no está cargada).
func precisionOf(u *entity.UoM) decimal.Decimal {
	if u == nil || !u.Rounding.IsPositive() {
		return decimal.New(1, -2)
	}
	return u.Rounding
}
