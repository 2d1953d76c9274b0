package purchase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// CurrencyConverter convierte montos entre monedas a una fecha (sin redondear).
type CurrencyConverter interface {
	Convert(amount decimal.Decimal, fromCurrencyID, toCurrencyID, companyID string, date time.Time) (decimal.Decimal, error)
}

// PriceExcluded quita del precio unitario los impuestos incluidos en el precio.
// Los impuestos no incluidos no alteran la base.
func PriceExcluded(price decimal.Decimal, taxes []*entity.Tax) decimal.Decimal {
	percent := decimal.Zero
	fixed := decimal.Zero
	for _, t := range taxes {
		if t == nil || !t.PriceInclude {
			continue
		}
		switch t.AmountType {
		case entity.TaxAmountFixed:
			fixed = fixed.Add(t.Amount)
		default:
			percent = percent.Add(t.Amount)
		}
	}
	base := price.Sub(fixed)
	if percent.IsZero() {
		return base
	}
	return base.Div(decimal.NewFromInt(1).Add(percent.Div(decimal.NewFromInt(100))))
}

// StockMovePriceUnit precio unitario que llevará el movimiento: sin impuestos,
// por UoM del producto y en moneda de la compañía a la fecha del pedido.
func StockMovePriceUnit(s *Snapshot, line *entity.PurchaseOrderLine, conv CurrencyConverter) (decimal.Decimal, error) {
	taxes := make([]*entity.Tax, 0, len(line.TaxIDs))
	for _, id := range line.TaxIDs {
		taxes = append(taxes, s.Taxes[id])
	}
	price := PriceExcluded(line.PriceUnit, taxes)

	product := s.Product(line.ProductID)
	if product != nil && line.ProductUoMID != product.UoMID {
		price = ComputePrice(price, s.UoM(line.ProductUoMID), s.UoM(product.UoMID))
	}

	order := s.Order
	if s.Company != nil && conv != nil && order.CurrencyID != "" && order.CurrencyID != s.Company.CurrencyID {
		date := order.DateOrder
		if date.IsZero() {
			date = time.Now()
		}
		converted, err := conv.Convert(price, order.CurrencyID, s.Company.CurrencyID, s.Company.ID, date)
		if err != nil {
			return decimal.Zero, err
		}
		price = converted
	}
	return price, nil
}
