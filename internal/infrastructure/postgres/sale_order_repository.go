package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

var _ repository.SaleOrderRepository = (*SaleOrderRepo)(nil)

// SaleOrderRepo pedidos de venta (solo para su presentación imprimible).
type SaleOrderRepo struct {
	q Querier
}

// NewSaleOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleOrderRepository(q Querier) *SaleOrderRepo {
	return &SaleOrderRepo{q: q}
}

const saleOrderColumns = `id, company_id, name, state, date_order, validity_date, client_order_ref, user_id,
	partner_id, partner_invoice_id, partner_shipping_id, currency_id, amount_untaxed, amount_tax, amount_total`

// Create inserta el pedido y sus líneas.
func (r *SaleOrderRepo) Create(ctx context.Context, o *entity.SaleOrder) error {
	_, err := r.q.Exec(ctx, `INSERT INTO sale_orders (`+saleOrderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		o.ID, o.CompanyID, o.Name, o.State, o.DateOrder, o.ValidityDate, o.ClientOrderRef, o.UserID,
		o.PartnerID, o.PartnerInvoiceID, o.PartnerShippingID, o.CurrencyID, o.AmountUntaxed, o.AmountTax, o.AmountTotal,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale order: %w", err)
	}
	for _, l := range o.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sale_order_lines (id, order_id, name, product_id, quantity, price_unit, discount, price_subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			l.ID, o.ID, l.Name, l.ProductID, l.Quantity, l.PriceUnit, l.Discount, l.PriceSubtotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale order line: %w", err)
		}
	}
	return nil
}

// GetByID devuelve el pedido con sus líneas; nil, nil si no existe.
func (r *SaleOrderRepo) GetByID(ctx context.Context, id string) (*entity.SaleOrder, error) {
	o, err := one(r.q.QueryRow(ctx, `SELECT `+saleOrderColumns+` FROM sale_orders WHERE id = $1`, id), func(row pgx.Row) (*entity.SaleOrder, error) {
		var o entity.SaleOrder
		err := row.Scan(
			&o.ID, &o.CompanyID, &o.Name, &o.State, &o.DateOrder, &o.ValidityDate, &o.ClientOrderRef, &o.UserID,
			&o.PartnerID, &o.PartnerInvoiceID, &o.PartnerShippingID, &o.CurrencyID, &o.AmountUntaxed, &o.AmountTax, &o.AmountTotal,
		)
		if err != nil {
			return nil, err
		}
		return &o, nil
	})
	if err != nil {
		return nil, fmt.Errorf("get sale order: %w", err)
	}
	if o == nil {
		return nil, nil
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, name, product_id, quantity, price_unit, discount, price_subtotal
		FROM sale_order_lines WHERE order_id = $1 ORDER BY pos`, id)
	if err != nil {
		return nil, fmt.Errorf("list sale order lines: %w", err)
	}
	o.Lines, err = collect(rows, func(row pgx.Row) (*entity.SaleOrderLine, error) {
		var l entity.SaleOrderLine
		if err := row.Scan(&l.ID, &l.OrderID, &l.Name, &l.ProductID, &l.Quantity, &l.PriceUnit, &l.Discount, &l.PriceSubtotal); err != nil {
			return nil, err
		}
		return &l, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan sale order lines: %w", err)
	}
	return o, nil
}
