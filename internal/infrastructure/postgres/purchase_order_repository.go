package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo pedidos de compra y sus líneas sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const orderColumns = `id, company_id, name, partner_id, dest_address_id, picking_type_id, group_id,
	currency_id, user_id, state, date_order, date_planned, date_approve, notes,
	is_shipped, effective_date, picking_ids, picking_count, created_at, updated_at`

const orderLineColumns = `id, order_id, sequence, name, display_type, product_id, product_qty,
	product_uom_id, price_unit, tax_ids, date_planned, qty_received_method, qty_received,
	qty_invoiced, propagate_cancel, orderpoint_id, orderpoint_location_id, product_description_variants`

// Create inserta la cabecera y sus líneas.
func (r *PurchaseOrderRepo) Create(ctx context.Context, o *entity.PurchaseOrder) error {
	query := `INSERT INTO purchase_orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.CompanyID, o.Name, o.PartnerID, o.DestAddressID, o.PickingTypeID, o.GroupID,
		o.CurrencyID, o.UserID, o.State, o.DateOrder, o.DatePlanned, o.DateApprove, o.Notes,
		o.IsShipped, o.EffectiveDate, nonNil(o.PickingIDs), o.PickingCount, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	for _, l := range o.Lines {
		l.OrderID = o.ID
		if err := r.CreateLine(ctx, l); err != nil {
			return err
		}
	}
	return nil
}

// GetByID devuelve el pedido con sus líneas.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM purchase_orders WHERE id = $1`, id)
}

// GetForUpdate bloquea la cabecera hasta el fin de la transacción.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM purchase_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *PurchaseOrderRepo) get(ctx context.Context, query, id string) (*entity.PurchaseOrder, error) {
	o, err := one(r.q.QueryRow(ctx, query, id), scanOrder)
	if err != nil {
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	if o == nil {
		return nil, nil
	}
	if err := r.loadLines(ctx, []*entity.PurchaseOrder{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// ListByCompany pedidos más recientes primero. limit <= 0 no limita.
func (r *PurchaseOrderRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	var lim *int
	if limit > 0 {
		lim = &limit
	}
	query := `SELECT ` + orderColumns + ` FROM purchase_orders
		WHERE company_id = $1
		ORDER BY date_order DESC, name DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, lim, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	out, err := collect(rows, scanOrder)
	if err != nil {
		return nil, fmt.Errorf("scan purchase orders: %w", err)
	}
	if err := r.loadLines(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update persiste la cabecera; las líneas se escriben con UpdateLine.
func (r *PurchaseOrderRepo) Update(ctx context.Context, o *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders SET partner_id = $2, dest_address_id = $3, picking_type_id = $4,
			group_id = $5, currency_id = $6, user_id = $7, state = $8, date_order = $9,
			date_planned = $10, date_approve = $11, notes = $12, is_shipped = $13,
			effective_date = $14, picking_ids = $15, picking_count = $16, updated_at = $17
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		o.ID, o.PartnerID, o.DestAddressID, o.PickingTypeID, o.GroupID, o.CurrencyID, o.UserID,
		o.State, o.DateOrder, o.DatePlanned, o.DateApprove, o.Notes, o.IsShipped,
		o.EffectiveDate, nonNil(o.PickingIDs), o.PickingCount, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateLine inserta una línea en un pedido existente.
func (r *PurchaseOrderRepo) CreateLine(ctx context.Context, l *entity.PurchaseOrderLine) error {
	query := `INSERT INTO purchase_order_lines (` + orderLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query, lineArgs(l)...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order line: %w", err)
	}
	return nil
}

// UpdateLine reescribe todos los campos de la línea.
func (r *PurchaseOrderRepo) UpdateLine(ctx context.Context, l *entity.PurchaseOrderLine) error {
	query := `
		UPDATE purchase_order_lines SET order_id = $2, sequence = $3, name = $4, display_type = $5,
			product_id = $6, product_qty = $7, product_uom_id = $8, price_unit = $9, tax_ids = $10,
			date_planned = $11, qty_received_method = $12, qty_received = $13, qty_invoiced = $14,
			propagate_cancel = $15, orderpoint_id = $16, orderpoint_location_id = $17,
			product_description_variants = $18
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, lineArgs(l)...)
	if err != nil {
		return fmt.Errorf("update purchase order line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// OrderIDsByLineIDs pedidos distintos de las líneas dadas.
func (r *PurchaseOrderRepo) OrderIDsByLineIDs(ctx context.Context, lineIDs []string) ([]string, error) {
	if len(lineIDs) == 0 {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT order_id FROM purchase_order_lines
		WHERE id = ANY($1)
		GROUP BY order_id
		ORDER BY min(pos)`, lineIDs)
	if err != nil {
		return nil, fmt.Errorf("order ids by lines: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan order ids: %w", err)
	}
	return ids, nil
}

// NextName siguiente referencia P00001, P00002... por compañía.
func (r *PurchaseOrderRepo) NextName(ctx context.Context, companyID string) (string, error) {
	n, err := nextSequence(ctx, r.q, "purchase.order:"+companyID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("P%05d", n), nil
}

// loadLines carga en una sola consulta las líneas de todos los pedidos.
func (r *PurchaseOrderRepo) loadLines(ctx context.Context, orders []*entity.PurchaseOrder) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[string]*entity.PurchaseOrder, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}
	rows, err := r.q.Query(ctx, `SELECT `+orderLineColumns+` FROM purchase_order_lines
		WHERE order_id = ANY($1) ORDER BY pos`, ids)
	if err != nil {
		return fmt.Errorf("list purchase order lines: %w", err)
	}
	lines, err := collect(rows, scanOrderLine)
	if err != nil {
		return fmt.Errorf("scan purchase order lines: %w", err)
	}
	for _, l := range lines {
		if o := byID[l.OrderID]; o != nil {
			o.Lines = append(o.Lines, l)
		}
	}
	return nil
}

func lineArgs(l *entity.PurchaseOrderLine) []any {
	return []any{
		l.ID, l.OrderID, l.Sequence, l.Name, l.DisplayType, l.ProductID, l.ProductQty,
		l.ProductUoMID, l.PriceUnit, nonNil(l.TaxIDs), l.DatePlanned, l.QtyReceivedMethod, l.QtyReceived,
		l.QtyInvoiced, l.PropagateCancel, l.OrderpointID, l.OrderpointLocationID, l.ProductDescriptionVariants,
	}
}

func scanOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	err := row.Scan(
		&o.ID, &o.CompanyID, &o.Name, &o.PartnerID, &o.DestAddressID, &o.PickingTypeID, &o.GroupID,
		&o.CurrencyID, &o.UserID, &o.State, &o.DateOrder, &o.DatePlanned, &o.DateApprove, &o.Notes,
		&o.IsShipped, &o.EffectiveDate, &o.PickingIDs, &o.PickingCount, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func scanOrderLine(row pgx.Row) (*entity.PurchaseOrderLine, error) {
	var l entity.PurchaseOrderLine
	err := row.Scan(
		&l.ID, &l.OrderID, &l.Sequence, &l.Name, &l.DisplayType, &l.ProductID, &l.ProductQty,
		&l.ProductUoMID, &l.PriceUnit, &l.TaxIDs, &l.DatePlanned, &l.QtyReceivedMethod, &l.QtyReceived,
		&l.QtyInvoiced, &l.PropagateCancel, &l.OrderpointID, &l.OrderpointLocationID, &l.ProductDescriptionVariants,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
