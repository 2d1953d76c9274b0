package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

var _ repository.StockMoveRepository = (*StockMoveRepo)(nil)

// StockMoveRepo movimientos de stock sobre PostgreSQL. Los enlaces aguas arriba y
// aguas abajo se guardan en move_orig_ids / move_dest_ids tal como vienen.
type StockMoveRepo struct {
	q Querier
}

// NewStockMoveRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMoveRepository(q Querier) *StockMoveRepo {
	return &StockMoveRepo{q: q}
}

const moveColumns = `id, company_id, name, sequence, product_id, product_uom_qty, product_uom_id, product_qty,
	state, location_id, location_dest_id, picking_id, picking_type_id, warehouse_id, group_id, partner_id,
	origin, description_picking, price_unit, procure_method, propagate_cancel, to_refund, scrapped,
	purchase_line_id, created_purchase_line_id, origin_returned_move_id, move_dest_ids, move_orig_ids,
	date, date_deadline, created_at, updated_at`

// Create persiste un movimiento nuevo.
func (r *StockMoveRepo) Create(ctx context.Context, m *entity.StockMove) error {
	query := `INSERT INTO stock_moves (` + moveColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32)`
	_, err := r.q.Exec(ctx, query, moveArgs(m)...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock move: %w", err)
	}
	return nil
}

// Update reescribe el movimiento completo.
func (r *StockMoveRepo) Update(ctx context.Context, m *entity.StockMove) error {
	query := `
		UPDATE stock_moves SET company_id = $2, name = $3, sequence = $4, product_id = $5,
			product_uom_qty = $6, product_uom_id = $7, product_qty = $8, state = $9, location_id = $10,
			location_dest_id = $11, picking_id = $12, picking_type_id = $13, warehouse_id = $14,
			group_id = $15, partner_id = $16, origin = $17, description_picking = $18, price_unit = $19,
			procure_method = $20, propagate_cancel = $21, to_refund = $22, scrapped = $23,
			purchase_line_id = $24, created_purchase_line_id = $25, origin_returned_move_id = $26,
			move_dest_ids = $27, move_orig_ids = $28, date = $29, date_deadline = $30,
			created_at = $31, updated_at = $32
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, moveArgs(m)...)
	if err != nil {
		return fmt.Errorf("update stock move: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMoveRepo) GetByID(ctx context.Context, id string) (*entity.StockMove, error) {
	m, err := one(r.q.QueryRow(ctx, `SELECT `+moveColumns+` FROM stock_moves WHERE id = $1`, id), scanMove)
	if err != nil {
		return nil, fmt.Errorf("get stock move: %w", err)
	}
	return m, nil
}

// ListByIDs movimientos con id en ids, en orden de creación.
func (r *StockMoveRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.StockMove, error) {
	return r.listWhere(ctx, "id = ANY($1)", ids)
}

// ListByPicking movimientos del picking en orden de creación.
func (r *StockMoveRepo) ListByPicking(ctx context.Context, pickingID string) ([]*entity.StockMove, error) {
	if pickingID == "" {
		return nil, nil
	}
	return r.list(ctx, "picking_id = $1", pickingID)
}

// ListByPurchaseLines movimientos generados por las líneas de compra.
func (r *StockMoveRepo) ListByPurchaseLines(ctx context.Context, lineIDs []string) ([]*entity.StockMove, error) {
	return r.listWhere(ctx, "purchase_line_id = ANY($1)", lineIDs)
}

// ListByCreatedPurchaseLines movimientos aguas abajo abastecidos por las líneas.
func (r *StockMoveRepo) ListByCreatedPurchaseLines(ctx context.Context, lineIDs []string) ([]*entity.StockMove, error) {
	return r.listWhere(ctx, "created_purchase_line_id = ANY($1)", lineIDs)
}

// ListReturnsOf devoluciones de los movimientos dados.
func (r *StockMoveRepo) ListReturnsOf(ctx context.Context, moveIDs []string) ([]*entity.StockMove, error) {
	return r.listWhere(ctx, "origin_returned_move_id = ANY($1)", moveIDs)
}

// listWhere filtra por un conjunto de IDs; los vacíos no coinciden con nada.
func (r *StockMoveRepo) listWhere(ctx context.Context, cond string, ids []string) ([]*entity.StockMove, error) {
	ids = withoutEmpty(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, cond, ids)
}

func (r *StockMoveRepo) list(ctx context.Context, cond string, arg any) ([]*entity.StockMove, error) {
	rows, err := r.q.Query(ctx, `SELECT `+moveColumns+` FROM stock_moves WHERE `+cond+` ORDER BY pos`, arg)
	if err != nil {
		return nil, fmt.Errorf("list stock moves: %w", err)
	}
	out, err := collect(rows, scanMove)
	if err != nil {
		return nil, fmt.Errorf("scan stock moves: %w", err)
	}
	return out, nil
}

func moveArgs(m *entity.StockMove) []any {
	return []any{
		m.ID, m.CompanyID, m.Name, m.Sequence, m.ProductID, m.ProductUoMQty, m.ProductUoMID, m.ProductQty,
		m.State, m.LocationID, m.LocationDestID, m.PickingID, m.PickingTypeID, m.WarehouseID, m.GroupID, m.PartnerID,
		m.Origin, m.DescriptionPicking, m.PriceUnit, m.ProcureMethod, m.PropagateCancel, m.ToRefund, m.Scrapped,
		m.PurchaseLineID, m.CreatedPurchaseLineID, m.OriginReturnedMoveID, nonNil(m.MoveDestIDs), nonNil(m.MoveOrigIDs),
		m.Date, m.DateDeadline, m.CreatedAt, m.UpdatedAt,
	}
}

func scanMove(row pgx.Row) (*entity.StockMove, error) {
	var m entity.StockMove
	err := row.Scan(
		&m.ID, &m.CompanyID, &m.Name, &m.Sequence, &m.ProductID, &m.ProductUoMQty, &m.ProductUoMID, &m.ProductQty,
		&m.State, &m.LocationID, &m.LocationDestID, &m.PickingID, &m.PickingTypeID, &m.WarehouseID, &m.GroupID, &m.PartnerID,
		&m.Origin, &m.DescriptionPicking, &m.PriceUnit, &m.ProcureMethod, &m.PropagateCancel, &m.ToRefund, &m.Scrapped,
		&m.PurchaseLineID, &m.CreatedPurchaseLineID, &m.OriginReturnedMoveID, &m.MoveDestIDs, &m.MoveOrigIDs,
		&m.Date, &m.DateDeadline, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func withoutEmpty(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}
