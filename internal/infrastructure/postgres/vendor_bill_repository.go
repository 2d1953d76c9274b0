package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

var _ repository.VendorBillRepository = (*VendorBillRepo)(nil)

// VendorBillRepo facturas de proveedor sobre PostgreSQL.
type VendorBillRepo struct {
	q Querier
}

// NewVendorBillRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVendorBillRepository(q Querier) *VendorBillRepo {
	return &VendorBillRepo{q: q}
}

const (
	billColumns     = `id, company_id, partner_id, name, move_type, state, date, created_at, updated_at`
	billLineColumns = `id, bill_id, purchase_line_id, product_id, quantity, product_uom_id, price_unit`
)

// Create inserta la cabecera y sus líneas.
func (r *VendorBillRepo) Create(ctx context.Context, b *entity.VendorBill, lines []*entity.VendorBillLine) error {
	_, err := r.q.Exec(ctx, `INSERT INTO vendor_bills (`+billColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		b.ID, b.CompanyID, b.PartnerID, b.Name, b.MoveType, b.State, b.Date, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vendor bill: %w", err)
	}
	for _, l := range lines {
		_, err := r.q.Exec(ctx, `INSERT INTO vendor_bill_lines (`+billLineColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			l.ID, b.ID, l.PurchaseLineID, l.ProductID, l.Quantity, l.ProductUoMID, l.PriceUnit,
		)
		if err != nil {
			return fmt.Errorf("insert vendor bill line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *VendorBillRepo) GetByID(ctx context.Context, id string) (*entity.VendorBill, error) {
	b, err := one(r.q.QueryRow(ctx, `SELECT `+billColumns+` FROM vendor_bills WHERE id = $1`, id), scanBill)
	if err != nil {
		return nil, fmt.Errorf("get vendor bill: %w", err)
	}
	return b, nil
}

// Update actualiza estado y datos de cabecera.
func (r *VendorBillRepo) Update(ctx context.Context, b *entity.VendorBill) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE vendor_bills SET partner_id = $2, name = $3, move_type = $4, state = $5, date = $6, updated_at = $7
		WHERE id = $1`,
		b.ID, b.PartnerID, b.Name, b.MoveType, b.State, b.Date, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update vendor bill: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByIDs facturas en el orden de ids.
func (r *VendorBillRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.VendorBill, error) {
	out, err := listByIDs(ctx, r.q, `SELECT `+billColumns+` FROM vendor_bills WHERE id = ANY($1)`, ids, scanBill)
	if err != nil {
		return nil, fmt.Errorf("list vendor bills: %w", err)
	}
	return orderByIDs(out, ids, func(b *entity.VendorBill) string { return b.ID }), nil
}

// ListLines líneas de una factura.
func (r *VendorBillRepo) ListLines(ctx context.Context, billID string) ([]*entity.VendorBillLine, error) {
	rows, err := r.q.Query(ctx, `SELECT `+billLineColumns+` FROM vendor_bill_lines WHERE bill_id = $1 ORDER BY pos`, billID)
	if err != nil {
		return nil, fmt.Errorf("list vendor bill lines: %w", err)
	}
	out, err := collect(rows, scanBillLine)
	if err != nil {
		return nil, fmt.Errorf("scan vendor bill lines: %w", err)
	}
	return out, nil
}

// ListLinesByPurchaseLines líneas facturadas de las líneas de compra dadas.
func (r *VendorBillRepo) ListLinesByPurchaseLines(ctx context.Context, lineIDs []string) ([]*entity.VendorBillLine, error) {
	out, err := listByIDs(ctx, r.q, `SELECT `+billLineColumns+` FROM vendor_bill_lines
		WHERE purchase_line_id = ANY($1) ORDER BY pos`, lineIDs, scanBillLine)
	if err != nil {
		return nil, fmt.Errorf("list vendor bill lines by purchase lines: %w", err)
	}
	return out, nil
}

func scanBill(row pgx.Row) (*entity.VendorBill, error) {
	var b entity.VendorBill
	if err := row.Scan(&b.ID, &b.CompanyID, &b.PartnerID, &b.Name, &b.MoveType, &b.State, &b.Date, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func scanBillLine(row pgx.Row) (*entity.VendorBillLine, error) {
	var l entity.VendorBillLine
	if err := row.Scan(&l.ID, &l.BillID, &l.PurchaseLineID, &l.ProductID, &l.Quantity, &l.ProductUoMID, &l.PriceUnit); err != nil {
		return nil, err
	}
	return &l, nil
}
