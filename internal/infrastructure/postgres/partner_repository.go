package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

var _ repository.PartnerRepository = (*PartnerRepo)(nil)

// PartnerRepo proveedores, clientes y direcciones de entrega sobre PostgreSQL.
type PartnerRepo struct {
	q Querier
}

// NewPartnerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPartnerRepository(q Querier) *PartnerRepo {
	return &PartnerRepo{q: q}
}

const partnerColumns = `id, company_id, name, tax_id, email, phone, street, city, zip, country, lang,
	property_stock_supplier_id, property_stock_customer_id, purchase_lead_days, created_at, updated_at`

// Create persiste un nuevo partner.
func (r *PartnerRepo) Create(ctx context.Context, p *entity.Partner) error {
	query := `INSERT INTO partners (` + partnerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.Name, p.TaxID, p.Email, p.Phone, p.Street, p.City, p.Zip, p.Country, p.Lang,
		p.PropertyStockSupplierID, p.PropertyStockCustomerID, p.PurchaseLeadDays, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert partner: %w", err)
	}
	return nil
}

// GetByID obtiene un partner por ID.
func (r *PartnerRepo) GetByID(ctx context.Context, id string) (*entity.Partner, error) {
	p, err := one(r.q.QueryRow(ctx, `SELECT `+partnerColumns+` FROM partners WHERE id = $1`, id), scanPartner)
	if err != nil {
		return nil, fmt.Errorf("get partner: %w", err)
	}
	return p, nil
}

// Update actualiza un partner existente.
func (r *PartnerRepo) Update(ctx context.Context, p *entity.Partner) error {
	query := `
		UPDATE partners SET name = $2, tax_id = $3, email = $4, phone = $5, street = $6, city = $7,
			zip = $8, country = $9, lang = $10, property_stock_supplier_id = $11,
			property_stock_customer_id = $12, purchase_lead_days = $13, updated_at = $14
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.TaxID, p.Email, p.Phone, p.Street, p.City, p.Zip, p.Country, p.Lang,
		p.PropertyStockSupplierID, p.PropertyStockCustomerID, p.PurchaseLeadDays, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update partner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPartner(row pgx.Row) (*entity.Partner, error) {
	var p entity.Partner
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.TaxID, &p.Email, &p.Phone, &p.Street, &p.City, &p.Zip, &p.Country, &p.Lang,
		&p.PropertyStockSupplierID, &p.PropertyStockCustomerID, &p.PurchaseLeadDays, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
