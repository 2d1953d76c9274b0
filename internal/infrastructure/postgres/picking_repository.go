package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

var _ repository.PickingRepository = (*PickingRepo)(nil)

// PickingRepo pickings y grupos de abastecimiento sobre PostgreSQL.
type PickingRepo struct {
	q Querier
}

// NewPickingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPickingRepository(q Querier) *PickingRepo {
	return &PickingRepo{q: q}
}

const pickingColumns = `id, company_id, name, origin, partner_id, picking_type_id, location_id,
	location_dest_id, group_id, user_id, state, date, date_done, created_at, updated_at`

// Create persiste un picking nuevo.
func (r *PickingRepo) Create(ctx context.Context, p *entity.Picking) error {
	query := `INSERT INTO pickings (` + pickingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.Name, p.Origin, p.PartnerID, p.PickingTypeID, p.LocationID,
		p.LocationDestID, p.GroupID, p.UserID, p.State, p.Date, p.DateDone, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert picking: %w", err)
	}
	return nil
}

// Update actualiza estado, fechas y ubicaciones del picking.
func (r *PickingRepo) Update(ctx context.Context, p *entity.Picking) error {
	query := `
		UPDATE pickings SET name = $2, origin = $3, partner_id = $4, picking_type_id = $5,
			location_id = $6, location_dest_id = $7, group_id = $8, user_id = $9, state = $10,
			date = $11, date_done = $12, updated_at = $13
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Origin, p.PartnerID, p.PickingTypeID, p.LocationID, p.LocationDestID,
		p.GroupID, p.UserID, p.State, p.Date, p.DateDone, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update picking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un picking por ID.
func (r *PickingRepo) GetByID(ctx context.Context, id string) (*entity.Picking, error) {
	p, err := one(r.q.QueryRow(ctx, `SELECT `+pickingColumns+` FROM pickings WHERE id = $1`, id), scanPicking)
	if err != nil {
		return nil, fmt.Errorf("get picking: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene el picking bloqueando la fila (validación concurrente).
func (r *PickingRepo) GetForUpdate(ctx context.Context, id string) (*entity.Picking, error) {
	p, err := one(r.q.QueryRow(ctx, `SELECT `+pickingColumns+` FROM pickings WHERE id = $1 FOR UPDATE`, id), scanPicking)
	if err != nil {
		return nil, fmt.Errorf("get picking for update: %w", err)
	}
	return p, nil
}

// ListByIDs pickings por fecha de creación y nombre.
func (r *PickingRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.Picking, error) {
	ids = withoutEmpty(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `SELECT `+pickingColumns+` FROM pickings
		WHERE id = ANY($1) ORDER BY created_at, name`, ids)
	if err != nil {
		return nil, fmt.Errorf("list pickings: %w", err)
	}
	out, err := collect(rows, scanPicking)
	if err != nil {
		return nil, fmt.Errorf("scan pickings: %w", err)
	}
	return out, nil
}

// NextName referencia con el prefijo del tipo de operación (WH/IN/00001).
func (r *PickingRepo) NextName(ctx context.Context, pt *entity.PickingType) (string, error) {
	prefix := pt.SequencePrefix
	if prefix == "" {
		prefix = "WH/IN/"
	}
	n, err := nextSequence(ctx, r.q, "stock.picking:"+pt.ID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%05d", prefix, n), nil
}

// CreateGroup persiste un grupo de abastecimiento.
func (r *PickingRepo) CreateGroup(ctx context.Context, g *entity.ProcurementGroup) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO procurement_groups (id, company_id, name, partner_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, partner_id = EXCLUDED.partner_id`,
		g.ID, g.CompanyID, g.Name, g.PartnerID,
	)
	if err != nil {
		return fmt.Errorf("insert procurement group: %w", err)
	}
	return nil
}

func scanPicking(row pgx.Row) (*entity.Picking, error) {
	var p entity.Picking
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.Origin, &p.PartnerID, &p.PickingTypeID, &p.LocationID,
		&p.LocationDestID, &p.GroupID, &p.UserID, &p.State, &p.Date, &p.DateDone, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
