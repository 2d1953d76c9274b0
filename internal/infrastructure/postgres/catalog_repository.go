package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo lectura de datos de referencia logísticos sobre PostgreSQL.
// Bodegas, ubicaciones, tipos de operación, unidades, impuestos y monedas se
// cargan por migraciones o por el administrador; este servicio no los modifica.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

const (
	warehouseColumns   = `id, company_id, name, code, address, view_location_id, lot_stock_id, created_at, updated_at`
	locationColumns    = `id, company_id, name, complete_name, usage, parent_id, parent_path, warehouse_id`
	pickingTypeColumns = `id, company_id, name, code, sequence_prefix, warehouse_id,
		default_location_src_id, default_location_dest_id, return_type_id`
)

// GetWarehouse obtiene una bodega por ID.
func (r *CatalogRepo) GetWarehouse(ctx context.Context, id string) (*entity.Warehouse, error) {
	w, err := one(r.q.QueryRow(ctx, `SELECT `+warehouseColumns+` FROM warehouses WHERE id = $1`, id), scanWarehouse)
	if err != nil {
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return w, nil
}

// ListWarehouses bodegas en el orden de ids.
func (r *CatalogRepo) ListWarehouses(ctx context.Context, ids []string) ([]*entity.Warehouse, error) {
	out, err := listByIDs(ctx, r.q, `SELECT `+warehouseColumns+` FROM warehouses WHERE id = ANY($1)`, ids, scanWarehouse)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	return orderByIDs(out, ids, func(w *entity.Warehouse) string { return w.ID }), nil
}

// GetLocation obtiene una ubicación por ID.
func (r *CatalogRepo) GetLocation(ctx context.Context, id string) (*entity.Location, error) {
	l, err := one(r.q.QueryRow(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = $1`, id), scanLocation)
	if err != nil {
		return nil, fmt.Errorf("get location: %w", err)
	}
	return l, nil
}

// ListLocations ubicaciones en el orden de ids.
func (r *CatalogRepo) ListLocations(ctx context.Context, ids []string) ([]*entity.Location, error) {
	out, err := listByIDs(ctx, r.q, `SELECT `+locationColumns+` FROM locations WHERE id = ANY($1)`, ids, scanLocation)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return orderByIDs(out, ids, func(l *entity.Location) string { return l.ID }), nil
}

// GetPickingType obtiene un tipo de operación por ID.
func (r *CatalogRepo) GetPickingType(ctx context.Context, id string) (*entity.PickingType, error) {
	pt, err := one(r.q.QueryRow(ctx, `SELECT `+pickingTypeColumns+` FROM picking_types WHERE id = $1`, id), scanPickingType)
	if err != nil {
		return nil, fmt.Errorf("get picking type: %w", err)
	}
	return pt, nil
}

// FindIncomingPickingType primer tipo de recepción de la compañía (por ID).
func (r *CatalogRepo) FindIncomingPickingType(ctx context.Context, companyID string) (*entity.PickingType, error) {
	query := `SELECT ` + pickingTypeColumns + ` FROM picking_types
		WHERE company_id = $1 AND code = $2
		ORDER BY id LIMIT 1`
	pt, err := one(r.q.QueryRow(ctx, query, companyID, entity.PickingTypeIncoming), scanPickingType)
	if err != nil {
		return nil, fmt.Errorf("find incoming picking type: %w", err)
	}
	return pt, nil
}

// ListUoMs unidades de medida en el orden de ids.
func (r *CatalogRepo) ListUoMs(ctx context.Context, ids []string) ([]*entity.UoM, error) {
	out, err := listByIDs(ctx, r.q, `SELECT id, name, category_id, type, factor, rounding FROM uoms WHERE id = ANY($1)`, ids,
		func(row pgx.Row) (*entity.UoM, error) {
			var u entity.UoM
			if err := row.Scan(&u.ID, &u.Name, &u.CategoryID, &u.Type, &u.Factor, &u.Rounding); err != nil {
				return nil, err
			}
			return &u, nil
		})
	if err != nil {
		return nil, fmt.Errorf("list uoms: %w", err)
	}
	return orderByIDs(out, ids, func(u *entity.UoM) string { return u.ID }), nil
}

// ListTaxes impuestos en el orden de ids.
func (r *CatalogRepo) ListTaxes(ctx context.Context, ids []string) ([]*entity.Tax, error) {
	out, err := listByIDs(ctx, r.q, `SELECT id, company_id, name, amount_type, amount, price_include FROM taxes WHERE id = ANY($1)`, ids,
		func(row pgx.Row) (*entity.Tax, error) {
			var t entity.Tax
			if err := row.Scan(&t.ID, &t.CompanyID, &t.Name, &t.AmountType, &t.Amount, &t.PriceInclude); err != nil {
				return nil, err
			}
			return &t, nil
		})
	if err != nil {
		return nil, fmt.Errorf("list taxes: %w", err)
	}
	return orderByIDs(out, ids, func(t *entity.Tax) string { return t.ID }), nil
}

// GetCurrency obtiene una moneda por ID.
func (r *CatalogRepo) GetCurrency(ctx context.Context, id string) (*entity.Currency, error) {
	c, err := one(r.q.QueryRow(ctx, `SELECT id, code, symbol, rounding FROM currencies WHERE id = $1`, id),
		func(row pgx.Row) (*entity.Currency, error) {
			var c entity.Currency
			if err := row.Scan(&c.ID, &c.Code, &c.Symbol, &c.Rounding); err != nil {
				return nil, err
			}
			return &c, nil
		})
	if err != nil {
		return nil, fmt.Errorf("get currency: %w", err)
	}
	return c, nil
}

// GetRate tasa más reciente con fecha <= date; las tasas sin compañía aplican a todas.
func (r *CatalogRepo) GetRate(ctx context.Context, currencyID, companyID string, date time.Time) (*entity.CurrencyRate, error) {
	query := `
		SELECT currency_id, company_id, date, rate FROM currency_rates
		WHERE currency_id = $1 AND (company_id = '' OR company_id = $2) AND date <= $3
		ORDER BY date DESC LIMIT 1`
	rate, err := one(r.q.QueryRow(ctx, query, currencyID, companyID, date), func(row pgx.Row) (*entity.CurrencyRate, error) {
		var cr entity.CurrencyRate
		if err := row.Scan(&cr.CurrencyID, &cr.CompanyID, &cr.Date, &cr.Rate); err != nil {
			return nil, err
		}
		return &cr, nil
	})
	if err != nil {
		return nil, fmt.Errorf("get currency rate: %w", err)
	}
	return rate, nil
}

func listByIDs[T any](ctx context.Context, q Querier, query string, ids []string, scan func(pgx.Row) (*T, error)) ([]*T, error) {
	ids = withoutEmpty(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	return collect(rows, scan)
}

func scanWarehouse(row pgx.Row) (*entity.Warehouse, error) {
	var w entity.Warehouse
	err := row.Scan(&w.ID, &w.CompanyID, &w.Name, &w.Code, &w.Address, &w.ViewLocationID, &w.LotStockID, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func scanLocation(row pgx.Row) (*entity.Location, error) {
	var l entity.Location
	err := row.Scan(&l.ID, &l.CompanyID, &l.Name, &l.CompleteName, &l.Usage, &l.ParentID, &l.ParentPath, &l.WarehouseID)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func scanPickingType(row pgx.Row) (*entity.PickingType, error) {
	var pt entity.PickingType
	err := row.Scan(
		&pt.ID, &pt.CompanyID, &pt.Name, &pt.Code, &pt.SequencePrefix, &pt.WarehouseID,
		&pt.DefaultLocationSrcID, &pt.DefaultLocationDestID, &pt.ReturnTypeID,
	)
	if err != nil {
		return nil, err
	}
	return &pt, nil
}
