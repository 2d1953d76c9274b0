package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// CatalogRepository datos de referencia de logística: bodegas, ubicaciones,
// tipos de operación, unidades de medida, impuestos y monedas.
// Los métodos Get devuelven nil, nil cuando el registro no existe.
type CatalogRepository interface {
	GetWarehouse(ctx context.Context, id string) (*entity.Warehouse, error)
	ListWarehouses(ctx context.Context, ids []string) ([]*entity.Warehouse, error)

	GetLocation(ctx context.Context, id string) (*entity.Location, error)
	ListLocations(ctx context.Context, ids []string) ([]*entity.Location, error)

	GetPickingType(ctx context.Context, id string) (*entity.PickingType, error)
	// FindIncomingPickingType primer tipo de recepción de la compañía.
	FindIncomingPickingType(ctx context.Context, companyID string) (*entity.PickingType, error)

	ListUoMs(ctx context.Context, ids []string) ([]*entity.UoM, error)
	ListTaxes(ctx context.Context, ids []string) ([]*entity.Tax, error)

	GetCurrency(ctx context.Context, id string) (*entity.Currency, error)
	// GetRate tasa vigente a la fecha: la más reciente con Date <= date.
	GetRate(ctx context.Context, currencyID, companyID string, date time.Time) (*entity.CurrencyRate, error)
}
