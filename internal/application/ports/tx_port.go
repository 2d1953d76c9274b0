package ports

import (
	"context"

	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Orders     repository.PurchaseOrderRepository
	Moves      repository.StockMoveRepository
	Pickings   repository.PickingRepository
	Stock      repository.StockRepository
	Products   repository.ProductRepository
	Partners   repository.PartnerRepository
	Companies  repository.CompanyRepository
	Catalog    repository.CatalogRepository
	Bills      repository.VendorBillRepository
	Activities repository.ActivityRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit. Compras e inventario comparten
// la misma unidad de trabajo: validar un picking recalcula los pedidos afectados.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
