package repository

import (
	"context"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// VendorBillRepository define el puerto de persistencia para facturas de proveedor.
type VendorBillRepository interface {
	Create(ctx context.Context, bill *entity.VendorBill, lines []*entity.VendorBillLine) error
	GetByID(ctx context.Context, id string) (*entity.VendorBill, error)
	Update(ctx context.Context, bill *entity.VendorBill) error
	ListByIDs(ctx context.Context, ids []string) ([]*entity.VendorBill, error)
	ListLines(ctx context.Context, billID string) ([]*entity.VendorBillLine, error)
	// ListLinesByPurchaseLines líneas de factura asociadas a las líneas de compra dadas.
	ListLinesByPurchaseLines(ctx context.Context, lineIDs []string) ([]*entity.VendorBillLine, error)
}
