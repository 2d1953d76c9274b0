package repository

import (
	"context"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para pedidos de compra y sus líneas.
type PurchaseOrderRepository interface {
	// Create inserta la cabecera y sus líneas.
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	// GetByID devuelve el pedido con sus líneas; nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	// GetForUpdate igual que GetByID pero bloquea la cabecera hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.PurchaseOrder, error)
	// Update persiste la cabecera (estado, fechas y agregados de pickings).
	Update(ctx context.Context, order *entity.PurchaseOrder) error

	CreateLine(ctx context.Context, line *entity.PurchaseOrderLine) error
	UpdateLine(ctx context.Context, line *entity.PurchaseOrderLine) error
	// OrderIDsByLineIDs pedidos a los que pertenecen las líneas dadas (sin repetir).
	OrderIDsByLineIDs(ctx context.Context, lineIDs []string) ([]string, error)

	// NextName siguiente referencia de pedido de la compañía (P00001, P00002, ...).
	NextName(ctx context.Context, companyID string) (string, error)
}
