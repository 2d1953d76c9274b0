package repository

import (
	"context"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// SaleOrderRepository define el puerto de lectura de pedidos de venta.
type SaleOrderRepository interface {
	Create(ctx context.Context, order *entity.SaleOrder) error
	// GetByID devuelve el pedido con sus líneas; nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.SaleOrder, error)
}
