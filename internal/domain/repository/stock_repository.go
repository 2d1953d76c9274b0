package repository

import (
	"context"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// StockRepository define el puerto de persistencia para las cantidades por ubicación.
type StockRepository interface {
	// Get devuelve nil, nil si no hay registro.
	Get(ctx context.Context, productID, locationID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE) dentro de la transacción.
	GetForUpdate(ctx context.Context, productID, locationID string) (*entity.Stock, error)
	Upsert(ctx context.Context, stock *entity.Stock) error
}
