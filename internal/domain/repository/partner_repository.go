package repository

import (
	"context"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// PartnerRepository define el puerto de persistencia para proveedores, clientes y direcciones.
type PartnerRepository interface {
	Create(ctx context.Context, partner *entity.Partner) error
	GetByID(ctx context.Context, id string) (*entity.Partner, error)
	Update(ctx context.Context, partner *entity.Partner) error
}
