package repository

import (
	"context"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// PickingRepository define el puerto de persistencia para pickings y grupos de abastecimiento.
type PickingRepository interface {
	Create(ctx context.Context, picking *entity.Picking) error
	Update(ctx context.Context, picking *entity.Picking) error
	GetByID(ctx context.Context, id string) (*entity.Picking, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Picking, error)
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Picking, error)
	// NextName siguiente referencia con el prefijo del tipo de operación (WH/IN/00001).
	NextName(ctx context.Context, pickingType *entity.PickingType) (string, error)

	CreateGroup(ctx context.Context, group *entity.ProcurementGroup) error
}
