package repository

import (
	"context"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// ActivityRepository define el puerto de persistencia para actividades y mensajes de seguimiento.
type ActivityRepository interface {
	Create(ctx context.Context, activity *entity.Activity) error
	ListByResource(ctx context.Context, resModel, resID string) ([]*entity.Activity, error)
	CreateMessage(ctx context.Context, msg *entity.Message) error
	ListMessages(ctx context.Context, resModel, resID string) ([]*entity.Message, error)
}
