package purchase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/ports"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// ListActivities actividades y mensajes del pedido y de sus traslados, en orden de creación por documento.
func (uc *UseCase) ListActivities(ctx context.Context, companyID, orderID string) (*dto.OrderActivityResponse, error) {
	out := &dto.OrderActivityResponse{Activities: []dto.ActivityResponse{}, Messages: []dto.MessageResponse{}}
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		order, err := r.Orders.GetByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("get purchase order: %w", err)
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.CompanyID != companyID {
			return domain.ErrForbidden
		}
		type resource struct{ model, id string }
		resources := []resource{{entity.ResModelPurchaseOrder, order.ID}}
		for _, id := range order.PickingIDs {
			resources = append(resources, resource{entity.ResModelPicking, id})
		}
		for _, res := range resources {
			activities, err := r.Activities.ListByResource(ctx, res.model, res.id)
			if err != nil {
				return fmt.Errorf("list activities: %w", err)
			}
			for _, a := range activities {
				out.Activities = append(out.Activities, toActivityResponse(a))
			}
			msgs, err := r.Activities.ListMessages(ctx, res.model, res.id)
			if err != nil {
				return fmt.Errorf("list messages: %w", err)
			}
			for _, m := range msgs {
				out.Messages = append(out.Messages, toMessageResponse(m))
			}
		}
		return nil
	})
	return out, err
}
