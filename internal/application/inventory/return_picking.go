package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/ports"
	"github.com/jhoicas/Compras-api/internal/application/purchase"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// ReturnPicking crea el traslado de devolución de un traslado hecho. Sin líneas
// devuelve todo lo que queda por devolver. Con ToRefund las devoluciones
// descuentan la cantidad recibida de la línea de compra al validarse.
func (uc *UseCase) ReturnPicking(ctx context.Context, companyID, userID, id string, in dto.ReturnPickingRequest) (*dto.PickingResponse, error) {
	var out *dto.PickingResponse
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		picking, err := pickingForUpdate(ctx, r, companyID, id)
		if err != nil {
			return err
		}
		if picking.State != entity.PickingStateDone {
			return domain.NewUserError(domain.CodePickingNotReady,
				fmt.Sprintf("solo se pueden devolver traslados hechos; %s está en estado %q", picking.Name, picking.State))
		}
		moves, err := r.Moves.ListByPicking(ctx, picking.ID)
		if err != nil {
			return fmt.Errorf("list picking moves: %w", err)
		}
		var done []*entity.StockMove
		for _, m := range moves {
			if m.IsDone() {
				done = append(done, m)
			}
		}
		qtys, err := returnQuantities(ctx, r, done, in.Lines)
		if err != nil {
			return err
		}

		returnType, err := returnPickingType(ctx, r, picking)
		if err != nil {
			return err
		}
		destID := picking.LocationID
		if in.LocationID != "" {
			loc, err := r.Catalog.GetLocation(ctx, in.LocationID)
			if err != nil {
				return fmt.Errorf("get return location: %w", err)
			}
			if loc == nil {
				return domain.ErrNotFound
			}
			destID = loc.ID
		}
		name, err := r.Pickings.NextName(ctx, returnType)
		if err != nil {
			return fmt.Errorf("next picking name: %w", err)
		}
		now := uc.now()
		ret := &entity.Picking{
			ID:             newID(),
			CompanyID:      picking.CompanyID,
			Name:           name,
			Origin:         "Devolución de " + picking.Name,
			PartnerID:      picking.PartnerID,
			PickingTypeID:  returnType.ID,
			LocationID:     picking.LocationDestID,
			LocationDestID: destID,
			GroupID:        picking.GroupID,
			UserID:         userID,
			State:          entity.PickingStateDraft,
			Date:           now,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := r.Pickings.Create(ctx, ret); err != nil {
			return fmt.Errorf("create return picking: %w", err)
		}

		var created []*entity.StockMove
		for _, m := range done {
			qty, ok := qtys[m.ID]
			if !ok {
				continue
			}
			rm := returnMove(m, ret, qty, in.ToRefund)
			if returnType.WarehouseID != "" {
				rm.WarehouseID = returnType.WarehouseID
			}
			rm.ID = newID()
			rm.Date, rm.CreatedAt, rm.UpdatedAt = now, now, now
			if rm.State, err = availability(ctx, r, rm); err != nil {
				return err
			}
			if err := r.Moves.Create(ctx, rm); err != nil {
				return fmt.Errorf("create return move: %w", err)
			}
			created = append(created, rm)
		}
		if err := purchase.RefreshPickingStates(ctx, r, []string{ret.ID}); err != nil {
			return err
		}
		orderIDs, err := purchase.OrdersOfMoves(ctx, r, created)
		if err != nil {
			return err
		}
		if err := uc.orders.RecomputeOrders(ctx, r, orderIDs); err != nil {
			return err
		}
		uc.log.Info().Str("picking", picking.Name).Str("return", ret.Name).Bool("to_refund", in.ToRefund).Msg("devolución creada")
		out, err = respond(ctx, r, ret.ID)
		return err
	})
	return out, err
}

// returnQuantities cantidad a devolver por movimiento, en la UoM del movimiento.
// No se puede devolver más de lo hecho menos lo ya devuelto.
func returnQuantities(ctx context.Context, r ports.Repos, done []*entity.StockMove, lines []dto.ReturnLineRequest) (map[string]decimal.Decimal, error) {
	ids := make([]string, 0, len(done))
	byID := make(map[string]*entity.StockMove, len(done))
	for _, m := range done {
		ids = append(ids, m.ID)
		byID[m.ID] = m
	}
	returned := map[string]decimal.Decimal{}
	if len(ids) > 0 {
		prev, err := r.Moves.ListReturnsOf(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("list returns: %w", err)
		}
		for _, p := range prev {
			if !p.IsCancelled() {
				returned[p.OriginReturnedMoveID] = returned[p.OriginReturnedMoveID].Add(p.ProductUoMQty)
			}
		}
	}
	remaining := func(m *entity.StockMove) decimal.Decimal {
		return m.ProductUoMQty.Sub(returned[m.ID])
	}

	out := map[string]decimal.Decimal{}
	if len(lines) == 0 {
		for _, m := range done {
			if rem := remaining(m); rem.IsPositive() {
				out[m.ID] = rem
			}
		}
	}
	for _, l := range lines {
		m := byID[l.MoveID]
		if m == nil || l.Quantity.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		if l.Quantity.IsZero() {
			continue
		}
		if rem := remaining(m); l.Quantity.GreaterThan(rem) {
			return nil, domain.NewUserError(domain.CodeReturnExceeds,
				fmt.Sprintf("no puede devolver %s de %s: solo quedan %s por devolver", l.Quantity, m.Name, rem))
		}
		out[m.ID] = out[m.ID].Add(l.Quantity)
	}
	if len(out) == 0 {
		return nil, domain.NewUserError(domain.CodeNothingToReturn,
			"especifique al menos una cantidad distinta de cero para devolver")
	}
	return out, nil
}

// returnPickingType tipo de devolución configurado o, en su defecto, el mismo tipo del traslado.
func returnPickingType(ctx context.Context, r ports.Repos, picking *entity.Picking) (*entity.PickingType, error) {
	pt, err := r.Catalog.GetPickingType(ctx, picking.PickingTypeID)
	if err != nil {
		return nil, fmt.Errorf("get picking type: %w", err)
	}
	if pt != nil && pt.ReturnTypeID != "" {
		rt, err := r.Catalog.GetPickingType(ctx, pt.ReturnTypeID)
		if err != nil {
			return nil, fmt.Errorf("get return picking type: %w", err)
		}
		if rt != nil {
			return rt, nil
		}
	}
	if pt == nil {
		return nil, domain.NewUserError(domain.CodeMissingPickingType,
			fmt.Sprintf("el traslado %s no tiene tipo de operación", picking.Name))
	}
	return pt, nil
}

// returnMove copia el movimiento original invirtiendo las ubicaciones. Conserva
// la línea de compra para que la devolución cuente en la cantidad recibida.
func returnMove(m *entity.StockMove, ret *entity.Picking, qty decimal.Decimal, toRefund bool) *entity.StockMove {
	productQty := qty
	if m.ProductUoMQty.IsPositive() {
		productQty = m.ProductQty.Mul(qty).Div(m.ProductUoMQty)
	}
	return &entity.StockMove{
		CompanyID:            m.CompanyID,
		Name:                 m.Name,
		Sequence:             m.Sequence,
		ProductID:            m.ProductID,
		ProductUoMQty:        qty,
		ProductUoMID:         m.ProductUoMID,
		ProductQty:           productQty,
		LocationID:           ret.LocationID,
		LocationDestID:       ret.LocationDestID,
		PickingID:            ret.ID,
		PickingTypeID:        ret.PickingTypeID,
		WarehouseID:          m.WarehouseID,
		GroupID:              ret.GroupID,
		PartnerID:            m.PartnerID,
		Origin:               ret.Name,
		PriceUnit:            m.PriceUnit,
		ProcureMethod:        entity.ProcureMakeToStock,
		ToRefund:             toRefund,
		PurchaseLineID:       m.PurchaseLineID,
		OriginReturnedMoveID: m.ID,
	}
}
