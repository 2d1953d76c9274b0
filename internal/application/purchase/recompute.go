package purchase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/application/ports"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	rules "github.com/jhoicas/Compras-api/internal/domain/purchase"
)

// RecomputeOrders recalcula los pedidos dados dentro de la transacción actual.
// Lo usan inventario (al validar o devolver) y facturación.
func (uc *UseCase) RecomputeOrders(ctx context.Context, r ports.Repos, orderIDs []string) error {
	var ids set
	ids.add(orderIDs...)
	for _, id := range ids.list() {
		order, err := r.Orders.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get purchase order %s: %w", id, err)
		}
		if order == nil {
			continue
		}
		s, err := LoadSnapshot(ctx, r, order)
		if err != nil {
			return err
		}
		if err := uc.recompute(ctx, r, s); err != nil {
			return err
		}
	}
	return nil
}

// OrdersOfMoves pedidos a los que pertenecen los movimientos (por su línea de compra).
func OrdersOfMoves(ctx context.Context, r ports.Repos, moves []*entity.StockMove) ([]string, error) {
	var lineIDs set
	for _, m := range moves {
		lineIDs.add(m.PurchaseLineID, m.CreatedPurchaseLineID)
	}
	if len(lineIDs.list()) == 0 {
		return nil, nil
	}
	ids, err := r.Orders.OrderIDsByLineIDs(ctx, lineIDs.list())
	if err != nil {
		return nil, fmt.Errorf("orders of moves: %w", err)
	}
	return ids, nil
}

// recompute actualiza cantidades recibidas y facturadas de las líneas y los
// agregados de pickings del pedido. Es idempotente: sin cambios no escribe nada.
func (uc *UseCase) recompute(ctx context.Context, r ports.Repos, s *rules.Snapshot) error {
	order := s.Order
	billLines, err := loadBillLines(ctx, r, order)
	if err != nil {
		return err
	}
	for _, line := range order.Lines {
		changed := false
		if line.QtyReceivedMethod == entity.QtyReceivedStockMoves && s.Product(line.ProductID).IsStockable() {
			qty, err := rules.ReceivedQuantity(s, line, uc.dropship)
			if err != nil {
				return err
			}
			if !qty.Equal(line.QtyReceived) {
				if err := uc.trackReceived(ctx, r, s, line, qty); err != nil {
					return err
				}
				line.QtyReceived = qty
				changed = true
			}
		}
		invoiced, err := rules.InvoicedQuantity(s, line, billLines)
		if err != nil {
			return err
		}
		if !invoiced.Equal(line.QtyInvoiced) {
			line.QtyInvoiced = invoiced
			changed = true
		}
		if changed {
			if err := r.Orders.UpdateLine(ctx, line); err != nil {
				return fmt.Errorf("update purchase line: %w", err)
			}
		}
	}

	sum := rules.Summarize(s)
	order.IsShipped = sum.IsShipped
	order.EffectiveDate = sum.EffectiveDate
	order.PickingIDs = sum.PickingIDs()
	order.PickingCount = sum.Count
	order.UpdatedAt = uc.now()
	if err := r.Orders.Update(ctx, order); err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	return nil
}

// trackReceived deja constancia del cambio de cantidad recibida en el historial del pedido.
func (uc *UseCase) trackReceived(ctx context.Context, r ports.Repos, s *rules.Snapshot, line *entity.PurchaseOrderLine, qty decimal.Decimal) error {
	name := line.Name
	if p := s.Product(line.ProductID); p != nil {
		name = p.Name
	}
	msg := &entity.Message{
		ID:        uuid.New().String(),
		ResModel:  entity.ResModelPurchaseOrder,
		ResID:     s.Order.ID,
		Body:      fmt.Sprintf("Cantidad recibida de %s: %s → %s", name, line.QtyReceived.String(), qty.String()),
		CreatedAt: uc.now(),
	}
	if err := r.Activities.CreateMessage(ctx, msg); err != nil {
		return fmt.Errorf("track received quantity: %w", err)
	}
	uc.log.Debug().Str("order", s.Order.Name).Str("line", line.ID).Str("qty_received", qty.String()).Msg("cantidad recibida actualizada")
	return nil
}

// loadBillLines líneas de factura de proveedor de las líneas del pedido, con su cabecera.
func loadBillLines(ctx context.Context, r ports.Repos, order *entity.PurchaseOrder) ([]rules.BillLine, error) {
	lineIDs := make([]string, 0, len(order.Lines))
	for _, l := range order.Lines {
		lineIDs = append(lineIDs, l.ID)
	}
	if len(lineIDs) == 0 {
		return nil, nil
	}
	lines, err := r.Bills.ListLinesByPurchaseLines(ctx, lineIDs)
	if err != nil {
		return nil, fmt.Errorf("list bill lines: %w", err)
	}
	var billIDs set
	for _, l := range lines {
		billIDs.add(l.BillID)
	}
	bills, err := r.Bills.ListByIDs(ctx, billIDs.list())
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	byID := make(map[string]*entity.VendorBill, len(bills))
	for _, b := range bills {
		byID[b.ID] = b
	}
	out := make([]rules.BillLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, rules.BillLine{Line: l, Bill: byID[l.BillID]})
	}
	return out, nil
}
