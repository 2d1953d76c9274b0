package purchase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/ports"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	rules "github.com/jhoicas/Compras-api/internal/domain/purchase"
)

// AddLine agrega una línea al pedido. Si el pedido ya está confirmado genera
// de inmediato los movimientos de la línea.
func (uc *UseCase) AddLine(ctx context.Context, companyID, orderID string, in dto.PurchaseLineRequest) (*dto.PurchaseOrderResponse, error) {
	var out *dto.PurchaseOrderResponse
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		order, err := orderForUpdate(ctx, r, companyID, orderID)
		if err != nil {
			return err
		}
		if order.State == entity.PurchaseStateDone || order.State == entity.PurchaseStateCancel {
			return transitionError(order, "modificar")
		}
		seq := 0
		for _, l := range order.Lines {
			if l.Sequence > seq {
				seq = l.Sequence
			}
		}
		line, err := newLine(ctx, r, order, in, seq+lineSequenceStep)
		if err != nil {
			return err
		}
		if err := r.Orders.CreateLine(ctx, line); err != nil {
			return fmt.Errorf("create purchase line: %w", err)
		}
		order.Lines = append(order.Lines, line)
		if order.State == entity.PurchaseStatePurchase {
			s, err := LoadSnapshot(ctx, r, order)
			if err != nil {
				return err
			}
			if err := uc.createOrUpdatePicking(ctx, r, s, []*entity.PurchaseOrderLine{line}); err != nil {
				return err
			}
			if err := uc.RecomputeOrders(ctx, r, []string{order.ID}); err != nil {
				return err
			}
		}
		out, err = respond(ctx, r, order.ID)
		return err
	})
	return out, err
}

// UpdateLineQuantity cambia la cantidad pedida de una línea.
func (uc *UseCase) UpdateLineQuantity(ctx context.Context, companyID, orderID, lineID string, qty decimal.Decimal) (*dto.PurchaseOrderResponse, error) {
	return uc.UpdateLine(ctx, companyID, orderID, lineID, dto.UpdatePurchaseLineRequest{ProductQty: &qty})
}

// UpdateLineDatePlanned cambia la fecha prevista de una línea y la fecha límite de sus movimientos abiertos.
func (uc *UseCase) UpdateLineDatePlanned(ctx context.Context, companyID, orderID, lineID string, date time.Time) (*dto.PurchaseOrderResponse, error) {
	return uc.UpdateLine(ctx, companyID, orderID, lineID, dto.UpdatePurchaseLineRequest{DatePlanned: &date})
}

// UpdateLine aplica los campos presentes en in. Con el pedido confirmado:
//   - un aumento de cantidad genera movimientos por la diferencia;
//   - una disminución por debajo de lo recibido falla (hay que devolver primero);
//   - una disminución por debajo de lo facturado agenda un aviso en la factura;
//   - toda disminución deja una nota de excepción en los pickings afectados.
func (uc *UseCase) UpdateLine(ctx context.Context, companyID, orderID, lineID string, in dto.UpdatePurchaseLineRequest) (*dto.PurchaseOrderResponse, error) {
	var out *dto.PurchaseOrderResponse
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		order, err := orderForUpdate(ctx, r, companyID, orderID)
		if err != nil {
			return err
		}
		if order.State == entity.PurchaseStateDone || order.State == entity.PurchaseStateCancel {
			return transitionError(order, "modificar")
		}
		line := order.Line(lineID)
		if line == nil {
			return domain.ErrNotFound
		}
		if line.DisplayType != "" && in.ProductQty != nil {
			return domain.ErrInvalidInput
		}

		prevQty := line.ProductQty
		if in.ProductQty != nil {
			if in.ProductQty.IsNegative() {
				return domain.ErrInvalidInput
			}
			line.ProductQty = *in.ProductQty
		}
		if in.PriceUnit != nil {
			if in.PriceUnit.IsNegative() {
				return domain.ErrInvalidInput
			}
			line.PriceUnit = *in.PriceUnit
		}
		if in.DatePlanned != nil {
			d := *in.DatePlanned
			line.DatePlanned = &d
		}
		if err := r.Orders.UpdateLine(ctx, line); err != nil {
			return fmt.Errorf("update purchase line: %w", err)
		}

		s, err := LoadSnapshot(ctx, r, order)
		if err != nil {
			return err
		}
		if in.DatePlanned != nil && line.DisplayType == "" {
			if err := uc.updateDeadlines(ctx, r, s, line, *in.DatePlanned); err != nil {
				return err
			}
		}
		if in.PriceUnit != nil {
			if err := uc.updateMovePrices(ctx, r, s, line); err != nil {
				return err
			}
		}
		qtyChanged := in.ProductQty != nil && !prevQty.Equal(line.ProductQty)
		if qtyChanged && order.State == entity.PurchaseStatePurchase {
			decreases := rules.DetectDecreases(s, map[string]decimal.Decimal{line.ID: prevQty})
			if err := uc.LogDecreasedQuantities(ctx, r, s, decreases); err != nil {
				return err
			}
			if err := uc.createOrUpdatePicking(ctx, r, s, []*entity.PurchaseOrderLine{line}); err != nil {
				return err
			}
			if err := uc.RecomputeOrders(ctx, r, []string{order.ID}); err != nil {
				return err
			}
		}
		out, err = respond(ctx, r, order.ID)
		return err
	})
	return out, err
}

// createOrUpdatePicking valida la nueva cantidad de cada línea y genera los
// movimientos faltantes en la primera recepción abierta (o en una nueva).
func (uc *UseCase) createOrUpdatePicking(ctx context.Context, r ports.Repos, s *rules.Snapshot, lines []*entity.PurchaseOrderLine) error {
	var billLines []rules.BillLine
	billsLoaded := false
	for _, line := range lines {
		if line.DisplayType != "" || !s.Product(line.ProductID).IsStockable() {
			continue
		}
		check, err := rules.CheckOrderedQuantity(s, line)
		if err != nil {
			return err
		}
		if check.BelowInvoiced {
			if !billsLoaded {
				if billLines, err = loadBillLines(ctx, r, s.Order); err != nil {
					return err
				}
				billsLoaded = true
			}
			if err := uc.scheduleRefundWarning(ctx, r, s.Order, rules.FirstBillID(line, billLines)); err != nil {
				return err
			}
		}
		picking := openReceipt(s)
		if picking == nil {
			if picking, err = uc.newPicking(ctx, r, s); err != nil {
				return err
			}
			if err := r.Orders.Update(ctx, s.Order); err != nil {
				return fmt.Errorf("update purchase order: %w", err)
			}
		}
		if _, err := uc.createStockMoves(ctx, r, s, []*entity.PurchaseOrderLine{line}, picking); err != nil {
			return err
		}
	}
	return nil
}

// scheduleRefundWarning agenda en la factura de proveedor un aviso para pedir nota crédito.
func (uc *UseCase) scheduleRefundWarning(ctx context.Context, r ports.Repos, order *entity.PurchaseOrder, billID string) error {
	if billID == "" {
		return nil
	}
	now := uc.now()
	activity := &entity.Activity{
		ID:           uuid.New().String(),
		CompanyID:    order.CompanyID,
		ResModel:     entity.ResModelVendorBill,
		ResID:        billID,
		ActivityType: entity.ActivityTypeWarning,
		Summary:      "Cantidad pedida menor a la facturada",
		Note:         rules.MsgQtyBelowInvoiced,
		UserID:       order.UserID,
		DateDeadline: now,
		CreatedAt:    now,
	}
	if err := r.Activities.Create(ctx, activity); err != nil {
		return fmt.Errorf("schedule refund warning: %w", err)
	}
	uc.log.Warn().Str("order", order.Name).Str("bill", billID).Msg("cantidad pedida menor a la facturada")
	return nil
}

// LogDecreasedQuantities deja una nota de excepción en cada picking afectado por
// las disminuciones, una por responsable de producto, con los pickings impactados aguas abajo.
func (uc *UseCase) LogDecreasedQuantities(ctx context.Context, r ports.Repos, s *rules.Snapshot, decreases []rules.Decrease) error {
	if len(decreases) == 0 {
		return nil
	}
	now := uc.now()
	for _, g := range rules.ExceptionGroups(s, decreases) {
		userID := g.ResponsibleID
		if userID == "" {
			userID = s.Order.UserID
		}
		activity := &entity.Activity{
			ID:           uuid.New().String(),
			CompanyID:    s.Order.CompanyID,
			ResModel:     entity.ResModelPicking,
			ResID:        g.Picking.ID,
			ActivityType: entity.ActivityTypeException,
			Summary:      "Excepción en pedido de compra",
			Note:         exceptionNote(s, g),
			UserID:       userID,
			DateDeadline: now,
			CreatedAt:    now,
		}
		if err := r.Activities.Create(ctx, activity); err != nil {
			return fmt.Errorf("log decreased quantity: %w", err)
		}
		uc.log.Warn().Str("order", s.Order.Name).Str("picking", g.Picking.Name).Str("responsible", userID).Msg("cantidad pedida disminuida")
	}
	return nil
}

func exceptionNote(s *rules.Snapshot, g rules.ExceptionGroup) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Excepciones en el pedido de compra %s. Puede requerir acciones manuales.\n", s.Order.Name)
	for _, d := range g.Decreases {
		name := d.Line.Name
		if p := s.Product(d.Line.ProductID); p != nil {
			name = p.Name
		}
		uom := s.UoM(d.Line.ProductUoMID)
		fmt.Fprintf(&b, "- %s: %s en lugar de %s\n", name, formatQty(d.NewQty, uom), formatQty(d.OldQty, uom))
	}
	if len(g.Impacted) > 0 {
		names := make([]string, 0, len(g.Impacted))
		for _, p := range g.Impacted {
			names = append(names, p.Name)
		}
		fmt.Fprintf(&b, "Documentos impactados: %s\n", strings.Join(names, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

// updateDeadlines fecha límite = nueva fecha + plazo, en los movimientos abiertos
// de la línea o, si no tiene, en los movimientos aguas abajo que abastece.
func (uc *UseCase) updateDeadlines(ctx context.Context, r ports.Repos, s *rules.Snapshot, line *entity.PurchaseOrderLine, date time.Time) error {
	moves := openMoves(s.LineMoves(line))
	if len(moves) == 0 {
		moves = openMoves(s.LineDestMoves(line))
	}
	deadline := date.AddDate(0, 0, rules.LeadDays(s, uc.cfg.DefaultLeadDays))
	for _, m := range moves {
		dl := deadline
		m.DateDeadline = &dl
		if err := r.Moves.Update(ctx, m); err != nil {
			return fmt.Errorf("update move deadline: %w", err)
		}
	}
	return nil
}

// updateMovePrices recalcula el precio de los movimientos abiertos de la línea.
func (uc *UseCase) updateMovePrices(ctx context.Context, r ports.Repos, s *rules.Snapshot, line *entity.PurchaseOrderLine) error {
	price, err := rules.StockMovePriceUnit(s, line, rateConverter{ctx: ctx, r: r})
	if err != nil {
		return err
	}
	for _, m := range openMoves(s.LineMoves(line)) {
		m.PriceUnit = price
		if err := r.Moves.Update(ctx, m); err != nil {
			return fmt.Errorf("update move price: %w", err)
		}
	}
	return nil
}
