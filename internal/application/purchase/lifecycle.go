package purchase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/ports"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	rules "github.com/jhoicas/Compras-api/internal/domain/purchase"
	"github.com/jhoicas/Compras-api/internal/domain/stock"
)

// lineSequenceStep separación de secuencia entre líneas nuevas.
const lineSequenceStep = 10

// CreateOrder crea un pedido en borrador con sus líneas.
func (uc *UseCase) CreateOrder(ctx context.Context, companyID, userID string, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	var out *dto.PurchaseOrderResponse
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		partner, err := r.Partners.GetByID(ctx, in.PartnerID)
		if err != nil {
			return fmt.Errorf("get partner: %w", err)
		}
		if partner == nil {
			return domain.ErrNotFound
		}
		if partner.CompanyID != companyID {
			return domain.ErrForbidden
		}
		company, err := r.Companies.GetByID(ctx, companyID)
		if err != nil {
			return fmt.Errorf("get company: %w", err)
		}
		if company == nil {
			return domain.ErrNotFound
		}
		pickingTypeID := in.PickingTypeID
		if pickingTypeID == "" {
			pt, err := r.Catalog.FindIncomingPickingType(ctx, companyID)
			if err != nil {
				return fmt.Errorf("find incoming picking type: %w", err)
			}
			if pt != nil {
				pickingTypeID = pt.ID
			}
		}
		name, err := r.Orders.NextName(ctx, companyID)
		if err != nil {
			return fmt.Errorf("next purchase order name: %w", err)
		}
		now := uc.now()
		order := &entity.PurchaseOrder{
			ID:            uuid.New().String(),
			CompanyID:     companyID,
			Name:          name,
			PartnerID:     in.PartnerID,
			DestAddressID: in.DestAddressID,
			PickingTypeID: pickingTypeID,
			CurrencyID:    in.CurrencyID,
			UserID:        userID,
			State:         entity.PurchaseStateDraft,
			DateOrder:     now,
			DatePlanned:   in.DatePlanned,
			Notes:         in.Notes,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if order.CurrencyID == "" {
			order.CurrencyID = company.CurrencyID
		}
		if in.DateOrder != nil {
			order.DateOrder = *in.DateOrder
		}
		for i, l := range in.Lines {
			line, err := newLine(ctx, r, order, l, (i+1)*lineSequenceStep)
			if err != nil {
				return err
			}
			order.Lines = append(order.Lines, line)
		}
		if err := r.Orders.Create(ctx, order); err != nil {
			return fmt.Errorf("create purchase order: %w", err)
		}
		uc.log.Info().Str("order", order.Name).Str("company", companyID).Int("lines", len(order.Lines)).Msg("pedido de compra creado")
		out, err = respond(ctx, r, order.ID)
		return err
	})
	return out, err
}

// newLine valida y construye una línea para order.
func newLine(ctx context.Context, r ports.Repos, order *entity.PurchaseOrder, in dto.PurchaseLineRequest, sequence int) (*entity.PurchaseOrderLine, error) {
	line := &entity.PurchaseOrderLine{
		ID:                   uuid.New().String(),
		OrderID:              order.ID,
		Sequence:             sequence,
		Name:                 in.Name,
		DisplayType:          in.DisplayType,
		ProductQty:           in.ProductQty,
		ProductUoMID:         in.ProductUoMID,
		PriceUnit:            in.PriceUnit,
		TaxIDs:               in.TaxIDs,
		DatePlanned:          in.DatePlanned,
		QtyReceivedMethod:    entity.QtyReceivedManual,
		PropagateCancel:      true,
		OrderpointLocationID: in.OrderpointLocationID,
	}
	if in.PropagateCancel != nil {
		line.PropagateCancel = *in.PropagateCancel
	}
	if line.DisplayType != "" {
		line.ProductQty = decimal.Zero
		return line, nil
	}
	if !in.ProductQty.IsPositive() || in.PriceUnit.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product, err := r.Products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != order.CompanyID {
		return nil, domain.ErrForbidden
	}
	line.ProductID = product.ID
	if line.Name == "" {
		line.Name = product.Name
	}
	if line.ProductUoMID == "" {
		line.ProductUoMID = product.UoMID
	}
	if product.IsStockable() {
		line.QtyReceivedMethod = entity.QtyReceivedStockMoves
	}
	if line.DatePlanned == nil {
		d := order.DateOrder
		if order.DatePlanned != nil {
			d = *order.DatePlanned
		}
		line.DatePlanned = &d
	}
	return line, nil
}

// GetOrder devuelve el pedido con sus agregados.
func (uc *UseCase) GetOrder(ctx context.Context, companyID, id string) (*dto.PurchaseOrderResponse, error) {
	var out *dto.PurchaseOrderResponse
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		order, err := r.Orders.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get purchase order: %w", err)
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.CompanyID != companyID {
			return domain.ErrForbidden
		}
		resp := ToOrderResponse(order)
		out = &resp
		return nil
	})
	return out, err
}

// ListOrders lista los pedidos de la compañía.
func (uc *UseCase) ListOrders(ctx context.Context, companyID string, page dto.PageRequest) (*dto.PurchaseOrderListResponse, error) {
	page.DefaultPage()
	out := &dto.PurchaseOrderListResponse{Items: []dto.PurchaseOrderResponse{}, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		orders, err := r.Orders.ListByCompany(ctx, companyID, page.Limit, page.Offset)
		if err != nil {
			return fmt.Errorf("list purchase orders: %w", err)
		}
		for _, o := range orders {
			out.Items = append(out.Items, ToOrderResponse(o))
		}
		return nil
	})
	return out, err
}

// MarkSent marca la solicitud de cotización como enviada al proveedor.
func (uc *UseCase) MarkSent(ctx context.Context, companyID, id string) (*dto.PurchaseOrderResponse, error) {
	return uc.transition(ctx, companyID, id, "enviar", []string{entity.PurchaseStateDraft, entity.PurchaseStateSent}, entity.PurchaseStateSent)
}

// Lock bloquea un pedido confirmado (purchase → done).
func (uc *UseCase) Lock(ctx context.Context, companyID, id string) (*dto.PurchaseOrderResponse, error) {
	return uc.transition(ctx, companyID, id, "bloquear", []string{entity.PurchaseStatePurchase}, entity.PurchaseStateDone)
}

// Unlock desbloquea un pedido bloqueado (done → purchase).
func (uc *UseCase) Unlock(ctx context.Context, companyID, id string) (*dto.PurchaseOrderResponse, error) {
	return uc.transition(ctx, companyID, id, "desbloquear", []string{entity.PurchaseStateDone}, entity.PurchaseStatePurchase)
}

// ResetToDraft devuelve un pedido cancelado a borrador.
func (uc *UseCase) ResetToDraft(ctx context.Context, companyID, id string) (*dto.PurchaseOrderResponse, error) {
	return uc.transition(ctx, companyID, id, "pasar a borrador", []string{entity.PurchaseStateCancel}, entity.PurchaseStateDraft)
}

func (uc *UseCase) transition(ctx context.Context, companyID, id, action string, from []string, to string) (*dto.PurchaseOrderResponse, error) {
	var out *dto.PurchaseOrderResponse
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		order, err := orderForUpdate(ctx, r, companyID, id)
		if err != nil {
			return err
		}
		if !contains(from, order.State) {
			return transitionError(order, action)
		}
		prev := order.State
		order.State = to
		order.UpdatedAt = uc.now()
		if err := r.Orders.Update(ctx, order); err != nil {
			return fmt.Errorf("update purchase order: %w", err)
		}
		uc.log.Info().Str("order", order.Name).Str("from", prev).Str("to", to).Msg("transición de pedido")
		out, err = respond(ctx, r, order.ID)
		return err
	})
	return out, err
}

// Confirm confirma el pedido: queda "to approve" y se aprueba en el acto si la
// compañía no exige doble validación para el monto o si confirma un administrador.
func (uc *UseCase) Confirm(ctx context.Context, companyID, userID, role, id string) (*dto.PurchaseOrderResponse, error) {
	var out *dto.PurchaseOrderResponse
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		order, err := orderForUpdate(ctx, r, companyID, id)
		if err != nil {
			return err
		}
		if order.State != entity.PurchaseStateDraft && order.State != entity.PurchaseStateSent {
			return transitionError(order, "confirmar")
		}
		company, err := r.Companies.GetByID(ctx, order.CompanyID)
		if err != nil {
			return fmt.Errorf("get company: %w", err)
		}
		order.State = entity.PurchaseStateToApprove
		order.UpdatedAt = uc.now()

		amount := order.AmountUntaxed()
		if company != nil && order.CurrencyID != "" && order.CurrencyID != company.CurrencyID {
			conv := rateConverter{ctx: ctx, r: r}
			if amount, err = conv.Convert(amount, order.CurrencyID, company.CurrencyID, company.ID, order.DateOrder); err != nil {
				return err
			}
		}
		if role == entity.RoleAdmin || !company.RequiresApproval(amount) {
			if err := uc.approve(ctx, r, order, userID); err != nil {
				return err
			}
		} else {
			if err := r.Orders.Update(ctx, order); err != nil {
				return fmt.Errorf("update purchase order: %w", err)
			}
			uc.log.Info().Str("order", order.Name).Str("amount", amount.String()).Msg("pedido pendiente de aprobación")
		}
		out, err = respond(ctx, r, order.ID)
		return err
	})
	return out, err
}

// Approve aprueba un pedido pendiente y genera sus recepciones.
func (uc *UseCase) Approve(ctx context.Context, companyID, userID, id string) (*dto.PurchaseOrderResponse, error) {
	var out *dto.PurchaseOrderResponse
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		order, err := orderForUpdate(ctx, r, companyID, id)
		if err != nil {
			return err
		}
		if order.State != entity.PurchaseStateToApprove {
			return transitionError(order, "aprobar")
		}
		if err := uc.approve(ctx, r, order, userID); err != nil {
			return err
		}
		out, err = respond(ctx, r, order.ID)
		return err
	})
	return out, err
}

func (uc *UseCase) approve(ctx context.Context, r ports.Repos, order *entity.PurchaseOrder, userID string) error {
	now := uc.now()
	order.State = entity.PurchaseStatePurchase
	order.DateApprove = &now
	order.UpdatedAt = now
	if err := r.Orders.Update(ctx, order); err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	s, err := LoadSnapshot(ctx, r, order)
	if err != nil {
		return err
	}
	if err := uc.createPicking(ctx, r, s); err != nil {
		return err
	}
	if err := r.Orders.Update(ctx, order); err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	uc.log.Info().Str("order", order.Name).Str("approved_by", userID).Msg("pedido aprobado")
	return uc.RecomputeOrders(ctx, r, []string{order.ID})
}

// Cancel cancela el pedido. Falla si alguna recepción de sus líneas ya está hecha
// o si tiene facturas publicadas. Cancela los movimientos abiertos, propaga o
// desacopla los movimientos aguas abajo según cada línea y cancela los pickings.
func (uc *UseCase) Cancel(ctx context.Context, companyID, id string) (*dto.PurchaseOrderResponse, error) {
	var out *dto.PurchaseOrderResponse
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		order, err := orderForUpdate(ctx, r, companyID, id)
		if err != nil {
			return err
		}
		if !order.IsCancellable() {
			return transitionError(order, "cancelar")
		}
		s, err := LoadSnapshot(ctx, r, order)
		if err != nil {
			return err
		}
		if err := uc.cancel(ctx, r, s); err != nil {
			return err
		}
		out, err = respond(ctx, r, order.ID)
		return err
	})
	return out, err
}

func (uc *UseCase) cancel(ctx context.Context, r ports.Repos, s *rules.Snapshot) error {
	order := s.Order
	for _, line := range order.Lines {
		for _, m := range s.LineMoves(line) {
			if m.IsDone() {
				return domain.NewUserError(domain.CodeCancelDoneReceipt,
					fmt.Sprintf("no se puede cancelar el pedido %s: algunas recepciones ya están hechas", order.Name))
			}
		}
	}
	billLines, err := loadBillLines(ctx, r, order)
	if err != nil {
		return err
	}
	for _, bl := range billLines {
		if bl.Bill != nil && bl.Bill.State == entity.BillStatePosted {
			return domain.NewUserError(domain.CodeInvalidTransition,
				fmt.Sprintf("no se puede cancelar el pedido %s: primero anule las facturas de proveedor relacionadas", order.Name))
		}
	}

	c := stock.NewCancellation(s)
	var dests []*entity.StockMove
	for _, line := range order.Lines {
		if err := c.Cancel(s.LineMoves(line)...); err != nil {
			return err
		}
		lineDests := s.LineDestMoves(line)
		if line.PropagateCancel {
			if err := c.Cancel(openMoves(lineDests)...); err != nil {
				return err
			}
		} else {
			for _, d := range lineDests {
				c.Decouple(d, "")
			}
		}
		dests = append(dests, lineDests...)
	}

	// Los pickings del pedido se cancelan completos, incluidos movimientos de otros pedidos.
	pickings := rules.AggregatePickings(s)
	for _, p := range pickings {
		if p.State == entity.PickingStateCancel {
			continue
		}
		moves, err := r.Moves.ListByPicking(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("list picking moves: %w", err)
		}
		for _, m := range moves {
			if s.Move(m.ID) == nil {
				s.AddMoves(m)
			}
		}
		var open []*entity.StockMove
		for _, m := range moves {
			if mv := s.Move(m.ID); !mv.IsDone() {
				open = append(open, mv)
			}
		}
		if err := c.Cancel(open...); err != nil {
			return err
		}
	}

	for _, d := range dests {
		d.CreatedPurchaseLineID = ""
		c.Changed[d.ID] = d
	}
	var touched set
	for _, m := range c.Changed {
		if err := r.Moves.Update(ctx, m); err != nil {
			return fmt.Errorf("update stock move: %w", err)
		}
		touched.add(m.PickingID)
	}
	for _, p := range pickings {
		touched.add(p.ID)
	}
	if err := RefreshPickingStates(ctx, r, touched.list()); err != nil {
		return err
	}

	order.State = entity.PurchaseStateCancel
	order.UpdatedAt = uc.now()
	if err := r.Orders.Update(ctx, order); err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	uc.log.Info().Str("order", order.Name).Int("moves", len(c.Changed)).Msg("pedido cancelado")
	return uc.RecomputeOrders(ctx, r, []string{order.ID})
}

func openMoves(moves []*entity.StockMove) []*entity.StockMove {
	var out []*entity.StockMove
	for _, m := range moves {
		if !m.IsDone() && !m.IsCancelled() {
			out = append(out, m)
		}
	}
	return out
}

// respond relee el pedido dentro de la transacción y lo convierte a DTO.
func respond(ctx context.Context, r ports.Repos, id string) (*dto.PurchaseOrderResponse, error) {
	order, err := r.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// formatQty cantidad con la UoM para notas legibles.
func formatQty(qty decimal.Decimal, uom *entity.UoM) string {
	s := qty.StringFixed(2)
	if uom != nil {
		s += " " + uom.Name
	}
	return strings.TrimSpace(s)
}
