package purchase

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/ports"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	rules "github.com/jhoicas/Compras-api/internal/domain/purchase"
	"github.com/jhoicas/Compras-api/internal/domain/stock"
)

// sequenceStep separación entre secuencias de movimientos reordenados por fecha.
const sequenceStep = 5

// createPicking genera las recepciones del pedido aprobado: reutiliza el primer
// picking abierto o crea uno nuevo y le agrega los movimientos de todas las líneas.
func (uc *UseCase) createPicking(ctx context.Context, r ports.Repos, s *rules.Snapshot) error {
	order := s.Order
	if order.State != entity.PurchaseStatePurchase && order.State != entity.PurchaseStateDone {
		return nil
	}
	stockable := false
	for _, l := range order.Lines {
		if s.Product(l.ProductID).IsStockable() {
			stockable = true
			break
		}
	}
	if !stockable {
		return nil
	}
	var picking *entity.Picking
	for _, p := range rules.AggregatePickings(s) {
		if !p.IsTerminal() {
			picking = p
			break
		}
	}
	if picking == nil {
		var err error
		if picking, err = uc.newPicking(ctx, r, s); err != nil {
			return err
		}
	}
	if _, err := uc.createStockMoves(ctx, r, s, order.Lines, picking); err != nil {
		return err
	}
	return uc.postOriginMessage(ctx, r, picking, order)
}

// newPicking crea la recepción a partir del pedido (y su grupo de abastecimiento si falta).
func (uc *UseCase) newPicking(ctx context.Context, r ports.Repos, s *rules.Snapshot) (*entity.Picking, error) {
	order := s.Order
	if s.PickingType == nil {
		return nil, domain.NewUserError(domain.CodeMissingPickingType,
			fmt.Sprintf("el pedido %s no tiene un tipo de operación de recepción", order.Name))
	}
	if s.Partner == nil || s.Partner.PropertyStockSupplierID == "" {
		name := ""
		if s.Partner != nil {
			name = s.Partner.Name
		}
		return nil, domain.NewUserError(domain.CodeMissingVendorLoc,
			fmt.Sprintf("debe definir una ubicación de proveedor para el partner %s", name))
	}
	dest, err := rules.DestinationLocation(s)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	if order.GroupID == "" {
		group := &entity.ProcurementGroup{
			ID:        uuid.New().String(),
			CompanyID: order.CompanyID,
			Name:      order.Name,
			PartnerID: order.PartnerID,
		}
		if err := r.Pickings.CreateGroup(ctx, group); err != nil {
			return nil, fmt.Errorf("create procurement group: %w", err)
		}
		order.GroupID = group.ID
	}
	name, err := r.Pickings.NextName(ctx, s.PickingType)
	if err != nil {
		return nil, fmt.Errorf("next picking name: %w", err)
	}
	picking := &entity.Picking{
		ID:             uuid.New().String(),
		CompanyID:      order.CompanyID,
		Name:           name,
		Origin:         order.Name,
		PartnerID:      order.PartnerID,
		PickingTypeID:  s.PickingType.ID,
		LocationID:     s.Partner.PropertyStockSupplierID,
		LocationDestID: dest,
		GroupID:        order.GroupID,
		State:          entity.PickingStateDraft,
		Date:           order.DateOrder,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := r.Pickings.Create(ctx, picking); err != nil {
		return nil, fmt.Errorf("create picking: %w", err)
	}
	s.Pickings[picking.ID] = picking
	uc.log.Info().Str("order", order.Name).Str("picking", picking.Name).Msg("recepción creada")
	return picking, nil
}

// createStockMoves prepara y persiste los movimientos de las líneas en picking,
// enlaza ambos extremos de la cadena, los confirma, reserva y reordena por fecha.
func (uc *UseCase) createStockMoves(ctx context.Context, r ports.Repos, s *rules.Snapshot, lines []*entity.PurchaseOrderLine, picking *entity.Picking) ([]*entity.StockMove, error) {
	opts := rules.GenerateOptions{
		PropagateUoM:    uc.cfg.PropagateUoM,
		DefaultLeadDays: uc.cfg.DefaultLeadDays,
		Converter:       rateConverter{ctx: ctx, r: r},
	}
	now := uc.now()
	var created []*entity.StockMove
	for _, line := range lines {
		moves, err := rules.PrepareStockMoves(s, line, picking, opts)
		if err != nil {
			return nil, err
		}
		for _, m := range moves {
			m.ID = uuid.New().String()
			m.CreatedAt, m.UpdatedAt = now, now
			s.AddMoves(m)
			created = append(created, m)
		}
	}
	if len(created) == 0 {
		return nil, nil
	}

	// Los destinos enlazados también guardan el origen.
	linkedDests := map[string]*entity.StockMove{}
	for _, m := range created {
		for _, id := range m.MoveDestIDs {
			if d := s.Move(id); d != nil {
				d.MoveOrigIDs = appendUnique(d.MoveOrigIDs, m.ID)
				linkedDests[d.ID] = d
			}
		}
	}

	for _, m := range created {
		m.State = entity.MoveStateConfirmed
		if src := s.Location(m.LocationID); src == nil || (src.Usage != entity.LocationUsageInternal && src.Usage != entity.LocationUsageTransit) {
			m.State = entity.MoveStateAssigned
		}
	}
	sorted := append([]*entity.StockMove(nil), created...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })
	for i, m := range sorted {
		m.Sequence = (i + 1) * sequenceStep
	}

	for _, m := range created {
		if err := r.Moves.Create(ctx, m); err != nil {
			return nil, fmt.Errorf("create stock move: %w", err)
		}
	}
	for _, d := range linkedDests {
		if err := r.Moves.Update(ctx, d); err != nil {
			return nil, fmt.Errorf("link downstream move: %w", err)
		}
	}
	if err := RefreshPickingStates(ctx, r, []string{picking.ID}); err != nil {
		return nil, err
	}
	if fresh, err := r.Pickings.GetByID(ctx, picking.ID); err == nil && fresh != nil {
		*picking = *fresh
	}
	return created, nil
}

// RefreshPickingStates recalcula el estado de cada picking a partir de sus movimientos persistidos.
func RefreshPickingStates(ctx context.Context, r ports.Repos, pickingIDs []string) error {
	var ids set
	ids.add(pickingIDs...)
	for _, id := range ids.list() {
		p, err := r.Pickings.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get picking %s: %w", id, err)
		}
		if p == nil {
			continue
		}
		moves, err := r.Moves.ListByPicking(ctx, id)
		if err != nil {
			return fmt.Errorf("list picking moves: %w", err)
		}
		state := stock.PickingState(moves)
		if state == p.State {
			continue
		}
		p.State = state
		if err := r.Pickings.Update(ctx, p); err != nil {
			return fmt.Errorf("update picking %s: %w", id, err)
		}
	}
	return nil
}

// openReceipt primer picking abierto del pedido con destino interno, tránsito o cliente.
func openReceipt(s *rules.Snapshot) *entity.Picking {
	for _, p := range rules.AggregatePickings(s) {
		if p.IsTerminal() {
			continue
		}
		dest := s.Location(p.LocationDestID)
		if dest == nil {
			continue
		}
		switch dest.Usage {
		case entity.LocationUsageInternal, entity.LocationUsageTransit, entity.LocationUsageCustomer:
			return p
		}
	}
	return nil
}

func (uc *UseCase) postOriginMessage(ctx context.Context, r ports.Repos, picking *entity.Picking, order *entity.PurchaseOrder) error {
	msg := &entity.Message{
		ID:        uuid.New().String(),
		ResModel:  entity.ResModelPicking,
		ResID:     picking.ID,
		Body:      fmt.Sprintf("Este traslado se creó desde %s", order.Name),
		CreatedAt: uc.now(),
	}
	if err := r.Activities.CreateMessage(ctx, msg); err != nil {
		return fmt.Errorf("post origin message: %w", err)
	}
	return nil
}

// ListPickings recepciones y devoluciones del pedido con sus movimientos.
func (uc *UseCase) ListPickings(ctx context.Context, companyID, orderID string) ([]dto.PickingResponse, error) {
	var out []dto.PickingResponse
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
		s, err := LoadSnapshot(ctx, r, order)
		if err != nil {
			return err
		}
		for _, p := range rules.AggregatePickings(s) {
			moves, err := r.Moves.ListByPicking(ctx, p.ID)
			if err != nil {
				return fmt.Errorf("list picking moves: %w", err)
			}
			out = append(out, ToPickingResponse(p, moves))
		}
		return nil
	})
	return out, err
}

func appendUnique(ids []string, id string) []string {
	for _, x := range ids {
		if x == id {
			return ids
		}
	}
	return append(ids, id)
}
