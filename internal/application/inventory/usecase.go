package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/ports"
	"github.com/jhoicas/Compras-api/internal/application/purchase"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/stock"
)

// UseCase valida traslados y registra devoluciones. Mueve las cantidades entre
// ubicaciones con bloqueo de fila (SELECT FOR UPDATE) y, en la misma
// transacción, recalcula los pedidos de compra afectados.
type UseCase struct {
	tx     ports.TxRunner
	orders OrderRecomputer
	log    zerolog.Logger
	now    func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx ports.TxRunner, orders OrderRecomputer, log zerolog.Logger) *UseCase {
	return &UseCase{tx: tx, orders: orders, log: log, now: time.Now}
}

// WithClock fija el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// GetPicking devuelve el traslado con sus movimientos.
func (uc *UseCase) GetPicking(ctx context.Context, companyID, id string) (*dto.PickingResponse, error) {
	var out *dto.PickingResponse
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		p, err := r.Pickings.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get picking: %w", err)
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if p.CompanyID != companyID {
			return domain.ErrForbidden
		}
		out, err = respond(ctx, r, p.ID)
		return err
	})
	return out, err
}

// ValidatePicking marca como hechos los movimientos abiertos del traslado y
// actualiza las cantidades por ubicación. Las entradas desde fuera de la
// compañía recalculan el costo promedio del producto con el precio del movimiento.
func (uc *UseCase) ValidatePicking(ctx context.Context, companyID, userID, id string) (*dto.PickingResponse, error) {
	var out *dto.PickingResponse
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		picking, err := pickingForUpdate(ctx, r, companyID, id)
		if err != nil {
			return err
		}
		if picking.IsTerminal() {
			return domain.NewUserError(domain.CodePickingNotReady,
				fmt.Sprintf("el traslado %s ya está en estado %q", picking.Name, picking.State))
		}
		moves, err := r.Moves.ListByPicking(ctx, picking.ID)
		if err != nil {
			return fmt.Errorf("list picking moves: %w", err)
		}
		var open []*entity.StockMove
		for _, m := range moves {
			if !m.IsDone() && !m.IsCancelled() {
				open = append(open, m)
			}
		}
		if len(open) == 0 {
			return domain.NewUserError(domain.CodePickingNotReady,
				fmt.Sprintf("el traslado %s no tiene movimientos por validar", picking.Name))
		}

		locs, err := loadLocations(ctx, r, open)
		if err != nil {
			return err
		}
		products, err := loadProducts(ctx, r, open)
		if err != nil {
			return err
		}
		now := uc.now()
		for _, m := range open {
			if err := uc.applyMove(ctx, r, m, locs, products[m.ProductID], now); err != nil {
				return err
			}
			m.State = entity.MoveStateDone
			m.Date = now
			m.UpdatedAt = now
			if err := r.Moves.Update(ctx, m); err != nil {
				return fmt.Errorf("update stock move: %w", err)
			}
		}
		touched, err := uc.releaseDests(ctx, r, open, now)
		if err != nil {
			return err
		}

		picking.State = entity.PickingStateDone
		picking.DateDone = &now
		picking.UpdatedAt = now
		if err := r.Pickings.Update(ctx, picking); err != nil {
			return fmt.Errorf("update picking: %w", err)
		}
		if err := purchase.RefreshPickingStates(ctx, r, touched); err != nil {
			return err
		}
		orderIDs, err := purchase.OrdersOfMoves(ctx, r, open)
		if err != nil {
			return err
		}
		if err := uc.orders.RecomputeOrders(ctx, r, orderIDs); err != nil {
			return err
		}
		uc.log.Info().Str("picking", picking.Name).Str("user", userID).Int("moves", len(open)).Msg("traslado validado")
		out, err = respond(ctx, r, picking.ID)
		return err
	})
	return out, err
}

// applyMove descuenta del origen y suma al destino cuando son ubicaciones con existencias.
func (uc *UseCase) applyMove(ctx context.Context, r ports.Repos, m *entity.StockMove, locs map[string]*entity.Location, product *entity.Product, now time.Time) error {
	qty := m.ProductQty
	fromStock := holdsStock(locs[m.LocationID])
	if fromStock {
		src, err := r.Stock.GetForUpdate(ctx, m.ProductID, m.LocationID)
		if err != nil {
			return fmt.Errorf("lock stock: %w", err)
		}
		if src == nil || src.Quantity.LessThan(qty) {
			return fmt.Errorf("%w: %s en %s", domain.ErrInsufficientStock, m.Name, locationName(locs[m.LocationID]))
		}
		src.Quantity = src.Quantity.Sub(qty)
		src.UpdatedAt = now
		if err := r.Stock.Upsert(ctx, src); err != nil {
			return fmt.Errorf("upsert stock: %w", err)
		}
	}
	if !holdsStock(locs[m.LocationDestID]) {
		return nil
	}
	dst, err := r.Stock.GetForUpdate(ctx, m.ProductID, m.LocationDestID)
	if err != nil {
		return fmt.Errorf("lock stock: %w", err)
	}
	if dst == nil {
		dst = &entity.Stock{ProductID: m.ProductID, LocationID: m.LocationDestID, Quantity: decimal.Zero}
	}
	if !fromStock && product != nil && m.OriginReturnedMoveID == "" {
		product.Cost = stock.CostCalculator(dst.Quantity, product.Cost, qty, m.PriceUnit)
		product.UpdatedAt = now
		if err := r.Products.Update(ctx, product); err != nil {
			return fmt.Errorf("update product cost: %w", err)
		}
	}
	dst.Quantity = dst.Quantity.Add(qty)
	dst.UpdatedAt = now
	if err := r.Stock.Upsert(ctx, dst); err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// releaseDests pasa a reservados los movimientos aguas abajo cuyos orígenes ya
// terminaron. Devuelve los pickings a refrescar.
func (uc *UseCase) releaseDests(ctx context.Context, r ports.Repos, done []*entity.StockMove, now time.Time) ([]string, error) {
	var ids []string
	for _, m := range done {
		ids = append(ids, m.MoveDestIDs...)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	dests, err := r.Moves.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list downstream moves: %w", err)
	}
	var pickings []string
	for _, d := range dests {
		if d.State != entity.MoveStateWaiting && d.State != entity.MoveStateConfirmed {
			continue
		}
		origins, err := r.Moves.ListByIDs(ctx, d.MoveOrigIDs)
		if err != nil {
			return nil, fmt.Errorf("list upstream moves: %w", err)
		}
		ready := true
		for _, o := range origins {
			if !o.IsDone() && !o.IsCancelled() {
				ready = false
				break
			}
		}
		if !ready {
			continue
		}
		if d.State, err = availability(ctx, r, d); err != nil {
			return nil, err
		}
		d.UpdatedAt = now
		if err := r.Moves.Update(ctx, d); err != nil {
			return nil, fmt.Errorf("update downstream move: %w", err)
		}
		pickings = append(pickings, d.PickingID)
	}
	return pickings, nil
}

// availability estado tras intentar reservar: assigned si el origen no lleva
// existencias o alcanzan para el movimiento, confirmed si no.
func availability(ctx context.Context, r ports.Repos, m *entity.StockMove) (string, error) {
	loc, err := r.Catalog.GetLocation(ctx, m.LocationID)
	if err != nil {
		return "", fmt.Errorf("get location: %w", err)
	}
	if !holdsStock(loc) {
		return entity.MoveStateAssigned, nil
	}
	q, err := r.Stock.Get(ctx, m.ProductID, m.LocationID)
	if err != nil {
		return "", fmt.Errorf("get stock: %w", err)
	}
	if q != nil && q.Quantity.GreaterThanOrEqual(m.ProductQty) {
		return entity.MoveStateAssigned, nil
	}
	return entity.MoveStateConfirmed, nil
}

func pickingForUpdate(ctx context.Context, r ports.Repos, companyID, id string) (*entity.Picking, error) {
	p, err := r.Pickings.GetForUpdate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get picking %s: %w", id, err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

func loadLocations(ctx context.Context, r ports.Repos, moves []*entity.StockMove) (map[string]*entity.Location, error) {
	ids := make([]string, 0, 2*len(moves))
	for _, m := range moves {
		ids = append(ids, m.LocationID, m.LocationDestID)
	}
	list, err := r.Catalog.ListLocations(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	out := make(map[string]*entity.Location, len(list))
	for _, l := range list {
		out[l.ID] = l
	}
	return out, nil
}

func loadProducts(ctx context.Context, r ports.Repos, moves []*entity.StockMove) (map[string]*entity.Product, error) {
	ids := make([]string, 0, len(moves))
	for _, m := range moves {
		ids = append(ids, m.ProductID)
	}
	list, err := r.Products.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	out := make(map[string]*entity.Product, len(list))
	for _, p := range list {
		out[p.ID] = p
	}
	return out, nil
}

// holdsStock ubicaciones con cantidades propias (internas y de tránsito).
func holdsStock(l *entity.Location) bool {
	return l != nil && (l.Usage == entity.LocationUsageInternal || l.Usage == entity.LocationUsageTransit)
}

func locationName(l *entity.Location) string {
	if l == nil {
		return ""
	}
	if l.CompleteName != "" {
		return l.CompleteName
	}
	return l.Name
}

func respond(ctx context.Context, r ports.Repos, id string) (*dto.PickingResponse, error) {
	p, err := r.Pickings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get picking: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	moves, err := r.Moves.ListByPicking(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list picking moves: %w", err)
	}
	resp := purchase.ToPickingResponse(p, moves)
	return &resp, nil
}

func newID() string { return uuid.New().String() }
