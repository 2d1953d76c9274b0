package purchase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/application/ports"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	rules "github.com/jhoicas/Compras-api/internal/domain/purchase"
)

// LoadSnapshot carga el pedido y todos los registros que los servicios de
// dominio necesitan: movimientos de las líneas, sus devoluciones y la cadena
// enlazada aguas abajo, pickings, productos, UoM, ubicaciones, bodegas e impuestos.
func LoadSnapshot(ctx context.Context, r ports.Repos, order *entity.PurchaseOrder) (*rules.Snapshot, error) {
	s := rules.NewSnapshot(order)

	company, err := r.Companies.GetByID(ctx, order.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("load company: %w", err)
	}
	s.Company = company
	if s.Partner, err = r.Partners.GetByID(ctx, order.PartnerID); err != nil {
		return nil, fmt.Errorf("load partner: %w", err)
	}
	if order.DestAddressID != "" {
		if s.DestAddress, err = r.Partners.GetByID(ctx, order.DestAddressID); err != nil {
			return nil, fmt.Errorf("load dest address: %w", err)
		}
	}
	if order.PickingTypeID != "" {
		s.PickingType, err = r.Catalog.GetPickingType(ctx, order.PickingTypeID)
	} else {
		s.PickingType, err = r.Catalog.FindIncomingPickingType(ctx, order.CompanyID)
	}
	if err != nil {
		return nil, fmt.Errorf("load picking type: %w", err)
	}

	if err := loadMoves(ctx, r, s); err != nil {
		return nil, err
	}
	if err := loadReferences(ctx, r, s); err != nil {
		return nil, err
	}
	return s, nil
}

func loadMoves(ctx context.Context, r ports.Repos, s *rules.Snapshot) error {
	lineIDs := make([]string, 0, len(s.Order.Lines))
	for _, l := range s.Order.Lines {
		lineIDs = append(lineIDs, l.ID)
	}
	if len(lineIDs) == 0 {
		return nil
	}
	direct, err := r.Moves.ListByPurchaseLines(ctx, lineIDs)
	if err != nil {
		return fmt.Errorf("list line moves: %w", err)
	}
	s.AddMoves(direct...)
	dests, err := r.Moves.ListByCreatedPurchaseLines(ctx, lineIDs)
	if err != nil {
		return fmt.Errorf("list downstream moves: %w", err)
	}
	s.AddMoves(dests...)

	ids := make([]string, 0, len(direct))
	for _, m := range direct {
		ids = append(ids, m.ID)
	}
	if len(ids) > 0 {
		returns, err := r.Moves.ListReturnsOf(ctx, ids)
		if err != nil {
			return fmt.Errorf("list returns: %w", err)
		}
		s.AddMoves(returns...)
	}

	// Cierre del grafo: destinos, orígenes y movimientos devueltos referenciados.
	for {
		var missing []string
		seen := map[string]bool{}
		for _, m := range s.Moves {
			refs := append(append([]string{}, m.MoveDestIDs...), m.MoveOrigIDs...)
			if m.OriginReturnedMoveID != "" {
				refs = append(refs, m.OriginReturnedMoveID)
			}
			for _, id := range refs {
				if s.Moves[id] == nil && !seen[id] {
					seen[id] = true
					missing = append(missing, id)
				}
			}
		}
		if len(missing) == 0 {
			return nil
		}
		more, err := r.Moves.ListByIDs(ctx, missing)
		if err != nil {
			return fmt.Errorf("list linked moves: %w", err)
		}
		if len(more) == 0 {
			return nil
		}
		s.AddMoves(more...)
	}
}

func loadReferences(ctx context.Context, r ports.Repos, s *rules.Snapshot) error {
	var pickingIDs, productIDs, uomIDs, locationIDs, warehouseIDs, taxIDs set
	for _, l := range s.Order.Lines {
		productIDs.add(l.ProductID)
		uomIDs.add(l.ProductUoMID)
		taxIDs.add(l.TaxIDs...)
		locationIDs.add(l.OrderpointLocationID)
	}
	for _, m := range s.Moves {
		pickingIDs.add(m.PickingID)
		productIDs.add(m.ProductID)
		uomIDs.add(m.ProductUoMID)
		locationIDs.add(m.LocationID, m.LocationDestID)
		warehouseIDs.add(m.WarehouseID)
	}
	if s.PickingType != nil {
		warehouseIDs.add(s.PickingType.WarehouseID)
		locationIDs.add(s.PickingType.DefaultLocationSrcID, s.PickingType.DefaultLocationDestID)
	}
	if s.Partner != nil {
		locationIDs.add(s.Partner.PropertyStockSupplierID)
	}
	if s.DestAddress != nil {
		locationIDs.add(s.DestAddress.PropertyStockCustomerID)
	}

	pickings, err := r.Pickings.ListByIDs(ctx, pickingIDs.list())
	if err != nil {
		return fmt.Errorf("list pickings: %w", err)
	}
	for _, p := range pickings {
		s.Pickings[p.ID] = p
		locationIDs.add(p.LocationID, p.LocationDestID)
	}

	products, err := r.Products.ListByIDs(ctx, productIDs.list())
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	for _, p := range products {
		s.Products[p.ID] = p
		uomIDs.add(p.UoMID)
	}

	uoms, err := r.Catalog.ListUoMs(ctx, uomIDs.list())
	if err != nil {
		return fmt.Errorf("list uoms: %w", err)
	}
	for _, u := range uoms {
		s.UoMs[u.ID] = u
	}

	warehouses, err := r.Catalog.ListWarehouses(ctx, warehouseIDs.list())
	if err != nil {
		return fmt.Errorf("list warehouses: %w", err)
	}
	for _, w := range warehouses {
		s.Warehouses[w.ID] = w
		locationIDs.add(w.ViewLocationID, w.LotStockID)
	}

	locations, err := r.Catalog.ListLocations(ctx, locationIDs.list())
	if err != nil {
		return fmt.Errorf("list locations: %w", err)
	}
	for _, l := range locations {
		s.Locations[l.ID] = l
	}

	taxes, err := r.Catalog.ListTaxes(ctx, taxIDs.list())
	if err != nil {
		return fmt.Errorf("list taxes: %w", err)
	}
	for _, t := range taxes {
		s.Taxes[t.ID] = t
	}
	return nil
}

// set conjunto ordenado por inserción que ignora vacíos.
type set struct {
	seen  map[string]bool
	items []string
}

func (s *set) add(ids ...string) {
	if s.seen == nil {
		s.seen = map[string]bool{}
	}
	for _, id := range ids {
		if id != "" && !s.seen[id] {
			s.seen[id] = true
			s.items = append(s.items, id)
		}
	}
}

func (s *set) list() []string { return s.items }

// rateConverter convierte con las tasas del catálogo. Las tasas expresan
// unidades de la moneda por una unidad de la moneda de la compañía; la moneda
// sin tasa registrada vale 1 (moneda de la compañía).
type rateConverter struct {
	ctx context.Context
	r   ports.Repos
}

func (c rateConverter) Convert(amount decimal.Decimal, fromCurrencyID, toCurrencyID, companyID string, date time.Time) (decimal.Decimal, error) {
	if fromCurrencyID == toCurrencyID {
		return amount, nil
	}
	from, err := c.rate(fromCurrencyID, companyID, date)
	if err != nil {
		return decimal.Zero, err
	}
	to, err := c.rate(toCurrencyID, companyID, date)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(to).Div(from), nil
}

func (c rateConverter) rate(currencyID, companyID string, date time.Time) (decimal.Decimal, error) {
	rate, err := c.r.Catalog.GetRate(c.ctx, currencyID, companyID, date)
	if err != nil {
		return decimal.Zero, fmt.Errorf("get rate %s: %w", currencyID, err)
	}
	if rate == nil || !rate.Rate.IsPositive() {
		return decimal.NewFromInt(1), nil
	}
	return rate.Rate, nil
}
