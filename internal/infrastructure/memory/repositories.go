package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

var (
	_ repository.PurchaseOrderRepository = orderRepo{}
	_ repository.StockMoveRepository     = moveRepo{}
	_ repository.PickingRepository       = pickingRepo{}
	_ repository.StockRepository         = stockRepo{}
	_ repository.ProductRepository       = productRepo{}
	_ repository.PartnerRepository       = partnerRepo{}
	_ repository.CompanyRepository       = companyRepo{}
	_ repository.CatalogRepository       = catalogRepo{}
	_ repository.VendorBillRepository    = billRepo{}
	_ repository.ActivityRepository      = activityRepo{}
)

// ── Pedidos de compra ────────────────────────────────────────────────────────

type orderRepo struct{ s *Store }

func (r orderRepo) Create(_ context.Context, o *entity.PurchaseOrder) error {
	d := r.s.d
	if _, ok := d.orders[o.ID]; ok {
		return domain.ErrDuplicate
	}
	d.orders[o.ID] = o.Clone()
	for _, l := range o.Lines {
		d.lineOrder[l.ID] = o.ID
	}
	return nil
}

func (r orderRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.s.d.orders[id].Clone(), nil
}

func (r orderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

func (r orderRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, o := range r.s.d.orders {
		if o.CompanyID == companyID {
			out = append(out, o.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DateOrder.Equal(out[j].DateOrder) {
			return out[i].DateOrder.After(out[j].DateOrder)
		}
		return out[i].Name > out[j].Name
	})
	return page(out, limit, offset), nil
}

// Update persiste la cabecera y conserva las líneas guardadas.
func (r orderRepo) Update(_ context.Context, o *entity.PurchaseOrder) error {
	cur := r.s.d.orders[o.ID]
	if cur == nil {
		return domain.ErrNotFound
	}
	c := o.Clone()
	c.Lines = cur.Clone().Lines
	r.s.d.orders[o.ID] = c
	return nil
}

func (r orderRepo) CreateLine(_ context.Context, l *entity.PurchaseOrderLine) error {
	cur := r.s.d.orders[l.OrderID]
	if cur == nil {
		return domain.ErrNotFound
	}
	c := cur.Clone()
	lc := *l
	lc.TaxIDs = append([]string(nil), l.TaxIDs...)
	c.Lines = append(c.Lines, &lc)
	r.s.d.orders[c.ID] = c
	r.s.d.lineOrder[l.ID] = c.ID
	return nil
}

func (r orderRepo) UpdateLine(_ context.Context, l *entity.PurchaseOrderLine) error {
	cur := r.s.d.orders[l.OrderID]
	if cur == nil {
		return domain.ErrNotFound
	}
	c := cur.Clone()
	for i, x := range c.Lines {
		if x.ID == l.ID {
			lc := *l
			lc.TaxIDs = append([]string(nil), l.TaxIDs...)
			c.Lines[i] = &lc
			r.s.d.orders[c.ID] = c
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r orderRepo) OrderIDsByLineIDs(_ context.Context, lineIDs []string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, id := range lineIDs {
		if oid, ok := r.s.d.lineOrder[id]; ok && !seen[oid] {
			seen[oid] = true
			out = append(out, oid)
		}
	}
	return out, nil
}

func (r orderRepo) NextName(_ context.Context, companyID string) (string, error) {
	return fmt.Sprintf("P%05d", r.s.d.next("purchase.order:"+companyID)), nil
}

// ── Movimientos ──────────────────────────────────────────────────────────────

type moveRepo struct{ s *Store }

func (r moveRepo) Create(_ context.Context, m *entity.StockMove) error {
	d := r.s.d
	if _, ok := d.moves[m.ID]; ok {
		return domain.ErrDuplicate
	}
	d.moves[m.ID] = m.Clone()
	d.moveOrder = append(d.moveOrder, m.ID)
	return nil
}

func (r moveRepo) Update(_ context.Context, m *entity.StockMove) error {
	if _, ok := r.s.d.moves[m.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.d.moves[m.ID] = m.Clone()
	return nil
}

func (r moveRepo) GetByID(_ context.Context, id string) (*entity.StockMove, error) {
	return r.s.d.moves[id].Clone(), nil
}

func (r moveRepo) ListByIDs(_ context.Context, ids []string) ([]*entity.StockMove, error) {
	want := toSet(ids)
	return r.filter(func(m *entity.StockMove) bool { return want[m.ID] }), nil
}

func (r moveRepo) ListByPicking(_ context.Context, pickingID string) ([]*entity.StockMove, error) {
	return r.filter(func(m *entity.StockMove) bool { return m.PickingID == pickingID }), nil
}

func (r moveRepo) ListByPurchaseLines(_ context.Context, lineIDs []string) ([]*entity.StockMove, error) {
	want := toSet(lineIDs)
	return r.filter(func(m *entity.StockMove) bool { return want[m.PurchaseLineID] }), nil
}

func (r moveRepo) ListByCreatedPurchaseLines(_ context.Context, lineIDs []string) ([]*entity.StockMove, error) {
	want := toSet(lineIDs)
	return r.filter(func(m *entity.StockMove) bool { return want[m.CreatedPurchaseLineID] }), nil
}

func (r moveRepo) ListReturnsOf(_ context.Context, moveIDs []string) ([]*entity.StockMove, error) {
	want := toSet(moveIDs)
	return r.filter(func(m *entity.StockMove) bool { return want[m.OriginReturnedMoveID] }), nil
}

// filter recorre en orden de creación.
func (r moveRepo) filter(keep func(*entity.StockMove) bool) []*entity.StockMove {
	var out []*entity.StockMove
	for _, id := range r.s.d.moveOrder {
		if m := r.s.d.moves[id]; m != nil && keep(m) {
			out = append(out, m.Clone())
		}
	}
	return out
}

// ── Pickings ─────────────────────────────────────────────────────────────────

type pickingRepo struct{ s *Store }

func (r pickingRepo) Create(_ context.Context, p *entity.Picking) error {
	if _, ok := r.s.d.pickings[p.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.d.pickings[p.ID] = clone(p)
	return nil
}

func (r pickingRepo) Update(_ context.Context, p *entity.Picking) error {
	if _, ok := r.s.d.pickings[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.d.pickings[p.ID] = clone(p)
	return nil
}

func (r pickingRepo) GetByID(_ context.Context, id string) (*entity.Picking, error) {
	return clone(r.s.d.pickings[id]), nil
}

func (r pickingRepo) GetForUpdate(ctx context.Context, id string) (*entity.Picking, error) {
	return r.GetByID(ctx, id)
}

func (r pickingRepo) ListByIDs(_ context.Context, ids []string) ([]*entity.Picking, error) {
	var out []*entity.Picking
	for id := range toSet(ids) {
		if p := r.s.d.pickings[id]; p != nil {
			out = append(out, clone(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r pickingRepo) NextName(_ context.Context, pt *entity.PickingType) (string, error) {
	prefix := pt.SequencePrefix
	if prefix == "" {
		prefix = "WH/IN/"
	}
	return fmt.Sprintf("%s%05d", prefix, r.s.d.next("stock.picking:"+pt.ID)), nil
}

func (r pickingRepo) CreateGroup(_ context.Context, g *entity.ProcurementGroup) error {
	r.s.d.groups[g.ID] = clone(g)
	return nil
}

// ── Existencias ──────────────────────────────────────────────────────────────

type stockRepo struct{ s *Store }

func (r stockRepo) Get(_ context.Context, productID, locationID string) (*entity.Stock, error) {
	return clone(r.s.d.stock[stockKey{productID, locationID}]), nil
}

func (r stockRepo) GetForUpdate(ctx context.Context, productID, locationID string) (*entity.Stock, error) {
	return r.Get(ctx, productID, locationID)
}

func (r stockRepo) Upsert(_ context.Context, st *entity.Stock) error {
	r.s.d.stock[stockKey{st.ProductID, st.LocationID}] = clone(st)
	return nil
}

// ── Maestros ─────────────────────────────────────────────────────────────────

type productRepo struct{ s *Store }

func (r productRepo) Create(_ context.Context, p *entity.Product) error {
	if _, ok := r.s.d.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, x := range r.s.d.products {
		if p.SKU != "" && x.CompanyID == p.CompanyID && x.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	r.s.d.products[p.ID] = clone(p)
	return nil
}

func (r productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return clone(r.s.d.products[id]), nil
}

func (r productRepo) ListByIDs(_ context.Context, ids []string) ([]*entity.Product, error) {
	return listByIDs(r.s.d.products, ids), nil
}

func (r productRepo) Update(_ context.Context, p *entity.Product) error {
	if _, ok := r.s.d.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.d.products[p.ID] = clone(p)
	return nil
}

type partnerRepo struct{ s *Store }

func (r partnerRepo) Create(_ context.Context, p *entity.Partner) error {
	r.s.d.partners[p.ID] = clone(p)
	return nil
}

func (r partnerRepo) GetByID(_ context.Context, id string) (*entity.Partner, error) {
	return clone(r.s.d.partners[id]), nil
}

func (r partnerRepo) Update(_ context.Context, p *entity.Partner) error {
	if _, ok := r.s.d.partners[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.d.partners[p.ID] = clone(p)
	return nil
}

type companyRepo struct{ s *Store }

func (r companyRepo) Create(_ context.Context, c *entity.Company) error {
	for _, x := range r.s.d.companies {
		if c.NIT != "" && x.NIT == c.NIT {
			return domain.ErrDuplicate
		}
	}
	r.s.d.companies[c.ID] = clone(c)
	return nil
}

func (r companyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return clone(r.s.d.companies[id]), nil
}

func (r companyRepo) GetByNIT(_ context.Context, nit string) (*entity.Company, error) {
	for _, c := range r.s.d.companies {
		if c.NIT == nit {
			return clone(c), nil
		}
	}
	return nil, nil
}

func (r companyRepo) Update(_ context.Context, c *entity.Company) error {
	if _, ok := r.s.d.companies[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.d.companies[c.ID] = clone(c)
	return nil
}

// ── Catálogo ─────────────────────────────────────────────────────────────────

type catalogRepo struct{ s *Store }

func (r catalogRepo) GetWarehouse(_ context.Context, id string) (*entity.Warehouse, error) {
	return clone(r.s.d.warehouses[id]), nil
}

func (r catalogRepo) ListWarehouses(_ context.Context, ids []string) ([]*entity.Warehouse, error) {
	return listByIDs(r.s.d.warehouses, ids), nil
}

func (r catalogRepo) GetLocation(_ context.Context, id string) (*entity.Location, error) {
	return clone(r.s.d.locations[id]), nil
}

func (r catalogRepo) ListLocations(_ context.Context, ids []string) ([]*entity.Location, error) {
	return listByIDs(r.s.d.locations, ids), nil
}

func (r catalogRepo) GetPickingType(_ context.Context, id string) (*entity.PickingType, error) {
	return clone(r.s.d.pickingTypes[id]), nil
}

func (r catalogRepo) FindIncomingPickingType(_ context.Context, companyID string) (*entity.PickingType, error) {
	var found *entity.PickingType
	for _, pt := range r.s.d.pickingTypes {
		if pt.CompanyID != companyID || pt.Code != entity.PickingTypeIncoming {
			continue
		}
		if found == nil || pt.ID < found.ID {
			found = pt
		}
	}
	return clone(found), nil
}

func (r catalogRepo) ListUoMs(_ context.Context, ids []string) ([]*entity.UoM, error) {
	return listByIDs(r.s.d.uoms, ids), nil
}

func (r catalogRepo) ListTaxes(_ context.Context, ids []string) ([]*entity.Tax, error) {
	return listByIDs(r.s.d.taxes, ids), nil
}

func (r catalogRepo) GetCurrency(_ context.Context, id string) (*entity.Currency, error) {
	return clone(r.s.d.currencies[id]), nil
}

func (r catalogRepo) GetRate(_ context.Context, currencyID, companyID string, date time.Time) (*entity.CurrencyRate, error) {
	var best *entity.CurrencyRate
	for _, rate := range r.s.d.rates {
		if rate.CurrencyID != currencyID || rate.Date.After(date) {
			continue
		}
		if rate.CompanyID != "" && rate.CompanyID != companyID {
			continue
		}
		if best == nil || rate.Date.After(best.Date) {
			best = rate
		}
	}
	return clone(best), nil
}

// ── Facturas de proveedor ────────────────────────────────────────────────────

type billRepo struct{ s *Store }

func (r billRepo) Create(_ context.Context, b *entity.VendorBill, lines []*entity.VendorBillLine) error {
	if _, ok := r.s.d.bills[b.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.d.bills[b.ID] = clone(b)
	for _, l := range lines {
		r.s.d.billLines = append(r.s.d.billLines, clone(l))
	}
	return nil
}

func (r billRepo) GetByID(_ context.Context, id string) (*entity.VendorBill, error) {
	return clone(r.s.d.bills[id]), nil
}

func (r billRepo) Update(_ context.Context, b *entity.VendorBill) error {
	if _, ok := r.s.d.bills[b.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.d.bills[b.ID] = clone(b)
	return nil
}

func (r billRepo) ListByIDs(_ context.Context, ids []string) ([]*entity.VendorBill, error) {
	return listByIDs(r.s.d.bills, ids), nil
}

func (r billRepo) ListLines(_ context.Context, billID string) ([]*entity.VendorBillLine, error) {
	var out []*entity.VendorBillLine
	for _, l := range r.s.d.billLines {
		if l.BillID == billID {
			out = append(out, clone(l))
		}
	}
	return out, nil
}

func (r billRepo) ListLinesByPurchaseLines(_ context.Context, lineIDs []string) ([]*entity.VendorBillLine, error) {
	want := toSet(lineIDs)
	var out []*entity.VendorBillLine
	for _, l := range r.s.d.billLines {
		if want[l.PurchaseLineID] {
			out = append(out, clone(l))
		}
	}
	return out, nil
}

// ── Actividades y mensajes ───────────────────────────────────────────────────

type activityRepo struct{ s *Store }

func (r activityRepo) Create(_ context.Context, a *entity.Activity) error {
	r.s.d.activities = append(r.s.d.activities, clone(a))
	return nil
}

func (r activityRepo) ListByResource(_ context.Context, resModel, resID string) ([]*entity.Activity, error) {
	var out []*entity.Activity
	for _, a := range r.s.d.activities {
		if a.ResModel == resModel && a.ResID == resID {
			out = append(out, clone(a))
		}
	}
	return out, nil
}

func (r activityRepo) CreateMessage(_ context.Context, m *entity.Message) error {
	r.s.d.messages = append(r.s.d.messages, clone(m))
	return nil
}

func (r activityRepo) ListMessages(_ context.Context, resModel, resID string) ([]*entity.Message, error) {
	var out []*entity.Message
	for _, m := range r.s.d.messages {
		if m.ResModel == resModel && m.ResID == resID {
			out = append(out, clone(m))
		}
	}
	return out, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func toSet(ids []string) map[string]bool {
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id != "" {
			out[id] = true
		}
	}
	return out
}

// listByIDs devuelve copias en el orden de ids, sin repetir y omitiendo los desconocidos.
func listByIDs[T any](m map[string]*T, ids []string) []*T {
	seen := map[string]bool{}
	var out []*T
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if v, ok := m[id]; ok {
			out = append(out, clone(v))
		}
	}
	return out
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
