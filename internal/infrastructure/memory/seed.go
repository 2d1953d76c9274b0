package memory

import (
	"context"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// Users repositorio de usuarios fuera de transacción (auth).
func (s *Store) Users() repository.UserRepository { return userRepo{s} }

// SaleOrders repositorio de pedidos de venta fuera de transacción (documentos).
func (s *Store) SaleOrders() repository.SaleOrderRepository { return saleOrderRepo{s} }

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	email := normalizeEmail(u.Email)
	for _, x := range r.s.d.users {
		if normalizeEmail(x.Email) == email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.d.users[u.ID] = clone(u)
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return clone(r.s.d.users[id]), nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	email = normalizeEmail(email)
	for _, u := range r.s.d.users {
		if normalizeEmail(u.Email) == email {
			return clone(u), nil
		}
	}
	return nil, nil
}

type saleOrderRepo struct{ s *Store }

func (r saleOrderRepo) Create(_ context.Context, o *entity.SaleOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.d.saleOrders[o.ID] = cloneSaleOrder(o)
	return nil
}

func (r saleOrderRepo) GetByID(_ context.Context, id string) (*entity.SaleOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return cloneSaleOrder(r.s.d.saleOrders[id]), nil
}

func cloneSaleOrder(o *entity.SaleOrder) *entity.SaleOrder {
	if o == nil {
		return nil
	}
	c := *o
	c.Lines = make([]*entity.SaleOrderLine, 0, len(o.Lines))
	for _, l := range o.Lines {
		c.Lines = append(c.Lines, clone(l))
	}
	return &c
}

// Datos de referencia: usados por el arranque en modo memoria y por los tests.

// PutCompany guarda o reemplaza una compañía.
func (s *Store) PutCompany(c *entity.Company) {
	s.put(func(d *data) { d.companies[c.ID] = clone(c) })
}

// PutPartner guarda o reemplaza un tercero.
func (s *Store) PutPartner(p *entity.Partner) {
	s.put(func(d *data) { d.partners[p.ID] = clone(p) })
}

// PutProduct guarda o reemplaza un producto.
func (s *Store) PutProduct(p *entity.Product) {
	s.put(func(d *data) { d.products[p.ID] = clone(p) })
}

// PutUser guarda o reemplaza un usuario.
func (s *Store) PutUser(u *entity.User) {
	s.put(func(d *data) { d.users[u.ID] = clone(u) })
}

// PutWarehouse guarda o reemplaza una bodega.
func (s *Store) PutWarehouse(w *entity.Warehouse) {
	s.put(func(d *data) { d.warehouses[w.ID] = clone(w) })
}

// PutLocation guarda o reemplaza una ubicación.
func (s *Store) PutLocation(l *entity.Location) {
	s.put(func(d *data) { d.locations[l.ID] = clone(l) })
}

// PutPickingType guarda o reemplaza un tipo de operación.
func (s *Store) PutPickingType(pt *entity.PickingType) {
	s.put(func(d *data) { d.pickingTypes[pt.ID] = clone(pt) })
}

// PutUoM guarda o reemplaza una unidad de medida.
func (s *Store) PutUoM(u *entity.UoM) {
	s.put(func(d *data) { d.uoms[u.ID] = clone(u) })
}

// PutTax guarda o reemplaza un impuesto.
func (s *Store) PutTax(t *entity.Tax) {
	s.put(func(d *data) { d.taxes[t.ID] = clone(t) })
}

// PutCurrency guarda o reemplaza una moneda.
func (s *Store) PutCurrency(c *entity.Currency) {
	s.put(func(d *data) { d.currencies[c.ID] = clone(c) })
}

// PutRate agrega una tasa de cambio.
func (s *Store) PutRate(r *entity.CurrencyRate) {
	s.put(func(d *data) { d.rates = append(d.rates, clone(r)) })
}

// PutStock fija la cantidad de un producto en una ubicación.
func (s *Store) PutStock(st *entity.Stock) {
	s.put(func(d *data) { d.stock[stockKey{st.ProductID, st.LocationID}] = clone(st) })
}

// PutSaleOrder guarda o reemplaza un pedido de venta.
func (s *Store) PutSaleOrder(o *entity.SaleOrder) {
	s.put(func(d *data) { d.saleOrders[o.ID] = cloneSaleOrder(o) })
}

func (s *Store) put(fn func(d *data)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.d)
}
