package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/Compras-api/internal/application/ports"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// Store persistencia en memoria. Los repositorios guardan y devuelven copias,
// de modo que un rollback solo necesita restaurar los mapas.
type Store struct {
	mu sync.Mutex
	d  *data
}

type data struct {
	companies    map[string]*entity.Company
	partners     map[string]*entity.Partner
	products     map[string]*entity.Product
	users        map[string]*entity.User
	orders       map[string]*entity.PurchaseOrder
	lineOrder    map[string]string
	moves        map[string]*entity.StockMove
	moveOrder    []string
	pickings     map[string]*entity.Picking
	groups       map[string]*entity.ProcurementGroup
	stock        map[stockKey]*entity.Stock
	warehouses   map[string]*entity.Warehouse
	locations    map[string]*entity.Location
	pickingTypes map[string]*entity.PickingType
	uoms         map[string]*entity.UoM
	taxes        map[string]*entity.Tax
	currencies   map[string]*entity.Currency
	rates        []*entity.CurrencyRate
	bills        map[string]*entity.VendorBill
	billLines    []*entity.VendorBillLine
	activities   []*entity.Activity
	messages     []*entity.Message
	saleOrders   map[string]*entity.SaleOrder
	sequences    map[string]int
}

type stockKey struct{ product, location string }

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{d: &data{
		companies:    map[string]*entity.Company{},
		partners:     map[string]*entity.Partner{},
		products:     map[string]*entity.Product{},
		users:        map[string]*entity.User{},
		orders:       map[string]*entity.PurchaseOrder{},
		lineOrder:    map[string]string{},
		moves:        map[string]*entity.StockMove{},
		pickings:     map[string]*entity.Picking{},
		groups:       map[string]*entity.ProcurementGroup{},
		stock:        map[stockKey]*entity.Stock{},
		warehouses:   map[string]*entity.Warehouse{},
		locations:    map[string]*entity.Location{},
		pickingTypes: map[string]*entity.PickingType{},
		uoms:         map[string]*entity.UoM{},
		taxes:        map[string]*entity.Tax{},
		currencies:   map[string]*entity.Currency{},
		bills:        map[string]*entity.VendorBill{},
		saleOrders:   map[string]*entity.SaleOrder{},
		sequences:    map[string]int{},
	}}
}

var _ ports.TxRunner = (*Store)(nil)

// Run ejecuta fn con el store bloqueado. Si fn falla se restaura el estado previo.
func (s *Store) Run(ctx context.Context, fn func(r ports.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	backup := s.d.snapshot()
	if err := fn(s.repos()); err != nil {
		s.d = backup
		return err
	}
	return nil
}

func (s *Store) repos() ports.Repos {
	return ports.Repos{
		Orders:     orderRepo{s},
		Moves:      moveRepo{s},
		Pickings:   pickingRepo{s},
		Stock:      stockRepo{s},
		Products:   productRepo{s},
		Partners:   partnerRepo{s},
		Companies:  companyRepo{s},
		Catalog:    catalogRepo{s},
		Bills:      billRepo{s},
		Activities: activityRepo{s},
	}
}

// snapshot copia los contenedores; las entidades son inmutables dentro del store.
func (d *data) snapshot() *data {
	return &data{
		companies:    copyMap(d.companies),
		partners:     copyMap(d.partners),
		products:     copyMap(d.products),
		users:        copyMap(d.users),
		orders:       copyMap(d.orders),
		lineOrder:    copyMap(d.lineOrder),
		moves:        copyMap(d.moves),
		moveOrder:    append([]string(nil), d.moveOrder...),
		pickings:     copyMap(d.pickings),
		groups:       copyMap(d.groups),
		stock:        copyMap(d.stock),
		warehouses:   copyMap(d.warehouses),
		locations:    copyMap(d.locations),
		pickingTypes: copyMap(d.pickingTypes),
		uoms:         copyMap(d.uoms),
		taxes:        copyMap(d.taxes),
		currencies:   copyMap(d.currencies),
		rates:        append([]*entity.CurrencyRate(nil), d.rates...),
		bills:        copyMap(d.bills),
		billLines:    append([]*entity.VendorBillLine(nil), d.billLines...),
		activities:   append([]*entity.Activity(nil), d.activities...),
		messages:     append([]*entity.Message(nil), d.messages...),
		saleOrders:   copyMap(d.saleOrders),
		sequences:    copyMap(d.sequences),
	}
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// clone copia superficial de una entidad sin slices.
func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// next incrementa y devuelve el contador de una secuencia.
func (d *data) next(key string) int {
	d.sequences[key]++
	return d.sequences[key]
}
