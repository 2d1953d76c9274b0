package purchase_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/purchase"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: bodega WH con vista loc-view ⊃ loc-stock, proveedor, cliente y una
// ubicación interna ajena (loc-other). Pedido P00001 con una línea de 10 unidades.
// ──────────────────────────────────────────────────────────────────────────────

var baseDate = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	s    *purchase.Snapshot
	line *entity.PurchaseOrderLine
	seq  int
}

func newFixture() *fixture {
	line := &entity.PurchaseOrderLine{
		ID:                "line-1",
		OrderID:           "po-1",
		Name:              "Tornillo M8",
		ProductID:         "prod-1",
		ProductQty:        dec("10"),
		ProductUoMID:      "uom-unit",
		PriceUnit:         dec("100"),
		QtyReceivedMethod: entity.QtyReceivedStockMoves,
	}
	order := &entity.PurchaseOrder{
		ID:            "po-1",
		CompanyID:     "company-1",
		Name:          "P00001",
		PartnerID:     "partner-1",
		PickingTypeID: "pt-in",
		CurrencyID:    "COP",
		State:         entity.PurchaseStatePurchase,
		DateOrder:     baseDate,
		Lines:         []*entity.PurchaseOrderLine{line},
	}
	s := purchase.NewSnapshot(order)
	s.Company = &entity.Company{ID: "company-1", CurrencyID: "COP"}
	s.Partner = &entity.Partner{ID: "partner-1", Name: "Aceros SAS", PropertyStockSupplierID: "loc-supplier"}
	s.PickingType = &entity.PickingType{
		ID: "pt-in", Code: entity.PickingTypeIncoming, WarehouseID: "wh-1",
		DefaultLocationSrcID: "loc-supplier", DefaultLocationDestID: "loc-stock",
	}
	for _, l := range []*entity.Location{
		{ID: "loc-supplier", Usage: entity.LocationUsageSupplier, ParentPath: "loc-supplier/"},
		{ID: "loc-customer", Usage: entity.LocationUsageCustomer, ParentPath: "loc-customer/"},
		{ID: "loc-view", Usage: entity.LocationUsageView, ParentPath: "loc-view/"},
		{ID: "loc-stock", Usage: entity.LocationUsageInternal, ParentPath: "loc-view/loc-stock/"},
		{ID: "loc-other", Usage: entity.LocationUsageInternal, ParentPath: "loc-other/"},
		{ID: "loc-output", Usage: entity.LocationUsageInternal, ParentPath: "loc-view/loc-output/"},
	} {
		s.Locations[l.ID] = l
	}
	s.Warehouses["wh-1"] = &entity.Warehouse{ID: "wh-1", ViewLocationID: "loc-view", LotStockID: "loc-stock"}
	s.UoMs["uom-unit"] = &entity.UoM{ID: "uom-unit", Name: "Unidades", CategoryID: "cat-unit", Factor: dec("1"), Rounding: dec("0.01")}
	s.UoMs["uom-dozen"] = &entity.UoM{ID: "uom-dozen", Name: "Docenas", CategoryID: "cat-unit", Factor: decimal.NewFromInt(1).Div(decimal.NewFromInt(12)), Rounding: dec("0.01")}
	s.UoMs["uom-kg"] = &entity.UoM{ID: "uom-kg", Name: "kg", CategoryID: "cat-weight", Factor: dec("1"), Rounding: dec("0.001")}
	s.Products["prod-1"] = &entity.Product{ID: "prod-1", Name: "Tornillo M8", Type: entity.ProductTypeStorable, UoMID: "uom-unit", ResponsibleID: "user-resp"}
	return &fixture{s: s, line: line}
}

// move agrega un movimiento de la línea (UoM unidades, bodega wh-1).
func (f *fixture) move(src, dest, qty, state string) *entity.StockMove {
	f.seq++
	m := &entity.StockMove{
		ID:             fmt.Sprintf("move-%d", f.seq),
		Sequence:       f.seq,
		ProductID:      f.line.ProductID,
		ProductUoMQty:  dec(qty),
		ProductQty:     dec(qty),
		ProductUoMID:   "uom-unit",
		State:          state,
		LocationID:     src,
		LocationDestID: dest,
		WarehouseID:    "wh-1",
		PurchaseLineID: f.line.ID,
		Date:           baseDate,
	}
	f.s.AddMoves(m)
	return m
}

// returnOf agrega la devolución de origin.
func (f *fixture) returnOf(origin *entity.StockMove, dest, qty string, toRefund bool) *entity.StockMove {
	r := f.move(origin.LocationDestID, dest, qty, entity.MoveStateDone)
	r.OriginReturnedMoveID = origin.ID
	r.ToRefund = toRefund
	return r
}

func (f *fixture) picking(id, state, dest string, moves ...*entity.StockMove) *entity.Picking {
	p := &entity.Picking{ID: id, Name: id, State: state, LocationDestID: dest, Date: baseDate}
	f.s.Pickings[id] = p
	for _, m := range moves {
		m.PickingID = id
	}
	return p
}

func (f *fixture) received(t *testing.T) decimal.Decimal {
	t.Helper()
	qty, err := purchase.ReceivedQuantity(f.s, f.line, purchase.UsageDropship{})
	if err != nil {
		t.Fatalf("ReceivedQuantity: %v", err)
	}
	return qty
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Equal(t, dec(want).String(), got.Round(6).String(), msgAndArgs...)
}
