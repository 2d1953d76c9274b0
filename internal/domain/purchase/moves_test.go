package purchase_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/purchase"
)

// ──────────────────────────────────────────────────────────────────────────────
// Generador de movimientos
// ──────────────────────────────────────────────────────────────────────────────

func prepare(t *testing.T, f *fixture, opts purchase.GenerateOptions) []*entity.StockMove {
	t.Helper()
	picking := &entity.Picking{ID: "pk-new"}
	moves, err := purchase.PrepareStockMoves(f.s, f.line, picking, opts)
	require.NoError(t, err)
	return moves
}

func TestPrepareStockMoves_LineaNuevaGeneraUnMovimiento(t *testing.T) {
	f := newFixture()
	lead := 3
	f.s.Partner.PurchaseLeadDays = &lead

	moves := prepare(t, f, purchase.GenerateOptions{DefaultLeadDays: 7})
	require.Len(t, moves, 1)
	m := moves[0]
	assertDecimal(t, "10", m.ProductUoMQty)
	assertDecimal(t, "10", m.ProductQty)
	assert.Equal(t, "uom-unit", m.ProductUoMID)
	assert.Equal(t, "loc-supplier", m.LocationID)
	assert.Equal(t, "loc-stock", m.LocationDestID)
	assert.Equal(t, "pk-new", m.PickingID)
	assert.Equal(t, "line-1", m.PurchaseLineID)
	assert.Equal(t, "P00001", m.Origin)
	assert.Equal(t, entity.MoveStateDraft, m.State)
	assert.Equal(t, "wh-1", m.WarehouseID)
	assertDecimal(t, "100", m.PriceUnit)
	require.NotNil(t, m.DateDeadline)
	assert.Equal(t, baseDate.AddDate(0, 0, 3), *m.DateDeadline, "plazo del proveedor")
	assert.Empty(t, m.MoveDestIDs)
}

func TestPrepareStockMoves_PlazoPorDefectoSinProveedorNiCompania(t *testing.T) {
	f := newFixture()
	planned := baseDate.AddDate(0, 0, 10)
	f.line.DatePlanned = &planned

	moves := prepare(t, f, purchase.GenerateOptions{DefaultLeadDays: 2})
	require.Len(t, moves, 1)
	assert.Equal(t, planned, moves[0].Date)
	assert.Equal(t, planned.AddDate(0, 0, 2), *moves[0].DateDeadline)

	f.s.Company.POLeadDays = 5
	moves = prepare(t, f, purchase.GenerateOptions{DefaultLeadDays: 2})
	assert.Equal(t, planned.AddDate(0, 0, 5), *moves[0].DateDeadline, "plazo de la compañía")
}

func TestPrepareStockMoves_SoloGeneraLaDiferencia(t *testing.T) {
	f := newFixture()
	f.move("loc-supplier", "loc-stock", "10", entity.MoveStateDone)
	f.line.ProductQty = dec("12")

	moves := prepare(t, f, purchase.GenerateOptions{})
	require.Len(t, moves, 1)
	assertDecimal(t, "2", moves[0].ProductUoMQty)
}

func TestPrepareStockMoves_NuncaCantidadesNoPositivas(t *testing.T) {
	cases := map[string]string{
		"cubierta exactamente":                "10",
		"bajo la precisión de la UoM":         "10.004",
		"disminución por debajo de lo movido": "5",
	}
	for name, qty := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			f.move("loc-supplier", "loc-stock", "10", entity.MoveStateAssigned)
			f.line.ProductQty = dec(qty)

			assert.Empty(t, prepare(t, f, purchase.GenerateOptions{}))
		})
	}
}

func TestPrepareStockMoves_DevolucionConReembolsoSeVuelveAPedir(t *testing.T) {
	f := newFixture()
	in := f.move("loc-supplier", "loc-stock", "10", entity.MoveStateDone)
	f.returnOf(in, "loc-supplier", "3", true)

	moves := prepare(t, f, purchase.GenerateOptions{})
	require.Len(t, moves, 1)
	assertDecimal(t, "3", moves[0].ProductUoMQty)
}

func TestPrepareStockMoves_EnlazaLaDemandaAguasAbajo(t *testing.T) {
	f := newFixture()
	dest := f.move("loc-stock", "loc-customer", "6", entity.MoveStateWaiting)
	dest.PurchaseLineID = ""
	dest.CreatedPurchaseLineID = "line-1"

	moves := prepare(t, f, purchase.GenerateOptions{})
	require.Len(t, moves, 2)
	assertDecimal(t, "6", moves[0].ProductUoMQty, "cantidad a enlazar")
	assert.Equal(t, []string{dest.ID}, moves[0].MoveDestIDs)
	assertDecimal(t, "4", moves[1].ProductUoMQty, "resto sin enlace")
	assert.Empty(t, moves[1].MoveDestIDs)
}

func TestPrepareStockMoves_ConvierteALaUoMDelProducto(t *testing.T) {
	f := newFixture()
	f.line.ProductUoMID = "uom-dozen"
	f.line.ProductQty = dec("2")
	f.line.PriceUnit = dec("1200")

	moves := prepare(t, f, purchase.GenerateOptions{})
	require.Len(t, moves, 1)
	assert.Equal(t, "uom-unit", moves[0].ProductUoMID)
	assertDecimal(t, "24", moves[0].ProductUoMQty)
	assertDecimal(t, "100", moves[0].PriceUnit, "precio por unidad del producto")

	moves = prepare(t, f, purchase.GenerateOptions{PropagateUoM: true})
	require.Len(t, moves, 1)
	assert.Equal(t, "uom-dozen", moves[0].ProductUoMID)
	assertDecimal(t, "2", moves[0].ProductUoMQty)
	assertDecimal(t, "24", moves[0].ProductQty)
}

func TestPrepareStockMoves_DestinoDropshipYReglaDeReabastecimiento(t *testing.T) {
	f := newFixture()
	f.line.OrderpointLocationID = "loc-output"
	moves := prepare(t, f, purchase.GenerateOptions{})
	require.Len(t, moves, 1)
	assert.Equal(t, "loc-output", moves[0].LocationDestID)

	f = newFixture()
	f.s.DestAddress = &entity.Partner{ID: "partner-cliente", PropertyStockCustomerID: "loc-customer"}
	f.s.Order.DestAddressID = "partner-cliente"
	moves = prepare(t, f, purchase.GenerateOptions{})
	require.Len(t, moves, 1)
	assert.Equal(t, "loc-customer", moves[0].LocationDestID)
	assert.Equal(t, "partner-cliente", moves[0].PartnerID)
}

func TestPrepareStockMoves_SinUbicacionDeProveedorFalla(t *testing.T) {
	f := newFixture()
	f.s.Partner.PropertyStockSupplierID = ""

	_, err := purchase.PrepareStockMoves(f.s, f.line, &entity.Picking{ID: "pk"}, purchase.GenerateOptions{})
	ue, ok := domain.AsUserError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeMissingVendorLoc, ue.Code)
}

func TestPrepareStockMoves_ServiciosYSeccionesNoGeneran(t *testing.T) {
	f := newFixture()
	f.s.Products["prod-1"].Type = entity.ProductTypeService
	assert.Empty(t, prepare(t, f, purchase.GenerateOptions{}))

	f = newFixture()
	f.line.DisplayType = "line_section"
	assert.Empty(t, prepare(t, f, purchase.GenerateOptions{}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Precio unitario del movimiento
// ──────────────────────────────────────────────────────────────────────────────

type fixedRate struct {
	rate decimal.Decimal
	err  error
}

func (r fixedRate) Convert(amount decimal.Decimal, _, _, _ string, _ time.Time) (decimal.Decimal, error) {
	return amount.Mul(r.rate), r.err
}

func TestStockMovePriceUnit_QuitaImpuestoIncluido(t *testing.T) {
	f := newFixture()
	f.s.Taxes["iva-19"] = &entity.Tax{ID: "iva-19", AmountType: entity.TaxAmountPercent, Amount: dec("19"), PriceInclude: true}
	f.s.Taxes["rete"] = &entity.Tax{ID: "rete", AmountType: entity.TaxAmountPercent, Amount: dec("2.5")}
	f.line.TaxIDs = []string{"iva-19", "rete"}
	f.line.PriceUnit = dec("119")

	price, err := purchase.StockMovePriceUnit(f.s, f.line, nil)
	require.NoError(t, err)
	assertDecimal(t, "100", price)
}

func TestStockMovePriceUnit_ConvierteMoneda(t *testing.T) {
	f := newFixture()
	f.s.Order.CurrencyID = "USD"

	price, err := purchase.StockMovePriceUnit(f.s, f.line, fixedRate{rate: dec("4000")})
	require.NoError(t, err)
	assertDecimal(t, "400000", price)

	_, err = purchase.StockMovePriceUnit(f.s, f.line, fixedRate{err: errors.New("sin tasa")})
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Redondeo por UoM
// ──────────────────────────────────────────────────────────────────────────────

func TestRound_Metodos(t *testing.T) {
	p := dec("0.01")
	assertDecimal(t, "1.23", purchase.Round(dec("1.235"), p, purchase.RoundDown))
	assertDecimal(t, "1.24", purchase.Round(dec("1.235"), p, purchase.RoundHalfUp))
	assertDecimal(t, "1.24", purchase.Round(dec("1.231"), p, purchase.RoundUp))
	assertDecimal(t, "-1.24", purchase.Round(dec("-1.231"), p, purchase.RoundUp), "simétrico respecto a cero")
	assertDecimal(t, "1.5", purchase.Round(dec("1.7"), dec("0.5"), purchase.RoundDown))
	assert.True(t, purchase.IsZero(dec("0.004"), p))
	assert.Equal(t, 0, purchase.Compare(dec("10.004"), dec("10"), p))
	assert.Equal(t, 1, purchase.Compare(dec("10.01"), dec("10"), p))
	assert.Equal(t, -1, purchase.Compare(dec("9.99"), dec("10"), p))
}
