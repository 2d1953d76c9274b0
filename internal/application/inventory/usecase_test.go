package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/inventory"
	"github.com/jhoicas/Compras-api/internal/application/ports"
	"github.com/jhoicas/Compras-api/internal/application/purchase"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/infrastructure/memory"
)

const company = memory.DemoCompanyID

var now = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func setup(t *testing.T) (context.Context, *memory.Store, *inventory.UseCase) {
	t.Helper()
	store := memory.NewStore()
	store.SeedDemo()
	clock := func() time.Time { return now }
	orders := purchase.NewUseCase(store, purchase.Config{}, zerolog.Nop()).WithClock(clock)
	return context.Background(), store, inventory.NewUseCase(store, orders, zerolog.Nop()).WithClock(clock)
}

// seedPicking crea un traslado de un movimiento de tornillos entre from y to.
func seedPicking(t *testing.T, ctx context.Context, s *memory.Store, id, from, to string, qty int64) {
	t.Helper()
	require.NoError(t, s.Run(ctx, func(r ports.Repos) error {
		if err := r.Pickings.Create(ctx, &entity.Picking{
			ID: id, CompanyID: company, Name: "WH/" + id, PickingTypeID: memory.PickingTypeIn,
			LocationID: from, LocationDestID: to, State: entity.PickingStateAssigned, Date: now,
		}); err != nil {
			return err
		}
		return r.Moves.Create(ctx, &entity.StockMove{
			ID: id + "-m1", CompanyID: company, Name: "Tornillo M8", ProductID: memory.ProductBolt,
			ProductUoMQty: decimal.NewFromInt(qty), ProductQty: decimal.NewFromInt(qty), ProductUoMID: memory.UoMUnit,
			State: entity.MoveStateAssigned, LocationID: from, LocationDestID: to, PickingID: id,
			PriceUnit: decimal.NewFromInt(80), Date: now,
		})
	}))
}

func stockAt(t *testing.T, ctx context.Context, s *memory.Store, loc string) decimal.Decimal {
	t.Helper()
	qty := decimal.Zero
	require.NoError(t, s.Run(ctx, func(r ports.Repos) error {
		st, err := r.Stock.Get(ctx, memory.ProductBolt, loc)
		if st != nil {
			qty = st.Quantity
		}
		return err
	}))
	return qty
}

func userCode(t *testing.T, err error) string {
	t.Helper()
	ue, ok := domain.AsUserError(err)
	require.True(t, ok, "se esperaba UserError, llegó %v", err)
	return ue.Code
}

func TestValidatePicking_EntradaSumaExistenciasYCosto(t *testing.T) {
	ctx, s, uc := setup(t)
	seedPicking(t, ctx, s, "in1", memory.LocSupplier, memory.LocStock, 4)

	out, err := uc.ValidatePicking(ctx, company, "bodega", "in1")
	require.NoError(t, err)
	assert.Equal(t, entity.PickingStateDone, out.State)
	require.NotNil(t, out.DateDone)
	assert.Equal(t, entity.MoveStateDone, out.Moves[0].State)
	assert.Equal(t, "4", stockAt(t, ctx, s, memory.LocStock).String())

	require.NoError(t, s.Run(ctx, func(r ports.Repos) error {
		p, err := r.Products.GetByID(ctx, memory.ProductBolt)
		require.NoError(t, err)
		assert.Equal(t, "80", p.Cost.String())
		return nil
	}))

	_, err = uc.ValidatePicking(ctx, company, "bodega", "in1")
	assert.Equal(t, domain.CodePickingNotReady, userCode(t, err))
}

func TestValidatePicking_SinExistenciasFallaYRevierte(t *testing.T) {
	ctx, s, uc := setup(t)
	s.PutStock(&entity.Stock{ProductID: memory.ProductBolt, LocationID: memory.LocStock, Quantity: decimal.NewFromInt(2)})
	seedPicking(t, ctx, s, "out1", memory.LocStock, memory.LocCustomer, 5)

	_, err := uc.ValidatePicking(ctx, company, "bodega", "out1")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, "2", stockAt(t, ctx, s, memory.LocStock).String())

	out, err := uc.GetPicking(ctx, company, "out1")
	require.NoError(t, err)
	assert.Equal(t, entity.PickingStateAssigned, out.State)
}

func TestValidatePicking_InternoMueveEntreUbicaciones(t *testing.T) {
	ctx, s, uc := setup(t)
	s.PutStock(&entity.Stock{ProductID: memory.ProductBolt, LocationID: memory.LocStock, Quantity: decimal.NewFromInt(10)})
	seedPicking(t, ctx, s, "int1", memory.LocStock, memory.LocOutput, 6)

	_, err := uc.ValidatePicking(ctx, company, "bodega", "int1")
	require.NoError(t, err)
	assert.Equal(t, "4", stockAt(t, ctx, s, memory.LocStock).String())
	assert.Equal(t, "6", stockAt(t, ctx, s, memory.LocOutput).String())
}

func TestGetPicking_OtraCompania(t *testing.T) {
	ctx, s, uc := setup(t)
	seedPicking(t, ctx, s, "in1", memory.LocSupplier, memory.LocStock, 1)

	_, err := uc.GetPicking(ctx, "otra", "in1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.GetPicking(ctx, company, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReturnPicking_Reglas(t *testing.T) {
	ctx, s, uc := setup(t)
	seedPicking(t, ctx, s, "in1", memory.LocSupplier, memory.LocStock, 4)

	_, err := uc.ReturnPicking(ctx, company, "bodega", "in1", dto.ReturnPickingRequest{})
	assert.Equal(t, domain.CodePickingNotReady, userCode(t, err), "aún no está hecho")

	_, err = uc.ValidatePicking(ctx, company, "bodega", "in1")
	require.NoError(t, err)

	_, err = uc.ReturnPicking(ctx, company, "bodega", "in1", dto.ReturnPickingRequest{
		Lines: []dto.ReturnLineRequest{{MoveID: "in1-m1", Quantity: decimal.NewFromInt(5)}},
	})
	assert.Equal(t, domain.CodeReturnExceeds, userCode(t, err))

	_, err = uc.ReturnPicking(ctx, company, "bodega", "in1", dto.ReturnPickingRequest{
		Lines: []dto.ReturnLineRequest{{MoveID: "otro", Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ReturnPicking(ctx, company, "bodega", "in1", dto.ReturnPickingRequest{
		Lines: []dto.ReturnLineRequest{{MoveID: "in1-m1", Quantity: decimal.Zero}},
	})
	assert.Equal(t, domain.CodeNothingToReturn, userCode(t, err))

	ret, err := uc.ReturnPicking(ctx, company, "bodega", "in1", dto.ReturnPickingRequest{
		Lines: []dto.ReturnLineRequest{{MoveID: "in1-m1", Quantity: decimal.NewFromInt(3)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "WH/RET/00001", ret.Name)
	assert.Equal(t, memory.LocStock, ret.LocationID)
	assert.Equal(t, memory.LocSupplier, ret.LocationDestID)
	assert.Equal(t, entity.PickingStateAssigned, ret.State)
	require.Len(t, ret.Moves, 1)
	assert.Equal(t, "in1-m1", ret.Moves[0].OriginReturnedMoveID)
	assert.False(t, ret.Moves[0].ToRefund)

	rest, err := uc.ReturnPicking(ctx, company, "bodega", "in1", dto.ReturnPickingRequest{})
	require.NoError(t, err)
	require.Len(t, rest.Moves, 1)
	assert.Equal(t, "1", rest.Moves[0].ProductUoMQty.String(), "solo queda lo no devuelto")

	_, err = uc.ReturnPicking(ctx, company, "bodega", "in1", dto.ReturnPickingRequest{})
	assert.Equal(t, domain.CodeNothingToReturn, userCode(t, err))

	_, err = uc.ValidatePicking(ctx, company, "bodega", ret.ID)
	require.NoError(t, err)
	assert.Equal(t, "1", stockAt(t, ctx, s, memory.LocStock).String())
}

func TestReturnPicking_ReservaSegunExistencias(t *testing.T) {
	ctx, s, uc := setup(t)
	seedPicking(t, ctx, s, "in1", memory.LocSupplier, memory.LocStock, 4)
	_, err := uc.ValidatePicking(ctx, company, "bodega", "in1")
	require.NoError(t, err)
	s.PutStock(&entity.Stock{ProductID: memory.ProductBolt, LocationID: memory.LocStock, Quantity: decimal.NewFromInt(1)})

	ret, err := uc.ReturnPicking(ctx, company, "bodega", "in1", dto.ReturnPickingRequest{})
	require.NoError(t, err)
	assert.Equal(t, entity.PickingStateConfirmed, ret.State, "no alcanzan las existencias para reservar")
}
