package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Compras-api/internal/application/ports"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/infrastructure/memory"
)

func TestRun_RollbackRestauraElEstado(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	s.PutProduct(&entity.Product{ID: "p1", Name: "Tornillo", Cost: decimal.NewFromInt(10)})

	boom := errors.New("boom")
	err := s.Run(ctx, func(r ports.Repos) error {
		p, err := r.Products.GetByID(ctx, "p1")
		require.NoError(t, err)
		p.Cost = decimal.NewFromInt(99)
		require.NoError(t, r.Products.Update(ctx, p))
		require.NoError(t, r.Moves.Create(ctx, &entity.StockMove{ID: "m1", ProductID: "p1"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_ = s.Run(ctx, func(r ports.Repos) error {
		p, _ := r.Products.GetByID(ctx, "p1")
		assert.Equal(t, "10", p.Cost.String())
		m, _ := r.Moves.GetByID(ctx, "m1")
		assert.Nil(t, m)
		return nil
	})
}

func TestRepos_DevuelvenCopias(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	_ = s.Run(ctx, func(r ports.Repos) error {
		require.NoError(t, r.Moves.Create(ctx, &entity.StockMove{ID: "m1", MoveDestIDs: []string{"m2"}}))
		m, _ := r.Moves.GetByID(ctx, "m1")
		m.MoveDestIDs[0] = "otro"
		m.State = entity.MoveStateDone

		again, _ := r.Moves.GetByID(ctx, "m1")
		assert.Equal(t, []string{"m2"}, again.MoveDestIDs)
		assert.Empty(t, again.State)
		return nil
	})
}

func TestOrders_ActualizarCabeceraConservaLineas(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	_ = s.Run(ctx, func(r ports.Repos) error {
		o := &entity.PurchaseOrder{ID: "po", CompanyID: "c1", Lines: []*entity.PurchaseOrderLine{{ID: "l1", OrderID: "po", ProductQty: decimal.NewFromInt(5)}}}
		require.NoError(t, r.Orders.Create(ctx, o))

		header := &entity.PurchaseOrder{ID: "po", CompanyID: "c1", State: entity.PurchaseStatePurchase}
		require.NoError(t, r.Orders.Update(ctx, header))
		got, _ := r.Orders.GetByID(ctx, "po")
		assert.Equal(t, entity.PurchaseStatePurchase, got.State)
		require.Len(t, got.Lines, 1)

		ids, _ := r.Orders.OrderIDsByLineIDs(ctx, []string{"l1", "desconocida"})
		assert.Equal(t, []string{"po"}, ids)

		n1, _ := r.Orders.NextName(ctx, "c1")
		n2, _ := r.Orders.NextName(ctx, "c1")
		assert.Equal(t, "P00001", n1)
		assert.Equal(t, "P00002", n2)
		return nil
	})
}

func TestCatalog_TasaVigenteALaFecha(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	day := func(d int) time.Time { return time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC) }
	s.PutRate(&entity.CurrencyRate{CurrencyID: "USD", Date: day(1), Rate: decimal.RequireFromString("0.00025")})
	s.PutRate(&entity.CurrencyRate{CurrencyID: "USD", Date: day(10), Rate: decimal.RequireFromString("0.00024")})

	_ = s.Run(ctx, func(r ports.Repos) error {
		rate, err := r.Catalog.GetRate(ctx, "USD", "c1", day(5))
		require.NoError(t, err)
		require.NotNil(t, rate)
		assert.Equal(t, "0.00025", rate.Rate.String())

		rate, _ = r.Catalog.GetRate(ctx, "USD", "c1", day(20))
		assert.Equal(t, "0.00024", rate.Rate.String())

		rate, _ = r.Catalog.GetRate(ctx, "EUR", "c1", day(20))
		assert.Nil(t, rate)
		return nil
	})
}

func TestRun_ContextoCanceladoNoEjecuta(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := memory.NewStore().Run(ctx, func(ports.Repos) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
