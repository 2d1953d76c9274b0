package purchase_test

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

// ──────────────────────────────────────────────────────────────────────────────
// Entorno: store en memoria con los datos de demostración, compras e inventario
// compartiendo la misma unidad de trabajo y un reloj fijo.
// ──────────────────────────────────────────────────────────────────────────────

var now = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

const (
	company = memory.DemoCompanyID
	buyer   = "user-comprador"
)

type env struct {
	t     *testing.T
	ctx   context.Context
	store *memory.Store
	uc    *purchase.UseCase
	inv   *inventory.UseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	store.SeedDemo()
	clock := func() time.Time { return now }
	uc := purchase.NewUseCase(store, purchase.Config{}, zerolog.Nop()).WithClock(clock)
	inv := inventory.NewUseCase(store, uc, zerolog.Nop()).WithClock(clock)
	return &env{t: t, ctx: context.Background(), store: store, uc: uc, inv: inv}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Equal(t, dec(want).String(), got.Round(6).String(), msgAndArgs...)
}

func assertUserError(t *testing.T, err error, code string) {
	t.Helper()
	ue, ok := domain.AsUserError(err)
	require.True(t, ok, "se esperaba UserError, llegó %v", err)
	assert.Equal(t, code, ue.Code)
}

// order crea un pedido de tornillos a 100 por unidad.
func (e *env) order(qty string) *dto.PurchaseOrderResponse {
	e.t.Helper()
	out, err := e.uc.CreateOrder(e.ctx, company, buyer, dto.CreatePurchaseOrderRequest{
		PartnerID: memory.DemoVendorID,
		Lines: []dto.PurchaseLineRequest{
			{ProductID: memory.ProductBolt, ProductQty: dec(qty), PriceUnit: dec("100")},
		},
	})
	require.NoError(e.t, err)
	return out
}

// confirmed crea y confirma un pedido.
func (e *env) confirmed(qty string) *dto.PurchaseOrderResponse {
	e.t.Helper()
	o := e.order(qty)
	out, err := e.uc.Confirm(e.ctx, company, buyer, entity.RoleComprador, o.ID)
	require.NoError(e.t, err)
	require.Equal(e.t, entity.PurchaseStatePurchase, out.State)
	return out
}

func (e *env) get(id string) *dto.PurchaseOrderResponse {
	e.t.Helper()
	out, err := e.uc.GetOrder(e.ctx, company, id)
	require.NoError(e.t, err)
	return out
}

func (e *env) pickings(orderID string) []dto.PickingResponse {
	e.t.Helper()
	out, err := e.uc.ListPickings(e.ctx, company, orderID)
	require.NoError(e.t, err)
	return out
}

// receipt único picking abierto del pedido.
func (e *env) receipt(orderID string) dto.PickingResponse {
	e.t.Helper()
	for _, p := range e.pickings(orderID) {
		if p.State != entity.PickingStateDone && p.State != entity.PickingStateCancel {
			return p
		}
	}
	e.t.Fatalf("el pedido %s no tiene pickings abiertos", orderID)
	return dto.PickingResponse{}
}

func (e *env) validate(pickingID string) *dto.PickingResponse {
	e.t.Helper()
	out, err := e.inv.ValidatePicking(e.ctx, company, buyer, pickingID)
	require.NoError(e.t, err)
	return out
}

func (e *env) activities(model, id string) []*entity.Activity {
	e.t.Helper()
	var out []*entity.Activity
	require.NoError(e.t, e.store.Run(e.ctx, func(r ports.Repos) error {
		var err error
		out, err = r.Activities.ListByResource(e.ctx, model, id)
		return err
	}))
	return out
}

// messages cuerpos de los mensajes del pedido y de sus traslados.
func (e *env) messages(orderID string) []string {
	e.t.Helper()
	acts, err := e.uc.ListActivities(e.ctx, company, orderID)
	require.NoError(e.t, err)
	var out []string
	for _, m := range acts.Messages {
		out = append(out, m.Body)
	}
	return out
}

func (e *env) move(id string) *entity.StockMove {
	e.t.Helper()
	var out *entity.StockMove
	require.NoError(e.t, e.store.Run(e.ctx, func(r ports.Repos) error {
		var err error
		out, err = r.Moves.GetByID(e.ctx, id)
		return err
	}))
	require.NotNil(e.t, out)
	return out
}

func totalQty(p dto.PickingResponse) decimal.Decimal {
	total := decimal.Zero
	for _, m := range p.Moves {
		if m.State != entity.MoveStateCancel {
			total = total.Add(m.ProductUoMQty)
		}
	}
	return total
}
