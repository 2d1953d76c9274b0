package purchase_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/ports"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Creación y confirmación
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_DefaultsDesdeProductoYCompania(t *testing.T) {
	e := newEnv(t)
	o := e.order("10")

	assert.Equal(t, "P00001", o.Name)
	assert.Equal(t, entity.PurchaseStateDraft, o.State)
	assert.Equal(t, "COP", o.CurrencyID)
	assertDecimal(t, "1000", o.AmountUntaxed)
	require.Len(t, o.Lines, 1)
	l := o.Lines[0]
	assert.Equal(t, "Tornillo M8", l.Name)
	assert.Equal(t, memory.UoMUnit, l.ProductUoMID)
	require.NotNil(t, l.DatePlanned)
	assert.Empty(t, e.pickings(o.ID), "un borrador no genera recepciones")
}

func TestCreateOrder_Validaciones(t *testing.T) {
	e := newEnv(t)
	_, err := e.uc.CreateOrder(e.ctx, company, buyer, dto.CreatePurchaseOrderRequest{
		PartnerID: memory.DemoVendorID,
		Lines:     []dto.PurchaseLineRequest{{ProductID: memory.ProductBolt, ProductQty: dec("0"), PriceUnit: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.uc.CreateOrder(e.ctx, "otra-compania", buyer, dto.CreatePurchaseOrderRequest{PartnerID: memory.DemoVendorID})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = e.uc.CreateOrder(e.ctx, company, buyer, dto.CreatePurchaseOrderRequest{
		PartnerID: memory.DemoVendorID,
		Lines:     []dto.PurchaseLineRequest{{ProductID: "no-existe", ProductQty: dec("1"), PriceUnit: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConfirm_CreaLaRecepcion(t *testing.T) {
	e := newEnv(t)
	o := e.confirmed("10")

	assert.Equal(t, 1, o.PickingCount)
	assert.False(t, o.IsShipped)
	require.NotNil(t, o.DateApprove)

	p := e.receipt(o.ID)
	assert.Equal(t, "WH/IN/00001", p.Name)
	assert.Equal(t, o.Name, p.Origin)
	assert.Equal(t, memory.LocSupplier, p.LocationID)
	assert.Equal(t, memory.LocStock, p.LocationDestID)
	assert.Equal(t, entity.PickingStateAssigned, p.State, "desde proveedor se reserva en el acto")
	require.Len(t, p.Moves, 1)
	m := p.Moves[0]
	assertDecimal(t, "10", m.ProductUoMQty)
	assertDecimal(t, "100", m.PriceUnit)
	assert.Equal(t, o.Lines[0].ID, m.PurchaseLineID)

	assert.Contains(t, e.messages(o.ID), "Este traslado se creó desde P00001")
}

func TestConfirm_DobleValidacion(t *testing.T) {
	e := newEnv(t)
	e.store.PutCompany(&entity.Company{ID: company, CurrencyID: "COP", PODoubleValidation: true, POApprovalAmount: dec("500")})

	o := e.order("10")
	out, err := e.uc.Confirm(e.ctx, company, buyer, entity.RoleComprador, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStateToApprove, out.State)
	assert.Empty(t, e.pickings(o.ID))

	out, err = e.uc.Approve(e.ctx, company, "gerente", o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatePurchase, out.State)
	assert.Equal(t, 1, out.PickingCount)

	admin := e.order("10")
	out, err = e.uc.Confirm(e.ctx, company, "admin", entity.RoleAdmin, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatePurchase, out.State, "el administrador aprueba al confirmar")

	small := e.order("2")
	out, err = e.uc.Confirm(e.ctx, company, buyer, entity.RoleComprador, small.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatePurchase, out.State, "por debajo del monto no requiere aprobación")
}

func TestConfirm_DropshipRecibeDelProveedorHaciaElCliente(t *testing.T) {
	e := newEnv(t)
	o, err := e.uc.CreateOrder(e.ctx, company, buyer, dto.CreatePurchaseOrderRequest{
		PartnerID:     memory.DemoVendorID,
		DestAddressID: memory.DemoCustomerID,
		Lines: []dto.PurchaseLineRequest{
			{ProductID: memory.ProductBolt, ProductQty: dec("4"), PriceUnit: dec("100")},
		},
	})
	require.NoError(t, err)
	_, err = e.uc.Confirm(e.ctx, company, buyer, entity.RoleComprador, o.ID)
	require.NoError(t, err)

	p := e.receipt(o.ID)
	assert.Equal(t, memory.DemoVendorID, p.PartnerID, "el tercero del picking es siempre el proveedor")
	assert.Equal(t, memory.LocCustomer, p.LocationDestID, "la dirección de entrega solo elige el destino")
}

func TestConfirm_ProveedorSinUbicacionFallaYNoCambiaNada(t *testing.T) {
	e := newEnv(t)
	o := e.order("10")
	e.store.PutPartner(&entity.Partner{ID: memory.DemoVendorID, CompanyID: company, Name: "Aceros del Valle SAS"})

	_, err := e.uc.Confirm(e.ctx, company, buyer, entity.RoleComprador, o.ID)
	assertUserError(t, err, domain.CodeMissingVendorLoc)
	assert.Equal(t, entity.PurchaseStateDraft, e.get(o.ID).State, "la transacción se revierte")
}

func TestTransiciones(t *testing.T) {
	e := newEnv(t)
	o := e.order("1")

	out, err := e.uc.MarkSent(e.ctx, company, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStateSent, out.State)

	_, err = e.uc.Lock(e.ctx, company, o.ID)
	assertUserError(t, err, domain.CodeInvalidTransition)

	_, err = e.uc.Confirm(e.ctx, company, buyer, entity.RoleComprador, o.ID)
	require.NoError(t, err)
	out, err = e.uc.Lock(e.ctx, company, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStateDone, out.State)

	_, err = e.uc.UpdateLineQuantity(e.ctx, company, o.ID, o.Lines[0].ID, dec("3"))
	assertUserError(t, err, domain.CodeInvalidTransition)

	out, err = e.uc.Unlock(e.ctx, company, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatePurchase, out.State)

	_, err = e.uc.ResetToDraft(e.ctx, company, o.ID)
	assertUserError(t, err, domain.CodeInvalidTransition)

	_, err = e.uc.GetOrder(e.ctx, "otra-compania", o.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = e.uc.GetOrder(e.ctx, company, "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestListOrders_Pagina(t *testing.T) {
	e := newEnv(t)
	for i := 0; i < 3; i++ {
		e.order("1")
	}
	out, err := e.uc.ListOrders(e.ctx, company, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, 2, out.Page.Limit)

	out, err = e.uc.ListOrders(e.ctx, company, dto.PageRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, out.Items, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recepción y devoluciones
// ──────────────────────────────────────────────────────────────────────────────

func TestValidar_ActualizaRecibidoExistenciasYCosto(t *testing.T) {
	e := newEnv(t)
	o := e.confirmed("10")
	p := e.validate(e.receipt(o.ID).ID)
	assert.Equal(t, entity.PickingStateDone, p.State)

	got := e.get(o.ID)
	assertDecimal(t, "10", got.Lines[0].QtyReceived)
	assert.True(t, got.IsShipped)
	require.NotNil(t, got.EffectiveDate)
	assert.Equal(t, now, *got.EffectiveDate)

	require.NoError(t, e.store.Run(e.ctx, func(r ports.Repos) error {
		q, err := r.Stock.Get(e.ctx, memory.ProductBolt, memory.LocStock)
		require.NoError(t, err)
		require.NotNil(t, q)
		assertDecimal(t, "10", q.Quantity)
		prod, _ := r.Products.GetByID(e.ctx, memory.ProductBolt)
		assertDecimal(t, "100", prod.Cost)
		return nil
	}))

	assert.Contains(t, e.messages(o.ID), "Cantidad recibida de Tornillo M8: 0 → 10")
}

func TestDisminuirBajoRecibidoFalla(t *testing.T) {
	e := newEnv(t)
	o := e.confirmed("10")
	e.validate(e.receipt(o.ID).ID)

	_, err := e.uc.UpdateLineQuantity(e.ctx, company, o.ID, o.Lines[0].ID, dec("5"))
	assertUserError(t, err, domain.CodeQtyBelowReceived)
	assertDecimal(t, "10", e.get(o.ID).Lines[0].ProductQty, "la línea no cambia")
}

func TestDevolucionConReembolso_DescuentaYSeVuelveAPedir(t *testing.T) {
	e := newEnv(t)
	o := e.confirmed("10")
	in := e.validate(e.receipt(o.ID).ID)

	ret, err := e.inv.ReturnPicking(e.ctx, company, buyer, in.ID, dto.ReturnPickingRequest{
		Lines:    []dto.ReturnLineRequest{{MoveID: in.Moves[0].ID, Quantity: dec("3")}},
		ToRefund: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "WH/RET/00001", ret.Name)
	assert.Equal(t, memory.LocSupplier, ret.LocationDestID)
	assert.Equal(t, entity.PickingStateAssigned, ret.State)
	require.Len(t, ret.Moves, 1)
	assert.Equal(t, in.Moves[0].ID, ret.Moves[0].OriginReturnedMoveID)
	assert.True(t, ret.Moves[0].ToRefund)

	got := e.get(o.ID)
	assertDecimal(t, "10", got.Lines[0].QtyReceived, "la devolución aún no está hecha")
	assert.Equal(t, 2, got.PickingCount)
	assert.False(t, got.IsShipped)

	e.validate(ret.ID)
	got = e.get(o.ID)
	assertDecimal(t, "7", got.Lines[0].QtyReceived)
	assert.True(t, got.IsShipped)

	got, err = e.uc.UpdateLineQuantity(e.ctx, company, o.ID, o.Lines[0].ID, dec("12"))
	require.NoError(t, err)
	assert.Equal(t, 3, got.PickingCount)
	p := e.receipt(o.ID)
	assert.Equal(t, "WH/IN/00002", p.Name)
	assertDecimal(t, "5", totalQty(p), "12 pedidas - (10 recibidas - 3 reembolsadas)")
}

func TestDevolucionSinReembolsoNoDescuenta(t *testing.T) {
	e := newEnv(t)
	o := e.confirmed("10")
	in := e.validate(e.receipt(o.ID).ID)

	ret, err := e.inv.ReturnPicking(e.ctx, company, buyer, in.ID, dto.ReturnPickingRequest{})
	require.NoError(t, err)
	assertDecimal(t, "10", totalQty(*ret), "sin líneas se devuelve todo")
	e.validate(ret.ID)

	assertDecimal(t, "10", e.get(o.ID).Lines[0].QtyReceived)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cambios de línea
// ──────────────────────────────────────────────────────────────────────────────

func TestAumentoSeAgregaALaRecepcionAbierta(t *testing.T) {
	e := newEnv(t)
	o := e.confirmed("10")

	got, err := e.uc.UpdateLineQuantity(e.ctx, company, o.ID, o.Lines[0].ID, dec("15"))
	require.NoError(t, err)
	assert.Equal(t, 1, got.PickingCount)
	p := e.receipt(o.ID)
	require.Len(t, p.Moves, 2)
	assertDecimal(t, "15", totalQty(p))
}

func TestAgregarLineaAPedidoConfirmado(t *testing.T) {
	e := newEnv(t)
	o := e.confirmed("10")

	got, err := e.uc.AddLine(e.ctx, company, o.ID, dto.PurchaseLineRequest{ProductID: memory.ProductBolt, ProductQty: dec("2"), ProductUoMID: memory.UoMDozen, PriceUnit: dec("1200")})
	require.NoError(t, err)
	require.Len(t, got.Lines, 2)
	assert.Equal(t, 20, got.Lines[1].Sequence)

	p := e.receipt(o.ID)
	require.Len(t, p.Moves, 2)
	m := p.Moves[1]
	assert.Equal(t, memory.UoMUnit, m.ProductUoMID, "se convierte a la UoM del producto")
	assertDecimal(t, "24", m.ProductUoMQty)
	assertDecimal(t, "100", m.PriceUnit)

	_, err = e.uc.AddLine(e.ctx, company, o.ID, dto.PurchaseLineRequest{ProductID: memory.ProductService, ProductQty: dec("1"), PriceUnit: dec("50")})
	require.NoError(t, err)
	assert.Len(t, e.receipt(o.ID).Moves, 2, "los servicios no generan movimientos")
}

func TestDisminucionDejaNotaDeExcepcion(t *testing.T) {
	e := newEnv(t)
	o := e.confirmed("10")
	p := e.receipt(o.ID)

	_, err := e.uc.UpdateLineQuantity(e.ctx, company, o.ID, o.Lines[0].ID, dec("6"))
	require.NoError(t, err)

	acts := e.activities(entity.ResModelPicking, p.ID)
	require.Len(t, acts, 1)
	a := acts[0]
	assert.Equal(t, entity.ActivityTypeException, a.ActivityType)
	assert.Equal(t, memory.ResponsibleID, a.UserID)
	assert.Equal(t, "Excepciones en el pedido de compra P00001. Puede requerir acciones manuales.\n- Tornillo M8: 6.00 Unidades en lugar de 10.00 Unidades", a.Note)
	assertDecimal(t, "10", totalQty(e.receipt(o.ID)), "no se crean movimientos negativos")
}

func TestDisminucionBajoFacturadoAvisaEnLaFactura(t *testing.T) {
	e := newEnv(t)
	o := e.confirmed("10")
	bill, err := e.uc.CreateBill(e.ctx, company, dto.CreateVendorBillRequest{
		PartnerID: memory.DemoVendorID, MoveType: entity.BillTypeInvoice, Post: true,
		Lines: []dto.VendorBillLineRequest{{PurchaseLineID: o.Lines[0].ID, Quantity: dec("8"), PriceUnit: dec("100")}},
	})
	require.NoError(t, err)
	assertDecimal(t, "8", e.get(o.ID).Lines[0].QtyInvoiced)

	_, err = e.uc.UpdateLineQuantity(e.ctx, company, o.ID, o.Lines[0].ID, dec("6"))
	require.NoError(t, err)

	acts := e.activities(entity.ResModelVendorBill, bill.ID)
	require.Len(t, acts, 1)
	assert.Equal(t, entity.ActivityTypeWarning, acts[0].ActivityType)
	assert.Equal(t, buyer, acts[0].UserID)
}

func TestFechaPrevistaActualizaFechaLimite(t *testing.T) {
	e := newEnv(t)
	lead := 2
	e.store.PutPartner(&entity.Partner{ID: memory.DemoVendorID, CompanyID: company, Name: "Aceros", PropertyStockSupplierID: memory.LocSupplier, PurchaseLeadDays: &lead})
	o := e.confirmed("10")
	moveID := e.receipt(o.ID).Moves[0].ID

	planned := now.AddDate(0, 0, 7)
	_, err := e.uc.UpdateLineDatePlanned(e.ctx, company, o.ID, o.Lines[0].ID, planned)
	require.NoError(t, err)

	m := e.move(moveID)
	require.NotNil(t, m.DateDeadline)
	assert.Equal(t, planned.AddDate(0, 0, 2), *m.DateDeadline)
}

// ──────────────────────────────────────────────────────────────────────────────
// Facturas
// ──────────────────────────────────────────────────────────────────────────────

func TestFacturas_PublicadasMenosNotasCredito(t *testing.T) {
	e := newEnv(t)
	o := e.confirmed("10")
	lineID := o.Lines[0].ID

	bill, err := e.uc.CreateBill(e.ctx, company, dto.CreateVendorBillRequest{
		PartnerID: memory.DemoVendorID, MoveType: entity.BillTypeInvoice,
		Lines: []dto.VendorBillLineRequest{{PurchaseLineID: lineID, Quantity: dec("4"), PriceUnit: dec("100")}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BillStateDraft, bill.State)
	assertDecimal(t, "0", e.get(o.ID).Lines[0].QtyInvoiced, "el borrador no cuenta")

	_, err = e.uc.PostBill(e.ctx, company, bill.ID)
	require.NoError(t, err)
	_, err = e.uc.CreateBill(e.ctx, company, dto.CreateVendorBillRequest{
		PartnerID: memory.DemoVendorID, MoveType: entity.BillTypeRefund, Post: true,
		Lines: []dto.VendorBillLineRequest{{PurchaseLineID: lineID, Quantity: dec("1"), PriceUnit: dec("100")}},
	})
	require.NoError(t, err)
	assertDecimal(t, "3", e.get(o.ID).Lines[0].QtyInvoiced)

	_, err = e.uc.PostBill(e.ctx, company, bill.ID)
	assertUserError(t, err, domain.CodeInvalidTransition)

	_, err = e.uc.CancelBill(e.ctx, company, bill.ID)
	require.NoError(t, err)
	assertDecimal(t, "-1", e.get(o.ID).Lines[0].QtyInvoiced)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancelación
// ──────────────────────────────────────────────────────────────────────────────

func TestCancelar_ConRecepcionHechaFalla(t *testing.T) {
	e := newEnv(t)
	o := e.confirmed("10")
	e.validate(e.receipt(o.ID).ID)

	_, err := e.uc.Cancel(e.ctx, company, o.ID)
	assertUserError(t, err, domain.CodeCancelDoneReceipt)
	assert.Equal(t, entity.PurchaseStatePurchase, e.get(o.ID).State)
}

func TestCancelar_ConFacturaPublicadaFalla(t *testing.T) {
	e := newEnv(t)
	o := e.confirmed("10")
	_, err := e.uc.CreateBill(e.ctx, company, dto.CreateVendorBillRequest{
		PartnerID: memory.DemoVendorID, MoveType: entity.BillTypeInvoice, Post: true,
		Lines: []dto.VendorBillLineRequest{{PurchaseLineID: o.Lines[0].ID, Quantity: dec("1"), PriceUnit: dec("100")}},
	})
	require.NoError(t, err)

	_, err = e.uc.Cancel(e.ctx, company, o.ID)
	assertUserError(t, err, domain.CodeInvalidTransition)
}

func TestCancelar_SoloDesdeEstadosAbiertos(t *testing.T) {
	e := newEnv(t)
	o := e.confirmed("10")
	got, err := e.uc.Cancel(e.ctx, company, o.ID)
	require.NoError(t, err)
	updatedAt := got.UpdatedAt

	_, err = e.uc.Cancel(e.ctx, company, o.ID)
	assertUserError(t, err, domain.CodeInvalidTransition)
	assert.Equal(t, updatedAt, e.get(o.ID).UpdatedAt, "un pedido cancelado no se vuelve a procesar")

	locked := e.confirmed("5")
	_, err = e.uc.Lock(e.ctx, company, locked.ID)
	require.NoError(t, err)
	_, err = e.uc.Cancel(e.ctx, company, locked.ID)
	assertUserError(t, err, domain.CodeInvalidTransition)
	assert.Equal(t, entity.PurchaseStateDone, e.get(locked.ID).State)
}

func TestCancelar_CancelaMovimientosYRecepcion(t *testing.T) {
	e := newEnv(t)
	o := e.confirmed("10")
	p := e.receipt(o.ID)

	got, err := e.uc.Cancel(e.ctx, company, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStateCancel, got.State)
	assert.Equal(t, entity.MoveStateCancel, e.move(p.Moves[0].ID).State)
	for _, pk := range e.pickings(o.ID) {
		assert.Equal(t, entity.PickingStateCancel, pk.State)
	}

	got, err = e.uc.ResetToDraft(e.ctx, company, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStateDraft, got.State)
	got, err = e.uc.Confirm(e.ctx, company, buyer, entity.RoleComprador, o.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.PickingCount, "la recepción cancelada no se reutiliza")
	assertDecimal(t, "10", totalQty(e.receipt(o.ID)))
}

// seedDelivery crea una entrega a cliente que espera la línea de compra.
func seedDelivery(t *testing.T, e *env, lineID string) string {
	t.Helper()
	moveID := "move-entrega"
	require.NoError(t, e.store.Run(e.ctx, func(r ports.Repos) error {
		if err := r.Pickings.Create(e.ctx, &entity.Picking{
			ID: "pk-entrega", CompanyID: company, Name: "WH/OUT/00001", PickingTypeID: memory.PickingTypeOut,
			LocationID: memory.LocStock, LocationDestID: memory.LocCustomer, State: entity.PickingStateWaiting, Date: now,
		}); err != nil {
			return err
		}
		return r.Moves.Create(e.ctx, &entity.StockMove{
			ID: moveID, CompanyID: company, Name: "Tornillo M8", ProductID: memory.ProductBolt,
			ProductUoMQty: decimal.NewFromInt(10), ProductQty: decimal.NewFromInt(10), ProductUoMID: memory.UoMUnit,
			State: entity.MoveStateWaiting, ProcureMethod: entity.ProcureMakeToOrder,
			LocationID: memory.LocStock, LocationDestID: memory.LocCustomer, PickingID: "pk-entrega",
			WarehouseID: memory.DemoWarehouseID, CreatedPurchaseLineID: lineID, Date: now,
		})
	}))
	return moveID
}

func TestCancelar_PropagaALaEntregaAguasAbajo(t *testing.T) {
	e := newEnv(t)
	o := e.order("10")
	deliveryID := seedDelivery(t, e, o.Lines[0].ID)
	_, err := e.uc.Confirm(e.ctx, company, buyer, entity.RoleComprador, o.ID)
	require.NoError(t, err)

	in := e.receipt(o.ID).Moves[0]
	assert.Equal(t, []string{in.ID}, e.move(deliveryID).MoveOrigIDs, "enlace en ambos extremos")

	_, err = e.uc.Cancel(e.ctx, company, o.ID)
	require.NoError(t, err)
	d := e.move(deliveryID)
	assert.Equal(t, entity.MoveStateCancel, d.State)
	assert.Empty(t, d.CreatedPurchaseLineID)
}

func TestCancelar_SinPropagacionDesacoplaLaEntrega(t *testing.T) {
	e := newEnv(t)
	noPropagate := false
	o, err := e.uc.CreateOrder(e.ctx, company, buyer, dto.CreatePurchaseOrderRequest{
		PartnerID: memory.DemoVendorID,
		Lines: []dto.PurchaseLineRequest{
			{ProductID: memory.ProductBolt, ProductQty: dec("10"), PriceUnit: dec("100"), PropagateCancel: &noPropagate},
		},
	})
	require.NoError(t, err)
	deliveryID := seedDelivery(t, e, o.Lines[0].ID)
	_, err = e.uc.Confirm(e.ctx, company, buyer, entity.RoleComprador, o.ID)
	require.NoError(t, err)

	_, err = e.uc.Cancel(e.ctx, company, o.ID)
	require.NoError(t, err)
	d := e.move(deliveryID)
	assert.Equal(t, entity.MoveStateConfirmed, d.State)
	assert.Equal(t, entity.ProcureMakeToStock, d.ProcureMethod)
	assert.Empty(t, d.MoveOrigIDs)
	assert.Empty(t, d.CreatedPurchaseLineID)
}

func TestValidar_LiberaLaEntregaAguasAbajo(t *testing.T) {
	e := newEnv(t)
	o := e.order("10")
	deliveryID := seedDelivery(t, e, o.Lines[0].ID)
	_, err := e.uc.Confirm(e.ctx, company, buyer, entity.RoleComprador, o.ID)
	require.NoError(t, err)

	e.validate(e.receipt(o.ID).ID)
	assert.Equal(t, entity.MoveStateAssigned, e.move(deliveryID).State)

	out, err := e.inv.GetPicking(e.ctx, company, "pk-entrega")
	require.NoError(t, err)
	assert.Equal(t, entity.PickingStateAssigned, out.State)
}
