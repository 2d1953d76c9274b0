package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Compras-api/internal/application/auth"
	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/inventory"
	"github.com/jhoicas/Compras-api/internal/application/purchase"
	"github.com/jhoicas/Compras-api/internal/application/sales"
	"github.com/jhoicas/Compras-api/internal/application/usecase"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/infrastructure/memory"
	"github.com/jhoicas/Compras-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Compras-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Compras-api/pkg/jwt"
)

// apiApp levanta el router completo sobre el almacén en memoria con datos demo.
func apiApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	store.SeedDemo()
	log := zerolog.Nop()

	purchaseUC := purchase.NewUseCase(store, purchase.Config{}, log)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     auth.NewAuthUseCase(store.Users(), store, testSigner(t), log),
		CompanyUC:  usecase.NewCompanyUseCase(store, "COP", log),
		PurchaseUC: purchaseUC,
		PickingUC:  inventory.NewUseCase(store, purchaseUC, log),
		SalesUC:    sales.NewUseCase(store, store.SaleOrders(), store.Users(), pdf.NewMarotoPDFGenerator(), "es", log),
		Tokens:     testSigner(t),
		Log:        log,
	})
	return app
}

// bearer token de la compañía demo con el rol indicado.
func bearer(t *testing.T, role string) string {
	t.Helper()
	tok, _, err := testSigner(t).Sign(pkgjwt.Session{UserID: testUserID, CompanyID: memory.DemoCompanyID, Role: role})
	require.NoError(t, err)
	return "Bearer " + tok
}

func call(t *testing.T, app *fiber.App, method, path, authHeader string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func orderBody(qty int) fiber.Map {
	return fiber.Map{
		"partner_id": memory.DemoVendorID,
		"lines": []fiber.Map{
			{"product_id": memory.ProductBolt, "product_qty": qty, "price_unit": 100},
		},
	}
}

func TestRouter_FlujoCompraRecepcion(t *testing.T) {
	app := apiApp(t)
	buyer := bearer(t, entity.RoleComprador)

	resp := call(t, app, http.MethodPost, "/api/purchase-orders/", buyer, orderBody(10))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var order dto.PurchaseOrderResponse
	decode(t, resp, &order)
	assert.Equal(t, entity.PurchaseStateDraft, order.State)
	require.Len(t, order.Lines, 1)

	resp = call(t, app, http.MethodPost, "/api/purchase-orders/"+order.ID+"/confirm", buyer, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decode(t, resp, &order)
	assert.Equal(t, entity.PurchaseStatePurchase, order.State)
	assert.Equal(t, 1, order.PickingCount)

	resp = call(t, app, http.MethodGet, "/api/purchase-orders/"+order.ID+"/pickings", buyer, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var pickings []dto.PickingResponse
	decode(t, resp, &pickings)
	require.Len(t, pickings, 1)
	require.Len(t, pickings[0].Moves, 1)
	assert.Equal(t, "10", pickings[0].Moves[0].ProductUoMQty.String())

	// El comprador no valida recepciones.
	resp = call(t, app, http.MethodPost, "/api/pickings/"+pickings[0].ID+"/validate", buyer, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/pickings/"+pickings[0].ID+"/validate", bearer(t, entity.RoleBodeguero), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var done dto.PickingResponse
	decode(t, resp, &done)
	assert.Equal(t, entity.PickingStateDone, done.State)

	resp = call(t, app, http.MethodGet, "/api/purchase-orders/"+order.ID, buyer, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decode(t, resp, &order)
	assert.Equal(t, "10", order.Lines[0].QtyReceived.String())
	assert.True(t, order.IsShipped)

	// Bajar la cantidad por debajo de lo recibido es un error de negocio.
	resp = call(t, app, http.MethodPatch, "/api/purchase-orders/"+order.ID+"/lines/"+order.Lines[0].ID, buyer, fiber.Map{"product_qty": 5})
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	var apiErr dto.ErrorResponse
	decode(t, resp, &apiErr)
	assert.Equal(t, domain.CodeQtyBelowReceived, apiErr.Code)

	// Devolución total: baja lo recibido de la línea.
	resp = call(t, app, http.MethodPost, "/api/pickings/"+done.ID+"/return", bearer(t, entity.RoleBodeguero), nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var ret dto.PickingResponse
	decode(t, resp, &ret)
	require.Len(t, ret.Moves, 1)
	assert.Equal(t, done.Moves[0].ID, ret.Moves[0].OriginReturnedMoveID)
}

func TestRouter_TransicionInvalida_Retorna422(t *testing.T) {
	app := apiApp(t)
	buyer := bearer(t, entity.RoleComprador)

	resp := call(t, app, http.MethodPost, "/api/purchase-orders/", buyer, orderBody(1))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var order dto.PurchaseOrderResponse
	decode(t, resp, &order)

	resp = call(t, app, http.MethodPost, "/api/purchase-orders/"+order.ID+"/lock", buyer, nil)
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	var apiErr dto.ErrorResponse
	decode(t, resp, &apiErr)
	assert.Equal(t, domain.CodeInvalidTransition, apiErr.Code)

	resp = call(t, app, http.MethodPost, "/api/purchase-orders/"+order.ID+"/explode", buyer, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRouter_Validaciones(t *testing.T) {
	app := apiApp(t)
	buyer := bearer(t, entity.RoleComprador)

	resp := call(t, app, http.MethodPost, "/api/purchase-orders/", buyer, fiber.Map{"lines": []fiber.Map{}})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var apiErr dto.ErrorResponse
	decode(t, resp, &apiErr)
	assert.Equal(t, "VALIDATION", apiErr.Code)
	assert.Equal(t, "partner_id", apiErr.Field)

	resp = call(t, app, http.MethodGet, "/api/purchase-orders/?limit=500", buyer, nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	decode(t, resp, &apiErr)
	assert.Equal(t, "limit", apiErr.Field)

	resp = call(t, app, http.MethodGet, "/api/purchase-orders/no-existe", buyer, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRouter_RolesYSesion(t *testing.T) {
	app := apiApp(t)

	resp := call(t, app, http.MethodGet, "/api/purchase-orders/", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/purchase-orders/", bearer(t, entity.RoleVendedor), nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/sale-orders/"+memory.DemoSaleOrderID+"/document", bearer(t, entity.RoleComprador), nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/purchase-orders/", bearer(t, entity.RoleAdmin), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRouter_DocumentoVenta(t *testing.T) {
	app := apiApp(t)
	seller := bearer(t, entity.RoleVendedor)

	resp := call(t, app, http.MethodGet, "/api/sale-orders/"+memory.DemoSaleOrderID+"/document?lang=de", seller, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var doc dto.SaleDocumentResponse
	decode(t, resp, &doc)
	assert.Equal(t, "de", doc.Lang)
	assert.Equal(t, "Angebot", doc.Title)

	resp = call(t, app, http.MethodGet, "/api/sale-orders/"+memory.DemoSaleOrderID+"/pdf", seller, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "attachment;")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	resp = call(t, app, http.MethodGet, "/api/sale-orders/no-existe/document", seller, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRouter_RegistroYLogin(t *testing.T) {
	app := apiApp(t)
	creds := fiber.Map{
		"email":      "compras@ferreteria.test",
		"password":   "secreto-123",
		"company_id": memory.DemoCompanyID,
		"name":       "Compras",
		"role":       entity.RoleComprador,
	}

	resp := call(t, app, http.MethodPost, "/api/auth/register", "", creds)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/auth/register", "", creds)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": "compras@ferreteria.test", "password": "otra-clave"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": "compras@ferreteria.test", "password": "secreto-123"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var login dto.LoginResponse
	decode(t, resp, &login)
	require.NotEmpty(t, login.Token)
	assert.False(t, login.ExpiresAt.IsZero())
	assert.Equal(t, entity.RoleComprador, login.User.Role)

	// El token emitido abre las rutas de compras.
	resp = call(t, app, http.MethodGet, "/api/purchase-orders/", "Bearer "+login.Token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRouter_EmpresaYParametrosDeCompras(t *testing.T) {
	app := apiApp(t)

	resp := call(t, app, http.MethodPost, "/api/companies", "", fiber.Map{"name": "Metales SAS", "nit": "901000111"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var created dto.CompanyResponse
	decode(t, resp, &created)
	assert.Equal(t, "COP", created.CurrencyID)

	assert.Equal(t, "901000111-8", created.NIT)

	resp = call(t, app, http.MethodPost, "/api/companies", "", fiber.Map{"name": "Sin NIT"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/companies", "", fiber.Map{"name": "DV errado", "nit": "901000111-5"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/companies/me", bearer(t, entity.RoleComprador), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var me dto.CompanyResponse
	decode(t, resp, &me)
	assert.Equal(t, memory.DemoCompanyID, me.ID)

	settings := fiber.Map{"po_lead_days": 2, "po_double_validation": true}
	resp = call(t, app, http.MethodPatch, "/api/companies/me/purchase-settings", bearer(t, entity.RoleComprador), settings)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodPatch, "/api/companies/me/purchase-settings", bearer(t, entity.RoleAdmin), settings)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decode(t, resp, &me)
	assert.Equal(t, 2, me.POLeadDays)
	assert.True(t, me.PODoubleValidation)
}
