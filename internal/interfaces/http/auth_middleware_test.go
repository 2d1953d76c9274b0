package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Compras-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Compras-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "compras-api-test"
)

func testSigner(t *testing.T) *pkgjwt.Signer {
	t.Helper()
	s, err := pkgjwt.NewSigner(testJWTSecret, testIssuer, time.Hour)
	require.NoError(t, err)
	return s
}

// guardedApp ruta /protected detrás de AuthMiddleware + RequireRole que devuelve los locals.
func guardedApp(t *testing.T, roles ...string) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testSigner(t)),
		apphttp.RequireRole(roles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"user_id":    apphttp.GetUserID(c),
				"company_id": apphttp.GetCompanyID(c),
				"role":       apphttp.GetRole(c),
			})
		},
	)
	return app
}

func tokenFor(t *testing.T, role string) string {
	t.Helper()
	tok, _, err := testSigner(t).Sign(pkgjwt.Session{UserID: testUserID, CompanyID: testCompanyID, Role: role})
	require.NoError(t, err)
	return tok
}

func get(t *testing.T, app *fiber.App, authHeader string) (int, dto.ErrorResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body dto.ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body
}

func TestRequireRole_Matriz(t *testing.T) {
	cases := []struct {
		name    string
		allowed []string
		role    string
		want    int
	}{
		{"admin en ruta de compras", []string{entity.RoleAdmin, entity.RoleComprador}, entity.RoleAdmin, fiber.StatusOK},
		{"comprador en ruta de compras", []string{entity.RoleAdmin, entity.RoleComprador}, entity.RoleComprador, fiber.StatusOK},
		{"bodeguero en ruta de compras", []string{entity.RoleAdmin, entity.RoleComprador}, entity.RoleBodeguero, fiber.StatusForbidden},
		{"bodeguero valida recepciones", []string{entity.RoleAdmin, entity.RoleBodeguero}, entity.RoleBodeguero, fiber.StatusOK},
		{"vendedor en documentos de venta", []string{entity.RoleAdmin, entity.RoleVendedor}, entity.RoleVendedor, fiber.StatusOK},
		{"comprador en documentos de venta", []string{entity.RoleAdmin, entity.RoleVendedor}, entity.RoleComprador, fiber.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := get(t, guardedApp(t, tc.allowed...), "Bearer "+tokenFor(t, tc.role))
			assert.Equal(t, tc.want, status)
			if tc.want == fiber.StatusForbidden {
				assert.Equal(t, "FORBIDDEN", body.Code)
			}
		})
	}
}

func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	status, body := get(t, guardedApp(t, entity.RoleAdmin), "Bearer "+tokenFor(t, ""))
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_ROLE", body.Code)
}

func TestAuthMiddleware_CabecerasInvalidas(t *testing.T) {
	app := guardedApp(t, entity.RoleAdmin)
	otherIssuer, err := pkgjwt.NewSigner(testJWTSecret, "otro-emisor", time.Hour)
	require.NoError(t, err)
	foreign, _, err := otherIssuer.Sign(pkgjwt.Session{UserID: testUserID, CompanyID: testCompanyID, Role: entity.RoleAdmin})
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"sin cabecera", "", "MISSING_TOKEN"},
		{"sin esquema Bearer", tokenFor(t, entity.RoleAdmin), "INVALID_TOKEN"},
		{"token basura", "Bearer esto.no.es.jwt", "INVALID_TOKEN"},
		{"otro emisor", "Bearer " + foreign, "INVALID_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := get(t, app, tc.header)
			assert.Equal(t, fiber.StatusUnauthorized, status)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestAuthMiddleware_CargaLaSesionEnLocals(t *testing.T) {
	app := guardedApp(t, entity.RoleBodeguero)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "bearer "+tokenFor(t, entity.RoleBodeguero))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, testUserID, got["user_id"])
	assert.Equal(t, testCompanyID, got["company_id"])
	assert.Equal(t, entity.RoleBodeguero, got["role"])
}
