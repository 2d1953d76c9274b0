package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Compras-api/internal/application/auth"
	"github.com/jhoicas/Compras-api/internal/application/inventory"
	"github.com/jhoicas/Compras-api/internal/application/purchase"
	"github.com/jhoicas/Compras-api/internal/application/sales"
	"github.com/jhoicas/Compras-api/internal/application/usecase"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CompanyUC  *usecase.CompanyUseCase
	PurchaseUC *purchase.UseCase
	PickingUC  *inventory.UseCase
	SalesUC    *sales.UseCase
	Tokens     TokenVerifier
	Log        zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Alta de empresas (público: el primer usuario se registra después con su company_id)
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.Log)
	api.Post("/companies", companyHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.Tokens))
	buyers := RequireRole(entity.RoleAdmin, entity.RoleComprador)

	// Empresa de la sesión
	companies := protected.Group("/companies")
	companies.Get("/me", companyHandler.Me)
	companies.Patch("/me/purchase-settings", RequireRole(entity.RoleAdmin), companyHandler.UpdatePurchaseSettings)

	// Pedidos de compra
	orders := protected.Group("/purchase-orders", buyers)
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC, deps.Log)
	orders.Post("/", purchaseHandler.Create)
	orders.Get("/", purchaseHandler.List)
	orders.Get("/:id", purchaseHandler.Get)
	orders.Get("/:id/pickings", purchaseHandler.Pickings)
	orders.Get("/:id/activities", purchaseHandler.Activities)
	orders.Post("/:id/lines", purchaseHandler.AddLine)
	orders.Patch("/:id/lines/:lineId", purchaseHandler.UpdateLine)
	orders.Post("/:id/:action", purchaseHandler.Action)

	// Recepciones y devoluciones
	pickings := protected.Group("/pickings")
	pickingHandler := NewPickingHandler(deps.PickingUC, deps.Log)
	pickings.Get("/:id", RequireRole(entity.RoleAdmin, entity.RoleComprador, entity.RoleBodeguero), pickingHandler.Get)
	pickings.Post("/:id/validate", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), pickingHandler.Validate)
	pickings.Post("/:id/return", RequireRole(entity.RoleAdmin, entity.RoleBodeguero, entity.RoleComprador), pickingHandler.Return)

	// Facturas de proveedor
	bills := protected.Group("/vendor-bills", buyers)
	billHandler := NewVendorBillHandler(deps.PurchaseUC, deps.Log)
	bills.Post("/", billHandler.Create)
	bills.Post("/:id/post", billHandler.Post)
	bills.Post("/:id/cancel", billHandler.Cancel)

	// Documentos de venta
	saleOrders := protected.Group("/sale-orders", RequireRole(entity.RoleAdmin, entity.RoleVendedor))
	saleHandler := NewSaleHandler(deps.SalesUC, deps.Log)
	saleOrders.Get("/:id/document", saleHandler.Document)
	saleOrders.Get("/:id/pdf", saleHandler.PDF)
}
