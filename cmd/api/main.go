package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Compras-api/docs"
	"github.com/jhoicas/Compras-api/internal/application/auth"
	"github.com/jhoicas/Compras-api/internal/application/inventory"
	"github.com/jhoicas/Compras-api/internal/application/ports"
	"github.com/jhoicas/Compras-api/internal/application/purchase"
	"github.com/jhoicas/Compras-api/internal/application/sales"
	"github.com/jhoicas/Compras-api/internal/application/usecase"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
	"github.com/jhoicas/Compras-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Compras-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Compras-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Compras-api/internal/interfaces/http"
	"github.com/jhoicas/Compras-api/pkg/config"
	"github.com/jhoicas/Compras-api/pkg/jwt"
	"github.com/jhoicas/Compras-api/pkg/logger"
)

// storage puertos de persistencia según APP_STORAGE.
type storage struct {
	tx         ports.TxRunner
	users      repository.UserRepository
	saleOrders repository.SaleOrderRepository
	close      func()
}

// @title        Compras API
// @version      1.0
// @description  Pedidos de compra, recepciones, devoluciones, facturas de proveedor y documentos de venta.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer store.close()

	companyUC := usecase.NewCompanyUseCase(store.tx, cfg.App.DefaultCurrency, log.For("company"))
	purchaseUC := purchase.NewUseCase(store.tx, purchase.Config{
		DefaultLeadDays: cfg.Purchase.LeadDays,
		PropagateUoM:    cfg.Purchase.PropagateUoM,
	}, log.For("purchase"))
	pickingUC := inventory.NewUseCase(store.tx, purchaseUC, log.For("inventory"))
	salesUC := sales.NewUseCase(store.tx, store.saleOrders, store.users,
		infrapdf.NewMarotoPDFGenerator(), cfg.Doc.DefaultLang, log.For("sales"))
	tokens, err := jwt.NewSigner(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.Expiration)*time.Minute)
	if err != nil {
		log.Fatal().Err(err).Msg("firmador JWT")
	}
	authUC := auth.NewAuthUseCase(store.users, store.tx, tokens, log.For("auth"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	docs.SwaggerInfo.Host = cfg.HTTP.Addr()
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    docs.SwaggerInfo.Title,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.App.Storage})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CompanyUC:  companyUC,
		PurchaseUC: purchaseUC,
		PickingUC:  pickingUC,
		SalesUC:    salesUC,
		Tokens:     tokens,
		Log:        log.For("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStorage abre PostgreSQL (aplicando migraciones) o el almacén en memoria con datos demo.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.App.Storage == config.StorageMemory {
		mem := memory.NewStore()
		mem.SeedDemo()
		log.Warn().Str("company", memory.DemoCompanyID).Msg("almacén en memoria: los datos se pierden al reiniciar")
		return &storage{tx: mem, users: mem.Users(), saleOrders: mem.SaleOrders(), close: func() {}}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool, log.For("migrate")); err != nil {
		pool.Close()
		return nil, err
	}
	return &storage{
		tx:         postgres.NewTxRunner(pool),
		users:      postgres.NewUserRepository(pool),
		saleOrders: postgres.NewSaleOrderRepository(pool),
		close:      pool.Close,
	}, nil
}
