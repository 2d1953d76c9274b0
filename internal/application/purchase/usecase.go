package purchase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Compras-api/internal/application/ports"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	rules "github.com/jhoicas/Compras-api/internal/domain/purchase"
)

// Config parámetros de compras leídos de la configuración.
type Config struct {
	// DefaultLeadDays plazo de seguridad cuando ni proveedor ni compañía lo definen.
	DefaultLeadDays int
	// PropagateUoM mantiene la UoM de la línea en los movimientos generados.
	PropagateUoM bool
}

// UseCase ciclo de vida de pedidos de compra y su conciliación con el stock.
// Cada operación pública corre en una sola transacción (TxRunner).
type UseCase struct {
	tx       ports.TxRunner
	cfg      Config
	dropship rules.DropshipPolicy
	log      zerolog.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx ports.TxRunner, cfg Config, log zerolog.Logger) *UseCase {
	return &UseCase{
		tx:       tx,
		cfg:      cfg,
		dropship: rules.UsageDropship{},
		log:      log,
		now:      time.Now,
	}
}

// WithDropshipPolicy reemplaza la política de detección de drop-ship.
func (uc *UseCase) WithDropshipPolicy(p rules.DropshipPolicy) *UseCase {
	uc.dropship = p
	return uc
}

// WithClock fija el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// orderForUpdate bloquea el pedido y verifica que pertenezca a la compañía.
func orderForUpdate(ctx context.Context, r ports.Repos, companyID, id string) (*entity.PurchaseOrder, error) {
	order, err := r.Orders.GetForUpdate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get purchase order %s: %w", id, err)
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

func transitionError(order *entity.PurchaseOrder, action string) error {
	return domain.NewUserError(domain.CodeInvalidTransition,
		fmt.Sprintf("no se puede %s el pedido %s en estado %q", action, order.Name, order.State))
}
