package inventory

import (
	"context"

	"github.com/jhoicas/Compras-api/internal/application/ports"
)

// OrderRecomputer recalcula los pedidos de compra afectados por movimientos
// validados o devueltos, dentro de la misma transacción que los movió.
type OrderRecomputer interface {
	RecomputeOrders(ctx context.Context, r ports.Repos, orderIDs []string) error
}
