package repository

import (
	"context"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// StockMoveRepository define el puerto de persistencia para movimientos de stock.
// Los enlaces MoveDestIDs / MoveOrigIDs se guardan tal como vienen en la entidad;
// el llamador mantiene ambos extremos coherentes.
type StockMoveRepository interface {
	Create(ctx context.Context, move *entity.StockMove) error
	Update(ctx context.Context, move *entity.StockMove) error
	GetByID(ctx context.Context, id string) (*entity.StockMove, error)
	ListByIDs(ctx context.Context, ids []string) ([]*entity.StockMove, error)
	ListByPicking(ctx context.Context, pickingID string) ([]*entity.StockMove, error)
	// ListByPurchaseLines movimientos con purchase_line_id en lineIDs.
	ListByPurchaseLines(ctx context.Context, lineIDs []string) ([]*entity.StockMove, error)
	// ListByCreatedPurchaseLines movimientos aguas abajo abastecidos por las líneas.
	ListByCreatedPurchaseLines(ctx context.Context, lineIDs []string) ([]*entity.StockMove, error)
	// ListReturnsOf devoluciones (origin_returned_move_id) de los movimientos dados.
	ListReturnsOf(ctx context.Context, moveIDs []string) ([]*entity.StockMove, error)
}
