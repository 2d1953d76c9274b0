package purchase

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// ReceivedQuantity calcula la cantidad recibida de la línea plegando sus
// movimientos (mismo producto, no cancelados, no desechados) en la UoM de la línea.
// Reglas por movimiento, en orden:
//  1. si no está done no cuenta todavía;
//  2. destino proveedor: resta si está marcado para reembolso, si no se ignora;
//  3. devolución de un drop-ship que no volvió al proveedor: se ignora
//     (la recepción ya quedó representada por el drop-ship);
//  4. destino interno, marcado para reembolso y fuera de la vista de su bodega: resta;
//  5. en otro caso suma.
//
// Es idempotente: con los mismos estados de movimiento devuelve el mismo total.
func ReceivedQuantity(s *Snapshot, line *entity.PurchaseOrderLine, policy DropshipPolicy) (decimal.Decimal, error) {
	if policy == nil {
		policy = UsageDropship{}
	}
	lineUoM := s.UoM(line.ProductUoMID)
	total := decimal.Zero
	for _, m := range s.LineMoves(line) {
		if m.ProductID != line.ProductID || m.IsCancelled() || m.Scrapped {
			continue
		}
		if !m.IsDone() {
			continue
		}
		qty, err := ComputeQuantity(m.ProductUoMQty, s.UoM(m.ProductUoMID), lineUoM, RoundUp)
		if err != nil {
			return decimal.Zero, err
		}
		dest := s.Location(m.LocationDestID)
		switch {
		case dest != nil && dest.Usage == entity.LocationUsageSupplier:
			if m.ToRefund {
				total = total.Sub(qty)
			}
		case isDropshipReturnToStock(s, m, policy):
			// La devolución entra a stock propio: no se cuenta dos veces.
		case dest != nil && dest.Usage == entity.LocationUsageInternal && m.ToRefund && !insideWarehouse(s, m, dest):
			total = total.Sub(qty)
		default:
			total = total.Add(qty)
		}
	}
	return total, nil
}

func isDropshipReturnToStock(s *Snapshot, m *entity.StockMove, policy DropshipPolicy) bool {
	if m.OriginReturnedMoveID == "" {
		return false
	}
	origin := s.Move(m.OriginReturnedMoveID)
	if origin == nil {
		return false
	}
	return policy.IsDropshipped(s, origin) && !policy.IsDropshippedReturned(s, m)
}

// insideWarehouse indica si dest cuelga de la ubicación vista de la bodega del movimiento.
// Un movimiento sin bodega se considera fuera.
func insideWarehouse(s *Snapshot, m *entity.StockMove, dest *entity.Location) bool {
	wh := s.Warehouses[m.WarehouseID]
	if wh == nil {
		return false
	}
	return dest.IsChildOf(s.Location(wh.ViewLocationID))
}
