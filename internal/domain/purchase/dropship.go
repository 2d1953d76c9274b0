package purchase

import "github.com/jhoicas/Compras-api/internal/domain/entity"

// DropshipPolicy decide si un movimiento es un drop-ship (proveedor → cliente)
// o la devolución de uno. Se inyecta para que otros módulos amplíen la regla.
type DropshipPolicy interface {
	IsDropshipped(s *Snapshot, m *entity.StockMove) bool
	IsDropshippedReturned(s *Snapshot, m *entity.StockMove) bool
}

// UsageDropship clasifica por el uso de las ubicaciones origen y destino.
type UsageDropship struct{}

// IsDropshipped proveedor → cliente.
func (UsageDropship) IsDropshipped(s *Snapshot, m *entity.StockMove) bool {
	return s.srcUsage(m) == entity.LocationUsageSupplier && s.destUsage(m) == entity.LocationUsageCustomer
}

// IsDropshippedReturned cliente → proveedor.
func (UsageDropship) IsDropshippedReturned(s *Snapshot, m *entity.StockMove) bool {
	return s.srcUsage(m) == entity.LocationUsageCustomer && s.destUsage(m) == entity.LocationUsageSupplier
}
