package purchase

import (
	"sort"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// Snapshot es el conjunto de registros ya cargados sobre el que operan los
// servicios de dominio de compras. Los servicios no consultan la base de datos:
// la capa de aplicación carga el snapshot, llama a funciones puras y persiste.
type Snapshot struct {
	Order       *entity.PurchaseOrder
	Company     *entity.Company
	Partner     *entity.Partner
	DestAddress *entity.Partner
	PickingType *entity.PickingType

	Products   map[string]*entity.Product
	UoMs       map[string]*entity.UoM
	Locations  map[string]*entity.Location
	Warehouses map[string]*entity.Warehouse
	Taxes      map[string]*entity.Tax
	Moves      map[string]*entity.StockMove
	Pickings   map[string]*entity.Picking
}

// NewSnapshot construye un snapshot vacío para order.
func NewSnapshot(order *entity.PurchaseOrder) *Snapshot {
	return &Snapshot{
		Order:      order,
		Products:   map[string]*entity.Product{},
		UoMs:       map[string]*entity.UoM{},
		Locations:  map[string]*entity.Location{},
		Warehouses: map[string]*entity.Warehouse{},
		Taxes:      map[string]*entity.Tax{},
		Moves:      map[string]*entity.StockMove{},
		Pickings:   map[string]*entity.Picking{},
	}
}

// AddMoves registra movimientos en el snapshot (reemplaza por ID).
func (s *Snapshot) AddMoves(moves ...*entity.StockMove) {
	for _, m := range moves {
		if m != nil {
			s.Moves[m.ID] = m
		}
	}
}

// Location devuelve la ubicación o nil.
func (s *Snapshot) Location(id string) *entity.Location { return s.Locations[id] }

// UoM devuelve la unidad de medida o nil.
func (s *Snapshot) UoM(id string) *entity.UoM { return s.UoMs[id] }

// Product devuelve el producto o nil.
func (s *Snapshot) Product(id string) *entity.Product { return s.Products[id] }

// Move devuelve el movimiento o nil.
func (s *Snapshot) Move(id string) *entity.StockMove { return s.Moves[id] }

// Picking devuelve el picking o nil.
func (s *Snapshot) Picking(id string) *entity.Picking { return s.Pickings[id] }

// LineMoves movimientos directos de la línea (purchase_line_id).
func (s *Snapshot) LineMoves(line *entity.PurchaseOrderLine) []*entity.StockMove {
	return s.filterMoves(func(m *entity.StockMove) bool { return m.PurchaseLineID == line.ID })
}

// LineDestMoves movimientos aguas abajo que la línea abastece (created_purchase_line_id).
func (s *Snapshot) LineDestMoves(line *entity.PurchaseOrderLine) []*entity.StockMove {
	return s.filterMoves(func(m *entity.StockMove) bool { return m.CreatedPurchaseLineID == line.ID })
}

// ReturnedMoves devoluciones de move (origin_returned_move_id = move).
func (s *Snapshot) ReturnedMoves(move *entity.StockMove) []*entity.StockMove {
	return s.filterMoves(func(m *entity.StockMove) bool { return m.OriginReturnedMoveID == move.ID })
}

// DestMoves movimientos enlazados aguas abajo de move que estén cargados.
func (s *Snapshot) DestMoves(move *entity.StockMove) []*entity.StockMove {
	out := make([]*entity.StockMove, 0, len(move.MoveDestIDs))
	for _, id := range move.MoveDestIDs {
		if m := s.Moves[id]; m != nil {
			out = append(out, m)
		}
	}
	sortMoves(out)
	return out
}

func (s *Snapshot) filterMoves(keep func(*entity.StockMove) bool) []*entity.StockMove {
	var out []*entity.StockMove
	for _, m := range s.Moves {
		if keep(m) {
			out = append(out, m)
		}
	}
	sortMoves(out)
	return out
}

// sortMoves orden estable: secuencia, fecha, ID.
func sortMoves(moves []*entity.StockMove) {
	sort.SliceStable(moves, func(i, j int) bool {
		a, b := moves[i], moves[j]
		if a.Sequence != b.Sequence {
			return a.Sequence < b.Sequence
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.ID < b.ID
	})
}

func (s *Snapshot) destUsage(m *entity.StockMove) string {
	if loc := s.Locations[m.LocationDestID]; loc != nil {
		return loc.Usage
	}
	return ""
}

func (s *Snapshot) srcUsage(m *entity.StockMove) string {
	if loc := s.Locations[m.LocationID]; loc != nil {
		return loc.Usage
	}
	return ""
}
