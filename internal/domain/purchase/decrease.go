package purchase

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// MsgQtyBelowReceived mensaje mostrado al intentar pedir menos de lo recibido.
const MsgQtyBelowReceived = "No puede disminuir la cantidad pedida por debajo de la cantidad recibida.\nCree primero una devolución."

// MsgQtyBelowInvoiced nota de la actividad agendada sobre la factura de proveedor.
const MsgQtyBelowInvoiced = "Las cantidades del pedido de compra son menores que las facturadas. Debería solicitar una nota crédito."

// QuantityCheck resultado de validar la nueva cantidad pedida de una línea.
type QuantityCheck struct {
	BelowInvoiced bool
}

// CheckOrderedQuantity falla con UserError si la cantidad pedida queda por debajo
// de la recibida; informa si queda por debajo de la facturada (no es error).
func CheckOrderedQuantity(s *Snapshot, line *entity.PurchaseOrderLine) (QuantityCheck, error) {
	precision := precisionOf(s.UoM(line.ProductUoMID))
	if Compare(line.ProductQty, line.QtyReceived, precision) < 0 {
		return QuantityCheck{}, domain.NewUserError(domain.CodeQtyBelowReceived, MsgQtyBelowReceived)
	}
	return QuantityCheck{BelowInvoiced: Compare(line.ProductQty, line.QtyInvoiced, precision) < 0}, nil
}

// Decrease disminución de cantidad pedida en una línea.
type Decrease struct {
	Line   *entity.PurchaseOrderLine
	NewQty decimal.Decimal
	OldQty decimal.Decimal
}

// DetectDecreases compara las cantidades previas con las actuales de las líneas
// del pedido y devuelve las que bajaron (a la precisión de su UoM).
func DetectDecreases(s *Snapshot, before map[string]decimal.Decimal) []Decrease {
	var out []Decrease
	for _, line := range s.Order.Lines {
		old, ok := before[line.ID]
		if !ok || old.IsZero() {
			continue
		}
		if Compare(old, line.ProductQty, precisionOf(s.UoM(line.ProductUoMID))) > 0 {
			out = append(out, Decrease{Line: line, NewQty: line.ProductQty, OldQty: old})
		}
	}
	return out
}

// ExceptionGroup documentos afectados por disminuciones: un picking y el
// responsable de los productos, con las líneas implicadas y los pickings
// aguas abajo impactados.
type ExceptionGroup struct {
	Picking       *entity.Picking
	ResponsibleID string
	Decreases     []Decrease
	Impacted      []*entity.Picking
}

// ExceptionGroups agrupa los movimientos de las líneas disminuidas por
// (picking, responsable del producto). Omite movimientos sin picking y pickings cancelados.
func ExceptionGroups(s *Snapshot, decreases []Decrease) []ExceptionGroup {
	type key struct{ picking, responsible string }
	index := map[key]*ExceptionGroup{}
	groupMoves := map[key][]*entity.StockMove{}
	var order []key

	for _, d := range decreases {
		responsible := ""
		if p := s.Product(d.Line.ProductID); p != nil {
			responsible = p.ResponsibleID
		}
		added := map[key]bool{}
		for _, m := range s.LineMoves(d.Line) {
			picking := s.Picking(m.PickingID)
			if picking == nil || picking.State == entity.PickingStateCancel {
				continue
			}
			k := key{picking.ID, responsible}
			g, ok := index[k]
			if !ok {
				g = &ExceptionGroup{Picking: picking, ResponsibleID: responsible}
				index[k] = g
				order = append(order, k)
			}
			if !added[k] {
				g.Decreases = append(g.Decreases, d)
				added[k] = true
			}
			groupMoves[k] = append(groupMoves[k], m)
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].picking != order[j].picking {
			return order[i].picking < order[j].picking
		}
		return order[i].responsible < order[j].responsible
	})
	out := make([]ExceptionGroup, 0, len(order))
	for _, k := range order {
		g := index[k]
		g.Impacted = impactedPickings(s, groupMoves[k])
		out = append(out, *g)
	}
	return out
}

// impactedPickings pickings alcanzables aguas abajo desde moves, sin incluir los propios.
func impactedPickings(s *Snapshot, moves []*entity.StockMove) []*entity.Picking {
	own := map[string]bool{}
	for _, m := range moves {
		own[m.PickingID] = true
	}
	visited := map[string]bool{}
	seen := map[string]bool{}
	var out []*entity.Picking
	stack := append([]*entity.StockMove(nil), moves...)
	for len(stack) > 0 {
		m := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[m.ID] {
			continue
		}
		visited[m.ID] = true
		for _, d := range s.DestMoves(m) {
			if p := s.Picking(d.PickingID); p != nil && !own[p.ID] && !seen[p.ID] {
				seen[p.ID] = true
				out = append(out, p)
			}
			stack = append(stack, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
