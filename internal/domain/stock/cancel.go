package stock

import (
	"fmt"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// MoveLookup acceso a movimientos ya cargados.
type MoveLookup interface {
	Move(id string) *entity.StockMove
}

// Cancellation acumula los movimientos modificados durante una cancelación.
type Cancellation struct {
	lookup  MoveLookup
	Changed map[string]*entity.StockMove
}

// NewCancellation prepara una cancelación sobre los movimientos de lookup.
func NewCancellation(lookup MoveLookup) *Cancellation {
	return &Cancellation{lookup: lookup, Changed: map[string]*entity.StockMove{}}
}

// Cancel cancela los movimientos no cancelados. Un movimiento con
// propagate_cancel cancela sus destinos (no done) cuando todos sus hermanos de
// origen están cancelados; sin propagate_cancel los destinos se desacoplan y
// pasan a make_to_stock. La recursión sigue el grafo aguas abajo, que es acíclico;
// aun así cada movimiento se visita una sola vez.
func (c *Cancellation) Cancel(moves ...*entity.StockMove) error {
	for _, m := range moves {
		if m == nil || m.State == entity.MoveStateCancel {
			continue
		}
		if m.State == entity.MoveStateDone {
			return domain.NewUserError(domain.CodeCancelDoneReceipt,
				fmt.Sprintf("no se puede cancelar el movimiento %s: ya está hecho", m.Name))
		}
		// Se marca antes de recorrer los destinos para que cuente como hermano cancelado.
		m.State = entity.MoveStateCancel
		c.Changed[m.ID] = m

		dests := c.dests(m)
		siblingsCancelled, siblingsClosed := true, true
		for _, d := range dests {
			for _, oid := range d.MoveOrigIDs {
				if oid == m.ID {
					continue
				}
				sib := c.lookup.Move(oid)
				if sib == nil {
					continue
				}
				if sib.State != entity.MoveStateCancel {
					siblingsCancelled = false
				}
				if sib.State != entity.MoveStateCancel && sib.State != entity.MoveStateDone {
					siblingsClosed = false
				}
			}
		}
		if m.PropagateCancel {
			if siblingsCancelled {
				var open []*entity.StockMove
				for _, d := range dests {
					if d.State != entity.MoveStateDone {
						open = append(open, d)
					}
				}
				if err := c.Cancel(open...); err != nil {
					return err
				}
			}
		} else if siblingsClosed {
			for _, d := range dests {
				c.Decouple(d, m.ID)
			}
		}
		m.MoveOrigIDs = nil
	}
	return nil
}

// Decouple pasa d a make_to_stock y le quita el origen origID (si se indica).
func (c *Cancellation) Decouple(d *entity.StockMove, origID string) {
	d.ProcureMethod = entity.ProcureMakeToStock
	if origID != "" {
		d.MoveOrigIDs = removeID(d.MoveOrigIDs, origID)
	}
	RecomputeState(d)
	c.Changed[d.ID] = d
}

func (c *Cancellation) dests(m *entity.StockMove) []*entity.StockMove {
	out := make([]*entity.StockMove, 0, len(m.MoveDestIDs))
	for _, id := range m.MoveDestIDs {
		if d := c.lookup.Move(id); d != nil {
			out = append(out, d)
		}
	}
	return out
}

// RecomputeState recalcula el estado de un movimiento abierto: si ya no espera
// a ningún origen abierto pasa de waiting a confirmed.
func RecomputeState(m *entity.StockMove) {
	if m.State != entity.MoveStateWaiting {
		return
	}
	if m.ProcureMethod == entity.ProcureMakeToStock || len(m.MoveOrigIDs) == 0 {
		m.State = entity.MoveStateConfirmed
	}
}

func removeID(ids []string, id string) []string {
	out := ids[:0:0]
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}
