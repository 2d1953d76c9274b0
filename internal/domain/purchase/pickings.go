package purchase

import (
	"sort"
	"time"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// PickingSummary agregados del pedido derivados de sus pickings.
type PickingSummary struct {
	Pickings      []*entity.Picking
	Count         int
	IsShipped     bool
	EffectiveDate *time.Time
}

// AggregatePickings reúne los pickings alcanzables desde las líneas del pedido:
// movimientos directos de cada línea más sus devoluciones. El recorrido se limita
// a ese nivel; no sigue cadenas de origen.
func AggregatePickings(s *Snapshot) []*entity.Picking {
	seen := map[string]bool{}
	var out []*entity.Picking
	add := func(m *entity.StockMove) {
		if m.PickingID == "" || seen[m.PickingID] {
			return
		}
		if p := s.Picking(m.PickingID); p != nil {
			seen[p.ID] = true
			out = append(out, p)
		}
	}
	for _, line := range s.Order.Lines {
		for _, m := range s.LineMoves(line) {
			add(m)
			for _, r := range s.ReturnedMoves(m) {
				add(r)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// IsShipped es true si hay al menos un picking y todos están done o cancel.
func IsShipped(pickings []*entity.Picking) bool {
	if len(pickings) == 0 {
		return false
	}
	for _, p := range pickings {
		if !p.IsTerminal() {
			return false
		}
	}
	return true
}

// EffectiveDate fecha de finalización más temprana entre los pickings done
// con destino interno. nil si no hay ninguno.
func EffectiveDate(s *Snapshot, pickings []*entity.Picking) *time.Time {
	var min *time.Time
	for _, p := range pickings {
		if p.State != entity.PickingStateDone || p.DateDone == nil {
			continue
		}
		dest := s.Location(p.LocationDestID)
		if dest == nil || dest.Usage != entity.LocationUsageInternal {
			continue
		}
		if min == nil || p.DateDone.Before(*min) {
			d := *p.DateDone
			min = &d
		}
	}
	return min
}

// Summarize calcula todos los agregados de pickings del pedido.
func Summarize(s *Snapshot) PickingSummary {
	pickings := AggregatePickings(s)
	return PickingSummary{
		Pickings:      pickings,
		Count:         len(pickings),
		IsShipped:     IsShipped(pickings),
		EffectiveDate: EffectiveDate(s, pickings),
	}
}

// PickingIDs IDs de los pickings del resumen.
func (ps PickingSummary) PickingIDs() []string {
	ids := make([]string, 0, len(ps.Pickings))
	for _, p := range ps.Pickings {
		ids = append(ids, p.ID)
	}
	return ids
}
