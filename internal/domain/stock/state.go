package stock

import "github.com/jhoicas/Compras-api/internal/domain/entity"

// PickingState deriva el estado del picking a partir de sus movimientos.
func PickingState(moves []*entity.StockMove) string {
	if len(moves) == 0 {
		return entity.PickingStateDraft
	}
	allCancel, allClosed := true, true
	for _, m := range moves {
		if m.State == entity.MoveStateDraft {
			return entity.PickingStateDraft
		}
		if m.State != entity.MoveStateCancel {
			allCancel = false
		}
		if m.State != entity.MoveStateCancel && m.State != entity.MoveStateDone {
			allClosed = false
		}
	}
	if allCancel {
		return entity.PickingStateCancel
	}
	if allClosed {
		return entity.PickingStateDone
	}
	allAssigned, anyWaiting := true, false
	for _, m := range moves {
		switch m.State {
		case entity.MoveStateDone, entity.MoveStateCancel:
			continue
		case entity.MoveStateAssigned, entity.MoveStatePartiallyAvailable:
		case entity.MoveStateWaiting:
			anyWaiting = true
			allAssigned = false
		default:
			allAssigned = false
		}
	}
	switch {
	case allAssigned:
		return entity.PickingStateAssigned
	case anyWaiting:
		return entity.PickingStateWaiting
	}
	return entity.PickingStateConfirmed
}
