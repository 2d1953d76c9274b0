package purchase

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// maxMoveNameRunes límite del nombre del movimiento (índice en BD).
const maxMoveNameRunes = 2000

// GenerateOptions parámetros del generador de movimientos.
type GenerateOptions struct {
	// PropagateUoM mantiene la UoM de la línea en el movimiento; si es false se
	// convierte a la UoM base del producto.
	PropagateUoM bool
	// DefaultLeadDays se usa cuando ni el proveedor ni la compañía definen plazo.
	DefaultLeadDays int
	Converter       CurrencyConverter
}

// AlreadyMoved cantidad ya cubierta por movimientos de la línea, en su UoM:
// entradas (no devoluciones, o devoluciones con reembolso) menos salidas al
// proveedor con reembolso.
func AlreadyMoved(s *Snapshot, line *entity.PurchaseOrderLine) (decimal.Decimal, error) {
	lineUoM := s.UoM(line.ProductUoMID)
	qty := decimal.Zero
	for _, m := range s.LineMoves(line) {
		if m.IsCancelled() || m.Scrapped || m.ProductID != line.ProductID {
			continue
		}
		destUsage := s.destUsage(m)
		var sign int
		switch {
		case destUsage == entity.LocationUsageSupplier && m.ToRefund:
			sign = -1
		case destUsage != entity.LocationUsageSupplier:
			if m.OriginReturnedMoveID == "" || m.ToRefund {
				sign = 1
			}
		}
		if sign == 0 {
			continue
		}
		q, err := ComputeQuantity(m.ProductUoMQty, s.UoM(m.ProductUoMID), lineUoM, RoundHalfUp)
		if err != nil {
			return decimal.Zero, err
		}
		if sign < 0 {
			qty = qty.Sub(q)
		} else {
			qty = qty.Add(q)
		}
	}
	return qty, nil
}

// downstreamMoves movimientos aguas abajo que la línea debe abastecer: los
// enlazados por created_purchase_line_id o, si no hay, los destinos de sus movimientos.
func downstreamMoves(s *Snapshot, line *entity.PurchaseOrderLine) []*entity.StockMove {
	if dests := s.LineDestMoves(line); len(dests) > 0 {
		return dests
	}
	seen := map[string]bool{}
	var out []*entity.StockMove
	for _, m := range s.LineMoves(line) {
		for _, d := range s.DestMoves(m) {
			if seen[d.ID] || d.IsCancelled() || s.destUsage(d) == entity.LocationUsageSupplier {
				continue
			}
			seen[d.ID] = true
			out = append(out, d)
		}
	}
	return out
}

// QuantityDeltas calcula qtyToAttach (continúa la cadena aguas abajo) y
// qtyToPush (resto sin enlace), ambos en la UoM de la línea.
func QuantityDeltas(s *Snapshot, line *entity.PurchaseOrderLine) (toAttach, toPush decimal.Decimal, err error) {
	moved, err := AlreadyMoved(s, line)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	dests := downstreamMoves(s, line)
	if len(dests) == 0 {
		return decimal.Zero, line.ProductQty.Sub(moved), nil
	}
	product := s.Product(line.ProductID)
	demand := decimal.Zero
	for _, d := range dests {
		if d.IsCancelled() || s.destUsage(d) == entity.LocationUsageSupplier {
			continue
		}
		demand = demand.Add(d.ProductQty)
	}
	var productUoM *entity.UoM
	if product != nil {
		productUoM = s.UoM(product.UoMID)
	}
	demand, err = ComputeQuantity(demand, productUoM, s.UoM(line.ProductUoMID), RoundHalfUp)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return demand.Sub(moved), line.ProductQty.Sub(demand), nil
}

// PrepareStockMoves devuelve los movimientos (en borrador, sin ID) que hay que
// crear en picking para que la línea cubra su cantidad pedida. Nunca devuelve
// movimientos con cantidad no positiva a la precisión de la UoM de la línea.
func PrepareStockMoves(s *Snapshot, line *entity.PurchaseOrderLine, picking *entity.Picking, opts GenerateOptions) ([]*entity.StockMove, error) {
	product := s.Product(line.ProductID)
	if line.DisplayType != "" || !product.IsStockable() {
		return nil, nil
	}
	priceUnit, err := StockMovePriceUnit(s, line, opts.Converter)
	if err != nil {
		return nil, err
	}
	toAttach, toPush, err := QuantityDeltas(s, line)
	if err != nil {
		return nil, err
	}
	precision := precisionOf(s.UoM(line.ProductUoMID))

	var out []*entity.StockMove
	if Compare(toAttach, decimal.Zero, precision) > 0 {
		m, err := prepareMove(s, line, picking, priceUnit, toAttach, opts)
		if err != nil {
			return nil, err
		}
		for _, d := range s.LineDestMoves(line) {
			m.MoveDestIDs = append(m.MoveDestIDs, d.ID)
		}
		out = append(out, m)
	}
	if Compare(toPush, decimal.Zero, precision) > 0 {
		m, err := prepareMove(s, line, picking, priceUnit, toPush, opts)
		if err != nil {
			return nil, err
		}
		m.MoveDestIDs = nil
		out = append(out, m)
	}
	return out, nil
}

func prepareMove(s *Snapshot, line *entity.PurchaseOrderLine, picking *entity.Picking, priceUnit, qty decimal.Decimal, opts GenerateOptions) (*entity.StockMove, error) {
	order := s.Order
	product := s.Product(line.ProductID)
	lineUoM := s.UoM(line.ProductUoMID)
	productUoM := s.UoM(product.UoMID)

	moveUoM := productUoM
	if opts.PropagateUoM || productUoM == nil {
		moveUoM = lineUoM
	}
	uomQty, err := ComputeQuantity(qty, lineUoM, moveUoM, RoundHalfUp)
	if err != nil {
		return nil, err
	}
	productQty, err := ComputeQuantity(uomQty, moveUoM, productUoM, RoundHalfUp)
	if err != nil {
		return nil, err
	}

	if s.Partner == nil || s.Partner.PropertyStockSupplierID == "" {
		name := ""
		if s.Partner != nil {
			name = s.Partner.Name
		}
		return nil, domain.NewUserError(domain.CodeMissingVendorLoc,
			fmt.Sprintf("debe definir una ubicación de proveedor para el partner %s", name))
	}

	date := plannedDate(order, line)
	deadline := date.AddDate(0, 0, LeadDays(s, opts.DefaultLeadDays))

	description := product.Name
	if line.ProductDescriptionVariants != "" {
		description += line.ProductDescriptionVariants
	}

	destID, err := lineDestination(s, line)
	if err != nil {
		return nil, err
	}

	m := &entity.StockMove{
		CompanyID:          order.CompanyID,
		Name:               truncateRunes(line.Name, maxMoveNameRunes),
		ProductID:          product.ID,
		ProductUoMQty:      uomQty,
		ProductQty:         productQty,
		State:              entity.MoveStateDraft,
		LocationID:         s.Partner.PropertyStockSupplierID,
		LocationDestID:     destID,
		PickingID:          picking.ID,
		PartnerID:          order.DestAddressID,
		PurchaseLineID:     line.ID,
		PriceUnit:          priceUnit,
		GroupID:            order.GroupID,
		Origin:             order.Name,
		DescriptionPicking: description,
		PropagateCancel:    line.PropagateCancel,
		ProcureMethod:      entity.ProcureMakeToStock,
		Date:               date,
		DateDeadline:       &deadline,
	}
	if moveUoM != nil {
		m.ProductUoMID = moveUoM.ID
	}
	if s.PickingType != nil {
		m.PickingTypeID = s.PickingType.ID
		m.WarehouseID = s.PickingType.WarehouseID
	}
	return m, nil
}

// LeadDays plazo de seguridad: el del proveedor si lo define, si no el de la compañía.
func LeadDays(s *Snapshot, fallback int) int {
	if s.Partner != nil && s.Partner.PurchaseLeadDays != nil {
		return *s.Partner.PurchaseLeadDays
	}
	if s.Company != nil && s.Company.POLeadDays > 0 {
		return s.Company.POLeadDays
	}
	return fallback
}

// DestinationLocation destino de las recepciones del pedido: la ubicación de
// cliente de la dirección de drop-ship o la ubicación por defecto del tipo de operación.
func DestinationLocation(s *Snapshot) (string, error) {
	if s.DestAddress != nil && s.DestAddress.PropertyStockCustomerID != "" {
		return s.DestAddress.PropertyStockCustomerID, nil
	}
	if s.PickingType == nil || s.PickingType.DefaultLocationDestID == "" {
		return "", domain.NewUserError(domain.CodeMissingPickingType,
			"el pedido no tiene un tipo de operación de recepción con ubicación destino")
	}
	return s.PickingType.DefaultLocationDestID, nil
}

// lineDestination usa la ubicación de la regla de reabastecimiento cuando la
// línea aún no tiene movimientos propios ni aguas abajo.
func lineDestination(s *Snapshot, line *entity.PurchaseOrderLine) (string, error) {
	if line.OrderpointLocationID != "" && len(s.LineMoves(line)) == 0 && len(s.LineDestMoves(line)) == 0 {
		return line.OrderpointLocationID, nil
	}
	return DestinationLocation(s)
}

func plannedDate(order *entity.PurchaseOrder, line *entity.PurchaseOrderLine) time.Time {
	switch {
	case line.DatePlanned != nil:
		return *line.DatePlanned
	case order.DatePlanned != nil:
		return *order.DatePlanned
	}
	return order.DateOrder
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
