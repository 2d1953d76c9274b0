package purchase

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// BillLine línea de factura de proveedor con su cabecera.
type BillLine struct {
	Line *entity.VendorBillLine
	Bill *entity.VendorBill
}

// InvoicedQuantity cantidad facturada de la línea en su UoM: facturas publicadas
// suman, notas crédito publicadas restan; borradores y anuladas no cuentan.
func InvoicedQuantity(s *Snapshot, line *entity.PurchaseOrderLine, billLines []BillLine) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, bl := range billLines {
		if bl.Line.PurchaseLineID != line.ID || bl.Bill == nil || bl.Bill.State != entity.BillStatePosted {
			continue
		}
		qty, err := ComputeQuantity(bl.Line.Quantity, s.UoM(bl.Line.ProductUoMID), s.UoM(line.ProductUoMID), RoundHalfUp)
		if err != nil {
			return decimal.Zero, err
		}
		switch bl.Bill.MoveType {
		case entity.BillTypeRefund:
			total = total.Sub(qty)
		case entity.BillTypeInvoice:
			total = total.Add(qty)
		}
	}
	return total, nil
}

// FirstBillID factura de la primera línea facturada de la línea de compra (vacío si no hay).
func FirstBillID(line *entity.PurchaseOrderLine, billLines []BillLine) string {
	for _, bl := range billLines {
		if bl.Line.PurchaseLineID == line.ID && bl.Bill != nil {
			return bl.Bill.ID
		}
	}
	return ""
}
