package purchase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/ports"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// CreateBill registra una factura (o nota crédito) de proveedor sobre líneas de
// compra. Con Post la publica en el acto y recalcula la cantidad facturada.
func (uc *UseCase) CreateBill(ctx context.Context, companyID string, in dto.CreateVendorBillRequest) (*dto.VendorBillResponse, error) {
	var out *dto.VendorBillResponse
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		now := uc.now()
		bill := &entity.VendorBill{
			ID:        uuid.New().String(),
			CompanyID: companyID,
			PartnerID: in.PartnerID,
			MoveType:  in.MoveType,
			State:     entity.BillStateDraft,
			Date:      now,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if in.Date != nil {
			bill.Date = *in.Date
		}
		var orderIDs []string
		lines := make([]*entity.VendorBillLine, 0, len(in.Lines))
		for _, l := range in.Lines {
			if !l.Quantity.IsPositive() {
				return domain.ErrInvalidInput
			}
			ids, err := r.Orders.OrderIDsByLineIDs(ctx, []string{l.PurchaseLineID})
			if err != nil {
				return fmt.Errorf("order of purchase line: %w", err)
			}
			if len(ids) == 0 {
				return domain.ErrNotFound
			}
			order, err := r.Orders.GetByID(ctx, ids[0])
			if err != nil {
				return fmt.Errorf("get purchase order: %w", err)
			}
			if order == nil {
				return domain.ErrNotFound
			}
			if order.CompanyID != companyID {
				return domain.ErrForbidden
			}
			if order.State != entity.PurchaseStatePurchase && order.State != entity.PurchaseStateDone {
				return transitionError(order, "facturar")
			}
			pl := order.Line(l.PurchaseLineID)
			lines = append(lines, &entity.VendorBillLine{
				ID:             uuid.New().String(),
				BillID:         bill.ID,
				PurchaseLineID: pl.ID,
				ProductID:      pl.ProductID,
				Quantity:       l.Quantity,
				ProductUoMID:   pl.ProductUoMID,
				PriceUnit:      l.PriceUnit,
			})
			orderIDs = append(orderIDs, order.ID)
		}
		if in.Post {
			bill.State = entity.BillStatePosted
		}
		bill.Name = billName(bill)
		if err := r.Bills.Create(ctx, bill, lines); err != nil {
			return fmt.Errorf("create vendor bill: %w", err)
		}
		if err := uc.RecomputeOrders(ctx, r, orderIDs); err != nil {
			return err
		}
		out = toBillResponse(bill)
		return nil
	})
	return out, err
}

// PostBill publica una factura en borrador.
func (uc *UseCase) PostBill(ctx context.Context, companyID, billID string) (*dto.VendorBillResponse, error) {
	return uc.setBillState(ctx, companyID, billID, entity.BillStateDraft, entity.BillStatePosted)
}

// CancelBill anula una factura publicada o en borrador.
func (uc *UseCase) CancelBill(ctx context.Context, companyID, billID string) (*dto.VendorBillResponse, error) {
	return uc.setBillState(ctx, companyID, billID, "", entity.BillStateCancel)
}

func (uc *UseCase) setBillState(ctx context.Context, companyID, billID, from, to string) (*dto.VendorBillResponse, error) {
	var out *dto.VendorBillResponse
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		bill, err := r.Bills.GetByID(ctx, billID)
		if err != nil {
			return fmt.Errorf("get vendor bill: %w", err)
		}
		if bill == nil {
			return domain.ErrNotFound
		}
		if bill.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if (from != "" && bill.State != from) || bill.State == to {
			return domain.NewUserError(domain.CodeInvalidTransition,
				fmt.Sprintf("la factura %s está en estado %q", bill.Name, bill.State))
		}
		bill.State = to
		bill.UpdatedAt = uc.now()
		if err := r.Bills.Update(ctx, bill); err != nil {
			return fmt.Errorf("update vendor bill: %w", err)
		}
		lines, err := r.Bills.ListLines(ctx, bill.ID)
		if err != nil {
			return fmt.Errorf("list bill lines: %w", err)
		}
		lineIDs := make([]string, 0, len(lines))
		for _, l := range lines {
			lineIDs = append(lineIDs, l.PurchaseLineID)
		}
		orderIDs, err := r.Orders.OrderIDsByLineIDs(ctx, lineIDs)
		if err != nil {
			return fmt.Errorf("orders of bill: %w", err)
		}
		if err := uc.RecomputeOrders(ctx, r, orderIDs); err != nil {
			return err
		}
		out = toBillResponse(bill)
		return nil
	})
	return out, err
}

// billName referencia legible: BILL/2026/1a2b3c4d (RBILL para notas crédito).
func billName(bill *entity.VendorBill) string {
	prefix := "BILL"
	if bill.MoveType == entity.BillTypeRefund {
		prefix = "RBILL"
	}
	return fmt.Sprintf("%s/%d/%s", prefix, bill.Date.Year(), bill.ID[:8])
}

func toBillResponse(b *entity.VendorBill) *dto.VendorBillResponse {
	return &dto.VendorBillResponse{
		ID:        b.ID,
		Name:      b.Name,
		PartnerID: b.PartnerID,
		MoveType:  b.MoveType,
		State:     b.State,
		Date:      b.Date,
	}
}
