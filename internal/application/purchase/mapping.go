package purchase

import (
	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// ToOrderResponse convierte el pedido a su DTO de salida.
func ToOrderResponse(o *entity.PurchaseOrder) dto.PurchaseOrderResponse {
	resp := dto.PurchaseOrderResponse{
		ID:            o.ID,
		CompanyID:     o.CompanyID,
		Name:          o.Name,
		PartnerID:     o.PartnerID,
		DestAddressID: o.DestAddressID,
		CurrencyID:    o.CurrencyID,
		State:         o.State,
		DateOrder:     o.DateOrder,
		DatePlanned:   o.DatePlanned,
		DateApprove:   o.DateApprove,
		AmountUntaxed: o.AmountUntaxed(),
		IsShipped:     o.IsShipped,
		EffectiveDate: o.EffectiveDate,
		PickingCount:  o.PickingCount,
		PickingIDs:    o.PickingIDs,
		Lines:         make([]dto.PurchaseLineResponse, 0, len(o.Lines)),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
	if resp.PickingIDs == nil {
		resp.PickingIDs = []string{}
	}
	for _, l := range o.Lines {
		resp.Lines = append(resp.Lines, dto.PurchaseLineResponse{
			ID:           l.ID,
			Sequence:     l.Sequence,
			Name:         l.Name,
			DisplayType:  l.DisplayType,
			ProductID:    l.ProductID,
			ProductQty:   l.ProductQty,
			ProductUoMID: l.ProductUoMID,
			PriceUnit:    l.PriceUnit,
			DatePlanned:  l.DatePlanned,
			QtyReceived:  l.QtyReceived,
			QtyInvoiced:  l.QtyInvoiced,
		})
	}
	return resp
}

// ToPickingResponse convierte un picking y sus movimientos a DTO.
func ToPickingResponse(p *entity.Picking, moves []*entity.StockMove) dto.PickingResponse {
	resp := dto.PickingResponse{
		ID:             p.ID,
		Name:           p.Name,
		Origin:         p.Origin,
		PartnerID:      p.PartnerID,
		PickingTypeID:  p.PickingTypeID,
		LocationID:     p.LocationID,
		LocationDestID: p.LocationDestID,
		State:          p.State,
		Date:           p.Date,
		DateDone:       p.DateDone,
		Moves:          make([]dto.StockMoveResponse, 0, len(moves)),
	}
	for _, m := range moves {
		resp.Moves = append(resp.Moves, dto.StockMoveResponse{
			ID:                   m.ID,
			Name:                 m.Name,
			ProductID:            m.ProductID,
			ProductUoMQty:        m.ProductUoMQty,
			ProductUoMID:         m.ProductUoMID,
			State:                m.State,
			LocationID:           m.LocationID,
			LocationDestID:       m.LocationDestID,
			PriceUnit:            m.PriceUnit,
			PurchaseLineID:       m.PurchaseLineID,
			OriginReturnedMoveID: m.OriginReturnedMoveID,
			ToRefund:             m.ToRefund,
			Date:                 m.Date,
			DateDeadline:         m.DateDeadline,
		})
	}
	return resp
}

func toActivityResponse(a *entity.Activity) dto.ActivityResponse {
	return dto.ActivityResponse{
		ID:           a.ID,
		ResModel:     a.ResModel,
		ResID:        a.ResID,
		ActivityType: a.ActivityType,
		Summary:      a.Summary,
		Note:         a.Note,
		UserID:       a.UserID,
		DateDeadline: a.DateDeadline,
	}
}

func toMessageResponse(m *entity.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:        m.ID,
		ResModel:  m.ResModel,
		ResID:     m.ResID,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
	}
}
