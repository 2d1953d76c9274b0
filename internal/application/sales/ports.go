package sales

import (
	"context"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// DocumentPDFGenerator genera la representación imprimible de un pedido de venta
// a partir del documento ya traducido.
type DocumentPDFGenerator interface {
	GenerateSaleDocumentPDF(ctx context.Context, doc *dto.SaleDocumentResponse, company *entity.Company) ([]byte, error)
}
