package sales

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/ports"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
	"github.com/jhoicas/Compras-api/internal/domain/saledoc"
)

// UseCase presentación imprimible de cotizaciones y pedidos de venta.
type UseCase struct {
	tx          ports.TxRunner
	orders      repository.SaleOrderRepository
	users       repository.UserRepository
	generator   DocumentPDFGenerator
	defaultLang string
	log         zerolog.Logger
}

// NewUseCase construye el caso de uso. defaultLang se usa cuando ni la petición
// ni el cliente indican idioma.
func NewUseCase(
	tx ports.TxRunner,
	orders repository.SaleOrderRepository,
	users repository.UserRepository,
	generator DocumentPDFGenerator,
	defaultLang string,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		tx:          tx,
		orders:      orders,
		users:       users,
		generator:   generator,
		defaultLang: defaultLang,
		log:         log,
	}
}

// loaded registros que intervienen en el documento.
type loaded struct {
	doc      saledoc.Document
	customer *entity.Partner
	company  *entity.Company
	currency *entity.Currency
}

// Document arma el documento traducido. El idioma sale de lang, luego del
// idioma del cliente y por último del idioma por defecto.
func (uc *UseCase) Document(ctx context.Context, companyID, orderID, lang string) (*dto.SaleDocumentResponse, error) {
	l, err := uc.load(ctx, companyID, orderID)
	if err != nil {
		return nil, err
	}
	return uc.build(l, lang), nil
}

// DownloadPDF genera el PDF del documento y su nombre de archivo.
func (uc *UseCase) DownloadPDF(ctx context.Context, companyID, orderID, lang string) ([]byte, string, error) {
	l, err := uc.load(ctx, companyID, orderID)
	if err != nil {
		return nil, "", err
	}
	doc := uc.build(l, lang)
	pdf, err := uc.generator.GenerateSaleDocumentPDF(ctx, doc, l.company)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	uc.log.Debug().Str("order", l.doc.Order.Name).Str("lang", doc.Lang).Int("bytes", len(pdf)).Msg("documento de venta generado")
	filename := fmt.Sprintf("%s_%s.pdf", strings.ToLower(strings.ReplaceAll(doc.Title, " ", "_")), strings.ReplaceAll(l.doc.Order.Name, "/", "_"))
	return pdf, filename, nil
}

func (uc *UseCase) load(ctx context.Context, companyID, orderID string) (*loaded, error) {
	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get sale order: %w", err)
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	l := &loaded{doc: saledoc.Document{Order: order}}
	if order.UserID != "" {
		if l.doc.Salesperson, err = uc.users.GetByID(ctx, order.UserID); err != nil {
			return nil, fmt.Errorf("get salesperson: %w", err)
		}
	}
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		partner := func(id string) (*entity.Partner, error) {
			if id == "" {
				return nil, nil
			}
			p, err := r.Partners.GetByID(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("get partner %s: %w", id, err)
			}
			return p, nil
		}
		var err error
		if l.customer, err = partner(order.PartnerID); err != nil {
			return err
		}
		if l.doc.Shipping, err = partner(order.PartnerShippingID); err != nil {
			return err
		}
		if l.doc.Invoicing, err = partner(order.PartnerInvoiceID); err != nil {
			return err
		}
		if l.company, err = r.Companies.GetByID(ctx, companyID); err != nil {
			return fmt.Errorf("get company: %w", err)
		}
		if order.CurrencyID != "" {
			if l.currency, err = r.Catalog.GetCurrency(ctx, order.CurrencyID); err != nil {
				return fmt.Errorf("get currency: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if l.company == nil {
		return nil, domain.ErrNotFound
	}
	if l.doc.Shipping == nil {
		l.doc.Shipping = l.customer
	}
	if l.doc.Invoicing == nil {
		l.doc.Invoicing = l.customer
	}
	return l, nil
}

func (uc *UseCase) build(l *loaded, lang string) *dto.SaleDocumentResponse {
	if lang == "" && l.customer != nil {
		lang = l.customer.Lang
	}
	if lang == "" {
		lang = uc.defaultLang
	}
	f := saledoc.NewFormatter(lang)
	o := l.doc.Order

	out := &dto.SaleDocumentResponse{
		Lang:          f.Lang(),
		Title:         f.DocumentTitle(o),
		TemplateData:  []dto.LabelValue{},
		Addresses:     []dto.AddressBlockDTO{},
		Lines:         make([]dto.SaleDocumentLineDTO, 0, len(o.Lines)),
		Labels:        map[string]string{},
		Currency:      o.CurrencyID,
		AmountUntaxed: o.AmountUntaxed,
		AmountTax:     o.AmountTax,
		AmountTotal:   o.AmountTotal,
	}
	if l.currency != nil && l.currency.Symbol != "" {
		out.Currency = l.currency.Symbol
	}
	for _, fld := range f.TemplateData(l.doc) {
		out.TemplateData = append(out.TemplateData, dto.LabelValue{Label: fld.Label, Value: fld.Value})
	}
	for _, b := range f.Addresses(l.doc) {
		out.Addresses = append(out.Addresses, toAddressBlock(b))
	}
	for _, line := range o.Lines {
		out.Lines = append(out.Lines, dto.SaleDocumentLineDTO{
			Description: line.Name,
			Quantity:    line.Quantity,
			PriceUnit:   line.PriceUnit,
			Discount:    line.Discount,
			Subtotal:    line.PriceSubtotal,
		})
	}
	for key, label := range map[string]string{
		"description": saledoc.LabelDescription,
		"quantity":    saledoc.LabelQuantity,
		"unit_price":  saledoc.LabelUnitPrice,
		"discount":    saledoc.LabelDiscount,
		"amount":      saledoc.LabelAmount,
		"untaxed":     saledoc.LabelUntaxed,
		"taxes":       saledoc.LabelTaxes,
		"total":       saledoc.LabelTotal,
	} {
		out.Labels[key] = f.T(label)
	}
	return out
}

func toAddressBlock(b saledoc.AddressBlock) dto.AddressBlockDTO {
	out := dto.AddressBlockDTO{Label: b.Label, Lines: []string{}}
	p := b.Partner
	if p == nil {
		return out
	}
	out.Name = p.Name
	for _, s := range p.AddressLines() {
		if s != p.Name {
			out.Lines = append(out.Lines, s)
		}
	}
	out.TaxID = p.TaxID
	out.Contact = strings.TrimSpace(strings.Join(nonEmpty(p.Email, p.Phone), " · "))
	return out
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
