// Package saledoc arma los campos de presentación de cotizaciones y pedidos de
// venta: pares (etiqueta, valor), título y bloque de direcciones, traducidos.
package saledoc

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

var messages = buildCatalog()

var matcher = language.NewMatcher(supported)

// Field par etiqueta/valor listo para imprimir.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// AddressBlock bloque de dirección con su encabezado.
type AddressBlock struct {
	Label   string
	Partner *entity.Partner
}

// Document registros que intervienen en la presentación de un pedido de venta.
type Document struct {
	Order       *entity.SaleOrder
	Salesperson *entity.User
	Shipping    *entity.Partner
	Invoicing   *entity.Partner
}

// Formatter traduce etiquetas y fechas a un idioma soportado (en, de, es).
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

// NewFormatter elige el idioma soportado más cercano a lang (inglés si no se reconoce).
func NewFormatter(lang string) *Formatter {
	tag := language.English
	if lang != "" {
		if parsed, err := language.Parse(lang); err == nil {
			_, idx, _ := matcher.Match(parsed)
			tag = supported[idx]
		}
	}
	return &Formatter{tag: tag, printer: message.NewPrinter(tag, message.Catalog(messages))}
}

// Lang etiqueta BCP 47 del idioma efectivo.
func (f *Formatter) Lang() string { return f.tag.String() }

// T traduce una etiqueta.
func (f *Formatter) T(key string) string { return f.printer.Sprintf(key) }

// FormatDate fecha corta en el formato del idioma.
func (f *Formatter) FormatDate(t time.Time) string {
	return t.Format(dateLayouts[f.tag])
}

// TemplateData campos de cabecera en orden de impresión. Cotización (draft/sent):
// número, fecha y vencimiento; pedido: número y fecha. Luego referencia del
// cliente y vendedor. Los campos vacíos se omiten.
func (f *Formatter) TemplateData(doc Document) []Field {
	o := doc.Order
	var data []Field
	add := func(label, value string) {
		if value != "" {
			data = append(data, Field{Label: f.T(label), Value: value})
		}
	}
	if o.IsQuotation() {
		add(LabelQuotationNo, o.Name)
		if o.DateOrder != nil {
			add(LabelQuotationDate, f.FormatDate(*o.DateOrder))
		}
		if o.ValidityDate != nil {
			add(LabelExpiration, f.FormatDate(*o.ValidityDate))
		}
	} else {
		add(LabelOrderNo, o.Name)
		if o.DateOrder != nil {
			add(LabelOrderDate, f.FormatDate(*o.DateOrder))
		}
	}
	add(LabelCustomerRef, o.ClientOrderRef)
	if doc.Salesperson != nil {
		add(LabelSalesperson, doc.Salesperson.Name)
	}
	return data
}

// DocumentTitle "Quotation" o "Sales Order" según el estado.
func (f *Formatter) DocumentTitle(o *entity.SaleOrder) string {
	if o.IsQuotation() {
		return f.T(TitleQuotation)
	}
	return f.T(TitleSalesOrder)
}

// Addresses un solo bloque si la dirección de envío y la de facturación coinciden;
// si no, envío y luego facturación.
func (f *Formatter) Addresses(doc Document) []AddressBlock {
	o := doc.Order
	if o.PartnerShippingID == o.PartnerInvoiceID {
		return []AddressBlock{{Label: f.T(LabelInvoiceAndShip), Partner: doc.Shipping}}
	}
	return []AddressBlock{
		{Label: f.T(LabelShippingAddress), Partner: doc.Shipping},
		{Label: f.T(LabelInvoicingAddress), Partner: doc.Invoicing},
	}
}
