package saledoc

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
)

// Etiquetas del documento. La clave es el texto en inglés.
const (
	LabelQuotationNo      = "Quotation No."
	LabelQuotationDate    = "Quotation Date"
	LabelExpiration       = "Expiration"
	LabelOrderNo          = "Order No."
	LabelOrderDate        = "Order Date"
	LabelCustomerRef      = "Customer Reference"
	LabelSalesperson      = "Salesperson"
	TitleQuotation        = "Quotation"
	TitleSalesOrder       = "Sales Order"
	LabelInvoiceAndShip   = "Invoicing and Shipping Address:"
	LabelShippingAddress  = "Shipping Address:"
	LabelInvoicingAddress = "Invoicing Address:"
	LabelDescription      = "Description"
	LabelQuantity         = "Quantity"
	LabelUnitPrice        = "Unit Price"
	LabelDiscount         = "Disc.%"
	LabelAmount           = "Amount"
	LabelUntaxed          = "Untaxed Amount"
	LabelTaxes            = "Taxes"
	LabelTotal            = "Total"
)

var supported = []language.Tag{language.English, language.German, language.Spanish}

var translations = map[language.Tag]map[string]string{
	language.German: {
		LabelQuotationNo:      "Angebotsnummer",
		LabelQuotationDate:    "Angebotsdatum",
		LabelExpiration:       "Ablaufdatum",
		LabelOrderNo:          "Auftragsnummer",
		LabelOrderDate:        "Auftragsdatum",
		LabelCustomerRef:      "Kundenreferenz",
		LabelSalesperson:      "Verkäufer",
		TitleQuotation:        "Angebot",
		TitleSalesOrder:       "Auftrag",
		LabelInvoiceAndShip:   "Rechnungs- und Lieferadresse:",
		LabelShippingAddress:  "Lieferadresse:",
		LabelInvoicingAddress: "Rechnungsadresse:",
		LabelDescription:      "Beschreibung",
		LabelQuantity:         "Menge",
		LabelUnitPrice:        "Einzelpreis",
		LabelDiscount:         "Rabatt %",
		LabelAmount:           "Betrag",
		LabelUntaxed:          "Nettobetrag",
		LabelTaxes:            "Steuern",
		LabelTotal:            "Gesamt",
	},
	language.Spanish: {
		LabelQuotationNo:      "Cotización N.º",
		LabelQuotationDate:    "Fecha de cotización",
		LabelExpiration:       "Vencimiento",
		LabelOrderNo:          "Pedido N.º",
		LabelOrderDate:        "Fecha del pedido",
		LabelCustomerRef:      "Referencia del cliente",
		LabelSalesperson:      "Vendedor",
		TitleQuotation:        "Cotización",
		TitleSalesOrder:       "Pedido de venta",
		LabelInvoiceAndShip:   "Dirección de facturación y envío:",
		LabelShippingAddress:  "Dirección de envío:",
		LabelInvoicingAddress: "Dirección de facturación:",
		LabelDescription:      "Descripción",
		LabelQuantity:         "Cantidad",
		LabelUnitPrice:        "Precio unitario",
		LabelDiscount:         "Desc.%",
		LabelAmount:           "Importe",
		LabelUntaxed:          "Base imponible",
		LabelTaxes:            "Impuestos",
		LabelTotal:            "Total",
	},
}

// dateLayouts formato corto de fecha por idioma.
var dateLayouts = map[language.Tag]string{
	language.English: "01/02/2006",
	language.German:  "02.01.2006",
	language.Spanish: "02/01/2006",
}

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range translations {
		for key, msg := range msgs {
			// Las claves son constantes sin verbos de formato: SetString no falla.
			_ = b.SetString(tag, key, msg)
		}
	}
	return b
}
