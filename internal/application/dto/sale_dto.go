package dto

import "github.com/shopspring/decimal"

// LabelValue par etiqueta/valor del documento.
type LabelValue struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// AddressBlockDTO bloque de dirección impreso.
type AddressBlockDTO struct {
	Label   string   `json:"label"`
	Name    string   `json:"name"`
	Lines   []string `json:"lines"`
	TaxID   string   `json:"tax_id,omitempty"`
	Contact string   `json:"contact,omitempty"`
}

// SaleDocumentLineDTO línea del documento impreso.
type SaleDocumentLineDTO struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	PriceUnit   decimal.Decimal `json:"price_unit"`
	Discount    decimal.Decimal `json:"discount"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleDocumentResponse salida de GET /api/sale-orders/:id/document.
type SaleDocumentResponse struct {
	Lang          string                `json:"lang"`
	Title         string                `json:"title"`
	TemplateData  []LabelValue          `json:"template_data"`
	Addresses     []AddressBlockDTO     `json:"addresses"`
	Lines         []SaleDocumentLineDTO `json:"lines"`
	Labels        map[string]string     `json:"labels"`
	Currency      string                `json:"currency"`
	AmountUntaxed decimal.Decimal       `json:"amount_untaxed"`
	AmountTax     decimal.Decimal       `json:"amount_tax"`
	AmountTotal   decimal.Decimal       `json:"amount_total"`
}
