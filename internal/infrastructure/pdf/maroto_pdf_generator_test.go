package pdf

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

func TestMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "0,00",
		"999.5":     "999,50",
		"25000":     "25.000,00",
		"1234567.5": "1.234.567,50",
		"-4500.25":  "-4.500,25",
	}
	for in, want := range cases {
		assert.Equal(t, want, money(decimal.RequireFromString(in)), in)
	}
}

func TestGenerateSaleDocumentPDF(t *testing.T) {
	doc := &dto.SaleDocumentResponse{
		Lang:  "de",
		Title: "Angebot",
		TemplateData: []dto.LabelValue{
			{Label: "Angebotsnummer", Value: "S00001"},
			{Label: "Angebotsdatum", Value: "02.03.2026"},
		},
		Addresses: []dto.AddressBlockDTO{
			{Label: "Rechnungs- und Lieferadresse:", Name: "Müller Bau GmbH", Lines: []string{"Hauptstraße 5", "10115 Berlin"}},
		},
		Lines: []dto.SaleDocumentLineDTO{
			{Description: "Tornillo M8", Quantity: decimal.NewFromInt(10), PriceUnit: decimal.NewFromInt(250), Subtotal: decimal.NewFromInt(2500)},
		},
		Labels:        map[string]string{"description": "Beschreibung", "untaxed": "Nettobetrag", "taxes": "Steuern", "total": "Gesamt"},
		Currency:      "$",
		AmountUntaxed: decimal.NewFromInt(2500),
		AmountTax:     decimal.NewFromInt(475),
		AmountTotal:   decimal.NewFromInt(2975),
	}
	out, err := NewMarotoPDFGenerator().GenerateSaleDocumentPDF(context.Background(), doc, &entity.Company{Name: "Ferretería Demo SAS", NIT: "900123456"})
	require.NoError(t, err)
	require.Greater(t, len(out), 4)
	assert.Equal(t, "%PDF", string(out[:4]))
}
