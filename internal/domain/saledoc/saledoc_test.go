package saledoc_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/saledoc"
)

func sampleDoc(state string) saledoc.Document {
	date := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	validity := time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC)
	return saledoc.Document{
		Order: &entity.SaleOrder{
			Name:              "S00042",
			State:             state,
			DateOrder:         &date,
			ValidityDate:      &validity,
			ClientOrderRef:    "PO-7781",
			PartnerInvoiceID:  "p-1",
			PartnerShippingID: "p-1",
		},
		Salesperson: &entity.User{Name: "Marta Díaz"},
		Shipping:    &entity.Partner{ID: "p-1", Name: "Kunde GmbH"},
		Invoicing:   &entity.Partner{ID: "p-1", Name: "Kunde GmbH"},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Campos de cabecera
// ──────────────────────────────────────────────────────────────────────────────

func TestTemplateData_CotizacionEnAleman(t *testing.T) {
	f := saledoc.NewFormatter("de_DE")
	assert.Equal(t, "de", f.Lang())

	got := f.TemplateData(sampleDoc(entity.SaleStateDraft))
	assert.Equal(t, []saledoc.Field{
		{Label: "Angebotsnummer", Value: "S00042"},
		{Label: "Angebotsdatum", Value: "04.05.2026"},
		{Label: "Ablaufdatum", Value: "03.06.2026"},
		{Label: "Kundenreferenz", Value: "PO-7781"},
		{Label: "Verkäufer", Value: "Marta Díaz"},
	}, got)
}

func TestTemplateData_PedidoConfirmadoOmiteVencimiento(t *testing.T) {
	f := saledoc.NewFormatter("en")
	got := f.TemplateData(sampleDoc(entity.SaleStateSale))
	assert.Equal(t, []saledoc.Field{
		{Label: "Order No.", Value: "S00042"},
		{Label: "Order Date", Value: "05/04/2026"},
		{Label: "Customer Reference", Value: "PO-7781"},
		{Label: "Salesperson", Value: "Marta Díaz"},
	}, got)
}

func TestTemplateData_CamposVaciosSeOmiten(t *testing.T) {
	doc := sampleDoc(entity.SaleStateSent)
	doc.Order.ClientOrderRef = ""
	doc.Order.ValidityDate = nil
	doc.Salesperson = nil

	got := saledoc.NewFormatter("es").TemplateData(doc)
	require.Len(t, got, 2)
	assert.Equal(t, "Cotización N.º", got[0].Label)
	assert.Equal(t, "04/05/2026", got[1].Value)
}

func TestNewFormatter_IdiomaDesconocidoUsaIngles(t *testing.T) {
	f := saledoc.NewFormatter("xx-invalid-!!")
	assert.Equal(t, "en", f.Lang())
	assert.Equal(t, "Quotation", f.DocumentTitle(&entity.SaleOrder{State: entity.SaleStateDraft}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Título y direcciones
// ──────────────────────────────────────────────────────────────────────────────

func TestDocumentTitle(t *testing.T) {
	f := saledoc.NewFormatter("de")
	assert.Equal(t, "Angebot", f.DocumentTitle(&entity.SaleOrder{State: entity.SaleStateSent}))
	assert.Equal(t, "Auftrag", f.DocumentTitle(&entity.SaleOrder{State: entity.SaleStateDone}))
}

func TestAddresses_MismaDireccionUnSoloBloque(t *testing.T) {
	got := saledoc.NewFormatter("en").Addresses(sampleDoc(entity.SaleStateSale))
	require.Len(t, got, 1)
	assert.Equal(t, "Invoicing and Shipping Address:", got[0].Label)
	assert.Equal(t, "p-1", got[0].Partner.ID)
}

func TestAddresses_DireccionesDistintasEnvioPrimero(t *testing.T) {
	doc := sampleDoc(entity.SaleStateSale)
	doc.Order.PartnerInvoiceID = "p-2"
	doc.Invoicing = &entity.Partner{ID: "p-2"}

	got := saledoc.NewFormatter("en").Addresses(doc)
	require.Len(t, got, 2)
	assert.Equal(t, "Shipping Address:", got[0].Label)
	assert.Equal(t, "p-1", got[0].Partner.ID)
	assert.Equal(t, "Invoicing Address:", got[1].Label)
	assert.Equal(t, "p-2", got[1].Partner.ID)
}
