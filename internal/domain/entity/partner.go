package entity

import "time"

// Partner representa un tercero: proveedor, cliente o dirección de entrega (drop-ship).
type Partner struct {
	ID        string
	CompanyID string
	Name      string
	TaxID     string
	Email     string
	Phone     string
	Street    string
	City      string
	Zip       string
	Country   string
	Lang      string // etiqueta BCP 47 (de, en, es-CO...)

	// PropertyStockSupplierID ubicación de origen de las recepciones de este proveedor.
	PropertyStockSupplierID string
	// PropertyStockCustomerID ubicación destino cuando el partner es dirección de drop-ship.
	PropertyStockCustomerID string
	// PurchaseLeadDays plazo propio del proveedor; nil = usar el de la compañía.
	PurchaseLeadDays *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AddressLines devuelve la dirección en líneas imprimibles, omitiendo vacíos.
func (p *Partner) AddressLines() []string {
	if p == nil {
		return nil
	}
	var lines []string
	for _, s := range []string{p.Name, p.Street, joinNonEmpty(p.Zip, p.City), p.Country} {
		if s != "" {
			lines = append(lines, s)
		}
	}
	return lines
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + " " + b
}
