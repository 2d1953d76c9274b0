package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// IDs de los datos de demostración.
const (
	DemoCompanyID     = "5f0c7a9e-2b1d-4c3e-8f6a-1d2e3f4a5b6c"
	DemoVendorID      = "partner-aceros"
	DemoCustomerID    = "partner-cliente"
	DemoWarehouseID   = "wh-principal"
	LocSupplier       = "loc-proveedores"
	LocCustomer       = "loc-clientes"
	LocView           = "loc-wh"
	LocStock          = "loc-wh-stock"
	LocOutput         = "loc-wh-salida"
	PickingTypeIn     = "pt-recepciones"
	PickingTypeReturn = "pt-devoluciones"
	PickingTypeOut    = "pt-entregas"
	UoMUnit           = "uom-unidad"
	UoMDozen          = "uom-docena"
	ProductBolt       = "prod-tornillo"
	ProductService    = "prod-flete"
	TaxIVA19          = "tax-iva19"
	ResponsibleID     = "user-responsable"
	DemoSaleOrderID   = "so-demo"
)

// SeedDemo carga una compañía con bodega, ubicaciones, tipos de operación,
// unidades, un proveedor, un cliente, dos productos y un pedido de venta.
func (s *Store) SeedDemo() {
	s.PutCompany(&entity.Company{
		ID: DemoCompanyID, Name: "Ferretería Demo SAS", NIT: "900123456", CurrencyID: "COP", Status: "active",
		POApprovalAmount: decimal.NewFromInt(5000000),
	})
	s.PutCurrency(&entity.Currency{ID: "COP", Code: "COP", Symbol: "$", Rounding: decimal.NewFromInt(1)})
	s.PutCurrency(&entity.Currency{ID: "USD", Code: "USD", Symbol: "US$", Rounding: decimal.RequireFromString("0.01")})
	s.PutRate(&entity.CurrencyRate{CurrencyID: "USD", Date: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), Rate: decimal.RequireFromString("0.00025")})

	for _, l := range []*entity.Location{
		{ID: LocSupplier, Name: "Proveedores", CompleteName: "Partners/Proveedores", Usage: entity.LocationUsageSupplier, ParentPath: LocSupplier + "/"},
		{ID: LocCustomer, Name: "Clientes", CompleteName: "Partners/Clientes", Usage: entity.LocationUsageCustomer, ParentPath: LocCustomer + "/"},
		{ID: LocView, Name: "WH", CompleteName: "WH", Usage: entity.LocationUsageView, ParentPath: LocView + "/", WarehouseID: DemoWarehouseID},
		{ID: LocStock, Name: "Existencias", CompleteName: "WH/Existencias", Usage: entity.LocationUsageInternal, ParentID: LocView, ParentPath: LocView + "/" + LocStock + "/", WarehouseID: DemoWarehouseID},
		{ID: LocOutput, Name: "Salida", CompleteName: "WH/Salida", Usage: entity.LocationUsageInternal, ParentID: LocView, ParentPath: LocView + "/" + LocOutput + "/", WarehouseID: DemoWarehouseID},
	} {
		l.CompanyID = DemoCompanyID
		s.PutLocation(l)
	}
	s.PutWarehouse(&entity.Warehouse{ID: DemoWarehouseID, CompanyID: DemoCompanyID, Name: "Bodega principal", Code: "WH", ViewLocationID: LocView, LotStockID: LocStock})

	s.PutPickingType(&entity.PickingType{
		ID: PickingTypeIn, CompanyID: DemoCompanyID, Name: "Recepciones", Code: entity.PickingTypeIncoming, SequencePrefix: "WH/IN/",
		WarehouseID: DemoWarehouseID, DefaultLocationSrcID: LocSupplier, DefaultLocationDestID: LocStock, ReturnTypeID: PickingTypeReturn,
	})
	s.PutPickingType(&entity.PickingType{
		ID: PickingTypeReturn, CompanyID: DemoCompanyID, Name: "Devoluciones a proveedor", Code: entity.PickingTypeOutgoing, SequencePrefix: "WH/RET/",
		WarehouseID: DemoWarehouseID, DefaultLocationSrcID: LocStock, DefaultLocationDestID: LocSupplier,
	})
	s.PutPickingType(&entity.PickingType{
		ID: PickingTypeOut, CompanyID: DemoCompanyID, Name: "Entregas", Code: entity.PickingTypeOutgoing, SequencePrefix: "WH/OUT/",
		WarehouseID: DemoWarehouseID, DefaultLocationSrcID: LocStock, DefaultLocationDestID: LocCustomer,
	})

	s.PutUoM(&entity.UoM{ID: UoMUnit, Name: "Unidades", CategoryID: "uom-cat-unit", Type: entity.UoMTypeReference, Factor: decimal.NewFromInt(1), Rounding: decimal.RequireFromString("0.01")})
	s.PutUoM(&entity.UoM{ID: UoMDozen, Name: "Docenas", CategoryID: "uom-cat-unit", Type: entity.UoMTypeBigger, Factor: decimal.NewFromInt(1).Div(decimal.NewFromInt(12)), Rounding: decimal.RequireFromString("0.01")})
	s.PutTax(&entity.Tax{ID: TaxIVA19, CompanyID: DemoCompanyID, Name: "IVA 19%", AmountType: entity.TaxAmountPercent, Amount: decimal.NewFromInt(19)})

	s.PutPartner(&entity.Partner{ID: DemoVendorID, CompanyID: DemoCompanyID, Name: "Aceros del Valle SAS", TaxID: "800987654", City: "Cali", Country: "Colombia", Lang: "es", PropertyStockSupplierID: LocSupplier})
	s.PutPartner(&entity.Partner{
		ID: DemoCustomerID, CompanyID: DemoCompanyID, Name: "Müller Bau GmbH", TaxID: "DE811907980", Street: "Hauptstraße 5", Zip: "10115", City: "Berlin", Country: "Deutschland",
		Lang: "de", PropertyStockCustomerID: LocCustomer,
	})

	s.PutProduct(&entity.Product{ID: ProductBolt, CompanyID: DemoCompanyID, SKU: "TOR-M8", Name: "Tornillo M8", Type: entity.ProductTypeStorable, UoMID: UoMUnit, ResponsibleID: ResponsibleID, Price: decimal.NewFromInt(250)})
	s.PutProduct(&entity.Product{ID: ProductService, CompanyID: DemoCompanyID, SKU: "FLETE", Name: "Flete", Type: entity.ProductTypeService, UoMID: UoMUnit})

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	s.PutSaleOrder(&entity.SaleOrder{
		ID: DemoSaleOrderID, CompanyID: DemoCompanyID, Name: "S00001", State: entity.SaleStateDraft, DateOrder: &date,
		ClientOrderRef: "PO-4711", PartnerID: DemoCustomerID, PartnerInvoiceID: DemoCustomerID, PartnerShippingID: DemoCustomerID, CurrencyID: "COP",
		AmountUntaxed: decimal.NewFromInt(2500), AmountTax: decimal.NewFromInt(475), AmountTotal: decimal.NewFromInt(2975),
		Lines: []*entity.SaleOrderLine{
			{ID: "sol-1", OrderID: DemoSaleOrderID, Name: "Tornillo M8", ProductID: ProductBolt, Quantity: decimal.NewFromInt(10), PriceUnit: decimal.NewFromInt(250), PriceSubtotal: decimal.NewFromInt(2500)},
		},
	})
}
