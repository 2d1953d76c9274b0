package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`
	NIT        string `json:"nit" validate:"required,min=1,max=20"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Email      string `json:"email" validate:"omitempty,email"`
	CurrencyID string `json:"currency_id" validate:"omitempty,len=3"`
}

// UpdatePurchaseSettingsRequest parámetros de compras (campos opcionales).
type UpdatePurchaseSettingsRequest struct {
	POLeadDays         *int             `json:"po_lead_days" validate:"omitempty,min=0,max=365"`
	PODoubleValidation *bool            `json:"po_double_validation"`
	POApprovalAmount   *decimal.Decimal `json:"po_approval_amount"`
}

// CompanyResponse salida de una empresa (sin datos sensibles).
type CompanyResponse struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	NIT                string          `json:"nit"`
	Address            string          `json:"address"`
	Phone              string          `json:"phone"`
	Email              string          `json:"email"`
	CurrencyID         string          `json:"currency_id"`
	Status             string          `json:"status"`
	POLeadDays         int             `json:"po_lead_days"`
	PODoubleValidation bool            `json:"po_double_validation"`
	POApprovalAmount   decimal.Decimal `json:"po_approval_amount"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}
