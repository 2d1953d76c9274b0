package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/ports"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/pkg/nit"
)

// CompanyUseCase alta de empresas y parámetros de compras.
type CompanyUseCase struct {
	tx              ports.TxRunner
	defaultCurrency string
	log             zerolog.Logger
}

// NewCompanyUseCase construye el caso de uso. defaultCurrency aplica cuando el alta no indica moneda.
func NewCompanyUseCase(tx ports.TxRunner, defaultCurrency string, log zerolog.Logger) *CompanyUseCase {
	if defaultCurrency == "" {
		defaultCurrency = "COP"
	}
	return &CompanyUseCase{tx: tx, defaultCurrency: defaultCurrency, log: log}
}

// Create crea una nueva empresa. Genera ID y estado inicial. Devuelve domain.ErrDuplicate si el NIT ya existe.
// El NIT se guarda con dígito de verificación ("900123456-7").
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	taxID, err := nit.Normalize(in.NIT)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	now := time.Now()
	company := &entity.Company{
		ID:               uuid.New().String(),
		Name:             strings.TrimSpace(in.Name),
		NIT:              taxID,
		Address:          in.Address,
		Phone:            in.Phone,
		Email:            in.Email,
		CurrencyID:       strings.ToUpper(in.CurrencyID),
		Status:           "active",
		POApprovalAmount: decimal.Zero,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if company.CurrencyID == "" {
		company.CurrencyID = uc.defaultCurrency
	}
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		existing, err := r.Companies.GetByNIT(ctx, company.NIT)
		if err != nil {
			return fmt.Errorf("get company by nit: %w", err)
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		return r.Companies.Create(ctx, company)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("company", company.ID).Str("nit", company.NIT).Msg("empresa creada")
	return toCompanyResponse(company), nil
}

// GetByID obtiene la empresa de la sesión.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	var out *dto.CompanyResponse
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		company, err := r.Companies.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get company: %w", err)
		}
		if company == nil {
			return domain.ErrNotFound
		}
		out = toCompanyResponse(company)
		return nil
	})
	return out, err
}

// UpdatePurchaseSettings modifica plazo de seguridad y doble validación de pedidos.
// Los pedidos ya confirmados no se reevalúan.
func (uc *CompanyUseCase) UpdatePurchaseSettings(ctx context.Context, id string, in dto.UpdatePurchaseSettingsRequest) (*dto.CompanyResponse, error) {
	if in.POApprovalAmount != nil && in.POApprovalAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.CompanyResponse
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		company, err := r.Companies.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get company: %w", err)
		}
		if company == nil {
			return domain.ErrNotFound
		}
		if in.POLeadDays != nil {
			company.POLeadDays = *in.POLeadDays
		}
		if in.PODoubleValidation != nil {
			company.PODoubleValidation = *in.PODoubleValidation
		}
		if in.POApprovalAmount != nil {
			company.POApprovalAmount = *in.POApprovalAmount
		}
		company.UpdatedAt = time.Now()
		if err := r.Companies.Update(ctx, company); err != nil {
			return fmt.Errorf("update company: %w", err)
		}
		out = toCompanyResponse(company)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("company", id).Int("lead_days", out.POLeadDays).
		Bool("double_validation", out.PODoubleValidation).Msg("parámetros de compras actualizados")
	return out, nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:                 c.ID,
		Name:               c.Name,
		NIT:                c.NIT,
		Address:            c.Address,
		Phone:              c.Phone,
		Email:              c.Email,
		CurrencyID:         c.CurrencyID,
		Status:             c.Status,
		POLeadDays:         c.POLeadDays,
		PODoubleValidation: c.PODoubleValidation,
		POApprovalAmount:   c.POApprovalAmount,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}
