package salaryprofile

import (
	"github.com/shopspring/decimal"
	"github.com/zenithhr/payroll-engine-go/internal/pkg/validator"
)

type CreateSalaryProfileRequest struct {
	EmployeeID         string           `json:"-"`
	GrossSalary        decimal.Decimal  `json:"gross_salary"`
	OtherAllowances    *decimal.Decimal `json:"other_allowances,omitempty"`
	BasicDAOverride    *decimal.Decimal `json:"basic_da_override,omitempty"`
	HRAOverride        *decimal.Decimal `json:"hra_override,omitempty"`
	ConveyanceOverride *decimal.Decimal `json:"conveyance_override,omitempty"`
	PFApplicable       *bool            `json:"pf_applicable,omitempty"`
	ESIApplicable      *bool            `json:"esi_applicable,omitempty"`
	EffectiveFrom      string           `json:"effective_from"`
}

func (r *CreateSalaryProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.GrossSalary.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, validator.ValidationError{Field: "gross_salary", Message: "must be greater than zero"})
	}
	if r.OtherAllowances != nil && r.OtherAllowances.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "other_allowances", Message: "must be non-negative"})
	}
	if r.EffectiveFrom == "" {
		errs = append(errs, validator.ValidationError{Field: "effective_from", Message: "is required"})
	} else if _, ok := validator.IsValidDate(r.EffectiveFrom); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_from", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SalaryProfileResponse struct {
	ID                 string           `json:"id"`
	EmployeeID         string           `json:"employee_id"`
	GrossSalary        decimal.Decimal  `json:"gross_salary"`
	OtherAllowances    decimal.Decimal  `json:"other_allowances"`
	BasicDAOverride    *decimal.Decimal `json:"basic_da_override,omitempty"`
	HRAOverride        *decimal.Decimal `json:"hra_override,omitempty"`
	ConveyanceOverride *decimal.Decimal `json:"conveyance_override,omitempty"`
	PFApplicable       bool             `json:"pf_applicable"`
	ESIApplicable      bool             `json:"esi_applicable"`
	EffectiveFrom      string           `json:"effective_from"`
	EffectiveTo        *string          `json:"effective_to,omitempty"`
	IsActive           bool             `json:"is_active"`
}

func ToSalaryProfileResponse(p SalaryProfile) SalaryProfileResponse {
	var effectiveTo *string
	if p.EffectiveTo != nil {
		str := p.EffectiveTo.Format("2006-01-02")
		effectiveTo = &str
	}
	return SalaryProfileResponse{
		ID:                 p.ID,
		EmployeeID:         p.EmployeeID,
		GrossSalary:        p.GrossSalary,
		OtherAllowances:    p.OtherAllowances,
		BasicDAOverride:    p.BasicDAOverride,
		HRAOverride:        p.HRAOverride,
		ConveyanceOverride: p.ConveyanceOverride,
		PFApplicable:       p.PFApplicable,
		ESIApplicable:      p.ESIApplicable,
		EffectiveFrom:      p.EffectiveFrom.Format("2006-01-02"),
		EffectiveTo:        effectiveTo,
		IsActive:           p.IsActive,
	}
}
