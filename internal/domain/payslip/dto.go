package payslip

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/zenithhr/payroll-engine-go/internal/pkg/validator"
)

type GenerateSlipRequest struct {
	EmployeeID      string           `json:"employee_id"`
	Month           string           `json:"month"` // YYYY-MM
	OtherDeductions *decimal.Decimal `json:"other_deductions,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
}

func (r *GenerateSlipRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID == "" {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidMonth(r.Month); !ok {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be a valid month (YYYY-MM)"})
	}
	if r.OtherDeductions != nil && r.OtherDeductions.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "other_deductions", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GenerateBatchRequest struct {
	Month       string   `json:"month"` // YYYY-MM
	EmployeeIDs []string `json:"employee_ids,omitempty"` // Empty = all active employees
}

func (r *GenerateBatchRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidMonth(r.Month); !ok {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be a valid month (YYYY-MM)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateSlipStatusRequest struct {
	ID               string
	Status           string  `json:"status"`
	PaidAt           *string `json:"paid_at,omitempty"` // RFC3339
	PaymentReference *string `json:"payment_reference,omitempty"`
}

func (r *UpdateSlipStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !Status(r.Status).Valid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of pending, processed, paid, hold"})
	}
	if r.PaidAt != nil {
		if _, ok := validator.IsValidDateTime(*r.PaidAt); !ok {
			errs = append(errs, validator.ValidationError{Field: "paid_at", Message: "must be a valid RFC3339 timestamp"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BatchOutcomeStatus enum for per-employee batch results.
type BatchOutcomeStatus string

const (
	OutcomeCreated   BatchOutcomeStatus = "created"
	OutcomeDuplicate BatchOutcomeStatus = "duplicate"
	OutcomeFailed    BatchOutcomeStatus = "failed"
)

type BatchOutcome struct {
	EmployeeID string             `json:"employee_id"`
	Status     BatchOutcomeStatus `json:"status"`
	SlipID     *string            `json:"slip_id,omitempty"`
	Error      *string            `json:"error,omitempty"`
}

type SlipResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	EmployeeCode string `json:"employee_code,omitempty"`
	Month        string `json:"month"`

	GrossSalary decimal.Decimal `json:"gross_salary"`

	BasicDA          decimal.Decimal `json:"basic_da"`
	HRA              decimal.Decimal `json:"hra"`
	Conveyance       decimal.Decimal `json:"conveyance"`
	SpecialAllowance decimal.Decimal `json:"special_allowance"`
	OtherAllowances  decimal.Decimal `json:"other_allowances"`
	OvertimePay      decimal.Decimal `json:"overtime_pay"`
	TotalEarnings    decimal.Decimal `json:"total_earnings"`

	LeaveDeduction  decimal.Decimal `json:"leave_deduction"`
	PFEmployee      decimal.Decimal `json:"pf_employee"`
	ESIEmployee     decimal.Decimal `json:"esi_employee"`
	ProfessionalTax decimal.Decimal `json:"professional_tax"`
	LWF             decimal.Decimal `json:"lwf"`
	TDS             decimal.Decimal `json:"tds"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`

	PFEmployer                 decimal.Decimal `json:"pf_employer"`
	ESIEmployer                decimal.Decimal `json:"esi_employer"`
	Bonus                      decimal.Decimal `json:"bonus"`
	Gratuity                   decimal.Decimal `json:"gratuity"`
	PFAdmin                    decimal.Decimal `json:"pf_admin"`
	EDLI                       decimal.Decimal `json:"edli"`
	TotalEmployerContributions decimal.Decimal `json:"total_employer_contributions"`

	WorkingDays   decimal.Decimal `json:"working_days"`
	PresentDays   decimal.Decimal `json:"present_days"`
	LeaveDays     decimal.Decimal `json:"leave_days"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	AdjustedGross decimal.Decimal `json:"adjusted_gross"`

	NetPay       decimal.Decimal `json:"net_pay"`
	EmployerCost decimal.Decimal `json:"employer_cost"`

	Status           string  `json:"status"`
	PaidAt           *string `json:"paid_at,omitempty"`
	PaymentReference *string `json:"payment_reference,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

func ToSlipResponse(s Payslip) SlipResponse {
	var paidAtStr *string
	if s.PaidAt != nil {
		str := s.PaidAt.Format(time.RFC3339)
		paidAtStr = &str
	}

	employeeName := ""
	employeeCode := ""
	if s.EmployeeName != nil {
		employeeName = *s.EmployeeName
	}
	if s.EmployeeCode != nil {
		employeeCode = *s.EmployeeCode
	}

	return SlipResponse{
		ID:           s.ID,
		EmployeeID:   s.EmployeeID,
		EmployeeName: employeeName,
		EmployeeCode: employeeCode,
		Month:        s.Month.Format("2006-01"),

		GrossSalary: s.GrossSalary,

		BasicDA:          s.BasicDA,
		HRA:              s.HRA,
		Conveyance:       s.Conveyance,
		SpecialAllowance: s.SpecialAllowance,
		OtherAllowances:  s.OtherAllowances,
		OvertimePay:      s.OvertimePay,
		TotalEarnings:    s.TotalEarnings,

		LeaveDeduction:  s.LeaveDeduction,
		PFEmployee:      s.PFEmployee,
		ESIEmployee:     s.ESIEmployee,
		ProfessionalTax: s.ProfessionalTax,
		LWF:             s.LWF,
		TDS:             s.TDS,
		OtherDeductions: s.OtherDeductions,
		TotalDeductions: s.TotalDeductions,

		PFEmployer:                 s.PFEmployer,
		ESIEmployer:                s.ESIEmployer,
		Bonus:                      s.Bonus,
		Gratuity:                   s.Gratuity,
		PFAdmin:                    s.PFAdmin,
		EDLI:                       s.EDLI,
		TotalEmployerContributions: s.TotalEmployerContributions,

		WorkingDays:   s.WorkingDays,
		PresentDays:   s.PresentDays,
		LeaveDays:     s.LeaveDays,
		OvertimeHours: s.OvertimeHours,
		AdjustedGross: s.AdjustedGross,

		NetPay:       s.NetPay,
		EmployerCost: s.EmployerCost,

		Status:           string(s.Status),
		PaidAt:           paidAtStr,
		PaymentReference: s.PaymentReference,
		Notes:            s.Notes,
	}
}

func ToSlipResponses(slips []Payslip) []SlipResponse {
	result := make([]SlipResponse, 0, len(slips))
	for _, s := range slips {
		result = append(result, ToSlipResponse(s))
	}
	return result
}
