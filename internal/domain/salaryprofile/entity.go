package salaryprofile

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryProfile is one versioned salary structure for one employee.
// When the salary changes a new profile is created and the previous one is
// window-closed, never deleted, so slips computed under it stay auditable.
type SalaryProfile struct {
	ID              string
	EmployeeID      string
	GrossSalary     decimal.Decimal
	OtherAllowances decimal.Decimal
	// Explicit overrides for the derived earnings split. Nil = derive
	// from the configured split percentages.
	BasicDAOverride    *decimal.Decimal
	HRAOverride        *decimal.Decimal
	ConveyanceOverride *decimal.Decimal
	PFApplicable       bool
	ESIApplicable      bool
	EffectiveFrom      time.Time
	EffectiveTo        *time.Time // nil = current
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CoversDate reports whether the profile window contains d.
func (p SalaryProfile) CoversDate(d time.Time) bool {
	if p.EffectiveFrom.After(d) {
		return false
	}
	if p.EffectiveTo != nil && p.EffectiveTo.Before(d) {
		return false
	}
	return true
}
