package payslip

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum. Money fields freeze at creation; only status and payment
// metadata change afterwards.
type Status string

const (
	StatusPending   Status = "pending"
	StatusProcessed Status = "processed"
	StatusPaid      Status = "paid"
	StatusHold      Status = "hold"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessed, StatusPaid, StatusHold:
		return true
	}
	return false
}

// CanTransition reports whether a slip may move from s to next.
// pending -> processed -> paid, with hold reachable from pending or
// processed. Hold releases forward to processed, never back to pending.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusProcessed || next == StatusHold
	case StatusProcessed:
		return next == StatusPaid || next == StatusHold
	case StatusHold:
		return next == StatusProcessed
	}
	return false
}

// Breakdown is the full computed salary result for one employee month.
// Every monetary figure is rounded to the whole currency unit at the point
// it is computed; totals are sums of already-rounded figures.
type Breakdown struct {
	GrossSalary decimal.Decimal

	// Earnings
	BasicDA          decimal.Decimal
	HRA              decimal.Decimal
	Conveyance       decimal.Decimal
	SpecialAllowance decimal.Decimal
	OtherAllowances  decimal.Decimal
	OvertimePay      decimal.Decimal
	TotalEarnings    decimal.Decimal

	// Employee deductions
	LeaveDeduction  decimal.Decimal
	PFEmployee      decimal.Decimal
	ESIEmployee     decimal.Decimal
	ProfessionalTax decimal.Decimal
	LWF             decimal.Decimal
	TDS             decimal.Decimal
	OtherDeductions decimal.Decimal
	TotalDeductions decimal.Decimal

	// Employer contributions (cost-to-company, not subtracted from pay)
	PFEmployer                 decimal.Decimal
	ESIEmployer                decimal.Decimal
	Bonus                      decimal.Decimal
	Gratuity                   decimal.Decimal
	PFAdmin                    decimal.Decimal
	EDLI                       decimal.Decimal
	TotalEmployerContributions decimal.Decimal

	// Attendance figures the computation was based on
	WorkingDays   decimal.Decimal
	PresentDays   decimal.Decimal
	LeaveDays     decimal.Decimal
	OvertimeHours decimal.Decimal
	AdjustedGross decimal.Decimal

	NetPay       decimal.Decimal
	EmployerCost decimal.Decimal
}

// Payslip is one immutable computed result for one (employee, month) pair.
// Month is normalized to the first day of the month.
type Payslip struct {
	ID         string
	EmployeeID string
	Month      time.Time
	Breakdown

	Status           Status
	PaidAt           *time.Time
	PaymentReference *string
	Notes            *string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// NormalizeMonth truncates d to the first day of its month.
func NormalizeMonth(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}
