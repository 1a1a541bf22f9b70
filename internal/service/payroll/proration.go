package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/zenithhr/payroll-engine-go/internal/pkg/validator"
)

var hundred = decimal.NewFromInt(100)

// roundUnit rounds to the nearest whole currency unit. Every derived
// monetary figure is rounded exactly once, at the point it is computed;
// totals are sums of already-rounded figures and are never re-rounded.
func roundUnit(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

type ProrationInput struct {
	GrossSalary decimal.Decimal
	WorkingDays int
	PresentDays int
	// LeaveDays, when non-nil, is the explicit leave count and takes
	// precedence; otherwise it is derived as WorkingDays - PresentDays.
	LeaveDays     *int
	WorkingHours  decimal.Decimal
	OvertimeHours decimal.Decimal
	OvertimeRate  decimal.Decimal // multiplier on the hourly rate, e.g. 2
}

type Proration struct {
	PerDayRate      decimal.Decimal
	LeaveDays       decimal.Decimal
	LeaveDeduction  decimal.Decimal
	OvertimePay     decimal.Decimal
	PayableFraction decimal.Decimal
}

// Prorate turns raw attendance counts into the leave deduction and overtime
// pay applied by the breakdown calculator. The per-day-rate deduction is the
// canonical proration strategy; PayableFraction is reported for audit only.
func Prorate(in ProrationInput) (Proration, error) {
	if in.WorkingDays <= 0 {
		return Proration{}, validator.ValidationErrors{
			{Field: "total_working_days", Message: "must be greater than zero"},
		}
	}

	workingDays := decimal.NewFromInt(int64(in.WorkingDays))
	perDayRate := in.GrossSalary.Div(workingDays)

	// Every working day not attended and not covered by an explicit leave
	// count is unpaid; zero presence means the whole month is deducted.
	leaveDays := in.WorkingDays - in.PresentDays
	if in.LeaveDays != nil {
		leaveDays = *in.LeaveDays
	}
	// Attendance exceeding working days clamps to zero deduction.
	if leaveDays < 0 {
		leaveDays = 0
	}
	leave := decimal.NewFromInt(int64(leaveDays))
	leaveDeduction := roundUnit(perDayRate.Mul(leave))

	overtimePay := decimal.Zero
	if in.OvertimeHours.IsPositive() {
		if !in.WorkingHours.IsPositive() {
			return Proration{}, validator.ValidationErrors{
				{Field: "total_working_hours", Message: "must be greater than zero when overtime hours are present"},
			}
		}
		hourlyRate := in.GrossSalary.Div(in.WorkingHours)
		overtimePay = roundUnit(hourlyRate.Mul(in.OvertimeHours).Mul(in.OvertimeRate))
	}

	payable := workingDays.Sub(leave)
	if payable.IsNegative() {
		payable = decimal.Zero
	}

	return Proration{
		PerDayRate:      perDayRate,
		LeaveDays:       leave,
		LeaveDeduction:  leaveDeduction,
		OvertimePay:     overtimePay,
		PayableFraction: payable.Div(workingDays),
	}, nil
}
