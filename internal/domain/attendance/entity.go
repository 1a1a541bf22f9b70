package attendance

import "github.com/shopspring/decimal"

// MonthlySummary aggregates one employee's attendance for one month.
// The attendance subsystem produces it; payroll only consumes it.
type MonthlySummary struct {
	EmployeeID  string
	WorkingDays int
	PresentDays int
	// LeaveDays is nil when the attendance subsystem recorded no explicit
	// leave count; payroll then derives it from presence.
	LeaveDays     *int
	WorkingHours  decimal.Decimal
	OvertimeHours decimal.Decimal
}
