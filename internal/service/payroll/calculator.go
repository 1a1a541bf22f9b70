package payroll

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zenithhr/payroll-engine-go/internal/domain/attendance"
	"github.com/zenithhr/payroll-engine-go/internal/domain/payslip"
	"github.com/zenithhr/payroll-engine-go/internal/domain/rate"
	"github.com/zenithhr/payroll-engine-go/internal/domain/salaryprofile"
	"github.com/zenithhr/payroll-engine-go/internal/pkg/validator"
)

// RateLookup is the slice of the rate resolver the calculator consumes.
type RateLookup interface {
	Resolve(ctx context.Context, componentType rate.ComponentType, asOf time.Time) (rate.TemporalRateEntry, bool, error)
	ResolveForSalary(ctx context.Context, componentType rate.ComponentType, asOf time.Time, salary decimal.Decimal) (rate.TemporalRateEntry, bool, error)
}

// Overrides carries caller-supplied manual corrections for one computation.
type Overrides struct {
	OtherDeductions decimal.Decimal
}

// Calculator combines a salary profile, resolved rates and attendance
// proration into a full breakdown. It holds no mutable state; all
// configuration is resolved per computation and threaded through.
type Calculator struct {
	rates  RateLookup
	logger *slog.Logger
}

func NewCalculator(rates RateLookup, logger *slog.Logger) *Calculator {
	return &Calculator{rates: rates, logger: logger}
}

// Compute produces the breakdown for one employee month. A rate miss
// degrades that component to zero and is logged; a missing or non-positive
// gross salary is a validation error and nothing is produced.
//
// Reconciliation: overtime pay is an earnings component and the leave
// deduction is a deduction component, so
// totalEarnings - totalDeductions == netPay holds exactly after rounding.
func (c *Calculator) Compute(
	ctx context.Context,
	profile salaryprofile.SalaryProfile,
	pro Proration,
	summary attendance.MonthlySummary,
	asOf time.Time,
	ov Overrides,
) (payslip.Breakdown, error) {
	if profile.GrossSalary.LessThanOrEqual(decimal.Zero) {
		return payslip.Breakdown{}, validator.ValidationErrors{
			{Field: "gross_salary", Message: "must be greater than zero"},
		}
	}

	gross := profile.GrossSalary
	splitBase := gross.Sub(profile.OtherAllowances)

	// Earnings split. The split percentages are date-effective rate
	// configuration, not constants; profile overrides take precedence.
	basicDA := c.splitComponent(ctx, rate.ComponentBasicPercent, asOf, splitBase, profile.BasicDAOverride)
	hra := c.splitComponent(ctx, rate.ComponentHRAPercent, asOf, splitBase, profile.HRAOverride)
	conveyance := c.splitComponent(ctx, rate.ComponentConveyancePercent, asOf, splitBase, profile.ConveyanceOverride)

	// The residual absorbs the split remainder so earnings reconcile
	// exactly against the split base. A negative residual means the
	// configured split cannot fit inside the gross; the profile is
	// rejected rather than silently breaking reconciliation.
	special := splitBase.Sub(basicDA).Sub(hra).Sub(conveyance)
	if special.IsNegative() {
		return payslip.Breakdown{}, validator.ValidationErrors{
			{Field: "earnings_split", Message: "basic, HRA and conveyance exceed the splittable gross"},
		}
	}

	// Inputs pass through unrounded; only derived figures round.
	otherAllowances := profile.OtherAllowances
	totalEarnings := basicDA.Add(hra).Add(conveyance).Add(special).
		Add(otherAllowances).Add(pro.OvertimePay)

	adjustedGross := gross.Sub(pro.LeaveDeduction).Add(pro.OvertimePay)
	if adjustedGross.IsNegative() {
		adjustedGross = decimal.Zero
	}

	// Employee deductions. The PF statutory wage ceiling caps the
	// contribution base, not the final figure.
	pfBase := basicDA
	if ceiling, ok := c.lookup(ctx, rate.ComponentPFWageCeiling, asOf); ok && basicDA.GreaterThan(ceiling.Value) {
		pfBase = ceiling.Value
	}

	pfEmployee := decimal.Zero
	if profile.PFApplicable {
		pfEmployee = c.percentOf(ctx, rate.ComponentPFEmployee, asOf, pfBase)
	}

	esiEmployee := decimal.Zero
	if profile.ESIApplicable {
		esiEmployee = c.percentOf(ctx, rate.ComponentESIEmployee, asOf, gross)
	}

	// Professional tax is slab-matched on the unadjusted gross so an
	// employee's PT tier does not shift with month-to-month attendance.
	professionalTax := c.slabbedAmount(ctx, rate.ComponentProfessionalTax, asOf, gross, gross)

	// LWF is purely window-driven: months outside the populated windows
	// resolve to no rate and the component stays zero.
	lwf := decimal.Zero
	if entry, ok := c.lookup(ctx, rate.ComponentLWF, asOf); ok {
		lwf = applyEntry(entry, gross)
	}

	otherDeductions := roundUnit(ov.OtherDeductions)

	deductionsBeforeTDS := pro.LeaveDeduction.Add(pfEmployee).Add(esiEmployee).
		Add(professionalTax).Add(lwf).Add(otherDeductions)

	// TDS: slab-matched against the annualized projection of the monthly
	// net, then spread back over twelve months.
	tds := decimal.Zero
	netBeforeTDS := totalEarnings.Sub(deductionsBeforeTDS)
	if netBeforeTDS.IsPositive() {
		annualized := netBeforeTDS.Mul(decimal.NewFromInt(12))
		if annual := c.slabbedAmount(ctx, rate.ComponentTDS, asOf, annualized, annualized); annual.IsPositive() {
			tds = roundUnit(annual.Div(decimal.NewFromInt(12)))
		}
	}

	totalDeductions := deductionsBeforeTDS.Add(tds)

	// Employer contributions, each resolved and rounded independently.
	pfEmployer := decimal.Zero
	pfAdmin := decimal.Zero
	edli := decimal.Zero
	if profile.PFApplicable {
		pfEmployer = c.percentOf(ctx, rate.ComponentPFEmployer, asOf, pfBase)
		pfAdmin = c.percentOf(ctx, rate.ComponentPFAdmin, asOf, pfBase)
		edli = c.percentOf(ctx, rate.ComponentEDLI, asOf, pfBase)
	}
	esiEmployer := decimal.Zero
	if profile.ESIApplicable {
		esiEmployer = c.percentOf(ctx, rate.ComponentESIEmployer, asOf, gross)
	}
	bonus := c.percentOf(ctx, rate.ComponentBonus, asOf, basicDA)
	gratuity := c.percentOf(ctx, rate.ComponentGratuity, asOf, basicDA)

	totalEmployer := pfEmployer.Add(esiEmployer).Add(bonus).Add(gratuity).Add(pfAdmin).Add(edli)

	netPay := totalEarnings.Sub(totalDeductions)
	employerCost := totalEarnings.Add(totalEmployer)

	return payslip.Breakdown{
		GrossSalary: gross,

		BasicDA:          basicDA,
		HRA:              hra,
		Conveyance:       conveyance,
		SpecialAllowance: special,
		OtherAllowances:  otherAllowances,
		OvertimePay:      pro.OvertimePay,
		TotalEarnings:    totalEarnings,

		LeaveDeduction:  pro.LeaveDeduction,
		PFEmployee:      pfEmployee,
		ESIEmployee:     esiEmployee,
		ProfessionalTax: professionalTax,
		LWF:             lwf,
		TDS:             tds,
		OtherDeductions: otherDeductions,
		TotalDeductions: totalDeductions,

		PFEmployer:                 pfEmployer,
		ESIEmployer:                esiEmployer,
		Bonus:                      bonus,
		Gratuity:                   gratuity,
		PFAdmin:                    pfAdmin,
		EDLI:                       edli,
		TotalEmployerContributions: totalEmployer,

		WorkingDays:   decimal.NewFromInt(int64(summary.WorkingDays)),
		PresentDays:   decimal.NewFromInt(int64(summary.PresentDays)),
		LeaveDays:     pro.LeaveDays,
		OvertimeHours: summary.OvertimeHours,
		AdjustedGross: adjustedGross,

		NetPay:       netPay,
		EmployerCost: employerCost,
	}, nil
}

// splitComponent derives one earnings-split component, preferring the
// profile override over the configured percentage.
func (c *Calculator) splitComponent(ctx context.Context, componentType rate.ComponentType, asOf time.Time, base decimal.Decimal, override *decimal.Decimal) decimal.Decimal {
	if override != nil {
		return roundUnit(*override)
	}
	return c.percentOf(ctx, componentType, asOf, base)
}

// percentOf resolves a percentage component and applies it to base,
// rounded. A miss degrades to zero.
func (c *Calculator) percentOf(ctx context.Context, componentType rate.ComponentType, asOf time.Time, base decimal.Decimal) decimal.Decimal {
	entry, ok := c.lookup(ctx, componentType, asOf)
	if !ok {
		return decimal.Zero
	}
	return applyEntry(entry, base)
}

// slabbedAmount resolves a slab-based component against salary and applies
// the matched entry to base. No matching slab means zero.
func (c *Calculator) slabbedAmount(ctx context.Context, componentType rate.ComponentType, asOf time.Time, salary, base decimal.Decimal) decimal.Decimal {
	entry, ok, err := c.rates.ResolveForSalary(ctx, componentType, asOf, salary)
	if err != nil {
		c.logger.Warn("rate resolution failed, component degraded to zero",
			slog.String("component_type", string(componentType)),
			slog.String("error", err.Error()),
		)
		return decimal.Zero
	}
	if !ok {
		return decimal.Zero
	}
	return applyEntry(entry, base)
}

func (c *Calculator) lookup(ctx context.Context, componentType rate.ComponentType, asOf time.Time) (rate.TemporalRateEntry, bool) {
	entry, ok, err := c.rates.Resolve(ctx, componentType, asOf)
	if err != nil {
		c.logger.Warn("rate resolution failed, component degraded to zero",
			slog.String("component_type", string(componentType)),
			slog.String("error", err.Error()),
		)
		return rate.TemporalRateEntry{}, false
	}
	if !ok {
		c.logger.Warn("no applicable rate, component degraded to zero",
			slog.String("component_type", string(componentType)),
			slog.Time("as_of", asOf),
		)
		return rate.TemporalRateEntry{}, false
	}
	return entry, true
}

// applyEntry evaluates a rate entry against a base amount, rounded to the
// whole currency unit.
func applyEntry(entry rate.TemporalRateEntry, base decimal.Decimal) decimal.Decimal {
	switch entry.ValueKind {
	case rate.ValueKindPercent:
		return roundUnit(base.Mul(entry.Value).Div(hundred))
	case rate.ValueKindFixed:
		return roundUnit(entry.Value)
	}
	return decimal.Zero
}
