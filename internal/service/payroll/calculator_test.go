package payroll

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zenithhr/payroll-engine-go/internal/domain/attendance"
	"github.com/zenithhr/payroll-engine-go/internal/domain/rate"
	"github.com/zenithhr/payroll-engine-go/internal/domain/salaryprofile"
	"github.com/zenithhr/payroll-engine-go/internal/pkg/validator"
)

// stubRates satisfies RateLookup from a fixed entry table. Resolve returns
// the first entry; ResolveForSalary matches slab bounds like the real
// resolver.
type stubRates struct {
	entries map[rate.ComponentType][]rate.TemporalRateEntry
}

func (s *stubRates) Resolve(ctx context.Context, componentType rate.ComponentType, asOf time.Time) (rate.TemporalRateEntry, bool, error) {
	list := s.entries[componentType]
	if len(list) == 0 {
		return rate.TemporalRateEntry{}, false, nil
	}
	return list[0], true, nil
}

func (s *stubRates) ResolveForSalary(ctx context.Context, componentType rate.ComponentType, asOf time.Time, salary decimal.Decimal) (rate.TemporalRateEntry, bool, error) {
	for _, e := range s.entries[componentType] {
		if e.CoversSalary(salary) {
			return e, true, nil
		}
	}
	return rate.TemporalRateEntry{}, false, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr[T any](v T) *T { return &v }

func percentEntry(id string, componentType rate.ComponentType, value float64) rate.TemporalRateEntry {
	return rate.TemporalRateEntry{
		ID:            id,
		ComponentType: componentType,
		ValueKind:     rate.ValueKindPercent,
		Value:         decimal.NewFromFloat(value),
		IsActive:      true,
	}
}

func fixedEntry(id string, componentType rate.ComponentType, value int64) rate.TemporalRateEntry {
	return rate.TemporalRateEntry{
		ID:            id,
		ComponentType: componentType,
		ValueKind:     rate.ValueKindFixed,
		Value:         decimal.NewFromInt(value),
		IsActive:      true,
	}
}

func slabEntry(e rate.TemporalRateEntry, min, max *int64) rate.TemporalRateEntry {
	if min != nil {
		e.SlabMin = ptr(decimal.NewFromInt(*min))
	}
	if max != nil {
		e.SlabMax = ptr(decimal.NewFromInt(*max))
	}
	return e
}

// statutoryRates mirrors a typical production configuration: a 50/20/10
// earnings split, 12% PF on a 15000 wage base ceiling, and fixed
// professional tax slabs.
func statutoryRates() *stubRates {
	return &stubRates{entries: map[rate.ComponentType][]rate.TemporalRateEntry{
		rate.ComponentBasicPercent:      {percentEntry("basic", rate.ComponentBasicPercent, 50)},
		rate.ComponentHRAPercent:        {percentEntry("hra", rate.ComponentHRAPercent, 20)},
		rate.ComponentConveyancePercent: {percentEntry("conv", rate.ComponentConveyancePercent, 10)},
		rate.ComponentPFEmployee:        {percentEntry("pf-emp", rate.ComponentPFEmployee, 12)},
		rate.ComponentPFEmployer:        {percentEntry("pf-er", rate.ComponentPFEmployer, 12)},
		rate.ComponentPFWageCeiling:     {fixedEntry("pf-ceiling", rate.ComponentPFWageCeiling, 15000)},
		rate.ComponentPFAdmin:           {percentEntry("pf-admin", rate.ComponentPFAdmin, 0.5)},
		rate.ComponentEDLI:              {percentEntry("edli", rate.ComponentEDLI, 0.5)},
		rate.ComponentBonus:             {percentEntry("bonus", rate.ComponentBonus, 8.33)},
		rate.ComponentGratuity:          {percentEntry("gratuity", rate.ComponentGratuity, 4.81)},
		rate.ComponentProfessionalTax: {
			slabEntry(fixedEntry("pt-1", rate.ComponentProfessionalTax, 0), ptr(int64(0)), ptr(int64(7500))),
			slabEntry(fixedEntry("pt-2", rate.ComponentProfessionalTax, 175), ptr(int64(7501)), ptr(int64(10000))),
			slabEntry(fixedEntry("pt-3", rate.ComponentProfessionalTax, 200), ptr(int64(10001)), nil),
		},
	}}
}

func fullAttendance() attendance.MonthlySummary {
	return attendance.MonthlySummary{
		WorkingDays: 26,
		PresentDays: 26,
	}
}

var asOf = time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

func TestCalculator_Compute_FullMonth(t *testing.T) {
	calc := NewCalculator(statutoryRates(), testLogger())

	profile := salaryprofile.SalaryProfile{
		GrossSalary:  decimal.NewFromInt(30000),
		PFApplicable: true,
	}

	pro, err := Prorate(ProrationInput{
		GrossSalary: profile.GrossSalary,
		WorkingDays: 26,
		PresentDays: 26,
	})
	require.NoError(t, err)

	b, err := calc.Compute(context.Background(), profile, pro, fullAttendance(), asOf, Overrides{OtherDeductions: decimal.Zero})
	require.NoError(t, err)

	assert.True(t, b.BasicDA.Equal(decimal.NewFromInt(15000)), "basic %s", b.BasicDA)
	assert.True(t, b.HRA.Equal(decimal.NewFromInt(6000)), "hra %s", b.HRA)
	assert.True(t, b.Conveyance.Equal(decimal.NewFromInt(3000)), "conveyance %s", b.Conveyance)
	assert.True(t, b.SpecialAllowance.Equal(decimal.NewFromInt(6000)), "special %s", b.SpecialAllowance)
	assert.True(t, b.TotalEarnings.Equal(decimal.NewFromInt(30000)), "earnings %s", b.TotalEarnings)

	assert.True(t, b.PFEmployee.Equal(decimal.NewFromInt(1800)), "pf %s", b.PFEmployee)
	assert.True(t, b.ESIEmployee.IsZero(), "esi should be gated off")
	assert.True(t, b.ProfessionalTax.Equal(decimal.NewFromInt(200)), "pt %s", b.ProfessionalTax)
	assert.True(t, b.TotalDeductions.Equal(decimal.NewFromInt(2000)), "deductions %s", b.TotalDeductions)
	assert.True(t, b.NetPay.Equal(decimal.NewFromInt(28000)), "net %s", b.NetPay)

	assert.True(t, b.PFEmployer.Equal(decimal.NewFromInt(1800)))
	assert.True(t, b.PFAdmin.Equal(decimal.NewFromInt(75)))
	assert.True(t, b.EDLI.Equal(decimal.NewFromInt(75)))
	assert.True(t, b.Bonus.Equal(decimal.NewFromInt(1250)), "bonus %s", b.Bonus)
	assert.True(t, b.Gratuity.Equal(decimal.NewFromInt(722)), "gratuity %s", b.Gratuity)
	assert.True(t, b.TotalEmployerContributions.Equal(decimal.NewFromInt(3922)))
	assert.True(t, b.EmployerCost.Equal(decimal.NewFromInt(33922)))
}

func TestCalculator_Compute_LeaveMonthReconciles(t *testing.T) {
	calc := NewCalculator(statutoryRates(), testLogger())

	profile := salaryprofile.SalaryProfile{
		GrossSalary:  decimal.NewFromInt(30000),
		PFApplicable: true,
	}

	pro, err := Prorate(ProrationInput{
		GrossSalary: profile.GrossSalary,
		WorkingDays: 26,
		PresentDays: 24,
		LeaveDays:   ptr(2),
	})
	require.NoError(t, err)

	summary := attendance.MonthlySummary{WorkingDays: 26, PresentDays: 24, LeaveDays: ptr(2)}
	b, err := calc.Compute(context.Background(), profile, pro, summary, asOf, Overrides{OtherDeductions: decimal.Zero})
	require.NoError(t, err)

	assert.True(t, b.LeaveDeduction.Equal(decimal.NewFromInt(2308)), "leave deduction %s", b.LeaveDeduction)
	assert.True(t, b.AdjustedGross.Equal(decimal.NewFromInt(27692)), "adjusted gross %s", b.AdjustedGross)

	// Earnings minus deductions reconcile exactly to net pay.
	assert.True(t, b.TotalEarnings.Sub(b.TotalDeductions).Equal(b.NetPay))
	assert.True(t, b.NetPay.Equal(decimal.NewFromInt(25692)), "net %s", b.NetPay)
}

func TestCalculator_Compute_SplitSumsToSplitBase(t *testing.T) {
	calc := NewCalculator(statutoryRates(), testLogger())

	profile := salaryprofile.SalaryProfile{
		GrossSalary:     decimal.NewFromInt(30000),
		OtherAllowances: decimal.NewFromInt(2000),
		PFApplicable:    true,
	}

	pro, err := Prorate(ProrationInput{GrossSalary: profile.GrossSalary, WorkingDays: 26, PresentDays: 26})
	require.NoError(t, err)

	b, err := calc.Compute(context.Background(), profile, pro, fullAttendance(), asOf, Overrides{OtherDeductions: decimal.Zero})
	require.NoError(t, err)

	splitBase := profile.GrossSalary.Sub(profile.OtherAllowances)
	splitSum := b.BasicDA.Add(b.HRA).Add(b.Conveyance).Add(b.SpecialAllowance)
	assert.True(t, splitSum.Equal(splitBase), "split sum %s, base %s", splitSum, splitBase)
	assert.True(t, b.TotalEarnings.Equal(profile.GrossSalary), "earnings %s", b.TotalEarnings)
}

func TestCalculator_Compute_ProfileOverridesWinOverSplit(t *testing.T) {
	calc := NewCalculator(statutoryRates(), testLogger())

	profile := salaryprofile.SalaryProfile{
		GrossSalary:     decimal.NewFromInt(30000),
		BasicDAOverride: ptr(decimal.NewFromInt(18000)),
		PFApplicable:    true,
	}

	pro, err := Prorate(ProrationInput{GrossSalary: profile.GrossSalary, WorkingDays: 26, PresentDays: 26})
	require.NoError(t, err)

	b, err := calc.Compute(context.Background(), profile, pro, fullAttendance(), asOf, Overrides{OtherDeductions: decimal.Zero})
	require.NoError(t, err)

	assert.True(t, b.BasicDA.Equal(decimal.NewFromInt(18000)))
	// Residual shrinks so the split still reconciles.
	splitSum := b.BasicDA.Add(b.HRA).Add(b.Conveyance).Add(b.SpecialAllowance)
	assert.True(t, splitSum.Equal(profile.GrossSalary))
}

func TestCalculator_Compute_OverridesExceedingGrossRejected(t *testing.T) {
	calc := NewCalculator(statutoryRates(), testLogger())

	// 25000 + 10000 overrides cannot fit inside a 30000 gross; the
	// computation must fail rather than emit a breakdown whose split no
	// longer sums to the gross.
	profile := salaryprofile.SalaryProfile{
		GrossSalary:     decimal.NewFromInt(30000),
		BasicDAOverride: ptr(decimal.NewFromInt(25000)),
		HRAOverride:     ptr(decimal.NewFromInt(10000)),
		PFApplicable:    true,
	}

	pro, err := Prorate(ProrationInput{GrossSalary: profile.GrossSalary, WorkingDays: 26, PresentDays: 26})
	require.NoError(t, err)

	_, err = calc.Compute(context.Background(), profile, pro, fullAttendance(), asOf, Overrides{OtherDeductions: decimal.Zero})

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "earnings_split", errs[0].Field)
}

func TestCalculator_Compute_PFWageCeilingCapsBase(t *testing.T) {
	calc := NewCalculator(statutoryRates(), testLogger())

	// Basic/DA is 30000, well above the 15000 ceiling: PF is computed on
	// the capped base, not the full figure.
	profile := salaryprofile.SalaryProfile{
		GrossSalary:  decimal.NewFromInt(60000),
		PFApplicable: true,
	}

	pro, err := Prorate(ProrationInput{GrossSalary: profile.GrossSalary, WorkingDays: 26, PresentDays: 26})
	require.NoError(t, err)

	b, err := calc.Compute(context.Background(), profile, pro, fullAttendance(), asOf, Overrides{OtherDeductions: decimal.Zero})
	require.NoError(t, err)

	assert.True(t, b.BasicDA.Equal(decimal.NewFromInt(30000)))
	assert.True(t, b.PFEmployee.Equal(decimal.NewFromInt(1800)), "pf %s", b.PFEmployee)
	assert.True(t, b.PFEmployer.Equal(decimal.NewFromInt(1800)))
}

func TestCalculator_Compute_PFGatedByProfileFlag(t *testing.T) {
	calc := NewCalculator(statutoryRates(), testLogger())

	profile := salaryprofile.SalaryProfile{
		GrossSalary:  decimal.NewFromInt(30000),
		PFApplicable: false,
	}

	pro, err := Prorate(ProrationInput{GrossSalary: profile.GrossSalary, WorkingDays: 26, PresentDays: 26})
	require.NoError(t, err)

	b, err := calc.Compute(context.Background(), profile, pro, fullAttendance(), asOf, Overrides{OtherDeductions: decimal.Zero})
	require.NoError(t, err)

	assert.True(t, b.PFEmployee.IsZero())
	assert.True(t, b.PFEmployer.IsZero())
	assert.True(t, b.PFAdmin.IsZero())
	assert.True(t, b.EDLI.IsZero())
}

func TestCalculator_Compute_TDSAnnualizedSlab(t *testing.T) {
	rates := &stubRates{entries: map[rate.ComponentType][]rate.TemporalRateEntry{
		rate.ComponentBasicPercent:      {percentEntry("basic", rate.ComponentBasicPercent, 50)},
		rate.ComponentHRAPercent:        {percentEntry("hra", rate.ComponentHRAPercent, 20)},
		rate.ComponentConveyancePercent: {percentEntry("conv", rate.ComponentConveyancePercent, 10)},
		rate.ComponentTDS: {
			slabEntry(percentEntry("tds-10", rate.ComponentTDS, 10), ptr(int64(300001)), nil),
		},
	}}
	calc := NewCalculator(rates, testLogger())

	profile := salaryprofile.SalaryProfile{GrossSalary: decimal.NewFromInt(50000)}

	pro, err := Prorate(ProrationInput{GrossSalary: profile.GrossSalary, WorkingDays: 26, PresentDays: 26})
	require.NoError(t, err)

	b, err := calc.Compute(context.Background(), profile, pro, fullAttendance(), asOf, Overrides{OtherDeductions: decimal.Zero})
	require.NoError(t, err)

	// 50000 net annualizes to 600000, hits the 10% slab: 60000 annual TDS
	// spread back as 5000 per month.
	assert.True(t, b.TDS.Equal(decimal.NewFromInt(5000)), "tds %s", b.TDS)
	assert.True(t, b.NetPay.Equal(decimal.NewFromInt(45000)), "net %s", b.NetPay)
	assert.True(t, b.TotalEarnings.Sub(b.TotalDeductions).Equal(b.NetPay))
}

func TestCalculator_Compute_TDSBelowSlabIsZero(t *testing.T) {
	rates := &stubRates{entries: map[rate.ComponentType][]rate.TemporalRateEntry{
		rate.ComponentBasicPercent: {percentEntry("basic", rate.ComponentBasicPercent, 50)},
		rate.ComponentTDS: {
			slabEntry(percentEntry("tds-10", rate.ComponentTDS, 10), ptr(int64(300001)), nil),
		},
	}}
	calc := NewCalculator(rates, testLogger())

	profile := salaryprofile.SalaryProfile{GrossSalary: decimal.NewFromInt(20000)}

	pro, err := Prorate(ProrationInput{GrossSalary: profile.GrossSalary, WorkingDays: 26, PresentDays: 26})
	require.NoError(t, err)

	b, err := calc.Compute(context.Background(), profile, pro, fullAttendance(), asOf, Overrides{OtherDeductions: decimal.Zero})
	require.NoError(t, err)

	assert.True(t, b.TDS.IsZero())
}

func TestCalculator_Compute_MissingRatesDegradeToZero(t *testing.T) {
	// With no rate configuration at all, every derived component is zero
	// and the full gross lands in the special allowance residual.
	calc := NewCalculator(&stubRates{entries: map[rate.ComponentType][]rate.TemporalRateEntry{}}, testLogger())

	profile := salaryprofile.SalaryProfile{
		GrossSalary:  decimal.NewFromInt(30000),
		PFApplicable: true,
	}

	pro, err := Prorate(ProrationInput{GrossSalary: profile.GrossSalary, WorkingDays: 26, PresentDays: 26})
	require.NoError(t, err)

	b, err := calc.Compute(context.Background(), profile, pro, fullAttendance(), asOf, Overrides{OtherDeductions: decimal.Zero})
	require.NoError(t, err)

	assert.True(t, b.BasicDA.IsZero())
	assert.True(t, b.SpecialAllowance.Equal(decimal.NewFromInt(30000)))
	assert.True(t, b.TotalDeductions.IsZero())
	assert.True(t, b.NetPay.Equal(decimal.NewFromInt(30000)))
}

func TestCalculator_Compute_OtherDeductionsOverride(t *testing.T) {
	calc := NewCalculator(statutoryRates(), testLogger())

	profile := salaryprofile.SalaryProfile{
		GrossSalary:  decimal.NewFromInt(30000),
		PFApplicable: true,
	}

	pro, err := Prorate(ProrationInput{GrossSalary: profile.GrossSalary, WorkingDays: 26, PresentDays: 26})
	require.NoError(t, err)

	b, err := calc.Compute(context.Background(), profile, pro, fullAttendance(), asOf, Overrides{OtherDeductions: decimal.NewFromInt(500)})
	require.NoError(t, err)

	assert.True(t, b.OtherDeductions.Equal(decimal.NewFromInt(500)))
	assert.True(t, b.NetPay.Equal(decimal.NewFromInt(27500)), "net %s", b.NetPay)
	assert.True(t, b.TotalEarnings.Sub(b.TotalDeductions).Equal(b.NetPay))
}

func TestCalculator_Compute_NonPositiveGross(t *testing.T) {
	calc := NewCalculator(statutoryRates(), testLogger())

	_, err := calc.Compute(context.Background(), salaryprofile.SalaryProfile{}, Proration{}, attendance.MonthlySummary{}, asOf, Overrides{})

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "gross_salary", errs[0].Field)
}
