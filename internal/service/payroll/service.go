package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zenithhr/payroll-engine-go/internal/domain/attendance"
	"github.com/zenithhr/payroll-engine-go/internal/domain/employee"
	"github.com/zenithhr/payroll-engine-go/internal/domain/payslip"
	"github.com/zenithhr/payroll-engine-go/internal/domain/rate"
	"github.com/zenithhr/payroll-engine-go/internal/domain/salaryprofile"
	"github.com/zenithhr/payroll-engine-go/internal/pkg/validator"
)

// defaultOvertimeRate is the hourly-rate multiplier applied when no
// overtime_rate entry is configured.
var defaultOvertimeRate = decimal.NewFromInt(2)

type PayslipServiceImpl struct {
	slipRepo       payslip.PayslipRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	profiles       *salaryprofile.Resolver
	rates          RateLookup
	calc           *Calculator
	logger         *slog.Logger
}

func NewPayslipService(
	slipRepo payslip.PayslipRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	profiles *salaryprofile.Resolver,
	rates RateLookup,
	logger *slog.Logger,
) payslip.PayslipService {
	return &PayslipServiceImpl{
		slipRepo:       slipRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		profiles:       profiles,
		rates:          rates,
		calc:           NewCalculator(rates, logger),
		logger:         logger,
	}
}

func (s *PayslipServiceImpl) Generate(ctx context.Context, req payslip.GenerateSlipRequest) (payslip.SlipResponse, error) {
	if err := req.Validate(); err != nil {
		return payslip.SlipResponse{}, err
	}

	month, _ := validator.IsValidMonth(req.Month)

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return payslip.SlipResponse{}, err
	}

	ov := Overrides{OtherDeductions: decimal.Zero}
	if req.OtherDeductions != nil {
		ov.OtherDeductions = *req.OtherDeductions
	}

	slip, err := s.generateOne(ctx, req.EmployeeID, month, ov, req.Notes)
	if err != nil {
		return payslip.SlipResponse{}, err
	}

	return payslip.ToSlipResponse(slip), nil
}

// generateOne resolves inputs as of the first day of the month (the anchor
// for every component), computes the breakdown and inserts the slip. The
// storage-level (employee, month) unique constraint is the only concurrency
// control; a losing concurrent writer gets ErrDuplicateSlip.
func (s *PayslipServiceImpl) generateOne(ctx context.Context, employeeID string, month time.Time, ov Overrides, notes *string) (payslip.Payslip, error) {
	anchor := payslip.NormalizeMonth(month)

	profile, err := s.profiles.Resolve(ctx, employeeID, anchor)
	if err != nil {
		return payslip.Payslip{}, err
	}

	summary, err := s.attendanceRepo.GetMonthlySummary(ctx, employeeID, anchor)
	if err != nil {
		return payslip.Payslip{}, fmt.Errorf("failed to get attendance summary: %w", err)
	}

	otRate := defaultOvertimeRate
	if entry, ok, err := s.rates.Resolve(ctx, rate.ComponentOvertimeRate, anchor); err == nil && ok {
		otRate = entry.Value
	}

	pro, err := Prorate(ProrationInput{
		GrossSalary:   profile.GrossSalary,
		WorkingDays:   summary.WorkingDays,
		PresentDays:   summary.PresentDays,
		LeaveDays:     summary.LeaveDays,
		WorkingHours:  summary.WorkingHours,
		OvertimeHours: summary.OvertimeHours,
		OvertimeRate:  otRate,
	})
	if err != nil {
		return payslip.Payslip{}, err
	}

	breakdown, err := s.calc.Compute(ctx, profile, pro, summary, anchor, ov)
	if err != nil {
		return payslip.Payslip{}, err
	}

	created, err := s.slipRepo.Create(ctx, payslip.Payslip{
		EmployeeID: employeeID,
		Month:      anchor,
		Breakdown:  breakdown,
		Status:     payslip.StatusPending,
		Notes:      notes,
	})
	if err != nil {
		if errors.Is(err, payslip.ErrDuplicateSlip) {
			return payslip.Payslip{}, err
		}
		return payslip.Payslip{}, fmt.Errorf("failed to create payslip for employee %s: %w", employeeID, err)
	}

	return created, nil
}

func (s *PayslipServiceImpl) GenerateBatch(ctx context.Context, req payslip.GenerateBatchRequest) ([]payslip.BatchOutcome, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	month, _ := validator.IsValidMonth(req.Month)

	employees, err := s.employeeRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees: %w", err)
	}
	if len(req.EmployeeIDs) > 0 {
		requested := make(map[string]bool)
		for _, id := range req.EmployeeIDs {
			requested[id] = true
		}
		var filtered []employee.Employee
		for _, emp := range employees {
			if requested[emp.ID] {
				filtered = append(filtered, emp)
			}
		}
		employees = filtered
	}

	outcomes := make([]payslip.BatchOutcome, 0, len(employees))
	for _, emp := range employees {
		slip, err := s.generateOne(ctx, emp.ID, month, Overrides{OtherDeductions: decimal.Zero}, nil)
		switch {
		case err == nil:
			id := slip.ID
			outcomes = append(outcomes, payslip.BatchOutcome{
				EmployeeID: emp.ID,
				Status:     payslip.OutcomeCreated,
				SlipID:     &id,
			})
		case errors.Is(err, payslip.ErrDuplicateSlip):
			// Idempotent no-op on batch re-runs.
			outcomes = append(outcomes, payslip.BatchOutcome{
				EmployeeID: emp.ID,
				Status:     payslip.OutcomeDuplicate,
			})
		default:
			// Best-effort: one employee's failure never aborts the rest.
			msg := err.Error()
			outcomes = append(outcomes, payslip.BatchOutcome{
				EmployeeID: emp.ID,
				Status:     payslip.OutcomeFailed,
				Error:      &msg,
			})
			s.logger.Warn("payslip generation failed for employee",
				slog.String("employee_id", emp.ID),
				slog.String("month", req.Month),
				slog.String("error", msg),
			)
		}
	}

	return outcomes, nil
}

func (s *PayslipServiceImpl) GetSlip(ctx context.Context, id string) (payslip.SlipResponse, error) {
	slip, err := s.slipRepo.GetByID(ctx, id)
	if err != nil {
		return payslip.SlipResponse{}, err
	}
	return payslip.ToSlipResponse(slip), nil
}

func (s *PayslipServiceImpl) GetSlipByEmployeeMonth(ctx context.Context, employeeID, monthStr string) (payslip.SlipResponse, error) {
	month, ok := validator.IsValidMonth(monthStr)
	if !ok {
		return payslip.SlipResponse{}, validator.ValidationErrors{
			{Field: "month", Message: "must be a valid month (YYYY-MM)"},
		}
	}

	slip, err := s.slipRepo.GetByEmployeeMonth(ctx, employeeID, payslip.NormalizeMonth(month))
	if err != nil {
		return payslip.SlipResponse{}, err
	}
	return payslip.ToSlipResponse(slip), nil
}

func (s *PayslipServiceImpl) ListByMonth(ctx context.Context, monthStr string) ([]payslip.SlipResponse, error) {
	month, ok := validator.IsValidMonth(monthStr)
	if !ok {
		return nil, validator.ValidationErrors{
			{Field: "month", Message: "must be a valid month (YYYY-MM)"},
		}
	}

	slips, err := s.slipRepo.ListByMonth(ctx, payslip.NormalizeMonth(month))
	if err != nil {
		return nil, err
	}
	return payslip.ToSlipResponses(slips), nil
}

func (s *PayslipServiceImpl) UpdateStatus(ctx context.Context, req payslip.UpdateSlipStatusRequest) (payslip.SlipResponse, error) {
	if err := req.Validate(); err != nil {
		return payslip.SlipResponse{}, err
	}

	slip, err := s.slipRepo.GetByID(ctx, req.ID)
	if err != nil {
		return payslip.SlipResponse{}, err
	}

	next := payslip.Status(req.Status)
	if !slip.Status.CanTransition(next) {
		return payslip.SlipResponse{}, fmt.Errorf("%w: %s -> %s", payslip.ErrInvalidStatusTransition, slip.Status, next)
	}

	// Payment metadata belongs to the paid state only; hold and processed
	// transitions never carry it.
	var paidAt *time.Time
	var paymentReference *string
	if next == payslip.StatusPaid {
		paymentReference = req.PaymentReference
		if req.PaidAt != nil {
			t, _ := validator.IsValidDateTime(*req.PaidAt)
			paidAt = &t
		} else {
			now := time.Now().UTC()
			paidAt = &now
		}
	}

	if err := s.slipRepo.UpdateStatus(ctx, req.ID, next, paidAt, paymentReference); err != nil {
		return payslip.SlipResponse{}, err
	}

	return s.GetSlip(ctx, req.ID)
}
