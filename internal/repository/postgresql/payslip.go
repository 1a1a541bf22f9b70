package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/zenithhr/payroll-engine-go/internal/domain/payslip"
	"github.com/zenithhr/payroll-engine-go/internal/pkg/database"
)

type payslipRepository struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payslip.PayslipRepository {
	return &payslipRepository{db: db}
}

func (r *payslipRepository) Create(ctx context.Context, slip payslip.Payslip) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payslips (
			employee_id, month, gross_salary,
			basic_da, hra, conveyance, special_allowance, other_allowances, overtime_pay, total_earnings,
			leave_deduction, pf_employee, esi_employee, professional_tax, lwf, tds, other_deductions, total_deductions,
			pf_employer, esi_employer, bonus, gratuity, pf_admin, edli, total_employer_contributions,
			working_days, present_days, leave_days, overtime_hours, adjusted_gross,
			net_pay, employer_cost, status, notes
		) VALUES (
			$1, $2, $3,
			$4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18,
			$19, $20, $21, $22, $23, $24, $25,
			$26, $27, $28, $29, $30,
			$31, $32, $33, $34
		)
		RETURNING id, created_at, updated_at
	`

	created := slip
	err := q.QueryRow(ctx, query,
		slip.EmployeeID, slip.Month, slip.GrossSalary,
		slip.BasicDA, slip.HRA, slip.Conveyance, slip.SpecialAllowance, slip.OtherAllowances, slip.OvertimePay, slip.TotalEarnings,
		slip.LeaveDeduction, slip.PFEmployee, slip.ESIEmployee, slip.ProfessionalTax, slip.LWF, slip.TDS, slip.OtherDeductions, slip.TotalDeductions,
		slip.PFEmployer, slip.ESIEmployer, slip.Bonus, slip.Gratuity, slip.PFAdmin, slip.EDLI, slip.TotalEmployerContributions,
		slip.WorkingDays, slip.PresentDays, slip.LeaveDays, slip.OvertimeHours, slip.AdjustedGross,
		slip.NetPay, slip.EmployerCost, slip.Status, slip.Notes,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		// The (employee_id, month) unique constraint is the concurrency
		// control for duplicate generation.
		if strings.Contains(err.Error(), "uk_payslip_employee_month") {
			return payslip.Payslip{}, payslip.ErrDuplicateSlip
		}
		return payslip.Payslip{}, fmt.Errorf("failed to create payslip: %w", err)
	}

	return created, nil
}

const payslipSelect = `
	SELECT ps.id, ps.employee_id, ps.month, ps.gross_salary,
		   ps.basic_da, ps.hra, ps.conveyance, ps.special_allowance, ps.other_allowances, ps.overtime_pay, ps.total_earnings,
		   ps.leave_deduction, ps.pf_employee, ps.esi_employee, ps.professional_tax, ps.lwf, ps.tds, ps.other_deductions, ps.total_deductions,
		   ps.pf_employer, ps.esi_employer, ps.bonus, ps.gratuity, ps.pf_admin, ps.edli, ps.total_employer_contributions,
		   ps.working_days, ps.present_days, ps.leave_days, ps.overtime_hours, ps.adjusted_gross,
		   ps.net_pay, ps.employer_cost, ps.status, ps.paid_at, ps.payment_reference, ps.notes,
		   ps.created_at, ps.updated_at,
		   e.full_name AS employee_name, e.employee_code
	FROM payslips ps
	JOIN employees e ON ps.employee_id = e.id
`

func scanPayslip(row pgx.Row) (payslip.Payslip, error) {
	var s payslip.Payslip
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.Month, &s.GrossSalary,
		&s.BasicDA, &s.HRA, &s.Conveyance, &s.SpecialAllowance, &s.OtherAllowances, &s.OvertimePay, &s.TotalEarnings,
		&s.LeaveDeduction, &s.PFEmployee, &s.ESIEmployee, &s.ProfessionalTax, &s.LWF, &s.TDS, &s.OtherDeductions, &s.TotalDeductions,
		&s.PFEmployer, &s.ESIEmployer, &s.Bonus, &s.Gratuity, &s.PFAdmin, &s.EDLI, &s.TotalEmployerContributions,
		&s.WorkingDays, &s.PresentDays, &s.LeaveDays, &s.OvertimeHours, &s.AdjustedGross,
		&s.NetPay, &s.EmployerCost, &s.Status, &s.PaidAt, &s.PaymentReference, &s.Notes,
		&s.CreatedAt, &s.UpdatedAt,
		&s.EmployeeName, &s.EmployeeCode,
	)
	return s, err
}

func (r *payslipRepository) GetByID(ctx context.Context, id string) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	slip, err := scanPayslip(q.QueryRow(ctx, payslipSelect+` WHERE ps.id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payslip.Payslip{}, payslip.ErrSlipNotFound
		}
		return payslip.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}

	return slip, nil
}

func (r *payslipRepository) GetByEmployeeMonth(ctx context.Context, employeeID string, month time.Time) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	slip, err := scanPayslip(q.QueryRow(ctx, payslipSelect+` WHERE ps.employee_id = $1 AND ps.month = $2`, employeeID, month))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payslip.Payslip{}, payslip.ErrSlipNotFound
		}
		return payslip.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}

	return slip, nil
}

func (r *payslipRepository) ListByMonth(ctx context.Context, month time.Time) ([]payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, payslipSelect+` WHERE ps.month = $1 ORDER BY e.employee_code`, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	var slips []payslip.Payslip
	for rows.Next() {
		var s payslip.Payslip
		if err := rows.Scan(
			&s.ID, &s.EmployeeID, &s.Month, &s.GrossSalary,
			&s.BasicDA, &s.HRA, &s.Conveyance, &s.SpecialAllowance, &s.OtherAllowances, &s.OvertimePay, &s.TotalEarnings,
			&s.LeaveDeduction, &s.PFEmployee, &s.ESIEmployee, &s.ProfessionalTax, &s.LWF, &s.TDS, &s.OtherDeductions, &s.TotalDeductions,
			&s.PFEmployer, &s.ESIEmployer, &s.Bonus, &s.Gratuity, &s.PFAdmin, &s.EDLI, &s.TotalEmployerContributions,
			&s.WorkingDays, &s.PresentDays, &s.LeaveDays, &s.OvertimeHours, &s.AdjustedGross,
			&s.NetPay, &s.EmployerCost, &s.Status, &s.PaidAt, &s.PaymentReference, &s.Notes,
			&s.CreatedAt, &s.UpdatedAt,
			&s.EmployeeName, &s.EmployeeCode,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		slips = append(slips, s)
	}

	return slips, nil
}

// UpdateStatus changes status and payment metadata only. The monetary
// columns are never touched after creation.
func (r *payslipRepository) UpdateStatus(ctx context.Context, id string, status payslip.Status, paidAt *time.Time, paymentReference *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payslips
		SET status = $2,
			paid_at = COALESCE($3, paid_at),
			payment_reference = COALESCE($4, payment_reference),
			updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id, status, paidAt, paymentReference).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payslip.ErrSlipNotFound
		}
		return fmt.Errorf("failed to update payslip status: %w", err)
	}

	return nil
}
