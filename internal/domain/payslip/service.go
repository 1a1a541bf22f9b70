package payslip

import "context"

// PayslipService generates and manages payslips.
type PayslipService interface {
	// Generate computes and persists one slip. Returns ErrDuplicateSlip
	// when a slip already exists for the (employee, month) pair.
	Generate(ctx context.Context, req GenerateSlipRequest) (SlipResponse, error)
	// GenerateBatch is best-effort across employees: one employee's
	// failure never aborts the rest. It reports a per-employee outcome.
	GenerateBatch(ctx context.Context, req GenerateBatchRequest) ([]BatchOutcome, error)
	GetSlip(ctx context.Context, id string) (SlipResponse, error)
	GetSlipByEmployeeMonth(ctx context.Context, employeeID, month string) (SlipResponse, error)
	ListByMonth(ctx context.Context, month string) ([]SlipResponse, error)
	UpdateStatus(ctx context.Context, req UpdateSlipStatusRequest) (SlipResponse, error)
}
