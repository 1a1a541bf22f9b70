package payslip

import (
	"context"
	"time"
)

// PayslipRepository defines data access methods for payslips. The
// (employee_id, month) unique constraint at the storage layer is the
// concurrency control for concurrent generation; Create maps its violation
// to ErrDuplicateSlip.
type PayslipRepository interface {
	Create(ctx context.Context, slip Payslip) (Payslip, error)
	GetByID(ctx context.Context, id string) (Payslip, error)
	GetByEmployeeMonth(ctx context.Context, employeeID string, month time.Time) (Payslip, error)
	ListByMonth(ctx context.Context, month time.Time) ([]Payslip, error)
	// UpdateStatus changes status and payment metadata only; monetary
	// fields are frozen at creation.
	UpdateStatus(ctx context.Context, id string, status Status, paidAt *time.Time, paymentReference *string) error
}
