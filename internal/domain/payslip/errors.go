package payslip

import "errors"

var (
	ErrSlipNotFound = errors.New("payslip not found")
	// ErrDuplicateSlip means a slip already exists for the (employee,
	// month) pair. Batch callers treat it as an idempotent no-op; explicit
	// regeneration attempts surface it as a conflict.
	ErrDuplicateSlip           = errors.New("payslip already exists for this employee and month")
	ErrInvalidStatusTransition = errors.New("invalid payslip status transition")
)
