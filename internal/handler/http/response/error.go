package response

import (
	"errors"
	"net/http"

	"github.com/zenithhr/payroll-engine-go/internal/domain/employee"
	"github.com/zenithhr/payroll-engine-go/internal/domain/payslip"
	"github.com/zenithhr/payroll-engine-go/internal/domain/rate"
	"github.com/zenithhr/payroll-engine-go/internal/domain/salaryprofile"
	"github.com/zenithhr/payroll-engine-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Payslip domain errors
	case errors.Is(err, payslip.ErrSlipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payslip.ErrDuplicateSlip):
		Conflict(w, "Payslip already exists for this employee and month")
	case errors.Is(err, payslip.ErrInvalidStatusTransition):
		Conflict(w, err.Error())

	// Rate domain errors
	case errors.Is(err, rate.ErrRateEntryNotFound):
		NotFound(w, "Rate entry not found")
	case errors.Is(err, rate.ErrRateEntryAlreadyClosed):
		Conflict(w, "Rate entry window is already closed")

	// Salary profile domain errors
	case errors.Is(err, salaryprofile.ErrProfileNotFound):
		NotFound(w, "Salary profile not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
