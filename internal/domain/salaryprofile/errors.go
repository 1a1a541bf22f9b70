package salaryprofile

import "errors"

var (
	// ErrProfileNotFound means no profile is active for the employee as of
	// the requested date. Payroll cannot be computed for that employee;
	// callers must not default to zero salary.
	ErrProfileNotFound = errors.New("no active salary profile for employee")
)
