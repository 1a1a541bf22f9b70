package employee

import "context"

// EmployeeRepository exposes the slice of the employee master payroll needs.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetActive(ctx context.Context) ([]Employee, error)
}
