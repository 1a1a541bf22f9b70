package salaryprofile

import (
	"context"
	"time"
)

// SalaryProfileRepository defines data access methods for salary profiles.
type SalaryProfileRepository interface {
	// Create inserts the new profile and closes the employee's current
	// open-ended profile (effective_to = day before the new
	// effective_from) in the same transaction.
	Create(ctx context.Context, profile SalaryProfile) (SalaryProfile, error)
	GetByID(ctx context.Context, id string) (SalaryProfile, error)
	// FindCandidates returns the employee's active profiles whose window
	// covers asOf. Tie-breaking happens in the Resolver.
	FindCandidates(ctx context.Context, employeeID string, asOf time.Time) ([]SalaryProfile, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]SalaryProfile, error)
}
