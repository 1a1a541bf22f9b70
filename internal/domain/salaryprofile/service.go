package salaryprofile

import "context"

// SalaryProfileService manages versioned salary profiles. Creating a new
// profile closes the employee's previous one; history is never deleted.
type SalaryProfileService interface {
	CreateProfile(ctx context.Context, req CreateSalaryProfileRequest) (SalaryProfileResponse, error)
	ListProfiles(ctx context.Context, employeeID string) ([]SalaryProfileResponse, error)
}
