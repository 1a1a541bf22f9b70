package salaryprofile

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/zenithhr/payroll-engine-go/internal/domain/employee"
	"github.com/zenithhr/payroll-engine-go/internal/domain/salaryprofile"
	"github.com/zenithhr/payroll-engine-go/internal/pkg/validator"
)

type SalaryProfileServiceImpl struct {
	repo         salaryprofile.SalaryProfileRepository
	employeeRepo employee.EmployeeRepository
}

func NewSalaryProfileService(
	repo salaryprofile.SalaryProfileRepository,
	employeeRepo employee.EmployeeRepository,
) salaryprofile.SalaryProfileService {
	return &SalaryProfileServiceImpl{repo: repo, employeeRepo: employeeRepo}
}

func (s *SalaryProfileServiceImpl) CreateProfile(ctx context.Context, req salaryprofile.CreateSalaryProfileRequest) (salaryprofile.SalaryProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return salaryprofile.SalaryProfileResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return salaryprofile.SalaryProfileResponse{}, err
	}

	effectiveFrom, _ := validator.IsValidDate(req.EffectiveFrom)

	otherAllowances := decimal.Zero
	if req.OtherAllowances != nil {
		otherAllowances = *req.OtherAllowances
	}
	pfApplicable := true
	if req.PFApplicable != nil {
		pfApplicable = *req.PFApplicable
	}
	esiApplicable := false
	if req.ESIApplicable != nil {
		esiApplicable = *req.ESIApplicable
	}

	created, err := s.repo.Create(ctx, salaryprofile.SalaryProfile{
		EmployeeID:         req.EmployeeID,
		GrossSalary:        req.GrossSalary,
		OtherAllowances:    otherAllowances,
		BasicDAOverride:    req.BasicDAOverride,
		HRAOverride:        req.HRAOverride,
		ConveyanceOverride: req.ConveyanceOverride,
		PFApplicable:       pfApplicable,
		ESIApplicable:      esiApplicable,
		EffectiveFrom:      effectiveFrom,
		IsActive:           true,
	})
	if err != nil {
		return salaryprofile.SalaryProfileResponse{}, err
	}

	return salaryprofile.ToSalaryProfileResponse(created), nil
}

func (s *SalaryProfileServiceImpl) ListProfiles(ctx context.Context, employeeID string) ([]salaryprofile.SalaryProfileResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	profiles, err := s.repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	result := make([]salaryprofile.SalaryProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		result = append(result, salaryprofile.ToSalaryProfileResponse(p))
	}
	return result, nil
}
