package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/zenithhr/payroll-engine-go/internal/domain/salaryprofile"
	"github.com/zenithhr/payroll-engine-go/internal/handler/http/response"
	"github.com/zenithhr/payroll-engine-go/internal/pkg/validator"
)

type SalaryProfileHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type salaryProfileHandlerImpl struct {
	profileService salaryprofile.SalaryProfileService
}

func NewSalaryProfileHandler(profileService salaryprofile.SalaryProfileService) SalaryProfileHandler {
	return &salaryProfileHandlerImpl{profileService: profileService}
}

func (h *salaryProfileHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	if !validator.IsValidUUID(employeeID) {
		response.BadRequest(w, "Employee ID must be a valid UUID", nil)
		return
	}

	var req salaryprofile.CreateSalaryProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = employeeID

	result, err := h.profileService.CreateProfile(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary profile created", result)
}

func (h *salaryProfileHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	if !validator.IsValidUUID(employeeID) {
		response.BadRequest(w, "Employee ID must be a valid UUID", nil)
		return
	}

	result, err := h.profileService.ListProfiles(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
