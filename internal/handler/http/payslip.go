package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/zenithhr/payroll-engine-go/internal/domain/payslip"
	"github.com/zenithhr/payroll-engine-go/internal/handler/http/response"
	"github.com/zenithhr/payroll-engine-go/internal/pkg/validator"
)

type PayslipHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	GenerateBatch(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListByMonth(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
}

type payslipHandlerImpl struct {
	payslipService payslip.PayslipService
}

func NewPayslipHandler(payslipService payslip.PayslipService) PayslipHandler {
	return &payslipHandlerImpl{payslipService: payslipService}
}

func (h *payslipHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req payslip.GenerateSlipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payslipService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payslip generated", result)
}

func (h *payslipHandlerImpl) GenerateBatch(w http.ResponseWriter, r *http.Request) {
	var req payslip.GenerateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	outcomes, err := h.payslipService.GenerateBatch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Batch generation completed", outcomes)
}

func (h *payslipHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Payslip ID must be a valid UUID", nil)
		return
	}

	result, err := h.payslipService.GetSlip(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payslipHandlerImpl) ListByMonth(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		response.BadRequest(w, "month query parameter is required (YYYY-MM)", nil)
		return
	}

	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		if !validator.IsValidUUID(employeeID) {
			response.BadRequest(w, "employee_id must be a valid UUID", nil)
			return
		}
		result, err := h.payslipService.GetSlipByEmployeeMonth(r.Context(), employeeID, month)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, []payslip.SlipResponse{result})
		return
	}

	result, err := h.payslipService.ListByMonth(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payslipHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Payslip ID must be a valid UUID", nil)
		return
	}

	var req payslip.UpdateSlipStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	result, err := h.payslipService.UpdateStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
