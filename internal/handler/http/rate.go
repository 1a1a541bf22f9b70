package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/zenithhr/payroll-engine-go/internal/domain/rate"
	"github.com/zenithhr/payroll-engine-go/internal/handler/http/response"
	"github.com/zenithhr/payroll-engine-go/internal/pkg/validator"
)

type RateHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Close(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
}

type rateHandlerImpl struct {
	rateService rate.RateService
}

func NewRateHandler(rateService rate.RateService) RateHandler {
	return &rateHandlerImpl{rateService: rateService}
}

func (h *rateHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req rate.CreateRateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.rateService.CreateEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Rate entry created", result)
}

func (h *rateHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Rate entry ID must be a valid UUID", nil)
		return
	}

	result, err := h.rateService.GetEntry(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *rateHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	componentType := r.URL.Query().Get("component_type")
	if componentType == "" {
		response.BadRequest(w, "component_type query parameter is required", nil)
		return
	}

	result, err := h.rateService.ListEntries(r.Context(), componentType)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Close ends a rate entry's validity window. The entry itself is never
// mutated beyond effective_to; corrections are new entries.
func (h *rateHandlerImpl) Close(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Rate entry ID must be a valid UUID", nil)
		return
	}

	var req rate.CloseRateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	if err := h.rateService.CloseEntry(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Rate entry window closed", nil)
}

func (h *rateHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Rate entry ID must be a valid UUID", nil)
		return
	}

	if err := h.rateService.DeactivateEntry(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Rate entry deactivated", nil)
}
