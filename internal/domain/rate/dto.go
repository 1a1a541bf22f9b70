package rate

import (
	"github.com/shopspring/decimal"
	"github.com/zenithhr/payroll-engine-go/internal/pkg/validator"
)

type CreateRateEntryRequest struct {
	ComponentType string           `json:"component_type"`
	ValueKind     string           `json:"value_kind"`
	Value         decimal.Decimal  `json:"value"`
	EffectiveFrom string           `json:"effective_from"`
	EffectiveTo   *string          `json:"effective_to,omitempty"`
	SlabMin       *decimal.Decimal `json:"slab_min,omitempty"`
	SlabMax       *decimal.Decimal `json:"slab_max,omitempty"`
}

func (r *CreateRateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if !ComponentType(r.ComponentType).Valid() {
		errs = append(errs, validator.ValidationError{Field: "component_type", Message: "unknown component type"})
	}
	if r.ValueKind != string(ValueKindFixed) && r.ValueKind != string(ValueKindPercent) {
		errs = append(errs, validator.ValidationError{Field: "value_kind", Message: "must be 'fixed' or 'percent'"})
	}
	if r.Value.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "value", Message: "must be non-negative"})
	}
	if r.EffectiveFrom == "" {
		errs = append(errs, validator.ValidationError{Field: "effective_from", Message: "is required"})
	} else if _, ok := validator.IsValidDate(r.EffectiveFrom); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_from", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if r.EffectiveTo != nil {
		if _, ok := validator.IsValidDate(*r.EffectiveTo); !ok {
			errs = append(errs, validator.ValidationError{Field: "effective_to", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if (r.SlabMin != nil || r.SlabMax != nil) && !ComponentType(r.ComponentType).Slabbed() {
		errs = append(errs, validator.ValidationError{Field: "slab_min", Message: "slab bounds are only valid for slab-based components"})
	}
	if r.SlabMin != nil && r.SlabMax != nil && r.SlabMin.GreaterThan(*r.SlabMax) {
		errs = append(errs, validator.ValidationError{Field: "slab_min", Message: "must not exceed slab_max"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CloseRateEntryRequest struct {
	ID          string
	EffectiveTo string `json:"effective_to"`
}

func (r *CloseRateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EffectiveTo == "" {
		errs = append(errs, validator.ValidationError{Field: "effective_to", Message: "is required"})
	} else if _, ok := validator.IsValidDate(r.EffectiveTo); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_to", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RateEntryResponse struct {
	ID            string           `json:"id"`
	ComponentType string           `json:"component_type"`
	ValueKind     string           `json:"value_kind"`
	Value         decimal.Decimal  `json:"value"`
	EffectiveFrom string           `json:"effective_from"`
	EffectiveTo   *string          `json:"effective_to,omitempty"`
	SlabMin       *decimal.Decimal `json:"slab_min,omitempty"`
	SlabMax       *decimal.Decimal `json:"slab_max,omitempty"`
	IsActive      bool             `json:"is_active"`
}

func ToRateEntryResponse(e TemporalRateEntry) RateEntryResponse {
	var effectiveTo *string
	if e.EffectiveTo != nil {
		str := e.EffectiveTo.Format("2006-01-02")
		effectiveTo = &str
	}
	return RateEntryResponse{
		ID:            e.ID,
		ComponentType: string(e.ComponentType),
		ValueKind:     string(e.ValueKind),
		Value:         e.Value,
		EffectiveFrom: e.EffectiveFrom.Format("2006-01-02"),
		EffectiveTo:   effectiveTo,
		SlabMin:       e.SlabMin,
		SlabMax:       e.SlabMax,
		IsActive:      e.IsActive,
	}
}
