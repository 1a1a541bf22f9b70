package rate

import (
	"context"
	"time"

	"github.com/zenithhr/payroll-engine-go/internal/domain/rate"
	"github.com/zenithhr/payroll-engine-go/internal/pkg/validator"
)

type RateServiceImpl struct {
	repo rate.RateRepository
}

func NewRateService(repo rate.RateRepository) rate.RateService {
	return &RateServiceImpl{repo: repo}
}

func (s *RateServiceImpl) CreateEntry(ctx context.Context, req rate.CreateRateEntryRequest) (rate.RateEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return rate.RateEntryResponse{}, err
	}

	effectiveFrom, _ := validator.IsValidDate(req.EffectiveFrom)
	var effectiveTo *time.Time
	if req.EffectiveTo != nil {
		parsed, _ := validator.IsValidDate(*req.EffectiveTo)
		effectiveTo = &parsed
	}

	created, err := s.repo.Create(ctx, rate.TemporalRateEntry{
		ComponentType: rate.ComponentType(req.ComponentType),
		ValueKind:     rate.ValueKind(req.ValueKind),
		Value:         req.Value,
		EffectiveFrom: effectiveFrom,
		EffectiveTo:   effectiveTo,
		SlabMin:       req.SlabMin,
		SlabMax:       req.SlabMax,
		IsActive:      true,
	})
	if err != nil {
		return rate.RateEntryResponse{}, err
	}

	return rate.ToRateEntryResponse(created), nil
}

func (s *RateServiceImpl) GetEntry(ctx context.Context, id string) (rate.RateEntryResponse, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return rate.RateEntryResponse{}, err
	}
	return rate.ToRateEntryResponse(entry), nil
}

func (s *RateServiceImpl) ListEntries(ctx context.Context, componentType string) ([]rate.RateEntryResponse, error) {
	if !rate.ComponentType(componentType).Valid() {
		return nil, validator.ValidationErrors{
			{Field: "component_type", Message: "unknown component type"},
		}
	}

	entries, err := s.repo.ListByComponent(ctx, rate.ComponentType(componentType))
	if err != nil {
		return nil, err
	}

	result := make([]rate.RateEntryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, rate.ToRateEntryResponse(e))
	}
	return result, nil
}

func (s *RateServiceImpl) CloseEntry(ctx context.Context, req rate.CloseRateEntryRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	effectiveTo, _ := validator.IsValidDate(req.EffectiveTo)
	return s.repo.CloseWindow(ctx, req.ID, effectiveTo)
}

func (s *RateServiceImpl) DeactivateEntry(ctx context.Context, id string) error {
	return s.repo.Deactivate(ctx, id)
}
