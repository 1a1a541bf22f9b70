package rate

import (
	"context"
	"time"
)

// RateRepository defines data access methods for temporal rate entries.
type RateRepository interface {
	Create(ctx context.Context, entry TemporalRateEntry) (TemporalRateEntry, error)
	GetByID(ctx context.Context, id string) (TemporalRateEntry, error)
	// FindCandidates returns active entries of the component type whose
	// window covers asOf. Slab filtering and tie-breaking happen in the
	// Resolver, not in SQL.
	FindCandidates(ctx context.Context, componentType ComponentType, asOf time.Time) ([]TemporalRateEntry, error)
	ListByComponent(ctx context.Context, componentType ComponentType) ([]TemporalRateEntry, error)
	// CloseWindow sets effective_to on an open-ended entry.
	CloseWindow(ctx context.Context, id string, effectiveTo time.Time) error
	Deactivate(ctx context.Context, id string) error
}
