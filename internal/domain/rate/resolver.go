package rate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

// Resolver picks the applicable rate entry for a component as of a date.
// It is read-only and safe for concurrent use.
type Resolver struct {
	repo   RateRepository
	logger *slog.Logger
}

func NewResolver(repo RateRepository, logger *slog.Logger) *Resolver {
	return &Resolver{repo: repo, logger: logger}
}

// Resolve returns the entry in effect for componentType on asOf. The second
// return value is false when no entry applies; the caller decides the
// default (typically zero).
func (r *Resolver) Resolve(ctx context.Context, componentType ComponentType, asOf time.Time) (TemporalRateEntry, bool, error) {
	return r.resolve(ctx, componentType, asOf, nil)
}

// ResolveForSalary resolves a slab-based component, matching only entries
// whose slab bounds contain salary. Bounds are inclusive on both ends.
func (r *Resolver) ResolveForSalary(ctx context.Context, componentType ComponentType, asOf time.Time, salary decimal.Decimal) (TemporalRateEntry, bool, error) {
	return r.resolve(ctx, componentType, asOf, &salary)
}

func (r *Resolver) resolve(ctx context.Context, componentType ComponentType, asOf time.Time, salary *decimal.Decimal) (TemporalRateEntry, bool, error) {
	candidates, err := r.repo.FindCandidates(ctx, componentType, asOf)
	if err != nil {
		return TemporalRateEntry{}, false, fmt.Errorf("failed to load rate entries for %s: %w", componentType, err)
	}

	var matches []TemporalRateEntry
	for _, e := range candidates {
		if !e.IsActive || !e.CoversDate(asOf) {
			continue
		}
		if salary != nil && !e.CoversSalary(*salary) {
			continue
		}
		matches = append(matches, e)
	}

	if len(matches) == 0 {
		return TemporalRateEntry{}, false, nil
	}

	// Overlapping windows are a data-entry defect: pick deterministically
	// (latest effective_from, then latest created_at) and log it.
	best := matches[0]
	for _, e := range matches[1:] {
		if e.EffectiveFrom.After(best.EffectiveFrom) {
			best = e
			continue
		}
		if e.EffectiveFrom.Equal(best.EffectiveFrom) && e.CreatedAt.After(best.CreatedAt) {
			best = e
		}
	}
	if len(matches) > 1 {
		r.logger.Warn("ambiguous rate entries, picked most recent",
			slog.String("component_type", string(componentType)),
			slog.Time("as_of", asOf),
			slog.Int("matches", len(matches)),
			slog.String("picked_id", best.ID),
		)
	}

	return best, true, nil
}
