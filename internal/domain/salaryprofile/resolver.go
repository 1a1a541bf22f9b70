package salaryprofile

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Resolver picks the single active salary profile for an employee as of a
// date. Read-only, safe for concurrent use.
type Resolver struct {
	repo   SalaryProfileRepository
	logger *slog.Logger
}

func NewResolver(repo SalaryProfileRepository, logger *slog.Logger) *Resolver {
	return &Resolver{repo: repo, logger: logger}
}

// Resolve returns the profile in effect for the employee on asOf, or
// ErrProfileNotFound when none is active.
func (r *Resolver) Resolve(ctx context.Context, employeeID string, asOf time.Time) (SalaryProfile, error) {
	candidates, err := r.repo.FindCandidates(ctx, employeeID, asOf)
	if err != nil {
		return SalaryProfile{}, fmt.Errorf("failed to load salary profiles for employee %s: %w", employeeID, err)
	}

	var matches []SalaryProfile
	for _, p := range candidates {
		if p.IsActive && p.CoversDate(asOf) {
			matches = append(matches, p)
		}
	}

	if len(matches) == 0 {
		return SalaryProfile{}, ErrProfileNotFound
	}

	// Overlapping windows are entered in error; pick the most recent
	// effective_from deterministically and log it.
	best := matches[0]
	for _, p := range matches[1:] {
		if p.EffectiveFrom.After(best.EffectiveFrom) {
			best = p
		}
	}
	if len(matches) > 1 {
		r.logger.Warn("overlapping salary profiles, picked most recent",
			slog.String("employee_id", employeeID),
			slog.Time("as_of", asOf),
			slog.Int("matches", len(matches)),
			slog.String("picked_id", best.ID),
		)
	}

	return best, nil
}
