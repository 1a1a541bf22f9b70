package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/zenithhr/payroll-engine-go/internal/domain/rate"
	"github.com/zenithhr/payroll-engine-go/internal/pkg/database"
)

type rateRepository struct {
	db *database.DB
}

func NewRateRepository(db *database.DB) rate.RateRepository {
	return &rateRepository{db: db}
}

const rateEntryColumns = `
	id, component_type, value_kind, value, effective_from, effective_to,
	slab_min, slab_max, is_active, created_at, updated_at
`

func scanRateEntry(row pgx.Row) (rate.TemporalRateEntry, error) {
	var e rate.TemporalRateEntry
	err := row.Scan(
		&e.ID, &e.ComponentType, &e.ValueKind, &e.Value, &e.EffectiveFrom, &e.EffectiveTo,
		&e.SlabMin, &e.SlabMax, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *rateRepository) Create(ctx context.Context, entry rate.TemporalRateEntry) (rate.TemporalRateEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO rate_entries (
			component_type, value_kind, value, effective_from, effective_to,
			slab_min, slab_max, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + rateEntryColumns

	created, err := scanRateEntry(q.QueryRow(ctx, query,
		entry.ComponentType, entry.ValueKind, entry.Value, entry.EffectiveFrom, entry.EffectiveTo,
		entry.SlabMin, entry.SlabMax, entry.IsActive,
	))
	if err != nil {
		return rate.TemporalRateEntry{}, fmt.Errorf("failed to create rate entry: %w", err)
	}

	return created, nil
}

func (r *rateRepository) GetByID(ctx context.Context, id string) (rate.TemporalRateEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + rateEntryColumns + ` FROM rate_entries WHERE id = $1`

	entry, err := scanRateEntry(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return rate.TemporalRateEntry{}, rate.ErrRateEntryNotFound
		}
		return rate.TemporalRateEntry{}, fmt.Errorf("failed to get rate entry: %w", err)
	}

	return entry, nil
}

func (r *rateRepository) FindCandidates(ctx context.Context, componentType rate.ComponentType, asOf time.Time) ([]rate.TemporalRateEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + rateEntryColumns + `
		FROM rate_entries
		WHERE component_type = $1
		  AND is_active = true
		  AND effective_from <= $2
		  AND (effective_to IS NULL OR effective_to >= $2)
		ORDER BY effective_from DESC, created_at DESC
	`

	rows, err := q.Query(ctx, query, componentType, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to find rate entries: %w", err)
	}
	defer rows.Close()

	var entries []rate.TemporalRateEntry
	for rows.Next() {
		var e rate.TemporalRateEntry
		if err := rows.Scan(
			&e.ID, &e.ComponentType, &e.ValueKind, &e.Value, &e.EffectiveFrom, &e.EffectiveTo,
			&e.SlabMin, &e.SlabMax, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan rate entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, nil
}

func (r *rateRepository) ListByComponent(ctx context.Context, componentType rate.ComponentType) ([]rate.TemporalRateEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + rateEntryColumns + `
		FROM rate_entries
		WHERE component_type = $1
		ORDER BY effective_from DESC, created_at DESC
	`

	rows, err := q.Query(ctx, query, componentType)
	if err != nil {
		return nil, fmt.Errorf("failed to list rate entries: %w", err)
	}
	defer rows.Close()

	var entries []rate.TemporalRateEntry
	for rows.Next() {
		var e rate.TemporalRateEntry
		if err := rows.Scan(
			&e.ID, &e.ComponentType, &e.ValueKind, &e.Value, &e.EffectiveFrom, &e.EffectiveTo,
			&e.SlabMin, &e.SlabMax, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan rate entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, nil
}

func (r *rateRepository) CloseWindow(ctx context.Context, id string, effectiveTo time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE rate_entries
		SET effective_to = $2, updated_at = NOW()
		WHERE id = $1 AND effective_to IS NULL
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id, effectiveTo).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			// Distinguish a missing entry from one already closed.
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return getErr
			}
			return rate.ErrRateEntryAlreadyClosed
		}
		return fmt.Errorf("failed to close rate entry window: %w", err)
	}

	return nil
}

func (r *rateRepository) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE rate_entries
		SET is_active = false, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return rate.ErrRateEntryNotFound
		}
		return fmt.Errorf("failed to deactivate rate entry: %w", err)
	}

	return nil
}
