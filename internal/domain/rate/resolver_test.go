package rate

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRateRepository struct {
	entries []TemporalRateEntry
}

func (f *fakeRateRepository) Create(ctx context.Context, entry TemporalRateEntry) (TemporalRateEntry, error) {
	f.entries = append(f.entries, entry)
	return entry, nil
}

func (f *fakeRateRepository) GetByID(ctx context.Context, id string) (TemporalRateEntry, error) {
	for _, e := range f.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return TemporalRateEntry{}, ErrRateEntryNotFound
}

func (f *fakeRateRepository) FindCandidates(ctx context.Context, componentType ComponentType, asOf time.Time) ([]TemporalRateEntry, error) {
	var result []TemporalRateEntry
	for _, e := range f.entries {
		if e.ComponentType == componentType {
			result = append(result, e)
		}
	}
	return result, nil
}

func (f *fakeRateRepository) ListByComponent(ctx context.Context, componentType ComponentType) ([]TemporalRateEntry, error) {
	return f.FindCandidates(ctx, componentType, time.Time{})
}

func (f *fakeRateRepository) CloseWindow(ctx context.Context, id string, effectiveTo time.Time) error {
	return nil
}

func (f *fakeRateRepository) Deactivate(ctx context.Context, id string) error {
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func TestResolver_Resolve_NoMatch(t *testing.T) {
	resolver := NewResolver(&fakeRateRepository{}, testLogger())

	_, ok, err := resolver.Resolve(context.Background(), ComponentPFEmployee, date(2025, 4, 1))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolver_Resolve_WindowBounds(t *testing.T) {
	repo := &fakeRateRepository{entries: []TemporalRateEntry{
		{
			ID:            "pf-2024",
			ComponentType: ComponentPFEmployee,
			ValueKind:     ValueKindPercent,
			Value:         decimal.NewFromInt(12),
			EffectiveFrom: date(2024, 4, 1),
			EffectiveTo:   ptr(date(2025, 3, 31)),
			IsActive:      true,
		},
	}}
	resolver := NewResolver(repo, testLogger())
	ctx := context.Background()

	// Both window ends are inclusive.
	for _, asOf := range []time.Time{date(2024, 4, 1), date(2024, 10, 15), date(2025, 3, 31)} {
		entry, ok, err := resolver.Resolve(ctx, ComponentPFEmployee, asOf)
		require.NoError(t, err)
		require.True(t, ok, "expected match on %s", asOf)
		assert.Equal(t, "pf-2024", entry.ID)
	}

	for _, asOf := range []time.Time{date(2024, 3, 31), date(2025, 4, 1)} {
		_, ok, err := resolver.Resolve(ctx, ComponentPFEmployee, asOf)
		require.NoError(t, err)
		assert.False(t, ok, "expected no match on %s", asOf)
	}
}

func TestResolver_Resolve_SkipsInactive(t *testing.T) {
	repo := &fakeRateRepository{entries: []TemporalRateEntry{
		{
			ID:            "pf-old",
			ComponentType: ComponentPFEmployee,
			ValueKind:     ValueKindPercent,
			Value:         decimal.NewFromInt(10),
			EffectiveFrom: date(2024, 1, 1),
			IsActive:      false,
		},
	}}
	resolver := NewResolver(repo, testLogger())

	_, ok, err := resolver.Resolve(context.Background(), ComponentPFEmployee, date(2024, 6, 1))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolver_Resolve_OverlapPicksLatestEffectiveFrom(t *testing.T) {
	repo := &fakeRateRepository{entries: []TemporalRateEntry{
		{
			ID:            "esi-old",
			ComponentType: ComponentESIEmployee,
			ValueKind:     ValueKindPercent,
			Value:         decimal.NewFromFloat(1.75),
			EffectiveFrom: date(2024, 1, 1),
			IsActive:      true,
			CreatedAt:     date(2024, 1, 1),
		},
		{
			ID:            "esi-new",
			ComponentType: ComponentESIEmployee,
			ValueKind:     ValueKindPercent,
			Value:         decimal.NewFromFloat(0.75),
			EffectiveFrom: date(2024, 7, 1),
			IsActive:      true,
			CreatedAt:     date(2024, 6, 15),
		},
	}}
	resolver := NewResolver(repo, testLogger())
	ctx := context.Background()

	entry, ok, err := resolver.Resolve(ctx, ComponentESIEmployee, date(2024, 8, 1))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "esi-new", entry.ID)

	// Same inputs, same pick: resolution is deterministic.
	again, ok, err := resolver.Resolve(ctx, ComponentESIEmployee, date(2024, 8, 1))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, entry.ID, again.ID)
}

func TestResolver_Resolve_SameEffectiveFromPicksLatestCreated(t *testing.T) {
	repo := &fakeRateRepository{entries: []TemporalRateEntry{
		{
			ID:            "lwf-first",
			ComponentType: ComponentLWF,
			ValueKind:     ValueKindFixed,
			Value:         decimal.NewFromInt(25),
			EffectiveFrom: date(2024, 6, 1),
			IsActive:      true,
			CreatedAt:     date(2024, 5, 1),
		},
		{
			ID:            "lwf-correction",
			ComponentType: ComponentLWF,
			ValueKind:     ValueKindFixed,
			Value:         decimal.NewFromInt(50),
			EffectiveFrom: date(2024, 6, 1),
			IsActive:      true,
			CreatedAt:     date(2024, 5, 20),
		},
	}}
	resolver := NewResolver(repo, testLogger())

	entry, ok, err := resolver.Resolve(context.Background(), ComponentLWF, date(2024, 6, 1))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "lwf-correction", entry.ID)
}

func TestResolver_ResolveForSalary_SlabBoundaries(t *testing.T) {
	repo := &fakeRateRepository{entries: []TemporalRateEntry{
		{
			ID:            "pt-slab-1",
			ComponentType: ComponentProfessionalTax,
			ValueKind:     ValueKindFixed,
			Value:         decimal.Zero,
			EffectiveFrom: date(2024, 1, 1),
			SlabMin:       ptr(decimal.Zero),
			SlabMax:       ptr(decimal.NewFromInt(7500)),
			IsActive:      true,
		},
		{
			ID:            "pt-slab-2",
			ComponentType: ComponentProfessionalTax,
			ValueKind:     ValueKindFixed,
			Value:         decimal.NewFromInt(175),
			EffectiveFrom: date(2024, 1, 1),
			SlabMin:       ptr(decimal.NewFromInt(7501)),
			SlabMax:       ptr(decimal.NewFromInt(10000)),
			IsActive:      true,
		},
		{
			ID:            "pt-slab-3",
			ComponentType: ComponentProfessionalTax,
			ValueKind:     ValueKindFixed,
			Value:         decimal.NewFromInt(200),
			EffectiveFrom: date(2024, 1, 1),
			SlabMin:       ptr(decimal.NewFromInt(10001)),
			IsActive:      true,
		},
	}}
	resolver := NewResolver(repo, testLogger())
	ctx := context.Background()
	asOf := date(2024, 6, 1)

	tests := []struct {
		salary  int64
		wantID  string
		wantTax int64
	}{
		{7500, "pt-slab-1", 0},
		{7501, "pt-slab-2", 175},
		{10000, "pt-slab-2", 175},
		{10001, "pt-slab-3", 200},
		{50000, "pt-slab-3", 200},
	}

	for _, tt := range tests {
		entry, ok, err := resolver.ResolveForSalary(ctx, ComponentProfessionalTax, asOf, decimal.NewFromInt(tt.salary))
		require.NoError(t, err)
		require.True(t, ok, "salary %d", tt.salary)
		assert.Equal(t, tt.wantID, entry.ID, "salary %d", tt.salary)
		assert.True(t, entry.Value.Equal(decimal.NewFromInt(tt.wantTax)), "salary %d", tt.salary)
	}
}

func TestResolver_ResolveForSalary_NoSlabMatch(t *testing.T) {
	repo := &fakeRateRepository{entries: []TemporalRateEntry{
		{
			ID:            "tds-slab",
			ComponentType: ComponentTDS,
			ValueKind:     ValueKindPercent,
			Value:         decimal.NewFromInt(10),
			EffectiveFrom: date(2024, 1, 1),
			SlabMin:       ptr(decimal.NewFromInt(300001)),
			IsActive:      true,
		},
	}}
	resolver := NewResolver(repo, testLogger())

	_, ok, err := resolver.ResolveForSalary(context.Background(), ComponentTDS, date(2024, 6, 1), decimal.NewFromInt(250000))
	require.NoError(t, err)
	assert.False(t, ok)
}
