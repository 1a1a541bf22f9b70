package rate

import "context"

// RateService manages the temporal rate table. Entries are superseded by
// closing their window or deactivating them, never deleted.
type RateService interface {
	CreateEntry(ctx context.Context, req CreateRateEntryRequest) (RateEntryResponse, error)
	GetEntry(ctx context.Context, id string) (RateEntryResponse, error)
	ListEntries(ctx context.Context, componentType string) ([]RateEntryResponse, error)
	CloseEntry(ctx context.Context, req CloseRateEntryRequest) error
	DeactivateEntry(ctx context.Context, id string) error
}
