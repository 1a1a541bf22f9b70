package rate

import "errors"

var (
	ErrRateEntryNotFound      = errors.New("rate entry not found")
	ErrRateEntryAlreadyClosed = errors.New("rate entry window already closed")
)
