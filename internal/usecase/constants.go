package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// HolderCacheTTL is how long holder read-path snapshots stay cached.
	// Kept short: the cache serves dashboard reads, never balance validation.
	HolderCacheTTL = 5 * time.Second

	defaultPageSize = 20
	maxPageSize     = 100
)

func clampPage(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}

	if limit > maxPageSize {
		return maxPageSize
	}

	return limit
}
