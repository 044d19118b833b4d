package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// PlanCacheTTL is how long a computed plan snapshot stays cached. Debt
	// balances change at most a few times a day, so a short TTL keeps plans
	// fresh without recomputing on every page load.
	PlanCacheTTL = 15 * time.Minute

	// SnapshotRetention is how many plan snapshots are kept per user.
	SnapshotRetention = 50

	// DefaultHistoryPageSize is the page size for snapshot history listings.
	DefaultHistoryPageSize = 20

	// MaxHistoryPageSize caps the page size for snapshot history listings.
	MaxHistoryPageSize = 100
)
