package usecase

import (
	"context"
	"time"

	"github.com/finvue/debtplan/internal/domain"
)

// DebtRepository defines read access to a user's debts. The debt records
// themselves are owned by the surrounding dashboard; this service only plans
// against them.
type DebtRepository interface {
	// ListByUser returns the user's active debts ordered by ID, so plan
	// cache keys derived from the list are stable.
	ListByUser(ctx context.Context, userID string) ([]domain.Debt, error)
}

// SnapshotRepository defines data access for persisted plan snapshots.
type SnapshotRepository interface {
	Create(ctx context.Context, tx Transaction, snapshot *domain.PlanSnapshot) error
	// PruneHistory deletes a user's snapshots beyond the keep most recent.
	PruneHistory(ctx context.Context, tx Transaction, userID string, keep int) error
	GetLatestByUser(ctx context.Context, userID string) (*domain.PlanSnapshot, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.PlanSnapshot, error)
}

// PlanCache caches computed plan snapshots keyed by a digest of the inputs.
// Get returns (nil, nil) on a miss.
type PlanCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Retrier retries transient storage failures with backoff.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}
