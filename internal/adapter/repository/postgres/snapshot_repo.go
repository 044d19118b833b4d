package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finvue/debtplan/internal/domain"
	"github.com/finvue/debtplan/internal/usecase"
)

// SnapshotRepository implements usecase.SnapshotRepository.
type SnapshotRepository struct {
	db dbConn
}

// NewSnapshotRepository creates a new SnapshotRepository.
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return newSnapshotRepositoryWithDB(pool)
}

func newSnapshotRepositoryWithDB(db dbConn) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Create inserts a plan snapshot inside the given transaction.
func (r *SnapshotRepository) Create(ctx context.Context, tx usecase.Transaction, snapshot *domain.PlanSnapshot) error {
	pgxTx := tx.(*Tx).PgxTx()

	var summary []byte
	if snapshot.Summary != nil {
		var err error

		summary, err = json.Marshal(snapshot.Summary)
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO plan_snapshots (
			id, user_id, strategy, monthly_budget, status,
			months_to_payoff, total_interest_paid, summary, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := pgxTx.Exec(ctx, query,
		snapshot.ID,
		snapshot.UserID,
		snapshot.Strategy.String(),
		int64(snapshot.MonthlyBudget),
		snapshot.Status.String(),
		snapshot.MonthsToPayoff,
		int64(snapshot.TotalInterestPaid),
		summary,
		snapshot.CreatedAt,
	)

	return err
}

// PruneHistory deletes the user's snapshots beyond the keep most recent,
// inside the given transaction.
func (r *SnapshotRepository) PruneHistory(ctx context.Context, tx usecase.Transaction, userID string, keep int) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		DELETE FROM plan_snapshots
		WHERE user_id = $1 AND id NOT IN (
			SELECT id FROM plan_snapshots
			WHERE user_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2
		)
	`

	_, err := pgxTx.Exec(ctx, query, userID, keep)

	return err
}

// GetLatestByUser returns the most recently stored snapshot for the user.
func (r *SnapshotRepository) GetLatestByUser(ctx context.Context, userID string) (*domain.PlanSnapshot, error) {
	query := `
		SELECT id, user_id, strategy, monthly_budget, status,
		       months_to_payoff, total_interest_paid, summary, created_at
		FROM plan_snapshots
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	snapshot, err := scanSnapshot(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSnapshotNotFound
		}

		return nil, err
	}

	return snapshot, nil
}

// ListByUser returns the user's stored snapshots, newest first.
func (r *SnapshotRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.PlanSnapshot, error) {
	query := `
		SELECT id, user_id, strategy, monthly_budget, status,
		       months_to_payoff, total_interest_paid, summary, created_at
		FROM plan_snapshots
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []*domain.PlanSnapshot

	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}

		snapshots = append(snapshots, snapshot)
	}

	return snapshots, rows.Err()
}

func scanSnapshot(row pgx.Row) (*domain.PlanSnapshot, error) {
	var (
		snapshot      domain.PlanSnapshot
		strategy      string
		status        string
		budget        int64
		totalInterest int64
		summary       []byte
	)

	err := row.Scan(
		&snapshot.ID,
		&snapshot.UserID,
		&strategy,
		&budget,
		&status,
		&snapshot.MonthsToPayoff,
		&totalInterest,
		&summary,
		&snapshot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	snapshot.Strategy, err = domain.ParseStrategy(strategy)
	if err != nil {
		return nil, err
	}

	snapshot.Status, err = domain.ParseScheduleStatus(status)
	if err != nil {
		return nil, err
	}

	snapshot.MonthlyBudget = domain.Money(budget)
	snapshot.TotalInterestPaid = domain.Money(totalInterest)

	if summary != nil {
		if err := json.Unmarshal(summary, &snapshot.Summary); err != nil {
			return nil, err
		}
	}

	return &snapshot, nil
}
