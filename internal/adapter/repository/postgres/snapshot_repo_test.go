package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"

	"github.com/finvue/debtplan/internal/domain"
)

func TestSnapshotRepositoryCreate(t *testing.T) {
	mockPool := newMockPool(t)

	createdAt := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	summary := &domain.PlanSummary{
		Strategy:       domain.StrategyAvalanche,
		Status:         domain.StatusComplete,
		MonthsToPayoff: 16,
	}
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}

	snapshot := &domain.PlanSnapshot{
		ID:                "snap-1",
		UserID:            "user-1",
		Strategy:          domain.StrategyAvalanche,
		MonthlyBudget:     20000,
		Status:            domain.StatusComplete,
		MonthsToPayoff:    16,
		TotalInterestPaid: 101846,
		Summary:           summary,
		CreatedAt:         createdAt,
	}

	mockPool.ExpectBegin()
	mockPool.ExpectExec("INSERT INTO plan_snapshots").
		WithArgs("snap-1", "user-1", "avalanche", int64(20000), "complete", 16, int64(101846), summaryJSON, createdAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mockPool.ExpectCommit()

	manager := newTxManagerWithPool(mockPool)
	tx, err := manager.Begin(context.Background())
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	repo := newSnapshotRepositoryWithDB(mockPool)
	if err := repo.Create(context.Background(), tx, snapshot); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := tx.Commit(context.Background()); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestSnapshotRepositoryPruneHistory(t *testing.T) {
	mockPool := newMockPool(t)

	mockPool.ExpectBegin()
	mockPool.ExpectExec("DELETE FROM plan_snapshots").
		WithArgs("user-1", 50).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mockPool.ExpectCommit()

	manager := newTxManagerWithPool(mockPool)
	tx, err := manager.Begin(context.Background())
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	repo := newSnapshotRepositoryWithDB(mockPool)
	if err := repo.PruneHistory(context.Background(), tx, "user-1", 50); err != nil {
		t.Fatalf("prune failed: %v", err)
	}

	if err := tx.Commit(context.Background()); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestSnapshotRepositoryGetLatestByUser(t *testing.T) {
	mockPool := newMockPool(t)

	createdAt := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	summaryJSON, err := json.Marshal(&domain.PlanSummary{
		Strategy: domain.StrategySnowball,
		Status:   domain.StatusComplete,
	})
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}

	rows := pgxmock.NewRows([]string{
		"id", "user_id", "strategy", "monthly_budget", "status",
		"months_to_payoff", "total_interest_paid", "summary", "created_at",
	}).AddRow("snap-7", "user-1", "snowball", int64(15000), "complete", 12, int64(44000), summaryJSON, createdAt)

	mockPool.ExpectQuery("SELECT (.+) FROM plan_snapshots").WithArgs("user-1").WillReturnRows(rows)

	repo := newSnapshotRepositoryWithDB(mockPool)
	snapshot, err := repo.GetLatestByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snapshot.ID != "snap-7" {
		t.Errorf("expected snap-7, got %s", snapshot.ID)
	}

	if snapshot.Strategy != domain.StrategySnowball {
		t.Errorf("expected snowball, got %s", snapshot.Strategy)
	}

	if snapshot.Status != domain.StatusComplete {
		t.Errorf("expected complete, got %s", snapshot.Status)
	}

	if snapshot.MonthlyBudget != domain.Money(15000) {
		t.Errorf("expected budget 15000, got %d", snapshot.MonthlyBudget)
	}

	if snapshot.Summary == nil || snapshot.Summary.Strategy != domain.StrategySnowball {
		t.Errorf("expected summary to round-trip, got %+v", snapshot.Summary)
	}

	assertExpectations(t, mockPool)
}

func TestSnapshotRepositoryGetLatestByUserNotFound(t *testing.T) {
	mockPool := newMockPool(t)

	mockPool.ExpectQuery("SELECT (.+) FROM plan_snapshots").WithArgs("ghost").WillReturnError(pgx.ErrNoRows)

	repo := newSnapshotRepositoryWithDB(mockPool)
	_, err := repo.GetLatestByUser(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrSnapshotNotFound) {
		t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
	}
}

func TestSnapshotRepositoryListByUser(t *testing.T) {
	mockPool := newMockPool(t)

	createdAt := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{
		"id", "user_id", "strategy", "monthly_budget", "status",
		"months_to_payoff", "total_interest_paid", "summary", "created_at",
	}).
		AddRow("snap-8", "user-1", "avalanche", int64(20000), "complete", 16, int64(101846), nil, createdAt).
		AddRow("snap-7", "user-1", "avalanche", int64(18000), "stalled", 600, int64(990000), nil, createdAt.Add(-time.Hour))

	mockPool.ExpectQuery("SELECT (.+) FROM plan_snapshots").WithArgs("user-1", 20, 0).WillReturnRows(rows)

	repo := newSnapshotRepositoryWithDB(mockPool)
	snapshots, err := repo.ListByUser(context.Background(), "user-1", 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snapshots) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snapshots))
	}

	if snapshots[0].ID != "snap-8" || snapshots[1].ID != "snap-7" {
		t.Errorf("unexpected order: %s, %s", snapshots[0].ID, snapshots[1].ID)
	}

	if snapshots[0].Summary != nil {
		t.Errorf("expected nil summary, got %+v", snapshots[0].Summary)
	}

	if snapshots[1].Status != domain.StatusStalled {
		t.Errorf("expected stalled, got %s", snapshots[1].Status)
	}

	assertExpectations(t, mockPool)
}

func TestSnapshotRepositoryRejectsUnknownStoredStrategy(t *testing.T) {
	mockPool := newMockPool(t)

	rows := pgxmock.NewRows([]string{
		"id", "user_id", "strategy", "monthly_budget", "status",
		"months_to_payoff", "total_interest_paid", "summary", "created_at",
	}).AddRow("snap-9", "user-1", "martingale", int64(20000), "complete", 16, int64(101846), nil, time.Now())

	mockPool.ExpectQuery("SELECT (.+) FROM plan_snapshots").WithArgs("user-1").WillReturnRows(rows)

	repo := newSnapshotRepositoryWithDB(mockPool)
	_, err := repo.GetLatestByUser(context.Background(), "user-1")
	if !errors.Is(err, domain.ErrUnknownStrategy) {
		t.Fatalf("expected ErrUnknownStrategy, got %v", err)
	}
}
