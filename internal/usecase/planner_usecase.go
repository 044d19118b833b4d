package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finvue/debtplan/internal/domain"
	"github.com/finvue/debtplan/internal/infrastructure/metrics"
	"github.com/finvue/debtplan/internal/planner"
)

// PlannerUseCase orchestrates the planning engine: loading debts, running
// simulations, persisting snapshots and caching results. The engine itself
// stays pure; everything stateful lives here.
type PlannerUseCase struct {
	debtRepo     DebtRepository
	snapshotRepo SnapshotRepository
	txManager    TransactionManager
	retrier      Retrier
	cache        PlanCache
	idGen        IDGenerator
	metrics      *metrics.Metrics
}

// NewPlannerUseCase creates a new PlannerUseCase.
func NewPlannerUseCase(
	debtRepo DebtRepository,
	snapshotRepo SnapshotRepository,
	txManager TransactionManager,
	retrier Retrier,
	cache PlanCache,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *PlannerUseCase {
	return &PlannerUseCase{
		debtRepo:     debtRepo,
		snapshotRepo: snapshotRepo,
		txManager:    txManager,
		retrier:      retrier,
		cache:        cache,
		idGen:        idGen,
		metrics:      metrics,
	}
}

// PlanInput represents input for planning against caller-supplied debts.
type PlanInput struct {
	Debts         []domain.Debt
	Strategy      domain.Strategy
	MonthlyBudget domain.Money
	HorizonMonths int
	Hybrid        planner.HybridWeights
	StartMonth    time.Time
}

// PlanResult bundles the raw schedule with its summary; callers expose one or
// both.
type PlanResult struct {
	Schedule *domain.RepaymentSchedule
	Summary  *domain.PlanSummary
}

// PlanFromDebts simulates a repayment plan for the supplied debts. Stateless:
// nothing is persisted or cached.
func (uc *PlannerUseCase) PlanFromDebts(ctx context.Context, input PlanInput) (*PlanResult, error) {
	start := time.Now()

	schedule, err := planner.Simulate(input.Debts, input.Strategy, input.MonthlyBudget, planner.SimulationOptions{
		HorizonMonths: input.HorizonMonths,
		Hybrid:        input.Hybrid,
		StartMonth:    input.StartMonth,
	})
	if err != nil {
		return nil, err
	}

	// A schedule that fails reconciliation is a bug, never user input;
	// refuse to hand it out.
	if err := schedule.Reconcile(); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.SimulationsTotal.WithLabelValues(schedule.Strategy.String(), schedule.Status.String()).Inc()
		uc.metrics.SimulationDuration.Observe(time.Since(start).Seconds())
		uc.metrics.SimulationPeriods.Observe(float64(len(schedule.Periods)))
	}

	return &PlanResult{Schedule: schedule, Summary: planner.Summarize(schedule)}, nil
}

// PlanForUserInput represents input for planning against a user's stored debts.
type PlanForUserInput struct {
	UserID        string
	Strategy      domain.Strategy
	MonthlyBudget domain.Money
	StartMonth    time.Time
}

// PlanForUser loads the user's debts, simulates a plan and persists it as a
// snapshot. Identical inputs within the cache TTL are served from cache
// without recomputing or re-persisting.
func (uc *PlannerUseCase) PlanForUser(ctx context.Context, input PlanForUserInput) (*domain.PlanSnapshot, error) {
	if input.UserID == "" {
		return nil, fmt.Errorf("%w: user ID cannot be empty", domain.ErrInvalidInput)
	}

	debts, err := uc.debtRepo.ListByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if len(debts) == 0 {
		return nil, fmt.Errorf("%w: user %s has no active debts", domain.ErrInvalidInput, input.UserID)
	}

	key := planKey(input, debts)
	if cached := uc.cachedSnapshot(ctx, key); cached != nil {
		return cached, nil
	}

	result, err := uc.PlanFromDebts(ctx, PlanInput{
		Debts:         debts,
		Strategy:      input.Strategy,
		MonthlyBudget: input.MonthlyBudget,
		StartMonth:    input.StartMonth,
	})
	if err != nil {
		return nil, err
	}

	snapshot := &domain.PlanSnapshot{
		ID:                uc.idGen.Generate(),
		UserID:            input.UserID,
		Strategy:          input.Strategy,
		MonthlyBudget:     input.MonthlyBudget,
		Status:            result.Schedule.Status,
		MonthsToPayoff:    result.Schedule.MonthsToPayoff,
		TotalInterestPaid: result.Schedule.TotalInterestPaid,
		Summary:           result.Summary,
		CreatedAt:         time.Now().UTC(),
	}

	if err := uc.storeSnapshot(ctx, snapshot); err != nil {
		return nil, err
	}

	uc.cacheSnapshot(ctx, key, snapshot)

	return snapshot, nil
}

// LatestPlan returns the most recent snapshot stored for the user.
func (uc *PlannerUseCase) LatestPlan(ctx context.Context, userID string) (*domain.PlanSnapshot, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user ID cannot be empty", domain.ErrInvalidInput)
	}

	return uc.snapshotRepo.GetLatestByUser(ctx, userID)
}

// PlanHistoryInput represents input for listing a user's stored snapshots.
type PlanHistoryInput struct {
	UserID string
	Limit  int
	Offset int
}

// PlanHistory lists a user's stored snapshots, newest first.
func (uc *PlannerUseCase) PlanHistory(ctx context.Context, input PlanHistoryInput) ([]*domain.PlanSnapshot, error) {
	if input.UserID == "" {
		return nil, fmt.Errorf("%w: user ID cannot be empty", domain.ErrInvalidInput)
	}

	if input.Limit <= 0 {
		input.Limit = DefaultHistoryPageSize
	}

	if input.Limit > MaxHistoryPageSize {
		input.Limit = MaxHistoryPageSize
	}

	return uc.snapshotRepo.ListByUser(ctx, input.UserID, input.Limit, input.Offset)
}

// CompareInput represents input for a refinancing comparison.
type CompareInput struct {
	Debts         []domain.Debt
	TargetDebtID  string
	Offer         planner.RefinanceOffer
	Strategy      domain.Strategy
	MonthlyBudget domain.Money
}

// CompareRefinancing evaluates a refinancing offer against the baseline plan.
func (uc *PlannerUseCase) CompareRefinancing(ctx context.Context, input CompareInput) (*domain.RefinanceComparison, error) {
	result, err := planner.CompareRefinancing(
		input.Debts, input.TargetDebtID, input.Offer,
		input.Strategy, input.MonthlyBudget, planner.SimulationOptions{},
	)
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ComparisonsTotal.Inc()
	}

	return result, nil
}

// RatioInput represents input for the debt-to-income evaluator.
type RatioInput struct {
	Debts         []domain.Debt
	MonthlyIncome domain.Money
}

// DebtToIncome reports the ratio of minimum payments to monthly income.
func (uc *PlannerUseCase) DebtToIncome(ctx context.Context, input RatioInput) (decimal.Decimal, error) {
	return planner.DebtToIncomeRatio(input.Debts, input.MonthlyIncome)
}

// OrderInput represents input for previewing a strategy's payoff order.
type OrderInput struct {
	Debts    []domain.Debt
	Strategy domain.Strategy
	Hybrid   planner.HybridWeights
}

// PreviewOrder returns the order in which a strategy would target the debts.
func (uc *PlannerUseCase) PreviewOrder(ctx context.Context, input OrderInput) ([]string, error) {
	if input.Hybrid == (planner.HybridWeights{}) {
		return planner.Order(input.Debts, input.Strategy)
	}

	return planner.OrderWithWeights(input.Debts, input.Strategy, input.Hybrid)
}

// storeSnapshot persists the snapshot and prunes old history in one
// transaction, retrying the whole transaction on transient failures.
func (uc *PlannerUseCase) storeSnapshot(ctx context.Context, snapshot *domain.PlanSnapshot) error {
	store := func() error {
		return uc.storeSnapshotTx(ctx, snapshot)
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, store)
	} else {
		err = store()
	}

	if err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.SnapshotsStored.Inc()
	}

	return nil
}

func (uc *PlannerUseCase) storeSnapshotTx(ctx context.Context, snapshot *domain.PlanSnapshot) error {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer tx.Rollback(txCtx)

	if err := uc.snapshotRepo.Create(txCtx, tx, snapshot); err != nil {
		return err
	}

	if err := uc.snapshotRepo.PruneHistory(txCtx, tx, snapshot.UserID, SnapshotRetention); err != nil {
		return err
	}

	return tx.Commit(txCtx)
}

func (uc *PlannerUseCase) cachedSnapshot(ctx context.Context, key string) *domain.PlanSnapshot {
	if uc.cache == nil {
		return nil
	}

	raw, err := uc.cache.Get(ctx, key)
	if err != nil || len(raw) == 0 {
		if uc.metrics != nil {
			uc.metrics.PlanCacheMisses.Inc()
		}

		return nil
	}

	var snapshot domain.PlanSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		_ = uc.cache.Delete(ctx, key)
		return nil
	}

	if uc.metrics != nil {
		uc.metrics.PlanCacheHits.Inc()
	}

	return &snapshot
}

func (uc *PlannerUseCase) cacheSnapshot(ctx context.Context, key string, snapshot *domain.PlanSnapshot) {
	if uc.cache == nil {
		return
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return
	}

	// Cache failures only cost a recomputation.
	_ = uc.cache.Set(ctx, key, raw, PlanCacheTTL)
}

// planKey digests the planning inputs. Any change to the debt set, strategy,
// budget or anchor month produces a new key.
func planKey(input PlanForUserInput, debts []domain.Debt) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%d|%d|%s", input.UserID, input.Strategy, input.MonthlyBudget, input.StartMonth.Format("2006-01"))

	for _, d := range debts {
		fmt.Fprintf(h, "|%s:%d:%s:%d", d.ID, d.PrincipalBalance, d.APR.String(), d.MinimumPayment)
	}

	return "plan:" + hex.EncodeToString(h.Sum(nil))
}
